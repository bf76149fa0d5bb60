package iconset

import (
	"bytes"
	"errors"
	"image"
	"image/png"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func TestEncodeICO(t *testing.T) {
	sizes := []int{16, 32, 64, 128, 256}
	frames := make([]image.Image, 0, len(sizes))
	for _, sz := range sizes {
		frames = append(frames, patternImage(sz, sz, false))
	}
	var buf bytes.Buffer
	if err := EncodeICO(&buf, frames); err != nil {
		t.Fatal(err)
	}
	data := buf.Bytes()
	if !isICO(data) {
		t.Fatalf("output does not start with an ico header: % x", data[:4])
	}

	entries, err := ReadICODirectory(bytes.NewReader(data))
	if err != nil {
		t.Fatal(err)
	}
	var got []int
	for _, e := range entries {
		if e.Width != e.Height {
			t.Errorf("entry is %dx%d, want square", e.Width, e.Height)
		}
		got = append(got, e.Width)

		frame, err := png.Decode(bytes.NewReader(data[e.Offset : e.Offset+e.Size]))
		if err != nil {
			t.Fatalf("frame %d is not a png: %v", e.Width, err)
		}
		if b := frame.Bounds(); b.Dx() != e.Width || b.Dy() != e.Height {
			t.Errorf("frame is %dx%d, directory says %dx%d", b.Dx(), b.Dy(), e.Width, e.Height)
		}
	}
	if diff := cmp.Diff(sizes, got); diff != "" {
		t.Errorf("directory sizes mismatch (-want +got):\n%s", diff)
	}
	last := entries[len(entries)-1]
	if int(last.Offset+last.Size) != len(data) {
		t.Errorf("last frame ends at %d, file is %d bytes", last.Offset+last.Size, len(data))
	}
}

func TestEncodeICOErrors(t *testing.T) {
	tests := []struct {
		name   string
		frames []image.Image
	}{
		{"no frames", nil},
		{"frame too large", []image.Image{patternImage(512, 512, false)}},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			if err := EncodeICO(&buf, tt.frames); !errors.Is(err, ErrInvalidArgument) {
				t.Errorf("EncodeICO() error = %v, want %v", err, ErrInvalidArgument)
			}
		})
	}
}

func TestReadICODirectoryRejectsOtherData(t *testing.T) {
	var buf bytes.Buffer
	if err := png.Encode(&buf, patternImage(8, 8, false)); err != nil {
		t.Fatal(err)
	}
	if _, err := ReadICODirectory(&buf); !errors.Is(err, ErrDecode) {
		t.Errorf("ReadICODirectory() error = %v, want %v", err, ErrDecode)
	}
}
