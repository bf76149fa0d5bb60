package iconset

import (
	"bytes"
	"encoding/binary"
	"fmt"
	"image"
	"io"

	"github.com/disintegration/imaging"
)

const (
	icoHeaderSize = 6
	icoEntrySize  = 16
)

// ICOEntry is one directory entry of an ICO container.
type ICOEntry struct {
	Width  int
	Height int
	Size   uint32
	Offset uint32
}

// EncodeICO writes frames as a PNG-compressed ICO container (Windows Vista+).
// Directory entries keep the order of frames.
func EncodeICO(w io.Writer, frames []image.Image) error {
	if len(frames) == 0 {
		return fmt.Errorf("%w: ico needs at least one frame", ErrInvalidArgument)
	}
	pngs := make([][]byte, len(frames))
	for i, f := range frames {
		b := f.Bounds()
		if b.Dx() <= 0 || b.Dy() <= 0 || b.Dx() > maxICOFrame || b.Dy() > maxICOFrame {
			return fmt.Errorf("%w: ico frame %dx%d is outside 1..%d", ErrInvalidArgument, b.Dx(), b.Dy(), maxICOFrame)
		}
		var buf bytes.Buffer
		if err := imaging.Encode(&buf, f, imaging.PNG); err != nil {
			return fmt.Errorf("failed to encode ico frame %dx%d: %w", b.Dx(), b.Dy(), err)
		}
		pngs[i] = buf.Bytes()
	}

	var out bytes.Buffer
	_ = binary.Write(&out, binary.LittleEndian, uint16(0))           // reserved
	_ = binary.Write(&out, binary.LittleEndian, uint16(1))           // type: icon
	_ = binary.Write(&out, binary.LittleEndian, uint16(len(frames))) // count

	offset := uint32(icoHeaderSize + icoEntrySize*len(frames))
	for i, f := range frames {
		b := f.Bounds()
		out.Write([]byte{icoDimension(b.Dx()), icoDimension(b.Dy()), 0, 0})
		_ = binary.Write(&out, binary.LittleEndian, uint16(1))  // planes
		_ = binary.Write(&out, binary.LittleEndian, uint16(32)) // bpp
		_ = binary.Write(&out, binary.LittleEndian, uint32(len(pngs[i])))
		_ = binary.Write(&out, binary.LittleEndian, offset)
		offset += uint32(len(pngs[i]))
	}
	for _, p := range pngs {
		out.Write(p)
	}
	_, err := w.Write(out.Bytes())
	return err
}

// ReadICODirectory parses the header and directory of an ICO container.
func ReadICODirectory(r io.Reader) ([]ICOEntry, error) {
	var header struct {
		Reserved uint16
		Type     uint16
		Count    uint16
	}
	if err := binary.Read(r, binary.LittleEndian, &header); err != nil {
		return nil, fmt.Errorf("%w: ico header: %w", ErrDecode, err)
	}
	if header.Reserved != 0 || header.Type != 1 {
		return nil, fmt.Errorf("%w: not an ico container", ErrDecode)
	}
	entries := make([]ICOEntry, 0, header.Count)
	for i := 0; i < int(header.Count); i++ {
		var raw struct {
			Width, Height, Colors, Reserved uint8
			Planes, BPP                     uint16
			Size, Offset                    uint32
		}
		if err := binary.Read(r, binary.LittleEndian, &raw); err != nil {
			return nil, fmt.Errorf("%w: ico entry %d: %w", ErrDecode, i, err)
		}
		entries = append(entries, ICOEntry{
			Width:  icoSize(raw.Width),
			Height: icoSize(raw.Height),
			Size:   raw.Size,
			Offset: raw.Offset,
		})
	}
	return entries, nil
}

// isICO reports whether b starts with an ICO header.
func isICO(b []byte) bool {
	return len(b) >= 4 && b[0] == 0 && b[1] == 0 && b[2] == 1 && b[3] == 0
}

// 0 means 256 in the directory.
func icoDimension(v int) byte {
	if v >= maxICOFrame {
		return 0
	}
	return byte(v)
}

func icoSize(v uint8) int {
	if v == 0 {
		return maxICOFrame
	}
	return int(v)
}
