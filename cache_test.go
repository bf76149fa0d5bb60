package iconset

import (
	"sync"
	"testing"

	"github.com/disintegration/imaging"
)

func TestResizeCache(t *testing.T) {
	c := newResizeCache(patternImage(64, 64, false), imaging.Lanczos)

	first, err := c.Load(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	second, err := c.Load(32, 32)
	if err != nil {
		t.Fatal(err)
	}
	if first != second {
		t.Error("Load() resized the same size twice")
	}
	other, err := c.Load(16, 16)
	if err != nil {
		t.Fatal(err)
	}
	if other == first {
		t.Error("Load() returned the same image for different sizes")
	}
	if _, err := c.Load(0, 16); err == nil {
		t.Error("Load() expected error for an invalid size")
	}
}

func TestResizeCacheConcurrent(t *testing.T) {
	c := newResizeCache(patternImage(128, 128, false), imaging.Lanczos)
	var wg sync.WaitGroup
	got := make([]any, 16)
	for i := range got {
		wg.Add(1)
		go func() {
			defer wg.Done()
			img, err := c.Load(48, 48)
			if err != nil {
				t.Error(err)
				return
			}
			got[i] = img
		}()
	}
	wg.Wait()
	for i := 1; i < len(got); i++ {
		if got[i] != got[0] {
			t.Fatalf("Load() returned different images for the same size")
		}
	}
}
