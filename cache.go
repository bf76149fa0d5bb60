package iconset

import (
	"image"
	"sync"

	"github.com/disintegration/imaging"
)

type cacheKey struct {
	width  int
	height int
}

type cacheEntry struct {
	once sync.Once
	img  *image.NRGBA
	err  error
}

// resizeCache memoises resized images for one run, so a size shared by
// several outputs is resampled once.
type resizeCache struct {
	src    image.Image
	filter imaging.ResampleFilter
	m      sync.Map
}

func newResizeCache(src image.Image, filter imaging.ResampleFilter) *resizeCache {
	return &resizeCache{
		src:    src,
		filter: filter,
	}
}

// Load returns the source resized to width x height.
// The returned image is shared and must not be modified.
func (c *resizeCache) Load(width, height int) (*image.NRGBA, error) {
	v, _ := c.m.LoadOrStore(cacheKey{width: width, height: height}, &cacheEntry{})
	e := v.(*cacheEntry)
	e.once.Do(func() {
		e.img, e.err = Resize(c.src, width, height, c.filter)
	})
	return e.img, e.err
}
