package imaging

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"image"
	_ "image/gif"  // Register GIF format decoder
	_ "image/jpeg" // Register JPEG format decoder
	_ "image/png"  // Register PNG format decoder
	"io"
	"os"
	"sync"

	"github.com/disintegration/imaging"
	"github.com/gabriel-vasile/mimetype"
	_ "golang.org/x/image/bmp"  // Register BMP format decoder
	_ "golang.org/x/image/tiff" // Register TIFF format decoder
	_ "golang.org/x/image/webp" // Register WebP format decoder

	"github.com/ironsheep/image-compose-mcp/internal/geometry"
	"github.com/ironsheep/image-compose-mcp/internal/page"
)

// ErrUnsupportedFormat is returned when source bytes are not a decodable image.
var ErrUnsupportedFormat = errors.New("unsupported image format")

// supportedTypes maps sniffed MIME types to format names.
var supportedTypes = []struct {
	mime   string
	format string
}{
	{"image/png", "png"},
	{"image/jpeg", "jpeg"},
	{"image/gif", "gif"},
	{"image/bmp", "bmp"},
	{"image/tiff", "tiff"},
	{"image/webp", "webp"},
}

// Source is a decoded image together with its detected format.
type Source struct {
	Image  image.Image
	Format string
	Size   geometry.Dimension
}

// Decode reads an encoded image and returns its pixels and pixel size.
//
// The format is sniffed from the content with mimetype before decoding, so a
// PNG named photo.jpg still decodes and a text file named image.png fails with
// ErrUnsupportedFormat.
func Decode(r io.Reader) (*Source, error) {
	data, err := io.ReadAll(r)
	if err != nil {
		return nil, fmt.Errorf("failed to read image: %w", err)
	}

	mt := mimetype.Detect(data)
	format := ""
	for _, t := range supportedTypes {
		if mt.Is(t.mime) {
			format = t.format
			break
		}
	}
	if format == "" {
		return nil, fmt.Errorf("%w: %s", ErrUnsupportedFormat, mt.String())
	}

	img, err := imaging.Decode(bytes.NewReader(data), imaging.AutoOrientation(true))
	if err != nil {
		return nil, fmt.Errorf("%w: %s: %v", ErrUnsupportedFormat, format, err)
	}

	b := img.Bounds()
	if b.Empty() {
		return nil, fmt.Errorf("%w: empty %s image", ErrUnsupportedFormat, format)
	}

	return &Source{
		Image:  img,
		Format: format,
		Size:   geometry.Px(float64(b.Dx()), float64(b.Dy())),
	}, nil
}

// ImageCache provides thread-safe caching of decoded images to avoid redundant
// disk reads and decodes.
//
// The cache stores decoded sources keyed by their file path. Once an image is
// loaded, subsequent Load() calls for the same path return the cached copy.
//
// ImageCache implements page.Source, so a page composer can read image
// dimensions through it and the renderer later reuses the same decode.
//
// # Example Usage
//
//	cache := imaging.NewImageCache()
//	src, err := cache.Load("/path/to/image.png")
//	if err != nil {
//	    return err
//	}
//	// Use src.Image, src.Size...
//	cache.Evict("/path/to/image.png") // Optional: free memory
type ImageCache struct {
	mu     sync.RWMutex
	images map[string]*Source
}

// NewImageCache creates and initializes a new empty image cache.
func NewImageCache() *ImageCache {
	return &ImageCache{
		images: make(map[string]*Source),
	}
}

// Load retrieves an image from the cache or decodes it from disk.
//
// The image is cached using the exact path string provided. Different paths to
// the same file (e.g., relative vs absolute) result in separate cache entries.
//
// # Errors
//
//   - Returns error if the file does not exist or cannot be read
//   - Returns ErrUnsupportedFormat if the content is not a supported image
func (c *ImageCache) Load(path string) (*Source, error) {
	c.mu.RLock()
	if src, ok := c.images[path]; ok {
		c.mu.RUnlock()
		return src, nil
	}
	c.mu.RUnlock()

	src, err := decodeFile(path)
	if err != nil {
		return nil, err
	}

	c.mu.Lock()
	c.images[path] = src
	c.mu.Unlock()

	return src, nil
}

// Dimensions implements page.Source. A cached image answers directly;
// otherwise the file is decoded and the pixels are dropped without being
// cached, so planning a document holds no decoded images.
//
// The full decode is needed because EXIF orientation can swap the axes.
func (c *ImageCache) Dimensions(ctx context.Context, ref page.ImageRef) (geometry.Dimension, error) {
	if err := ctx.Err(); err != nil {
		return geometry.Dimension{}, err
	}
	if src, ok := c.lookup(string(ref)); ok {
		return src.Size, nil
	}

	src, err := decodeFile(string(ref))
	if err != nil {
		return geometry.Dimension{}, err
	}
	return src.Size, nil
}

func (c *ImageCache) lookup(path string) (*Source, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	src, ok := c.images[path]
	return src, ok
}

// Len reports the number of cached images.
func (c *ImageCache) Len() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return len(c.images)
}

func decodeFile(path string) (*Source, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("failed to open image: %w", err)
	}
	defer f.Close()
	return Decode(f)
}

// Clear removes all images from the cache, freeing the associated memory.
func (c *ImageCache) Clear() {
	c.mu.Lock()
	c.images = make(map[string]*Source)
	c.mu.Unlock()
}

// Evict removes a specific image from the cache by its path.
//
// If the path is not in the cache, this method does nothing.
func (c *ImageCache) Evict(path string) {
	c.mu.Lock()
	delete(c.images, path)
	c.mu.Unlock()
}

// ImageInfo contains metadata about a loaded image file.
type ImageInfo struct {
	// Width is the image width in pixels.
	Width int `json:"width"`

	// Height is the image height in pixels.
	Height int `json:"height"`

	// Format is the format detected from the file content: "png", "jpeg",
	// "gif", "bmp", "tiff" or "webp".
	Format string `json:"format"`

	// ColorDepth indicates the bit depth per channel: "8-bit" or "16-bit".
	ColorDepth string `json:"color_depth"`

	// HasAlpha indicates whether the image has an alpha (transparency) channel.
	HasAlpha bool `json:"has_alpha"`

	// FileSizeBytes is the size of the image file on disk in bytes.
	FileSizeBytes int64 `json:"file_size_bytes"`

	// PhysicalWidthMM and PhysicalHeightMM are the image size at the
	// 96 DPI reference density.
	PhysicalWidthMM  float64 `json:"physical_width_mm"`
	PhysicalHeightMM float64 `json:"physical_height_mm"`
}

// LoadImageInfo loads an image and returns metadata about it.
//
// # Color Depth Detection
//
// Color depth is determined by the Go image type:
//   - *image.RGBA64, *image.NRGBA64, *image.Gray16 -> "16-bit"
//   - All other types -> "8-bit"
func LoadImageInfo(cache *ImageCache, path string) (*ImageInfo, error) {
	src, err := cache.Load(path)
	if err != nil {
		return nil, err
	}

	stat, err := os.Stat(path)
	if err != nil {
		return nil, fmt.Errorf("failed to stat file: %w", err)
	}

	hasAlpha := false
	colorDepth := "8-bit"
	switch src.Image.(type) {
	case *image.RGBA, *image.NRGBA:
		hasAlpha = true
	case *image.RGBA64, *image.NRGBA64:
		hasAlpha = true
		colorDepth = "16-bit"
	case *image.Gray16:
		colorDepth = "16-bit"
	}

	physical := src.Size.ToPhysical()
	return &ImageInfo{
		Width:            int(src.Size.Width),
		Height:           int(src.Size.Height),
		Format:           src.Format,
		ColorDepth:       colorDepth,
		HasAlpha:         hasAlpha,
		FileSizeBytes:    stat.Size(),
		PhysicalWidthMM:  physical.Width,
		PhysicalHeightMM: physical.Height,
	}, nil
}

// DimensionsResult contains the width and height of an image.
type DimensionsResult struct {
	Width  int `json:"width"`
	Height int `json:"height"`
}

// GetDimensions returns the dimensions of an image without additional metadata.
func GetDimensions(cache *ImageCache, path string) (*DimensionsResult, error) {
	src, err := cache.Load(path)
	if err != nil {
		return nil, err
	}
	return &DimensionsResult{
		Width:  int(src.Size.Width),
		Height: int(src.Size.Height),
	}, nil
}
