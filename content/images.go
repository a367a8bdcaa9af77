package content

import (
	"bytes"
	"fmt"
	"image"

	// formats we are willing to measure
	_ "image/gif"
	_ "image/jpeg"
	_ "image/png"

	_ "golang.org/x/image/bmp"
	_ "golang.org/x/image/tiff"
	_ "golang.org/x/image/webp"

	"github.com/h2non/filetype"
)

// ImageSize sniffs the payload and returns intrinsic pixel dimensions.
// Only the header is decoded, never the full image.
func ImageSize(data []byte) (width, height int, err error) {
	if !filetype.IsImage(data) {
		return 0, 0, fmt.Errorf("payload is not a supported image")
	}
	cfg, format, err := image.DecodeConfig(bytes.NewReader(data))
	if err != nil {
		return 0, 0, fmt.Errorf("unable to decode image header: %w", err)
	}
	if cfg.Width <= 0 || cfg.Height <= 0 {
		return 0, 0, fmt.Errorf("image (%s) reports non-positive dimensions %dx%d", format, cfg.Width, cfg.Height)
	}
	return cfg.Width, cfg.Height, nil
}
