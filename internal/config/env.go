package config

import (
	"os"
	"strconv"
	"strings"
)

// ApplyEnv overlays IMGCOMPOSE_* environment variables onto c. Unset, empty
// or unparsable variables leave the current value alone.
func (c *Config) ApplyEnv() {
	envString("LOG_LEVEL", &c.Logging.Level)
	envString("LOG_FORMAT", &c.Logging.Format)
	envString("LOG_FILE", &c.Logging.File)

	envFloat("CROP_WIDTH", &c.Crop.TargetSize.Width)
	envFloat("CROP_HEIGHT", &c.Crop.TargetSize.Height)
	envBool("CROP_LOCK_ASPECT", &c.Crop.LockAspectRatio)
	envBool("CROP_ALLOW_UPSCALE", &c.Crop.AllowUpscale)
	envString("CROP_BACKGROUND", &c.Crop.BackgroundColor)
	envString("CROP_FORMAT", &c.Crop.OutputFormat)
	envFloat("CROP_QUALITY", &c.Crop.JPEGQuality)

	envString("PAGE_SIZE", &c.Document.PageSize.Name)
	envString("ORIENTATION", &c.Document.Orientation)
	envString("FIT_MODE", &c.Document.FitMode)
	envFloat("ROTATION", &c.Document.RotationDegrees)
	var margin float64
	if envFloat("MARGIN", &margin) {
		c.Document.Margins.Top = margin
		c.Document.Margins.Right = margin
		c.Document.Margins.Bottom = margin
		c.Document.Margins.Left = margin
	}
	envString("HEADER", &c.Document.Decorations.Header)
	envString("FOOTER", &c.Document.Decorations.Footer)
	envString("CAPTION", &c.Document.Decorations.Caption)
	envBool("PAGE_NUMBERS", &c.Document.Decorations.PageNumbers)
	envString("TITLE", &c.Document.Metadata.Title)
	envString("AUTHOR", &c.Document.Metadata.Author)
	envString("PDF_IMAGE_FORMAT", &c.Document.ImageFormat)
	envFloat("PDF_IMAGE_QUALITY", &c.Document.ImageQuality)
	envBool("PDF_CLIP", &c.Document.ClipOverflow)
	envString("PDF_BACKGROUND", &c.Document.Background)
}

func lookup(key string) (string, bool) {
	s, ok := os.LookupEnv(EnvPrefix + key)
	s = strings.TrimSpace(s)
	return s, ok && s != ""
}

func envString(key string, dst *string) bool {
	s, ok := lookup(key)
	if ok {
		*dst = s
	}
	return ok
}

func envFloat(key string, dst *float64) bool {
	s, ok := lookup(key)
	if !ok {
		return false
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return false
	}
	*dst = f
	return true
}

func envBool(key string, dst *bool) bool {
	s, ok := lookup(key)
	if !ok {
		return false
	}
	b, err := strconv.ParseBool(s)
	if err != nil {
		return false
	}
	*dst = b
	return true
}
