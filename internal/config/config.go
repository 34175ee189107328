// Package config holds the caller-facing option sets for cropping and
// document assembly, and loads them from YAML files and IMGCOMPOSE_*
// environment variables.
package config

import (
	"errors"
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/ironsheep/image-compose-mcp/internal/document"
	"github.com/ironsheep/image-compose-mcp/internal/geometry"
	"github.com/ironsheep/image-compose-mcp/internal/imaging"
	"github.com/ironsheep/image-compose-mcp/internal/page"
	"github.com/ironsheep/image-compose-mcp/internal/planner"
)

// ErrSizeOutOfRange is returned when a target size violates its min or max
// bound.
var ErrSizeOutOfRange = errors.New("size out of range")

// EnvPrefix prefixes every environment variable read by ApplyEnv.
const EnvPrefix = "IMGCOMPOSE_"

// Size is a width and height in pixels or millimetres, depending on use.
type Size struct {
	Width  float64 `json:"width" yaml:"width"`
	Height float64 `json:"height" yaml:"height"`
}

// CropOptions configures a single crop & resize.
type CropOptions struct {
	TargetSize      Size    `json:"target_size" yaml:"target_size"`
	MinSize         *Size   `json:"min_size,omitempty" yaml:"min_size"`
	MaxSize         *Size   `json:"max_size,omitempty" yaml:"max_size"`
	LockAspectRatio bool    `json:"lock_aspect_ratio" yaml:"lock_aspect_ratio"`
	AllowUpscale    bool    `json:"allow_upscale" yaml:"allow_upscale"`
	BackgroundColor string  `json:"background_color,omitempty" yaml:"background_color"`
	OutputFormat    string  `json:"output_format,omitempty" yaml:"output_format"`
	JPEGQuality     float64 `json:"jpeg_quality" yaml:"jpeg_quality"`
}

// Validate checks the options before any image is decoded.
func (o CropOptions) Validate() error {
	t := o.TargetSize
	if t.Width <= 0 || t.Height <= 0 {
		return fmt.Errorf("%w: %gx%g", planner.ErrInvalidTargetSize, t.Width, t.Height)
	}
	if m := o.MinSize; m != nil && (t.Width < m.Width || t.Height < m.Height) {
		return fmt.Errorf("%w: %gx%g below minimum %gx%g", ErrSizeOutOfRange, t.Width, t.Height, m.Width, m.Height)
	}
	if m := o.MaxSize; m != nil && (t.Width > m.Width || t.Height > m.Height) {
		return fmt.Errorf("%w: %gx%g above maximum %gx%g", ErrSizeOutOfRange, t.Width, t.Height, m.Width, m.Height)
	}
	if _, err := imaging.ParseFormat(o.OutputFormat); err != nil {
		return err
	}
	if o.JPEGQuality < 0 || o.JPEGQuality > 1 {
		return fmt.Errorf("jpeg_quality must be between 0 and 1, got %g", o.JPEGQuality)
	}
	if _, err := imaging.ParseColor(o.BackgroundColor); err != nil {
		return err
	}
	return nil
}

// Target returns the target size as a pixel dimension.
func (o CropOptions) Target() geometry.Dimension {
	return geometry.Px(o.TargetSize.Width, o.TargetSize.Height)
}

// PageSize names a standard page or gives a custom size in millimetres.
type PageSize struct {
	Name   string  `json:"name" yaml:"name"`
	Width  float64 `json:"width,omitempty" yaml:"width"`
	Height float64 `json:"height,omitempty" yaml:"height"`
}

// DocumentOptions configures how a sequence of images becomes a PDF.
type DocumentOptions struct {
	PageSize        PageSize          `json:"page_size" yaml:"page_size"`
	Orientation     string            `json:"orientation" yaml:"orientation"`
	Margins         page.Margins      `json:"margins" yaml:"margins"`
	FitMode         string            `json:"fit_mode" yaml:"fit_mode"`
	RotationDegrees float64           `json:"rotation_degrees" yaml:"rotation_degrees"`
	Decorations     page.Decorations  `json:"decorations" yaml:"decorations"`
	Metadata        document.Metadata `json:"metadata" yaml:"metadata"`
	OutputFileName  string            `json:"output_file_name,omitempty" yaml:"output_file_name"`

	// ImageFormat and ImageQuality select how pages embed their image.
	ImageFormat  string  `json:"image_format,omitempty" yaml:"image_format"`
	ImageQuality float64 `json:"image_quality" yaml:"image_quality"`

	// ClipOverflow clips cover-fitted images to the drawable area.
	ClipOverflow bool `json:"clip_overflow" yaml:"clip_overflow"`

	// Background fills the corners uncovered by a rotation.
	Background string `json:"background,omitempty" yaml:"background"`
}

// Layout resolves the options to a page layout.
func (o DocumentOptions) Layout() (page.Layout, error) {
	size, err := page.Dimension(o.PageSize.Name, geometry.Mm(o.PageSize.Width, o.PageSize.Height), page.Orientation(strings.ToLower(o.Orientation)))
	if err != nil {
		return page.Layout{}, err
	}
	strategy, err := planner.ParseStrategy(o.FitMode)
	if err != nil {
		return page.Layout{}, err
	}
	return page.Layout{
		PageSize:    size,
		Margins:     o.Margins,
		Strategy:    strategy,
		Rotation:    o.RotationDegrees,
		Decorations: o.Decorations,
	}, nil
}

// EmbedFormat is the encoding used for page images: JPEG only when jpeg was
// asked for with a quality below 1, PNG otherwise.
func (o DocumentOptions) EmbedFormat() imaging.Format {
	f, err := imaging.ParseFormat(o.ImageFormat)
	if err == nil && f == imaging.JPEG && o.ImageQuality < 1 {
		return imaging.JPEG
	}
	return imaging.PNG
}

// Validate checks the options before any image is decoded.
func (o DocumentOptions) Validate() error {
	layout, err := o.Layout()
	if err != nil {
		return err
	}
	if _, err := layout.Margins.Drawable(layout.PageSize); err != nil {
		return err
	}
	if _, err := imaging.ParseFormat(o.ImageFormat); err != nil {
		return err
	}
	if o.ImageQuality < 0 || o.ImageQuality > 1 {
		return fmt.Errorf("image_quality must be between 0 and 1, got %g", o.ImageQuality)
	}
	if o.Background != "" {
		if _, err := imaging.ParseColor(o.Background); err != nil {
			return err
		}
	}
	return nil
}

// LoggingConfig configures the process logger.
type LoggingConfig struct {
	Level  string `json:"level" yaml:"level"`
	Format string `json:"format" yaml:"format"` // "console" or "json"
	File   string `json:"file,omitempty" yaml:"file"`

	// Rotation settings, only used with File.
	MaxSizeMB  int `json:"max_size_mb" yaml:"max_size_mb"`
	MaxBackups int `json:"max_backups" yaml:"max_backups"`
	MaxAgeDays int `json:"max_age_days" yaml:"max_age_days"`
}

// Config is the full application configuration.
type Config struct {
	Logging  LoggingConfig   `json:"logging" yaml:"logging"`
	Crop     CropOptions     `json:"crop" yaml:"crop"`
	Document DocumentOptions `json:"document" yaml:"document"`
}

// Default returns a configuration with default values.
func Default() *Config {
	return &Config{
		Logging: LoggingConfig{
			Level:      "info",
			Format:     "console",
			MaxSizeMB:  10,
			MaxBackups: 3,
			MaxAgeDays: 28,
		},
		Crop: CropOptions{
			TargetSize:      Size{Width: 1024, Height: 1024},
			LockAspectRatio: true,
			BackgroundColor: "#ffffff",
			OutputFormat:    string(imaging.PNG),
			JPEGQuality:     imaging.DefaultQuality,
		},
		Document: DocumentOptions{
			PageSize:       PageSize{Name: "a4"},
			Orientation:    string(page.Portrait),
			Margins:        page.Uniform(10),
			FitMode:        string(planner.Contain),
			OutputFileName: document.DefaultFileName,
			ImageFormat:    string(imaging.JPEG),
			ImageQuality:   imaging.DefaultQuality,
		},
	}
}

// LoadFile reads a YAML configuration file over the defaults. Keys missing
// from the file keep their default value.
func LoadFile(path string) (*Config, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("failed to read config file: %w", err)
	}

	cfg := Default()
	if err := yaml.Unmarshal(data, cfg); err != nil {
		return nil, fmt.Errorf("failed to parse config file: %w", err)
	}
	return cfg, nil
}

// Validate checks every section.
func (c *Config) Validate() error {
	switch c.Logging.Format {
	case "console", "json", "":
	default:
		return fmt.Errorf("logging.format must be console or json, got %q", c.Logging.Format)
	}
	if err := c.Crop.Validate(); err != nil {
		return fmt.Errorf("crop: %w", err)
	}
	if err := c.Document.Validate(); err != nil {
		return fmt.Errorf("document: %w", err)
	}
	return nil
}
