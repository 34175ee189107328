package main

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-compose-mcp/internal/config"
	"github.com/ironsheep/image-compose-mcp/internal/logger"
	"github.com/ironsheep/image-compose-mcp/internal/pipeline"
)

var cropCmd = &cobra.Command{
	Use:   "crop IMAGE",
	Short: "Crop and resize an image to an exact pixel size",
	Long: `Crop and resize an image to --width x --height pixels.

With --lock-aspect (the default) the image is center-cropped to the target
aspect ratio before resizing. Without --upscale the output is never larger
than the cropped source; the target shrinks to the source size instead.

The result is written to --output, or to crop-WxH.png (or .jpg) next to
the input.`,
	Args: cobra.ExactArgs(1),
	RunE: runCrop,
}

func init() {
	rootCmd.AddCommand(cropCmd)

	cropCmd.Flags().Float64("width", 0, "Target width in pixels")
	cropCmd.Flags().Float64("height", 0, "Target height in pixels")
	cropCmd.Flags().Float64("min-width", 0, "Reject targets narrower than this")
	cropCmd.Flags().Float64("min-height", 0, "Reject targets shorter than this")
	cropCmd.Flags().Float64("max-width", 0, "Reject targets wider than this")
	cropCmd.Flags().Float64("max-height", 0, "Reject targets taller than this")
	cropCmd.Flags().Bool("lock-aspect", true, "Center-crop to the target aspect ratio")
	cropCmd.Flags().Bool("upscale", false, "Allow output larger than the cropped source")
	cropCmd.Flags().String("background", "", "Background hex color (default white)")
	cropCmd.Flags().String("format", "", "Output format: png or jpeg")
	cropCmd.Flags().Float64("quality", 0, "JPEG quality between 0 and 1")
	cropCmd.Flags().StringP("output", "o", "", "Output file or directory")
}

// cropOptions overlays the crop flags onto the configured defaults.
func cropOptions(cmd *cobra.Command) config.CropOptions {
	opts := cfg.Crop
	setFloat64(cmd, "width", &opts.TargetSize.Width)
	setFloat64(cmd, "height", &opts.TargetSize.Height)
	setBool(cmd, "lock-aspect", &opts.LockAspectRatio)
	setBool(cmd, "upscale", &opts.AllowUpscale)
	setString(cmd, "background", &opts.BackgroundColor)
	setString(cmd, "format", &opts.OutputFormat)
	setFloat64(cmd, "quality", &opts.JPEGQuality)

	if cmd.Flags().Changed("min-width") || cmd.Flags().Changed("min-height") {
		opts.MinSize = &config.Size{Width: mustGetFloat64(cmd, "min-width"), Height: mustGetFloat64(cmd, "min-height")}
	}
	if cmd.Flags().Changed("max-width") || cmd.Flags().Changed("max-height") {
		limit := config.Size{Width: mustGetFloat64(cmd, "max-width"), Height: mustGetFloat64(cmd, "max-height")}
		if limit.Width == 0 {
			limit.Width = opts.TargetSize.Width
		}
		if limit.Height == 0 {
			limit.Height = opts.TargetSize.Height
		}
		opts.MaxSize = &limit
	}
	return opts
}

func runCrop(cmd *cobra.Command, args []string) error {
	input := args[0]
	opts := cropOptions(cmd)

	p := pipeline.New(nil, *logger.Get())
	out, err := p.CropFile(context.Background(), input, opts)
	if err != nil {
		return err
	}

	dest := mustGetString(cmd, "output")
	switch {
	case dest == "":
		dest = filepath.Join(filepath.Dir(input), out.FileName)
	case isDir(dest):
		dest = filepath.Join(dest, out.FileName)
	}
	if err := os.WriteFile(dest, out.Data, 0o644); err != nil {
		return fmt.Errorf("failed to write %s: %w", dest, err)
	}

	fmt.Printf("Wrote %s (%dx%d %s)\n", dest, out.Width, out.Height, out.Format)
	if out.Plan.Clamped {
		fmt.Printf("Note: output reduced from %gx%g; pass --upscale to enlarge\n",
			opts.TargetSize.Width, opts.TargetSize.Height)
	}
	return nil
}

func isDir(path string) bool {
	info, err := os.Stat(path)
	return err == nil && info.IsDir()
}
