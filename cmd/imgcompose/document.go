package main

import (
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-compose-mcp/internal/config"
	"github.com/ironsheep/image-compose-mcp/internal/page"
)

// addDocumentFlags registers the layout flags shared by combine and plan.
func addDocumentFlags(cmd *cobra.Command) {
	cmd.Flags().String("page-size", "", "Page size: a4, letter or custom")
	cmd.Flags().Float64("page-width", 0, "Custom page width in mm")
	cmd.Flags().Float64("page-height", 0, "Custom page height in mm")
	cmd.Flags().String("orientation", "", "portrait or landscape")
	cmd.Flags().Float64("margin", 0, "Margin on all sides in mm")
	cmd.Flags().String("fit", "", "Fit mode: contain, cover or stretch")
	cmd.Flags().Float64("rotate", 0, "Rotate every image clockwise by degrees")
	cmd.Flags().String("header", "", "Header text on every page")
	cmd.Flags().String("footer", "", "Footer text on every page")
	cmd.Flags().String("caption", "", "Caption below every image")
	cmd.Flags().Bool("page-numbers", false, "Add \"Page N of M\" to every page")
	cmd.Flags().String("title", "", "Document title")
	cmd.Flags().String("author", "", "Document author")
	cmd.Flags().String("image-format", "", "Embedded image format: jpeg or png")
	cmd.Flags().Float64("quality", 0, "Embedded JPEG quality between 0 and 1; 1 embeds PNG")
	cmd.Flags().Bool("clip", false, "Clip cover-fitted images to the margins")
	cmd.Flags().String("background", "", "Hex color for corners exposed by rotation")
}

// documentOptions overlays the document flags onto the configured defaults.
func documentOptions(cmd *cobra.Command) config.DocumentOptions {
	opts := cfg.Document
	setString(cmd, "page-size", &opts.PageSize.Name)
	setFloat64(cmd, "page-width", &opts.PageSize.Width)
	setFloat64(cmd, "page-height", &opts.PageSize.Height)
	setString(cmd, "orientation", &opts.Orientation)
	if cmd.Flags().Changed("margin") {
		opts.Margins = page.Uniform(mustGetFloat64(cmd, "margin"))
	}
	setString(cmd, "fit", &opts.FitMode)
	setFloat64(cmd, "rotate", &opts.RotationDegrees)
	setString(cmd, "header", &opts.Decorations.Header)
	setString(cmd, "footer", &opts.Decorations.Footer)
	setString(cmd, "caption", &opts.Decorations.Caption)
	setBool(cmd, "page-numbers", &opts.Decorations.PageNumbers)
	setString(cmd, "title", &opts.Metadata.Title)
	setString(cmd, "author", &opts.Metadata.Author)
	setString(cmd, "image-format", &opts.ImageFormat)
	setFloat64(cmd, "quality", &opts.ImageQuality)
	setBool(cmd, "clip", &opts.ClipOverflow)
	setString(cmd, "background", &opts.Background)
	return opts
}

func imageRefs(args []string) []page.ImageRef {
	refs := make([]page.ImageRef, len(args))
	for i, a := range args {
		refs[i] = page.ImageRef(a)
	}
	return refs
}
