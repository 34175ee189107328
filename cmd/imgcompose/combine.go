package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"path/filepath"
	"syscall"

	"github.com/schollz/progressbar/v3"
	"github.com/spf13/cobra"

	"github.com/ironsheep/image-compose-mcp/internal/logger"
	"github.com/ironsheep/image-compose-mcp/internal/pipeline"
)

var combineCmd = &cobra.Command{
	Use:   "combine IMAGE...",
	Short: "Combine images into a PDF, one image per page",
	Long: `Combine images into a single PDF with one image per page, in the order
given. Each image is fitted into the area inside the margins.

Examples:
  imgcompose combine scans/*.png -o scans.pdf --page-numbers
  imgcompose combine a.jpg b.jpg --page-size letter --orientation landscape --fit cover --clip`,
	Args: cobra.MinimumNArgs(1),
	RunE: runCombine,
}

func init() {
	rootCmd.AddCommand(combineCmd)

	addDocumentFlags(combineCmd)
	combineCmd.Flags().StringP("output", "o", "", "Output PDF file or directory (default ./<output file name>)")
	combineCmd.Flags().BoolP("quiet", "q", false, "Do not show progress")
}

func runCombine(cmd *cobra.Command, args []string) error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	opts := documentOptions(cmd)
	dest := mustGetString(cmd, "output")
	switch {
	case dest == "":
		dest = opts.OutputFileName
	case isDir(dest):
		dest = filepath.Join(dest, opts.OutputFileName)
	}
	opts.OutputFileName = filepath.Base(dest)

	var bar *progressbar.ProgressBar
	if !mustGetBool(cmd, "quiet") {
		bar = progressbar.NewOptions(len(args),
			progressbar.OptionSetDescription("Writing pages"),
			progressbar.OptionShowCount(),
			progressbar.OptionSetItsString("pages"),
			progressbar.OptionShowElapsedTimeOnFinish(),
			progressbar.OptionSetWriter(os.Stderr),
			progressbar.OptionFullWidth(),
		)
	}
	onPage := func(index, total int) {
		if bar != nil {
			_ = bar.Add(1)
		}
	}

	tmp, err := os.CreateTemp(filepath.Dir(dest), ".imgcompose-*.pdf")
	if err != nil {
		return fmt.Errorf("failed to create output: %w", err)
	}
	defer os.Remove(tmp.Name())

	p := pipeline.New(nil, *logger.Get())
	res, err := p.Combine(ctx, imageRefs(args), opts, tmp, onPage)
	if cerr := tmp.Close(); err == nil && cerr != nil {
		err = cerr
	}
	if bar != nil {
		_ = bar.Finish()
		fmt.Fprintln(os.Stderr)
	}
	if err != nil {
		var partial *pipeline.PartialError
		if errors.As(err, &partial) && len(partial.Pages) > 0 {
			fmt.Fprintf(os.Stderr, "%d of %d pages were laid out before the failure; no PDF was written\n",
				len(partial.Pages), len(args))
		}
		return err
	}

	if err := os.Rename(tmp.Name(), dest); err != nil {
		return fmt.Errorf("failed to move output into place: %w", err)
	}
	fmt.Printf("Wrote %s (%d pages, %d bytes)\n", dest, res.PageCount, res.Bytes)
	return nil
}
