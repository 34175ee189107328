package main

import (
	"context"
	"encoding/json"
	"os"

	"github.com/spf13/cobra"

	"github.com/ironsheep/image-compose-mcp/internal/logger"
	"github.com/ironsheep/image-compose-mcp/internal/pipeline"
)

var planCmd = &cobra.Command{
	Use:   "plan IMAGE...",
	Short: "Print the page layout for images as JSON without writing a PDF",
	Args:  cobra.MinimumNArgs(1),
	RunE:  runPlan,
}

func init() {
	rootCmd.AddCommand(planCmd)
	addDocumentFlags(planCmd)
}

func runPlan(cmd *cobra.Command, args []string) error {
	p := pipeline.New(nil, *logger.Get())
	doc, err := p.Plan(context.Background(), imageRefs(args), documentOptions(cmd))
	if err != nil {
		return err
	}

	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(doc)
}
