package main

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/cobra"

	"placement-backend/internal/analysis"
	"placement-backend/internal/extract"
	"placement-backend/internal/history"
	"placement-backend/internal/shared/storage/kv"
)

const cliOwner = "cli:local"

type analyzeOptions struct {
	file    string
	company string
	role    string
	format  string
}

func newAnalyzeCmd() *cobra.Command {
	opts := &analyzeOptions{}
	cmd := &cobra.Command{
		Use:   "analyze",
		Short: "Analyze a job description file",
		Long: `Extract text from a PDF, DOCX or plain text JD and print the analysis.

--format json prints the history entry; --format text prints the 7-day plan export.`,
		RunE: func(cmd *cobra.Command, _ []string) error {
			return runAnalyze(cmd, opts)
		},
	}
	cmd.Flags().StringVarP(&opts.file, "file", "f", "", "JD file (pdf, docx, txt, md)")
	cmd.Flags().StringVar(&opts.company, "company", "", "company name")
	cmd.Flags().StringVar(&opts.role, "role", "", "role title")
	cmd.Flags().StringVar(&opts.format, "format", "json", "output format: json or text")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}

func runAnalyze(cmd *cobra.Command, opts *analyzeOptions) error {
	if opts.format != "json" && opts.format != "text" {
		return fmt.Errorf("unknown format %q (want json or text)", opts.format)
	}
	data, err := os.ReadFile(opts.file)
	if err != nil {
		return fmt.Errorf("read %s: %w", opts.file, err)
	}
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}
	text, err := extract.Text(ctx, data, "", filepath.Base(opts.file))
	if err != nil {
		return fmt.Errorf("extract text: %w", err)
	}

	svc := history.NewService(&history.KVRepo{Store: kv.NewMemoryStore()}, 0)
	defer svc.Close(ctx)
	entry, err := svc.Analyze(ctx, cliOwner, analysis.Input{JDText: text, Company: opts.company, Role: opts.role})
	if err != nil {
		return err
	}

	out := cmd.OutOrStdout()
	if opts.format == "text" {
		_, err = fmt.Fprint(out, history.RenderPlan(entry))
		return err
	}
	enc := json.NewEncoder(out)
	enc.SetIndent("", "  ")
	return enc.Encode(entry)
}
