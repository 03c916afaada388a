package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"placement-backend/internal/resume"
)

func newATSCmd() *cobra.Command {
	var file string
	cmd := &cobra.Command{
		Use:   "ats",
		Short: "Score a resume JSON file",
		RunE: func(cmd *cobra.Command, _ []string) error {
			raw, err := os.ReadFile(file)
			if err != nil {
				return fmt.Errorf("read %s: %w", file, err)
			}
			var doc map[string]any
			if err := json.Unmarshal(raw, &doc); err != nil {
				return fmt.Errorf("parse %s: %w", file, err)
			}
			if err := resume.Validate(doc); err != nil {
				return err
			}
			enc := json.NewEncoder(cmd.OutOrStdout())
			enc.SetIndent("", "  ")
			return enc.Encode(resume.Score(resume.Decode(string(raw))))
		},
	}
	cmd.Flags().StringVarP(&file, "file", "f", "", "resume JSON file")
	_ = cmd.MarkFlagRequired("file")
	return cmd
}
