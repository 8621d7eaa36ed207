package main

import (
	"io"
	"os"

	"github.com/spf13/cobra"

	"echokit/pkg/csvmerge"
)

var (
	csvMergeOutput       string
	csvMergeHeader       bool
	csvMergeMatchHeaders bool
	csvMergeSkipBlank    bool
)

var csvCmd = &cobra.Command{
	Use:   "csv",
	Short: "CSV utilities",
}

var csvMergeCmd = &cobra.Command{
	Use:   "merge FILE...",
	Short: "Merge CSV files into one",
	Args:  cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		var out io.Writer = os.Stdout
		if csvMergeOutput != "" {
			f, err := os.Create(csvMergeOutput)
			if err != nil {
				return err
			}
			defer f.Close()
			out = f
		}

		opts := csvmerge.Options{
			HasHeader:              csvMergeHeader,
			RequireMatchingHeaders: csvMergeMatchHeaders,
			SkipBlankRows:          csvMergeSkipBlank,
		}
		return csvmerge.MergeFiles(out, opts, args...)
	},
}

func init() {
	csvMergeCmd.Flags().StringVarP(&csvMergeOutput, "output", "o", "", "Output file (default stdout)")
	csvMergeCmd.Flags().BoolVar(&csvMergeHeader, "header", false, "Treat the first row of each input as a header")
	csvMergeCmd.Flags().BoolVar(&csvMergeMatchHeaders, "require-matching-headers", false, "Fail when input headers differ")
	csvMergeCmd.Flags().BoolVar(&csvMergeSkipBlank, "skip-blank", false, "Drop rows whose fields are all empty")

	csvCmd.AddCommand(csvMergeCmd)
	rootCmd.AddCommand(csvCmd)
}
