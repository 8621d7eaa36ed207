package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"echokit/pkg/hashutil"
)

var hashCmd = &cobra.Command{
	Use:   "hash [path...]",
	Short: "Print SHA-256 digests of files, directories, or stdin",
	RunE: func(cmd *cobra.Command, args []string) error {
		if len(args) == 0 {
			digest, err := hashutil.SumReader(os.Stdin)
			if err != nil {
				return err
			}
			fmt.Printf("%s  -\n", digest)
			return nil
		}

		for _, path := range args {
			info, err := os.Stat(path)
			if err != nil {
				return err
			}

			if info.IsDir() {
				results, err := hashutil.SumDir(path)
				if err != nil {
					return err
				}
				for _, r := range results {
					fmt.Printf("%s  %s\n", r.Digest, r.Path)
				}
				continue
			}

			digest, err := hashutil.SumFile(path)
			if err != nil {
				return err
			}
			fmt.Printf("%s  %s\n", digest, path)
		}
		return nil
	},
}

func init() {
	rootCmd.AddCommand(hashCmd)
}
