package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"echokit/pkg/convert"
)

var convertCmd = &cobra.Command{
	Use:   "convert TEMP UNIT",
	Short: "Convert a temperature between C, F, and K",
	Long: `Converts a temperature such as "37.5C" or "98.6F" to the target unit.

Examples:
  echokit convert 100C F
  echokit convert 32F K`,
	Args: cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		value, from, err := convert.Parse(args[0])
		if err != nil {
			return err
		}

		to := convert.Unit(strings.ToUpper(args[1]))
		result, err := convert.Temperature(value, from, to)
		if err != nil {
			return err
		}

		fmt.Printf("%g%s = %g%s\n", value, from, result, to)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(convertCmd)
}
