package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"echokit/pkg/validate"
)

var validateCmd = &cobra.Command{
	Use:   "validate {email|phone|url} VALUE",
	Short: "Validate an email address, phone number, or URL",
	Args:  cobra.ExactArgs(2),
	RunE: func(cmd *cobra.Command, args []string) error {
		kind, value := args[0], args[1]

		var err error
		switch kind {
		case "email":
			err = validate.Email(value)
		case "phone":
			err = validate.Phone(value)
		case "url":
			err = validate.URL(value)
		default:
			return fmt.Errorf("unknown kind %q: want email, phone, or url", kind)
		}

		if err != nil {
			return err
		}
		fmt.Printf("valid %s: %s\n", kind, value)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(validateCmd)
}
