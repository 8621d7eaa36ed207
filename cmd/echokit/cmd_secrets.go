package main

import (
	"fmt"

	"github.com/spf13/cobra"

	"echokit/pkg/secrets"
)

var (
	passgenLength    int
	passgenNoLower   bool
	passgenNoUpper   bool
	passgenNoDigits  bool
	passgenNoSymbols bool

	tokenBytes int
	tokenUUID  bool
)

var passgenCmd = &cobra.Command{
	Use:   "passgen",
	Short: "Generate a random password",
	RunE: func(cmd *cobra.Command, args []string) error {
		opts := secrets.PasswordOptions{
			Lower:   !passgenNoLower,
			Upper:   !passgenNoUpper,
			Digits:  !passgenNoDigits,
			Symbols: !passgenNoSymbols,
		}

		password, err := secrets.Password(passgenLength, opts)
		if err != nil {
			return err
		}
		fmt.Println(password)
		return nil
	},
}

var tokenCmd = &cobra.Command{
	Use:   "token",
	Short: "Generate a random hex or UUID token",
	RunE: func(cmd *cobra.Command, args []string) error {
		if tokenUUID {
			fmt.Println(secrets.UUIDToken())
			return nil
		}

		token, err := secrets.HexToken(tokenBytes)
		if err != nil {
			return err
		}
		fmt.Println(token)
		return nil
	},
}

func init() {
	passgenCmd.Flags().IntVarP(&passgenLength, "length", "l", 16, "Password length")
	passgenCmd.Flags().BoolVar(&passgenNoLower, "no-lower", false, "Exclude lowercase letters")
	passgenCmd.Flags().BoolVar(&passgenNoUpper, "no-upper", false, "Exclude uppercase letters")
	passgenCmd.Flags().BoolVar(&passgenNoDigits, "no-digits", false, "Exclude digits")
	passgenCmd.Flags().BoolVar(&passgenNoSymbols, "no-symbols", false, "Exclude symbols")

	tokenCmd.Flags().IntVarP(&tokenBytes, "bytes", "b", 32, "Token size in random bytes (hex output)")
	tokenCmd.Flags().BoolVar(&tokenUUID, "uuid", false, "Generate a version-4 UUID instead")

	rootCmd.AddCommand(passgenCmd, tokenCmd)
}
