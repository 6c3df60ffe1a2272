// Command sigil signs byte streams with Ed25519 and verifies armored
// signatures against an explicit public key or a keyring directory.
//
// The keyring directory is taken from the SIGIL_KEYRING environment
// variable or the --keyring flag; it is resolved once here at the boundary
// and passed into the library as a plain value.
package main

import (
	"os"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"
)

func main() {
	log.Logger = zerolog.New(zerolog.ConsoleWriter{Out: os.Stderr}).
		With().Timestamp().Logger()

	if err := newRootCmd().Execute(); err != nil {
		log.Error().Err(err).Msg("sigil failed")
		os.Exit(1)
	}
}

func newRootCmd() *cobra.Command {
	root := &cobra.Command{
		Use:           "sigil",
		Short:         "Sign and verify files with armored Ed25519 signatures",
		Long:          "sigil signs arbitrary byte streams with Ed25519 and verifies\nsignatures against an explicit public key or a keyring directory\nof candidate public keys.",
		SilenceUsage:  true,
		SilenceErrors: true,
	}

	root.PersistentFlags().String("keyring", "", "keyring directory of *.sigil.pub candidates (default $SIGIL_KEYRING)")
	_ = viper.BindPFlag("keyring", root.PersistentFlags().Lookup("keyring"))
	_ = viper.BindEnv("keyring", "SIGIL_KEYRING")

	root.AddCommand(newSignCmd())
	root.AddCommand(newVerifyCmd())
	root.AddCommand(newTrimCmd())
	root.AddCommand(newKeygenCmd())
	return root
}

// openInput opens path for reading; "" or "-" means stdin.
func openInput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdin, func() {}, nil
	}
	f, err := os.Open(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}

// openOutput opens path for writing; "" or "-" means stdout.
func openOutput(path string) (*os.File, func(), error) {
	if path == "" || path == "-" {
		return os.Stdout, func() {}, nil
	}
	f, err := os.Create(path)
	if err != nil {
		return nil, nil, err
	}
	return f, func() { f.Close() }, nil
}
