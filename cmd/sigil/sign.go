package main

import (
	"errors"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sigilsign/sigil/keyfile"
	"github.com/sigilsign/sigil/sigil"
)

func newSignCmd() *cobra.Command {
	var (
		keyPath     string
		keystoreKey string
		detached    bool
		outputPath  string
	)

	cmd := &cobra.Command{
		Use:   "sign [input]",
		Short: "Sign input with a secret key",
		Long:  "Sign input with a secret key, appending an armored signature\nenvelope to the message, or writing only the encoded signature\nwith --detached. Input and output default to the standard streams.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			sk, err := loadSecretKey(keyPath, keystoreKey)
			if err != nil {
				return err
			}
			defer sk.Wipe()

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			in, closeIn, err := openInput(input)
			if err != nil {
				return err
			}
			defer closeIn()
			out, closeOut, err := openOutput(outputPath)
			if err != nil {
				return err
			}
			defer closeOut()

			return sigil.Sign(sk, in, out, detached)
		},
	}

	cmd.Flags().StringVarP(&keyPath, "key", "k", "", "secret key file")
	cmd.Flags().StringVar(&keystoreKey, "keystore-key", "", "name of a secret key in the OS keystore")
	cmd.Flags().BoolVarP(&detached, "detached", "d", false, "write only the encoded signature")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	return cmd
}

// loadSecretKey loads the signing key from a file or from the OS keystore.
// Exactly one source must be given. The caller must Wipe the returned key.
func loadSecretKey(keyPath, keystoreKey string) (*keyfile.SecretKey, error) {
	switch {
	case keyPath != "" && keystoreKey != "":
		return nil, errors.New("sigil: --key and --keystore-key are mutually exclusive")
	case keystoreKey != "":
		ks, err := keyfile.OpenKeystore()
		if err != nil {
			return nil, err
		}
		return ks.SecretKey(keystoreKey)
	case keyPath != "":
		if !keyfile.WarnSuffix(keyPath, true) {
			log.Warn().Str("path", keyPath).Msg("secret key file doesn't end in " + keyfile.SecretKeySuffix)
		}
		return keyfile.ReadSecretKey(afero.NewOsFs(), keyPath)
	default:
		return nil, errors.New("sigil: no secret key specified (use --key or --keystore-key)")
	}
}
