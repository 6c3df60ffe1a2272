package main

import (
	"fmt"
	"io"

	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"
	"github.com/spf13/viper"

	"github.com/sigilsign/sigil/keyfile"
	"github.com/sigilsign/sigil/keyring"
	"github.com/sigilsign/sigil/sigil"
)

func newVerifyCmd() *cobra.Command {
	var (
		pubKeyPath   string
		sigPath      string
		showIdentity bool
		streamOutput bool
		outputPath   string
	)

	cmd := &cobra.Command{
		Use:   "verify [input]",
		Short: "Verify a signed input",
		Long:  "Verify a joined signature embedded in the input, or a detached\nsignature given with --signature. Trust comes from an explicit\npublic key (--key) or from scanning the keyring directory for the\nfirst key that matches.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			opts := sigil.VerifyOptions{
				Keyring: keyring.Keyring{
					Fs:  afero.NewOsFs(),
					Dir: viper.GetString("keyring"),
				},
			}

			if pubKeyPath != "" {
				if !keyfile.WarnSuffix(pubKeyPath, false) {
					log.Warn().Str("path", pubKeyPath).Msg("public key file doesn't end in " + keyfile.PublicKeySuffix)
				}
				pub, err := keyfile.ReadPublicKey(afero.NewOsFs(), pubKeyPath)
				if err != nil {
					return err
				}
				opts.PublicKey = pub
			}

			input := ""
			if len(args) == 1 {
				input = args[0]
			}
			in, closeIn, err := openInput(input)
			if err != nil {
				return err
			}
			defer closeIn()
			opts.Input = in

			if sigPath != "" {
				sigFile, closeSig, err := openInput(sigPath)
				if err != nil {
					return err
				}
				defer closeSig()
				opts.Signature = sigFile
			}

			var closeOut func()
			if streamOutput {
				var out io.Writer
				out, closeOut, err = openOutput(outputPath)
				if err != nil {
					return err
				}
				defer closeOut()
				opts.Output = out
			}

			identity, err := sigil.Verify(opts)
			if err != nil {
				return err
			}
			if identity == "" {
				identity = pubKeyPath
			}
			log.Info().Str("signer", identity).Msg("good signature")
			if showIdentity {
				fmt.Fprintln(cmd.OutOrStdout(), identity)
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&pubKeyPath, "key", "p", "", "public key file (default: scan the keyring)")
	cmd.Flags().StringVarP(&sigPath, "signature", "s", "", "detached signature file")
	cmd.Flags().BoolVarP(&showIdentity, "show-identity", "i", false, "print the matching key identity on success")
	cmd.Flags().BoolVarP(&streamOutput, "print", "x", false, "write the verified message to the output")
	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file for --print (default stdout)")
	return cmd
}
