package main

import (
	"github.com/rs/zerolog/log"
	"github.com/spf13/afero"
	"github.com/spf13/cobra"

	"github.com/sigilsign/sigil/keyfile"
)

func newKeygenCmd() *cobra.Command {
	var store bool

	cmd := &cobra.Command{
		Use:   "keygen <name>",
		Short: "Generate a signing keypair",
		Long:  "Generate an Ed25519 keypair at <name>.sigil.sec and\n<name>.sigil.pub. With --store the secret key is kept in the OS\nkeystore under <name> instead of a file.",
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := args[0]
			fs := afero.NewOsFs()

			if !store {
				secPath, pubPath, err := keyfile.Generate(fs, name)
				if err != nil {
					return err
				}
				log.Info().Str("secret", secPath).Str("public", pubPath).Msg("keypair generated")
				return nil
			}

			ks, err := keyfile.OpenKeystore()
			if err != nil {
				return err
			}
			pubPath, err := keyfile.GenerateStored(fs, ks, name)
			if err != nil {
				return err
			}
			log.Info().Str("keystore-key", name).Str("public", pubPath).Msg("keypair generated")
			return nil
		},
	}

	cmd.Flags().BoolVar(&store, "store", false, "keep the secret key in the OS keystore instead of a file")
	return cmd
}
