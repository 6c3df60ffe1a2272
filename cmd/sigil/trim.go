package main

import (
	"github.com/spf13/cobra"

	"github.com/sigilsign/sigil/sigil"
)

func newTrimCmd() *cobra.Command {
	var outputPath string

	cmd := &cobra.Command{
		Use:   "trim [input]",
		Short: "Strip a joined signature envelope without verifying it",
		Long:  "Strip the armored envelope from a signed input and write only the\nmessage. The signature is not checked; trim is a format operation,\nnot a trust operation.",
		Args:  cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
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

			return sigil.Trim(in, out)
		},
	}

	cmd.Flags().StringVarP(&outputPath, "output", "o", "", "output file (default stdout)")
	return cmd
}
