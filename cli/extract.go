package cli

import (
	"fmt"

	"phase-steganography/audio"
	"phase-steganography/stego"

	"github.com/spf13/cobra"
)

func newExtractCommand(a *app) *cobra.Command {
	var (
		input, output      string
		exponent, bitCount int
	)

	cmd := &cobra.Command{
		Use:     "extract",
		Short:   "Recover a message using the key printed by embed",
		Example: `  phasestego extract -i stego.wav --exponent 6 --bits 16`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			key, err := stego.NewOperatorKey(exponent, bitCount)
			if err != nil {
				return err
			}

			data, err := audio.LoadFile(input)
			if err != nil {
				return err
			}

			message, err := stego.NewPhaseCoding(&a.cfg.Stego, a.logger).Extract(data, key)
			if err != nil {
				return fmt.Errorf("failed to extract message from %s: %w", input, err)
			}

			if output != "" {
				if err := audio.SaveFile(output, message); err != nil {
					return err
				}
				fmt.Fprintf(cmd.OutOrStdout(), "Wrote %d bytes to %s\n", len(message), output)
				return nil
			}
			fmt.Fprintf(cmd.OutOrStdout(), "%s\n", message)
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "stego WAV file")
	cmd.Flags().IntVar(&exponent, "exponent", 0, "first key value: segment size exponent")
	cmd.Flags().IntVar(&bitCount, "bits", 0, "second key value: message length in bits")
	cmd.Flags().StringVarP(&output, "output", "o", "", "write the message to a file instead of stdout")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("exponent")
	_ = cmd.MarkFlagRequired("bits")

	return cmd
}
