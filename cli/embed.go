package cli

import (
	"fmt"
	"path/filepath"
	"strings"

	"phase-steganography/audio"
	"phase-steganography/stego"

	"github.com/spf13/cobra"
)

func newEmbedCommand(a *app) *cobra.Command {
	var input, message, output string

	cmd := &cobra.Command{
		Use:     "embed",
		Short:   "Hide a message in an 8-bit WAV cover",
		Example: `  phasestego embed -i cover.wav -m "meet at noon" -o stego.wav`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + "_stego.wav"
			}

			cover, err := audio.LoadFile(input)
			if err != nil {
				return err
			}

			result, err := stego.NewPhaseCoding(&a.cfg.Stego, a.logger).Embed(cover, []byte(message))
			if err != nil {
				return fmt.Errorf("failed to embed message in %s: %w", input, err)
			}

			if err := audio.SaveFile(output, result.Audio); err != nil {
				return err
			}

			out := cmd.OutOrStdout()
			fmt.Fprintf(out, "Wrote %s\n", output)
			fmt.Fprintf(out, "Key: %s\n", result.Key)
			fmt.Fprintf(out, "Segment: %d samples at offset %d\n", result.Plan.SegmentSize, result.Plan.Start)
			fmt.Fprintf(out, "PSNR: %s dB\n", audio.FormatPSNR(result.PSNR))
			switch {
			case !a.cfg.Stego.Verify:
				fmt.Fprintln(out, "Verification: skipped")
			case result.Verified:
				fmt.Fprintln(out, "Verification: ok")
			default:
				fmt.Fprintln(out, "Verification: FAILED, the message will not read back intact")
			}
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "cover WAV file (8-bit PCM)")
	cmd.Flags().StringVarP(&message, "message", "m", "", "message to hide")
	cmd.Flags().StringVarP(&output, "output", "o", "", "stego WAV file (default <input>_stego.wav)")
	_ = cmd.MarkFlagRequired("input")
	_ = cmd.MarkFlagRequired("message")

	return cmd
}
