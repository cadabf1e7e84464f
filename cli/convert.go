package cli

import (
	"fmt"
	"log/slog"
	"path/filepath"
	"strings"

	"phase-steganography/audio"

	"github.com/spf13/cobra"
)

func newConvertCommand(a *app) *cobra.Command {
	var input, output string

	cmd := &cobra.Command{
		Use:     "convert",
		Short:   "Turn a WAV, MP3 or FLAC recording into an 8-bit mono cover",
		Example: `  phasestego convert -i song.mp3 -o cover.wav`,
		Args:    cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			if output == "" {
				output = strings.TrimSuffix(input, filepath.Ext(input)) + "_cover.wav"
			}

			format, err := audio.FormatFromFilename(input)
			if err != nil {
				return err
			}
			data, err := audio.LoadFile(input)
			if err != nil {
				return err
			}

			cover, err := audio.NewAudioDecoder().ConvertToCover(data, format)
			if err != nil {
				return fmt.Errorf("failed to convert %s: %w", input, err)
			}
			if err := audio.SaveFile(output, cover.WAV); err != nil {
				return err
			}

			a.logger.Debug("Converted cover.",
				slog.String("source_format", cover.Source.Format),
				slog.Int("source_bit_depth", cover.Source.BitDepth),
				slog.Int("source_channels", cover.Source.Channels))

			fmt.Fprintf(cmd.OutOrStdout(), "Wrote %s (%d Hz, %s, requantization PSNR %s dB)\n",
				output, cover.Metadata.SampleRate, cover.Metadata.Duration, audio.FormatPSNR(cover.PSNR))
			return nil
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "source recording")
	cmd.Flags().StringVarP(&output, "output", "o", "", "cover WAV file (default <input>_cover.wav)")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}
