package cli

import (
	"fmt"
	"text/tabwriter"

	"phase-steganography/audio"
	"phase-steganography/stego"

	"github.com/spf13/cobra"
)

func newInspectCommand(a *app) *cobra.Command {
	var input string

	cmd := &cobra.Command{
		Use:   "inspect",
		Short: "Describe an audio file and the largest message it can carry",
		Args:  cobra.NoArgs,
		RunE: func(cmd *cobra.Command, _ []string) error {
			format, err := audio.FormatFromFilename(input)
			if err != nil {
				return err
			}
			data, err := audio.LoadFile(input)
			if err != nil {
				return err
			}

			metadata, err := audio.NewAudioDecoder().Describe(data, format)
			if err != nil {
				return fmt.Errorf("failed to read %s: %w", input, err)
			}

			w := tabwriter.NewWriter(cmd.OutOrStdout(), 0, 4, 2, ' ', 0)
			fmt.Fprintf(w, "Format:\t%s\n", metadata.Format)
			fmt.Fprintf(w, "Sample rate:\t%d Hz\n", metadata.SampleRate)
			fmt.Fprintf(w, "Channels:\t%d\n", metadata.Channels)
			fmt.Fprintf(w, "Bit depth:\t%d\n", metadata.BitDepth)
			fmt.Fprintf(w, "Duration:\t%s\n", metadata.Duration)
			if metadata.Bitrate > 0 {
				fmt.Fprintf(w, "Bitrate:\t%d kbit/s\n", metadata.Bitrate)
			}
			if metadata.Title != "" || metadata.Artist != "" {
				fmt.Fprintf(w, "Tags:\t%s / %s\n", metadata.Artist, metadata.Title)
			}
			if format == audio.FormatWAV {
				fmt.Fprintf(w, "Capacity:\t%s\n", describeCapacity(data, a.cfg.Stego.HeaderSkip))
			}
			return w.Flush()
		},
	}

	cmd.Flags().StringVarP(&input, "input", "i", "", "audio file")
	_ = cmd.MarkFlagRequired("input")

	return cmd
}

func describeCapacity(data []byte, headerSkip int) string {
	n, err := stego.Capacity(data, headerSkip)
	if err != nil {
		return "none (no audio data)"
	}
	return fmt.Sprintf("%d bytes", n)
}
