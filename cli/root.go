// Package cli implements the phasestego command line.
package cli

import (
	"context"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"phase-steganography/config"
	"phase-steganography/utils"

	"github.com/mdobak/go-xerrors"
	"github.com/spf13/cobra"
)

// app carries what every subcommand needs once flags and env are parsed.
type app struct {
	envFile  string
	logLevel string

	cfg    *config.Config
	logger *slog.Logger
}

// NewRootCommand builds the command tree.
func NewRootCommand() *cobra.Command {
	a := &app{}

	root := &cobra.Command{
		Use:   "phasestego",
		Short: "Hide short messages in the phase spectrum of 8-bit WAV audio",
		Long: `phasestego embeds a message into the first segment of an 8-bit PCM WAV cover
by rewriting the phases of its discrete Fourier transform. Embedding prints a key
of two integers { size exponent, message bits } that extraction needs.`,
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, _ []string) error {
			cfg, err := config.Load(a.envFile)
			if err != nil {
				return err
			}
			if cmd.Flags().Changed("log-level") {
				cfg.LogLevel = a.logLevel
			}
			a.cfg = cfg
			a.logger = utils.SetupLogger(cmd.ErrOrStderr(), cfg.LogLevel)
			return nil
		},
	}

	root.PersistentFlags().StringVar(&a.envFile, "env-file", ".env", "optional dotenv file with settings")
	root.PersistentFlags().StringVar(&a.logLevel, "log-level", "info", "debug, info, warn or error")

	root.AddCommand(
		newEmbedCommand(a),
		newExtractCommand(a),
		newConvertCommand(a),
		newInspectCommand(a),
		newServeCommand(a),
	)
	return root
}

// Execute runs the command line until it finishes or the process is interrupted.
func Execute() error {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCommand().ExecuteContext(ctx); err != nil {
		utils.GetLogger().Error("Command failed.", slog.Any("error", xerrors.New(err)))
		return err
	}
	return nil
}
