package main

import (
	"errors"
	"fmt"
	"io"
	"os"

	"github.com/limaJavier/courseplanning/pkg/logger"
	"github.com/rs/zerolog"
	"github.com/spf13/cobra"
)

// Exit codes
const (
	exitFailure     = 1
	exitInvalidPlan = 15
)

var errInvalidPlan = errors.New("plan is not valid")

// application holds what every command shares once the root flags are parsed
type application struct {
	logLevel string
	pretty   bool
	logger   zerolog.Logger
}

func main() {
	app := &application{logger: zerolog.New(os.Stderr).With().Timestamp().Logger()}
	root := newRootCommand(app, os.Stdout, os.Stderr)
	if err := root.Execute(); err != nil {
		if errors.Is(err, errInvalidPlan) {
			os.Exit(exitInvalidPlan)
		}
		app.logger.Error().Err(err).Msg("command failed")
		os.Exit(exitFailure)
	}
}

func newRootCommand(app *application, stdout, stderr io.Writer) *cobra.Command {
	root := &cobra.Command{
		Use:           "courseplanning",
		Short:         "Builds and checks multi-term course plans",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			log, err := logger.New(logger.Config{
				Level:  app.logLevel,
				Pretty: app.pretty,
				Output: stderr,
			})
			if err != nil {
				return fmt.Errorf("invalid logging configuration: %w", err)
			}
			app.logger = log
			return nil
		},
	}
	root.SetOut(stdout)
	root.SetErr(stderr)
	root.PersistentFlags().StringVar(&app.logLevel, "log-level", "info", `Log level: "debug", "info", "warn" or "error"`)
	root.PersistentFlags().BoolVar(&app.pretty, "pretty", false, "Human-readable logs instead of JSON lines")

	root.AddCommand(
		newGenerateCommand(app),
		newValidateCommand(app),
		newOrderCommand(app),
		newShowCommand(app),
		newConflictsCommand(app),
		newPlansCommand(app),
	)
	return root
}
