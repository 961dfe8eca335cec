package cli

import (
	"errors"
	"fmt"
	"os"

	apperrors "github.com/glamlens/glamlens/internal/errors"
	"github.com/glamlens/glamlens/internal/logger"
	"github.com/joho/godotenv"
	"github.com/spf13/cobra"
)

// NewRootCommand builds the glamlens command tree
func NewRootCommand() *cobra.Command {
	root := &cobra.Command{
		Use:   "glamlens",
		Short: "Skin tone analysis and colour recommendations from a photo",
		Long: `glamlens samples a region of a photo, estimates the skin tone depth and
undertone, and suggests fashion and makeup colours that suit it.`,
		SilenceUsage: true,
		PersistentPreRun: func(cmd *cobra.Command, args []string) {
			// .env file is optional, don't fail if not found
			_ = godotenv.Load()

			logger.UseTextFormatter()
			if mustGetBool(cmd, "verbose") {
				logger.SetLevel("debug")
			} else {
				logger.SetLevel("warn")
			}
		},
	}
	root.PersistentFlags().BoolP("verbose", "v", false, "Log analysis events to stderr")

	root.AddCommand(newAnalyzeCommand(), newTonesCommand())
	return root
}

// Execute runs the CLI and exits non-zero on failure
func Execute() {
	if err := NewRootCommand().Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		os.Exit(1)
	}
}

// describeError renders an error for a terminal reader
func describeError(err error) string {
	var appErr *apperrors.AppError
	if !errors.As(err, &appErr) {
		return err.Error()
	}
	if appErr.Details != "" {
		return fmt.Sprintf("%s (%s)", appErr.Message, appErr.Details)
	}
	return appErr.Message
}
