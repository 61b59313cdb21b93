// Package commands implements the CLI commands for pinmerge.
package commands

import (
	"context"
	"fmt"
	"io"

	"github.com/spf13/cobra"
	"go.trai.ch/pinmerge/internal/adapters/detector"
	"go.trai.ch/pinmerge/internal/app"
	"go.trai.ch/pinmerge/internal/build"
)

// CLI represents the command line interface for pinmerge.
type CLI struct {
	app     Application
	log     LogFormatter
	rootCmd *cobra.Command
}

// Application represents the application logic interface.
type Application interface {
	Merge(ctx context.Context, opts app.MergeOptions) error
	Resolve(ctx context.Context, opts app.ResolveOptions) (app.Resolution, error)
}

// LogFormatter switches the logger between pretty and JSON output.
type LogFormatter interface {
	SetJSON(enable bool)
}

// New creates a new CLI instance with the given app. log may be nil.
func New(a Application, log LogFormatter) *CLI {
	rootCmd := &cobra.Command{
		Use:           "pinmerge",
		Short:         "Merge conda and pip dependency declarations into one environment",
		SilenceUsage:  true,
		SilenceErrors: true,
		Version:       build.Version,
	}

	rootCmd.SetVersionTemplate(fmt.Sprintf(
		"{{.Name}} version {{.Version}} (commit: %s, date: %s)\n",
		build.Commit,
		build.Date,
	))
	rootCmd.InitDefaultVersionFlag()
	rootCmd.Flags().Lookup("version").Usage = "Print the application version"

	rootCmd.InitDefaultHelpFlag()
	rootCmd.Flags().Lookup("help").Usage = "Show help for command"

	rootCmd.PersistentFlags().String("log-format", "auto", "Log format: auto, pretty, or json")

	c := &CLI{
		app:     a,
		log:     log,
		rootCmd: rootCmd,
	}

	rootCmd.PersistentPreRun = func(cmd *cobra.Command, _ []string) {
		flag, _ := cmd.Flags().GetString("log-format")
		if c.log != nil {
			format := detector.ResolveLogFormat(detector.DetectEnvironment(), flag)
			c.log.SetJSON(format == detector.FormatJSON)
		}
	}

	rootCmd.AddCommand(c.newMergeCmd())
	rootCmd.AddCommand(c.newResolveCmd())
	rootCmd.AddCommand(c.newVersionCmd())

	return c
}

// Execute runs the root command with the given context.
func (c *CLI) Execute(ctx context.Context) error {
	c.rootCmd.SetContext(ctx)
	return c.rootCmd.Execute()
}

// SetArgs sets the arguments for the root command. Used for testing.
func (c *CLI) SetArgs(args []string) {
	c.rootCmd.SetArgs(args)
}

// SetOutput sets the output and error streams for the root command. Used for testing.
func (c *CLI) SetOutput(out, err io.Writer) {
	c.rootCmd.SetOut(out)
	c.rootCmd.SetErr(err)
}
