package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinmerge/internal/app"
)

func (c *CLI) newMergeCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "merge [files...]",
		Short: "Merge dependency files into a conda environment.yaml",
		Long: "Merge requirements.yaml and pyproject.toml files into a single conda environment file.\n" +
			"A file or directory may carry optional groups as a suffix, e.g. \"pkg[test,docs]\".",
		Args: cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			output, _ := cmd.Flags().GetString("output")
			stdout, _ := cmd.Flags().GetBool("stdout")
			name, _ := cmd.Flags().GetString("name")
			selector, _ := cmd.Flags().GetString("selector")

			opts := app.MergeOptions{
				ResolveOptions: resolveOptions(cmd, args),
				Name:           name,
				Output:         output,
				SelectorMode:   selector,
			}
			if stdout {
				opts.Stdout = cmd.OutOrStdout()
			}
			return c.app.Merge(cmd.Context(), opts)
		},
	}
	cmd.Flags().StringP("output", "o", app.DefaultOutputFile, "File to write the environment to")
	cmd.Flags().Bool("stdout", false, "Print the environment instead of writing a file")
	cmd.Flags().StringP("name", "n", "", "Environment name (default: the first name found in the files, else \"myenv\")")
	cmd.Flags().String("selector", "sel", "Platform selector style: sel or comment")
	addResolveFlags(cmd)
	return cmd
}
