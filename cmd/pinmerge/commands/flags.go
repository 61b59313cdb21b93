package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/pinmerge/internal/app"
	"go.trai.ch/pinmerge/internal/engine/resolver"
)

// addResolveFlags registers the flags shared by merge and resolve.
func addResolveFlags(cmd *cobra.Command) {
	cmd.Flags().StringArrayP("platform", "p", nil,
		"Platform to resolve for, repeatable; \"current\" names this machine (default: platforms from the files)")
	cmd.Flags().StringSlice("extras", nil, "Optional dependency groups to include, \"*\" for all")
	cmd.Flags().StringArray("ignore-pin", nil, "Drop the version pin of a package, repeatable")
	cmd.Flags().StringArray("overwrite-pin", nil, "Force a pin such as \"numpy >=2\", repeatable")
	cmd.Flags().StringArray("skip-dependency", nil, "Leave a package out entirely, repeatable")
}

// resolveOptions reads the shared flags. With no arguments the current
// directory is used.
func resolveOptions(cmd *cobra.Command, args []string) app.ResolveOptions {
	platforms, _ := cmd.Flags().GetStringArray("platform")
	extras, _ := cmd.Flags().GetStringSlice("extras")
	ignore, _ := cmd.Flags().GetStringArray("ignore-pin")
	overwrite, _ := cmd.Flags().GetStringArray("overwrite-pin")
	skip, _ := cmd.Flags().GetStringArray("skip-dependency")

	if len(args) == 0 {
		args = []string{"."}
	}

	return app.ResolveOptions{
		Files:     args,
		Platforms: platforms,
		Extras:    extras,
		Filters: resolver.Filters{
			IgnorePins:       ignore,
			OverwritePins:    overwrite,
			SkipDependencies: skip,
		},
	}
}
