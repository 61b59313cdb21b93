package commands

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/lipgloss/table"
	"github.com/spf13/cobra"
	"go.trai.ch/pinmerge/internal/app"
	"go.trai.ch/pinmerge/internal/core/domain"
	"go.trai.ch/pinmerge/internal/ui/output"
	"go.trai.ch/pinmerge/internal/ui/style"
)

func (c *CLI) newResolveCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "resolve [files...]",
		Short: "Show the resolved declaration of every package per platform",
		Args:  cobra.ArbitraryArgs,
		RunE: func(cmd *cobra.Command, args []string) error {
			res, err := c.app.Resolve(cmd.Context(), resolveOptions(cmd, args))
			if err != nil {
				return err
			}
			_, err = fmt.Fprintln(cmd.OutOrStdout(), renderResolution(cmd, res))
			return err
		},
	}
	addResolveFlags(cmd)
	return cmd
}

// renderResolution formats one row per package and platform.
func renderResolution(cmd *cobra.Command, res app.Resolution) string {
	r := output.NewRenderer(cmd.OutOrStdout())

	t := table.New().
		Border(lipgloss.NormalBorder()).
		BorderStyle(r.NewStyle().Foreground(style.Slate)).
		Headers("PACKAGE", "PLATFORM", "CONDA", "PIP").
		StyleFunc(func(row, _ int) lipgloss.Style {
			if row == table.HeaderRow {
				return r.NewStyle().Bold(true).Foreground(style.Iris).Padding(0, 1)
			}
			return r.NewStyle().Padding(0, 1)
		})

	for _, name := range res.Names() {
		for _, p := range res.Platforms(name) {
			label := string(p)
			if p == domain.AnyPlatform {
				label = "*"
			}
			t.Row(name, label, cell(res, name, p, domain.EcosystemChannel), cell(res, name, p, domain.EcosystemIndex))
		}
	}

	platforms := "all"
	if len(res.Requested) > 0 {
		names := make([]string, len(res.Requested))
		for i, p := range res.Requested {
			names[i] = string(p)
		}
		platforms = strings.Join(names, ", ")
	}
	return t.String() + "\n" + style.Muted(r, "platforms: "+platforms)
}

func cell(res app.Resolution, name string, p domain.Platform, eco domain.Ecosystem) string {
	d, ok := res.Get(name, p, eco)
	if !ok {
		return "-"
	}
	if d.Pin == "" {
		return "(any)"
	}
	return d.Pin
}
