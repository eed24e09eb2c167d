package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bale/internal/app"
	"go.trai.ch/bale/internal/core/domain"
)

func (c *CLI) newBuildCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "build [target]",
		Short: "Build one target, or every registered target",
		Long: "Build the named target, or every registered target in declaration order " +
			"when no name is given. In aggregate mode a failing target never prevents " +
			"its siblings from being built; the exit code is non-zero if any target failed.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			name := ""
			if len(args) == 1 {
				name = args[0]
			}
			return c.app.Build(cmd.Context(), name, app.BuildOptions{
				Overrides: overridesFromFlags(cmd),
			})
		},
	}
	cmd.Flags().Bool("minify", false, "Minify output regardless of mode and target settings")
	cmd.Flags().Bool("sourcemap", false, "Emit debug maps regardless of mode and target settings")
	cmd.Flags().String("format", "", "Override the output module format (esm, cjs, iife)")
	cmd.Flags().String("level", "", "Override the language level (es2015..es2022, esnext)")
	return cmd
}

// overridesFromFlags turns only the flags the caller actually set into
// overrides; untouched flags leave the target and defaults in charge.
func overridesFromFlags(cmd *cobra.Command) domain.Overrides {
	var overrides domain.Overrides
	if cmd.Flags().Changed("minify") {
		v, _ := cmd.Flags().GetBool("minify")
		overrides.Minify = &v
	}
	if cmd.Flags().Changed("sourcemap") {
		v, _ := cmd.Flags().GetBool("sourcemap")
		overrides.Sourcemap = &v
	}
	if cmd.Flags().Changed("format") {
		overrides.Format, _ = cmd.Flags().GetString("format")
	}
	if cmd.Flags().Changed("level") {
		overrides.Level, _ = cmd.Flags().GetString("level")
	}
	return overrides
}
