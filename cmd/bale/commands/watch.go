package commands

import (
	"github.com/spf13/cobra"
	"go.trai.ch/bale/internal/core/domain"
)

func (c *CLI) newWatchCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "watch <target>",
		Short: "Rebuild one target whenever its inputs change",
		Long: "Open a live session that rebuilds the named target on every input change " +
			"until the process is interrupted. A failed rebuild is reported and the " +
			"session keeps watching. Watch has no all-targets mode; the target name " +
			"is required.",
		Args: cobra.MaximumNArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			if len(args) == 0 {
				return domain.ErrWatchTargetRequired
			}
			return c.app.Watch(cmd.Context(), args[0])
		},
	}
}
