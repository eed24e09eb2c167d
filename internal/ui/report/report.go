// Package report renders per-target build outcomes for the command surface.
package report

import (
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"go.trai.ch/bale/internal/core/domain"
	"go.trai.ch/bale/internal/ui/style"
)

// Render writes one line per target plus a closing summary. Failures keep
// the engine diagnostic verbatim, indented under the target line, so
// nothing the engine reported is lost in aggregation.
func Render(w io.Writer, results []domain.BuildResult) {
	r := lipgloss.NewRenderer(w)
	good := r.NewStyle().Foreground(style.Green)
	bad := r.NewStyle().Foreground(style.Red)
	dim := r.NewStyle().Foreground(style.Slate)

	for _, res := range results {
		if res.Failed() {
			fmt.Fprintf(w, "%s %s\n", bad.Render(style.Cross), res.Target)
			for _, line := range strings.Split(strings.TrimSpace(res.Err.Error()), "\n") {
				fmt.Fprintf(w, "    %s\n", dim.Render(line))
			}
			continue
		}
		fmt.Fprintf(w, "%s %s %s\n", good.Render(style.Check), res.Target, dim.Render(artifactDetail(res.Artifact)))
	}

	failed := domain.FailureCount(results)
	built := len(results) - failed
	if failed > 0 {
		fmt.Fprintf(w, "\n%s\n", bad.Render(fmt.Sprintf("%d built, %d failed", built, failed)))
		return
	}
	fmt.Fprintf(w, "\n%s\n", good.Render(fmt.Sprintf("%d built", built)))
}

func artifactDetail(a *domain.Artifact) string {
	if a == nil {
		return ""
	}
	detail := a.Path
	if a.Size > 0 {
		detail += " (" + humanSize(a.Size) + ")"
	}
	return detail
}

func humanSize(n int64) string {
	switch {
	case n >= 1<<20:
		return fmt.Sprintf("%.1f MB", float64(n)/(1<<20))
	case n >= 1<<10:
		return fmt.Sprintf("%.1f kB", float64(n)/(1<<10))
	default:
		return fmt.Sprintf("%d B", n)
	}
}
