package logger

import (
	"context"
	"io"
	"log/slog"
	"os"
	"strings"

	"github.com/muesli/termenv"
	"go.trai.ch/bale/internal/ui/output"
	"go.trai.ch/bale/internal/ui/style"
)

// PrettyHandler is a slog.Handler for the command line: one line per record,
// an icon and color per level, attributes dimmed behind the message.
type PrettyHandler struct {
	out      *termenv.Output
	minLevel slog.Level
	attrs    []slog.Attr
	groups   []string
}

// NewPrettyHandler creates a PrettyHandler writing to w. A nil writer falls
// back to stderr.
func NewPrettyHandler(w io.Writer, opts *slog.HandlerOptions) *PrettyHandler {
	if w == nil {
		w = os.Stderr
	}

	minLevel := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		minLevel = opts.Level.Level()
	}

	return &PrettyHandler{
		out:      output.New(w),
		minLevel: minLevel,
	}
}

// Enabled reports whether records at the given level are emitted.
func (h *PrettyHandler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.minLevel
}

// levelDecor returns the icon and color for a record level.
func levelDecor(level slog.Level) (string, termenv.Color) {
	switch {
	case level >= slog.LevelError:
		return style.Cross, termenv.RGBColor(string(style.Red))
	case level >= slog.LevelWarn:
		return style.Warning, termenv.RGBColor(string(style.Yellow))
	case level >= slog.LevelInfo:
		return style.Dot, termenv.RGBColor(string(style.Teal))
	default:
		return style.Dot, termenv.RGBColor(string(style.Slate))
	}
}

// Handle writes one formatted line per record.
//
//nolint:gocritic // slog.Handler interface requires slog.Record by value
func (h *PrettyHandler) Handle(_ context.Context, r slog.Record) error {
	icon, color := levelDecor(r.Level)

	var b strings.Builder
	b.WriteString(h.out.String(icon + " " + r.Message).Foreground(color).String())

	dim := func(attr slog.Attr) {
		pair := attr.Key + "=" + attr.Value.String()
		b.WriteString(" " + h.out.String(pair).Foreground(termenv.RGBColor(string(style.Slate))).String())
	}
	for _, attr := range h.attrs {
		dim(attr)
	}
	prefix := strings.Join(h.groups, ".")
	r.Attrs(func(attr slog.Attr) bool {
		if prefix != "" {
			attr.Key = prefix + "." + attr.Key
		}
		dim(attr)
		return true
	})

	b.WriteString("\n")
	_, err := h.out.WriteString(b.String())
	return err
}

// WithAttrs returns a handler that emits the given attributes on every
// record. Keys are qualified with the open group path once, here, so Handle
// never revisits them.
func (h *PrettyHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	qualified := make([]slog.Attr, 0, len(h.attrs)+len(attrs))
	qualified = append(qualified, h.attrs...)

	prefix := strings.Join(h.groups, ".")
	for _, attr := range attrs {
		if prefix != "" {
			attr.Key = prefix + "." + attr.Key
		}
		qualified = append(qualified, attr)
	}

	clone := *h
	clone.attrs = qualified
	return &clone
}

// WithGroup returns a handler that nests subsequent attribute keys under
// name.
func (h *PrettyHandler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}

	clone := *h
	clone.groups = append(append([]string(nil), h.groups...), name)
	return &clone
}
