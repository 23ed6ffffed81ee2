package logger

import (
	"context"
	"fmt"
	"io"
	"log/slog"
	"strings"
	"sync"
)

// ANSI color codes
const (
	colorReset  = "\033[0m"
	colorRed    = "\033[31m"
	colorYellow = "\033[33m"
	colorGreen  = "\033[32m"
)

// ColorHandler is an slog.Handler that colors messages by level and
// content:
// - Error messages: Red
// - Warning messages: Yellow
// - Info messages containing "complete": Green (load step landmarks)
// - Other messages: Standard output
type ColorHandler struct {
	w      io.Writer
	level  slog.Level
	attrs  []slog.Attr
	groups []string
	mu     *sync.Mutex
}

// NewColorHandler creates a new colored handler that writes directly to w
func NewColorHandler(w io.Writer, opts *slog.HandlerOptions) *ColorHandler {
	level := slog.LevelInfo
	if opts != nil && opts.Level != nil {
		level = opts.Level.Level()
	}
	return &ColorHandler{
		w:     w,
		level: level,
		mu:    &sync.Mutex{},
	}
}

// Enabled implements slog.Handler
func (h *ColorHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return level >= h.level
}

// Handle implements slog.Handler and adds color based on log level
func (h *ColorHandler) Handle(ctx context.Context, r slog.Record) error {
	var color string
	switch r.Level {
	case slog.LevelError:
		color = colorRed
	case slog.LevelWarn:
		color = colorYellow
	case slog.LevelInfo:
		// Step landmarks are colored green
		if strings.Contains(strings.ToLower(r.Message), "complete") {
			color = colorGreen
		}
	}

	var buf strings.Builder

	buf.WriteString(r.Time.Format("2006-01-02 15:04:05"))
	buf.WriteString(" ")
	buf.WriteString(r.Level.String())
	buf.WriteString(" ")

	if color != "" {
		buf.WriteString(color)
	}
	buf.WriteString(r.Message)
	if color != "" {
		buf.WriteString(colorReset)
	}

	// Handler-level attributes carry run context and come first.
	for _, attr := range h.attrs {
		h.writeAttr(&buf, attr)
	}
	r.Attrs(func(a slog.Attr) bool {
		h.writeAttr(&buf, a)
		return true
	})

	buf.WriteString("\n")

	h.mu.Lock()
	defer h.mu.Unlock()
	_, err := fmt.Fprint(h.w, buf.String())
	return err
}

// writeAttr renders one attribute as key=value, prefixing the key
// with any open groups.
func (h *ColorHandler) writeAttr(buf *strings.Builder, a slog.Attr) {
	buf.WriteString(" ")
	for _, g := range h.groups {
		buf.WriteString(g)
		buf.WriteString(".")
	}
	buf.WriteString(a.Key)
	buf.WriteString("=")
	buf.WriteString(a.Value.String())
}

// WithAttrs implements slog.Handler
func (h *ColorHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	newAttrs := make([]slog.Attr, len(h.attrs)+len(attrs))
	copy(newAttrs, h.attrs)
	copy(newAttrs[len(h.attrs):], attrs)

	return &ColorHandler{
		w:      h.w,
		level:  h.level,
		attrs:  newAttrs,
		groups: h.groups,
		mu:     h.mu,
	}
}

// WithGroup implements slog.Handler
func (h *ColorHandler) WithGroup(name string) slog.Handler {
	newGroups := make([]string, len(h.groups)+1)
	copy(newGroups, h.groups)
	newGroups[len(h.groups)] = name

	return &ColorHandler{
		w:      h.w,
		level:  h.level,
		attrs:  h.attrs,
		groups: newGroups,
		mu:     h.mu,
	}
}
