package logger

import (
	"context"
	"log/slog"
	"path/filepath"
	"runtime"
	"strings"
)

// tagKey is the slog attribute key the Tagf wrappers attach and the
// filtering handler inspects.
const tagKey = "tag"

// filteringHandler wraps a base slog.Handler and drops records that fail
// the configured tag, package or file filters.
type filteringHandler struct {
	baseHandler slog.Handler
	cfg         *Config
}

func newFilteringHandler(base slog.Handler, cfg *Config) *filteringHandler {
	return &filteringHandler{
		baseHandler: base,
		cfg:         cfg,
	}
}

// Enabled defers to the base handler's level check.
func (h *filteringHandler) Enabled(ctx context.Context, level slog.Level) bool {
	return h.baseHandler.Enabled(ctx, level)
}

func foundInSet(set map[string]struct{}, key string) bool {
	if set == nil {
		return false
	}
	_, found := set[key]
	return found
}

// Handle applies the filters before passing the record on. Disabled lists
// always win over enabled lists.
func (h *filteringHandler) Handle(ctx context.Context, r slog.Record) error {
	if h.cfg == nil {
		return h.baseHandler.Handle(ctx, r)
	}

	pkg, file := recordSource(r)

	if pkg != "" {
		pkgLower := strings.ToLower(pkg)
		if foundInSet(h.cfg.disabledPackagesSet, pkgLower) {
			return nil
		}
		if h.cfg.enabledPackagesSet != nil && !foundInSet(h.cfg.enabledPackagesSet, pkgLower) {
			return nil
		}
	}

	if file != "" {
		fileLower := strings.ToLower(file)
		if foundInSet(h.cfg.disabledFilesSet, fileLower) {
			return nil
		}
		if h.cfg.enabledFilesSet != nil && !foundInSet(h.cfg.enabledFilesSet, fileLower) {
			return nil
		}
	}

	tag, tagFound := recordTag(r)
	if tagFound {
		if foundInSet(h.cfg.disabledTagsSet, tag) {
			return nil
		}
		if h.cfg.enabledTagsSet != nil && !foundInSet(h.cfg.enabledTagsSet, tag) {
			return nil
		}
	} else if h.cfg.enabledTagsSet != nil {
		// Only specific tags are enabled and this record carries none.
		return nil
	}

	return h.baseHandler.Handle(ctx, r)
}

// recordSource resolves the emitting package and base filename from the
// record's program counter.
func recordSource(r slog.Record) (pkg, file string) {
	if r.PC == 0 {
		return "", ""
	}
	frames := runtime.CallersFrames([]uintptr{r.PC})
	frame, _ := frames.Next()
	if frame.File == "" {
		return "", ""
	}
	file = filepath.Base(frame.File)
	pkg = filepath.Base(filepath.Dir(frame.File))
	return pkg, file
}

// recordTag extracts the tag attribute if the record has one.
func recordTag(r slog.Record) (string, bool) {
	var tag string
	var found bool
	r.Attrs(func(a slog.Attr) bool {
		if a.Key == tagKey {
			tag = strings.ToLower(a.Value.String())
			found = true
			return false
		}
		return true
	})
	return tag, found
}

// WithAttrs returns a new handler with attributes added.
func (h *filteringHandler) WithAttrs(attrs []slog.Attr) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithAttrs(attrs), h.cfg)
}

// WithGroup returns a new handler with a group added.
func (h *filteringHandler) WithGroup(name string) slog.Handler {
	return newFilteringHandler(h.baseHandler.WithGroup(name), h.cfg)
}
