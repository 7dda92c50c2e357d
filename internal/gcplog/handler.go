/*
 mcsalloc, allocates gdxsv match servers on GCE and Hetzner Cloud.
 Copyright (C) 2025 The gdxsv mcsalloc authors

 This program is free software: you can redistribute it and/or modify
 it under the terms of the GNU Affero General Public License as published by
 the Free Software Foundation, either version 3 of the License, or
 (at your option) any later version.

 This program is distributed in the hope that it will be useful,
 but WITHOUT ANY WARRANTY; without even the implied warranty of
 MERCHANTABILITY or FITNESS FOR A PARTICULAR PURPOSE.  See the
 GNU Affero General Public License for more details.

 You should have received a copy of the GNU Affero General Public License
 along with this program.  If not, see <https://www.gnu.org/licenses/>.
*/

// Package gcplog formats slog records the way Cloud Logging expects them
// when read from stdout of a GCE instance or Cloud Run service.
package gcplog

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"runtime"
	"strconv"
	"sync"
	"time"

	"go.opentelemetry.io/otel/trace"
)

const (
	keyTrace          = "logging.googleapis.com/trace"
	keySpanID         = "logging.googleapis.com/spanId"
	keyTraceSampled   = "logging.googleapis.com/trace_sampled"
	keySourceLocation = "logging.googleapis.com/sourceLocation"
	keyHTTPRequest    = "httpRequest"
)

type Options struct {
	Level slog.Leveler
	// ProjectID is used to build fully qualified trace names. Without it
	// trace correlation fields are left out.
	ProjectID string
	AddSource bool
}

type Handler struct {
	mu     *sync.Mutex
	w      io.Writer
	opts   Options
	attrs  []scopedAttr
	groups []string
}

// scopedAttr remembers the groups that were open when the attribute was
// added through WithAttrs.
type scopedAttr struct {
	groups []string
	attr   slog.Attr
}

func NewHandler(w io.Writer, opts Options) *Handler {
	if opts.Level == nil {
		opts.Level = slog.LevelInfo
	}
	return &Handler{
		mu:   &sync.Mutex{},
		w:    w,
		opts: opts,
	}
}

func (h *Handler) Enabled(_ context.Context, level slog.Level) bool {
	return level >= h.opts.Level.Level()
}

func (h *Handler) Handle(ctx context.Context, r slog.Record) error {
	entry := map[string]any{
		"severity": severity(r.Level),
		"message":  r.Message,
		"time":     r.Time.Format(time.RFC3339Nano),
	}

	if h.opts.AddSource && r.PC != 0 {
		f, _ := runtime.CallersFrames([]uintptr{r.PC}).Next()
		entry[keySourceLocation] = map[string]any{
			"file":     f.File,
			"line":     strconv.Itoa(f.Line),
			"function": f.Function,
		}
	}

	if sc := trace.SpanContextFromContext(ctx); sc.IsValid() && h.opts.ProjectID != "" {
		entry[keyTrace] = "projects/" + h.opts.ProjectID + "/traces/" + sc.TraceID().String()
		entry[keySpanID] = sc.SpanID().String()
		entry[keyTraceSampled] = sc.IsSampled()
	}

	for _, a := range h.attrs {
		add(entry, a.groups, a.attr)
	}

	r.Attrs(func(a slog.Attr) bool {
		add(entry, h.groups, a)
		return true
	})

	data, err := json.Marshal(entry)
	if err != nil {
		return err
	}
	data = append(data, '\n')

	h.mu.Lock()
	defer h.mu.Unlock()

	_, err = h.w.Write(data)
	return err
}

func (h *Handler) WithAttrs(attrs []slog.Attr) slog.Handler {
	c := *h
	c.attrs = append([]scopedAttr{}, h.attrs...)
	for _, a := range attrs {
		c.attrs = append(c.attrs, scopedAttr{groups: h.groups, attr: a})
	}
	return &c
}

func (h *Handler) WithGroup(name string) slog.Handler {
	if name == "" {
		return h
	}
	c := *h
	c.groups = append(append([]string{}, h.groups...), name)
	return &c
}

func severity(level slog.Level) string {
	switch {
	case level >= slog.LevelError:
		return "ERROR"
	case level >= slog.LevelWarn:
		return "WARNING"
	case level >= slog.LevelInfo:
		return "INFO"
	default:
		return "DEBUG"
	}
}

// add places attr into entry below the given groups. Errors are flattened
// to their message and an httpRequest attribute always lands top level so
// Cloud Logging picks it up.
func add(entry map[string]any, groups []string, a slog.Attr) {
	a.Value = a.Value.Resolve()
	if a.Equal(slog.Attr{}) {
		return
	}

	if a.Key == keyHTTPRequest {
		entry[keyHTTPRequest] = a.Value.Any()
		return
	}

	cur := entry
	for _, g := range groups {
		next, ok := cur[g].(map[string]any)
		if !ok {
			next = make(map[string]any)
			cur[g] = next
		}
		cur = next
	}

	cur[a.Key] = value(a.Value)
}

func value(v slog.Value) any {
	switch v.Kind() {
	case slog.KindGroup:
		m := make(map[string]any)
		for _, a := range v.Group() {
			m[a.Key] = value(a.Value.Resolve())
		}
		return m
	case slog.KindDuration:
		return v.Duration().String()
	case slog.KindTime:
		return v.Time().Format(time.RFC3339Nano)
	case slog.KindAny:
		if err, ok := v.Any().(error); ok {
			return err.Error()
		}
		return v.Any()
	default:
		return v.Any()
	}
}
