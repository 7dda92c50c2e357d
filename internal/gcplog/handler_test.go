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

package gcplog

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/require"
	"go.opentelemetry.io/otel/trace"
)

func decode(t *testing.T, buf *bytes.Buffer) map[string]any {
	t.Helper()
	var m map[string]any
	require.NoError(t, json.Unmarshal(buf.Bytes(), &m))
	return m
}

func TestHandler(t *testing.T) {
	tests := []struct {
		name     string
		log      func(*slog.Logger)
		expected map[string]any
	}{
		{
			name: "severity and error",
			log: func(l *slog.Logger) {
				l.Error("boom", "err", errors.New("broken"), "zone", "us-west1-a")
			},
			expected: map[string]any{
				"severity": "ERROR",
				"message":  "boom",
				"err":      "broken",
				"zone":     "us-west1-a",
			},
		},
		{
			name: "warn maps to warning",
			log: func(l *slog.Logger) {
				l.Warn("careful")
			},
			expected: map[string]any{
				"severity": "WARNING",
				"message":  "careful",
			},
		},
		{
			name: "groups nest attributes",
			log: func(l *slog.Logger) {
				l.With("a", 1).WithGroup("req").Info("grouped", "id", "x")
			},
			expected: map[string]any{
				"severity": "INFO",
				"message":  "grouped",
				"a":        float64(1),
				"req":      map[string]any{"id": "x"},
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			tt.log(slog.New(NewHandler(&buf, Options{})))

			got := decode(t, &buf)
			delete(got, "time")
			require.Equal(t, tt.expected, got)
		})
	}
}

func TestHandlerLevel(t *testing.T) {
	var buf bytes.Buffer
	l := slog.New(NewHandler(&buf, Options{Level: slog.LevelWarn}))

	l.Info("dropped")
	require.Zero(t, buf.Len())

	l.Debug("dropped")
	require.Zero(t, buf.Len())
}

func TestHandlerTrace(t *testing.T) {
	var (
		buf = bytes.Buffer{}
		l   = slog.New(NewHandler(&buf, Options{ProjectID: "gdxsv"}))
		sc  = trace.NewSpanContext(trace.SpanContextConfig{
			TraceID:    trace.TraceID{1},
			SpanID:     trace.SpanID{2},
			TraceFlags: trace.FlagsSampled,
		})
		ctx = trace.ContextWithSpanContext(context.Background(), sc)
	)

	l.InfoContext(ctx, "traced")

	got := decode(t, &buf)
	require.Equal(t, "projects/gdxsv/traces/"+sc.TraceID().String(), got[keyTrace])
	require.Equal(t, sc.SpanID().String(), got[keySpanID])
	require.Equal(t, true, got[keyTraceSampled])
}

func TestHTTPMiddleware(t *testing.T) {
	var (
		buf = bytes.Buffer{}
		l   = slog.New(NewHandler(&buf, Options{}))
		h   = HTTPMiddleware(l)(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
			http.Error(w, "nope", http.StatusBadRequest)
		}))
		rec = httptest.NewRecorder()
	)

	h.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/alloc?region=x", nil))

	got := decode(t, &buf)
	require.Equal(t, "WARNING", got["severity"])

	req, ok := got[keyHTTPRequest].(map[string]any)
	require.True(t, ok)
	require.Equal(t, "GET", req["requestMethod"])
	require.Equal(t, "/alloc?region=x", req["requestUrl"])
	require.Equal(t, float64(http.StatusBadRequest), req["status"])
}
