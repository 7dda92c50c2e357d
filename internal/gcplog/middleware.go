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
	"fmt"
	"log/slog"
	"net/http"
	"time"

	"github.com/gdxsv/mcsalloc/internal/reqctx"
)

// HTTPRequest mirrors the httpRequest field of a Cloud Logging LogEntry.
type HTTPRequest struct {
	RequestMethod string `json:"requestMethod,omitempty"`
	RequestURL    string `json:"requestUrl,omitempty"`
	Status        int    `json:"status,omitempty"`
	ResponseSize  int64  `json:"responseSize,omitempty,string"`
	UserAgent     string `json:"userAgent,omitempty"`
	RemoteIP      string `json:"remoteIp,omitempty"`
	Referer       string `json:"referer,omitempty"`
	Latency       string `json:"latency,omitempty"`
	Protocol      string `json:"protocol,omitempty"`
}

type recorder struct {
	http.ResponseWriter
	status  int
	written int64
}

func (w *recorder) WriteHeader(status int) {
	w.status = status
	w.ResponseWriter.WriteHeader(status)
}

func (w *recorder) Write(b []byte) (int, error) {
	n, err := w.ResponseWriter.Write(b)
	w.written += int64(n)
	return n, err
}

// HTTPMiddleware writes one access log line per request. It uses the
// request scoped logger if an earlier middleware installed one.
func HTTPMiddleware(logger *slog.Logger) func(http.Handler) http.Handler {
	return func(next http.Handler) http.Handler {
		return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
			start := time.Now()
			rec := &recorder{ResponseWriter: w, status: http.StatusOK}

			next.ServeHTTP(rec, r)

			latency := time.Since(start)

			level := slog.LevelInfo
			switch {
			case rec.status >= http.StatusInternalServerError:
				level = slog.LevelError
			case rec.status >= http.StatusBadRequest:
				level = slog.LevelWarn
			}

			reqctx.Logger(r.Context(), logger).Log(r.Context(), level, "http request",
				keyHTTPRequest, HTTPRequest{
					RequestMethod: r.Method,
					RequestURL:    r.URL.String(),
					Status:        rec.status,
					ResponseSize:  rec.written,
					UserAgent:     r.UserAgent(),
					RemoteIP:      r.RemoteAddr,
					Referer:       r.Referer(),
					Latency:       fmt.Sprintf("%.6fs", latency.Seconds()),
					Protocol:      r.Proto,
				},
				"status", rec.status,
				"duration_ms", latency.Milliseconds(),
			)
		})
	}
}
