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

package allocation

import (
	"context"
	"encoding/json"
	"errors"
	"log/slog"
	"net/http"
	"strings"

	apierrs "github.com/gdxsv/mcsalloc/controlplane/errors"
	"github.com/gdxsv/mcsalloc/internal/reqctx"
)

const (
	PathList      = "/list"
	PathDeleteAll = "/deleteall"
	PathAlloc     = "/alloc"
	PathRegions   = "/regions"
	PathHealthz   = "/healthz"
)

// Server exposes the allocation service over plain HTTP GET requests.
// Routing is done by path prefix, so /alloc/ and /allocate reach the
// allocation handler as well.
type Server struct {
	logger  *slog.Logger
	service Service
}

func NewServer(logger *slog.Logger, service Service) *Server {
	return &Server{
		logger:  logger,
		service: service,
	}
}

func (s *Server) ServeHTTP(w http.ResponseWriter, r *http.Request) {
	w.Header().Set("Access-Control-Allow-Origin", "*")

	if r.Method != http.MethodGet {
		s.writeError(w, r, apierrs.ErrBadRequest)
		return
	}

	path := r.URL.Path
	switch {
	case strings.HasPrefix(path, PathList):
		s.list(w, r)
	case strings.HasPrefix(path, PathDeleteAll):
		s.deleteAll(w, r)
	case strings.HasPrefix(path, PathAlloc):
		s.alloc(w, r)
	case strings.HasPrefix(path, PathRegions):
		s.regions(w, r)
	case strings.HasPrefix(path, PathHealthz):
		w.Header().Set("Content-Type", "text/plain; charset=utf-8")
		_, _ = w.Write([]byte("ok"))
	default:
		s.writeError(w, r, apierrs.ErrBadRequest)
	}
}

func (s *Server) list(w http.ResponseWriter, r *http.Request) {
	instances, err := s.service.ListInstances(r.Context())
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, ToViews(instances))
}

func (s *Server) deleteAll(w http.ResponseWriter, r *http.Request) {
	// deletions are issued in full even if the caller goes away.
	ctx := context.WithoutCancel(r.Context())

	instances, err := s.service.DeleteAll(ctx)
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, ToViews(instances))
}

func (s *Server) alloc(w http.ResponseWriter, r *http.Request) {
	var (
		q   = r.URL.Query()
		ctx = context.WithoutCancel(r.Context())
	)

	a, err := s.service.Allocate(ctx, Request{
		Region:  q.Get("region"),
		Version: q.Get("version"),
	})
	if err != nil {
		s.writeError(w, r, err)
		return
	}
	s.writeJSON(w, r, ToView(a.Instance))
}

func (s *Server) regions(w http.ResponseWriter, r *http.Request) {
	ret := make(map[string]Region)
	for _, reg := range s.service.Regions() {
		ret[reg.Code] = reg
	}
	s.writeJSON(w, r, ret)
}

func (s *Server) writeJSON(w http.ResponseWriter, r *http.Request, v any) {
	data, err := json.MarshalIndent(v, "", "  ")
	if err != nil {
		s.writeError(w, r, err)
		return
	}

	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(http.StatusOK)
	_, _ = w.Write(data)
}

func (s *Server) writeError(w http.ResponseWriter, r *http.Request, err error) {
	code := apierrs.StatusOf(err)

	logger := reqctx.Logger(r.Context(), s.logger)
	if code >= http.StatusInternalServerError {
		logger.ErrorContext(r.Context(), "request failed", "status", code, "err", err)
	} else {
		logger.InfoContext(r.Context(), "request rejected", "status", code, "err", err)
	}

	msg := http.StatusText(code)
	var e apierrs.Error
	if errors.As(err, &e) {
		msg = e.Message
	}

	http.Error(w, msg, code)
}
