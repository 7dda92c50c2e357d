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

package allocation_test

import (
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/gdxsv/mcsalloc/controlplane/allocation"
	apierrs "github.com/gdxsv/mcsalloc/controlplane/errors"
	"github.com/gdxsv/mcsalloc/internal/mock"
	"github.com/gdxsv/mcsalloc/test"
	"github.com/gdxsv/mcsalloc/test/fixture"
	mocky "github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

func TestServer(t *testing.T) {
	view := allocation.ToView(fixture.Instance())

	tests := []struct {
		name         string
		method       string
		target       string
		expectedCode int
		expectedBody string
		prep         func(*mock.MockService)
	}{
		{
			name:         "alloc",
			method:       http.MethodGet,
			target:       "/alloc?region=" + fixture.Region + "&version=" + fixture.Version,
			expectedCode: http.StatusOK,
			expectedBody: mustIndent(t, view),
			prep: func(s *mock.MockService) {
				s.EXPECT().
					Allocate(mocky.Anything, allocation.Request{
						Region:  fixture.Region,
						Version: fixture.Version,
					}).
					Return(allocation.Allocation{
						Instance: fixture.Instance(),
						Outcome:  allocation.OutcomeReused,
					}, nil)
			},
		},
		{
			name:         "alloc invalid region",
			method:       http.MethodGet,
			target:       "/alloc?region=nowhere",
			expectedCode: http.StatusBadRequest,
			expectedBody: "invalid region\n",
			prep: func(s *mock.MockService) {
				s.EXPECT().
					Allocate(mocky.Anything, allocation.Request{Region: "nowhere"}).
					Return(allocation.Allocation{}, apierrs.ErrInvalidRegion)
			},
		},
		{
			name:         "alloc exhausted",
			method:       http.MethodGet,
			target:       "/alloc?region=" + fixture.Region,
			expectedCode: http.StatusServiceUnavailable,
			expectedBody: "failed to allocate vm\n",
			prep: func(s *mock.MockService) {
				s.EXPECT().
					Allocate(mocky.Anything, allocation.Request{Region: fixture.Region}).
					Return(allocation.Allocation{}, apierrs.ErrAllocationExhausted)
			},
		},
		{
			name:         "list",
			method:       http.MethodGet,
			target:       "/list",
			expectedCode: http.StatusOK,
			expectedBody: mustIndent(t, []allocation.View{view}),
			prep: func(s *mock.MockService) {
				s.EXPECT().
					ListInstances(mocky.Anything).
					Return([]allocation.Instance{fixture.Instance()}, nil)
			},
		},
		{
			name:         "empty list is an empty array",
			method:       http.MethodGet,
			target:       "/list",
			expectedCode: http.StatusOK,
			expectedBody: "[]",
			prep: func(s *mock.MockService) {
				s.EXPECT().
					ListInstances(mocky.Anything).
					Return(nil, nil)
			},
		},
		{
			name:         "list provider unavailable",
			method:       http.MethodGet,
			target:       "/list",
			expectedCode: http.StatusBadGateway,
			expectedBody: "compute provider unavailable\n",
			prep: func(s *mock.MockService) {
				s.EXPECT().
					ListInstances(mocky.Anything).
					Return(nil, apierrs.ProviderUnavailable(errBoom))
			},
		},
		{
			name:         "deleteall",
			method:       http.MethodGet,
			target:       "/deleteall",
			expectedCode: http.StatusOK,
			expectedBody: mustIndent(t, []allocation.View{view}),
			prep: func(s *mock.MockService) {
				s.EXPECT().
					DeleteAll(mocky.Anything).
					Return([]allocation.Instance{fixture.Instance()}, nil)
			},
		},
		{
			name:         "regions",
			method:       http.MethodGet,
			target:       "/regions",
			expectedCode: http.StatusOK,
			expectedBody: mustIndent(t, map[string]allocation.Region{
				"us-west1": {Zones: []string{"a"}, Location: "Oregon", Group: "us"},
			}),
			prep: func(s *mock.MockService) {
				s.EXPECT().
					Regions().
					Return([]allocation.Region{
						{Code: "us-west1", Zones: []string{"a"}, Location: "Oregon", Group: "us"},
					})
			},
		},
		{
			name:         "healthz",
			method:       http.MethodGet,
			target:       "/healthz",
			expectedCode: http.StatusOK,
			expectedBody: "ok",
			prep:         func(*mock.MockService) {},
		},
		{
			name:         "unknown path",
			method:       http.MethodGet,
			target:       "/nope",
			expectedCode: http.StatusBadRequest,
			expectedBody: "bad request\n",
			prep:         func(*mock.MockService) {},
		},
		{
			name:         "non get method",
			method:       http.MethodPost,
			target:       "/alloc?region=" + fixture.Region,
			expectedCode: http.StatusBadRequest,
			expectedBody: "bad request\n",
			prep:         func(*mock.MockService) {},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var (
				svc    = mock.NewMockService(t)
				server = allocation.NewServer(test.Logger(), svc)
				rec    = httptest.NewRecorder()
			)

			tt.prep(svc)

			server.ServeHTTP(rec, httptest.NewRequest(tt.method, tt.target, nil))

			require.Equal(t, tt.expectedCode, rec.Code)
			require.Equal(t, tt.expectedBody, rec.Body.String())
			require.Equal(t, "*", rec.Header().Get("Access-Control-Allow-Origin"))
		})
	}
}

func TestServerJSONIsIndented(t *testing.T) {
	var (
		svc    = mock.NewMockService(t)
		server = allocation.NewServer(test.Logger(), svc)
		rec    = httptest.NewRecorder()
	)

	svc.EXPECT().
		ListInstances(mocky.Anything).
		Return([]allocation.Instance{fixture.Instance()}, nil)

	server.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/list", nil))

	require.Equal(t, "application/json", rec.Header().Get("Content-Type"))
	require.True(t, strings.HasPrefix(rec.Body.String(), "[\n  {\n    \"name\": "))
}

func mustIndent(t *testing.T, v any) string {
	data, err := json.MarshalIndent(v, "", "  ")
	require.NoError(t, err)
	return string(data)
}
