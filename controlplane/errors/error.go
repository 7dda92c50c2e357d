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

package errors

import (
	"errors"
	"net/http"

	"google.golang.org/grpc/codes"
)

/*
 * allocation related errors
 */

var (
	ErrInvalidRegion       = New(codes.InvalidArgument, "invalid region")
	ErrInvalidVersion      = New(codes.InvalidArgument, "invalid version")
	ErrAllocationExhausted = New(codes.ResourceExhausted, "failed to allocate vm")
	ErrBadRequest          = New(codes.InvalidArgument, "bad request")
)

// ProviderUnavailable wraps a failed call to the compute provider. These
// are transient and never retried by the controller itself.
func ProviderUnavailable(err error) Error {
	return Error{
		Message: "compute provider unavailable",
		Code:    codes.Unavailable,
		cause:   err,
	}
}

type Error struct {
	Message string
	Code    codes.Code

	cause error
}

func (e Error) HTTPStatus() int {
	switch e.Code {
	case codes.InvalidArgument:
		return http.StatusBadRequest
	case codes.ResourceExhausted:
		return http.StatusServiceUnavailable
	case codes.Unavailable:
		return http.StatusBadGateway
	case codes.NotFound:
		return http.StatusNotFound
	default:
		return http.StatusInternalServerError
	}
}

func (e Error) Error() string {
	if e.cause != nil {
		return e.Message + ": " + e.cause.Error()
	}
	return e.Message
}

func (e Error) Unwrap() error {
	return e.cause
}

// Is compares by code and message so that sentinel values match
// regardless of the wrapped cause.
func (e Error) Is(target error) bool {
	var t Error
	if !errors.As(target, &t) {
		return false
	}
	return t.Code == e.Code && t.Message == e.Message
}

func New(args ...any) Error {
	e := Error{}
	for _, arg := range args {
		switch arg := arg.(type) {
		case string:
			e.Message = arg
		case codes.Code:
			e.Code = arg
		case error:
			e.cause = arg
		default:
			continue
		}
	}
	return e
}

// StatusOf returns the HTTP status for err. Errors that are not of
// type Error are treated as internal.
func StatusOf(err error) int {
	var e Error
	if errors.As(err, &e) {
		return e.HTTPStatus()
	}
	return http.StatusInternalServerError
}
