// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package dberr classifies low-level database errors into application errors.
//
// Repositories call [Wrap] on every failed statement so services only ever
// see NOT_FOUND, UPSTREAM_UNAVAILABLE, or an opaque internal error.
package dberr

import (
	"context"
	"errors"
	"fmt"
	"net"
	"strings"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"

	"github.com/taibuivan/sommelier/internal/platform/apperr"
)

// Wrap inspects a database error and converts it into an [apperr.AppError].
//
// Parameters:
//   - err: the error returned by pgx
//   - resource: client-facing resource name ("Wine", "Taste profile")
//   - action: snake_case statement label used in the wrapped cause
//
// A missing row becomes NOT_FOUND. Connection failures and timeouts become
// UPSTREAM_UNAVAILABLE. Anything else is an internal error.
func Wrap(err error, resource, action string) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, pgx.ErrNoRows) {
		return apperr.NotFound(resource)
	}

	cause := fmt.Errorf("postgres: %s: %w", action, err)
	if IsConnectivity(err) {
		return apperr.Unavailable(resource, cause)
	}
	return apperr.Internal(cause)
}

// IsConnectivity reports whether err means the database could not be reached
// or did not answer in time.
func IsConnectivity(err error) bool {
	var connectErr *pgconn.ConnectError
	var netErr net.Error
	switch {
	case errors.As(err, &connectErr):
		return true
	case errors.As(err, &netErr):
		return true
	case errors.Is(err, context.DeadlineExceeded):
		return true
	case pgconn.Timeout(err):
		return true
	}

	// Class 08 is connection exception; 57P01..57P03 are admin shutdown and friends.
	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		return strings.HasPrefix(pgErr.Code, "08") || pgErr.Code == "57P01" || pgErr.Code == "57P02" || pgErr.Code == "57P03"
	}
	return false
}
