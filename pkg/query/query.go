// Copyright (c) 2026 Yomira. All rights reserved.
// Author: tai.buivan.jp@gmail.com

// Package query parses optional URL query parameters.
//
// Every helper distinguishes "absent" from "present": a missing or malformed
// value returns the fallback, never an error, so list endpoints stay
// lenient about cosmetic input mistakes.
package query

import (
	"net/url"
	"strconv"
	"strings"
)

// List returns the values of key, accepting both repeated parameters
// (?traits=a&traits=b) and comma-separated ones (?traits=a,b).
// Blank entries are dropped.
func List(values url.Values, key string) []string {
	var result []string
	for _, raw := range values[key] {
		for _, part := range strings.Split(raw, ",") {
			if clean := strings.TrimSpace(part); clean != "" {
				result = append(result, clean)
			}
		}
	}
	return result
}

// String returns the trimmed value of key, or "" when absent.
func String(values url.Values, key string) string {
	return strings.TrimSpace(values.Get(key))
}

// Int returns the integer value of key, or fallback when it is absent or malformed.
func Int(values url.Values, key string, fallback int) int {
	raw := strings.TrimSpace(values.Get(key))
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}
