// Package storage resolves object references stored as (bucket, path) pairs
// into absolute fetchable URLs.
package storage

import (
	"strings"
)

type Resolver struct {
	baseURL string
}

func NewResolver(baseURL string) *Resolver {
	return &Resolver{baseURL: strings.TrimSuffix(baseURL, "/")}
}

// Resolve builds the public URL for an object path. Paths that are already
// absolute pass through unchanged; a single leading slash is stripped so the
// join never produces a double separator.
func (r *Resolver) Resolve(bucket, path string) string {
	if path == "" {
		return ""
	}
	if strings.HasPrefix(path, "http") {
		return path
	}
	path = strings.TrimPrefix(path, "/")
	return r.baseURL + "/" + bucket + "/" + path
}
