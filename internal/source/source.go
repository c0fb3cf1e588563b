// Package source fetches résumé and job text referenced by location instead of sent
// inline: s3://bucket/key objects and local files.
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"net/url"
	"strings"
	"unicode/utf8"
)

// Errors returned by fetchers. Match them with errors.Is.
var (
	ErrNotFound    = errors.New("source not found")
	ErrTooLarge    = errors.New("source exceeds size limit")
	ErrUnsupported = errors.New("unsupported source")
)

// Scheme identifies where a reference points.
type Scheme string

// Supported schemes
const (
	SchemeS3   Scheme = "s3"
	SchemeFile Scheme = "file"
)

// Ref is a parsed text reference.
type Ref struct {
	Scheme Scheme
	Bucket string // s3 only
	Path   string // object key or file path
}

func (r Ref) String() string {
	if r.Scheme == SchemeS3 {
		return "s3://" + r.Bucket + "/" + r.Path
	}
	return r.Path
}

// ParseRef accepts s3://bucket/key, file:///path and bare file paths.
func ParseRef(ref string) (Ref, error) {
	ref = strings.TrimSpace(ref)
	if ref == "" {
		return Ref{}, fmt.Errorf("%w: empty reference", ErrUnsupported)
	}

	scheme, rest, found := strings.Cut(ref, "://")
	if !found {
		return Ref{Scheme: SchemeFile, Path: ref}, nil
	}

	switch Scheme(strings.ToLower(scheme)) {
	case SchemeS3:
		bucket, key, _ := strings.Cut(rest, "/")
		if bucket == "" || key == "" {
			return Ref{}, fmt.Errorf("%w: %q needs both bucket and key", ErrUnsupported, ref)
		}
		return Ref{Scheme: SchemeS3, Bucket: bucket, Path: key}, nil
	case SchemeFile:
		u, err := url.Parse(ref)
		if err != nil || u.Path == "" {
			return Ref{}, fmt.Errorf("%w: bad file reference %q", ErrUnsupported, ref)
		}
		return Ref{Scheme: SchemeFile, Path: u.Path}, nil
	default:
		return Ref{}, fmt.Errorf("%w: scheme %q", ErrUnsupported, scheme)
	}
}

// Fetcher returns the text stored at a reference.
type Fetcher interface {
	Fetch(ctx context.Context, ref Ref) (string, error)
}

// Router dispatches references to the fetcher for their scheme. A nil fetcher makes
// that scheme unsupported.
type Router struct {
	S3   Fetcher
	File Fetcher
}

// Fetch parses ref and fetches it.
func (r *Router) Fetch(ctx context.Context, ref string) (string, error) {
	parsed, err := ParseRef(ref)
	if err != nil {
		return "", err
	}

	var f Fetcher
	switch parsed.Scheme {
	case SchemeS3:
		f = r.S3
	case SchemeFile:
		f = r.File
	}
	if f == nil {
		return "", fmt.Errorf("%w: %s references are not enabled", ErrUnsupported, parsed.Scheme)
	}
	return f.Fetch(ctx, parsed)
}

// readText reads at most limit bytes of UTF-8 text from r. limit <= 0 means unlimited.
func readText(r io.Reader, limit int64, name string) (string, error) {
	if limit > 0 {
		r = io.LimitReader(r, limit+1)
	}
	data, err := io.ReadAll(r)
	if err != nil {
		return "", fmt.Errorf("failed to read %s: %w", name, err)
	}
	if limit > 0 && int64(len(data)) > limit {
		return "", fmt.Errorf("%w: %s is larger than %d bytes", ErrTooLarge, name, limit)
	}
	if !utf8.Valid(data) {
		return "", fmt.Errorf("%w: %s is not UTF-8 text", ErrUnsupported, name)
	}
	return string(data), nil
}
