// Package href implements absolute/relative URL and path arithmetic for
// STAC hrefs, plus the Links capability and tree-walking Node type, per
// spec.md §4.3.
package href

import (
	"net/url"
	"path"
	"strings"
)

// IsURL reports whether href parses as an absolute URL (has a scheme).
func IsURL(href string) bool {
	u, err := url.Parse(href)
	return err == nil && u.Scheme != ""
}

// Scheme returns href's URL scheme, or "" if href is not a URL.
func Scheme(href string) string {
	u, err := url.Parse(href)
	if err != nil {
		return ""
	}
	return u.Scheme
}

// Absolute resolves href against base. If either side is a URL, resolution
// follows RFC 3986 reference resolution; otherwise it performs path joining
// with "."/".." normalization.
func Absolute(href, base string) string {
	if href == "" {
		return base
	}
	if IsURL(href) {
		return href
	}
	if IsURL(base) {
		baseURL, err := url.Parse(base)
		if err != nil {
			return href
		}
		refURL, err := url.Parse(href)
		if err != nil {
			return href
		}
		return baseURL.ResolveReference(refURL).String()
	}
	return joinPath(base, href)
}

// joinPath joins a relative path href against a base path, normalizing
// "."/".." segments without invoking net/url. An href that is already an
// absolute path is only cleaned, not joined.
func joinPath(base, href string) string {
	if path.IsAbs(href) {
		return path.Clean(href)
	}
	dir := path.Dir(base)
	joined := path.Join(dir, href)
	return joined
}

// Relative produces href as a path relative to base, prefixed with "./"
// when the result does not already start with a dot.
func Relative(href, base string) string {
	if IsURL(href) != IsURL(base) {
		return href
	}
	if IsURL(href) {
		hu, err1 := url.Parse(href)
		bu, err2 := url.Parse(base)
		if err1 != nil || err2 != nil || hu.Host != bu.Host || hu.Scheme != bu.Scheme {
			return href
		}
		return relativePath(bu.Path, hu.Path)
	}
	return relativePath(base, href)
}

func relativePath(base, target string) string {
	baseDir := path.Dir(base)
	rel, err := relTo(baseDir, target)
	if err != nil {
		return target
	}
	if !strings.HasPrefix(rel, ".") {
		rel = "./" + rel
	}
	return rel
}

// relTo computes a lexical relative path from base to target, both
// slash-separated absolute paths, without touching the filesystem.
func relTo(base, target string) (string, error) {
	baseParts := strings.Split(strings.Trim(base, "/"), "/")
	targetParts := strings.Split(strings.Trim(target, "/"), "/")

	i := 0
	for i < len(baseParts) && i < len(targetParts) && baseParts[i] == targetParts[i] {
		i++
	}

	var up []string
	for range baseParts[i:] {
		up = append(up, "..")
	}
	rel := append(up, targetParts[i:]...)
	if len(rel) == 0 {
		return ".", nil
	}
	return strings.Join(rel, "/"), nil
}

// Realize converts a file:// URL to a native filesystem path. Non-file
// hrefs are returned unchanged.
func Realize(href string) string {
	u, err := url.Parse(href)
	if err != nil || u.Scheme != "file" {
		return href
	}
	return u.Path
}
