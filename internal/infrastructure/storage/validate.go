package storage

import (
	"fmt"
	"path"
	"strings"
)

// cleanPath rejects object paths that would escape their prefix.
func cleanPath(p string) (string, error) {
	cleaned := path.Clean("/" + p)[1:]
	if cleaned == "" || strings.HasPrefix(cleaned, "..") || cleaned != strings.TrimPrefix(p, "/") {
		return "", fmt.Errorf("storage: invalid object path %q", p)
	}
	return cleaned, nil
}

// publicURL joins base and an object path, escaping each segment.
func publicURL(base, objectPath string) string {
	segments := strings.Split(objectPath, "/")
	for i, s := range segments {
		segments[i] = escapeSegment(s)
	}
	return strings.TrimRight(base, "/") + "/" + strings.Join(segments, "/")
}
