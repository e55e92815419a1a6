// Package validation checks paths, URLs and origins that reach livedoc from
// configuration files, flags and browsers.
package validation

import (
	"fmt"
	"net/url"
	"path"
	"path/filepath"
	"strings"
)

// pathDangerousChars are shell metacharacters rejected in configured paths.
var pathDangerousChars = []string{";", "&", "|", "$", "`", "(", ")", "<", ">", "\"", "'"}

// ValidatePath rejects empty paths, paths with a ".." segment and paths
// holding shell metacharacters.
func ValidatePath(p string) error {
	if p == "" {
		return fmt.Errorf("path cannot be empty")
	}

	for _, part := range strings.Split(filepath.ToSlash(filepath.Clean(p)), "/") {
		if part == ".." {
			return fmt.Errorf("path traversal detected: %s", p)
		}
	}

	for _, char := range pathDangerousChars {
		if strings.Contains(p, char) {
			return fmt.Errorf("path contains dangerous character: %s", char)
		}
	}

	return nil
}

// ValidateOrigin checks a browser Origin header. The origin host must
// equal requestHost or match one of the patterns, which use path.Match
// syntax such as "localhost:*".
func ValidateOrigin(origin, requestHost string, patterns []string) error {
	if origin == "" {
		return fmt.Errorf("origin header is required")
	}

	originURL, err := url.Parse(origin)
	if err != nil {
		return fmt.Errorf("invalid origin format: %w", err)
	}
	if originURL.Scheme != "http" && originURL.Scheme != "https" {
		return fmt.Errorf("invalid origin scheme '%s': only http and https are allowed", originURL.Scheme)
	}

	host := strings.ToLower(originURL.Host)
	if host != "" && host == strings.ToLower(requestHost) {
		return nil
	}
	for _, pattern := range patterns {
		matched, err := path.Match(strings.ToLower(pattern), host)
		if err != nil {
			return fmt.Errorf("invalid origin pattern %q: %w", pattern, err)
		}
		if matched {
			return nil
		}
	}

	return fmt.Errorf("origin '%s' is not in allowed origins list", origin)
}
