// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads HTTP header values from a directory of plain-text
// files, keeping API keys out of config files and shell history. Each file
// is one header: the filename is the header name (e.g. X-Api-Key) and the
// trimmed contents are the value. The CLI merges these into the extra
// headers sent with every API request.
package secrets

import (
	"fmt"
	"net/http"
	"os"
	"path/filepath"
	"strings"
)

// Load reads every file in dir and returns a map of canonical header name
// to trimmed contents. A missing directory is not an error; Load returns
// an empty map. Unreadable files produce a warning on stderr but do not
// abort. Dotfiles, empty files, and subdirectories are skipped.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	headers := make(map[string]string)
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		name := entry.Name()
		if strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			fmt.Fprintf(os.Stderr, "warning: could not read secret %s: %v\n", name, err)
			continue
		}

		value := strings.TrimSpace(string(data))
		if value != "" {
			headers[http.CanonicalHeaderKey(name)] = value
		}
	}

	return headers, nil
}

// Merge overlays the loaded headers onto base without clobbering values
// the user set explicitly. A nil base is allocated as needed.
func Merge(base, loaded map[string]string) map[string]string {
	if len(loaded) == 0 {
		return base
	}
	if base == nil {
		base = make(map[string]string, len(loaded))
	}
	for k, v := range loaded {
		if _, ok := base[k]; !ok {
			base[k] = v
		}
	}
	return base
}
