// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads credentials from a directory of plain-text files.
// Each file in the directory is one secret: the filename is the key and the
// trimmed contents are the value.
//
// The only key the seeder reads is cms-api-token.
package secrets

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/pdiddy/cms-seeder/internal/logging"
)

// DefaultDir is the secrets directory relative to the working directory.
const DefaultDir = ".secrets"

// CMSToken is the key file holding the CMS bearer token.
const CMSToken = "cms-api-token"

// Store holds loaded secret values.
type Store map[string]string

// Load reads all files in dir. A missing directory is not an error and
// yields an empty store. Unreadable files are reported to log and skipped.
func Load(dir string, log logging.Logger) (Store, error) {
	log = logging.OrNoOp(log)

	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return Store{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	store := make(Store)
	for _, entry := range entries {
		name := entry.Name()
		if entry.IsDir() || strings.HasPrefix(name, ".") {
			continue
		}

		data, err := os.ReadFile(filepath.Join(dir, name))
		if err != nil {
			log.Warn("Could not read secret", "name", name, "error", err)
			continue
		}

		if value := strings.TrimSpace(string(data)); value != "" {
			store[name] = value
		}
	}
	return store, nil
}

// Resolve returns the first non-empty candidate, falling back to the
// stored value for key.
func (s Store) Resolve(key string, candidates ...string) string {
	for _, c := range candidates {
		if c = strings.TrimSpace(c); c != "" {
			return c
		}
	}
	return s[key]
}
