// Copyright Mesh Intelligence Inc., 2026. All rights reserved.

// Package secrets loads API keys from a directory of plain-text files and
// carries the two credentials a research run needs. Each file in the
// directory represents one secret: the filename is the key name and the file
// contents (trimmed) are the value.
//
// Supported key files: tavily-api-key, deepseek-api-key.
package secrets

import (
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode"
)

const (
	SearchKeyFile = "tavily-api-key"
	ModelKeyFile  = "deepseek-api-key"
)

// Load reads all files in dir and returns a map of filename to trimmed contents.
// A missing directory or missing files are not errors; Load returns an empty map.
// Unreadable files produce a warning on stderr but do not abort.
func Load(dir string) (map[string]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		if os.IsNotExist(err) {
			return map[string]string{}, nil
		}
		return nil, fmt.Errorf("reading secrets directory %s: %w", dir, err)
	}

	secrets := make(map[string]string)
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
			secrets[name] = value
		}
	}

	return secrets, nil
}

// Credentials holds the search API key and the model API key for one run.
// Values are held in memory only and never written anywhere.
type Credentials struct {
	Search string
	Model  string
}

// FromMap picks the search and model keys out of a map returned by Load.
func FromMap(m map[string]string) Credentials {
	return Credentials{Search: m[SearchKeyFile], Model: m[ModelKeyFile]}
}

// Merge returns c with empty fields filled from other.
func (c Credentials) Merge(other Credentials) Credentials {
	if c.Search == "" {
		c.Search = other.Search
	}
	if c.Model == "" {
		c.Model = other.Model
	}
	return c
}

// Complete reports whether both keys are present.
func (c Credentials) Complete() bool {
	return c.Search != "" && c.Model != ""
}

// String never prints key material.
func (c Credentials) String() string {
	return fmt.Sprintf("Credentials{Search:%s Model:%s}", Redact(c.Search), Redact(c.Model))
}

var (
	ErrEmptyKey     = errors.New("key is empty")
	ErrMalformedKey = errors.New("key contains whitespace or control characters")
)

// CheckKey rejects keys that no API would accept: empty values and values
// containing whitespace or control characters (typically a bad paste).
func CheckKey(key string) error {
	if key == "" {
		return ErrEmptyKey
	}
	for _, r := range key {
		if unicode.IsSpace(r) || unicode.IsControl(r) {
			return ErrMalformedKey
		}
	}
	return nil
}

// Redact masks all but the last four characters of a key.
func Redact(key string) string {
	if key == "" {
		return "<unset>"
	}
	r := []rune(key)
	if len(r) <= 4 {
		return "****"
	}
	return "****" + string(r[len(r)-4:])
}
