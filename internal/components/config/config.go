package config

import (
	"bytes"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"dario.cat/mergo"
	"github.com/titanous/json5"
)

// localName turns "dir/config.json5" into "dir/config.local.json5".
func localName(name string) string {
	ext := filepath.Ext(name)
	return fmt.Sprintf("%s.local%s", strings.TrimSuffix(name, ext), ext)
}

func readFile[T any](path string) (T, bool, error) {
	var out T
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return out, false, nil
	}
	if err != nil {
		return out, false, err
	}
	if len(contents) == 0 {
		return out, false, nil
	}
	err = json5.Unmarshal(contents, &out)
	if err != nil {
		return out, false, fmt.Errorf("parse %s: %w", path, err)
	}
	return out, true, nil
}

// Read reads a json5 configuration file, `name` should come with a file extension.
// If <name>.local.<ext> exists next to it, its non-zero fields override the
// ones from <name>.<ext>. Returns os.ErrNotExist if neither file exists.
func Read[T any](name string) (T, error) {
	out, found, err := readFile[T](name)
	if err != nil {
		return out, err
	}

	localPath := localName(name)
	override, foundLocal, err := readFile[T](localPath)
	if err != nil {
		return out, err
	}
	if foundLocal {
		err = mergo.Merge(&out, override, mergo.WithOverride)
		if err != nil {
			return out, err
		}
		slog.Debug("merging config with local overrides", "local", localPath)
	}

	if !found && !foundLocal {
		return out, os.ErrNotExist
	}
	return out, nil
}

// ReadRecursively is Read but it goes up the filesystem from the working
// directory until the root to find a configuration file matching the name.
func ReadRecursively[T any](name string) (T, error) {
	var defaultOut T

	current, err := os.Getwd()
	if err != nil {
		return defaultOut, err
	}

	for {
		config, err := Read[T](filepath.Join(current, name))
		if err == nil {
			return config, nil
		}
		if !errors.Is(err, os.ErrNotExist) {
			return defaultOut, err
		}

		parent := filepath.Dir(current)
		if parent == current {
			return defaultOut, os.ErrNotExist
		}
		current = parent
	}
}

// decodeOver decodes the json5 file at `path` into `out`. Keys missing from
// the file leave their fields as they were, so explicit zero values in the
// file still override. Reports false if the file does not exist.
func decodeOver(path string, out any) (bool, error) {
	contents, err := os.ReadFile(path)
	if errors.Is(err, os.ErrNotExist) {
		return false, nil
	}
	if err != nil {
		return false, err
	}
	if len(bytes.TrimSpace(contents)) == 0 {
		return true, nil
	}
	err = json5.Unmarshal(contents, out)
	if err != nil {
		return false, fmt.Errorf("parse %s: %w", path, err)
	}
	return true, nil
}

// readOver decodes `path` and then its local override over `defaults`.
func readOver[T any](path string, defaults T) (T, bool, error) {
	out := defaults
	found, err := decodeOver(path, &out)
	if err != nil {
		return defaults, false, err
	}
	foundLocal, err := decodeOver(localName(path), &out)
	if err != nil {
		return defaults, false, err
	}
	return out, found || foundLocal, nil
}

// ReadWithDefaults decodes the configuration found the way ReadRecursively
// finds it over `defaults`, every key present in a file overrides its
// default even when it is a zero value. A missing file is not an error.
func ReadWithDefaults[T any](name string, defaults T) (T, error) {
	current, err := os.Getwd()
	if err != nil {
		return defaults, err
	}

	for {
		out, found, err := readOver(filepath.Join(current, name), defaults)
		if err != nil {
			return defaults, err
		}
		if found {
			return out, nil
		}

		parent := filepath.Dir(current)
		if parent == current {
			return defaults, nil
		}
		current = parent
	}
}

// ReadPathWithDefaults is ReadWithDefaults for a file at a known path, no
// parent directories are searched. The file must exist.
func ReadPathWithDefaults[T any](path string, defaults T) (T, error) {
	_, err := os.Stat(path)
	if err != nil {
		return defaults, fmt.Errorf("config %s: %w", path, err)
	}
	out, _, err := readOver(path, defaults)
	return out, err
}
