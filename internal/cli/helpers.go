// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// helpers.go - Shared helpers for the command handlers.
package cli

import (
	"os"
	"path/filepath"
	"strings"
)

// validateOutputPath checks a --output value before anything is rendered,
// so a bad path fails fast instead of after the roots are printed.
func validateOutputPath(path string) error {
	cleaned := filepath.Clean(path)
	if !strings.EqualFold(filepath.Ext(cleaned), ".png") {
		return NewValidationErrorWithExample("output", path, "must be a .png file", "-o roots.png")
	}
	if info, err := os.Stat(cleaned); err == nil && info.IsDir() {
		return NewValidationErrorWithExample("output", path, "is a directory", "-o "+filepath.Join(path, "parabola.png"))
	}
	return nil
}

// fileExists reports whether path names an existing file or directory.
func fileExists(path string) bool {
	_, err := os.Stat(path)
	return err == nil
}
