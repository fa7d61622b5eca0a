// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package config provides configuration loading and management for parabola.
//
// Supports both TOML and JSON configuration formats, with sensible defaults,
// environment variable overrides, and validation.
//
// # Key Types
//
//   - Config: Main configuration structure with all settings
//   - PlotConfig: Sampled domain and renderer selection
//   - UIConfig: Language and colour
//   - LogConfig: Diagnostic log level
//
// # Configuration Precedence
//
// Configuration is loaded from (in order of precedence):
//   - Command line flags (applied by the cli package)
//   - Environment variables (PARABOLA_*)
//   - ~/.parabola/config.toml
//   - ~/.parabola/config.json
//   - Built-in defaults
//
// # Usage
//
// Load configuration:
//
//	cfg, err := config.Load()
//	if err != nil {
//	    log.Fatal(err)
//	}
//
// Follow edits to a file:
//
//	reloads, err := config.Watch(ctx, path, config.DefaultDebounce)
//	for r := range reloads {
//	    ...
//	}
package config
