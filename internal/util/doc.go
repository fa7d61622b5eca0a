// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

// Package util provides small helpers shared by parabola's packages.
//
// # Key Functions
//
// Parsing user input:
//   - ParseFloat: coefficient and bound parsing, tolerant of a decimal comma
//   - ParseBool: flag-style boolean parsing for config values
//
// File Operations:
//   - AtomicWriteFile: crash-safe writes for charts and config files
//
// # Usage
//
//	a, err := util.ParseFloat(" 2,5 ")
//	err = util.AtomicWriteFile("parabola.png", data, 0644)
package util
