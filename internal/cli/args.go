// args.go - Argument parsing for parabola's commands.
//
// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package cli

import (
	"strconv"
	"strings"
)

// =============================================================================
// ARG PARSER
// =============================================================================

// ArgParser provides unified argument parsing for CLI commands.
// It handles multiple flag formats consistently:
//   - Long flags: --flag value or --flag=value
//   - Short flags: -f value
//   - Boolean flags: --flag (never consumes the next argument)
//   - Positional arguments, including negative numbers such as -3 or -.5
//   - "--" ends flag parsing; everything after it is positional
type ArgParser struct {
	flags      map[string]string // String flags (--key=value)
	boolFlags  map[string]bool   // Boolean flags (--json)
	positional []string          // All positional arguments including the command word
}

// NewArgParser parses raw. Names listed in boolNames are boolean flags and
// never take the following argument as their value.
//
// Example:
//
//	args := NewArgParser([]string{"1", "-3", "2", "--points", "50", "--json"}, "json")
//	args.Flag("points")     // "50"
//	args.BoolFlag("json")   // true
func NewArgParser(raw []string, boolNames ...string) *ArgParser {
	parser := &ArgParser{
		flags:      make(map[string]string),
		boolFlags:  make(map[string]bool),
		positional: make([]string, 0),
	}
	isBool := make(map[string]bool, len(boolNames))
	for _, name := range boolNames {
		isBool[name] = true
	}

	i := 0
	for i < len(raw) {
		arg := raw[i]

		if arg == "--" {
			parser.positional = append(parser.positional, raw[i+1:]...)
			break
		}

		if !isFlagToken(arg) {
			parser.positional = append(parser.positional, arg)
			i++
			continue
		}

		// --flag=value
		if strings.Contains(arg, "=") {
			parts := strings.SplitN(arg, "=", 2)
			flagName := strings.TrimLeft(parts[0], "-")
			flagValue := parts[1]

			if isBool[flagName] || flagValue == "true" || flagValue == "false" {
				parser.boolFlags[flagName] = flagValue == "true" || flagValue == "1"
			} else {
				parser.flags[flagName] = flagValue
			}
			i++
			continue
		}

		flagName := strings.TrimLeft(arg, "-")
		if !isBool[flagName] && i+1 < len(raw) && !isFlagToken(raw[i+1]) && raw[i+1] != "--" {
			parser.flags[flagName] = raw[i+1]
			i += 2
		} else {
			parser.boolFlags[flagName] = true
			i++
		}
	}

	return parser
}

// isFlagToken reports whether arg looks like a flag. Numbers with a leading
// minus sign are values, not flags.
func isFlagToken(arg string) bool {
	if len(arg) < 2 || arg[0] != '-' {
		return false
	}
	if _, err := strconv.ParseFloat(strings.Replace(arg, ",", ".", 1), 64); err == nil {
		return false
	}
	return true
}

// Flag returns the value of a string flag, or "" when absent.
func (p *ArgParser) Flag(name string) string {
	name = strings.TrimLeft(name, "-")
	return p.flags[name]
}

// FlagOrDefault returns the flag value or a default if not found.
func (p *ArgParser) FlagOrDefault(name, defaultValue string) string {
	if val := p.Flag(name); val != "" {
		return val
	}
	return defaultValue
}

// BoolFlag returns the value of a boolean flag, false when absent.
func (p *ArgParser) BoolFlag(name string) bool {
	name = strings.TrimLeft(name, "-")
	return p.boolFlags[name]
}

// PositionalFrom returns all positional arguments starting from index.
func (p *ArgParser) PositionalFrom(index int) []string {
	if index < 0 || index >= len(p.positional) {
		return []string{}
	}
	return p.positional[index:]
}

// FlagNames returns every flag name seen, string and boolean.
func (p *ArgParser) FlagNames() []string {
	names := make([]string, 0, len(p.flags)+len(p.boolFlags))
	for name := range p.flags {
		names = append(names, name)
	}
	for name := range p.boolFlags {
		names = append(names, name)
	}
	return names
}
