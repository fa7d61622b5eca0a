// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"fmt"
	"strconv"
	"strings"
)

// ParseFloat converts user input to a float64. Surrounding space is ignored
// and a single decimal comma ("2,5") is accepted when the text has no dot.
func ParseFloat(s string) (float64, error) {
	s = strings.TrimSpace(s)
	if !strings.Contains(s, ".") && strings.Count(s, ",") == 1 {
		s = strings.Replace(s, ",", ".", 1)
	}
	f, err := strconv.ParseFloat(s, 64)
	if err != nil {
		return 0, fmt.Errorf("could not convert %q to a number", s)
	}
	return f, nil
}

// ParseBool accepts 1/0, true/false, yes/no and on/off in any case.
func ParseBool(s string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "1", "true", "yes", "on":
		return true, nil
	case "0", "false", "no", "off":
		return false, nil
	}
	return false, fmt.Errorf("could not convert %q to a boolean", s)
}

// FloatToString formats f with the fewest digits that round-trip.
// Negative zero prints as "0".
func FloatToString(f float64) string {
	return strconv.FormatFloat(NormalizeZero(f), 'g', -1, 64)
}

// NormalizeZero maps -0 to 0 and returns every other value unchanged.
func NormalizeZero(f float64) float64 {
	if f == 0 {
		return 0
	}
	return f
}
