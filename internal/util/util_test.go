// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import (
	"math"
	"os"
	"path/filepath"
	"runtime"
	"testing"
)

// =============================================================================
// ATOMIC WRITE TESTS
// =============================================================================

func TestAtomicWriteFile_Basic(t *testing.T) {
	path := filepath.Join(t.TempDir(), "chart.png")
	data := []byte("\x89PNG fake")

	if err := AtomicWriteFile(path, data, 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("Failed to read file: %v", err)
	}
	if string(content) != string(data) {
		t.Errorf("Content mismatch: got %q, want %q", content, data)
	}
}

func TestAtomicWriteFile_CreatesParentDir(t *testing.T) {
	path := filepath.Join(t.TempDir(), "subdir", "deep", "config.toml")

	if err := AtomicWriteFile(path, []byte("version = \"1\"\n"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	if _, err := os.Stat(path); err != nil {
		t.Fatalf("File not created: %v", err)
	}
}

func TestAtomicWriteFile_Overwrites(t *testing.T) {
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := AtomicWriteFile(path, []byte("old content that is longer"), 0644); err != nil {
		t.Fatalf("first write failed: %v", err)
	}
	if err := AtomicWriteFile(path, []byte("new"), 0644); err != nil {
		t.Fatalf("second write failed: %v", err)
	}

	content, _ := os.ReadFile(path)
	if string(content) != "new" {
		t.Errorf("Content not overwritten: got %q", content)
	}
}

func TestAtomicWriteFile_Permissions(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("permission bits are not enforced on Windows")
	}
	path := filepath.Join(t.TempDir(), "config.toml")

	if err := AtomicWriteFile(path, []byte("x"), 0600); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}
	info, err := os.Stat(path)
	if err != nil {
		t.Fatalf("stat failed: %v", err)
	}
	if info.Mode().Perm() != 0600 {
		t.Errorf("Permissions = %o, want 600", info.Mode().Perm())
	}
}

func TestAtomicWriteFile_LeavesNoTempFiles(t *testing.T) {
	dir := t.TempDir()
	if err := AtomicWriteFile(filepath.Join(dir, "a.png"), []byte("a"), 0644); err != nil {
		t.Fatalf("AtomicWriteFile failed: %v", err)
	}

	entries, err := os.ReadDir(dir)
	if err != nil {
		t.Fatalf("ReadDir failed: %v", err)
	}
	if len(entries) != 1 {
		t.Errorf("expected only the target file, found %d entries", len(entries))
	}
}

// =============================================================================
// PARSING TESTS
// =============================================================================

func TestParseFloat(t *testing.T) {
	tests := []struct {
		in      string
		want    float64
		wantErr bool
	}{
		{"1", 1, false},
		{" -3 ", -3, false},
		{"2.5", 2.5, false},
		{"2,5", 2.5, false},
		{"1e3", 1000, false},
		{"-0.125", -0.125, false},
		{"", 0, true},
		{"abc", 0, true},
		{"1,000.5", 0, true},
		{"1,2,3", 0, true},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			got, err := ParseFloat(tt.in)
			if (err != nil) != tt.wantErr {
				t.Fatalf("ParseFloat(%q) error = %v, wantErr %v", tt.in, err, tt.wantErr)
			}
			if !tt.wantErr && got != tt.want {
				t.Errorf("ParseFloat(%q) = %v, want %v", tt.in, got, tt.want)
			}
		})
	}
}

func TestParseBool(t *testing.T) {
	for _, in := range []string{"1", "true", "YES", " on "} {
		if v, err := ParseBool(in); err != nil || !v {
			t.Errorf("ParseBool(%q) = %v, %v; want true", in, v, err)
		}
	}
	for _, in := range []string{"0", "False", "no", "off"} {
		if v, err := ParseBool(in); err != nil || v {
			t.Errorf("ParseBool(%q) = %v, %v; want false", in, v, err)
		}
	}
	if _, err := ParseBool("maybe"); err == nil {
		t.Error("ParseBool(\"maybe\") should fail")
	}
}

func TestFloatToString(t *testing.T) {
	tests := map[float64]string{
		1:     "1",
		-3:    "-3",
		0.1:   "0.1",
		1e21:  "1e+21",
		2.500: "2.5",
	}
	for in, want := range tests {
		if got := FloatToString(in); got != want {
			t.Errorf("FloatToString(%v) = %q, want %q", in, got, want)
		}
	}

	if got := FloatToString(math.Copysign(0, -1)); got != "0" {
		t.Errorf("FloatToString(-0) = %q, want %q", got, "0")
	}
}

func TestNormalizeZero(t *testing.T) {
	if math.Signbit(NormalizeZero(math.Copysign(0, -1))) {
		t.Error("NormalizeZero(-0) kept the sign bit")
	}
	if got := NormalizeZero(-2.5); got != -2.5 {
		t.Errorf("NormalizeZero(-2.5) = %v", got)
	}
}
