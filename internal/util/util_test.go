// Copyright (c) 2024-2025 Jesse Morgan / Morgan Forge
// SPDX-License-Identifier: AGPL-3.0-or-later

package util

import "testing"

func TestTruncateRunes(t *testing.T) {
	tests := []struct {
		name     string
		input    string
		maxRunes int
		want     string
	}{
		{"no truncation", "hello", 10, "hello"},
		{"exact fit", "hello", 5, "hello"},
		{"truncated", "hello world", 8, "hello..."},
		{"unicode", "你好世界你好世界", 5, "你好..."},
		{"tiny max", "hello", 2, "he"},
		{"zero max", "hello", 0, ""},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := TruncateRunes(tc.input, tc.maxRunes)
			if got != tc.want {
				t.Errorf("TruncateRunes(%q, %d) = %q, want %q", tc.input, tc.maxRunes, got, tc.want)
			}
		})
	}
}

func TestTruncateWidth(t *testing.T) {
	// CJK characters occupy two cells; ASCII one.
	if got := TruncateWidth("hello", 10); got != "hello" {
		t.Errorf("TruncateWidth(short) = %q", got)
	}
	got := TruncateWidth("你好世界你好世界", 8)
	if StringWidth(got) > 8 {
		t.Errorf("TruncateWidth exceeded width: %q is %d cells", got, StringWidth(got))
	}
	if TruncateWidth("anything", 0) != "" {
		t.Error("TruncateWidth with zero width should be empty")
	}
}

func TestSafeSubstring(t *testing.T) {
	tests := []struct {
		name       string
		s          string
		start, end int
		want       string
	}{
		{"normal", "hello", 1, 3, "el"},
		{"full", "hello", 0, -1, "hello"},
		{"clamp start", "hello", -2, 2, "he"},
		{"clamp end", "hello", 3, 99, "lo"},
		{"inverted", "hello", 4, 2, ""},
		{"unicode", "你好世界", 1, 3, "好世"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			got := SafeSubstring(tc.s, tc.start, tc.end)
			if got != tc.want {
				t.Errorf("SafeSubstring(%q, %d, %d) = %q, want %q", tc.s, tc.start, tc.end, got, tc.want)
			}
		})
	}
}

func TestClampInt(t *testing.T) {
	if ClampInt(5, 0, 10) != 5 {
		t.Error("in-range value should be unchanged")
	}
	if ClampInt(-1, 0, 10) != 0 {
		t.Error("below range should clamp to lo")
	}
	if ClampInt(11, 0, 10) != 10 {
		t.Error("above range should clamp to hi")
	}
}
