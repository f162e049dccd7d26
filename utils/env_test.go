package utils

import (
	"testing"
)

func TestGetEnvString(t *testing.T) {
	t.Setenv("NAV_TEST_STR", "hello")

	if got := GetEnvString("NAV_TEST_STR", "fallback"); got != "hello" {
		t.Fatalf("GetEnvString = %q, want %q", got, "hello")
	}
	if got := GetEnvString("NAV_TEST_MISSING", "fallback"); got != "fallback" {
		t.Fatalf("GetEnvString = %q, want %q", got, "fallback")
	}
}

func TestGetEnvBool(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		set          bool
		defaultValue bool
		want         bool
	}{
		{"True", "true", true, false, true},
		{"False", "false", true, true, false},
		{"Garbage", "yes", true, false, false},
		{"Missing", "", false, true, true},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := "NAV_TEST_BOOL"
			if tc.set {
				t.Setenv(key, tc.value)
			}
			if got := GetEnvBool(key, tc.defaultValue); got != tc.want {
				t.Fatalf("GetEnvBool(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}

func TestGetEnvNumeric(t *testing.T) {
	tests := []struct {
		name         string
		value        string
		set          bool
		defaultValue int
		want         float64
	}{
		{"Integer", "300", true, 0, 300},
		{"Float", "1.5", true, 0, 1.5},
		{"Garbage", "fast", true, 7, 7},
		{"Missing", "", false, 42, 42},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			key := "NAV_TEST_NUM"
			if tc.set {
				t.Setenv(key, tc.value)
			}
			if got := GetEnvNumeric(key, tc.defaultValue); got != tc.want {
				t.Fatalf("GetEnvNumeric(%q) = %v, want %v", tc.value, got, tc.want)
			}
		})
	}
}
