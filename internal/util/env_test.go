package util

import "testing"

func TestGetEnvString(t *testing.T) {
	t.Setenv("GRAPEVINE_TEST_STR", "value")
	if got := GetEnvString("GRAPEVINE_TEST_STR", "fallback"); got != "value" {
		t.Errorf("GetEnvString() = %q, want %q", got, "value")
	}
	if got := GetEnvString("GRAPEVINE_TEST_STR_MISSING", "fallback"); got != "fallback" {
		t.Errorf("GetEnvString() = %q, want fallback", got)
	}
	t.Setenv("GRAPEVINE_TEST_STR", "")
	if got := GetEnvString("GRAPEVINE_TEST_STR", "fallback"); got != "" {
		t.Errorf("GetEnvString() = %q, want empty for explicitly empty value", got)
	}
}

func TestGetEnvInt(t *testing.T) {
	t.Setenv("GRAPEVINE_TEST_INT", "7")
	if got := GetEnvInt("GRAPEVINE_TEST_INT", 3); got != 7 {
		t.Errorf("GetEnvInt() = %d, want 7", got)
	}
	if got := GetEnvInt("GRAPEVINE_TEST_INT_MISSING", 3); got != 3 {
		t.Errorf("GetEnvInt() = %d, want fallback 3", got)
	}
	t.Setenv("GRAPEVINE_TEST_INT", "seven")
	if got := GetEnvInt("GRAPEVINE_TEST_INT", 3); got != 3 {
		t.Errorf("GetEnvInt() = %d, want fallback 3 for unparseable value", got)
	}
}

func TestGetEnvBool(t *testing.T) {
	t.Setenv("GRAPEVINE_TEST_BOOL", "1")
	if !GetEnvBool("GRAPEVINE_TEST_BOOL", false) {
		t.Error("GetEnvBool() = false, want true for \"1\"")
	}
	t.Setenv("GRAPEVINE_TEST_BOOL", "false")
	if GetEnvBool("GRAPEVINE_TEST_BOOL", true) {
		t.Error("GetEnvBool() = true, want false")
	}
	t.Setenv("GRAPEVINE_TEST_BOOL", "nope")
	if !GetEnvBool("GRAPEVINE_TEST_BOOL", true) {
		t.Error("GetEnvBool() = false, want fallback true for unparseable value")
	}
	if GetEnvBool("GRAPEVINE_TEST_BOOL_MISSING", false) {
		t.Error("GetEnvBool() = true, want fallback false when unset")
	}
}
