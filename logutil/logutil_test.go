package logutil

import "testing"

func TestRedactKey(t *testing.T) {
	if got := RedactKey("short"); got != "********" {
		t.Errorf("RedactKey(short) = %q", got)
	}
	if got := RedactKey("sk-or-v1-abcdef123456"); got != "sk-o...3456" {
		t.Errorf("RedactKey = %q, want sk-o...3456", got)
	}
}
