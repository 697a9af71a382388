package cache

import (
	"testing"
)

func TestWizardKeyScopedByUser(t *testing.T) {
	a := wizardKey("task", 101, "sess-1")
	b := wizardKey("task", 202, "sess-1")
	if a == b {
		t.Fatalf("same session id for different users maps to one key: %q", a)
	}

	if wizardKey("task", 101, "sess-1") != a {
		t.Fatal("key not deterministic")
	}

	if wizardKey("script", 101, "sess-1") == a {
		t.Fatal("kind must separate sessions")
	}
}
