package i18n

import "testing"

func TestTranslation(t *testing.T) {
	if got := T("help_title", "ru"); got != "Помощь" {
		t.Fatalf("expected Помощь, got %q", got)
	}
	if got := T("help_title", "en"); got != "Help" {
		t.Fatalf("expected Help, got %q", got)
	}
}

func TestFallbackToEnglish(t *testing.T) {
	if got := T("help_title", "de"); got != "Help" {
		t.Fatalf("expected English fallback, got %q", got)
	}
}

func TestFallbackToKey(t *testing.T) {
	if got := T("no_such_key", "en"); got != "no_such_key" {
		t.Fatalf("expected key fallback, got %q", got)
	}
}

func TestRussianCoversEnglishKeys(t *testing.T) {
	for key := range translations["en"] {
		if _, ok := translations["ru"][key]; !ok {
			t.Fatalf("missing ru translation for %q", key)
		}
	}
}

func TestValid(t *testing.T) {
	if !Valid("en") || !Valid("ru") {
		t.Fatal("en and ru must be valid")
	}
	if Valid("fr") {
		t.Fatal("fr must not be valid")
	}
}
