package security

import (
	"os"
	"strings"
	"testing"
)

func TestSealOpenRoundTrip(t *testing.T) {
	sealed, err := Seal([]byte("sk-secret-value"), "master-pass")
	if err != nil {
		t.Fatal(err)
	}
	got, err := Open(sealed, "master-pass")
	if err != nil {
		t.Fatal(err)
	}
	if string(got) != "sk-secret-value" {
		t.Errorf("plaintext = %q", got)
	}
}

func TestOpenWrongPassword(t *testing.T) {
	sealed, err := Seal([]byte("data"), "right")
	if err != nil {
		t.Fatal(err)
	}
	if _, err := Open(sealed, "wrong"); err == nil {
		t.Fatal("expected decryption failure")
	}
}

func TestSealFreshSalt(t *testing.T) {
	a, err := Seal([]byte("same"), "pw")
	if err != nil {
		t.Fatal(err)
	}
	b, err := Seal([]byte("same"), "pw")
	if err != nil {
		t.Fatal(err)
	}
	if a == b {
		t.Fatal("two seals of the same plaintext must differ")
	}
}

func TestOpenGarbage(t *testing.T) {
	if _, err := Open("not base64!!", "pw"); err == nil {
		t.Fatal("expected error for invalid base64")
	}
	if _, err := Open("YWJj", "pw"); err == nil || !strings.Contains(err.Error(), "too short") {
		t.Fatalf("err = %v, want too short", err)
	}
}

func TestVaultFallbackRoundTrip(t *testing.T) {
	// No OS keychain in tests, so Set/Get exercise the vault path.
	ks, err := NewKeyStore(t.TempDir(), "master")
	if err != nil {
		t.Fatal(err)
	}
	if err := ks.setInVault("openai", "sk-12345678901234"); err != nil {
		t.Fatal(err)
	}
	got, err := ks.getFromVault("openai")
	if err != nil {
		t.Fatal(err)
	}
	if got != "sk-12345678901234" {
		t.Errorf("value = %q", got)
	}
	if err := ks.deleteFromVault("openai"); err != nil {
		t.Fatal(err)
	}
	if _, err := ks.getFromVault("openai"); err == nil {
		t.Fatal("expected missing key error after delete")
	}
}

func TestResolveEnv(t *testing.T) {
	ks, err := NewKeyStore(t.TempDir(), "")
	if err != nil {
		t.Fatal(err)
	}
	os.Setenv("G4FCHAT_TEST_KEY", "from-env")
	defer os.Unsetenv("G4FCHAT_TEST_KEY")

	if got := ks.Resolve("env:G4FCHAT_TEST_KEY"); got != "from-env" {
		t.Errorf("Resolve env = %q", got)
	}
	if got := ks.Resolve("env:G4FCHAT_UNSET_KEY"); got != "" {
		t.Errorf("Resolve unset env = %q, want empty", got)
	}
	if got := ks.Resolve("literal-key"); got != "literal-key" {
		t.Errorf("Resolve literal = %q", got)
	}
}

func TestMaskKey(t *testing.T) {
	if got := MaskKey("short"); got != "****" {
		t.Errorf("MaskKey short = %q", got)
	}
	if got := MaskKey("sk-1234567890abcd"); got != "sk-...abcd" {
		t.Errorf("MaskKey = %q", got)
	}
}
