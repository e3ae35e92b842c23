package security

import (
	"os"
	"path/filepath"
	"testing"
)

func TestValidatePathWithinDirectoryAccepts(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{
		filepath.Join(dir, "vector-hints.md"),
		filepath.Join(dir, "sub", "file.md"),
	} {
		if err := ValidatePathWithinDirectory(p, dir); err != nil {
			t.Errorf("unexpected rejection of %s: %v", p, err)
		}
	}
}

func TestValidatePathWithinDirectoryRejectsTraversal(t *testing.T) {
	dir := t.TempDir()
	for _, p := range []string{
		filepath.Join(dir, "..", "secrets.md"),
		filepath.Join(dir, "sub", "..", "..", "etc", "passwd"),
		"/etc/passwd",
	} {
		if err := ValidatePathWithinDirectory(p, dir); err == nil {
			t.Errorf("expected rejection of %s", p)
		}
	}
}

func TestValidatePathWithinDirectoryRejectsSymlinkEscape(t *testing.T) {
	dir := t.TempDir()
	outside := t.TempDir()
	link := filepath.Join(dir, "evil")
	if err := os.Symlink(outside, link); err != nil {
		t.Skipf("symlinks unavailable: %v", err)
	}
	if err := ValidatePathWithinDirectory(filepath.Join(link, "file.md"), dir); err == nil {
		t.Error("expected rejection of symlinked escape")
	}
}

func TestSanitizeName(t *testing.T) {
	cases := []struct {
		in, want string
	}{
		{"synthetic-500-seed42", "synthetic-500-seed42"},
		{"run 07/2026", "run_07_2026"},
		{"../../etc", "etc"},
		{"", "unknown"},
		{"///", "unknown"},
		{"a  b", "a_b"},
	}
	for _, c := range cases {
		if got := SanitizeName(c.in); got != c.want {
			t.Errorf("SanitizeName(%q) = %q, want %q", c.in, got, c.want)
		}
	}
}
