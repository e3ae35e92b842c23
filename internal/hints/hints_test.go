package hints

import (
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/google/go-cmp/cmp"
)

func writeCorpus(t *testing.T) *Corpus {
	t.Helper()
	dir := t.TempDir()
	files := map[string]string{
		"vector-hints.md": "# Vector hints\n\nBuild four-momenta from pt, eta, phi, mass.\nSum candidates before taking the invariant mass.\n",
		"hist-hints.md":   "# Histogram hints\n\nUse 50 bins for momentum plots.\nThe invariant mass axis runs to 500 GeV.\n",
		"selection.md":    "Pick the combination whose invariant mass is closest to the top quark mass.\n",
	}
	for name, body := range files {
		if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
			t.Fatal(err)
		}
	}
	return NewCorpus(dir)
}

func TestListSorted(t *testing.T) {
	c := writeCorpus(t)
	names, err := c.List()
	if err != nil {
		t.Fatal(err)
	}
	want := []string{"hist-hints", "selection", "vector-hints"}
	if diff := cmp.Diff(want, names); diff != "" {
		t.Errorf("List mismatch (-want +got):\n%s", diff)
	}
}

func TestGetPrefersHintsSuffix(t *testing.T) {
	c := writeCorpus(t)
	text, err := c.Get("vector")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "four-momenta") {
		t.Errorf("unexpected hints body: %q", text)
	}
}

func TestGetFallsBackToBareName(t *testing.T) {
	c := writeCorpus(t)
	text, err := c.Get("selection")
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(text, "top quark mass") {
		t.Errorf("unexpected hints body: %q", text)
	}
}

func TestGetNormalizesCase(t *testing.T) {
	c := writeCorpus(t)
	if _, err := c.Get("  Vector "); err != nil {
		t.Fatalf("case-insensitive lookup failed: %v", err)
	}
}

func TestGetMissingListsAvailable(t *testing.T) {
	c := writeCorpus(t)
	_, err := c.Get("uproot")
	if err == nil {
		t.Fatal("expected error for missing library")
	}
	for _, name := range []string{"hist-hints", "selection", "vector-hints"} {
		if !strings.Contains(err.Error(), name) {
			t.Errorf("error %q does not list %q", err, name)
		}
	}
}

func TestGetRejectsPathTraversal(t *testing.T) {
	c := writeCorpus(t)
	if _, err := c.Get("../secrets"); err == nil {
		t.Fatal("expected path traversal to be rejected")
	}
}

func TestSearchReturnsContext(t *testing.T) {
	c := writeCorpus(t)
	results, err := c.Search("invariant mass")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 3 {
		t.Fatalf("expected matches in 3 files, got %d", len(results))
	}
	// hist-hints.md line 4 matches with its neighbours included.
	hist := results[0]
	if hist.Name != "hist-hints" {
		t.Fatalf("expected hist-hints first, got %q", hist.Name)
	}
	if len(hist.Matches) != 1 || hist.Matches[0].Line != 4 {
		t.Fatalf("unexpected matches: %+v", hist.Matches)
	}
	if !strings.Contains(hist.Matches[0].Context, "50 bins") {
		t.Errorf("context missing preceding line: %q", hist.Matches[0].Context)
	}
}

func TestSearchCapsMatchesPerFile(t *testing.T) {
	dir := t.TempDir()
	body := strings.Repeat("the jet is here\n", 10)
	if err := os.WriteFile(filepath.Join(dir, "dense.md"), []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	results, err := NewCorpus(dir).Search("jet")
	if err != nil {
		t.Fatal(err)
	}
	if len(results) != 1 || len(results[0].Matches) != maxMatchesPerFile {
		t.Fatalf("expected %d capped matches, got %+v", maxMatchesPerFile, results)
	}
}

func TestSearchEmptyKeyword(t *testing.T) {
	c := writeCorpus(t)
	if _, err := c.Search("  "); err == nil {
		t.Fatal("expected error for empty keyword")
	}
}
