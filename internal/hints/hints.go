// Package hints implements the documentation lookup service: keyed
// retrieval and keyword search over a small corpus of markdown hint
// files for the analysis tooling. It is presentation glue, entirely
// separate from the selection pipeline.
package hints

import (
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/hepworks/trijet.report/internal/security"
)

// Corpus serves hint lookups from a directory of markdown files.
type Corpus struct {
	Dir string
}

// NewCorpus creates a corpus over the given directory.
func NewCorpus(dir string) *Corpus {
	return &Corpus{Dir: dir}
}

// List returns the names of all available hint files, without the .md
// extension, sorted.
func (c *Corpus) List() ([]string, error) {
	entries, err := filepath.Glob(filepath.Join(c.Dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan hints dir: %w", err)
	}
	names := make([]string, 0, len(entries))
	for _, e := range entries {
		names = append(names, strings.TrimSuffix(filepath.Base(e), ".md"))
	}
	sort.Strings(names)
	return names, nil
}

// Get returns the hint text for a library. The name is normalized to
// lower case; "<name>-hints.md" is tried first, then "<name>.md". A
// miss reports the available names so the caller can correct the query.
func (c *Corpus) Get(library string) (string, error) {
	name := strings.ToLower(strings.TrimSpace(library))
	if name == "" {
		return "", fmt.Errorf("invalid library name %q", library)
	}

	for _, candidate := range []string{name + "-hints.md", name + ".md"} {
		path := filepath.Join(c.Dir, candidate)
		if err := security.ValidatePathWithinDirectory(path, c.Dir); err != nil {
			return "", fmt.Errorf("invalid library name %q: %w", library, err)
		}
		data, err := os.ReadFile(path)
		if err == nil {
			return string(data), nil
		}
		if !os.IsNotExist(err) {
			return "", fmt.Errorf("failed to read hints for %q: %w", library, err)
		}
	}

	available, err := c.List()
	if err != nil {
		return "", err
	}
	return "", fmt.Errorf("no hints file found for %q; available: %s", library, strings.Join(available, ", "))
}

// Match is one keyword hit inside a hint file: the 1-based line number
// and the matching line with one line of context on either side.
type Match struct {
	Line    int    `json:"line"`
	Context string `json:"context"`
}

// FileMatches groups the matches found in one hint file.
type FileMatches struct {
	Name    string  `json:"name"`
	Matches []Match `json:"matches"`
}

// maxMatchesPerFile caps reported hits so one dense file does not
// drown the response.
const maxMatchesPerFile = 3

// Search scans every hint file for the keyword (case-insensitive) and
// returns per-file matches with context.
func (c *Corpus) Search(keyword string) ([]FileMatches, error) {
	if strings.TrimSpace(keyword) == "" {
		return nil, fmt.Errorf("empty search keyword")
	}

	entries, err := filepath.Glob(filepath.Join(c.Dir, "*.md"))
	if err != nil {
		return nil, fmt.Errorf("failed to scan hints dir: %w", err)
	}
	sort.Strings(entries)

	needle := strings.ToLower(keyword)
	var out []FileMatches
	for _, path := range entries {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("failed to read %s: %w", path, err)
		}
		lines := strings.Split(string(data), "\n")

		var matches []Match
		for i, line := range lines {
			if !strings.Contains(strings.ToLower(line), needle) {
				continue
			}
			start := i - 1
			if start < 0 {
				start = 0
			}
			end := i + 2
			if end > len(lines) {
				end = len(lines)
			}
			matches = append(matches, Match{
				Line:    i + 1,
				Context: strings.Join(lines[start:end], "\n"),
			})
			if len(matches) == maxMatchesPerFile {
				break
			}
		}
		if len(matches) > 0 {
			out = append(out, FileMatches{
				Name:    strings.TrimSuffix(filepath.Base(path), ".md"),
				Matches: matches,
			})
		}
	}
	return out, nil
}
