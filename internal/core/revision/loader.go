package revision

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"github.com/bluekeyes/go-gitdiff/gitdiff"
	"github.com/bmatcuk/doublestar/v4"
	"gopkg.in/yaml.v3"
)

// Source selects how revisions are loaded from a directory.
type Source string

const (
	// SourceSnapshots loads YAML snapshot files, one revision each.
	SourceSnapshots Source = "snapshots"
	// SourcePatches reconstructs revisions from a series of unified-diff
	// patch files applied in filename order.
	SourcePatches Source = "patches"
)

// Load reads the revision history from dir using the given source and
// filename glob. Revisions are returned newest first. A directory with
// no matching files yields an empty history, not an error.
func Load(dir string, source Source, glob string) ([]Revision, error) {
	switch source {
	case SourcePatches:
		return loadPatches(dir, glob)
	case SourceSnapshots, "":
		return loadSnapshots(dir, glob)
	default:
		return nil, fmt.Errorf("unknown revision source %q", source)
	}
}

func matchFiles(dir, glob string) ([]string, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("read revisions dir: %w", err)
	}

	var paths []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ok, err := doublestar.Match(glob, entry.Name())
		if err != nil {
			return nil, fmt.Errorf("bad snapshot glob %q: %w", glob, err)
		}
		if ok {
			paths = append(paths, filepath.Join(dir, entry.Name()))
		}
	}
	sort.Strings(paths)
	return paths, nil
}

func loadSnapshots(dir, glob string) ([]Revision, error) {
	paths, err := matchFiles(dir, glob)
	if err != nil {
		return nil, err
	}

	revisions := make([]Revision, 0, len(paths))
	for _, path := range paths {
		data, err := os.ReadFile(path)
		if err != nil {
			return nil, fmt.Errorf("read snapshot: %w", err)
		}

		var rev Revision
		if err := yaml.Unmarshal(data, &rev); err != nil {
			return nil, fmt.Errorf("parse snapshot %s: %w", filepath.Base(path), err)
		}
		if rev.ID == "" {
			rev.ID = strings.TrimSuffix(filepath.Base(path), filepath.Ext(path))
		}
		revisions = append(revisions, rev)
	}

	sortNewestFirst(revisions)
	return revisions, nil
}

// loadPatches rebuilds the revision history by applying each patch to
// the content produced by the one before it. The first patch applies to
// empty content (post creation).
func loadPatches(dir, glob string) ([]Revision, error) {
	paths, err := matchFiles(dir, glob)
	if err != nil {
		return nil, err
	}

	var revisions []Revision
	content := ""
	for _, path := range paths {
		f, err := os.Open(path)
		if err != nil {
			return nil, fmt.Errorf("open patch: %w", err)
		}
		files, preamble, err := gitdiff.Parse(f)
		_ = f.Close()
		if err != nil {
			return nil, fmt.Errorf("parse patch %s: %w", filepath.Base(path), err)
		}
		if len(files) == 0 {
			continue
		}

		var out bytes.Buffer
		if err := gitdiff.Apply(&out, strings.NewReader(content), files[0]); err != nil {
			return nil, fmt.Errorf("apply patch %s: %w", filepath.Base(path), err)
		}
		content = out.String()

		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat patch: %w", err)
		}

		revisions = append(revisions, Revision{
			ID:      strings.TrimSuffix(filepath.Base(path), filepath.Ext(path)),
			Title:   patchTitle(preamble),
			Date:    info.ModTime(),
			Content: content,
		})
	}

	sortNewestFirst(revisions)
	return revisions, nil
}

// patchTitle extracts a human-readable title from the patch preamble
// (git format-patch subject line, when present).
func patchTitle(preamble string) string {
	for _, line := range strings.Split(preamble, "\n") {
		if after, ok := strings.CutPrefix(line, "Subject:"); ok {
			return strings.TrimSpace(strings.TrimPrefix(strings.TrimSpace(after), "[PATCH]"))
		}
	}
	return ""
}

func sortNewestFirst(revisions []Revision) {
	sort.SliceStable(revisions, func(i, j int) bool {
		return revisions[i].Date.After(revisions[j].Date)
	})
}
