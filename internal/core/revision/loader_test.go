package revision

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeSnapshot(t *testing.T, dir, name, body string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644))
}

func TestLoadSnapshotsNewestFirst(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "001.yaml", `
id: rev-1
title: First draft
author: dan
date: 2026-08-01T10:00:00Z
content: hello world
`)
	writeSnapshot(t, dir, "002.yaml", `
id: rev-2
title: Second draft
author: dan
date: 2026-08-02T10:00:00Z
content: hello there world
`)

	revisions, err := Load(dir, SourceSnapshots, "*.yaml")
	require.NoError(t, err)

	require.Len(t, revisions, 2)
	assert.Equal(t, "rev-2", revisions[0].ID)
	assert.Equal(t, "rev-1", revisions[1].ID)
	assert.Equal(t, "Second draft", revisions[0].Title)
}

func TestLoadSnapshotsDefaultsIDFromFilename(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "draft-3.yaml", `
title: Untagged
date: 2026-08-01T10:00:00Z
content: body
`)

	revisions, err := Load(dir, SourceSnapshots, "*.yaml")
	require.NoError(t, err)

	require.Len(t, revisions, 1)
	assert.Equal(t, "draft-3", revisions[0].ID)
}

func TestLoadSnapshotsGlobFilters(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "keep.yaml", "id: a\ncontent: x\n")
	writeSnapshot(t, dir, "skip.txt", "not a snapshot")

	revisions, err := Load(dir, SourceSnapshots, "*.yaml")
	require.NoError(t, err)

	require.Len(t, revisions, 1)
	assert.Equal(t, "a", revisions[0].ID)
}

func TestLoadEmptyDirectory(t *testing.T) {
	revisions, err := Load(t.TempDir(), SourceSnapshots, "*.yaml")

	require.NoError(t, err)
	assert.Empty(t, revisions)
}

func TestLoadMissingDirectory(t *testing.T) {
	_, err := Load(filepath.Join(t.TempDir(), "nope"), SourceSnapshots, "*.yaml")

	assert.Error(t, err)
}

func TestLoadBadSnapshotYAML(t *testing.T) {
	dir := t.TempDir()
	writeSnapshot(t, dir, "bad.yaml", "{{not yaml")

	_, err := Load(dir, SourceSnapshots, "*.yaml")

	assert.ErrorContains(t, err, "bad.yaml")
}

func TestLoadUnknownSource(t *testing.T) {
	_, err := Load(t.TempDir(), Source("carrier-pigeon"), "*")

	assert.ErrorContains(t, err, "carrier-pigeon")
}

func TestLoadPatchesReconstructsHistory(t *testing.T) {
	dir := t.TempDir()

	// First patch creates the file, second rewrites a line.
	patch1 := `Subject: [PATCH] Create post
--- /dev/null
+++ b/post.txt
@@ -0,0 +1,2 @@
+hello world
+second line
`
	patch2 := `Subject: [PATCH] Tweak greeting
--- a/post.txt
+++ b/post.txt
@@ -1,2 +1,2 @@
-hello world
+goodbye world
 second line
`
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0001.patch"), []byte(patch1), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "0002.patch"), []byte(patch2), 0o644))

	// Ensure distinct mtimes so newest-first ordering is deterministic.
	earlier := time.Now().Add(-time.Hour)
	require.NoError(t, os.Chtimes(filepath.Join(dir, "0001.patch"), earlier, earlier))

	revisions, err := Load(dir, SourcePatches, "*.patch")
	require.NoError(t, err)

	require.Len(t, revisions, 2)
	assert.Equal(t, "0002", revisions[0].ID)
	assert.Equal(t, "Tweak greeting", revisions[0].Title)
	assert.Contains(t, revisions[0].Content, "goodbye world")
	assert.Contains(t, revisions[0].Content, "second line")

	assert.Equal(t, "0001", revisions[1].ID)
	assert.Contains(t, revisions[1].Content, "hello world")
}
