package blog

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/require"
)

func writePost(t *testing.T, dir, name, content string) {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0o644))
}

func TestStoreListsPublishedPostsNewestFirst(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePost(t, dir, "older-post.md", `---
title: Older Post
published: 2026-01-05
---
Body of the older post.`)
	writePost(t, dir, "newer-post.md", `---
title: Newer Post
summary: The fresh one.
published: 2026-03-20
---
Body of the newer post.`)
	writePost(t, dir, "hidden-draft.md", `---
title: Hidden
draft: true
---
Should not appear.`)
	writePost(t, dir, "notes.txt", "ignored, not markdown")

	store := NewStore(dir, time.Minute)
	posts, err := store.List()
	require.NoError(t, err)
	require.Len(t, posts, 2)
	require.Equal(t, "newer-post", posts[0].Slug)
	require.Equal(t, "The fresh one.", posts[0].Summary)
	require.Equal(t, "older-post", posts[1].Slug)
}

func TestStoreRendersMarkdownAndSanitizes(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePost(t, dir, "styling-tips.md", `---
title: Styling Tips
published: 2026-02-02
---
Some **bold** advice.

<script>alert("xss")</script>`)

	store := NewStore(dir, time.Minute)
	post, err := store.Get("styling-tips")
	require.NoError(t, err)
	require.Contains(t, string(post.Body), "<strong>bold</strong>")
	require.NotContains(t, string(post.Body), "<script>")
}

func TestStoreGetMissingAndTraversal(t *testing.T) {
	t.Parallel()

	store := NewStore(t.TempDir(), time.Minute)

	_, err := store.Get("nope")
	require.ErrorIs(t, err, ErrNotFound)

	_, err = store.Get("../../etc/passwd")
	require.ErrorIs(t, err, ErrNotFound)
}

func TestStoreFallsBackToPrettifiedSlugTitle(t *testing.T) {
	t.Parallel()

	dir := t.TempDir()
	writePost(t, dir, "care-guide-for-velvet.md", "No front matter here, just body.")

	store := NewStore(dir, time.Minute)
	post, err := store.Get("care-guide-for-velvet")
	require.NoError(t, err)
	require.Equal(t, "Care Guide For Velvet", post.Title)
	require.False(t, post.PublishedAt.IsZero(), "falls back to file mtime")
}

func TestStoreMissingDirIsEmptyNotError(t *testing.T) {
	t.Parallel()

	store := NewStore(filepath.Join(t.TempDir(), "does-not-exist"), time.Minute)
	posts, err := store.List()
	require.NoError(t, err)
	require.Empty(t, posts)
}
