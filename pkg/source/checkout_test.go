package source

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var sig = &object.Signature{Name: "slangdroid", Email: "ci@example.com", When: time.Unix(1700000000, 0)}

func commitFile(t *testing.T, repo *git.Repository, dir, name, content string) plumbing.Hash {
	t.Helper()
	require.NoError(t, os.WriteFile(filepath.Join(dir, name), []byte(content), 0644))

	wt, err := repo.Worktree()
	require.NoError(t, err)
	_, err = wt.Add(name)
	require.NoError(t, err)

	hash, err := wt.Commit("update "+name, &git.CommitOptions{Author: sig})
	require.NoError(t, err)
	return hash
}

func TestCheckoutReusesExistingClone(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	hash := commitFile(t, repo, dir, "CMakeLists.txt", "project(slang)\n")
	_, err = repo.CreateTag("v2025.24.2", hash, nil)
	require.NoError(t, err)

	res, err := Checkout(context.Background(), Options{Tag: "v2025.24.2", Dir: dir})
	require.NoError(t, err)
	assert.False(t, res.Cloned)
	assert.True(t, res.Matches)
	assert.Equal(t, hash.String(), res.Commit)

	commitFile(t, repo, dir, "README.md", "moved on\n")
	res, err = Checkout(context.Background(), Options{Tag: "v2025.24.2", Dir: dir})
	require.NoError(t, err)
	assert.False(t, res.Matches)
}

func TestCheckoutAnnotatedTag(t *testing.T) {
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	hash := commitFile(t, repo, dir, "CMakeLists.txt", "project(slang)\n")
	_, err = repo.CreateTag("v2025.1.0", hash, &git.CreateTagOptions{Tagger: sig, Message: "release"})
	require.NoError(t, err)

	res, err := Checkout(context.Background(), Options{Tag: "v2025.1.0", Dir: dir})
	require.NoError(t, err)
	assert.True(t, res.Matches)
}

// upstream creates a repository with a tagged commit followed by one that
// is not part of the release
func upstream(t *testing.T, tag string) (string, plumbing.Hash) {
	t.Helper()
	dir := t.TempDir()
	repo, err := git.PlainInit(dir, false)
	require.NoError(t, err)

	tagged := commitFile(t, repo, dir, "CMakeLists.txt", "project(slang)\n")
	_, err = repo.CreateTag(tag, tagged, nil)
	require.NoError(t, err)
	commitFile(t, repo, dir, "UNRELEASED.md", "after the tag\n")
	return dir, tagged
}

func TestCheckoutClonesTag(t *testing.T) {
	url, tagged := upstream(t, "v2025.24.2")
	dir := filepath.Join(t.TempDir(), "slang")

	res, err := Checkout(context.Background(), Options{URL: url, Tag: "v2025.24.2", Dir: dir})
	require.NoError(t, err)
	assert.True(t, res.Cloned)
	assert.True(t, res.Matches)
	assert.Equal(t, dir, res.Dir)
	assert.Equal(t, tagged.String(), res.Commit)
	assert.FileExists(t, filepath.Join(dir, "CMakeLists.txt"))
	assert.NoFileExists(t, filepath.Join(dir, "UNRELEASED.md"))

	again, err := Checkout(context.Background(), Options{URL: url, Tag: "v2025.24.2", Dir: dir})
	require.NoError(t, err)
	assert.False(t, again.Cloned)
	assert.True(t, again.Matches)
}

func TestCheckoutMissingTag(t *testing.T) {
	url, _ := upstream(t, "v2025.24.2")
	dir := filepath.Join(t.TempDir(), "slang")

	_, err := Checkout(context.Background(), Options{URL: url, Tag: "v2099.1.0", Dir: dir})
	assert.ErrorContains(t, err, "git clone failed")
	assert.NoDirExists(t, dir)
}

func TestCheckoutRejectsNonRepository(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "stray"), nil, 0644))

	_, err := Checkout(context.Background(), Options{Tag: "v2025.24.2", Dir: dir})
	assert.ErrorContains(t, err, "not a git repository")
}

func TestValidateTag(t *testing.T) {
	assert.NoError(t, ValidateTag("v2025.24.2"))
	assert.NoError(t, ValidateTag("v2024.1.34"))
	assert.ErrorIs(t, ValidateTag("main"), ErrInvalidTag)
}
