// pkg/source/checkout.go
package source

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/Masterminds/semver/v3"
	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
)

// ErrInvalidTag indicates the requested tag is not a release version
var ErrInvalidTag = errors.New("invalid slang tag")

// Options configures an upstream checkout
type Options struct {
	URL      string
	Tag      string
	Dir      string
	Progress io.Writer
	Logger   *log.Logger
}

// Result describes the checkout that was used
type Result struct {
	Dir     string
	Commit  string
	Cloned  bool // false when an existing checkout was reused
	Matches bool // HEAD is the tagged commit
}

// ValidateTag accepts release tags such as v2025.24.2
func ValidateTag(tag string) error {
	if _, err := semver.NewVersion(tag); err != nil {
		return fmt.Errorf("%w %q: %v", ErrInvalidTag, tag, err)
	}
	return nil
}

// Checkout clones the tagged source tree with its submodules, or reuses an
// existing clone in opts.Dir
func Checkout(ctx context.Context, opts Options) (*Result, error) {
	logger := opts.Logger
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}

	if repo, err := git.PlainOpen(opts.Dir); err == nil {
		fmt.Println("--- Slang directory exists, skipping clone.")
		res, err := inspect(repo, opts.Tag)
		if err != nil {
			return nil, err
		}
		res.Dir = opts.Dir
		if !res.Matches {
			logger.Printf("Warning: %s is not at %s (HEAD %s)", opts.Dir, opts.Tag, res.Commit)
		}
		return res, nil
	} else if !errors.Is(err, git.ErrRepositoryNotExists) {
		return nil, fmt.Errorf("opening %s: %w", opts.Dir, err)
	}

	if entries, err := os.ReadDir(opts.Dir); err == nil && len(entries) > 0 {
		return nil, fmt.Errorf("%s exists but is not a git repository", opts.Dir)
	}

	fmt.Printf("--- Cloning Slang %s...\n", opts.Tag)

	progress := opts.Progress
	if progress == nil {
		progress = io.Discard
	}

	repo, err := git.PlainCloneContext(ctx, opts.Dir, false, &git.CloneOptions{
		URL:               opts.URL,
		ReferenceName:     plumbing.NewTagReferenceName(opts.Tag),
		SingleBranch:      true,
		Depth:             1,
		RecurseSubmodules: git.DefaultSubmoduleRecursionDepth,
		ShallowSubmodules: true,
		Progress:          progress,
	})
	if err != nil {
		os.RemoveAll(opts.Dir)
		return nil, fmt.Errorf("git clone failed: %w", err)
	}

	res, err := inspect(repo, opts.Tag)
	if err != nil {
		return nil, err
	}
	res.Dir = opts.Dir
	res.Cloned = true
	logger.Printf("Checked out %s at %s", opts.Tag, res.Commit)
	return res, nil
}

// inspect compares HEAD with the commit the tag points at
func inspect(repo *git.Repository, tag string) (*Result, error) {
	head, err := repo.Head()
	if err != nil {
		return nil, fmt.Errorf("reading HEAD: %w", err)
	}

	res := &Result{Commit: head.Hash().String()}

	want, err := tagCommit(repo, tag)
	if err != nil {
		// A checkout without the tag ref cannot be confirmed either way.
		return res, nil
	}
	res.Matches = want == head.Hash()
	return res, nil
}

// tagCommit resolves lightweight and annotated tags to a commit hash
func tagCommit(repo *git.Repository, tag string) (plumbing.Hash, error) {
	ref, err := repo.Tag(tag)
	if err != nil {
		return plumbing.ZeroHash, err
	}

	obj, err := repo.TagObject(ref.Hash())
	switch {
	case err == nil:
		commit, err := obj.Commit()
		if err != nil {
			return plumbing.ZeroHash, err
		}
		return commit.Hash, nil
	case errors.Is(err, plumbing.ErrObjectNotFound):
		return ref.Hash(), nil
	default:
		return plumbing.ZeroHash, err
	}
}
