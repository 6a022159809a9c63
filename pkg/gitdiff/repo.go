package gitdiff

import (
	"context"
	"errors"
	"fmt"
	"path/filepath"

	gogit "github.com/go-git/go-git/v5"
)

// ErrNoGit is returned when the directory is not inside a git repository.
var ErrNoGit = errors.New("not a git repository")

// FindRoot returns the top-level directory of the repository containing dir.
func FindRoot(dir string) (string, error) {
	repo, err := gogit.PlainOpenWithOptions(dir, &gogit.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return "", fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return "", fmt.Errorf("getting worktree: %w", err)
	}

	return filepath.Clean(wt.Filesystem.Root()), nil
}

// Restage adds the current contents of paths, relative to root, back to the
// index so reformatted lines are part of the pending commit.
func Restage(ctx context.Context, root string, paths []string) error {
	if len(paths) == 0 {
		return nil
	}

	repo, err := gogit.PlainOpen(root)
	if err != nil {
		return fmt.Errorf("%w: %v", ErrNoGit, err)
	}

	wt, err := repo.Worktree()
	if err != nil {
		return fmt.Errorf("getting worktree: %w", err)
	}

	for _, path := range paths {
		select {
		case <-ctx.Done():
			return fmt.Errorf("restage: %w", ctx.Err())
		default:
		}

		if _, err := wt.Add(filepath.ToSlash(path)); err != nil {
			return fmt.Errorf("stage %s: %w", path, err)
		}
	}

	return nil
}
