package workspace

import (
	"errors"

	"github.com/go-git/go-git/v5"
)

// RepositoryRootLocator finds the work tree root enclosing a directory.
type RepositoryRootLocator interface {
	LocateRoot(startDirectory string) (string, error)
}

// ErrNotInRepository indicates that no Git work tree encloses the start directory.
var ErrNotInRepository = errors.New("no git repository encloses the directory")

// GitRepositoryRootLocator walks up from the start directory looking for a .git entry.
type GitRepositoryRootLocator struct{}

// LocateRoot returns the work tree root, or ErrNotInRepository.
func (GitRepositoryRootLocator) LocateRoot(startDirectory string) (string, error) {
	repository, openError := git.PlainOpenWithOptions(startDirectory, &git.PlainOpenOptions{
		DetectDotGit:          true,
		EnableDotGitCommonDir: true,
	})
	if openError != nil {
		if errors.Is(openError, git.ErrRepositoryNotExists) {
			return "", ErrNotInRepository
		}
		return "", openError
	}

	worktree, worktreeError := repository.Worktree()
	if worktreeError != nil {
		if errors.Is(worktreeError, git.ErrIsBareRepository) {
			return "", ErrNotInRepository
		}
		return "", worktreeError
	}

	return worktree.Filesystem.Root(), nil
}
