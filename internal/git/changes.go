package git

import (
	"fmt"
	"sort"

	git "github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing"
	"github.com/go-git/go-git/v5/plumbing/object"
	"github.com/go-git/go-git/v5/utils/merkletrie"
)

// ChangedFiles returns the paths (relative to the repository root) of files
// added or modified between baseHash and headHash, sorted. Deleted paths are
// omitted since there is nothing left to scan.
func ChangedFiles(repoPath, baseHash, headHash string) ([]string, error) {
	if baseHash == "" {
		return nil, fmt.Errorf("base hash is required to compute diff")
	}
	if headHash == "" {
		return nil, fmt.Errorf("head hash is required to compute diff")
	}

	repo, err := git.PlainOpen(repoPath)
	if err != nil {
		return nil, fmt.Errorf("failed to open repository %q: %w", repoPath, err)
	}

	baseTree, err := commitTree(repo, baseHash)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve base commit %q: %w", baseHash, err)
	}
	headTree, err := commitTree(repo, headHash)
	if err != nil {
		return nil, fmt.Errorf("failed to resolve head commit %q: %w", headHash, err)
	}

	changes, err := object.DiffTree(baseTree, headTree)
	if err != nil {
		return nil, fmt.Errorf("failed to diff trees: %w", err)
	}

	seen := make(map[string]struct{})
	for _, change := range changes {
		action, err := change.Action()
		if err != nil {
			return nil, fmt.Errorf("failed to determine change action: %w", err)
		}
		if action == merkletrie.Delete {
			continue
		}
		seen[change.To.Name] = struct{}{}
	}

	paths := make([]string, 0, len(seen))
	for path := range seen {
		paths = append(paths, path)
	}
	sort.Strings(paths)
	return paths, nil
}

func commitTree(repo *git.Repository, hash string) (*object.Tree, error) {
	commit, err := repo.CommitObject(plumbing.NewHash(hash))
	if err != nil {
		return nil, err
	}
	return commit.Tree()
}
