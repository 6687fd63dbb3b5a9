// Package provenance records where the documented source came from.
package provenance

import (
	"github.com/go-git/go-git/v5"
)

// SourceCommit returns the abbreviated HEAD commit of the repository
// containing path, or "" when path is not inside a git repository. Builds
// from exported tarballs are normal, so absence is never an error.
func SourceCommit(path string) string {
	repo, err := git.PlainOpenWithOptions(path, &git.PlainOpenOptions{DetectDotGit: true})
	if err != nil {
		return ""
	}
	head, err := repo.Head()
	if err != nil {
		return ""
	}
	return head.Hash().String()[:12]
}
