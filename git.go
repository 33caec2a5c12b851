package main

import (
	"fmt"
	"os"
	"strings"

	"github.com/go-git/go-git/v5"
	"github.com/go-git/go-git/v5/plumbing/transport/http"
	log "github.com/rs/zerolog/log"
)

// isGitURL reports whether input is a remote repository rather than a local
// path. HTTPS GitHub/GitLab URLs, .git suffixes, and SSH-style addresses all
// count.
func isGitURL(input string) bool {
	return strings.HasSuffix(input, ".git") ||
		strings.HasPrefix(input, "git@") ||
		strings.HasPrefix(input, "https://github.com/") ||
		strings.HasPrefix(input, "https://gitlab.com/")
}

// cloneGitRepo shallow-clones url into a temp directory and returns its path.
// The caller owns cleanup. GH_TOKEN is picked up for private repositories.
func cloneGitRepo(url string) (string, error) {
	tempDir, err := os.MkdirTemp("", "lumen-clone-")
	if err != nil {
		return "", fmt.Errorf("failed to create temporary directory: %w", err)
	}

	opts := &git.CloneOptions{
		URL:          url,
		Depth:        1,
		SingleBranch: true,
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		log.Debug().Msg("using GH_TOKEN for authentication")
		opts.Auth = &http.BasicAuth{
			Username: "git", // anything non-empty works
			Password: token,
		}
	}

	log.Info().Str("url", url).Str("dir", tempDir).Msg("cloning repository")
	if _, err := git.PlainClone(tempDir, false, opts); err != nil {
		_ = os.RemoveAll(tempDir)
		return "", fmt.Errorf("failed to clone repository %s: %w", url, err)
	}
	return tempDir, nil
}
