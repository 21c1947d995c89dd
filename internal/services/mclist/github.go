// -----------------------------------------------------------------------
// MC List Providers - sources of raw MC number lists. The GitHub provider
// pulls a list file from a repository so dispatch teams can maintain their
// carrier lists in version control.
// -----------------------------------------------------------------------

package mclist

import (
	"context"
	"fmt"

	"github.com/google/go-github/v57/github"
	"github.com/ternarybob/arbor"
	"golang.org/x/oauth2"
)

// GitHubProvider fetches MC number list files from GitHub repositories.
// Without a token it works against public repos at anonymous rate limits.
type GitHubProvider struct {
	client *github.Client
	logger arbor.ILogger
}

// NewGitHubProvider creates a provider. token may be empty for public repos.
func NewGitHubProvider(token string, logger arbor.ILogger) *GitHubProvider {
	var client *github.Client
	if token != "" {
		ts := oauth2.StaticTokenSource(&oauth2.Token{AccessToken: token})
		tc := oauth2.NewClient(context.Background(), ts)
		client = github.NewClient(tc)
	} else {
		client = github.NewClient(nil)
	}

	return &GitHubProvider{client: client, logger: logger}
}

// TestConnection verifies the repository is reachable with the configured
// credentials.
func (p *GitHubProvider) TestConnection(ctx context.Context, owner, repo string) error {
	_, _, err := p.client.Repositories.Get(ctx, owner, repo)
	if err != nil {
		return fmt.Errorf("github repository check failed: %w", err)
	}
	return nil
}

// FetchFile returns the decoded text content of a file in the repository.
// branch may be empty to use the repository default.
func (p *GitHubProvider) FetchFile(ctx context.Context, owner, repo, branch, path string) (string, error) {
	content, _, _, err := p.client.Repositories.GetContents(ctx, owner, repo, path, &github.RepositoryContentGetOptions{
		Ref: branch,
	})
	if err != nil {
		return "", fmt.Errorf("failed to fetch list file: %w", err)
	}
	if content == nil {
		return "", fmt.Errorf("list file not found: %s", path)
	}

	// GetContent handles the response encoding field: base64 for regular
	// files, plain content for small responses, and a useful error for
	// files above the API's 1 MB content limit.
	decoded, err := content.GetContent()
	if err != nil {
		return "", fmt.Errorf("failed to decode list file: %w", err)
	}

	p.logger.Info().
		Str("repo", owner+"/"+repo).
		Str("path", path).
		Int("bytes", len(decoded)).
		Msg("Fetched MC list file from GitHub")
	return decoded, nil
}
