package github

import (
	"context"
	"net/http"
	"net/url"
	"os"
	"os/exec"
	"strings"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/goerr/v2"
	"golang.org/x/oauth2"

	"repodeck/internal/model"
)

// Error taxonomy. Callers distinguish these with errors.Is.
var (
	ErrAuthentication = goerr.New("github authentication failed")
	ErrRateLimited    = goerr.New("github rate limit exceeded")
	ErrAPI            = goerr.New("github api request failed")
)

const perPage = 100

// Client wraps the GitHub REST API behind the small surface the
// browser needs. All methods classify failures into the sentinel
// errors above.
type Client struct {
	gh   *github.Client
	http *http.Client
}

// Option customises a Client at construction time.
type Option func(*Client) error

// WithBaseURL points the client at a non-default API endpoint
// (GitHub Enterprise, or a test server).
func WithBaseURL(raw string) Option {
	return func(c *Client) error {
		if !strings.HasSuffix(raw, "/") {
			raw += "/"
		}
		u, err := url.Parse(raw)
		if err != nil {
			return goerr.Wrap(err, "invalid base URL", goerr.V("url", raw))
		}
		c.gh.BaseURL = u
		return nil
	}
}

// New builds an authenticated client. An empty token triggers the
// resolution chain in ResolveToken.
func New(ctx context.Context, token string, opts ...Option) (*Client, error) {
	if token == "" {
		resolved, err := ResolveToken()
		if err != nil {
			return nil, err
		}
		token = resolved
	}

	httpClient := oauth2.NewClient(ctx, oauth2.StaticTokenSource(
		&oauth2.Token{AccessToken: token},
	))

	client := &Client{
		gh:   github.NewClient(httpClient),
		http: httpClient,
	}
	for _, opt := range opts {
		if err := opt(client); err != nil {
			return nil, err
		}
	}
	return client, nil
}

// ResolveToken finds a GitHub token: GITHUB_TOKEN, then GH_TOKEN,
// then the gh CLI's stored credential.
func ResolveToken() (string, error) {
	if token := os.Getenv("GITHUB_TOKEN"); token != "" {
		return token, nil
	}
	if token := os.Getenv("GH_TOKEN"); token != "" {
		return token, nil
	}

	out, err := exec.Command("gh", "auth", "token").Output()
	if err == nil {
		if token := strings.TrimSpace(string(out)); token != "" {
			return token, nil
		}
	}

	return "", goerr.Wrap(ErrAuthentication,
		"no token found: set GITHUB_TOKEN or run `gh auth login`")
}

// ResolveLogin returns the authenticated user's login.
func (c *Client) ResolveLogin(ctx context.Context) (string, error) {
	user, _, err := c.gh.Users.Get(ctx, "")
	if err != nil {
		return "", classify(err, "failed to resolve authenticated user")
	}
	return user.GetLogin(), nil
}

// ListRepositories returns every repository of the account, most
// recently updated first, following pagination to the end.
func (c *Client) ListRepositories(ctx context.Context, account string) ([]model.Repo, error) {
	opts := &github.RepositoryListOptions{
		Sort:        "updated",
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []*github.Repository
	for {
		page, resp, err := c.gh.Repositories.List(ctx, account, opts)
		if err != nil {
			return nil, classify(err, "failed to list repositories", goerr.V("account", account))
		}
		all = append(all, page...)
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return model.FromGitHubList(all), nil
}

// ListStarred returns every repository starred by the account.
func (c *Client) ListStarred(ctx context.Context, account string) ([]model.Repo, error) {
	opts := &github.ActivityListStarredOptions{
		ListOptions: github.ListOptions{PerPage: perPage},
	}

	var all []*github.Repository
	for {
		page, resp, err := c.gh.Activity.ListStarred(ctx, account, opts)
		if err != nil {
			return nil, classify(err, "failed to list starred repositories", goerr.V("account", account))
		}
		for _, starred := range page {
			all = append(all, starred.GetRepository())
		}
		if resp.NextPage == 0 {
			break
		}
		opts.Page = resp.NextPage
	}

	return model.FromGitHubList(all), nil
}

// Star stars the repository for the authenticated user.
func (c *Client) Star(ctx context.Context, owner, name string) error {
	if _, err := c.gh.Activity.Star(ctx, owner, name); err != nil {
		return classify(err, "failed to star repository", goerr.V("repo", owner+"/"+name))
	}
	return nil
}

// Unstar removes the authenticated user's star.
func (c *Client) Unstar(ctx context.Context, owner, name string) error {
	if _, err := c.gh.Activity.Unstar(ctx, owner, name); err != nil {
		return classify(err, "failed to unstar repository", goerr.V("repo", owner+"/"+name))
	}
	return nil
}

// Fork forks the repository into the authenticated user's account and
// returns the fork. GitHub forks asynchronously; the 202 response still
// carries the fork payload, so AcceptedError is not a failure here.
func (c *Client) Fork(ctx context.Context, owner, name string) (model.Repo, error) {
	fork, _, err := c.gh.Repositories.CreateFork(ctx, owner, name, nil)
	if err != nil {
		if _, accepted := err.(*github.AcceptedError); !accepted {
			return model.Repo{}, classify(err, "failed to fork repository", goerr.V("repo", owner+"/"+name))
		}
	}
	if fork == nil {
		return model.Repo{}, goerr.Wrap(ErrAPI, "fork response had no repository", goerr.V("repo", owner+"/"+name))
	}
	return model.FromGitHub(fork), nil
}

// Close releases the underlying transport. Safe to call once at
// session teardown.
func (c *Client) Close() error {
	c.http.CloseIdleConnections()
	return nil
}

// classify maps go-github errors onto the package's error taxonomy.
func classify(err error, msg string, vals ...goerr.Option) error {
	switch e := err.(type) {
	case *github.RateLimitError, *github.AbuseRateLimitError:
		return goerr.Wrap(ErrRateLimited, msg, vals...)
	case *github.ErrorResponse:
		if e.Response != nil && e.Response.StatusCode == http.StatusUnauthorized {
			return goerr.Wrap(ErrAuthentication, msg, vals...)
		}
	}
	vals = append(vals, goerr.V("cause", err.Error()))
	return goerr.Wrap(ErrAPI, msg, vals...)
}
