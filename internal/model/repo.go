package model

import (
	"time"

	"github.com/google/go-github/v53/github"
)

// Owner is a minimal reference to the account owning a repository.
// Kept as a plain value: it never points back at the repository.
type Owner struct {
	Login     string `json:"login"`
	AvatarURL string `json:"avatar_url"`
	HTMLURL   string `json:"html_url"`
}

// Repo represents one remote repository as known to the browser.
//
// Starred is not part of the API payload. The loader fills it in by
// cross-referencing the account's starred list, and the star action
// keeps it current afterwards.
type Repo struct {
	Name          string    `json:"name"`
	FullName      string    `json:"full_name"` // "owner/name", stable identity
	Description   string    `json:"description,omitempty"`
	Language      string    `json:"language,omitempty"`
	Private       bool      `json:"private"`
	Fork          bool      `json:"fork"`
	Stars         int       `json:"stargazers_count"`
	Forks         int       `json:"forks_count"`
	OpenIssues    int       `json:"open_issues_count"`
	Size          int       `json:"size"`
	DefaultBranch string    `json:"default_branch"`
	Homepage      string    `json:"homepage,omitempty"`
	License       string    `json:"license,omitempty"`
	Topics        []string  `json:"topics,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
	PushedAt      time.Time `json:"pushed_at"`
	HTMLURL       string    `json:"html_url"`
	CloneURL      string    `json:"clone_url"`
	SSHURL        string    `json:"ssh_url"`
	Owner         Owner     `json:"owner"`
	Starred       bool      `json:"starred"`
}

// FromGitHub converts a go-github repository into the browser's model.
func FromGitHub(r *github.Repository) Repo {
	repo := Repo{
		Name:          r.GetName(),
		FullName:      r.GetFullName(),
		Description:   r.GetDescription(),
		Language:      r.GetLanguage(),
		Private:       r.GetPrivate(),
		Fork:          r.GetFork(),
		Stars:         r.GetStargazersCount(),
		Forks:         r.GetForksCount(),
		OpenIssues:    r.GetOpenIssuesCount(),
		Size:          r.GetSize(),
		DefaultBranch: r.GetDefaultBranch(),
		Homepage:      r.GetHomepage(),
		License:       r.GetLicense().GetName(),
		Topics:        r.Topics,
		CreatedAt:     r.GetCreatedAt().Time,
		UpdatedAt:     r.GetUpdatedAt().Time,
		PushedAt:      r.GetPushedAt().Time,
		HTMLURL:       r.GetHTMLURL(),
		CloneURL:      r.GetCloneURL(),
		SSHURL:        r.GetSSHURL(),
	}
	if owner := r.GetOwner(); owner != nil {
		repo.Owner = Owner{
			Login:     owner.GetLogin(),
			AvatarURL: owner.GetAvatarURL(),
			HTMLURL:   owner.GetHTMLURL(),
		}
	}
	return repo
}

// FromGitHubList converts a page-merged go-github repository list.
func FromGitHubList(rs []*github.Repository) []Repo {
	repos := make([]Repo, 0, len(rs))
	for _, r := range rs {
		repos = append(repos, FromGitHub(r))
	}
	return repos
}
