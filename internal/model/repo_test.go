package model_test

import (
	"testing"
	"time"

	"github.com/google/go-github/v53/github"
	"github.com/m-mizutani/gt"

	"repodeck/internal/model"
)

func TestFromGitHub(t *testing.T) {
	created := time.Date(2023, 5, 1, 12, 0, 0, 0, time.UTC)

	src := &github.Repository{
		Name:            github.String("pipeline"),
		FullName:        github.String("octocat/pipeline"),
		Description:     github.String("ETL toolkit"),
		Language:        github.String("Go"),
		Private:         github.Bool(true),
		Fork:            github.Bool(false),
		StargazersCount: github.Int(42),
		ForksCount:      github.Int(7),
		OpenIssuesCount: github.Int(3),
		Size:            github.Int(1024),
		DefaultBranch:   github.String("main"),
		Homepage:        github.String("https://example.com"),
		Topics:          []string{"etl", "go"},
		License:         &github.License{Name: github.String("MIT License")},
		CreatedAt:       &github.Timestamp{Time: created},
		HTMLURL:         github.String("https://github.com/octocat/pipeline"),
		CloneURL:        github.String("https://github.com/octocat/pipeline.git"),
		SSHURL:          github.String("git@github.com:octocat/pipeline.git"),
		Owner: &github.User{
			Login:     github.String("octocat"),
			AvatarURL: github.String("https://avatars.example.com/octocat"),
			HTMLURL:   github.String("https://github.com/octocat"),
		},
	}

	repo := model.FromGitHub(src)
	gt.V(t, repo.Name).Equal("pipeline")
	gt.V(t, repo.FullName).Equal("octocat/pipeline")
	gt.V(t, repo.Description).Equal("ETL toolkit")
	gt.V(t, repo.Language).Equal("Go")
	gt.True(t, repo.Private)
	gt.False(t, repo.Fork)
	gt.V(t, repo.Stars).Equal(42)
	gt.V(t, repo.Forks).Equal(7)
	gt.V(t, repo.OpenIssues).Equal(3)
	gt.V(t, repo.DefaultBranch).Equal("main")
	gt.V(t, repo.License).Equal("MIT License")
	gt.Equal(t, repo.Topics, []string{"etl", "go"})
	gt.V(t, repo.CreatedAt).Equal(created)
	gt.V(t, repo.Owner.Login).Equal("octocat")
	gt.False(t, repo.Starred)
}

func TestFromGitHubSparse(t *testing.T) {
	// repositories from list endpoints can be missing most fields
	repo := model.FromGitHub(&github.Repository{
		Name:     github.String("bare"),
		FullName: github.String("octocat/bare"),
	})

	gt.V(t, repo.FullName).Equal("octocat/bare")
	gt.V(t, repo.Description).Equal("")
	gt.V(t, repo.License).Equal("")
	gt.True(t, repo.CreatedAt.IsZero())
	gt.V(t, repo.Owner.Login).Equal("")
}

func TestCategoryCycleAndLabels(t *testing.T) {
	seen := map[model.Category]bool{}
	c := model.CategoryAll
	for range [5]struct{}{} {
		gt.False(t, seen[c])
		seen[c] = true
		gt.True(t, c.Label() != "")
		c = c.Next()
	}
	// a full cycle returns to the start
	gt.V(t, c).Equal(model.CategoryAll)
}

func TestCategoryMatch(t *testing.T) {
	starred := model.Repo{Starred: true}
	forked := model.Repo{Fork: true}
	withIssues := model.Repo{OpenIssues: 2}

	gt.True(t, model.CategoryAll.Match(forked))
	gt.True(t, model.CategoryStarred.Match(starred))
	gt.False(t, model.CategoryStarred.Match(forked))
	gt.True(t, model.CategoryForked.Match(forked))
	gt.False(t, model.CategoryForked.Match(starred))
	gt.True(t, model.CategoryOwned.Match(starred))
	gt.False(t, model.CategoryOwned.Match(forked))
	gt.True(t, model.CategoryHasIssues.Match(withIssues))
	gt.False(t, model.CategoryHasIssues.Match(starred))
}
