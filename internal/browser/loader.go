package browser

import (
	"context"
	"sync"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"repodeck/internal/model"
)

const loadTimeout = 60 * time.Second

// loadCmd fetches the collection for one generation. The session tags
// every load with a monotonically increasing generation and ignores
// completions whose tag no longer matches, so a refresh always
// supersedes an in-flight load.
func loadCmd(client Client, account string, starredOnly bool, gen int) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), loadTimeout)
		defer cancel()

		repos, err := loadRepos(ctx, client, account, starredOnly)
		return reposLoadedMsg{gen: gen, repos: repos, err: err}
	}
}

// loadRepos resolves the target account, fetches its repository and
// starred lists, and annotates each repository's Starred flag by
// cross-referencing full names.
func loadRepos(ctx context.Context, client Client, account string, starredOnly bool) ([]model.Repo, error) {
	if account == "" {
		login, err := client.ResolveLogin(ctx)
		if err != nil {
			return nil, err
		}
		account = login
	}

	if starredOnly {
		repos, err := client.ListStarred(ctx, account)
		if err != nil {
			return nil, err
		}
		for i := range repos {
			repos[i].Starred = true
		}
		return repos, nil
	}

	// The two lists are independent; fetch them concurrently. The
	// annotation below must not start before both are in.
	var (
		wg      sync.WaitGroup
		repos   []model.Repo
		starred []model.Repo
		repoErr error
		starErr error
	)
	wg.Add(2)
	go func() {
		defer wg.Done()
		repos, repoErr = client.ListRepositories(ctx, account)
	}()
	go func() {
		defer wg.Done()
		starred, starErr = client.ListStarred(ctx, account)
	}()
	wg.Wait()

	if repoErr != nil {
		return nil, repoErr
	}
	if starErr != nil {
		return nil, starErr
	}

	starredSet := make(map[string]struct{}, len(starred))
	for _, r := range starred {
		starredSet[r.FullName] = struct{}{}
	}
	for i := range repos {
		_, ok := starredSet[repos[i].FullName]
		repos[i].Starred = ok
	}

	return repos, nil
}
