package browser

import (
	"context"
	"sync"
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/m-mizutani/goerr/v2"
	"github.com/m-mizutani/gt"

	"repodeck/internal/model"
)

// fakeClient implements Client for tests. Safe for the loader's
// concurrent fetches.
type fakeClient struct {
	mu sync.Mutex

	login   string
	repos   []model.Repo
	starred []model.Repo

	listErr    error
	starredErr error
	starErr    error
	forkResult model.Repo
	forkErr    error

	starCalls   []string
	unstarCalls []string
	forkCalls   []string
	closed      bool
}

func (f *fakeClient) ResolveLogin(ctx context.Context) (string, error) {
	return f.login, nil
}

func (f *fakeClient) ListRepositories(ctx context.Context, account string) ([]model.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.listErr != nil {
		return nil, f.listErr
	}
	return append([]model.Repo(nil), f.repos...), nil
}

func (f *fakeClient) ListStarred(ctx context.Context, account string) ([]model.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.starredErr != nil {
		return nil, f.starredErr
	}
	return append([]model.Repo(nil), f.starred...), nil
}

func (f *fakeClient) Star(ctx context.Context, owner, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	if f.starErr != nil {
		return f.starErr
	}
	f.starCalls = append(f.starCalls, owner+"/"+name)
	return nil
}

func (f *fakeClient) Unstar(ctx context.Context, owner, name string) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.unstarCalls = append(f.unstarCalls, owner+"/"+name)
	return nil
}

func (f *fakeClient) Fork(ctx context.Context, owner, name string) (model.Repo, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.forkCalls = append(f.forkCalls, owner+"/"+name)
	if f.forkErr != nil {
		return model.Repo{}, f.forkErr
	}
	return f.forkResult, nil
}

func (f *fakeClient) Close() error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.closed = true
	return nil
}

func apply(t *testing.T, m Model, msg tea.Msg) (Model, tea.Cmd) {
	t.Helper()
	next, cmd := m.Update(msg)
	return next.(Model), cmd
}

func keyRunes(s string) tea.KeyMsg {
	return tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune(s)}
}

// readyModel builds a session that has completed its first load.
func readyModel(t *testing.T, client *fakeClient, repos []model.Repo) Model {
	t.Helper()
	m := New(client, "octocat", false)
	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})
	m, _ = apply(t, m, reposLoadedMsg{gen: 1, repos: repos})
	gt.V(t, m.state).Equal(stateReady)
	return m
}

func TestLoadSupersession(t *testing.T) {
	client := &fakeClient{}
	oldRepos := []model.Repo{{Name: "old", FullName: "octocat/old"}}
	newRepos := []model.Repo{{Name: "new", FullName: "octocat/new"}}

	m := readyModel(t, client, oldRepos)

	// refresh supersedes the first load
	m, _ = apply(t, m, keyRunes("r"))
	gt.V(t, m.gen).Equal(2)
	gt.V(t, m.state).Equal(stateLoading)

	// the superseded load resolves late; its result must be discarded
	m, _ = apply(t, m, reposLoadedMsg{gen: 1, repos: newRepos})
	gt.V(t, m.state).Equal(stateLoading)
	gt.Equal(t, fullNames(m.repos), []string{"octocat/old"})

	// the current generation applies
	m, _ = apply(t, m, reposLoadedMsg{gen: 2, repos: newRepos})
	gt.V(t, m.state).Equal(stateReady)
	gt.Equal(t, fullNames(m.repos), []string{"octocat/new"})
}

func TestLoadSupersessionOutOfOrderCommands(t *testing.T) {
	client := &fakeClient{}
	m := New(client, "octocat", false)
	m, _ = apply(t, m, tea.WindowSizeMsg{Width: 140, Height: 40})

	// first load in flight
	client.repos = []model.Repo{{Name: "first", FullName: "octocat/first"}}
	first := loadCmd(client, "octocat", false, m.gen)

	// refresh before the first resolves
	m, _ = apply(t, m, keyRunes("r"))
	client.mu.Lock()
	client.repos = []model.Repo{{Name: "second", FullName: "octocat/second"}}
	client.mu.Unlock()
	second := loadCmd(client, "octocat", false, m.gen)

	// the second resolves first, then the stale one arrives
	m, _ = apply(t, m, second())
	m, _ = apply(t, m, first())

	gt.Equal(t, fullNames(m.repos), []string{"octocat/second"})
}

func TestLoadReposAnnotation(t *testing.T) {
	ctx := context.Background()

	t.Run("cross-references starred set", func(t *testing.T) {
		client := &fakeClient{
			login: "octocat",
			repos: []model.Repo{
				{Name: "a", FullName: "octocat/a"},
				{Name: "b", FullName: "octocat/b"},
			},
			starred: []model.Repo{
				{Name: "a", FullName: "octocat/a"},
				{Name: "other", FullName: "someone/other"},
			},
		}

		repos, err := loadRepos(ctx, client, "", false)
		gt.NoError(t, err)
		gt.V(t, len(repos)).Equal(2)
		gt.True(t, repos[0].Starred)
		gt.False(t, repos[1].Starred)
	})

	t.Run("starred-only marks everything starred", func(t *testing.T) {
		client := &fakeClient{
			login:   "octocat",
			starred: []model.Repo{{Name: "x", FullName: "someone/x"}},
		}

		repos, err := loadRepos(ctx, client, "", true)
		gt.NoError(t, err)
		gt.V(t, len(repos)).Equal(1)
		gt.True(t, repos[0].Starred)
	})

	t.Run("either list failing fails the load", func(t *testing.T) {
		client := &fakeClient{
			login:      "octocat",
			repos:      []model.Repo{{Name: "a", FullName: "octocat/a"}},
			starredErr: goerr.New("boom"),
		}

		_, err := loadRepos(ctx, client, "", false)
		gt.Error(t, err)
	})
}

func TestLoadFailureKeepsCollection(t *testing.T) {
	client := &fakeClient{}
	m := readyModel(t, client, []model.Repo{{Name: "keep", FullName: "octocat/keep"}})

	m, _ = apply(t, m, keyRunes("r"))
	m, _ = apply(t, m, reposLoadedMsg{gen: 2, err: goerr.New("rate limited")})

	gt.V(t, m.state).Equal(stateReady)
	gt.Equal(t, fullNames(m.repos), []string{"octocat/keep"})
	gt.True(t, m.statusIsErr)
	gt.S(t, m.status).Contains("rate limited")
}

func TestSelectionClampAfterSync(t *testing.T) {
	client := &fakeClient{}
	repos := []model.Repo{
		{Name: "alpha", FullName: "octocat/alpha", Language: "Go"},
		{Name: "beta", FullName: "octocat/beta", Language: "Go"},
		{Name: "gamma", FullName: "octocat/gamma", Language: "Rust"},
	}
	m := readyModel(t, client, repos)

	m.table.SetCursor(2)
	gt.V(t, m.selectedRepo().FullName).Equal("octocat/gamma")

	t.Run("surviving selection is kept", func(t *testing.T) {
		m.search.SetValue("gamma")
		m.refilter()
		gt.V(t, len(m.filtered)).Equal(1)
		gt.V(t, m.selectedRepo().FullName).Equal("octocat/gamma")
	})

	t.Run("vanished selection clamps into range", func(t *testing.T) {
		m.search.SetValue("alpha")
		m.refilter()
		gt.V(t, len(m.filtered)).Equal(1)
		gt.True(t, m.table.Cursor() >= 0)
		gt.True(t, m.table.Cursor() < len(m.filtered))
		gt.V(t, m.selectedRepo().FullName).Equal("octocat/alpha")
	})

	t.Run("empty result selects nothing", func(t *testing.T) {
		m.search.SetValue("no-such-repo")
		m.refilter()
		gt.V(t, len(m.filtered)).Equal(0)
		gt.True(t, m.selectedRepo() == nil)
	})
}

func TestStarToggle(t *testing.T) {
	client := &fakeClient{}
	repos := []model.Repo{{
		Name:     "alpha",
		FullName: "octocat/alpha",
		Owner:    model.Owner{Login: "octocat"},
	}}
	m := readyModel(t, client, repos)

	dispatch := func() {
		_, cmd := apply(t, m, keyRunes("s"))
		m, _ = apply(t, m, cmd())
	}

	t.Run("one dispatch flips once", func(t *testing.T) {
		dispatch()
		gt.True(t, m.repos[0].Starred)
		gt.Equal(t, client.starCalls, []string{"octocat/alpha"})
		gt.V(t, len(client.unstarCalls)).Equal(0)
	})

	t.Run("second dispatch flips back", func(t *testing.T) {
		dispatch()
		gt.False(t, m.repos[0].Starred)
		gt.Equal(t, client.unstarCalls, []string{"octocat/alpha"})
	})

	t.Run("failed call leaves the record untouched", func(t *testing.T) {
		client.starErr = goerr.New("forbidden")
		dispatch()
		gt.False(t, m.repos[0].Starred)
		gt.True(t, m.statusIsErr)
	})
}

func TestStarDoubleDispatchConverges(t *testing.T) {
	client := &fakeClient{}
	repos := []model.Repo{{
		Name:     "alpha",
		FullName: "octocat/alpha",
		Owner:    model.Owner{Login: "octocat"},
	}}
	m := readyModel(t, client, repos)

	// both dispatches fire before either completes; both captured
	// starred=false, so both star and the record converges on true
	_, cmd1 := apply(t, m, keyRunes("s"))
	_, cmd2 := apply(t, m, keyRunes("s"))
	m, _ = apply(t, m, cmd1())
	m, _ = apply(t, m, cmd2())

	gt.True(t, m.repos[0].Starred)
}

func TestForkDispatch(t *testing.T) {
	client := &fakeClient{
		forkResult: model.Repo{Name: "r", FullName: "me/r"},
	}
	repos := []model.Repo{{
		Name:     "r",
		FullName: "a/r",
		Owner:    model.Owner{Login: "a"},
		Stars:    7,
	}}
	m := readyModel(t, client, repos)

	_, cmd := apply(t, m, keyRunes("F"))
	m, _ = apply(t, m, cmd())

	gt.Equal(t, client.forkCalls, []string{"a/r"})
	gt.S(t, m.status).Contains("me/r")
	gt.False(t, m.statusIsErr)

	// the source record is unchanged
	gt.V(t, m.repos[0].FullName).Equal("a/r")
	gt.V(t, m.repos[0].Stars).Equal(7)
}

func TestPlaceholderActionsAcknowledge(t *testing.T) {
	client := &fakeClient{}
	repos := []model.Repo{{Name: "alpha", FullName: "octocat/alpha"}}

	for _, key := range []string{"i", "p", "w"} {
		m := readyModel(t, client, repos)
		_, cmd := apply(t, m, keyRunes(key))
		m, _ = apply(t, m, cmd())
		gt.S(t, m.status).Contains("not implemented yet")
		gt.False(t, m.statusIsErr)
	}
}

func TestCloneNeverFails(t *testing.T) {
	client := &fakeClient{}
	repos := []model.Repo{{
		Name:     "alpha",
		FullName: "octocat/alpha",
		CloneURL: "https://example.com/octocat/alpha.git",
	}}
	m := readyModel(t, client, repos)

	_, cmd := apply(t, m, keyRunes("c"))
	msg := cmd().(actionDoneMsg)

	// with or without a clipboard the URL reaches the user
	gt.NoError(t, msg.err)
	gt.S(t, msg.note).Contains("https://example.com/octocat/alpha.git")
}

func TestCategoryCycle(t *testing.T) {
	client := &fakeClient{}
	repos := []model.Repo{
		{Name: "mine", FullName: "octocat/mine"},
		{Name: "theirs", FullName: "octocat/theirs", Fork: true, Starred: true},
	}
	m := readyModel(t, client, repos)
	gt.V(t, len(m.filtered)).Equal(2)

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	gt.V(t, m.category).Equal(model.CategoryStarred)
	gt.Equal(t, fullNames(m.filtered), []string{"octocat/theirs"})

	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyTab})
	gt.V(t, m.category).Equal(model.CategoryOwned)
	gt.Equal(t, fullNames(m.filtered), []string{"octocat/mine"})
}

func TestSearchInput(t *testing.T) {
	client := &fakeClient{}
	repos := []model.Repo{
		{Name: "alpha", FullName: "octocat/alpha"},
		{Name: "beta", FullName: "octocat/beta"},
	}
	m := readyModel(t, client, repos)

	m, _ = apply(t, m, keyRunes("/"))
	gt.True(t, m.search.Focused())

	m, _ = apply(t, m, keyRunes("b"))
	gt.Equal(t, fullNames(m.filtered), []string{"octocat/beta"})

	// esc clears the query and restores the full view
	m, _ = apply(t, m, tea.KeyMsg{Type: tea.KeyEsc})
	gt.False(t, m.search.Focused())
	gt.V(t, len(m.filtered)).Equal(2)
}

func TestQuitClosesClient(t *testing.T) {
	client := &fakeClient{}
	m := readyModel(t, client, nil)

	m, cmd := apply(t, m, keyRunes("q"))
	gt.V(t, m.state).Equal(stateTerminated)
	gt.True(t, client.closed)

	_, isQuit := cmd().(tea.QuitMsg)
	gt.True(t, isQuit)

	// completions landing after quit are dropped
	m, _ = apply(t, m, reposLoadedMsg{gen: 1, repos: []model.Repo{{FullName: "octocat/late"}}})
	gt.V(t, len(m.repos)).Equal(0)
}
