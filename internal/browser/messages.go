package browser

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"repodeck/internal/model"
)

// actionKind tags one side-effecting operation on one repository.
type actionKind string

const (
	actionStar    actionKind = "star"
	actionFork    actionKind = "fork"
	actionClone   actionKind = "clone"
	actionBrowser actionKind = "browser"
	actionIssues  actionKind = "issues"
	actionPRs     actionKind = "prs"
	actionWatch   actionKind = "watch"
)

// reposLoadedMsg delivers one load's result. gen identifies the load;
// results from a superseded generation are discarded.
type reposLoadedMsg struct {
	gen   int
	repos []model.Repo
	err   error
}

// actionDoneMsg delivers one dispatched action's result. The target is
// identified by full name; the session applies any state change itself,
// and only when err is nil.
type actionDoneMsg struct {
	kind     actionKind
	fullName string
	starred  bool // desired Starred value after a successful star action
	note     string
	err      error
}

// statusClearMsg expires a notification. seq guards against clearing a
// newer message than the one that scheduled it.
type statusClearMsg struct {
	seq int
}

const statusLifetime = 5 * time.Second

func statusExpireCmd(seq int) tea.Cmd {
	return tea.Tick(statusLifetime, func(time.Time) tea.Msg {
		return statusClearMsg{seq: seq}
	})
}
