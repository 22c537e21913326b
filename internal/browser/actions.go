package browser

import (
	"context"
	"fmt"
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"repodeck/internal/model"
	"repodeck/internal/sysopen"
)

const actionTimeout = 30 * time.Second

// starCmd stars or unstars the target, depending on its Starred value
// at dispatch time. Exactly one API call per dispatch; the session
// mutates the record only after the call succeeds.
func starCmd(client Client, repo model.Repo) tea.Cmd {
	star := !repo.Starred
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		var err error
		if star {
			err = client.Star(ctx, repo.Owner.Login, repo.Name)
		} else {
			err = client.Unstar(ctx, repo.Owner.Login, repo.Name)
		}
		if err != nil {
			return actionDoneMsg{kind: actionStar, fullName: repo.FullName, err: err}
		}

		note := "Starred " + repo.FullName
		if !star {
			note = "Unstarred " + repo.FullName
		}
		return actionDoneMsg{kind: actionStar, fullName: repo.FullName, starred: star, note: note}
	}
}

// forkCmd forks the target into the authenticated account. The source
// record is not modified; the notification names the new fork.
func forkCmd(client Client, repo model.Repo) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), actionTimeout)
		defer cancel()

		fork, err := client.Fork(ctx, repo.Owner.Login, repo.Name)
		if err != nil {
			return actionDoneMsg{kind: actionFork, fullName: repo.FullName, err: err}
		}
		return actionDoneMsg{
			kind:     actionFork,
			fullName: repo.FullName,
			note:     fmt.Sprintf("Forked %s to %s", repo.FullName, fork.FullName),
		}
	}
}

// cloneCmd copies the clone URL to the clipboard. A missing clipboard
// is not an error: the URL lands in the notification instead.
func cloneCmd(repo model.Repo) tea.Cmd {
	return func() tea.Msg {
		note := "Copied clone URL to clipboard: " + repo.CloneURL
		if err := sysopen.CopyClipboard(repo.CloneURL); err != nil {
			note = "Clone URL: " + repo.CloneURL
		}
		return actionDoneMsg{kind: actionClone, fullName: repo.FullName, note: note}
	}
}

// browserCmd opens the repository page in the default web browser.
func browserCmd(repo model.Repo) tea.Cmd {
	return func() tea.Msg {
		if err := sysopen.OpenURL(repo.HTMLURL); err != nil {
			return actionDoneMsg{kind: actionBrowser, fullName: repo.FullName, err: err}
		}
		return actionDoneMsg{
			kind:     actionBrowser,
			fullName: repo.FullName,
			note:     "Opened " + repo.FullName + " in browser",
		}
	}
}

// ackCmd acknowledges a not-yet-implemented action. The notification is
// deliberate: these actions must never fail silently.
func ackCmd(kind actionKind, repo model.Repo) tea.Cmd {
	return func() tea.Msg {
		var what string
		switch kind {
		case actionIssues:
			what = "Issues for"
		case actionPRs:
			what = "Pull requests for"
		default:
			what = "Watch/unwatch for"
		}
		return actionDoneMsg{
			kind:     kind,
			fullName: repo.FullName,
			note:     fmt.Sprintf("%s %s: not implemented yet", what, repo.FullName),
		}
	}
}
