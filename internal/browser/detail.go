package browser

import (
	"strconv"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"
)

// renderDetail draws the right-hand pane for the selected repository,
// or a placeholder prompt when nothing is selected.
func (m Model) renderDetail() string {
	lw, lh := m.listDimensions()
	dw := m.width - lw

	style := lipgloss.NewStyle().
		Border(lipgloss.NormalBorder(), false, false, false, true).
		PaddingLeft(2).
		PaddingRight(1).
		Width(dw - 1).
		Height(lh + 2)

	r := m.selectedRepo()
	if r == nil {
		return style.Render(dimStyle.Render("Select a repository to view details"))
	}

	row := func(lbl, val string) string {
		return labelStyle.Render(lbl) + val + "\n"
	}

	visibility := "public"
	if r.Private {
		visibility = "private"
	}
	yesNo := func(b bool) string {
		if b {
			return "yes"
		}
		return "no"
	}
	orNA := func(s string) string {
		if s == "" {
			return dimStyle.Render("n/a")
		}
		return s
	}
	ts := func(t time.Time) string {
		return t.Format("2006-01-02 15:04:05")
	}

	var b strings.Builder
	head := r.FullName
	if r.Starred {
		head = "★ " + head
	}
	b.WriteString(detailHeadStyle.Render(head) + "\n\n")

	if r.Description != "" {
		b.WriteString(r.Description + "\n\n")
	}

	b.WriteString(row("Language   ", orNA(r.Language)))
	b.WriteString(row("Stars      ", strconv.Itoa(r.Stars)))
	b.WriteString(row("Forks      ", strconv.Itoa(r.Forks)))
	b.WriteString(row("Issues     ", strconv.Itoa(r.OpenIssues)))
	b.WriteString(row("License    ", orNA(r.License)))
	b.WriteString(row("Visibility ", visibility))
	b.WriteString(row("Fork       ", yesNo(r.Fork)))
	b.WriteString(row("Branch     ", orNA(r.DefaultBranch)))
	if r.Homepage != "" {
		b.WriteString(row("Homepage   ", r.Homepage))
	}
	if len(r.Topics) > 0 {
		b.WriteString(row("Topics     ", strings.Join(r.Topics, ", ")))
	}
	b.WriteString(row("Clone URL  ", r.CloneURL))
	b.WriteString(row("SSH URL    ", r.SSHURL))
	b.WriteString(row("Web URL    ", r.HTMLURL))

	b.WriteString("\n")
	if !r.CreatedAt.IsZero() {
		b.WriteString(row("Created    ", ts(r.CreatedAt)))
	}
	if !r.UpdatedAt.IsZero() {
		b.WriteString(row("Updated    ", ts(r.UpdatedAt)))
	}
	if !r.PushedAt.IsZero() {
		b.WriteString(row("Last push  ", ts(r.PushedAt)))
	}

	return style.Render(b.String())
}
