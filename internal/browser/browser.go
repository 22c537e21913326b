// Package browser implements the interactive repository browser: an
// asynchronously loaded collection, an incremental filter kept in sync
// with a table view, and one-key actions on the selected repository.
package browser

import (
	"fmt"
	"log/slog"
	"strconv"
	"strings"

	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"repodeck/internal/logging"
	"repodeck/internal/model"
)

// — state ———————————————————————————————————————————————————————————————————

type sessionState int

const (
	stateLoading sessionState = iota
	stateReady
	stateTerminated
)

// — model ———————————————————————————————————————————————————————————————————

// Model is the browser session. It exclusively owns the full and
// filtered collections and the selection; every other component either
// reads them or reports back through messages.
type Model struct {
	client      Client
	account     string
	starredOnly bool

	state sessionState
	gen   int // load generation, bumped on every (re)load

	repos    []model.Repo // full collection, loader order
	filtered []model.Repo // ordered subsequence of repos

	table    table.Model
	search   textinput.Model
	spin     spinner.Model
	category model.Category

	status      string
	statusIsErr bool
	statusSeq   int

	width  int
	height int
}

// New builds a session for the given account ("" means the
// authenticated user). With starredOnly the session browses only the
// account's starred repositories.
func New(client Client, account string, starredOnly bool) Model {
	t := table.New(
		table.WithColumns(tableColumns(60)),
		table.WithFocused(true),
	)
	t.SetStyles(tableStyles())

	ti := textinput.New()
	ti.Placeholder = "Search repositories..."
	ti.Prompt = "/ "
	ti.CharLimit = 100

	sp := spinner.New()
	sp.Spinner = spinner.Dot
	sp.Style = titleStyle

	return Model{
		client:      client,
		account:     account,
		starredOnly: starredOnly,
		state:       stateLoading,
		gen:         1,
		table:       t,
		search:      ti,
		spin:        sp,
		category:    model.CategoryAll,
	}
}

// — tea.Model ———————————————————————————————————————————————————————————————

func (m Model) Init() tea.Cmd {
	return tea.Batch(
		m.spin.Tick,
		loadCmd(m.client, m.account, m.starredOnly, m.gen),
	)
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	if m.state == stateTerminated {
		// quit is underway; late completions are dropped
		return m, nil
	}

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()
		return m, nil

	case spinner.TickMsg:
		if m.state != stateLoading {
			return m, nil
		}
		var cmd tea.Cmd
		m.spin, cmd = m.spin.Update(msg)
		return m, cmd

	case reposLoadedMsg:
		if msg.gen != m.gen {
			// A newer load superseded this one; its result is stale.
			logging.Default().Debug("discarding superseded load",
				slog.Int("gen", msg.gen), slog.Int("current", m.gen))
			return m, nil
		}
		m.state = stateReady
		if msg.err != nil {
			logging.Default().Error("load failed", "error", msg.err)
			cmd := m.notify(fmt.Sprintf("Error loading repositories: %v", msg.err), true)
			return m, cmd
		}
		m.repos = msg.repos
		m.refilter()
		cmd := m.notify(fmt.Sprintf("Loaded %d repositories", len(m.repos)), false)
		return m, cmd

	case actionDoneMsg:
		if msg.err != nil {
			logging.Default().Error("action failed",
				slog.String("action", string(msg.kind)),
				slog.String("repo", msg.fullName),
				"error", msg.err)
			cmd := m.notify(fmt.Sprintf("Error performing %s on %s: %v", msg.kind, msg.fullName, msg.err), true)
			return m, cmd
		}
		if msg.kind == actionStar {
			for i := range m.repos {
				if m.repos[i].FullName == msg.fullName {
					m.repos[i].Starred = msg.starred
					break
				}
			}
			m.refilter()
		}
		cmd := m.notify(msg.note, false)
		return m, cmd

	case statusClearMsg:
		if msg.seq == m.statusSeq {
			m.status = ""
		}
		return m, nil

	case tea.KeyMsg:
		if m.search.Focused() {
			return m.updateSearch(msg)
		}
		return m.updateNormal(msg)
	}

	return m, nil
}

func (m Model) updateNormal(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "ctrl+c":
		return m.quit()
	case "r":
		return m.refresh()
	case "/":
		m.search.Focus()
		return m, textinput.Blink
	case "esc":
		if m.search.Value() != "" {
			m.search.SetValue("")
			m.refilter()
		}
		return m, nil
	case "tab":
		m.category = m.category.Next()
		m.refilter()
		return m, nil
	case "s":
		if r := m.selectedRepo(); r != nil {
			return m, starCmd(m.client, *r)
		}
		return m, nil
	case "F":
		if r := m.selectedRepo(); r != nil {
			return m, forkCmd(m.client, *r)
		}
		return m, nil
	case "c":
		if r := m.selectedRepo(); r != nil {
			return m, cloneCmd(*r)
		}
		return m, nil
	case "o":
		if r := m.selectedRepo(); r != nil {
			return m, browserCmd(*r)
		}
		return m, nil
	case "i":
		if r := m.selectedRepo(); r != nil {
			return m, ackCmd(actionIssues, *r)
		}
		return m, nil
	case "p":
		if r := m.selectedRepo(); r != nil {
			return m, ackCmd(actionPRs, *r)
		}
		return m, nil
	case "w":
		if r := m.selectedRepo(); r != nil {
			return m, ackCmd(actionWatch, *r)
		}
		return m, nil
	}

	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	return m, cmd
}

func (m Model) updateSearch(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "esc":
		m.search.SetValue("")
		m.search.Blur()
		m.refilter()
		return m, nil
	case "enter":
		m.search.Blur()
		return m, nil
	}

	before := m.search.Value()
	var cmd tea.Cmd
	m.search, cmd = m.search.Update(msg)
	if m.search.Value() != before {
		m.refilter()
	}
	return m, cmd
}

// quit releases the API client before leaving the event loop. In-flight
// loads and actions are abandoned; their completions arrive after the
// program stops and are never applied.
func (m Model) quit() (tea.Model, tea.Cmd) {
	m.state = stateTerminated
	if err := m.client.Close(); err != nil {
		logging.Default().Warn("failed to close client", "error", err)
	}
	return m, tea.Quit
}

// refresh supersedes any in-flight load: bumping the generation makes
// the session discard the older load's completion.
func (m Model) refresh() (tea.Model, tea.Cmd) {
	m.gen++
	m.state = stateLoading
	expire := m.notify("Refreshing repositories...", false)
	return m, tea.Batch(
		m.spin.Tick,
		loadCmd(m.client, m.account, m.starredOnly, m.gen),
		expire,
	)
}

// — collection/selection sync ———————————————————————————————————————————————

// refilter recomputes the filtered collection and rebuilds the table
// rows from scratch, keeping the previously selected repository
// selected when it survives the filter and clamping otherwise. Runs
// synchronously; the UI never observes a half-updated state.
func (m *Model) refilter() {
	prev := ""
	if r := m.selectedRepo(); r != nil {
		prev = r.FullName
	}

	m.filtered = applyFilter(m.repos, m.search.Value(), m.category)

	rows := make([]table.Row, len(m.filtered))
	for i, r := range m.filtered {
		updated := "n/a"
		if !r.UpdatedAt.IsZero() {
			updated = r.UpdatedAt.Format("2006-01-02")
		}
		star := ""
		if r.Starred {
			star = "★"
		}
		rows[i] = table.Row{
			star,
			r.Name,
			truncate(r.Description, 40),
			r.Language,
			strconv.Itoa(r.Stars),
			strconv.Itoa(r.Forks),
			updated,
		}
	}
	m.table.SetRows(rows)

	cursor := 0
	for i, r := range m.filtered {
		if r.FullName == prev {
			cursor = i
			break
		}
	}
	if cursor >= len(m.filtered) {
		cursor = 0
	}
	m.table.SetCursor(cursor)
}

// selectedRepo maps the table cursor back to a repository. Nil when the
// filtered collection is empty or the cursor is out of range.
func (m *Model) selectedRepo() *model.Repo {
	if len(m.filtered) == 0 {
		return nil
	}
	idx := m.table.Cursor()
	if idx < 0 || idx >= len(m.filtered) {
		return nil
	}
	return &m.filtered[idx]
}

// notify replaces the status line and schedules its expiry.
func (m *Model) notify(text string, isErr bool) tea.Cmd {
	m.status = text
	m.statusIsErr = isErr
	m.statusSeq++
	return statusExpireCmd(m.statusSeq)
}

// — view ————————————————————————————————————————————————————————————————————

func (m Model) View() string {
	if m.width == 0 || m.state == stateTerminated {
		return ""
	}

	title := "repodeck"
	switch {
	case m.starredOnly && m.account != "":
		title += " — starred by " + m.account
	case m.starredOnly:
		title += " — my starred repositories"
	case m.account != "":
		title += " — " + m.account
	default:
		title += " — my repositories"
	}
	header := titleStyle.Render(title)
	if m.state == stateLoading {
		header += "  " + m.spin.View() + dimStyle.Render("loading...")
	}

	filterLine := labelStyle.Render("filter: ") + boldStyle.Render(m.category.Label()) +
		dimStyle.Render("  (tab to cycle)")

	var tableView string
	switch {
	case m.state == stateLoading && len(m.repos) == 0:
		tableView = dimStyle.Render("Loading repositories...")
	case len(m.filtered) == 0:
		tableView = dimStyle.Render("No repositories match the current filter")
	default:
		tableView = m.table.View()
	}

	left := lipgloss.JoinVertical(lipgloss.Left,
		m.search.View(),
		filterLine,
		tableView,
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, left, m.renderDetail())

	statusLine := ""
	if m.status != "" {
		if m.statusIsErr {
			statusLine = errStyle.Render(m.status)
		} else {
			statusLine = okStyle.Render(m.status)
		}
	}

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		body,
		statusLine,
		m.renderHelp(),
	)
}

func (m Model) renderHelp() string {
	var text string
	if m.search.Focused() {
		text = "Enter apply   Esc clear"
	} else {
		star := "s star"
		if r := m.selectedRepo(); r != nil && r.Starred {
			star = "s unstar"
		}
		text = "↑/↓ navigate   / search   tab filter   " + star +
			"   F fork   c clone URL   o open   i issues   p prs   w watch   r refresh   q quit"
	}
	sep := dimStyle.Render(strings.Repeat("─", max(m.width, 1)))
	return sep + "\n" + helpStyle.Render(text)
}

// — layout helpers ——————————————————————————————————————————————————————————

func (m *Model) resize() {
	lw, lh := m.listDimensions()
	m.table.SetColumns(tableColumns(lw))
	m.table.SetWidth(lw)
	m.table.SetHeight(lh)
}

// listDimensions splits the window: the table pane takes ~60% of the
// width (the detail pane the rest) minus the surrounding chrome.
func (m Model) listDimensions() (width, height int) {
	w := m.width * 6 / 10
	h := m.height - 7 // header, search, filter line, status, help
	if h < 3 {
		h = 3
	}
	return w, h
}

func tableColumns(width int) []table.Column {
	fixed := 2 + 42 + 12 + 7 + 6 + 10
	name := width - fixed - 6
	if name < 16 {
		name = 16
	}
	return []table.Column{
		{Title: "", Width: 2},
		{Title: "Name", Width: name},
		{Title: "Description", Width: 42},
		{Title: "Language", Width: 12},
		{Title: "Stars", Width: 7},
		{Title: "Forks", Width: 6},
		{Title: "Updated", Width: 10},
	}
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}
