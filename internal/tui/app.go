// Package tui is the terminal popup: a filter input over the tab
// directory with keyboard navigation, switch/close actions and a
// confirm prompt in front of the bulk close.
package tui

import (
	"context"
	"fmt"
	"strings"
	"sync"
	"time"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/dgnsrekt/tab_agent/internal/render"
	"github.com/dgnsrekt/tab_agent/internal/tabdir"
)

// popupShell adapts the popup window to the directory's shell surface.
// Consent is collected by the inline prompt before a bulk close runs,
// so Confirm only reports what the prompt already decided.
type popupShell struct {
	closed  bool
	consent bool
}

func (s *popupShell) Close()              { s.closed = true }
func (s *popupShell) Confirm(string) bool { return s.consent }

type refreshDoneMsg struct{ err error }
type actionDoneMsg struct{ err error }
type closeOthersDoneMsg struct {
	closed int
	err    error
}

// App drives the popup. The directory and shell are shared with the
// command goroutines bubbletea runs host calls on, so every access goes
// through mu, mirroring the controller service's locking.
type App struct {
	mu      *sync.Mutex
	dir     *tabdir.Directory
	shell   *popupShell
	keys    KeyMap
	styles  Styles
	timeout time.Duration

	input     textinput.Model
	spin      spinner.Model
	lastInput string

	width  int
	height int
	offset int

	confirming bool
	busy       bool
	status     string
}

func NewApp(host tabdir.Host, exact bool, timeout time.Duration) App {
	shell := &popupShell{}
	dir := tabdir.New(host, shell)
	dir.SetExactMatch(exact)

	inp := textinput.New()
	inp.Placeholder = "Search tabs"
	inp.Prompt = "> "
	inp.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	return App{
		mu:      &sync.Mutex{},
		dir:     dir,
		shell:   shell,
		keys:    DefaultKeyMap(),
		styles:  DefaultStyles(),
		timeout: timeout,
		input:   inp,
		spin:    sp,
		width:   80,
		height:  24,
	}
}

func (a App) Init() tea.Cmd {
	return tea.Batch(a.spin.Tick, a.refreshCmd())
}

func (a App) refreshCmd() tea.Cmd {
	mu, dir, timeout := a.mu, a.dir, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		mu.Lock()
		defer mu.Unlock()
		return refreshDoneMsg{err: dir.Refresh(ctx)}
	}
}

func (a App) switchCmd() tea.Cmd {
	mu, dir, timeout := a.mu, a.dir, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		mu.Lock()
		defer mu.Unlock()
		return actionDoneMsg{err: dir.Activate(ctx)}
	}
}

func (a App) closeTabCmd(id int) tea.Cmd {
	mu, dir, timeout := a.mu, a.dir, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		mu.Lock()
		defer mu.Unlock()
		return actionDoneMsg{err: dir.Close(ctx, id)}
	}
}

func (a App) closeOthersCmd() tea.Cmd {
	mu, dir, timeout := a.mu, a.dir, a.timeout
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), timeout)
		defer cancel()
		mu.Lock()
		defer mu.Unlock()
		closed, err := dir.CloseOthers(ctx)
		return closeOthersDoneMsg{closed: closed, err: err}
	}
}

// Update runs on the program goroutine; commands returned here execute
// elsewhere and take the same lock before touching the directory.
func (a App) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	a.mu.Lock()
	defer a.mu.Unlock()

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		a.width = msg.Width
		a.height = msg.Height
		a.ensureVisible()
		return a, nil

	case spinner.TickMsg:
		if !a.busy && !a.dir.Loading() {
			return a, nil
		}
		var cmd tea.Cmd
		a.spin, cmd = a.spin.Update(msg)
		return a, cmd

	case refreshDoneMsg:
		a.busy = false
		a.offset = 0
		a.status = ""
		if msg.err != nil {
			a.status = msg.err.Error()
		}
		a.input.SetValue(a.dir.Query())
		a.lastInput = a.input.Value()
		return a, nil

	case actionDoneMsg:
		a.busy = false
		a.status = ""
		if msg.err != nil {
			a.status = msg.err.Error()
		}
		if a.shell.closed {
			return a, tea.Quit
		}
		a.ensureVisible()
		return a, nil

	case closeOthersDoneMsg:
		a.busy = false
		a.shell.consent = false
		if msg.err != nil {
			a.status = msg.err.Error()
			return a, nil
		}
		a.status = fmt.Sprintf("closed %d tabs", msg.closed)
		a.offset = 0
		a.input.SetValue(a.dir.Query())
		a.lastInput = a.input.Value()
		return a, nil

	case tea.KeyMsg:
		return a.updateKey(msg)
	}

	return a, nil
}

func (a App) updateKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	if a.confirming {
		return a.updateConfirm(msg)
	}
	if a.busy {
		if key.Matches(msg, a.keys.Quit) {
			a.dir.Dismiss()
			return a, tea.Quit
		}
		return a, nil
	}

	switch {
	case key.Matches(msg, a.keys.Quit):
		a.dir.Dismiss()
		return a, tea.Quit

	case key.Matches(msg, a.keys.Down):
		a.dir.MoveDown()
		a.ensureVisible()
		return a, nil

	case key.Matches(msg, a.keys.Up):
		a.dir.MoveUp()
		a.ensureVisible()
		return a, nil

	case key.Matches(msg, a.keys.Switch):
		if filtered, _ := a.dir.Counts(); filtered == 0 {
			return a, nil
		}
		a.busy = true
		return a, tea.Batch(a.spin.Tick, a.switchCmd())

	case key.Matches(msg, a.keys.CloseTab):
		tab, ok := a.dir.SelectedTab()
		if !ok {
			if tabs := a.dir.Tabs(); len(tabs) > 0 {
				tab, ok = tabs[0], true
			}
		}
		if !ok {
			return a, nil
		}
		a.busy = true
		return a, tea.Batch(a.spin.Tick, a.closeTabCmd(tab.ID))

	case key.Matches(msg, a.keys.CloseOthers):
		a.confirming = true
		a.status = ""
		return a, nil

	case key.Matches(msg, a.keys.Refresh):
		a.busy = true
		return a, tea.Batch(a.spin.Tick, a.refreshCmd())

	case key.Matches(msg, a.keys.ToggleExact):
		a.dir.SetExactMatch(!a.dir.ExactMatch())
		a.offset = 0
		return a, nil
	}

	var cmd tea.Cmd
	a.input, cmd = a.input.Update(msg)
	// Compare the raw value, not the normalized query: cursor movement
	// must not re-run the filter and lose the selection.
	if v := a.input.Value(); v != a.lastInput {
		a.lastInput = v
		a.dir.SetQuery(v)
		a.offset = 0
	}
	return a, cmd
}

func (a App) updateConfirm(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "y", "Y":
		a.confirming = false
		a.busy = true
		a.shell.consent = true
		return a, tea.Batch(a.spin.Tick, a.closeOthersCmd())
	case "n", "N", "esc":
		a.confirming = false
		return a, nil
	}
	return a, nil
}

// visibleRows is the number of list rows that fit under the input and
// status lines.
func (a App) visibleRows() int {
	rows := a.height - 3
	if rows < 1 {
		rows = 1
	}
	return rows
}

// ensureVisible keeps the selected row inside the viewport window.
func (a *App) ensureVisible() {
	sel := a.dir.Selection()
	if sel < 0 {
		a.offset = 0
		return
	}
	rows := a.visibleRows()
	if sel < a.offset {
		a.offset = sel
	}
	if sel >= a.offset+rows {
		a.offset = sel - rows + 1
	}
}

func (a App) View() string {
	a.mu.Lock()
	defer a.mu.Unlock()

	var b strings.Builder
	b.WriteString(a.input.View())
	b.WriteString("\n")
	b.WriteString(a.statusLine())
	b.WriteString("\n")

	if a.confirming {
		_, total := a.dir.Counts()
		b.WriteString(a.styles.Prompt.Render(fmt.Sprintf("Close all other tabs? (%d open) [y/n]", total)))
		b.WriteString("\n")
	}

	tabs := a.dir.Tabs()
	if len(tabs) == 0 && !a.dir.Loading() {
		if s := a.dir.Suggestion(); s != "" {
			b.WriteString(a.styles.Dim.Render(fmt.Sprintf("No matches. Did you mean %q?", s)))
		} else {
			b.WriteString(a.styles.Dim.Render("No matches."))
		}
		b.WriteString("\n")
		return b.String()
	}

	sel := a.dir.Selection()
	rows := a.visibleRows()
	end := a.offset + rows
	if end > len(tabs) {
		end = len(tabs)
	}
	for i := a.offset; i < end; i++ {
		b.WriteString(a.renderRow(tabs[i], i == sel))
		b.WriteString("\n")
	}
	return b.String()
}

func (a App) statusLine() string {
	if a.busy || a.dir.Loading() {
		return a.spin.View() + a.styles.Dim.Render(" loading")
	}
	if a.status != "" {
		return a.styles.Error.Render(a.status)
	}
	filtered, total := a.dir.Counts()
	line := fmt.Sprintf("%d / %d tabs", filtered, total)
	if a.dir.ExactMatch() {
		line += "  [exact]"
	}
	return a.styles.Dim.Render(line)
}

func (a App) renderRow(tab tabdir.Tab, selected bool) string {
	prefix := "  "
	titleStyle := a.styles.Title
	if selected {
		prefix = a.styles.Cursor.Render("> ")
		titleStyle = a.styles.Selected
	}
	marks := ""
	if tab.Pinned {
		marks += a.styles.Pin.Render("*")
	}
	if tab.Active {
		marks += a.styles.Active.Render("•")
	}
	if marks != "" {
		marks += " "
	}
	query := a.dir.Query()
	title := truncate(tab.Title, a.width/2)
	url := truncate(render.FormatURL(tab.URL), a.width/3)
	return prefix + marks +
		styleMatches(title, query, titleStyle, a.styles.Match) + " " +
		styleMatches(url, query, a.styles.URL, a.styles.Match)
}

// styleMatches renders text with every case-insensitive occurrence of
// the query in the match style and the rest in the base style.
func styleMatches(text, query string, base, match lipgloss.Style) string {
	ranges := render.MatchRanges(text, query)
	if len(ranges) == 0 {
		return base.Render(text)
	}
	var b strings.Builder
	last := 0
	for _, r := range ranges {
		if r.Start > last {
			b.WriteString(base.Render(text[last:r.Start]))
		}
		b.WriteString(match.Render(text[r.Start:r.End]))
		last = r.End
	}
	if last < len(text) {
		b.WriteString(base.Render(text[last:]))
	}
	return b.String()
}

func truncate(s string, max int) string {
	if max < 4 {
		max = 4
	}
	r := []rune(s)
	if len(r) <= max {
		return s
	}
	return string(r[:max-1]) + "…"
}
