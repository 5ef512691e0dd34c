// Package tui implements the interactive review screen for suggested fixes:
// a findings table with a preview pane showing the change each fix would
// make, and per-finding accept/decline decisions.
package tui

import (
	"bytes"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/alecthomas/chroma/v2"
	"github.com/alecthomas/chroma/v2/formatters"
	"github.com/alecthomas/chroma/v2/lexers"
	"github.com/alecthomas/chroma/v2/styles"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/table"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/codemend/codemend/internal/types"
)

var (
	titleStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("6")).
			Bold(true).
			Padding(0, 1)

	previewBorderStyle = lipgloss.NewStyle().
				BorderStyle(lipgloss.NormalBorder()).
				BorderForeground(lipgloss.Color("240"))

	removedStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("9"))
	addedStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("10"))

	statusStyle = lipgloss.NewStyle().
			Background(lipgloss.Color("236")).
			Foreground(lipgloss.Color("7"))

	acceptedMark = lipgloss.NewStyle().Foreground(lipgloss.Color("10")).Render("✓")
	declinedMark = lipgloss.NewStyle().Foreground(lipgloss.Color("9")).Render("✗")
)

type decision int

const (
	pending decision = iota
	accepted
	declined
)

// Key identifies a finding across the review session and the fix run.
func Key(f types.Finding) string {
	return fmt.Sprintf("%s|%d|%s", f.Path, f.Line, f.Detector)
}

type statusMsg string

// Model is the review screen state. Findings are the suggested fixes only;
// auto-applied fixes never pass through here.
type Model struct {
	table     table.Model
	viewport  viewport.Model
	findings  []types.Finding
	decisions []decision
	root      string
	prefs     Prefs

	ready         bool
	quitting      bool
	width         int
	height        int
	statusMessage string
	showHelp      bool
}

// NewModel builds the review model over the given suggested findings.
func NewModel(root string, findings []types.Finding) Model {
	columns := []table.Column{
		{Title: " ", Width: 3},
		{Title: "Category", Width: 12},
		{Title: "Detector", Width: 28},
		{Title: "Location", Width: 34},
		{Title: "Conf", Width: 5},
	}

	t := table.New(
		table.WithColumns(columns),
		table.WithFocused(true),
		table.WithHeight(10),
	)

	s := table.DefaultStyles()
	s.Header = lipgloss.NewStyle().
		Background(lipgloss.Color("235")).
		Foreground(lipgloss.Color("15")).
		Bold(true).
		Padding(0, 1).
		Align(lipgloss.Left)
	s.Selected = lipgloss.NewStyle().
		Foreground(lipgloss.Color("232")).
		Background(lipgloss.Color("208")).
		Bold(true).
		Padding(0, 1)
	s.Cell = lipgloss.NewStyle().Padding(0, 1)
	t.SetStyles(s)

	m := Model{
		table:     t,
		findings:  findings,
		decisions: make([]decision, len(findings)),
		root:      root,
		prefs:     LoadPrefs(),
	}
	m.refreshRows()
	return m
}

// Accepted returns the keys of findings the user approved.
func (m Model) Accepted() map[string]bool {
	out := map[string]bool{}
	for i, d := range m.decisions {
		if d == accepted {
			out[Key(m.findings[i])] = true
		}
	}
	return out
}

func (m *Model) refreshRows() {
	rows := make([]table.Row, len(m.findings))
	for i, f := range m.findings {
		mark := ""
		switch m.decisions[i] {
		case accepted:
			mark = acceptedMark
		case declined:
			mark = declinedMark
		}
		rows[i] = table.Row{
			mark,
			string(f.Category),
			f.Detector,
			fmt.Sprintf("%s:%d", f.Path, f.Line),
			fmt.Sprintf("%.2f", f.Confidence),
		}
	}
	m.table.SetRows(rows)
}

func (m Model) Init() tea.Cmd {
	return nil
}

func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		tableHeight := msg.Height / 3
		if tableHeight < 5 {
			tableHeight = 5
		}
		m.table.SetHeight(tableHeight)
		vpHeight := msg.Height - tableHeight - 6
		if vpHeight < 3 {
			vpHeight = 3
		}
		if !m.ready {
			m.viewport = viewport.New(msg.Width-4, vpHeight)
			m.ready = true
		} else {
			m.viewport.Width = msg.Width - 4
			m.viewport.Height = vpHeight
		}
		m.viewport.SetContent(m.previewCurrent())
		return m, nil

	case statusMsg:
		m.statusMessage = string(msg)
		return m, nil

	case tea.KeyMsg:
		switch msg.String() {
		case "q", "esc", "ctrl+c":
			m.quitting = true
			return m, tea.Quit
		case "?":
			m.showHelp = !m.showHelp
			return m, nil
		case "y":
			m.decide(accepted)
			return m.afterDecision()
		case "n":
			m.decide(declined)
			return m.afterDecision()
		case "a":
			for i := range m.decisions {
				if m.decisions[i] == pending {
					m.decisions[i] = accepted
				}
			}
			m.refreshRows()
			m.quitting = true
			return m, tea.Quit
		case "c":
			return m, m.copyLocation()
		}
	}

	var cmds []tea.Cmd
	var cmd tea.Cmd
	m.table, cmd = m.table.Update(msg)
	cmds = append(cmds, cmd)
	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)
	if m.ready {
		m.viewport.SetContent(m.previewCurrent())
	}
	return m, tea.Batch(cmds...)
}

func (m *Model) decide(d decision) {
	cur := m.table.Cursor()
	if cur < 0 || cur >= len(m.decisions) {
		return
	}
	m.decisions[cur] = d
	m.refreshRows()
}

func (m Model) afterDecision() (tea.Model, tea.Cmd) {
	for _, d := range m.decisions {
		if d == pending {
			m.table.MoveDown(1)
			if m.ready {
				m.viewport.SetContent(m.previewCurrent())
			}
			return m, nil
		}
	}
	m.quitting = true
	return m, tea.Quit
}

func (m Model) copyLocation() tea.Cmd {
	cur := m.table.Cursor()
	if cur < 0 || cur >= len(m.findings) {
		return func() tea.Msg { return statusMsg("No finding selected") }
	}
	f := m.findings[cur]
	loc := fmt.Sprintf("%s:%d", f.Path, f.Line)
	if err := clipboard.WriteAll(loc); err != nil {
		return func() tea.Msg { return statusMsg(fmt.Sprintf("Clipboard error: %v", err)) }
	}
	return func() tea.Msg { return statusMsg(fmt.Sprintf("Copied: %s", loc)) }
}

// previewCurrent renders the change the selected fix would make: context
// lines from the file with the affected line marked, then the rewritten line.
func (m Model) previewCurrent() string {
	cur := m.table.Cursor()
	if cur < 0 || cur >= len(m.findings) {
		return "No findings to review."
	}
	f := m.findings[cur]

	var b strings.Builder
	b.WriteString(f.Description)
	b.WriteString("\n\n")

	data, err := os.ReadFile(filepath.Join(m.root, f.Path))
	if err != nil {
		b.WriteString(fmt.Sprintf("(cannot read %s: %v)", f.Path, err))
		return b.String()
	}
	lines := strings.Split(string(data), "\n")
	idx := f.Line - 1
	if idx < 0 || idx >= len(lines) {
		b.WriteString("(line no longer present)")
		return b.String()
	}

	start := idx - m.prefs.ContextLines
	if start < 0 {
		start = 0
	}
	end := idx + m.prefs.ContextLines
	if end >= len(lines) {
		end = len(lines) - 1
	}
	for i := start; i <= end; i++ {
		num := fmt.Sprintf("%4d  ", i+1)
		if i == idx {
			b.WriteString(num + removedStyle.Render("- "+lines[i]) + "\n")
			if f.Fix != nil {
				for _, al := range strings.Split(rewritten(lines[i], f.Fix), "\n") {
					if al == "" {
						continue
					}
					b.WriteString("      " + addedStyle.Render("+ "+al) + "\n")
				}
			}
			continue
		}
		line := lines[i]
		if m.prefs.HighlightSyntax {
			line = highlightLine(line, f.Path)
		}
		b.WriteString(num + line + "\n")
	}
	return b.String()
}

// rewritten previews what the fix would leave of the line: empty for a line
// deletion, a column-exact splice when the fix carries one.
func rewritten(line string, fix *types.Fix) string {
	if fix.DeleteLine {
		return ""
	}
	if c := fix.Col - 1; c >= 0 {
		if c+len(fix.Original) <= len(line) && line[c:c+len(fix.Original)] == fix.Original {
			return line[:c] + fix.Replacement + line[c+len(fix.Original):]
		}
	}
	return strings.Replace(line, fix.Original, fix.Replacement, 1)
}

func (m Model) View() string {
	if m.quitting {
		return ""
	}
	if !m.ready {
		return "Loading..."
	}

	var b strings.Builder
	b.WriteString(titleStyle.Render("codemend review — suggested fixes"))
	b.WriteString("\n")
	b.WriteString(m.table.View())
	b.WriteString("\n")
	b.WriteString(previewBorderStyle.Width(m.width - 2).Render(m.viewport.View()))
	b.WriteString("\n")

	status := m.statusMessage
	if status == "" {
		status = fmt.Sprintf("%d/%d decided", m.decidedCount(), len(m.findings))
	}
	help := "y accept · n decline · a accept rest · c copy · q done"
	if m.showHelp {
		help = "y: apply this fix · n: leave as is · a: accept all remaining · c: copy location · ↑/↓: navigate · q: finish review"
	}
	b.WriteString(statusStyle.Width(m.width).Render(" " + status + "  " + help))
	return b.String()
}

func (m Model) decidedCount() int {
	n := 0
	for _, d := range m.decisions {
		if d != pending {
			n++
		}
	}
	return n
}

func highlightLine(line string, filename string) string {
	lexer := lexers.Match(filename)
	if lexer == nil {
		ext := filepath.Ext(filename)
		if ext != "" {
			lexer = lexers.Match("file" + ext)
		}
	}
	if lexer == nil {
		return line
	}
	lexer = chroma.Coalesce(lexer)

	style := styles.Get("monokai")
	if style == nil {
		style = styles.Fallback
	}
	formatter := formatters.Get("terminal256")
	if formatter == nil {
		return line
	}
	iterator, err := lexer.Tokenise(nil, line)
	if err != nil {
		return line
	}
	var buf bytes.Buffer
	if err := formatter.Format(&buf, style, iterator); err != nil {
		return line
	}
	return strings.TrimSuffix(buf.String(), "\n")
}
