package cli

import (
	"context"
	"fmt"
	"strings"
	"time"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
)

// Progress styles
var (
	barFullStyle  = lipgloss.NewStyle().Foreground(colorCyan)
	barEmptyStyle = lipgloss.NewStyle().Foreground(colorDim)
	progDimStyle  = lipgloss.NewStyle().Foreground(colorDim)
)

const barWidth = 36

// =============================================================================
// Messages - Runner events forwarded to the program
// =============================================================================

type runStartMsg struct{ fonts, tokens, expected int }

type fontStartMsg struct {
	font         string
	index, total int
}

type tokenDoneMsg struct {
	font, kind string
	written    int
}

type runDoneMsg struct {
	written  int
	duration time.Duration
	err      error
}

// teaHooks forwards generation events to a bubbletea program.
type teaHooks struct {
	send func(tea.Msg)
}

func (h teaHooks) OnRunStart(_ context.Context, fonts, tokens, expected int) {
	h.send(runStartMsg{fonts, tokens, expected})
}

func (h teaHooks) OnFontStart(_ context.Context, font string, index, total int) {
	h.send(fontStartMsg{font, index, total})
}

func (h teaHooks) OnTokenComplete(_ context.Context, font, kind string, written int, _ time.Duration) {
	h.send(tokenDoneMsg{font, kind, written})
}

func (h teaHooks) OnRunComplete(_ context.Context, written int, d time.Duration, err error) {
	h.send(runDoneMsg{written, d, err})
}

// =============================================================================
// ProgressModel - Live generation progress
// =============================================================================

// ProgressModel is the bubbletea model for the --progress view.
type ProgressModel struct {
	Fonts, Tokens int // totals announced at run start
	Expected      int // artifacts if no token is blank

	Font      string
	FontIndex int
	Pairs     int // (font, token) pairs completed
	Written   int
	Skipped   int

	Done     bool
	Err      error
	Duration time.Duration

	cancel context.CancelFunc
}

// NewProgressModel creates a progress model. cancel is called when the
// user quits the view.
func NewProgressModel(cancel context.CancelFunc) ProgressModel {
	return ProgressModel{cancel: cancel}
}

func (m ProgressModel) Init() tea.Cmd {
	return nil
}

func (m ProgressModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		switch msg.String() {
		case "q", "ctrl+c", "esc":
			if m.cancel != nil {
				m.cancel()
			}
		}
	case runStartMsg:
		m.Fonts, m.Tokens, m.Expected = msg.fonts, msg.tokens, msg.expected
	case fontStartMsg:
		m.Font, m.FontIndex = msg.font, msg.index
	case tokenDoneMsg:
		m.Pairs++
		m.Written += msg.written
		if msg.written == 0 {
			m.Skipped++
		}
	case runDoneMsg:
		m.Done = true
		m.Written = msg.written
		m.Duration = msg.duration
		m.Err = msg.err
		return m, tea.Quit
	}
	return m, nil
}

// Fraction returns completed pairs over all pairs, in [0, 1].
func (m ProgressModel) Fraction() float64 {
	total := m.Fonts * m.Tokens
	if total == 0 {
		if m.Done {
			return 1
		}
		return 0
	}
	f := float64(m.Pairs) / float64(total)
	if f > 1 {
		f = 1
	}
	return f
}

func (m ProgressModel) View() string {
	if m.Done {
		return ""
	}
	var b strings.Builder

	b.WriteString(StyleTitle.Render("Generating pictures"))
	b.WriteString("\n\n")

	filled := int(m.Fraction() * barWidth)
	b.WriteString("  ")
	b.WriteString(barFullStyle.Render(strings.Repeat("█", filled)))
	b.WriteString(barEmptyStyle.Render(strings.Repeat("░", barWidth-filled)))
	b.WriteString(StyleNumber.Render(fmt.Sprintf(" %3.0f%%", m.Fraction()*100)))
	b.WriteString("\n\n")

	if m.Font != "" {
		b.WriteString(fmt.Sprintf("  font %s %s\n",
			StyleValue.Render(m.Font),
			progDimStyle.Render(fmt.Sprintf("(%d/%d)", m.FontIndex+1, m.Fonts))))
	}
	b.WriteString(progDimStyle.Render(fmt.Sprintf("  %d/%d written · %d blank skipped", m.Written, m.Expected, m.Skipped)))
	b.WriteString("\n\n")
	b.WriteString(progDimStyle.Render("  q cancel"))
	b.WriteString("\n")
	return b.String()
}
