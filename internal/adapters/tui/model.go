// Package tui renders a mounted viewer in the terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/google/uuid"

	"github.com/randomtoy/flipdeck/internal/app"
	"github.com/randomtoy/flipdeck/internal/domain"
)

const barWidth = 40

// stateMsg carries a snapshot published by the runner.
type stateMsg struct{ state domain.ViewState }

// replyMsg carries the snapshot returned by a command the user issued.
type replyMsg struct {
	state domain.ViewState
	err   error
}

// closedMsg reports that the runner stopped publishing.
type closedMsg struct{}

// Model is the bubbletea model for one viewer. Autoplay runs inside the
// runner; the model only renders the snapshots it publishes.
type Model struct {
	ctx     context.Context
	runner  *app.Runner
	subID   string
	updates <-chan domain.ViewState
	state   domain.ViewState
	ready   bool
	err     error
}

func New(ctx context.Context, runner *app.Runner) *Model {
	subID := uuid.NewString()
	return &Model{
		ctx:     ctx,
		runner:  runner,
		subID:   subID,
		updates: runner.Subscribe(subID),
	}
}

func (m *Model) Init() tea.Cmd {
	return tea.Batch(
		m.send((*app.Runner).State),
		m.waitForState(),
	)
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case stateMsg:
		m.apply(msg.state)
		return m, m.waitForState()

	case replyMsg:
		if msg.err != nil {
			m.err = msg.err
			return m, nil
		}
		m.err = nil
		m.apply(msg.state)
		return m, nil

	case closedMsg:
		return m, tea.Quit

	case tea.KeyMsg:
		return m.handleKey(msg)
	}
	return m, nil
}

// apply shows st unless a newer snapshot is already on screen. Replies and
// published states travel on different goroutines and may arrive out of order.
func (m *Model) apply(st domain.ViewState) {
	if m.ready && st.Seq < m.state.Seq {
		return
	}
	m.state, m.ready = st, true
}

func (m *Model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, keys.Quit):
		m.runner.Unsubscribe(m.subID)
		return m, tea.Quit
	case key.Matches(msg, keys.Flip):
		return m, m.send((*app.Runner).Flip)
	case key.Matches(msg, keys.Next):
		return m, m.send((*app.Runner).Next)
	case key.Matches(msg, keys.Prev):
		return m, m.send((*app.Runner).Prev)
	case key.Matches(msg, keys.Shuffle):
		return m, m.send((*app.Runner).Shuffle)
	case key.Matches(msg, keys.Autoplay):
		return m, m.send((*app.Runner).ToggleAutoplay)
	}
	return m, nil
}

// send runs op against the runner off the UI goroutine.
func (m *Model) send(op func(*app.Runner, context.Context) (domain.ViewState, error)) tea.Cmd {
	r, ctx := m.runner, m.ctx
	return func() tea.Msg {
		st, err := op(r, ctx)
		return replyMsg{state: st, err: err}
	}
}

func (m *Model) waitForState() tea.Cmd {
	ch := m.updates
	return func() tea.Msg {
		st, ok := <-ch
		if !ok {
			return closedMsg{}
		}
		return stateMsg{state: st}
	}
}

func (m *Model) View() string {
	if !m.ready {
		if m.err != nil {
			return styleError.Render("Error: " + m.err.Error())
		}
		return "Loading deck..."
	}

	st := m.state
	var b strings.Builder

	b.WriteString(m.renderHeader())
	b.WriteString("\n")
	if m.err != nil {
		b.WriteString(styleError.Render("Error: " + m.err.Error()))
		b.WriteString("\n")
	}
	b.WriteString(renderCard(st))
	b.WriteString("\n")
	b.WriteString(renderNav(st))
	b.WriteString("\n\n")
	b.WriteString(renderProgress(st.Progress))
	b.WriteString("\n\n")
	b.WriteString(renderAutoplayButton(st.Autoplay.Enabled))
	b.WriteString("\n\n")
	b.WriteString(renderHelp())
	b.WriteString("\n")
	return b.String()
}

func (m *Model) renderHeader() string {
	st := m.state
	left := st.DeckName
	if st.Shuffled {
		left += " [shuffled]"
	}
	right := ""
	if st.Autoplay.Enabled {
		right = styleCounter.Render(fmt.Sprintf("%ds", st.Autoplay.Countdown))
	}
	gap := max(cardWidth+10-lipgloss.Width(left)-lipgloss.Width(right), 1)
	return left + strings.Repeat(" ", gap) + right
}

func renderCard(st domain.ViewState) string {
	if st.Card == nil {
		return styleCard.Render(styleSubtle.Render("This deck has no cards."))
	}
	side := st.Flip.Orientation
	text := st.Card.Face(side)
	label := styleSide.Render(strings.ToUpper(string(side)))
	if side == domain.Back {
		return styleCardBack.Render(label + "\n\n" + text)
	}
	return styleCard.Render(label + "\n\n" + text)
}

func renderNav(st domain.ViewState) string {
	position := "-"
	if st.Card != nil {
		position = fmt.Sprintf("%d", st.Cursor+1)
	}
	back := styleNavButton.Render("‹ Back")
	next := styleNavButton.Render("Next ›")
	gap := max((cardWidth+10-lipgloss.Width(back)-lipgloss.Width(next)-len(position))/2, 1)
	pad := strings.Repeat(" ", gap)
	return back + pad + position + pad + next
}

// renderProgress draws a proportional bar followed by the "x / y" label.
func renderProgress(p domain.Progress) string {
	return progressBar(p.Fraction(), barWidth) + "  " + p.Label()
}

func progressBar(fraction float64, width int) string {
	fraction = min(max(fraction, 0), 1)
	filled := int(fraction*float64(width) + 0.5)
	return styleBarFilled.Render(strings.Repeat("█", filled)) +
		styleBarEmpty.Render(strings.Repeat("░", width-filled))
}

func renderAutoplayButton(enabled bool) string {
	if enabled {
		return styleAutoplayOn.Render("STOP")
	}
	return styleAutoplayOff.Render("START AUTOPLAY")
}

func renderHelp() string {
	var parts []string
	for _, k := range keys.help() {
		h := k.Help()
		parts = append(parts, h.Key+" "+h.Desc)
	}
	return styleSubtle.Render(strings.Join(parts, " • "))
}
