package tui

import (
	"context"
	"fmt"
	"strings"
	"time"

	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"

	"github.com/trknhr/cooktime/internal/catalog"
	"github.com/trknhr/cooktime/internal/chat"
	"github.com/trknhr/cooktime/internal/feature"
	"github.com/trknhr/cooktime/internal/logger"
	"github.com/trknhr/cooktime/internal/model"
	"github.com/trknhr/cooktime/internal/predictor"
)

const (
	panelWidth     = 34
	predictTimeout = 2 * time.Minute
)

var (
	titleStyle      = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130"))
	subtitleStyle   = lipgloss.NewStyle().Italic(true).Foreground(lipgloss.Color("137"))
	statusOKStyle   = lipgloss.NewStyle().Foreground(lipgloss.Color("28"))
	statusErrStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("160"))
	statusBusyStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	panelStyle      = lipgloss.NewStyle().Border(lipgloss.RoundedBorder()).BorderForeground(lipgloss.Color("130")).Padding(0, 1)
	headingStyle    = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130"))
	dimStyle        = lipgloss.NewStyle().Foreground(lipgloss.Color("244"))
	estimateStyle   = lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("205"))

	senderStyles = map[chat.MessageKind]lipgloss.Style{
		chat.UserMessage:       lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("28")),
		chat.SystemMessage:     lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("130")),
		chat.PredictionMessage: lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("88")),
		chat.ErrorMessage:      lipgloss.NewStyle().Bold(true).Foreground(lipgloss.Color("160")),
	}
	textStyles = map[chat.MessageKind]lipgloss.Style{
		chat.PredictionMessage: lipgloss.NewStyle().Foreground(lipgloss.Color("88")),
		chat.ErrorMessage:      lipgloss.NewStyle().Foreground(lipgloss.Color("160")),
	}
)

type status int

const (
	statusTraining status = iota
	statusReady
	statusFailed
)

type tuiModel struct {
	bot    *chat.Bot
	events <-chan model.ModelInitEvent

	input    textinput.Model
	viewport viewport.Model
	messages []chat.Message

	status   status
	estimate string
	hint     string
	// previewSeq identifies the latest preview request; older replies are
	// dropped.
	previewSeq int

	width  int
	height int
}

type modelEventMsg struct {
	event model.ModelInitEvent
	ok    bool
}

type predictionMsg struct {
	seq     int
	preview bool
	result  predictor.Result
	err     error
}

func NewTuiModel(bot *chat.Bot, events <-chan model.ModelInitEvent) *tuiModel {
	input := textinput.New()
	input.Placeholder = "Ask Chef... (try: add 2 chicken, how long?)"
	input.Focus()

	vp := viewport.New(60, 15)

	m := &tuiModel{
		bot:      bot,
		events:   events,
		input:    input,
		viewport: vp,
		status:   statusTraining,
	}
	if bot.Session().Ready() {
		m.status = statusReady
	}
	m.appendMessages(bot.Welcome())
	return m
}

func (m *tuiModel) Init() tea.Cmd {
	return tea.Batch(textinput.Blink, waitForEvent(m.events))
}

func waitForEvent(ch <-chan model.ModelInitEvent) tea.Cmd {
	if ch == nil {
		return nil
	}
	return func() tea.Msg {
		ev, ok := <-ch
		return modelEventMsg{event: ev, ok: ok}
	}
}

func predictCmd(s *predictor.Session, sel feature.Selection, seq int, preview bool) tea.Cmd {
	return func() tea.Msg {
		ctx, cancel := context.WithTimeout(context.Background(), predictTimeout)
		defer cancel()

		var (
			res predictor.Result
			err error
		)
		if preview {
			res, err = s.Preview(ctx, sel)
		} else {
			res, err = s.PredictSelection(ctx, sel)
		}
		return predictionMsg{seq: seq, preview: preview, result: res, err: err}
	}
}

func (m *tuiModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.resize()

	case tea.KeyMsg:
		switch msg.Type {
		case tea.KeyCtrlC, tea.KeyEsc:
			return m, tea.Quit

		case tea.KeyEnter:
			if cmd := m.submit(); cmd != nil {
				cmds = append(cmds, cmd)
			}
			return m, tea.Batch(cmds...)

		case tea.KeyTab:
			m.complete()
			return m, nil

		case tea.KeyPgUp, tea.KeyPgDown:
			var cmd tea.Cmd
			m.viewport, cmd = m.viewport.Update(msg)
			cmds = append(cmds, cmd)

		default:
			m.hint = ""
			var cmd tea.Cmd
			m.input, cmd = m.input.Update(msg)
			cmds = append(cmds, cmd)
		}

	case modelEventMsg:
		if !msg.ok {
			return m, nil
		}
		m.handleModelEvent(msg.event)
		cmds = append(cmds, waitForEvent(m.events))

	case predictionMsg:
		m.handlePrediction(msg)

	default:
		var cmd tea.Cmd
		m.input, cmd = m.input.Update(msg)
		cmds = append(cmds, cmd)
	}

	return m, tea.Batch(cmds...)
}

func (m *tuiModel) complete() {
	completed, matches := chat.Complete(m.input.Value(), m.bot.Session().Catalog())
	m.input.SetValue(completed)
	m.input.CursorEnd()
	m.hint = ""
	if len(matches) > 1 {
		m.hint = strings.Join(matches, "  ")
	}
}

func (m *tuiModel) submit() tea.Cmd {
	text := strings.TrimSpace(m.input.Value())
	if text == "" {
		return nil
	}
	m.input.SetValue("")
	m.hint = ""

	m.appendMessages(m.bot.User(text))
	reply := m.bot.Handle(text)
	m.appendMessages(reply.Messages...)

	session := m.bot.Session()
	sel := session.Selection()
	if sel.IsEmpty() {
		m.estimate = ""
	}

	switch {
	case reply.Predict:
		m.previewSeq++
		return predictCmd(session, sel, m.previewSeq, false)
	case reply.Preview:
		m.previewSeq++
		return predictCmd(session, sel, m.previewSeq, true)
	}
	return nil
}

func (m *tuiModel) handleModelEvent(ev model.ModelInitEvent) {
	switch ev.Status {
	case model.ModelReady:
		m.status = statusReady
		logger.Debug("[%s] model ready: %s", ev.Name, ev.Detail)
		m.appendMessages(m.bot.System(m.bot.Responder().Ready(ev.Detail)))
	case model.ModelError:
		m.status = statusFailed
		logger.Warn("[%s] model init failed: %v", ev.Name, ev.Err)
		m.appendMessages(m.bot.Failed(ev.Err))
	}
}

func (m *tuiModel) handlePrediction(msg predictionMsg) {
	if msg.preview {
		if msg.seq != m.previewSeq {
			return
		}
		if msg.err != nil {
			logger.Debug("preview failed: %v", msg.err)
			m.estimate = ""
			return
		}
		m.estimate = fmt.Sprintf("Estimated Time: %d min", msg.result.Minutes)
		return
	}

	if msg.err != nil {
		logger.Error("prediction failed: %v", msg.err)
		m.appendMessages(m.bot.Failed(msg.err))
		return
	}
	if msg.seq == m.previewSeq {
		m.estimate = fmt.Sprintf("Estimated Cooking Time: %d min", msg.result.Minutes)
	}
	m.appendMessages(m.bot.Predicted(msg.result)...)
}

func (m *tuiModel) appendMessages(msgs ...chat.Message) {
	m.messages = append(m.messages, msgs...)
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *tuiModel) resize() {
	chatWidth := m.width - panelWidth - 4
	if chatWidth < 20 {
		chatWidth = 20
	}
	chatHeight := m.height - 7
	if chatHeight < 3 {
		chatHeight = 3
	}
	m.viewport.Width = chatWidth
	m.viewport.Height = chatHeight
	m.input.Width = chatWidth - 4
	m.viewport.SetContent(m.renderTranscript())
	m.viewport.GotoBottom()
}

func (m *tuiModel) renderTranscript() string {
	width := m.viewport.Width
	var b strings.Builder
	for i, msg := range m.messages {
		if i > 0 {
			b.WriteString("\n")
		}
		sender := senderStyles[msg.Kind].Render(msg.Sender + ":")
		text := msg.Text
		if st, ok := textStyles[msg.Kind]; ok {
			text = st.Render(text)
		}
		line := fmt.Sprintf("%s %s %s", dimStyle.Render("["+msg.At.Format("15:04")+"]"), sender, text)
		b.WriteString(lipgloss.NewStyle().Width(width).Render(line))
		b.WriteString("\n")
	}
	return b.String()
}

func (m *tuiModel) renderStatus() string {
	switch m.status {
	case statusReady:
		return statusOKStyle.Render("Model trained successfully!")
	case statusFailed:
		return statusErrStyle.Render("Error training model")
	default:
		return statusBusyStyle.Render("Training model... Please wait.")
	}
}

func (m *tuiModel) renderPanel() string {
	session := m.bot.Session()
	sel := session.Selection()
	cat := session.Catalog()

	var b strings.Builder
	b.WriteString(headingStyle.Render("Recipe Builder"))
	b.WriteString("\n")
	if sel.IsEmpty() {
		b.WriteString(dimStyle.Render("No ingredients yet"))
		b.WriteString("\n")
	}
	for _, name := range sel.Names() {
		line := fmt.Sprintf("  %-14s x%d", name, sel.Quantities[name])
		if !cat.Has(name) {
			line = dimStyle.Render(line + " (unknown)")
		}
		b.WriteString(line)
		b.WriteString("\n")
	}
	fmt.Fprintf(&b, "\nMethod: %s\n", sel.Method)
	if m.estimate != "" {
		b.WriteString(estimateStyle.Render(m.estimate))
		b.WriteString("\n")
	}

	b.WriteString("\n")
	b.WriteString(headingStyle.Render("Ingredients"))
	b.WriteString("\n")
	groups := cat.ByCategory()
	for _, c := range catalog.Categories() {
		names := make([]string, 0, len(groups[c]))
		for _, e := range groups[c] {
			names = append(names, e.Name)
		}
		b.WriteString(dimStyle.Render(string(c) + ": "))
		b.WriteString(lipgloss.NewStyle().Width(panelWidth - 4).Render(strings.Join(names, ", ")))
		b.WriteString("\n")
	}

	return panelStyle.Width(panelWidth).Render(strings.TrimRight(b.String(), "\n"))
}

func (m *tuiModel) View() string {
	header := titleStyle.Render("Chef's Assistant") + "  " +
		subtitleStyle.Render("Predict cooking times based on ingredients and method")

	chatPane := lipgloss.JoinVertical(lipgloss.Left,
		m.viewport.View(),
		m.input.View(),
		dimStyle.Render(m.hint),
	)
	body := lipgloss.JoinHorizontal(lipgloss.Top, m.renderPanel(), " ", chatPane)

	return lipgloss.JoinVertical(lipgloss.Left,
		header,
		m.renderStatus(),
		"",
		body,
		dimStyle.Render("(Enter = send, Tab = complete ingredient, PgUp/PgDn = scroll, Esc/Ctrl+C = quit)"),
	)
}
