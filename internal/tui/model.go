// Package tui é a view do chat em tela cheia no terminal.
package tui

import (
	"context"
	"fmt"
	"strings"

	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/spinner"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/bubbles/viewport"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/vitormoschetta/go-askchat/internal/chat"
	errUtils "github.com/vitormoschetta/go-askchat/internal/errors"
	"github.com/vitormoschetta/go-askchat/internal/model"
	"github.com/vitormoschetta/go-askchat/internal/transcript"
)

const (
	// DefaultViewportWidth é a largura do histórico antes do primeiro WindowSizeMsg.
	DefaultViewportWidth = 80
	// DefaultViewportHeight é a altura do histórico antes do primeiro WindowSizeMsg.
	DefaultViewportHeight = 20

	inputPrompt = "> "
	newline     = "\n"
)

// Options configura a TUI.
type Options struct {
	// Endpoint aparece no cabeçalho.
	Endpoint string
	Logger   *log.Logger
}

// Model é o model do bubbletea. O histórico e o campo de entrada só mudam
// dentro de Update, na goroutine do programa.
type Model struct {
	ctx     context.Context
	handler *chat.Handler
	send    func(tea.Msg)
	logger  *log.Logger

	endpoint   string
	transcript *transcript.Transcript
	input      textinput.Model
	viewport   viewport.Model
	spinner    spinner.Model
	styles     styles
	keys       keyMap

	pending int
	status  string
	failed  bool
	width   int
	ready   bool
}

// New cria um Model que executa as trocas pelo handler.
func New(ctx context.Context, handler *chat.Handler, opts Options) *Model {
	ti := textinput.New()
	ti.Placeholder = "Type your message and press Enter"
	ti.Prompt = inputPrompt
	ti.CharLimit = 0
	ti.Focus()

	sp := spinner.New()
	sp.Spinner = spinner.Dot

	keys := defaultKeyMap()

	// Letras digitadas na entrada não podem rolar o histórico.
	vp := viewport.New(DefaultViewportWidth, DefaultViewportHeight)
	vp.KeyMap = viewport.KeyMap{PageUp: keys.PageUp, PageDown: keys.PageDown}
	vp.SetContent("")

	logger := opts.Logger
	if logger == nil {
		logger = log.Default()
	}

	st := defaultStyles()
	sp.Style = st.bot

	return &Model{
		ctx:        ctx,
		handler:    handler,
		logger:     logger,
		endpoint:   opts.Endpoint,
		transcript: transcript.New(),
		input:      ti,
		viewport:   vp,
		spinner:    sp,
		styles:     st,
		keys:       keys,
		width:      DefaultViewportWidth,
	}
}

// Transcript expõe as mensagens renderizadas até agora.
func (m *Model) Transcript() *transcript.Transcript {
	return m.transcript
}

// mensagens enviadas pela programView e aplicadas em Update.
type (
	appendMsg   struct{ message model.ChatMessage }
	scrollMsg   struct{}
	setInputMsg struct{ value string }

	exchangeDoneMsg struct {
		exchange *chat.Exchange
		err      error
	}
)

// programView é a chat.View entregue ao handler. O valor da entrada é
// capturado no Enter; cada alteração vira uma mensagem para o programa, e
// Update as aplica na ordem em que foram feitas.
type programView struct {
	value string
	send  func(tea.Msg)
}

func (v *programView) Value() string { return v.value }

func (v *programView) SetValue(s string) {
	v.value = s
	v.send(setInputMsg{value: s})
}

func (v *programView) Append(msg model.ChatMessage) {
	v.send(appendMsg{message: msg})
}

func (v *programView) ScrollToBottom() {
	v.send(scrollMsg{})
}

func (m *Model) Init() tea.Cmd {
	return textinput.Blink
}

func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	var cmds []tea.Cmd

	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.resize(msg)
		return m, nil

	case tea.KeyMsg:
		switch {
		case key.Matches(msg, m.keys.Quit):
			return m, tea.Quit
		case key.Matches(msg, m.keys.Send):
			return m, m.submit()
		}

	case appendMsg:
		m.transcript.Append(msg.message)
		m.render()
		return m, nil

	case scrollMsg:
		m.viewport.GotoBottom()
		return m, nil

	case setInputMsg:
		m.input.SetValue(msg.value)
		return m, nil

	case exchangeDoneMsg:
		m.finish(msg)
		return m, nil

	case spinner.TickMsg:
		if m.pending == 0 {
			return m, nil
		}
		var cmd tea.Cmd
		m.spinner, cmd = m.spinner.Update(msg)
		return m, cmd
	}

	var cmd tea.Cmd
	m.input, cmd = m.input.Update(msg)
	cmds = append(cmds, cmd)

	m.viewport, cmd = m.viewport.Update(msg)
	cmds = append(cmds, cmd)

	return m, tea.Batch(cmds...)
}

// submit inicia uma troca com a entrada atual na goroutine de um comando.
func (m *Model) submit() tea.Cmd {
	view := &programView{value: m.input.Value(), send: m.send}
	handler := m.handler
	ctx := m.ctx

	m.pending++
	m.status = ""
	m.failed = false

	return tea.Batch(
		m.spinner.Tick,
		func() tea.Msg {
			exchange, err := handler.Send(ctx, view)
			return exchangeDoneMsg{exchange: exchange, err: err}
		},
	)
}

func (m *Model) finish(msg exchangeDoneMsg) {
	if m.pending > 0 {
		m.pending--
	}

	switch {
	case msg.err == nil:
		m.status = ""
		m.failed = false
	case errors.Is(msg.err, errUtils.ErrExchangeInFlight):
		m.status = "waiting for the previous answer"
		m.failed = false
	case errors.Is(msg.err, context.Canceled):
		m.status = ""
	default:
		m.logger.Error("exchange failed", "err", msg.err)
		m.status = "request failed: " + transcript.Sanitize(msg.err.Error())
		m.failed = true
	}
}

func (m *Model) resize(msg tea.WindowSizeMsg) {
	m.width = msg.Width

	headerHeight := lipgloss.Height(m.headerView())
	footerHeight := lipgloss.Height(m.footerView())

	height := msg.Height - headerHeight - footerHeight
	if height < 1 {
		height = 1
	}

	m.viewport.Width = msg.Width
	m.viewport.Height = height
	m.input.Width = msg.Width - len(inputPrompt) - 1
	m.ready = true

	atBottom := m.viewport.AtBottom()
	m.render()
	if atBottom {
		m.viewport.GotoBottom()
	}
}

// render redesenha o histórico no viewport sem mexer na rolagem.
func (m *Model) render() {
	width := m.viewport.Width - 2
	if width < 10 {
		width = 10
	}
	body := m.styles.body.Width(width)

	messages := m.transcript.Messages()
	parts := make([]string, 0, len(messages)*3)
	for _, msg := range messages {
		label := m.styles.bot
		if msg.Role == model.RoleUser {
			label = m.styles.user
		}
		parts = append(parts,
			label.Render(transcript.Label(msg.Role)),
			body.Render(transcript.Sanitize(msg.Text)),
			"",
		)
	}

	m.viewport.SetContent(strings.Join(parts, newline))
}

func (m *Model) View() string {
	if !m.ready {
		return "\n  Starting askchat..."
	}
	return fmt.Sprintf("%s\n%s\n%s", m.headerView(), m.viewport.View(), m.footerView())
}

func (m *Model) headerView() string {
	lines := []string{m.styles.title.Render("askchat")}
	if m.endpoint != "" {
		lines = append(lines, m.styles.subtitle.Render(m.endpoint))
	}
	return lipgloss.JoinVertical(lipgloss.Left, lines...)
}

func (m *Model) footerView() string {
	var status string
	switch {
	case m.pending > 0:
		status = m.spinner.View() + " waiting for answer..."
	case m.status != "" && m.failed:
		status = m.styles.failure.Render(m.status)
	case m.status != "":
		status = m.styles.status.Render(m.status)
	default:
		status = m.styles.help.Render(m.keys.help())
	}

	return m.styles.footer.Render(lipgloss.JoinVertical(lipgloss.Left, m.input.View(), status))
}

// Run inicia a TUI e bloqueia até o usuário sair. Trocas ainda em andamento
// são canceladas na saída.
func Run(ctx context.Context, handler *chat.Handler, opts Options) error {
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	m := New(ctx, handler, opts)
	p := tea.NewProgram(m, tea.WithAltScreen(), tea.WithContext(ctx))
	m.send = p.Send

	if _, err := p.Run(); err != nil {
		// Encerrado pelo contexto pai (Ctrl+C no shell) é uma saída normal.
		if errors.Is(err, tea.ErrProgramKilled) && ctx.Err() != nil {
			return nil
		}
		return errors.Wrap(err, "run chat TUI")
	}
	return nil
}
