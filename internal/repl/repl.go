// Package repl é a view do chat em modo linha: uma linha lida, uma troca.
package repl

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	"github.com/vitormoschetta/go-askchat/internal/chat"
	"github.com/vitormoschetta/go-askchat/internal/model"
	"github.com/vitormoschetta/go-askchat/internal/transcript"
)

const (
	defaultPrompt = "> "
	maxLineBytes  = 1024 * 1024
)

// exitWords encerram a sessão quando digitadas sozinhas na linha.
var exitWords = map[string]struct{}{
	"sair": {},
	"exit": {},
	"quit": {},
}

type Option func(*REPL)

func WithLogger(logger *log.Logger) Option {
	return func(r *REPL) {
		if logger != nil {
			r.logger = logger
		}
	}
}

func WithPrompt(prompt string) Option {
	return func(r *REPL) {
		r.prompt = prompt
	}
}

// REPL lê mensagens linha a linha e imprime o histórico conforme ele cresce.
type REPL struct {
	handler    *chat.Handler
	in         io.Reader
	out        io.Writer
	logger     *log.Logger
	prompt     string
	transcript *transcript.Transcript

	userLabel lipgloss.Style
	botLabel  lipgloss.Style
}

func New(handler *chat.Handler, in io.Reader, out io.Writer, opts ...Option) *REPL {
	renderer := lipgloss.NewRenderer(out)

	r := &REPL{
		handler:    handler,
		in:         in,
		out:        out,
		logger:     log.Default(),
		prompt:     defaultPrompt,
		transcript: transcript.New(),
		userLabel:  renderer.NewStyle().Foreground(lipgloss.Color("#00D787")).Bold(true),
		botLabel:   renderer.NewStyle().Foreground(lipgloss.Color("#00AFD7")).Bold(true),
	}
	for _, opt := range opts {
		opt(r)
	}
	return r
}

func (r *REPL) Transcript() *transcript.Transcript {
	return r.transcript
}

// IsExit informa se a linha pede para encerrar a sessão.
func IsExit(line string) bool {
	_, ok := exitWords[strings.ToLower(strings.TrimSpace(line))]
	return ok
}

// Run executa até EOF, uma palavra de saída ou o fim de ctx. Uma troca que
// falha é registrada no log e o loop continua.
func (r *REPL) Run(ctx context.Context) error {
	done := make(chan struct{})
	defer close(done)
	lines, scanErr := r.scan(done)

	fmt.Fprintln(r.out, "askchat started. Type 'exit' to quit.")

	for {
		fmt.Fprint(r.out, r.prompt)

		var line string
		select {
		case <-ctx.Done():
			fmt.Fprintln(r.out)
			return nil
		case l, ok := <-lines:
			if !ok {
				fmt.Fprintln(r.out)
				return <-scanErr
			}
			line = l
		}

		if IsExit(line) {
			return nil
		}

		view := &lineView{repl: r, value: line}
		if _, err := r.handler.Send(ctx, view); err != nil {
			if errors.Is(err, context.Canceled) {
				return nil
			}
			r.logger.Error("exchange failed", "err", err)
		}
	}
}

// scan envia as linhas lidas para um canal, assim Run também observa ctx.
// Para assim que done é fechado.
func (r *REPL) scan(done <-chan struct{}) (<-chan string, <-chan error) {
	lines := make(chan string)
	errc := make(chan error, 1)

	go func() {
		defer close(lines)

		scanner := bufio.NewScanner(r.in)
		scanner.Buffer(make([]byte, 0, 64*1024), maxLineBytes)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-done:
				return
			}
		}
		if err := scanner.Err(); err != nil {
			errc <- errors.Wrap(err, "read input")
			return
		}
		errc <- nil
	}()

	return lines, errc
}

func (r *REPL) print(msg model.ChatMessage) {
	label := r.botLabel
	if msg.Role == model.RoleUser {
		label = r.userLabel
	}
	fmt.Fprintf(r.out, "%s %s\n", label.Render(transcript.Label(msg.Role)), transcript.Sanitize(msg.Text))
}

// lineView adapta uma linha de entrada para chat.View.
type lineView struct {
	repl  *REPL
	value string
}

func (v *lineView) Value() string { return v.value }

func (v *lineView) SetValue(s string) { v.value = s }

func (v *lineView) Append(msg model.ChatMessage) {
	v.repl.transcript.Append(msg)
	v.repl.print(msg)
}

// ScrollToBottom não faz nada: a linha mais nova é sempre a última impressa.
func (v *lineView) ScrollToBottom() {}
