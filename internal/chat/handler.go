// Package chat implementa a troca do chat: entra uma mensagem do usuário, sai
// uma resposta, e as duas são renderizadas no histórico.
package chat

import (
	"context"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"golang.org/x/sync/semaphore"

	errUtils "github.com/vitormoschetta/go-askchat/internal/errors"
	"github.com/vitormoschetta/go-askchat/internal/model"
)

// InputField é o campo de texto onde o usuário digita.
type InputField interface {
	Value() string
	SetValue(string)
}

// TranscriptView é a lista visível e ordenada de mensagens.
type TranscriptView interface {
	Append(model.ChatMessage)
	ScrollToBottom()
}

// View é tudo que o handler mexe na tela.
type View interface {
	InputField
	TranscriptView
}

// Asker envia uma mensagem ao backend e retorna a resposta.
type Asker interface {
	Ask(ctx context.Context, message string) (string, error)
}

// Exchange é uma pergunta com sua resposta.
type Exchange struct {
	Question string
	Answer   string
}

type Option func(*Handler)

func WithPolicy(p Policy) Option {
	return func(h *Handler) {
		h.policy = p
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(h *Handler) {
		if logger != nil {
			h.logger = logger
		}
	}
}

// Handler executa as trocas do chat. No máximo uma troca fica em andamento
// por vez; a Policy decide o que acontece com uma segunda.
type Handler struct {
	asker  Asker
	policy Policy
	slot   *semaphore.Weighted
	logger *log.Logger
}

func NewHandler(asker Asker, opts ...Option) *Handler {
	h := &Handler{
		asker:  asker,
		policy: PolicyReject,
		slot:   semaphore.NewWeighted(1),
		logger: log.Default(),
	}
	for _, opt := range opts {
		opt(h)
	}
	return h
}

func (h *Handler) Policy() Policy {
	return h.policy
}

// Send lê o campo de entrada de v e, se não estiver em branco, executa uma
// troca: acrescenta a mensagem do usuário, consulta o backend, acrescenta a
// resposta, rola o histórico até o fim e limpa a entrada.
//
// Entrada em branco retorna nil, nil sem tocar em v nem na rede. Se a
// consulta falhar, a mensagem do usuário fica no histórico, nada mais muda e
// o erro é retornado.
func (h *Handler) Send(ctx context.Context, v View) (*Exchange, error) {
	message := strings.TrimSpace(v.Value())
	if message == "" {
		return nil, nil
	}

	if err := h.acquire(ctx); err != nil {
		return nil, err
	}
	defer h.slot.Release(1)

	v.Append(model.UserMessage(message))

	answer, err := h.asker.Ask(ctx, message)
	if err != nil {
		h.logger.Debug("exchange failed", "err", err)
		return nil, err
	}

	v.Append(model.BotMessage(answer))
	v.ScrollToBottom()
	v.SetValue("")

	h.logger.Debug("exchange completed", "question_len", len(message), "answer_len", len(answer))

	return &Exchange{Question: message, Answer: answer}, nil
}

func (h *Handler) acquire(ctx context.Context) error {
	if h.policy == PolicyWait {
		if err := h.slot.Acquire(ctx, 1); err != nil {
			return errors.Wrap(err, "wait for the exchange in flight")
		}
		return nil
	}

	if !h.slot.TryAcquire(1) {
		return errUtils.ErrExchangeInFlight
	}
	return nil
}

// AskerFunc adapta uma função simples para a interface Asker.
type AskerFunc func(ctx context.Context, message string) (string, error)

func (f AskerFunc) Ask(ctx context.Context, message string) (string, error) {
	return f(ctx, message)
}
