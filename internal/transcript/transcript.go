// Package transcript guarda o histórico ordenado do chat e renderiza suas
// entradas como texto inerte.
package transcript

import (
	"strings"
	"sync"
	"unicode"

	"github.com/charmbracelet/x/ansi"

	"github.com/vitormoschetta/go-askchat/internal/model"
)

// Transcript é uma lista ordenada de mensagens onde só se acrescenta. Pode
// ser usada de várias goroutines.
type Transcript struct {
	mu       sync.RWMutex
	messages []model.ChatMessage
}

func New() *Transcript {
	return &Transcript{}
}

func (t *Transcript) Append(msg model.ChatMessage) {
	t.mu.Lock()
	defer t.mu.Unlock()

	t.messages = append(t.messages, msg)
}

// Messages retorna uma cópia das entradas na ordem em que apareceram.
func (t *Transcript) Messages() []model.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	out := make([]model.ChatMessage, len(t.messages))
	copy(out, t.messages)
	return out
}

func (t *Transcript) Len() int {
	t.mu.RLock()
	defer t.mu.RUnlock()

	return len(t.messages)
}

// Last retorna até n entradas mais recentes, da mais antiga para a mais nova.
func (t *Transcript) Last(n int) []model.ChatMessage {
	t.mu.RLock()
	defer t.mu.RUnlock()

	if n <= 0 {
		return nil
	}
	if n > len(t.messages) {
		n = len(t.messages)
	}

	out := make([]model.ChatMessage, n)
	copy(out, t.messages[len(t.messages)-n:])
	return out
}

// Sanitize transforma texto não confiável em texto imprimível: remove
// sequências de escape do terminal e caracteres de controle, mas mantém
// quebras de linha e tabs.
func Sanitize(text string) string {
	return strings.Map(func(r rune) rune {
		if r == '\n' || r == '\t' {
			return r
		}
		if unicode.IsControl(r) {
			return -1
		}
		return r
	}, ansi.Strip(text))
}

// Label é o prefixo exibido para um papel.
func Label(role model.Role) string {
	switch role {
	case model.RoleUser:
		return "You:"
	case model.RoleBot:
		return "Bot:"
	default:
		return string(role) + ":"
	}
}

// Line renderiza msg como uma entrada de texto simples.
func Line(msg model.ChatMessage) string {
	return Label(msg.Role) + " " + Sanitize(msg.Text)
}
