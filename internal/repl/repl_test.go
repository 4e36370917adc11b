package repl

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitormoschetta/go-askchat/internal/chat"
	"github.com/vitormoschetta/go-askchat/internal/logging"
	"github.com/vitormoschetta/go-askchat/internal/model"
)

func newTestREPL(input string, asker chat.Asker) (*REPL, *bytes.Buffer, *bytes.Buffer) {
	var out, logs bytes.Buffer
	h := chat.NewHandler(asker, chat.WithLogger(logging.Discard()))
	r := New(h, strings.NewReader(input), &out, WithLogger(logging.New(&logs, log.InfoLevel)))
	return r, &out, &logs
}

func TestRunPrintsExchanges(t *testing.T) {
	var asked []string
	r, out, _ := newTestREPL("Hello\n\n   \nHow are you?\n", chat.AskerFunc(func(ctx context.Context, message string) (string, error) {
		asked = append(asked, message)
		return "answer to " + message, nil
	}))

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []string{"Hello", "How are you?"}, asked)
	assert.Equal(t, []model.ChatMessage{
		model.UserMessage("Hello"),
		model.BotMessage("answer to Hello"),
		model.UserMessage("How are you?"),
		model.BotMessage("answer to How are you?"),
	}, r.Transcript().Messages())

	assert.Contains(t, out.String(), "You: Hello\nBot: answer to Hello\n")
	assert.Contains(t, out.String(), "You: How are you?\nBot: answer to How are you?\n")
}

func TestRunStopsOnExitWord(t *testing.T) {
	for _, word := range []string{"exit", "quit", "sair", "  EXIT  "} {
		t.Run(word, func(t *testing.T) {
			calls := 0
			r, _, _ := newTestREPL("first\n"+word+"\nnever sent\n", chat.AskerFunc(func(ctx context.Context, message string) (string, error) {
				calls++
				return "ok", nil
			}))

			require.NoError(t, r.Run(context.Background()))
			assert.Equal(t, 1, calls)
			assert.Equal(t, 2, r.Transcript().Len())
		})
	}
}

func TestRunContinuesAfterFailure(t *testing.T) {
	r, out, logs := newTestREPL("broken\nworking\n", chat.AskerFunc(func(ctx context.Context, message string) (string, error) {
		if message == "broken" {
			return "", errors.New("backend unavailable")
		}
		return "fine", nil
	}))

	require.NoError(t, r.Run(context.Background()))

	assert.Equal(t, []model.ChatMessage{
		model.UserMessage("broken"),
		model.UserMessage("working"),
		model.BotMessage("fine"),
	}, r.Transcript().Messages())
	assert.NotContains(t, out.String(), "backend unavailable")
	assert.Contains(t, logs.String(), "backend unavailable")
}

func TestRunSanitizesOutput(t *testing.T) {
	r, out, _ := newTestREPL("hi\n", chat.AskerFunc(func(ctx context.Context, message string) (string, error) {
		return "\x1b[2J\x1b]0;title\x07clean", nil
	}))

	require.NoError(t, r.Run(context.Background()))

	assert.Contains(t, out.String(), "Bot: clean\n")
	assert.NotContains(t, out.String(), "\x1b")
	// O histórico guarda a resposta como veio; só a renderização é sanitizada.
	assert.Equal(t, "\x1b[2J\x1b]0;title\x07clean", r.Transcript().Messages()[1].Text)
}

func TestRunStopsWhenContextDone(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	r, _, _ := newTestREPL("", chat.AskerFunc(func(ctx context.Context, message string) (string, error) {
		return "", nil
	}))
	// Entrada que nunca termina.
	r.in = blockingReader{}

	require.NoError(t, r.Run(ctx))
}

type blockingReader struct{}

func (blockingReader) Read([]byte) (int, error) { select {} }

func TestIsExit(t *testing.T) {
	assert.True(t, IsExit("quit"))
	assert.True(t, IsExit(" Sair "))
	assert.False(t, IsExit("exit now"))
	assert.False(t, IsExit(""))
}
