package transcript

import (
	"fmt"
	"sync"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/assert"

	"github.com/vitormoschetta/go-askchat/internal/model"
)

func TestAppendKeepsOrder(t *testing.T) {
	tr := New()
	tr.Append(model.UserMessage("Hello"))
	tr.Append(model.BotMessage("Hi there!"))
	tr.Append(model.UserMessage("How are you?"))

	want := []model.ChatMessage{
		{Role: model.RoleUser, Text: "Hello"},
		{Role: model.RoleBot, Text: "Hi there!"},
		{Role: model.RoleUser, Text: "How are you?"},
	}
	if diff := cmp.Diff(want, tr.Messages()); diff != "" {
		t.Errorf("Messages() mismatch (-want +got):\n%s", diff)
	}
	assert.Equal(t, 3, tr.Len())
}

func TestMessagesReturnsCopy(t *testing.T) {
	tr := New()
	tr.Append(model.UserMessage("original"))

	msgs := tr.Messages()
	msgs[0].Text = "changed"

	assert.Equal(t, "original", tr.Messages()[0].Text)
}

func TestLast(t *testing.T) {
	tr := New()
	assert.Empty(t, tr.Last(2))

	tr.Append(model.UserMessage("a"))
	tr.Append(model.BotMessage("b"))
	tr.Append(model.UserMessage("c"))

	assert.Equal(t, []model.ChatMessage{model.BotMessage("b"), model.UserMessage("c")}, tr.Last(2))
	assert.Len(t, tr.Last(10), 3)
	assert.Nil(t, tr.Last(0))
}

func TestConcurrentAppend(t *testing.T) {
	tr := New()

	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			tr.Append(model.UserMessage(fmt.Sprint(i)))
		}(i)
	}
	wg.Wait()

	assert.Equal(t, 50, tr.Len())
}

func TestSanitize(t *testing.T) {
	tests := []struct {
		name  string
		input string
		want  string
	}{
		{"plain", "Hi there!", "Hi there!"},
		{"markup is kept as text", "<script>alert(1)</script>", "<script>alert(1)</script>"},
		{"color codes", "\x1b[31mred\x1b[0m", "red"},
		{"osc title", "\x1b]0;pwned\x07hello", "hello"},
		{"clear screen", "\x1b[2Jafter", "after"},
		{"newline and tab kept", "a\n\tb", "a\n\tb"},
		{"carriage return and bell dropped", "a\rb\x07c", "abc"},
		{"unicode kept", "olá 👋", "olá 👋"},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.want, Sanitize(tc.input))
		})
	}
}

func TestLine(t *testing.T) {
	assert.Equal(t, "You: Hello", Line(model.UserMessage("Hello")))
	assert.Equal(t, "Bot: Hi there!", Line(model.BotMessage("Hi there!\x1b[0m")))
	assert.Equal(t, "system: note", Line(model.ChatMessage{Role: "system", Text: "note"}))
}
