package cmd

import (
	"bytes"
	"context"
	"io"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/cockroachdb/errors"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vitormoschetta/go-askchat/internal/config"
	errUtils "github.com/vitormoschetta/go-askchat/internal/errors"
	"github.com/vitormoschetta/go-askchat/internal/handler"
	"github.com/vitormoschetta/go-askchat/internal/logging"
	"github.com/vitormoschetta/go-askchat/internal/server"
)

func newMockBackend(t *testing.T, cfg config.MockConfig) (*server.Server, *httptest.Server) {
	t.Helper()

	srv := server.NewServer(cfg, config.DefaultPath, logging.Discard())
	h := handler.NewHandler(srv)
	srv.SetupRouter(h.HandleRoot, h.HandleHealth, h.HandleAsk)

	ts := httptest.NewServer(srv.Router)
	t.Cleanup(ts.Close)
	return srv, ts
}

func execute(t *testing.T, stdin string, args ...string) (string, string, error) {
	t.Helper()

	var stdout, stderr bytes.Buffer
	root, closeLog := NewRootCmd()
	t.Cleanup(func() { assert.NoError(t, closeLog()) })

	root.SetArgs(args)
	root.SetIn(strings.NewReader(stdin))
	root.SetOut(&stdout)
	root.SetErr(&stderr)

	err := root.ExecuteContext(context.Background())
	return stdout.String(), stderr.String(), err
}

func TestAskCommand(t *testing.T) {
	srv, ts := newMockBackend(t, config.MockConfig{Answer: "Hi there!"})

	out, _, err := execute(t, "", "ask", "--endpoint", ts.URL, "Hello")
	require.NoError(t, err)

	assert.Equal(t, "Hi there!\n", out)
	assert.Equal(t, 1, srv.Responder.Served())
}

func TestAskCommandJoinsArguments(t *testing.T) {
	_, ts := newMockBackend(t, config.MockConfig{})

	out, _, err := execute(t, "", "ask", "--endpoint", ts.URL, "what", "is", "this?")
	require.NoError(t, err)

	assert.Equal(t, "You said: what is this?\n", out)
}

func TestAskCommandBlankMessage(t *testing.T) {
	srv, ts := newMockBackend(t, config.MockConfig{})

	out, _, err := execute(t, "", "ask", "--endpoint", ts.URL, "   ")
	require.NoError(t, err)

	assert.Empty(t, out)
	assert.Zero(t, srv.Responder.Served())
}

func TestAskCommandBackendDown(t *testing.T) {
	_, ts := newMockBackend(t, config.MockConfig{})
	url := ts.URL
	ts.Close()

	out, _, err := execute(t, "", "ask", "--endpoint", url, "Hello")
	require.Error(t, err)

	assert.Empty(t, out)
	assert.True(t, errors.Is(err, errUtils.ErrAskFailed))
	assert.Contains(t, errUtils.Format(err), "hint:")
}

func TestInvalidEndpoint(t *testing.T) {
	_, _, err := execute(t, "", "ask", "--endpoint", "localhost:5000", "Hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrInvalidEndpoint))
}

func TestInvalidInFlightPolicy(t *testing.T) {
	_, _, err := execute(t, "", "ask", "--in-flight", "queue", "Hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrInvalidPolicy))
}

func TestInvalidLogLevel(t *testing.T) {
	_, _, err := execute(t, "", "ask", "--log-level", "loud", "Hello")

	require.Error(t, err)
	assert.True(t, errors.Is(err, errUtils.ErrInvalidLogLevel))
}

func TestReplCommand(t *testing.T) {
	srv, ts := newMockBackend(t, config.MockConfig{})

	out, _, err := execute(t, "Hello\n\nexit\nnot sent\n", "repl", "--endpoint", ts.URL)
	require.NoError(t, err)

	assert.Contains(t, out, "You: Hello\n")
	assert.Contains(t, out, "Bot: You said: Hello\n")
	assert.NotContains(t, out, "not sent")
	assert.Equal(t, 1, srv.Responder.Served())
}

func TestEnvironmentEndpoint(t *testing.T) {
	_, ts := newMockBackend(t, config.MockConfig{Answer: "from env"})
	t.Setenv("ASKCHAT_ENDPOINT", ts.URL)

	out, _, err := execute(t, "", "ask", "Hello")
	require.NoError(t, err)

	assert.Equal(t, "from env\n", out)
}

func TestAskCommandTranscript(t *testing.T) {
	_, ts := newMockBackend(t, config.MockConfig{Answer: "Paris"})

	out, _, err := execute(t, "", "ask", "--endpoint", ts.URL, "--transcript", "Capital", "of", "France?")
	require.NoError(t, err)

	assert.Equal(t, "You: Capital of France?\nBot: Paris\n", out)
}

func TestReplCommandPrompt(t *testing.T) {
	_, ts := newMockBackend(t, config.MockConfig{Answer: "pong"})

	out, _, err := execute(t, "ping\nquit\n", "repl", "--endpoint", ts.URL, "--prompt", "you> ")
	require.NoError(t, err)

	assert.Contains(t, out, "you> You: ping\n")
	assert.NotContains(t, out, "\n> ")
}

func TestLogFileClosedAfterFailedCommand(t *testing.T) {
	_, ts := newMockBackend(t, config.MockConfig{})
	url := ts.URL
	ts.Close()

	logFile := filepath.Join(t.TempDir(), "askchat.log")
	a := &app{v: config.New()}
	root := newRootCmd(a)
	root.SetArgs([]string{"ask", "--endpoint", url, "--log-level", "debug", "--log-file", logFile, "Hello"})
	root.SetOut(io.Discard)
	root.SetErr(io.Discard)

	err := root.ExecuteContext(context.Background())
	require.Error(t, err)

	f, ok := a.logClose.(*os.File)
	require.True(t, ok, "log file should still be open after RunE failed")

	require.NoError(t, a.close())
	assert.ErrorIs(t, f.Close(), os.ErrClosed)
	assert.NoError(t, a.close())

	raw, err := os.ReadFile(logFile)
	require.NoError(t, err)
	assert.Contains(t, string(raw), "request_id")
}
