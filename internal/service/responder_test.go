package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestResponderEcho(t *testing.T) {
	r := NewResponder("", 0)

	answer, err := r.Answer(context.Background(), "Hello")
	require.NoError(t, err)
	assert.Equal(t, "You said: Hello", answer)
	assert.Equal(t, 1, r.Served())
}

func TestResponderFixedAnswer(t *testing.T) {
	r := NewResponder("Hi there!", 0)

	for _, msg := range []string{"Hello", "anything"} {
		answer, err := r.Answer(context.Background(), msg)
		require.NoError(t, err)
		assert.Equal(t, "Hi there!", answer)
	}
	assert.Equal(t, 2, r.Served())
}

func TestResponderLatencyHonoursContext(t *testing.T) {
	r := NewResponder("slow", time.Hour)

	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Millisecond)
	defer cancel()

	_, err := r.Answer(ctx, "Hello")
	assert.ErrorIs(t, err, context.DeadlineExceeded)
	assert.Zero(t, r.Served())
}

func TestResponderLatency(t *testing.T) {
	r := NewResponder("", 20*time.Millisecond)

	start := time.Now()
	_, err := r.Answer(context.Background(), "Hello")
	require.NoError(t, err)
	assert.GreaterOrEqual(t, time.Since(start), 20*time.Millisecond)
}
