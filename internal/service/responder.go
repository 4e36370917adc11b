package service

import (
	"context"
	"sync"
	"time"
)

// Responder gera as respostas do backend mock. Usa um texto fixo quando
// configurado e, caso contrário, ecoa a mensagem.
type Responder struct {
	answer  string
	latency time.Duration

	mu     sync.Mutex
	served int
}

func NewResponder(answer string, latency time.Duration) *Responder {
	return &Responder{
		answer:  answer,
		latency: latency,
	}
}

// Answer espera a latência configurada e retorna a resposta para message.
func (r *Responder) Answer(ctx context.Context, message string) (string, error) {
	if r.latency > 0 {
		timer := time.NewTimer(r.latency)
		defer timer.Stop()

		select {
		case <-timer.C:
		case <-ctx.Done():
			return "", ctx.Err()
		}
	}

	r.mu.Lock()
	r.served++
	r.mu.Unlock()

	if r.answer != "" {
		return r.answer, nil
	}
	return "You said: " + message, nil
}

// Served é o número de respostas devolvidas até agora.
func (r *Responder) Served() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.served
}
