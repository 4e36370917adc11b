package chat

import (
	"strings"

	"github.com/cockroachdb/errors"

	errUtils "github.com/vitormoschetta/go-askchat/internal/errors"
)

// Policy decide o que um Send faz enquanto outra troca está em andamento.
type Policy int

const (
	// PolicyReject falha o segundo Send com ErrExchangeInFlight.
	PolicyReject Policy = iota
	// PolicyWait bloqueia o segundo Send até o primeiro terminar.
	PolicyWait
)

func (p Policy) String() string {
	switch p {
	case PolicyReject:
		return "reject"
	case PolicyWait:
		return "wait"
	default:
		return "unknown"
	}
}

func ParsePolicy(s string) (Policy, error) {
	switch strings.ToLower(strings.TrimSpace(s)) {
	case "", "reject":
		return PolicyReject, nil
	case "wait":
		return PolicyWait, nil
	default:
		return PolicyReject, errUtils.WithHintf(
			errors.Wrapf(errUtils.ErrInvalidPolicy, "%q", s),
			"use reject or wait")
	}
}
