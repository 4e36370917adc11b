package errors

import (
	"fmt"
	"strings"

	"github.com/cockroachdb/errors"
)

// Format renderiza err para o terminal: a mensagem na primeira linha e depois
// as dicas anexadas em qualquer ponto da cadeia.
func Format(err error) string {
	if err == nil {
		return ""
	}

	var b strings.Builder
	fmt.Fprintf(&b, "Error: %s", err.Error())

	for _, hint := range errors.GetAllHints(err) {
		fmt.Fprintf(&b, "\n  hint: %s", hint)
	}

	return b.String()
}

// WithHintf anexa uma dica formatada a err. Um err nil continua nil.
func WithHintf(err error, format string, args ...interface{}) error {
	if err == nil {
		return nil
	}
	return errors.WithHint(err, fmt.Sprintf(format, args...))
}
