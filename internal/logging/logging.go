// Package logging cria o logger do charmbracelet usado pelos comandos do askchat.
package logging

import (
	"io"
	"os"
	"strings"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"

	errUtils "github.com/vitormoschetta/go-askchat/internal/errors"
)

const logFilePerm = 0o644

// ParseLevel aceita debug, info, warn (ou warning) e error.
func ParseLevel(level string) (log.Level, error) {
	switch strings.ToLower(strings.TrimSpace(level)) {
	case "", "info":
		return log.InfoLevel, nil
	case "debug":
		return log.DebugLevel, nil
	case "warn", "warning":
		return log.WarnLevel, nil
	case "error":
		return log.ErrorLevel, nil
	default:
		return log.InfoLevel, errors.Wrapf(errUtils.ErrInvalidLogLevel, "%q", level)
	}
}

// New retorna um logger que escreve em w no nível indicado.
func New(w io.Writer, level log.Level) *log.Logger {
	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: true,
		Prefix:          "askchat",
	})
}

// Open cria um logger a partir do nome do nível e de um arquivo opcional. Sem
// arquivo, o logger escreve em fallback. O closer retornado libera o arquivo.
func Open(level, file string, fallback io.Writer) (*log.Logger, io.Closer, error) {
	lvl, err := ParseLevel(level)
	if err != nil {
		return nil, nil, errUtils.WithHintf(err, "supported levels are debug, info, warn, error")
	}

	if file == "" {
		return New(fallback, lvl), nopCloser{}, nil
	}

	f, err := os.OpenFile(file, os.O_WRONLY|os.O_APPEND|os.O_CREATE, logFilePerm)
	if err != nil {
		return nil, nil, errors.Wrapf(err, "open log file %s", file)
	}
	return New(f, lvl), f, nil
}

// Discard retorna um logger que descarta tudo. Útil nos testes.
func Discard() *log.Logger {
	return log.New(io.Discard)
}

type nopCloser struct{}

func (nopCloser) Close() error { return nil }
