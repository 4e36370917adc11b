// Package errors reúne os erros sentinela do askchat e as funções que os
// imprimem na linha de comando.
package errors

import (
	"github.com/cockroachdb/errors"
)

var (
	// ErrAskFailed indica que a requisição /ask não foi enviada ou que o corpo não pôde ser lido.
	ErrAskFailed = errors.New("ask request failed")
	// ErrUnexpectedStatus indica que o backend respondeu com status fora de 2xx.
	ErrUnexpectedStatus = errors.New("unexpected response status")
	// ErrMalformedResponse indica que o corpo da resposta não é um JSON válido.
	ErrMalformedResponse = errors.New("malformed response body")
	// ErrMissingAnswer indica que o JSON da resposta não tem o campo answer.
	ErrMissingAnswer = errors.New("response has no answer")
	// ErrInvalidEndpoint indica uma URL base que não é absoluta em http(s).
	ErrInvalidEndpoint = errors.New("invalid endpoint")

	ErrExchangeInFlight = errors.New("an exchange is already in flight")

	ErrInvalidLogLevel = errors.New("invalid log level")
	ErrInvalidPolicy   = errors.New("invalid in-flight policy")
)
