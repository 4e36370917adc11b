package client

import (
	"net/http"

	"github.com/charmbracelet/log"
	"github.com/google/uuid"
)

// HeaderRequestID vai em toda requisição para casar os logs do backend com
// os do cliente.
const HeaderRequestID = "X-Request-Id"

// RequestIDTransport adiciona um request ID novo às requisições HTTP
type RequestIDTransport struct {
	Base   http.RoundTripper
	Logger *log.Logger
}

func (t *RequestIDTransport) RoundTrip(req *http.Request) (*http.Response, error) {
	// Clonar a requisição para não modificar a original
	reqCopy := req.Clone(req.Context())

	id := reqCopy.Header.Get(HeaderRequestID)
	if id == "" {
		id = uuid.NewString()
		reqCopy.Header.Set(HeaderRequestID, id)
	}

	if t.Logger != nil {
		t.Logger.Debug("sending request", "method", reqCopy.Method, "url", reqCopy.URL.String(), "request_id", id)
	}

	base := t.Base
	if base == nil {
		base = http.DefaultTransport
	}
	return base.RoundTrip(reqCopy)
}
