// Package client conversa com o endpoint de ask do backend.
package client

import (
	"bytes"
	"context"
	"io"
	"net/http"
	"net/url"
	"time"

	"github.com/charmbracelet/log"
	"github.com/cockroachdb/errors"
	jsoniter "github.com/json-iterator/go"

	errUtils "github.com/vitormoschetta/go-askchat/internal/errors"
	"github.com/vitormoschetta/go-askchat/internal/model"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const (
	DefaultPath = "/ask"

	contentTypeJSON = "application/json"
)

// Option configura um Client.
type Option func(*Client)

// WithPath define o caminho do endpoint somado à URL base.
func WithPath(path string) Option {
	return func(c *Client) {
		if path != "" {
			c.path = path
		}
	}
}

// WithHTTPClient usa hc nas requisições. O transport dele é envolvido, não substituído.
func WithHTTPClient(hc *http.Client) Option {
	return func(c *Client) {
		if hc != nil {
			c.httpClient = hc
		}
	}
}

// WithTransport define o transport base abaixo do transport de request ID.
func WithTransport(rt http.RoundTripper) Option {
	return func(c *Client) {
		c.transport = rt
	}
}

func WithLogger(logger *log.Logger) Option {
	return func(c *Client) {
		if logger != nil {
			c.logger = logger
		}
	}
}

// Client envia mensagens ao endpoint de ask e retorna as respostas.
// Não tem timeout nem retry; só o contexto de quem chama abandona uma
// requisição.
type Client struct {
	base       *url.URL
	path       string
	endpoint   string
	httpClient *http.Client
	transport  http.RoundTripper
	logger     *log.Logger
}

// New valida baseURL e cria um Client para ela.
func New(baseURL string, opts ...Option) (*Client, error) {
	base, err := parseBaseURL(baseURL)
	if err != nil {
		return nil, err
	}

	c := &Client{
		base:       base,
		path:       DefaultPath,
		httpClient: &http.Client{},
		logger:     log.Default(),
	}
	for _, opt := range opts {
		opt(c)
	}

	transport := c.transport
	if transport == nil {
		transport = c.httpClient.Transport
	}

	hc := *c.httpClient
	hc.Transport = &RequestIDTransport{Base: transport, Logger: c.logger}
	c.httpClient = &hc

	c.endpoint = base.JoinPath(c.path).String()

	return c, nil
}

func parseBaseURL(raw string) (*url.URL, error) {
	u, err := url.Parse(raw)
	if err != nil {
		return nil, errUtils.WithHintf(
			errors.Mark(errors.Wrapf(err, "parse endpoint %q", raw), errUtils.ErrInvalidEndpoint),
			"use an absolute URL such as http://localhost:5000")
	}
	if (u.Scheme != "http" && u.Scheme != "https") || u.Host == "" {
		return nil, errUtils.WithHintf(
			errors.Wrapf(errUtils.ErrInvalidEndpoint, "%q", raw),
			"use an absolute URL such as http://localhost:5000")
	}
	return u, nil
}

// Endpoint é a URL completa que recebe os POSTs.
func (c *Client) Endpoint() string {
	return c.endpoint
}

// Ask envia message e retorna o campo answer da resposta.
func (c *Client) Ask(ctx context.Context, message string) (string, error) {
	body, err := json.Marshal(model.AskRequest{Message: message})
	if err != nil {
		return "", errors.Wrap(err, "encode ask request")
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.endpoint, bytes.NewReader(body))
	if err != nil {
		return "", errors.Mark(errors.Wrap(err, "build ask request"), errUtils.ErrAskFailed)
	}
	req.Header.Set("Content-Type", contentTypeJSON)
	req.Header.Set("Accept", contentTypeJSON)

	start := time.Now()
	resp, err := c.httpClient.Do(req)
	if err != nil {
		return "", errUtils.WithHintf(
			errors.Mark(errors.Wrapf(err, "POST %s", c.endpoint), errUtils.ErrAskFailed),
			"check that the backend at %s is running", c.base.String())
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return "", errors.Mark(errors.Wrapf(err, "read response from %s", c.endpoint), errUtils.ErrAskFailed)
	}

	c.logger.Debug("ask answered", "url", c.endpoint, "status", resp.StatusCode, "bytes", len(raw), "elapsed", time.Since(start))

	if resp.StatusCode < http.StatusOK || resp.StatusCode >= http.StatusMultipleChoices {
		return "", errUtils.WithHintf(
			errors.Mark(errors.Newf("POST %s: status %d", c.endpoint, resp.StatusCode), errUtils.ErrUnexpectedStatus),
			"the backend rejected the request; check its logs")
	}

	return decodeAnswer(raw)
}

func decodeAnswer(raw []byte) (string, error) {
	var payload struct {
		Answer *string `json:"answer"`
	}
	if err := json.Unmarshal(raw, &payload); err != nil {
		return "", errors.Mark(errors.Wrap(err, "decode ask response"), errUtils.ErrMalformedResponse)
	}
	if payload.Answer == nil {
		return "", errUtils.ErrMissingAnswer
	}
	return *payload.Answer, nil
}
