package handler

import (
	"net/http"

	"github.com/go-chi/chi/v5/middleware"
	jsoniter "github.com/json-iterator/go"

	"github.com/vitormoschetta/go-askchat/internal/model"
	"github.com/vitormoschetta/go-askchat/internal/server"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// Handler contém as dependências dos handlers HTTP do backend mock
type Handler struct {
	server *server.Server
}

// NewHandler cria uma nova instância do handler
func NewHandler(srv *server.Server) *Handler {
	return &Handler{
		server: srv,
	}
}

// HandleRoot retorna informações do serviço
func (h *Handler) HandleRoot(w http.ResponseWriter, r *http.Request) {
	writeJSON(w, http.StatusOK, map[string]interface{}{
		"service": "askchat mock backend",
		"endpoints": map[string]interface{}{
			"ask": map[string]interface{}{
				"path":   h.server.AskPath,
				"method": http.MethodPost,
				"example": model.AskRequest{
					Message: "Hello",
				},
			},
			"health": map[string]interface{}{
				"path":   "/health",
				"method": http.MethodGet,
			},
		},
	})
}

// HandleHealth é o health check
func (h *Handler) HandleHealth(w http.ResponseWriter, r *http.Request) {
	w.WriteHeader(http.StatusOK)
	if _, err := w.Write([]byte("OK")); err != nil {
		h.server.Logger.Warn("failed to write health response", "err", err)
	}
}

// HandleAsk responde uma mensagem
func (h *Handler) HandleAsk(w http.ResponseWriter, r *http.Request) {
	defer r.Body.Close()

	reqID := middleware.GetReqID(r.Context())

	var req model.AskRequest
	if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
		h.server.Logger.Warn("invalid ask request", "request_id", reqID, "err", err)
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "invalid JSON body"})
		return
	}

	if req.Message == "" {
		writeJSON(w, http.StatusBadRequest, model.ErrorResponse{Error: "message is required"})
		return
	}

	answer, err := h.server.Responder.Answer(r.Context(), req.Message)
	if err != nil {
		h.server.Logger.Warn("ask abandoned", "request_id", reqID, "err", err)
		writeJSON(w, http.StatusServiceUnavailable, model.ErrorResponse{Error: "request cancelled"})
		return
	}

	h.server.Logger.Debug("answered", "request_id", reqID, "message_len", len(req.Message))
	writeJSON(w, http.StatusOK, model.AskResponse{Answer: answer})
}

func writeJSON(w http.ResponseWriter, status int, v interface{}) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	_ = json.NewEncoder(w).Encode(v)
}
