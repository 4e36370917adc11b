package model

// Role identifica quem escreveu uma entrada do histórico
type Role string

const (
	RoleUser Role = "user"
	RoleBot  Role = "bot"
)

// ChatMessage representa uma entrada do histórico. Não é alterada depois de criada.
type ChatMessage struct {
	Role Role
	Text string
}

// UserMessage cria a entrada para o texto digitado pelo usuário
func UserMessage(text string) ChatMessage {
	return ChatMessage{Role: RoleUser, Text: text}
}

// BotMessage cria a entrada para a resposta devolvida pelo backend
func BotMessage(text string) ChatMessage {
	return ChatMessage{Role: RoleBot, Text: text}
}

// AskRequest representa a requisição para o endpoint de ask
type AskRequest struct {
	Message string `json:"message"`
}

// AskResponse representa a resposta do endpoint de ask
type AskResponse struct {
	Answer string `json:"answer"`
}

// ErrorResponse representa o erro devolvido pelo backend mock
type ErrorResponse struct {
	Error string `json:"error"`
}
