package chat

const (
	RoleSystem    = "system"
	RoleUser      = "user"
	RoleAssistant = "assistant"
)

// Message represents a single role-tagged instruction unit. An ordered
// slice of Messages is the input to one LLM call. The shape matches the
// chat-completions message format used by OpenAI-compatible providers.
type Message struct {
	Role    string `json:"role"` // "system", "user", "assistant"
	Content string `json:"content"`
}

// Response represents the normalized result of one LLM call, as returned
// by the gateway adapter regardless of provider.
type Response struct {
	Message string `json:"message,omitempty"`
	Model   string `json:"model,omitempty"`
}

// System builds a system message.
func System(content string) Message {
	return Message{Role: RoleSystem, Content: content}
}

// User builds a user message.
func User(content string) Message {
	return Message{Role: RoleUser, Content: content}
}

// Assistant builds an assistant message.
func Assistant(content string) Message {
	return Message{Role: RoleAssistant, Content: content}
}

// NormalizeRole maps unknown or empty roles to "user" so that
// client-supplied conversation history can never produce an invalid
// message sequence. Known roles pass through unchanged.
func NormalizeRole(role string) string {
	switch role {
	case RoleSystem, RoleUser, RoleAssistant:
		return role
	}
	return RoleUser
}
