package api

// Role identifies the author of a chat message.
type Role string

const (
	RoleSystem    Role = "system"
	RoleUser      Role = "user"
	RoleAssistant Role = "assistant"
)

// Message is a single entry in the conversation history. Ordering is
// meaningful and preserved; the caller supplies the full history on every
// call — there is no server-side session state.
type Message struct {
	Role    Role   `json:"role"`
	Content string `json:"content"`
}
