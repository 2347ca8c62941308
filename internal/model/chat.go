package model

import "github.com/google/uuid"

type Sender string

const (
	SenderUser   = Sender("user")
	SenderBot    = Sender("bot")
	SenderSystem = Sender("system")
)

// ChatMessage is a single entry of a demo's transcript. Transcripts are
// append-only within a session and cleared on reset.
type ChatMessage struct {
	ID     uuid.UUID
	Sender Sender
	Text   string
	Image  *Image
}

// Role of a model-visible dialogue turn.
type Role string

const (
	RoleUser  = Role("user")
	RoleModel = Role("model")
)

// Turn is one entry of the model-visible history passed back to the AI
// service for context continuity. System status messages are never turns.
type Turn struct {
	Role Role
	Text string
}
