package sessions

import (
	"fmt"
	"log"
	"os"

	"github.com/gorilla/websocket"

	"carebridge-backend/stores"
)

// NewChatSession creates a session for one conversation.
func NewChatSession(sessionID string, model StreamModel, store stores.ConversationStore, systemPrompt string) *ChatSession {
	logger := log.New(os.Stdout, fmt.Sprintf("[CHAT %s] ", sessionID), log.LstdFlags)

	return &ChatSession{
		SessionID:    sessionID,
		Model:        model,
		Store:        store,
		SystemPrompt: systemPrompt,
		Logger:       logger,
	}
}

// NewWebSocketSession creates a session bound to a websocket connection.
func NewWebSocketSession(sessionID string, conn *websocket.Conn, model StreamModel, store stores.ConversationStore, systemPrompt string) *WebSocketSession {
	logger := log.New(os.Stdout, fmt.Sprintf("[WS %s] ", sessionID), log.LstdFlags)

	return &WebSocketSession{
		Session: &ChatSession{
			SessionID:    sessionID,
			Model:        model,
			Store:        store,
			SystemPrompt: systemPrompt,
			Logger:       logger,
		},
		Writer: &WebSocketWriter{Conn: conn, Logger: logger},
		Logger: logger,
	}
}
