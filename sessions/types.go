package sessions

import (
	"context"
	"errors"
	"log"
	"sync"

	"github.com/gorilla/websocket"

	"carebridge-backend/stores"
)

// SessionError represents errors that occur during a chat session.
type SessionError struct {
	Message string
	Fatal   bool
}

func (e *SessionError) Error() string {
	return e.Message
}

// StreamModel is the model capability a chat session needs: stream a reply
// given a system prompt, prior turns, and the current user message.
type StreamModel interface {
	StreamGenerate(ctx context.Context, system string, history []stores.Turn, message string) (<-chan string, <-chan error)
}

// StreamWriter delivers response chunks to a client over some transport.
type StreamWriter interface {
	WriteChunk(text string) error
	WriteError(err error) error
	Flush()
}

// ChatSession ties one conversation to the model and the store. It owns the
// relay: forward chunks as they arrive, accumulate them, and persist the
// assistant turn once the stream completes.
type ChatSession struct {
	SessionID    string
	Model        StreamModel
	Store        stores.ConversationStore
	SystemPrompt string
	Logger       *log.Logger
}

// WebSocketWriter serializes frame writes to a single connection.
type WebSocketWriter struct {
	Conn   *websocket.Conn
	Logger *log.Logger
	mu     sync.Mutex
}

func (w *WebSocketWriter) WriteChunk(text string) error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"type": "chunk", "content": text})
}

// WriteError sends a client-safe error frame. SessionError messages are
// written as-is; anything else is logged server-side and replaced with a
// fixed generic message so upstream detail never reaches the client.
func (w *WebSocketWriter) WriteError(err error) error {
	message := "Failed to process message"
	var sessErr *SessionError
	if errors.As(err, &sessErr) {
		message = sessErr.Message
	} else if w.Logger != nil {
		w.Logger.Printf("Stream error: %v", err)
	}

	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"type": "error", "error": message})
}

func (w *WebSocketWriter) WriteDone() error {
	w.mu.Lock()
	defer w.mu.Unlock()
	return w.Conn.WriteJSON(map[string]string{"type": "done"})
}

// Flush is a no-op; websocket frames are not buffered by us.
func (w *WebSocketWriter) Flush() {}
