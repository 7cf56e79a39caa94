package sessions

import (
	"context"
	"log"

	"github.com/gorilla/websocket"
)

// WebSocketSession runs a consultation over a websocket connection. Each
// inbound message produces a stream of chunk frames followed by a done frame.
type WebSocketSession struct {
	Session *ChatSession
	Writer  *WebSocketWriter
	Logger  *log.Logger
}

type wsInbound struct {
	Message        string         `json:"message"`
	PatientContext map[string]any `json:"patientContext,omitempty"`
}

// Run reads messages until the connection closes or ctx is cancelled.
func (ws *WebSocketSession) Run(ctx context.Context) {
	defer func() {
		if err := ws.Writer.Conn.Close(); err != nil {
			ws.Logger.Printf("Error closing connection: %v", err)
		}
	}()

	for {
		var inbound wsInbound
		if err := ws.Writer.Conn.ReadJSON(&inbound); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				ws.Logger.Printf("Unexpected close: %v", err)
			}
			return
		}

		if inbound.Message == "" {
			if err := ws.Writer.WriteError(&SessionError{Message: "Message is required"}); err != nil {
				ws.Logger.Printf("Error writing validation error: %v", err)
				return
			}
			continue
		}

		if err := ws.Session.RunStreamToWriter(ctx, inbound.Message, inbound.PatientContext, ws.Writer); err != nil {
			ws.Logger.Printf("Stream interaction failed: %v", err)
			if ctx.Err() != nil {
				return
			}
			continue
		}

		if err := ws.Writer.WriteDone(); err != nil {
			ws.Logger.Printf("Error writing done frame: %v", err)
			return
		}
	}
}
