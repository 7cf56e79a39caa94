package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/google/uuid"
	"github.com/gorilla/websocket"

	"carebridge-backend/models"
	"carebridge-backend/prompts"
	"carebridge-backend/sessions"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	CheckOrigin:     func(r *http.Request) bool { return true },
}

// ginStreamWriter streams plain-text chunks over a chunked HTTP response.
// Errors surfaced after the first chunk cannot change the status line, so
// WriteError leaves delivery to the caller.
type ginStreamWriter struct {
	c     *gin.Context
	wrote bool
}

func (w *ginStreamWriter) WriteChunk(text string) error {
	if !w.wrote {
		w.c.Header("Content-Type", "text/plain; charset=utf-8")
		w.c.Header("Transfer-Encoding", "chunked")
		w.c.Status(http.StatusOK)
		w.wrote = true
	}
	_, err := w.c.Writer.WriteString(text)
	return err
}

func (w *ginStreamWriter) WriteError(err error) error { return nil }

func (w *ginStreamWriter) Flush() {
	w.c.Writer.Flush()
}

// TelemedicineChat streams a consultation reply. The response body is the
// assistant's text, delivered incrementally.
func (h *Handlers) TelemedicineChat(c *gin.Context) {
	var req models.TelemedicineRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Message == "" || req.SessionID == "" {
		badRequest(c, "Message and sessionId are required")
		return
	}

	session := sessions.NewChatSession(req.SessionID, h.Model, h.Store, prompts.TelemedicineSystem)
	writer := &ginStreamWriter{c: c}

	if err := session.RunStreamToWriter(c.Request.Context(), req.Message, req.PatientContext, writer); err != nil {
		if writer.wrote {
			// Headers are gone; all we can do is log and cut the stream.
			h.Logger.Printf("Telemedicine stream aborted mid-response: %v", err)
			return
		}
		h.fail(c, err, "Failed to process message")
	}
}

// TelemedicineHistory returns the stored turns for a session.
func (h *Handlers) TelemedicineHistory(c *gin.Context) {
	sessionID := c.Param("sessionId")

	turns, err := h.Store.Get(c.Request.Context(), sessionID)
	if err != nil {
		h.fail(c, err, "Failed to fetch history")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "turns": turns})
}

// TelemedicineEnd removes a session and its history.
func (h *Handlers) TelemedicineEnd(c *gin.Context) {
	sessionID := c.Param("sessionId")

	if err := h.Store.Expire(c.Request.Context(), sessionID); err != nil {
		h.fail(c, err, "Failed to end session")
		return
	}
	c.JSON(http.StatusOK, gin.H{"sessionId": sessionID, "status": "ended"})
}

// TelemedicineWS runs a consultation over a websocket. A missing sessionId
// query parameter gets a fresh one.
func (h *Handlers) TelemedicineWS(c *gin.Context) {
	sessionID := c.Query("sessionId")
	if sessionID == "" {
		sessionID = uuid.NewString()
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		h.Logger.Printf("WebSocket upgrade failed: %v", err)
		return
	}

	ws := sessions.NewWebSocketSession(sessionID, conn, h.Model, h.Store, prompts.TelemedicineSystem)
	ws.Run(c.Request.Context())
}
