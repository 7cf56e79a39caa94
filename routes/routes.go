// Package routes wires the HTTP surface: analysis endpoints, document
// endpoints, the telemedicine chat, and the records passthrough.
package routes

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"carebridge-backend/models/gemini"
	"carebridge-backend/records"
	"carebridge-backend/sessions"
	"carebridge-backend/stores"
)

// Model is everything the handlers need from the inference layer.
type Model interface {
	Generate(ctx context.Context, p gemini.Prompt, schema *gemini.Schema) ([]byte, error)
	GenerateText(ctx context.Context, p gemini.Prompt) (string, error)
	TranscribeAudio(ctx context.Context, data []byte, mimeType, instruction string) (string, error)
	sessions.StreamModel
}

// Handlers holds the dependencies shared by all routes. Records is optional;
// without it the records endpoints are not registered.
type Handlers struct {
	Model   Model
	Store   stores.ConversationStore
	Records *records.Client
	Logger  *log.Logger
}

// Register mounts all routes on the engine.
func Register(r *gin.Engine, h *Handlers) {
	r.GET("/healthz", h.Healthz)
	r.GET("/readyz", h.Readyz)

	api := r.Group("/api")
	{
		api.POST("/symptom-analysis", h.SymptomAnalysis)
		api.POST("/disease-detection", h.DiseaseDetection)
		api.POST("/drug-interaction", h.DrugInteraction)
		api.POST("/health-risk", h.HealthRisk)
		api.POST("/summarize-report", h.SummarizeReport)
		api.POST("/transcribe", h.Transcribe)

		api.POST("/telemedicine", h.TelemedicineChat)
		api.GET("/telemedicine/history/:sessionId", h.TelemedicineHistory)
		api.DELETE("/telemedicine/:sessionId", h.TelemedicineEnd)
		api.GET("/telemedicine/ws", h.TelemedicineWS)

		if h.Records != nil {
			api.GET("/patients", h.ListPatients)
			api.POST("/patients", h.CreatePatient)
			api.GET("/patients/:id", h.GetPatient)
			api.PUT("/patients/:id", h.UpdatePatient)
			api.DELETE("/patients/:id", h.DeletePatient)

			api.GET("/doctors", h.ListDoctors)
			api.POST("/doctors", h.CreateDoctor)
			api.GET("/doctors/:id", h.GetDoctor)

			api.GET("/appointments", h.ListAppointments)
			api.POST("/appointments", h.CreateAppointment)

			api.GET("/consultations", h.ListConsultations)
			api.POST("/consultations", h.CreateConsultation)
		}
	}
}

// Healthz reports process liveness.
func (h *Handlers) Healthz(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}

// Readyz reports readiness, including the conversation store connection.
func (h *Handlers) Readyz(c *gin.Context) {
	if err := h.Store.Ping(c.Request.Context()); err != nil {
		h.Logger.Printf("Readiness check failed: %v", err)
		c.JSON(http.StatusServiceUnavailable, gin.H{"status": "unavailable"})
		return
	}
	c.JSON(http.StatusOK, gin.H{"status": "ok"})
}
