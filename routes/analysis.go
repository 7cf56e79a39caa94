package routes

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"carebridge-backend/models"
	"carebridge-backend/models/gemini"
	"carebridge-backend/prompts"
)

// SymptomAnalysis turns a symptom description into a structured diagnosis.
func (h *Handlers) SymptomAnalysis(c *gin.Context) {
	var req models.SymptomAnalysisRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Symptoms == "" {
		badRequest(c, "Symptoms are required")
		return
	}

	raw, err := h.Model.Generate(c.Request.Context(), prompts.SymptomAnalysis(req.Symptoms), prompts.SymptomAnalysisSchema)
	if err != nil {
		h.fail(c, err, "Failed to analyze symptoms")
		return
	}

	result, err := models.Decode[models.SymptomAnalysisResult](raw)
	if err != nil {
		h.fail(c, err, "Failed to analyze symptoms")
		return
	}
	c.JSON(http.StatusOK, result)
}

// DiseaseDetection analyzes a medical image.
func (h *Handlers) DiseaseDetection(c *gin.Context) {
	var req models.DiseaseDetectionRequest
	if err := c.ShouldBindJSON(&req); err != nil || req.Image == "" {
		badRequest(c, "Image is required")
		return
	}

	raw, err := h.Model.Generate(c.Request.Context(), prompts.DiseaseDetection(req.Image, req.ImageType), prompts.DiseaseDetectionSchema)
	if err != nil {
		h.fail(c, err, "Failed to analyze medical image")
		return
	}

	result, err := models.Decode[models.DiseaseDetectionResult](raw)
	if err != nil {
		h.fail(c, err, "Failed to analyze medical image")
		return
	}
	c.JSON(http.StatusOK, result)
}

// DrugInteraction checks a medication list for interactions.
func (h *Handlers) DrugInteraction(c *gin.Context) {
	var req models.DrugInteractionRequest
	if err := c.ShouldBindJSON(&req); err != nil || len(req.Medications) < 2 {
		badRequest(c, "At least 2 medications required")
		return
	}

	raw, err := h.Model.Generate(c.Request.Context(), prompts.DrugInteraction(req.Medications), prompts.DrugInteractionSchema)
	if err != nil {
		h.fail(c, err, "Failed to check drug interactions")
		return
	}

	result, err := models.Decode[models.DrugInteractionResult](raw)
	if err != nil {
		h.fail(c, err, "Failed to check drug interactions")
		return
	}
	c.JSON(http.StatusOK, result)
}

// HealthRisk produces a risk assessment from intake data. The model answers
// in free text; the embedded JSON object is extracted and returned verbatim.
func (h *Handlers) HealthRisk(c *gin.Context) {
	var req models.HealthRiskRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		badRequest(c, "Invalid request body")
		return
	}

	text, err := h.Model.GenerateText(c.Request.Context(), prompts.HealthRisk(&req))
	if err != nil {
		h.fail(c, err, "Failed to calculate health risks")
		return
	}

	raw, err := gemini.ExtractJSONObject(text)
	if err != nil {
		h.fail(c, err, "Failed to calculate health risks")
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}
