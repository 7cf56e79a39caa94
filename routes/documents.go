package routes

import (
	"encoding/base64"
	"io"
	"mime/multipart"
	"net/http"

	"github.com/gin-gonic/gin"

	"carebridge-backend/models/gemini"
	"carebridge-backend/prompts"
)

// SummarizeReport extracts a structured summary from an uploaded report image.
func (h *Handlers) SummarizeReport(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file provided")
		return
	}

	data, mimeType, err := readUpload(file, "image/jpeg")
	if err != nil {
		h.fail(c, err, "Failed to summarize report")
		return
	}

	prompt := prompts.SummarizeReport(mimeType, base64.StdEncoding.EncodeToString(data))
	text, err := h.Model.GenerateText(c.Request.Context(), prompt)
	if err != nil {
		h.fail(c, err, "Failed to summarize report")
		return
	}

	raw, err := gemini.ExtractJSONObject(text)
	if err != nil {
		h.fail(c, err, "Failed to summarize report")
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

// Transcribe turns an uploaded consultation recording into clinical notes.
func (h *Handlers) Transcribe(c *gin.Context) {
	file, err := c.FormFile("file")
	if err != nil {
		badRequest(c, "No file provided")
		return
	}

	data, mimeType, err := readUpload(file, "audio/webm")
	if err != nil {
		h.fail(c, err, "Failed to transcribe audio")
		return
	}

	text, err := h.Model.TranscribeAudio(c.Request.Context(), data, mimeType, prompts.ClinicalNotes())
	if err != nil {
		h.fail(c, err, "Failed to transcribe audio")
		return
	}

	raw, err := gemini.ExtractJSONObject(text)
	if err != nil {
		h.fail(c, err, "Failed to transcribe audio")
		return
	}
	c.Data(http.StatusOK, "application/json", raw)
}

func readUpload(file *multipart.FileHeader, defaultMIME string) ([]byte, string, error) {
	f, err := file.Open()
	if err != nil {
		return nil, "", err
	}
	defer f.Close()

	data, err := io.ReadAll(f)
	if err != nil {
		return nil, "", err
	}

	mimeType := file.Header.Get("Content-Type")
	if mimeType == "" {
		mimeType = defaultMIME
	}
	return data, mimeType, nil
}
