package main

import (
	"context"
	"fmt"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"

	"github.com/vodworks/audio-service/pkg/models"
)

// Pipeline is what the HTTP layer needs from the service core.
type Pipeline interface {
	ProbeAudio(ctx context.Context, req models.ProbeRequest) models.ProbeResponse
	ExtractAudio(ctx context.Context, req models.ExtractAudioRequest) models.ExtractAudioResponse
	TranscribeAudio(ctx context.Context, req models.TranscribeAudioRequest) models.TranscribeAudioResponse
}

// API holds the handler dependencies.
//
// Every endpoint answers HTTP 200 and signals failure through the body's
// `success` field alone. Existing callers inspect the body, not the status
// code, so this contract must not change without versioning the API.
type API struct {
	pipeline Pipeline
}

// Liveness stub
func (api *API) root(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"Hello": "World"})
}

// Echo stub kept for compatibility with the original service surface.
func (api *API) readItem(c *gin.Context) {
	id, err := strconv.Atoi(c.Param("id"))
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "item id must be an integer"})
		return
	}

	var q interface{}
	if v, ok := c.GetQuery("q"); ok {
		q = v
	}
	c.JSON(http.StatusOK, gin.H{"item_id": id, "q": q})
}

// Probe endpoint
func (api *API) probeAudio(c *gin.Context) {
	var req models.ProbeRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.ProbeResponse{Error: bindError(err)})
		return
	}

	c.JSON(http.StatusOK, api.pipeline.ProbeAudio(c.Request.Context(), req))
}

// Extract endpoint
func (api *API) extractAudio(c *gin.Context) {
	var req models.ExtractAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.ExtractAudioResponse{Error: bindError(err)})
		return
	}

	c.JSON(http.StatusOK, api.pipeline.ExtractAudio(c.Request.Context(), req))
}

// Transcribe endpoint
func (api *API) transcribeAudio(c *gin.Context) {
	var req models.TranscribeAudioRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusOK, models.TranscribeAudioResponse{Error: bindError(err)})
		return
	}

	c.JSON(http.StatusOK, api.pipeline.TranscribeAudio(c.Request.Context(), req))
}

func bindError(err error) string {
	return fmt.Sprintf("validation failed: %v", err)
}
