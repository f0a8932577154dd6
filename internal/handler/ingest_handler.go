package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailtriage/internal/service/ingest"
)

type IngestHandler struct {
	ingestService *ingest.Service
	logger        *zap.Logger
}

func NewIngestHandler(ingestService *ingest.Service, logger *zap.Logger) *IngestHandler {
	return &IngestHandler{
		ingestService: ingestService,
		logger:        logger,
	}
}

type simulateEmailRequest struct {
	Sender  string `json:"sender" binding:"required"`
	Subject string `json:"subject"`
	Body    string `json:"body" binding:"required"`
}

// SimulateNewEmail stores a raw inbound email and publishes email.received.
// POST /email/simulate
func (h *IngestHandler) SimulateNewEmail(c *gin.Context) {
	var req simulateEmailRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	emailID, err := h.ingestService.CreateRawAndPublish(c.Request.Context(), req.Sender, req.Subject, req.Body)
	if err != nil {
		h.logger.Error("Failed to ingest email",
			zap.String("sender", req.Sender),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to ingest email"})
		return
	}

	c.JSON(http.StatusAccepted, gin.H{
		"email_id": emailID,
		"status":   "received",
	})
}
