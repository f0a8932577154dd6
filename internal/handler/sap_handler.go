package handler

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"

	"mailtriage/internal/service/sap"
)

type SAPHandler struct {
	lookup *sap.Lookup
	logger *zap.Logger
}

func NewSAPHandler(lookup *sap.Lookup, logger *zap.Logger) *SAPHandler {
	return &SAPHandler{
		lookup: lookup,
		logger: logger,
	}
}

type seedRequest struct {
	SAPIDs []string `json:"sap_ids" binding:"required"`
}

// Seed upserts SAP customer accounts used by the existence check.
// POST /admin/sap/seed
func (h *SAPHandler) Seed(c *gin.Context) {
	var req seedRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
		return
	}

	total, err := h.lookup.Seed(c.Request.Context(), req.SAPIDs)
	if err != nil {
		h.logger.Error("Failed to seed SAP customers", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to seed SAP customers"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":         "seeded",
		"total_accounts": total,
	})
}
