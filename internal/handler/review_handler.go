package handler

import (
	"errors"
	"net/http"
	"strconv"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"go.uber.org/zap"

	"mailtriage/internal/repository"
	"mailtriage/internal/service/review"
)

type ReviewHandler struct {
	reviewService *review.Service
	queueRepo     *repository.ReviewQueueRepository
	emailRepo     *repository.EmailRepository
	actionRepo    *repository.ReviewActionRepository
	outgoingRepo  *repository.OutgoingEmailRepository
	logger        *zap.Logger
}

func NewReviewHandler(
	reviewService *review.Service,
	queueRepo *repository.ReviewQueueRepository,
	emailRepo *repository.EmailRepository,
	actionRepo *repository.ReviewActionRepository,
	outgoingRepo *repository.OutgoingEmailRepository,
	logger *zap.Logger,
) *ReviewHandler {
	return &ReviewHandler{
		reviewService: reviewService,
		queueRepo:     queueRepo,
		emailRepo:     emailRepo,
		actionRepo:    actionRepo,
		outgoingRepo:  outgoingRepo,
		logger:        logger,
	}
}

func actorEmail(c *gin.Context) string {
	actor, exists := c.Get("actor_email")
	if !exists {
		return ""
	}
	email, _ := actor.(string)
	return email
}

func limitQuery(c *gin.Context, def int) int {
	limitStr := c.DefaultQuery("limit", strconv.Itoa(def))
	limit, err := strconv.Atoi(limitStr)
	if err != nil || limit <= 0 {
		return def
	}
	return limit
}

// ListPending returns review items awaiting an action, PASS first.
// GET /review/pending?search=xxx&limit=100
func (h *ReviewHandler) ListPending(c *gin.Context) {
	search := c.Query("search")
	limit := limitQuery(c, 100)

	items, err := h.queueRepo.ListPending(c.Request.Context(), search, limit)
	if err != nil {
		h.logger.Error("Failed to list pending review items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list review items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"items": items,
		"count": len(items),
	})
}

// KPIs returns pending counts per validation status.
// GET /review/kpis
func (h *ReviewHandler) KPIs(c *gin.Context) {
	counts, err := h.queueRepo.CountPending(c.Request.Context())
	if err != nil {
		h.logger.Error("Failed to count pending review items", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to count review items"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"total":        counts.Total,
		"pass":         counts.Pass,
		"needs_review": counts.NeedsReview,
		"fail":         counts.Fail,
	})
}

// GetItem returns one review record plus the original email body.
// GET /review/items/:email_id
func (h *ReviewHandler) GetItem(c *gin.Context) {
	emailID := c.Param("email_id")

	rec, err := h.queueRepo.FindByID(c.Request.Context(), emailID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review item not found"})
			return
		}
		h.logger.Error("Failed to load review item",
			zap.String("email_id", emailID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load review item"})
		return
	}

	body, err := h.emailRepo.GetBody(c.Request.Context(), emailID)
	if err != nil && !errors.Is(err, pgx.ErrNoRows) {
		h.logger.Warn("Failed to load original email body",
			zap.String("email_id", emailID),
			zap.Error(err),
		)
	}

	actioned, err := h.actionRepo.HasAction(c.Request.Context(), emailID)
	if err != nil {
		h.logger.Warn("Failed to check action state",
			zap.String("email_id", emailID),
			zap.Error(err),
		)
	}

	c.JSON(http.StatusOK, gin.H{
		"item":          rec,
		"original_body": body,
		"actioned":      actioned,
	})
}

// Approve confirms a PASS item and records the approved change.
// POST /review/items/:email_id/approve
func (h *ReviewHandler) Approve(c *gin.Context) {
	emailID := c.Param("email_id")
	actor := actorEmail(c)

	change, err := h.reviewService.Approve(c.Request.Context(), emailID, actor)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review item not found"})
		case errors.Is(err, review.ErrAlreadyActioned):
			c.JSON(http.StatusConflict, gin.H{"error": "review item already actioned"})
		case errors.Is(err, review.ErrNotApprovable):
			c.JSON(http.StatusUnprocessableEntity, gin.H{"error": "review item is not approvable"})
		default:
			h.logger.Error("Failed to approve review item",
				zap.String("email_id", emailID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to approve"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status": "confirmed",
		"change": change,
	})
}

type followupRequest struct {
	Subject string `json:"subject"`
	Body    string `json:"body"`
}

// SendFollowup queues a follow-up email for an item with invalid fields.
// The generated template is used when subject and body are omitted.
// POST /review/items/:email_id/followup
func (h *ReviewHandler) SendFollowup(c *gin.Context) {
	emailID := c.Param("email_id")
	actor := actorEmail(c)

	var req followupRequest
	if c.Request.ContentLength > 0 {
		if err := c.ShouldBindJSON(&req); err != nil {
			c.JSON(http.StatusBadRequest, gin.H{"error": "invalid request"})
			return
		}
	}

	out, err := h.reviewService.SendFollowup(c.Request.Context(), emailID, actor, req.Subject, req.Body)
	if err != nil {
		switch {
		case errors.Is(err, review.ErrNotFound):
			c.JSON(http.StatusNotFound, gin.H{"error": "review item not found"})
		case errors.Is(err, review.ErrAlreadyActioned):
			c.JSON(http.StatusConflict, gin.H{"error": "review item already actioned"})
		default:
			h.logger.Error("Failed to queue follow-up",
				zap.String("email_id", emailID),
				zap.Error(err),
			)
			c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to queue follow-up"})
		}
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"status":   "followup_sent",
		"outgoing": out,
	})
}

// FollowupPreview returns the generated follow-up without queueing it.
// GET /review/items/:email_id/followup/preview
func (h *ReviewHandler) FollowupPreview(c *gin.Context) {
	emailID := c.Param("email_id")

	fu, err := h.reviewService.FollowupPreview(c.Request.Context(), emailID)
	if err != nil {
		if errors.Is(err, review.ErrNotFound) {
			c.JSON(http.StatusNotFound, gin.H{"error": "review item not found"})
			return
		}
		h.logger.Error("Failed to build follow-up preview",
			zap.String("email_id", emailID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to build preview"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"subject": fu.Subject,
		"body":    fu.Body,
	})
}

// ListActions returns the audit trail, newest first.
// GET /review/actions?limit=100
func (h *ReviewHandler) ListActions(c *gin.Context) {
	limit := limitQuery(c, 100)

	actions, err := h.actionRepo.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list review actions", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list actions"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"actions": actions,
		"count":   len(actions),
	})
}

// ListFollowups returns queued follow-up emails without bodies.
// GET /review/followups?limit=100
func (h *ReviewHandler) ListFollowups(c *gin.Context) {
	limit := limitQuery(c, 100)

	emails, err := h.outgoingRepo.List(c.Request.Context(), limit)
	if err != nil {
		h.logger.Error("Failed to list outgoing emails", zap.Error(err))
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to list follow-ups"})
		return
	}

	c.JSON(http.StatusOK, gin.H{
		"followups": emails,
		"count":     len(emails),
	})
}

// GetFollowup returns the latest queued follow-up for an email, body included.
// GET /review/followups/:email_id
func (h *ReviewHandler) GetFollowup(c *gin.Context) {
	emailID := c.Param("email_id")

	out, err := h.outgoingRepo.FindLatestByEmailID(c.Request.Context(), emailID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			c.JSON(http.StatusNotFound, gin.H{"error": "follow-up not found"})
			return
		}
		h.logger.Error("Failed to load follow-up",
			zap.String("email_id", emailID),
			zap.Error(err),
		)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "failed to load follow-up"})
		return
	}

	c.JSON(http.StatusOK, out)
}
