package httpapi

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"

	"github.com/yungbote/blockpage/internal/contact"
	"github.com/yungbote/blockpage/internal/platform/apierr"
)

type ContactSubmitter interface {
	Submit(ctx context.Context, sub contact.Submission) (*contact.Result, error)
}

type ContactHandler struct {
	svc ContactSubmitter
}

func NewContactHandler(svc ContactSubmitter) *ContactHandler {
	return &ContactHandler{svc: svc}
}

// Submit accepts JSON or form-encoded enquiries.
func (h *ContactHandler) Submit(c *gin.Context) {
	var sub contact.Submission
	if err := c.ShouldBind(&sub); err != nil {
		RespondError(c, http.StatusBadRequest, "invalid_request", err)
		return
	}
	res, err := h.svc.Submit(c.Request.Context(), sub)
	if err != nil {
		var ve *contact.ValidationError
		switch {
		case errors.As(err, &ve):
			c.JSON(http.StatusBadRequest, ErrorEnvelope{Error: APIError{
				Message: "Please check the highlighted fields.",
				Code:    "invalid_request",
				Fields:  ve.Fields,
			}})
		case errors.Is(err, contact.ErrDeliveryFailed):
			RespondAPIError(c, apierr.New(http.StatusBadGateway, "delivery_failed", err))
		default:
			RespondAPIError(c, err)
		}
		return
	}
	c.JSON(http.StatusAccepted, gin.H{"status": "accepted", "emailed": res.Emailed, "recorded": res.LeadID != ""})
}
