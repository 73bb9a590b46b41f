package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/sirupsen/logrus"
	"github.com/your-org/storefront/internal/domain/contact"
	"github.com/your-org/storefront/internal/interfaces/http/middleware"
)

// ContactHandler handles the contact form
type ContactHandler struct {
	contactService *contact.Service
	logger         logrus.FieldLogger
}

// NewContactHandler creates a new contact handler
func NewContactHandler(contactService *contact.Service, logger logrus.FieldLogger) *ContactHandler {
	return &ContactHandler{
		contactService: contactService,
		logger:         logger,
	}
}

// Submit handles POST /contact
func (h *ContactHandler) Submit(c *gin.Context) {
	var req contact.SubmitRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		respondBindError(c, err)
		return
	}

	msg, err := h.contactService.Submit(c.Request.Context(), middleware.GetSessionID(c), req)
	if err != nil {
		respondError(c, h.logger, err)
		return
	}

	c.JSON(http.StatusCreated, gin.H{
		"message": "Thank you for contacting us! We have received your message and will get back to you shortly.",
		"data":    msg,
	})
}
