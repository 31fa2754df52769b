package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetConversations(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	convs, err := h.svc.Messages.List(ctx, currentUser(c))
	if err != nil {
		fail(c, "GetConversations", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"conversations": convs})
}

// CreateConversation returns 201 for a new conversation and 200 when one
// with the same participants already exists.
func (h *Handler) CreateConversation(c *gin.Context) {
	var req struct {
		Participants []string `json:"participants" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	conv, created, err := h.svc.Messages.Create(ctx, currentUser(c), req.Participants)
	if err != nil {
		fail(c, "CreateConversation", err)
		return
	}
	status := http.StatusOK
	if created {
		status = http.StatusCreated
	}
	c.JSON(status, conv)
}
