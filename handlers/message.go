package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetMessages(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	msgs, err := h.svc.Messages.Messages(ctx, currentUser(c), c.Param("id"))
	if err != nil {
		fail(c, "GetMessages", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"messages": msgs})
}

func (h *Handler) SendMessage(c *gin.Context) {
	var req struct {
		Content string `json:"content"`
		Type    string `json:"type"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	msg, err := h.svc.Messages.Send(ctx, currentUser(c), c.Param("id"), req.Content, req.Type)
	if err != nil {
		fail(c, "SendMessage", err)
		return
	}
	c.JSON(http.StatusCreated, msg)
}

func (h *Handler) MarkConversationRead(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	n, err := h.svc.Messages.MarkRead(ctx, currentUser(c), c.Param("id"))
	if err != nil {
		fail(c, "MarkConversationRead", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
