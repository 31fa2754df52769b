package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

func (h *Handler) GetComments(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	comments, err := h.svc.Posts.ListComments(ctx, c.Param("id"))
	if err != nil {
		fail(c, "GetComments", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"comments": comments})
}

func (h *Handler) AddComment(c *gin.Context) {
	var req struct {
		Text string `json:"text"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	comment, err := h.svc.Posts.AddComment(ctx, currentUser(c), c.Param("id"), req.Text)
	if err != nil {
		fail(c, "AddComment", err)
		return
	}
	c.JSON(http.StatusCreated, comment)
}

// DeleteComment is allowed to the comment's author and the post's author.
func (h *Handler) DeleteComment(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Posts.DeleteComment(ctx, currentUser(c), c.Param("id"), c.Param("commentId")); err != nil {
		fail(c, "DeleteComment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Comment deleted"})
}
