package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// ToggleLike likes or unlikes a post for the current user and returns the
// committed state.
func (h *Handler) ToggleLike(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	state, err := h.svc.Posts.ToggleLike(ctx, currentUser(c), c.Param("id"))
	if err != nil {
		fail(c, "ToggleLike", err)
		return
	}
	c.JSON(http.StatusOK, state)
}

func (h *Handler) HasLiked(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	liked, err := h.svc.Posts.HasLiked(ctx, currentUser(c), c.Param("id"))
	if err != nil {
		fail(c, "HasLiked", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"liked": liked})
}

func (h *Handler) LikeComment(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	likes, err := h.svc.Posts.LikeComment(ctx, c.Param("id"), c.Param("commentId"))
	if err != nil {
		fail(c, "LikeComment", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"likes": likes})
}
