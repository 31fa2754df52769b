package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kovan/services"
)

func (h *Handler) GetFeed(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := h.svc.Posts.Feed(ctx, queryInt(c, "limit"))
	if err != nil {
		fail(c, "GetFeed", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

func (h *Handler) GetPost(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := h.svc.Posts.Get(ctx, c.Param("id"))
	if err != nil {
		fail(c, "GetPost", err)
		return
	}
	c.JSON(http.StatusOK, post)
}

func (h *Handler) CreatePost(c *gin.Context) {
	var req services.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := h.svc.Posts.Create(ctx, currentUser(c), req)
	if err != nil {
		fail(c, "CreatePost", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Post created successfully", "post": post})
}

func (h *Handler) UpdatePost(c *gin.Context) {
	var req services.PostInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	post, err := h.svc.Posts.Update(ctx, currentUser(c), c.Param("id"), req)
	if err != nil {
		fail(c, "UpdatePost", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post updated", "post": post})
}

func (h *Handler) DeletePost(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Posts.Delete(ctx, currentUser(c), c.Param("id")); err != nil {
		fail(c, "DeletePost", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Post deleted"})
}

func (h *Handler) ViewPost(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Posts.IncrementViews(ctx, c.Param("id")); err != nil {
		fail(c, "ViewPost", err)
		return
	}
	c.Status(http.StatusNoContent)
}

func (h *Handler) UploadPostImage(c *gin.Context) {
	f, done, ok := formUpload(c, "image")
	if !ok {
		return
	}
	defer done()

	ctx, cancel := requestContext(c)
	defer cancel()

	url, err := h.svc.Posts.AddImage(ctx, currentUser(c), c.Param("id"), f)
	if err != nil {
		fail(c, "UploadPostImage", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) TrendingHashtags(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	tags, err := h.svc.Hashtags.Trending(ctx, queryInt(c, "limit"))
	if err != nil {
		fail(c, "TrendingHashtags", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"hashtags": tags})
}

func (h *Handler) HashtagPosts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := h.svc.Posts.ByHashtag(ctx, c.Param("tag"), queryInt(c, "limit"))
	if err != nil {
		fail(c, "HashtagPosts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"tag": services.Slug(c.Param("tag")), "posts": posts})
}
