package handlers

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"kovan/models"
	"kovan/services"
)

// ListPrograms filters by ?category=; "all" or nothing lists every program.
func (h *Handler) ListPrograms(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	programs, err := h.svc.Programs.List(ctx, c.Query("category"))
	if err != nil {
		fail(c, "ListPrograms", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"programs": programs, "categories": models.ProgramCategories})
}

func (h *Handler) GetProgram(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	program, err := h.svc.Programs.Get(ctx, c.Param("id"))
	if err != nil {
		fail(c, "GetProgram", err)
		return
	}
	c.JSON(http.StatusOK, program)
}

func (h *Handler) ApplyToProgram(c *gin.Context) {
	var req services.ApplyInput
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	app, err := h.svc.Programs.Apply(ctx, currentUser(c), c.Param("id"), req)
	if err != nil {
		fail(c, "ApplyToProgram", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Application received", "application": app})
}

func (h *Handler) MyApplications(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	apps, err := h.svc.Programs.MyApplications(ctx, currentUser(c))
	if err != nil {
		fail(c, "MyApplications", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"applications": apps})
}

func (h *Handler) UploadProgramImage(c *gin.Context) {
	f, done, ok := formUpload(c, "image")
	if !ok {
		return
	}
	defer done()

	ctx, cancel := requestContext(c)
	defer cancel()

	url, err := h.svc.Programs.UploadImage(ctx, currentUser(c), c.Param("id"), f)
	if err != nil {
		fail(c, "UploadProgramImage", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) ListBadges(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	badges, err := h.svc.Badges.List(ctx)
	if err != nil {
		fail(c, "ListBadges", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}
