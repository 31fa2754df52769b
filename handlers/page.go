package handlers

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"

	"kovan/content"
	"kovan/stats"
	"kovan/storage"
)

// GetPage serves content/pages/{name}.json as is.
func (h *Handler) GetPage(c *gin.Context) {
	raw, err := h.pages.Page(c.Param("name"))
	switch {
	case errors.Is(err, content.ErrInvalidName):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid page name"})
		return
	case errors.Is(err, content.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Page not found"})
		return
	case err != nil:
		fail(c, "GetPage", err)
		return
	}
	c.Data(http.StatusOK, "application/json; charset=utf-8", raw)
}

// GetStatistics serves ?scope=turkey (default) or ?scope=world.
func (h *Handler) GetStatistics(c *gin.Context) {
	scope := c.DefaultQuery("scope", stats.ScopeTurkey)
	d, err := stats.ForScope(scope)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	c.JSON(http.StatusOK, stats.BuildReport(strings.ToLower(scope), d))
}

func (h *Handler) GetProvinceMap(c *gin.Context) {
	provinces, err := h.pages.Provinces()
	if err != nil {
		fail(c, "GetProvinceMap", err)
		return
	}
	c.JSON(http.StatusOK, stats.ShadeProvinces(provinces))
}

func (h *Handler) GetCountryMap(c *gin.Context) {
	c.JSON(http.StatusOK, gin.H{"countries": stats.ShadeCountries(stats.Countries)})
}

// GetMediaURL resolves /api/media/{file} to the public URL of media/{file}.
func (h *Handler) GetMediaURL(c *gin.Context) {
	objectPath := "media/" + strings.TrimPrefix(c.Param("path"), "/")
	if !storage.ValidPath(objectPath) {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid media path"})
		return
	}
	url, err := h.blob.URL(objectPath)
	if err != nil {
		fail(c, "GetMediaURL", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"path": objectPath, "url": url})
}
