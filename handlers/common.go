// Package handlers holds the gin HTTP handlers of the API.
package handlers

import (
	"context"
	"errors"
	"log"
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"

	"kovan/content"
	"kovan/models"
	"kovan/services"
	"kovan/storage"
	"kovan/store"
	"kovan/validation"
)

const requestTimeout = 10 * time.Second

// PushRegistry stores browser push subscriptions. *push.WebPush implements it.
type PushRegistry interface {
	Enabled() bool
	PublicKey() string
	Subscribe(ctx context.Context, userID string, sub models.PushSubscription) error
}

type Handler struct {
	svc      *services.Services
	pages    *content.Loader
	blob     storage.Blob
	push     PushRegistry
	secret   string
	tokenTTL time.Duration
}

type Options struct {
	Services  *services.Services
	Pages     *content.Loader
	Blob      storage.Blob
	Push      PushRegistry
	JWTSecret string
	TokenTTL  time.Duration
}

func New(o Options) *Handler {
	if o.TokenTTL <= 0 {
		o.TokenTTL = 24 * time.Hour
	}
	return &Handler{
		svc:      o.Services,
		pages:    o.Pages,
		blob:     o.Blob,
		push:     o.Push,
		secret:   o.JWTSecret,
		tokenTTL: o.TokenTTL,
	}
}

func requestContext(c *gin.Context) (context.Context, context.CancelFunc) {
	return context.WithTimeout(c.Request.Context(), requestTimeout)
}

func currentUser(c *gin.Context) string {
	return c.GetString("userId")
}

func queryInt(c *gin.Context, key string) int {
	n, _ := strconv.Atoi(c.Query(key))
	return n
}

// fail maps a service error to a status code and writes it as
// {"error": message}. Validation errors carry their field map.
func fail(c *gin.Context, op string, err error) {
	var verrs validation.Errors
	switch {
	case errors.As(err, &verrs):
		c.JSON(http.StatusBadRequest, gin.H{"error": "Validation failed", "fields": verrs})
	case errors.Is(err, store.ErrNotFound):
		c.JSON(http.StatusNotFound, gin.H{"error": "Document not found"})
	case errors.Is(err, services.ErrForbidden):
		c.JSON(http.StatusForbidden, gin.H{"error": "Forbidden"})
	case errors.Is(err, services.ErrConflict):
		c.JSON(http.StatusConflict, gin.H{"error": err.Error()})
	case errors.Is(err, store.ErrDuplicate):
		c.JSON(http.StatusConflict, gin.H{"error": "Already exists"})
	case errors.Is(err, services.ErrInvalidCredentials):
		c.JSON(http.StatusUnauthorized, gin.H{"error": "Invalid credentials"})
	case errors.Is(err, store.ErrInvalidPath), errors.Is(err, store.ErrInvalidQuery):
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
	default:
		log.Printf("[%s] error: %v", op, err)
		c.JSON(http.StatusInternalServerError, gin.H{"error": "Internal server error"})
	}
}

// formUpload reads the multipart file field of the request.
func formUpload(c *gin.Context, field string) (services.Upload, func(), bool) {
	fh, err := c.FormFile(field)
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "No " + field + " file provided"})
		return services.Upload{}, nil, false
	}
	f, err := fh.Open()
	if err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Failed to read uploaded file"})
		return services.Upload{}, nil, false
	}
	return services.Upload{
		Name:        fh.Filename,
		ContentType: fh.Header.Get("Content-Type"),
		Size:        fh.Size,
		Body:        f,
	}, func() { f.Close() }, true
}
