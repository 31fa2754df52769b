package handlers

import (
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kovan/models"
)

func (h *Handler) GetVapidPublicKey(c *gin.Context) {
	if h.push == nil || !h.push.Enabled() {
		c.JSON(http.StatusOK, gin.H{
			"error":   "VAPID public key not configured",
			"message": "Contact administrator",
		})
		return
	}
	c.JSON(http.StatusOK, gin.H{
		"publicKey": h.push.PublicKey(),
		"message":   "VAPID public key retrieved successfully",
	})
}

func (h *Handler) SubscribePush(c *gin.Context) {
	var req struct {
		Endpoint string `json:"endpoint" binding:"required"`
		Keys     struct {
			P256dh string `json:"p256dh" binding:"required"`
			Auth   string `json:"auth" binding:"required"`
		} `json:"keys" binding:"required"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}
	if h.push == nil {
		c.JSON(http.StatusServiceUnavailable, gin.H{"error": "Push notifications are not configured"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	userID := currentUser(c)
	err := h.push.Subscribe(ctx, userID, models.PushSubscription{
		Endpoint: req.Endpoint,
		Keys:     models.PushKeys{P256dh: req.Keys.P256dh, Auth: req.Keys.Auth},
	})
	if err != nil {
		fail(c, "SubscribePush", err)
		return
	}
	log.Printf("[SubscribePush] saved subscription for user %s", userID)
	c.JSON(http.StatusCreated, gin.H{"message": "Subscribed to push notifications"})
}

func (h *Handler) GetNotifications(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	inbox, err := h.svc.Notifications.List(ctx, currentUser(c), queryInt(c, "limit"))
	if err != nil {
		fail(c, "GetNotifications", err)
		return
	}
	c.JSON(http.StatusOK, inbox)
}

func (h *Handler) MarkNotificationRead(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Notifications.MarkRead(ctx, currentUser(c), c.Param("id")); err != nil {
		fail(c, "MarkNotificationRead", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Notification marked as read"})
}

func (h *Handler) MarkAllNotificationsRead(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	n, err := h.svc.Notifications.MarkAllRead(ctx, currentUser(c))
	if err != nil {
		fail(c, "MarkAllNotificationsRead", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"updated": n})
}
