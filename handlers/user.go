package handlers

import (
	"context"
	"log"
	"net/http"

	"github.com/gin-gonic/gin"

	"kovan/models"
	"kovan/services"
)

// publicProfile hides contact details from other users.
func publicProfile(u models.User) models.User {
	u.Email = ""
	u.Phone = ""
	u.BirthDate = ""
	return u
}

func publicProfiles(users []models.User) []models.User {
	out := make([]models.User, len(users))
	for i, u := range users {
		out[i] = publicProfile(u)
	}
	return out
}

func (h *Handler) GetMyProfile(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.svc.Users.Get(ctx, currentUser(c))
	if err != nil {
		fail(c, "GetMyProfile", err)
		return
	}
	c.JSON(http.StatusOK, user)
}

func (h *Handler) UpdateMyProfile(c *gin.Context) {
	var fields map[string]interface{}
	if err := c.ShouldBindJSON(&fields); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": "Invalid JSON data"})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.svc.Users.UpdateProfile(ctx, currentUser(c), fields)
	if err != nil {
		fail(c, "UpdateMyProfile", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Profile updated successfully", "user": user})
}

func (h *Handler) UploadAvatar(c *gin.Context) {
	h.uploadProfileImage(c, "UploadAvatar", "avatar", h.svc.Users.UploadAvatar)
}

func (h *Handler) UploadBanner(c *gin.Context) {
	h.uploadProfileImage(c, "UploadBanner", "banner", h.svc.Users.UploadBanner)
}

func (h *Handler) uploadProfileImage(c *gin.Context, op, field string, upload func(ctx context.Context, id string, f services.Upload) (string, error)) {
	f, done, ok := formUpload(c, field)
	if !ok {
		return
	}
	defer done()

	ctx, cancel := requestContext(c)
	defer cancel()

	url, err := upload(ctx, currentUser(c), f)
	if err != nil {
		fail(c, op, err)
		return
	}
	log.Printf("[%s] stored %s for user %s", op, url, currentUser(c))
	c.JSON(http.StatusOK, gin.H{"url": url})
}

func (h *Handler) AddSkill(c *gin.Context) {
	var req struct {
		Skill string `json:"skill"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	skills, err := h.svc.Users.AddSkill(ctx, currentUser(c), req.Skill)
	if err != nil {
		fail(c, "AddSkill", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"skills": skills})
}

func (h *Handler) AddBadge(c *gin.Context) {
	var req struct {
		BadgeID string `json:"badgeId"`
	}
	if err := c.ShouldBindJSON(&req); err != nil {
		c.JSON(http.StatusBadRequest, gin.H{"error": err.Error()})
		return
	}

	ctx, cancel := requestContext(c)
	defer cancel()

	badges, err := h.svc.Users.AddBadge(ctx, currentUser(c), req.BadgeID)
	if err != nil {
		fail(c, "AddBadge", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"badges": badges})
}

func (h *Handler) GetUser(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	user, err := h.svc.Users.Get(ctx, c.Param("id"))
	if err != nil {
		fail(c, "GetUser", err)
		return
	}
	c.JSON(http.StatusOK, publicProfile(*user))
}

func (h *Handler) GetUserPosts(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	posts, err := h.svc.Posts.ByUser(ctx, c.Param("id"), queryInt(c, "limit"))
	if err != nil {
		fail(c, "GetUserPosts", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"posts": posts})
}

// DiscoverUsers serves the discovery page: ?q= searches name, headline and
// location; ?skill= keeps users with that exact skill.
func (h *Handler) DiscoverUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	d, err := h.svc.Users.Discover(ctx, c.Query("q"), c.Query("skill"))
	if err != nil {
		fail(c, "DiscoverUsers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": publicProfiles(d.Users), "skills": d.Skills})
}

func (h *Handler) SearchUsers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.svc.Users.SearchByName(ctx, c.Query("q"))
	if err != nil {
		fail(c, "SearchUsers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": publicProfiles(users)})
}

func (h *Handler) Leaderboard(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.svc.Users.Leaderboard(ctx, queryInt(c, "limit"))
	if err != nil {
		fail(c, "Leaderboard", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": publicProfiles(users)})
}

func (h *Handler) Follow(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Follows.Follow(ctx, currentUser(c), c.Param("id")); err != nil {
		fail(c, "Follow", err)
		return
	}
	c.JSON(http.StatusCreated, gin.H{"message": "Followed", "following": true})
}

func (h *Handler) Unfollow(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	if err := h.svc.Follows.Unfollow(ctx, currentUser(c), c.Param("id")); err != nil {
		fail(c, "Unfollow", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"message": "Unfollowed", "following": false})
}

func (h *Handler) Followers(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.svc.Follows.Followers(ctx, c.Param("id"))
	if err != nil {
		fail(c, "Followers", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": publicProfiles(users)})
}

func (h *Handler) Following(c *gin.Context) {
	ctx, cancel := requestContext(c)
	defer cancel()

	users, err := h.svc.Follows.Following(ctx, c.Param("id"))
	if err != nil {
		fail(c, "Following", err)
		return
	}
	c.JSON(http.StatusOK, gin.H{"users": publicProfiles(users)})
}
