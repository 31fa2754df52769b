package services

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log"
	"net/http"
	"strings"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/oauth2"
	"golang.org/x/oauth2/google"

	"kovan/models"
	"kovan/store"
	"kovan/validation"
)

const googleUserInfoURL = "https://www.googleapis.com/oauth2/v2/userinfo"

var (
	ErrGoogleDisabled = errors.New("google sign-in is not configured")
	// ErrGoogleExchange wraps failures talking to Google during sign-in.
	ErrGoogleExchange = errors.New("google sign-in failed")
)

// GoogleUser is the profile returned by the userinfo endpoint.
type GoogleUser struct {
	ID            string `json:"id"`
	Email         string `json:"email"`
	VerifiedEmail bool   `json:"verified_email"`
	Name          string `json:"name"`
	GivenName     string `json:"given_name"`
	FamilyName    string `json:"family_name"`
	Picture       string `json:"picture"`
}

type GoogleConfig struct {
	ClientID     string
	ClientSecret string
	RedirectURL  string
	// Endpoint and UserInfoURL default to Google's.
	Endpoint    oauth2.Endpoint
	UserInfoURL string
}

// GoogleAuth runs the OAuth authorization code flow against Google.
type GoogleAuth struct {
	conf        *oauth2.Config
	userInfoURL string
}

// NewGoogleAuth returns nil when the client id or secret is missing.
func NewGoogleAuth(c GoogleConfig) *GoogleAuth {
	if c.ClientID == "" || c.ClientSecret == "" {
		log.Println("⚠️  Google OAuth not configured - set GOOGLE_CLIENT_ID and GOOGLE_CLIENT_SECRET")
		return nil
	}
	endpoint := c.Endpoint
	if endpoint.TokenURL == "" {
		endpoint = google.Endpoint
	}
	userInfo := c.UserInfoURL
	if userInfo == "" {
		userInfo = googleUserInfoURL
	}
	log.Println("✅ Google OAuth configured successfully")
	return &GoogleAuth{
		conf: &oauth2.Config{
			ClientID:     c.ClientID,
			ClientSecret: c.ClientSecret,
			RedirectURL:  c.RedirectURL,
			Scopes: []string{
				"https://www.googleapis.com/auth/userinfo.email",
				"https://www.googleapis.com/auth/userinfo.profile",
			},
			Endpoint: endpoint,
		},
		userInfoURL: userInfo,
	}
}

func (g *GoogleAuth) AuthURL(state string) string {
	return g.conf.AuthCodeURL(state, oauth2.AccessTypeOnline)
}

// Exchange trades an authorization code for the signed-in Google profile.
func (g *GoogleAuth) Exchange(ctx context.Context, code string) (*GoogleUser, error) {
	token, err := g.conf.Exchange(ctx, code)
	if err != nil {
		return nil, fmt.Errorf("exchange authorization code: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, g.userInfoURL, nil)
	if err != nil {
		return nil, err
	}
	resp, err := g.conf.Client(ctx, token).Do(req)
	if err != nil {
		return nil, fmt.Errorf("get user info: %w", err)
	}
	defer resp.Body.Close()
	if resp.StatusCode != http.StatusOK {
		return nil, fmt.Errorf("get user info: status %d", resp.StatusCode)
	}

	data, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("read user info: %w", err)
	}
	var u GoogleUser
	if err := json.Unmarshal(data, &u); err != nil {
		return nil, fmt.Errorf("parse user info: %w", err)
	}
	return &u, nil
}

// GoogleAuthURL is the consent page URL carrying state.
func (s *AuthService) GoogleAuthURL(state string) (string, error) {
	if s.deps.Google == nil {
		return "", ErrGoogleDisabled
	}
	return s.deps.Google.AuthURL(state), nil
}

// GoogleLogin completes the sign-in for an authorization code. The account
// is users/{google id}; an account registered with the same email is reused.
// created reports whether a new account was made.
func (s *AuthService) GoogleLogin(ctx context.Context, code string) (user *models.User, created bool, err error) {
	if s.deps.Google == nil {
		return nil, false, ErrGoogleDisabled
	}
	if strings.TrimSpace(code) == "" {
		return nil, false, validation.Errors{"code": "Authorization code missing"}
	}
	gu, err := s.deps.Google.Exchange(ctx, code)
	if err != nil {
		log.Printf("❌ Google OAuth failed: %v", err)
		return nil, false, fmt.Errorf("%w: %v", ErrGoogleExchange, err)
	}
	if gu.ID == "" || gu.Email == "" {
		return nil, false, validation.Errors{"email": "Email not provided by Google"}
	}
	log.Printf("✅ Google user info retrieved: %s (%s)", gu.Email, gu.Name)

	user, err = s.users.getFresh(ctx, gu.ID)
	if err == nil {
		return user, false, nil
	}
	if !errors.Is(err, store.ErrNotFound) {
		return nil, false, err
	}

	email := strings.ToLower(gu.Email)
	docs, err := s.users.users.Find(ctx, store.Query{
		Where: []store.Filter{store.Where("email", store.OpEqual, email)},
		Limit: 1,
	})
	if err != nil {
		return nil, false, err
	}
	if len(docs) > 0 {
		var existing models.User
		if err := store.Decode(docs[0], &existing); err != nil {
			return nil, false, err
		}
		if existing.GoogleID == "" {
			if err := s.users.users.Update(ctx, existing.ID, map[string]interface{}{"googleId": gu.ID}); err != nil {
				log.Printf("⚠️ Failed to link Google account for %s: %v", existing.ID, err)
			}
			s.users.invalidate(ctx, existing.ID)
		}
		return &existing, false, nil
	}

	log.Printf("📝 Creating new user from Google: %s", email)
	doc, err := s.users.users.Create(ctx, newGoogleUser(gu, email))
	if errors.Is(err, store.ErrDuplicate) {
		// a parallel callback created it first
		user, err = s.users.getFresh(ctx, gu.ID)
		return user, false, err
	}
	if err != nil {
		return nil, false, err
	}
	var u models.User
	if err := store.Decode(doc, &u); err != nil {
		return nil, false, err
	}
	return &u, true, nil
}

func newGoogleUser(gu *GoogleUser, email string) models.User {
	name := strings.TrimSpace(gu.Name)
	first, last := strings.TrimSpace(gu.GivenName), strings.TrimSpace(gu.FamilyName)
	if name == "" {
		name = strings.TrimSpace(first + " " + last)
	}
	username := usernameFromEmail(email)
	if name == "" {
		name = username
	}
	return models.User{
		ID:           gu.ID,
		Name:         name,
		FirstName:    first,
		LastName:     last,
		Username:     username,
		Email:        email,
		GoogleID:     gu.ID,
		Headline:     "Gönüllü",
		AvatarURL:    gu.Picture,
		Interests:    []string{},
		Skills:       []string{},
		Gamification: models.Gamification{Level: 1, Badges: []string{}},
		IsActive:     true,
		IsVerified:   gu.VerifiedEmail,
	}
}

// usernameFromEmail is the dotless local part plus a short random suffix.
func usernameFromEmail(email string) string {
	suffix := primitive.NewObjectID().Hex()
	suffix = suffix[len(suffix)-4:]
	local, _, ok := strings.Cut(email, "@")
	local = strings.ReplaceAll(local, ".", "")
	if !ok || local == "" {
		return "user_" + suffix
	}
	return local + "_" + suffix
}
