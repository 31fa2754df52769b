package routes

import (
	"bytes"
	"context"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"net/textproto"
	"net/url"
	"testing"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/oauth2"

	"kovan/content"
	"kovan/handlers"
	"kovan/middleware"
	"kovan/push"
	"kovan/services"
	"kovan/storage"
	"kovan/store"
)

const testSecret = "routes-secret"

type server struct {
	router *gin.Engine
	store  *store.MemoryStore
}

func newServer(t *testing.T) *server {
	t.Helper()
	return newServerWithGoogle(t, nil)
}

func newServerWithGoogle(t *testing.T, google *services.GoogleAuth) *server {
	t.Helper()
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	blob := storage.NewMemory("https://cdn.test")
	svc := services.New(services.Deps{Store: st, Blob: blob, Google: google})
	h := handlers.New(handlers.Options{
		Services:  svc,
		Pages:     content.NewLoader("../content"),
		Blob:      blob,
		Push:      push.New(st, "", "", "mailto:test@example.com"),
		JWTSecret: testSecret,
	})
	router := SetupRouter(h, Config{
		JWTSecret:      testSecret,
		AllowedOrigins: []string{"http://localhost:5173"},
		Health:         func() map[string]string { return map[string]string{"store": "ok", "redis": "disabled"} },
	})
	return &server{router: router, store: st}
}

func (s *server) do(t *testing.T, method, path string, body interface{}, token string) *httptest.ResponseRecorder {
	t.Helper()
	var buf bytes.Buffer
	if body != nil {
		require.NoError(t, json.NewEncoder(&buf).Encode(body))
	}
	req := httptest.NewRequest(method, path, &buf)
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)
	return w
}

func decode(t *testing.T, w *httptest.ResponseRecorder) map[string]interface{} {
	t.Helper()
	var out map[string]interface{}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &out), w.Body.String())
	return out
}

func registration(username string) map[string]interface{} {
	return map[string]interface{}{
		"firstName":       "Test",
		"lastName":        "Kullanıcı",
		"email":           username + "@example.com",
		"phone":           "555 123 45 67",
		"birthDate":       "1995-04-12",
		"username":        username,
		"password":        "secret1",
		"confirmPassword": "secret1",
		"agreedToTerms":   true,
		"agreedToPrivacy": true,
		"city":            "İzmir",
		"interests":       []string{"Eğitim"},
	}
}

// register signs a user up and returns their token and id.
func (s *server) register(t *testing.T, username string) (string, string) {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/register", registration(username), "")
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	body := decode(t, w)
	user := body["user"].(map[string]interface{})
	return body["token"].(string), user["id"].(string)
}

func (s *server) createPost(t *testing.T, token string) string {
	t.Helper()
	w := s.do(t, http.MethodPost, "/api/posts", map[string]interface{}{
		"title":   "Sahil temizliği",
		"content": "Cumartesi sabahı #çevre gönüllüleriyle buluşuyoruz",
		"tags":    "çevre, sahil",
	}, token)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	return decode(t, w)["post"].(map[string]interface{})["id"].(string)
}

func TestHealthAndNoRoute(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/health", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	body := decode(t, w)
	assert.Equal(t, "ok", body["status"])

	w = s.do(t, http.MethodGet, "/api/nope", nil, "")
	assert.Equal(t, http.StatusNotFound, w.Code)
	assert.Equal(t, "Endpoint not found", decode(t, w)["error"])
}

func TestRegisterAndLogin(t *testing.T) {
	s := newServer(t)
	token, id := s.register(t, "ayse")
	assert.NotEmpty(t, token)
	assert.NotEmpty(t, id)

	w := s.do(t, http.MethodPost, "/api/register", registration("ayse"), "")
	assert.Equal(t, http.StatusConflict, w.Code)

	bad := registration("mehmet")
	bad["confirmPassword"] = "other"
	bad["phone"] = "123"
	w = s.do(t, http.MethodPost, "/api/register", bad, "")
	require.Equal(t, http.StatusBadRequest, w.Code)
	fields := decode(t, w)["fields"].(map[string]interface{})
	assert.Contains(t, fields, "confirmPassword")
	assert.Contains(t, fields, "phone")

	w = s.do(t, http.MethodPost, "/api/login", map[string]string{"identifier": "ayse", "password": "secret1"}, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["token"])

	w = s.do(t, http.MethodPost, "/api/login", map[string]string{"email": "AYSE@example.com", "password": "secret1"}, "")
	assert.Equal(t, http.StatusOK, w.Code)

	w = s.do(t, http.MethodPost, "/api/login", map[string]string{"identifier": "ayse", "password": "wrong!"}, "")
	assert.Equal(t, http.StatusUnauthorized, w.Code)
}

func TestGoogleSignIn(t *testing.T) {
	mux := http.NewServeMux()
	mux.HandleFunc("/token", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"access_token":"stub-token","token_type":"Bearer","expires_in":3600}`))
	})
	mux.HandleFunc("/userinfo", func(w http.ResponseWriter, r *http.Request) {
		w.Header().Set("Content-Type", "application/json")
		_, _ = w.Write([]byte(`{"id":"4242","email":"zeynep@gmail.com","verified_email":true,"name":"Zeynep Kaya","picture":"https://lh3.test/z.jpg"}`))
	})
	stub := httptest.NewServer(mux)
	defer stub.Close()

	s := newServerWithGoogle(t, services.NewGoogleAuth(services.GoogleConfig{
		ClientID:     "client-id",
		ClientSecret: "client-secret",
		RedirectURL:  "http://localhost:8080/api/google/callback",
		Endpoint:     oauth2.Endpoint{AuthURL: stub.URL + "/auth", TokenURL: stub.URL + "/token"},
		UserInfoURL:  stub.URL + "/userinfo",
	}))

	w := s.do(t, http.MethodGet, "/api/google/login", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	consent, err := url.Parse(decode(t, w)["url"].(string))
	require.NoError(t, err)
	state := consent.Query().Get("state")
	require.NotEmpty(t, state)
	cookies := w.Result().Cookies()
	require.Len(t, cookies, 1)

	callback := func(state string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, "/api/google/callback?code=abc&state="+url.QueryEscape(state), nil)
		req.AddCookie(cookies[0])
		w := httptest.NewRecorder()
		s.router.ServeHTTP(w, req)
		return w
	}

	assert.Equal(t, http.StatusBadRequest, callback("forged").Code)

	w = callback(state)
	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	body := decode(t, w)
	assert.Equal(t, true, body["isNewUser"])
	token := body["token"].(string)
	user := body["user"].(map[string]interface{})
	assert.Equal(t, "4242", user["id"])
	assert.Equal(t, "Gönüllü", user["headline"])

	w = s.do(t, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Zeynep Kaya", decode(t, w)["name"])
}

func TestGoogleSignInDisabled(t *testing.T) {
	s := newServer(t)
	w := s.do(t, http.MethodGet, "/api/google/login", nil, "")
	assert.Equal(t, http.StatusServiceUnavailable, w.Code)
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	s := newServer(t)

	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodGet, "/api/me", nil, "").Code)
	assert.Equal(t, http.StatusUnauthorized, s.do(t, http.MethodPost, "/api/posts", nil, "garbage").Code)

	token, id := s.register(t, "ayse")
	w := s.do(t, http.MethodGet, "/api/me", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	me := decode(t, w)
	assert.Equal(t, id, me["id"])
	assert.Equal(t, "ayse@example.com", me["email"])
	assert.NotContains(t, me, "passwordHash")
}

func TestProfile(t *testing.T) {
	s := newServer(t)
	token, id := s.register(t, "ayse")

	w := s.do(t, http.MethodPut, "/api/me", map[string]interface{}{"headline": "  Eğitmen ", "email": "x@y.z"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	user := decode(t, w)["user"].(map[string]interface{})
	assert.Equal(t, "Eğitmen", user["headline"])
	assert.Equal(t, "ayse@example.com", user["email"])

	w = s.do(t, http.MethodPost, "/api/me/skills", map[string]string{"skill": "İlk yardım"}, token)
	require.Equal(t, http.StatusOK, w.Code)
	w = s.do(t, http.MethodPost, "/api/me/skills", map[string]string{"skill": "İlk yardım"}, token)
	assert.Len(t, decode(t, w)["skills"], 1)

	w = s.do(t, http.MethodGet, "/api/users/"+id, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	public := decode(t, w)
	assert.Equal(t, "", public["email"])
	assert.NotContains(t, public, "phone")

	w = s.do(t, http.MethodGet, "/api/users?skill="+url.QueryEscape("İlk yardım"), nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 1)

	w = s.do(t, http.MethodGet, "/api/users/search?q=Test", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 1)

	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/users/ghost", nil, "").Code)
}

func TestUploadAvatar(t *testing.T) {
	s := newServer(t)
	token, id := s.register(t, "ayse")

	var buf bytes.Buffer
	mw := multipart.NewWriter(&buf)
	hdr := make(textproto.MIMEHeader)
	hdr.Set("Content-Disposition", `form-data; name="avatar"; filename="me.png"`)
	hdr.Set("Content-Type", "image/png")
	part, err := mw.CreatePart(hdr)
	require.NoError(t, err)
	_, err = part.Write([]byte("\x89PNG fake"))
	require.NoError(t, err)
	require.NoError(t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/api/me/avatar", &buf)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	req.Header.Set("Authorization", "Bearer "+token)
	w := httptest.NewRecorder()
	s.router.ServeHTTP(w, req)

	require.Equal(t, http.StatusOK, w.Code, w.Body.String())
	assert.Equal(t, "https://cdn.test/users/"+id+"/profile/me.png", decode(t, w)["url"])

	w = s.do(t, http.MethodPost, "/api/me/avatar", nil, token)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestPostLifecycle(t *testing.T) {
	s := newServer(t)
	alice, _ := s.register(t, "alice")
	bob, _ := s.register(t, "bob")
	postID := s.createPost(t, alice)

	w := s.do(t, http.MethodPost, "/api/posts", map[string]string{"title": "ab", "content": "short"}, alice)
	require.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodGet, "/api/posts", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["posts"], 1)

	w = s.do(t, http.MethodGet, "/api/hashtags/"+url.PathEscape("çevre")+"/posts", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["posts"], 1)

	w = s.do(t, http.MethodPost, "/api/posts/"+postID+"/like", nil, bob)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, map[string]interface{}{"liked": true, "likes": float64(1)}, decode(t, w))

	w = s.do(t, http.MethodGet, "/api/posts/"+postID+"/liked", nil, bob)
	assert.Equal(t, true, decode(t, w)["liked"])

	w = s.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", map[string]string{"text": "  Ben de geliyorum "}, bob)
	require.Equal(t, http.StatusCreated, w.Code)
	comment := decode(t, w)
	assert.Equal(t, "Ben de geliyorum", comment["text"])
	commentID := comment["id"].(string)

	w = s.do(t, http.MethodPost, "/api/posts/"+postID+"/comments", map[string]string{"text": "   "}, bob)
	assert.Equal(t, http.StatusBadRequest, w.Code)

	w = s.do(t, http.MethodPost, "/api/posts/"+postID+"/comments/"+commentID+"/like", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["likes"])

	w = s.do(t, http.MethodGet, "/api/posts/"+postID+"/comments", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["comments"], 1)

	w = s.do(t, http.MethodGet, "/api/posts/"+postID, nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	engagement := decode(t, w)["engagement"].(map[string]interface{})
	assert.Equal(t, float64(1), engagement["likes"])
	assert.Equal(t, float64(1), engagement["comments"])

	assert.Equal(t, http.StatusNoContent, s.do(t, http.MethodPost, "/api/posts/"+postID+"/view", nil, bob).Code)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodDelete, "/api/posts/"+postID, nil, bob).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/posts/"+postID+"/comments/"+commentID, nil, alice).Code)
	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/posts/"+postID, nil, alice).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/posts/"+postID, nil, "").Code)

	w = s.do(t, http.MethodGet, "/api/hashtags", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["hashtags"])
}

func TestFollowAndNotifications(t *testing.T) {
	s := newServer(t)
	alice, aliceID := s.register(t, "alice")
	bob, _ := s.register(t, "bob")

	assert.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/users/"+aliceID+"/follow", nil, bob).Code)
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/users/"+aliceID+"/follow", nil, bob).Code)
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/users/"+aliceID+"/follow", nil, alice).Code)

	w := s.do(t, http.MethodGet, "/api/users/"+aliceID+"/followers", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["users"], 1)

	w = s.do(t, http.MethodGet, "/api/notifications", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	inbox := decode(t, w)
	assert.Equal(t, float64(1), inbox["unreadCount"])
	note := inbox["notifications"].([]interface{})[0].(map[string]interface{})
	assert.Equal(t, "follow", note["type"])

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodPost, "/api/notifications/"+note["id"].(string)+"/read", nil, bob).Code)

	w = s.do(t, http.MethodPost, "/api/notifications/read-all", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["updated"])

	assert.Equal(t, http.StatusOK, s.do(t, http.MethodDelete, "/api/users/"+aliceID+"/follow", nil, bob).Code)
}

func TestPrograms(t *testing.T) {
	s := newServer(t)
	token, _ := s.register(t, "ayse")
	require.NoError(t, s.store.Set(context.Background(), "programs", "p1", store.Document{
		"title":     "Kitap Okuma",
		"category":  "education",
		"createdAt": time.Now(),
		"stats":     map[string]interface{}{"applicants": 0},
	}))

	w := s.do(t, http.MethodGet, "/api/programs?category=education", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["programs"], 1)
	w = s.do(t, http.MethodGet, "/api/programs?category=animal", nil, "")
	assert.Len(t, decode(t, w)["programs"], 0)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/programs/p1/apply", map[string]bool{"consentAccepted": false}, token).Code)
	assert.Equal(t, http.StatusCreated, s.do(t, http.MethodPost, "/api/programs/p1/apply", map[string]bool{"consentAccepted": true}, token).Code)
	assert.Equal(t, http.StatusConflict, s.do(t, http.MethodPost, "/api/programs/p1/apply", map[string]bool{"consentAccepted": true}, token).Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodPost, "/api/programs/p9/apply", map[string]bool{"consentAccepted": true}, token).Code)

	w = s.do(t, http.MethodGet, "/api/me/applications", nil, token)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["applications"], 1)

	w = s.do(t, http.MethodGet, "/api/programs/p1", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, float64(1), decode(t, w)["stats"].(map[string]interface{})["applicants"])
}

func TestConversations(t *testing.T) {
	s := newServer(t)
	alice, _ := s.register(t, "alice")
	_, bobID := s.register(t, "bob")
	eve, _ := s.register(t, "eve")

	w := s.do(t, http.MethodPost, "/api/conversations", map[string][]string{"participants": {bobID}}, alice)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())
	convID := decode(t, w)["id"].(string)

	w = s.do(t, http.MethodPost, "/api/conversations", map[string][]string{"participants": {bobID}}, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, convID, decode(t, w)["id"])

	w = s.do(t, http.MethodPost, "/api/conversations/"+convID+"/messages", map[string]string{"content": "Merhaba"}, alice)
	require.Equal(t, http.StatusCreated, w.Code)

	w = s.do(t, http.MethodGet, "/api/conversations/"+convID+"/messages", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["messages"], 1)

	assert.Equal(t, http.StatusForbidden, s.do(t, http.MethodGet, "/api/conversations/"+convID+"/messages", nil, eve).Code)

	w = s.do(t, http.MethodGet, "/api/conversations", nil, alice)
	require.Equal(t, http.StatusOK, w.Code)
	assert.Len(t, decode(t, w)["conversations"], 1)
}

func TestStatisticsPagesAndMedia(t *testing.T) {
	s := newServer(t)

	w := s.do(t, http.MethodGet, "/api/statistics?scope=world", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	report := decode(t, w)
	assert.Equal(t, "world", report["scope"])
	assert.Len(t, report["economic"], 5)

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/statistics?scope=mars", nil, "").Code)

	w = s.do(t, http.MethodGet, "/api/statistics/provinces", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	provinces := decode(t, w)
	assert.NotEmpty(t, provinces["provinces"])
	first := provinces["provinces"].([]interface{})[0].(map[string]interface{})
	assert.Regexp(t, `^TR-\d{2}$`, first["id"])

	w = s.do(t, http.MethodGet, "/api/statistics/countries", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.NotEmpty(t, decode(t, w)["countries"])

	w = s.do(t, http.MethodGet, "/api/pages/terms", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "Kullanım Şartları", decode(t, w)["title"])
	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodGet, "/api/pages/Terms", nil, "").Code)
	assert.Equal(t, http.StatusNotFound, s.do(t, http.MethodGet, "/api/pages/missing", nil, "").Code)

	w = s.do(t, http.MethodGet, "/api/media/hero.jpg", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "https://cdn.test/media/hero.jpg", decode(t, w)["url"])

	w = s.do(t, http.MethodGet, "/api/vapid-public-key", nil, "")
	require.Equal(t, http.StatusOK, w.Code)
	assert.Equal(t, "VAPID public key not configured", decode(t, w)["error"])
}

func TestPushSubscribe(t *testing.T) {
	s := newServer(t)
	token, id := s.register(t, "ayse")

	assert.Equal(t, http.StatusBadRequest, s.do(t, http.MethodPost, "/api/push/subscribe", map[string]string{"endpoint": "x"}, token).Code)

	w := s.do(t, http.MethodPost, "/api/push/subscribe", map[string]interface{}{
		"endpoint": "https://push.example.com/abc",
		"keys":     map[string]string{"p256dh": "key", "auth": "secret"},
	}, token)
	require.Equal(t, http.StatusCreated, w.Code)

	doc, err := s.store.Get(context.Background(), push.Collection, id)
	require.NoError(t, err)
	assert.Equal(t, "https://push.example.com/abc", doc["endpoint"])
}

func TestRateLimit(t *testing.T) {
	gin.SetMode(gin.TestMode)
	st := store.NewMemoryStore()
	h := handlers.New(handlers.Options{Services: services.New(services.Deps{Store: st}), Pages: content.NewLoader("../content"), JWTSecret: testSecret})
	router := SetupRouter(h, Config{JWTSecret: testSecret, RateLimiter: middleware.NewIPRateLimiter(2, time.Minute)})

	codes := make([]int, 3)
	for i := range codes {
		w := httptest.NewRecorder()
		router.ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/api/badges", nil))
		codes[i] = w.Code
	}
	assert.Equal(t, []int{http.StatusOK, http.StatusOK, http.StatusTooManyRequests}, codes)
}
