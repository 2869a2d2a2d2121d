package delivery_http

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"inkpost-service/internal/auth"
	auth_http "inkpost-service/internal/delivery/http/auth"
	post_http "inkpost-service/internal/delivery/http/post"
	"inkpost-service/internal/events"
	"inkpost-service/internal/logger"
	prometheus_metrics "inkpost-service/internal/metrics/prometheus"
	"inkpost-service/internal/model"
	"inkpost-service/internal/ratelimit"
	media_repository "inkpost-service/internal/repository/media"
	media_memory "inkpost-service/internal/repository/media/memory"
	post_repository "inkpost-service/internal/repository/post"
	post_memory "inkpost-service/internal/repository/post/memory"
	"inkpost-service/internal/repository/postgres"
	user_memory "inkpost-service/internal/repository/user/memory"
	auth_service "inkpost-service/internal/service/auth"
	post_service "inkpost-service/internal/service/post"
)

// memoryUOW hands the shared in-memory repositories to the service as a
// transaction. Commit and rollback are no-ops.
type memoryUOW struct {
	posts post_repository.Repository
	media media_repository.Repository
}

func (u *memoryUOW) Begin(ctx context.Context) (postgres.Transaction, error) {
	return &memoryTx{posts: u.posts, media: u.media}, nil
}

type memoryTx struct {
	posts post_repository.Repository
	media media_repository.Repository
}

func (t *memoryTx) PostRepository() post_repository.Repository   { return t.posts }
func (t *memoryTx) MediaRepository() media_repository.Repository { return t.media }
func (t *memoryTx) Commit(ctx context.Context) error             { return nil }
func (t *memoryTx) Rollback(ctx context.Context) error           { return nil }

type testStorage struct{}

func (testStorage) Upload(ctx context.Context, folder, filename, contentType string, body []byte) (string, error) {
	return "http://storage.local/" + folder + "/" + filename, nil
}

func (testStorage) Delete(ctx context.Context, fileURL string) error { return nil }

func newTestHandler(t *testing.T, quota int) http.Handler {
	t.Helper()

	log := logger.New("test")
	metrics := prometheus_metrics.NewPrometheusMetricsProvider()

	userRepo := user_memory.NewUserRepository(log)
	postRepo := post_memory.NewPostRepository(log)
	mediaRepo := media_memory.NewMediaRepository(log)
	uow := &memoryUOW{posts: postRepo, media: mediaRepo}

	tokens, err := auth.NewTokenManager("e2e-secret", "HS256", 30*time.Minute)
	require.NoError(t, err)

	authService := auth_service.NewAuthService(userRepo, tokens, log, metrics)
	postService := post_service.NewPostService(postRepo, mediaRepo, userRepo, uow, events.NewNoopPublisher(), log, metrics)

	limiter := ratelimit.New(quota, time.Minute)

	server := NewServer(
		auth_http.NewAuthHTTPService(authService, log),
		post_http.NewPostHTTPService(postService, testStorage{}, log),
		tokens,
		limiter,
		metrics,
		"127.0.0.1",
		0,
		log,
	)
	return server.server.Handler
}

func doJSON(t *testing.T, handler http.Handler, method, target, token, body string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(method, target, strings.NewReader(body))
	req.RemoteAddr = "127.0.0.1:9999"
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	return rec
}

func login(t *testing.T, handler http.Handler, username, password string) string {
	t.Helper()
	form := url.Values{"username": {username}, "password": {password}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	require.Equal(t, http.StatusOK, rec.Code)

	var token model.Token
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &token))
	require.Equal(t, "bearer", token.TokenType)
	return token.AccessToken
}

func TestServer_EndToEnd(t *testing.T) {
	handler := newTestHandler(t, 100)

	// Register two users.
	rec := doJSON(t, handler, http.MethodPost, "/register", "", `{"username":"alice","password":"wonderland"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	rec = doJSON(t, handler, http.MethodPost, "/register", "", `{"username":"bob","password":"builder"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	// A duplicate username conflicts.
	rec = doJSON(t, handler, http.MethodPost, "/register", "", `{"username":"alice","password":"again"}`)
	assert.Equal(t, http.StatusConflict, rec.Code)

	// Wrong password is rejected.
	form := url.Values{"username": {"alice"}, "password": {"nope"}}
	req := httptest.NewRequest(http.MethodPost, "/token", strings.NewReader(form.Encode()))
	req.RemoteAddr = "127.0.0.1:9999"
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	rec = httptest.NewRecorder()
	handler.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	aliceToken := login(t, handler, "alice", "wonderland")
	bobToken := login(t, handler, "bob", "builder")

	// Alice writes a post.
	rec = doJSON(t, handler, http.MethodPost, "/posts", aliceToken, `{"title":"Down the rabbit hole","content":"It was all very curious."}`)
	require.Equal(t, http.StatusOK, rec.Code)

	var created model.PostDetailed
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))
	postID := created.Post.ID
	require.NotZero(t, postID)

	// Creating a post without a token is rejected.
	rec = doJSON(t, handler, http.MethodPost, "/posts", "", `{"title":"Anonymous","content":"No token."}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	// The public listing shows the post.
	rec = doJSON(t, handler, http.MethodGet, "/posts", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Down the rabbit hole")

	// Search finds it case-insensitively.
	rec = doJSON(t, handler, http.MethodGet, "/search/posts?query=RABBIT", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Down the rabbit hole")

	rec = doJSON(t, handler, http.MethodGet, "/search/posts?query=nonexistent", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	// Alice sees her post in her own listing; bob does not see it in his.
	rec = doJSON(t, handler, http.MethodGet, "/user/posts", aliceToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "Down the rabbit hole")

	rec = doJSON(t, handler, http.MethodGet, "/user/posts", bobToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	// Bob cannot delete alice's post.
	postPath := "/posts/" + strconv.FormatInt(postID, 10)
	rec = doJSON(t, handler, http.MethodDelete, postPath, bobToken, "")
	assert.Equal(t, http.StatusForbidden, rec.Code)

	// Alice deletes it and gets the deleted post back; a second delete is a 404.
	rec = doJSON(t, handler, http.MethodDelete, postPath, aliceToken, "")
	require.Equal(t, http.StatusOK, rec.Code)

	var deleted model.Post
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &deleted))
	assert.Equal(t, postID, deleted.ID)
	assert.Equal(t, "Down the rabbit hole", deleted.Title)

	rec = doJSON(t, handler, http.MethodDelete, postPath, aliceToken, "")
	assert.Equal(t, http.StatusNotFound, rec.Code)

	// The deleted post is gone from every listing.
	rec = doJSON(t, handler, http.MethodGet, "/posts", "", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = doJSON(t, handler, http.MethodGet, "/user/posts", aliceToken, "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	// Health check is open.
	rec = doJSON(t, handler, http.MethodGet, "/health", "", "")
	assert.Equal(t, http.StatusOK, rec.Code)
}

func TestServer_RateLimitOnListing(t *testing.T) {
	handler := newTestHandler(t, 5)

	get := func(target, addr string) *httptest.ResponseRecorder {
		req := httptest.NewRequest(http.MethodGet, target, nil)
		req.RemoteAddr = addr
		rec := httptest.NewRecorder()
		handler.ServeHTTP(rec, req)
		return rec
	}

	for i := 0; i < 5; i++ {
		rec := get("/posts", "198.51.100.7:1000")
		assert.Equal(t, http.StatusOK, rec.Code)
	}

	rec := get("/posts", "198.51.100.7:1000")
	assert.Equal(t, http.StatusTooManyRequests, rec.Code)
	assert.JSONEq(t, `{"detail":"Rate limit exceeded"}`, rec.Body.String())

	// Another address is unaffected, and search is not rate limited.
	rec = get("/posts", "198.51.100.8:1000")
	assert.Equal(t, http.StatusOK, rec.Code)

	for i := 0; i < 10; i++ {
		rec = get("/search/posts?query=anything", "198.51.100.7:1000")
		assert.Equal(t, http.StatusOK, rec.Code)
	}
}
