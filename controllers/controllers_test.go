package controllers_test

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strconv"
	"strings"
	"sync"
	"testing"
	"time"

	"pulse/config"
	"pulse/controllers"
	"pulse/models"
	"pulse/routes"
	"pulse/services"
	"pulse/storage"

	"github.com/gin-gonic/gin"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// fakePageCache implements cache.PageCache with a controllable clock so
// tests can step through TTL expiry without sleeping.
type fakePageCache struct {
	mu      sync.Mutex
	now     time.Time
	entries map[string]fakeEntry
}

type fakeEntry struct {
	body    []byte
	expires time.Time
}

func newFakePageCache() *fakePageCache {
	return &fakePageCache{
		now:     time.Now(),
		entries: make(map[string]fakeEntry),
	}
}

func (f *fakePageCache) Get(ctx context.Context, key string) ([]byte, bool, error) {
	f.mu.Lock()
	defer f.mu.Unlock()
	entry, ok := f.entries[key]
	if !ok || f.now.After(entry.expires) {
		return nil, false, nil
	}
	return entry.body, true, nil
}

func (f *fakePageCache) SetWithTTL(ctx context.Context, key string, body []byte, ttl time.Duration) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries[key] = fakeEntry{body: body, expires: f.now.Add(ttl)}
	return nil
}

func (f *fakePageCache) Clear(ctx context.Context) error {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.entries = make(map[string]fakeEntry)
	return nil
}

func (f *fakePageCache) advance(d time.Duration) {
	f.mu.Lock()
	defer f.mu.Unlock()
	f.now = f.now.Add(d)
}

type testApp struct {
	router *gin.Engine
	db     *gorm.DB
	cache  *fakePageCache
	cfg    *config.Config
}

func setupApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	require.NoError(t, err)

	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, db.AutoMigrate(
		&models.User{},
		&models.Group{},
		&models.Post{},
		&models.Comment{},
		&models.Follow{},
	))

	cfg := &config.Config{
		PostsPerPage:  10,
		IndexCacheTTL: 20 * time.Second,
	}

	pageCache := newFakePageCache()
	store, err := storage.NewLocalStorage(t.TempDir())
	require.NoError(t, err)

	r := gin.New()
	routes.SetupRoutes(r,
		controllers.NewFeedController(db, pageCache, cfg),
		controllers.NewPostController(db, store),
		controllers.NewProfileController(db, cfg),
		controllers.NewAuthController(services.NewUserService(db)),
	)

	return &testApp{router: r, db: db, cache: pageCache, cfg: cfg}
}

// signup registers a user over HTTP and returns the session cookie value.
func (a *testApp) signup(t *testing.T, username string) string {
	t.Helper()

	body, err := json.Marshal(gin.H{
		"email":    username + "@example.com",
		"username": username,
		"password": "secret123",
	})
	require.NoError(t, err)

	req := httptest.NewRequest(http.MethodPost, "/auth/signup", bytes.NewReader(body))
	req.Header.Set("Content-Type", "application/json")
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	require.Equal(t, http.StatusCreated, w.Code, w.Body.String())

	for _, cookie := range w.Result().Cookies() {
		if cookie.Name == "token" {
			return cookie.Value
		}
	}
	t.Fatalf("signup did not set a token cookie")
	return ""
}

func (a *testApp) get(path, token string) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) postForm(path, token string, form url.Values) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if token != "" {
		req.AddCookie(&http.Cookie{Name: "token", Value: token})
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) createGroup(t *testing.T, slug string) *models.Group {
	t.Helper()
	group := &models.Group{Title: slug, Slug: slug, Description: "test group"}
	require.NoError(t, a.db.Create(group).Error)
	return group
}

// feedPage is the pagination payload shape returned by feed endpoints.
type feedPage struct {
	Items       []models.Post `json:"items"`
	Number      int           `json:"number"`
	TotalPages  int           `json:"total_pages"`
	TotalItems  int           `json:"total_items"`
	HasNext     bool          `json:"has_next"`
	HasPrevious bool          `json:"has_previous"`
}

func decodePage(t *testing.T, w *httptest.ResponseRecorder) feedPage {
	t.Helper()
	var payload struct {
		PageObj feedPage `json:"page_obj"`
	}
	require.NoError(t, json.Unmarshal(w.Body.Bytes(), &payload))
	return payload.PageObj
}

func itoa(n uint) string {
	return strconv.FormatUint(uint64(n), 10)
}

func (a *testApp) seedPosts(t *testing.T, token string, n int) {
	t.Helper()
	for i := 0; i < n; i++ {
		w := a.postForm("/create", token, url.Values{"text": {fmt.Sprintf("post %d", i)}})
		require.Equal(t, http.StatusSeeOther, w.Code)
	}
}
