package server

import (
	"context"
	"encoding/json"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
	"github.com/ghiffarsabda/kormimvp/internal/repository/memory"
	"github.com/ghiffarsabda/kormimvp/internal/repository/sqlstore"
)

// =========================================================================
// HELPERS
// =========================================================================

const (
	testSecret   = "test-secret-at-least-16-chars!!"
	testAdmin    = "admin"
	testPassword = "admin123"
)

func quietLogger() *slog.Logger {
	return slog.New(slog.NewTextHandler(io.Discard, nil))
}

func testConfig() Config {
	return Config{
		Port:               0,
		CORSAllowedOrigins: []string{"*"},
		JWTSecret:          testSecret,
		AdminUsername:      testAdmin,
		AdminPassword:      testPassword,
		BcryptCost:         bcrypt.MinCost,
	}
}

func newTestServer(t *testing.T, cfg Config, store repository.Store) *Server {
	t.Helper()
	srv, err := New(context.Background(), cfg, quietLogger(), store)
	require.NoError(t, err)
	return srv
}

// stores returns a fresh instance of every store implementation.
func stores(t *testing.T) map[string]repository.Store {
	t.Helper()
	db, err := sqlstore.Open(context.Background(), sqlstore.DriverSQLite, ":memory:")
	require.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	return map[string]repository.Store{
		"memory": memory.New(),
		"sqlite": db,
	}
}

// do sends a request to the server's router and returns the recorder.
func do(t *testing.T, srv *Server, method, path, body string, opts ...func(*http.Request)) *httptest.ResponseRecorder {
	t.Helper()
	var reader io.Reader
	if body != "" {
		reader = strings.NewReader(body)
	}
	req := httptest.NewRequest(method, path, reader)
	if body != "" {
		req.Header.Set("Content-Type", "application/json")
	}
	for _, opt := range opts {
		opt(req)
	}
	rec := httptest.NewRecorder()
	srv.Handler().ServeHTTP(rec, req)
	return rec
}

func bearer(token string) func(*http.Request) {
	return func(r *http.Request) { r.Header.Set("Authorization", "Bearer "+token) }
}

func decodeBody[T any](t *testing.T, rec *httptest.ResponseRecorder) T {
	t.Helper()
	var v T
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &v), "body: %s", rec.Body.String())
	return v
}

func login(t *testing.T, srv *Server) string {
	t.Helper()
	rec := do(t, srv, http.MethodPost, "/api/admin/login",
		`{"username":"`+testAdmin+`","password":"`+testPassword+`"}`)
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())

	body := decodeBody[struct {
		Token string `json:"token"`
	}](t, rec)
	require.NotEmpty(t, body.Token)
	return body.Token
}

const validNews = `{"title":"Festival Olahraga","date":"2023-10-15","category":"Event",
	"content":"Isi","excerpt":"Ringkas","imageUrl":"https://img.example/1.jpg"}`

const validOrg = `{"name":"Bandung Runners","sportCategoryId":1,"location":"Siliwangi",
	"schedule":"Sabtu","contact":"0877","icon":"running"}`

// =========================================================================
// PUBLIC ROUTES
// =========================================================================

func TestCreateNews_MissingTitleCreatesNothing(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, testConfig(), store)

			rec := do(t, srv, http.MethodPost, "/api/news",
				`{"date":"2023-10-15","category":"Event","content":"c","excerpt":"e","imageUrl":"u"}`)
			require.Equal(t, http.StatusBadRequest, rec.Code)

			errBody := decodeBody[map[string]any](t, rec)
			assert.Equal(t, "validation_error", errBody["error"])
			assert.Len(t, errBody["fields"], 1)

			list := decodeBody[[]model.News](t, do(t, srv, http.MethodGet, "/api/news", ""))
			assert.Empty(t, list)
		})
	}
}

func TestGetOrganization_IDHandling(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, testConfig(), store)

			created := do(t, srv, http.MethodPost, "/api/organizations", validOrg)
			require.Equal(t, http.StatusCreated, created.Code, created.Body.String())
			org := decodeBody[model.Organization](t, created)
			assert.Equal(t, 1, org.ID)
			assert.True(t, org.IsOkb, "isOkb defaults to true")

			rec := do(t, srv, http.MethodGet, "/api/organizations/abc", "")
			assert.Equal(t, http.StatusBadRequest, rec.Code)
			assert.Equal(t, "Invalid ID format", decodeBody[map[string]any](t, rec)["message"])

			rec = do(t, srv, http.MethodGet, "/api/organizations/9999", "")
			assert.Equal(t, http.StatusNotFound, rec.Code)

			rec = do(t, srv, http.MethodGet, "/api/organizations/1", "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Equal(t, org, decodeBody[model.Organization](t, rec))
		})
	}
}

func TestInitializeData_TwiceDoublesCounts(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, testConfig(), store)

			for n := 0; n < 2; n++ {
				rec := do(t, srv, http.MethodPost, "/api/initialize-data", "")
				require.Equal(t, http.StatusOK, rec.Code)
				assert.JSONEq(t, `{"success":true,"message":"Data initialized successfully"}`, rec.Body.String())
			}

			counts := map[string]int{
				"/api/sport-categories": 14,
				"/api/organizations":    12,
				"/api/events":           6,
				"/api/news":             10,
				"/api/gallery":          16,
			}
			for path, want := range counts {
				list := decodeBody[[]map[string]any](t, do(t, srv, http.MethodGet, path, ""))
				assert.Len(t, list, want, path)
			}
		})
	}
}

func TestListOrganizations_QueryFilters(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/initialize-data", "").Code)

	tests := []struct {
		query string
		want  int
	}{
		{"", 6},
		{"?isOkb=true", 4},
		{"?isOkb=false", 2},
		{"?isOkb=yes", 2}, // anything but "true" means unaffiliated
		{"?categoryId=2", 1},
		{"?categoryId=2&isOkb=false", 1}, // categoryId wins
		{"?categoryId=abc", 6},           // non-numeric categoryId is ignored
		{"?categoryId=abc&isOkb=true", 4},
	}

	for _, tt := range tests {
		t.Run(tt.query, func(t *testing.T) {
			rec := do(t, srv, http.MethodGet, "/api/organizations"+tt.query, "")
			require.Equal(t, http.StatusOK, rec.Code)
			assert.Len(t, decodeBody[[]model.Organization](t, rec), tt.want)
		})
	}
}

func TestListGallery_CategoryFilter(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/initialize-data", "").Code)

	rec := do(t, srv, http.MethodGet, "/api/gallery?category=komunitas", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Len(t, decodeBody[[]model.GalleryItem](t, rec), 5)
}

func TestListEvents_NewestFirst(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())
	require.Equal(t, http.StatusOK, do(t, srv, http.MethodPost, "/api/initialize-data", "").Code)

	events := decodeBody[[]model.Event](t, do(t, srv, http.MethodGet, "/api/events", ""))
	require.Len(t, events, 3)
	assert.Equal(t, "2023-12-15", events[0].Date.String())
	assert.Equal(t, "2023-11-25", events[2].Date.String())
}

func TestPatchNews(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/news", validNews).Code)

	// Missing id wins over a bad body.
	rec := do(t, srv, http.MethodPatch, "/api/news/99", `{}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)

	rec = do(t, srv, http.MethodPatch, "/api/news/1", `{"title":"only a title"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "PATCH is a full replace")

	replaced := strings.Replace(validNews, "Festival Olahraga", "Festival Diperbarui", 1)
	rec = do(t, srv, http.MethodPatch, "/api/news/1", replaced)
	require.Equal(t, http.StatusOK, rec.Code)
	n := decodeBody[model.News](t, rec)
	assert.Equal(t, 1, n.ID)
	assert.Equal(t, "Festival Diperbarui", n.Title)
}

func TestDeleteNews(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())
	require.Equal(t, http.StatusCreated, do(t, srv, http.MethodPost, "/api/news", validNews).Code)

	rec := do(t, srv, http.MethodDelete, "/api/news/1", "")
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"success":true}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/news/1", "").Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodDelete, "/api/news/1", "").Code)
	assert.Equal(t, http.StatusBadRequest, do(t, srv, http.MethodDelete, "/api/news/x", "").Code)
}

func TestSubmissions(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())

	rec := do(t, srv, http.MethodPost, "/api/contact",
		`{"name":"Ani","email":"ani@example.com","subject":"Halo","message":"Apa kabar"}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"id":1}`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/join",
		`{"name":"Budi","email":"budi@example.com","phone":"0812","sportCategoryId":2}`)
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.JSONEq(t, `{"success":true,"id":1}`, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/contact", `{"name":"Ani","email":"nope"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)
}

func TestUnknownRoutesAnswerJSON(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())

	rec := do(t, srv, http.MethodGet, "/api/nope", "")
	assert.Equal(t, http.StatusNotFound, rec.Code)
	assert.Equal(t, "application/json", rec.Header().Get("Content-Type"))

	rec = do(t, srv, http.MethodPut, "/api/news/1", validNews)
	assert.Equal(t, http.StatusMethodNotAllowed, rec.Code)
	assert.Equal(t, "method_not_allowed", decodeBody[map[string]any](t, rec)["error"])
}

func TestCORSPreflight(t *testing.T) {
	const origin = "http://localhost:5173"

	tests := []struct {
		name            string
		origins         []string
		wantOrigin      string
		wantCredentials string
	}{
		{name: "wildcard", origins: []string{"*"}, wantOrigin: "*"},
		{name: "explicit origin", origins: []string{"https://kormi.example", origin}, wantOrigin: origin, wantCredentials: "true"},
		{name: "origin not listed", origins: []string{"https://kormi.example"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := testConfig()
			cfg.CORSAllowedOrigins = tt.origins
			srv := newTestServer(t, cfg, memory.New())

			rec := do(t, srv, http.MethodOptions, "/api/admin/login", "", func(r *http.Request) {
				r.Header.Set("Origin", origin)
				r.Header.Set("Access-Control-Request-Method", "POST")
			})
			assert.Equal(t, tt.wantOrigin, rec.Header().Get("Access-Control-Allow-Origin"))
			assert.Equal(t, tt.wantCredentials, rec.Header().Get("Access-Control-Allow-Credentials"))
		})
	}
}

func TestAllowCredentials(t *testing.T) {
	assert.False(t, allowCredentials(nil))
	assert.False(t, allowCredentials([]string{"*"}))
	assert.False(t, allowCredentials([]string{"https://kormi.example", "*"}))
	assert.True(t, allowCredentials([]string{"https://kormi.example"}))
}

func TestCreate_AcceptsEmptyStringsAndAnyCategoryID(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())

	for _, id := range []string{"0", "-5", "9999"} {
		body := strings.Replace(validOrg, `"sportCategoryId":1`, `"sportCategoryId":`+id, 1)
		rec := do(t, srv, http.MethodPost, "/api/organizations", body)
		assert.Equal(t, http.StatusCreated, rec.Code, "sportCategoryId %s: %s", id, rec.Body.String())
	}

	rec := do(t, srv, http.MethodPost, "/api/join",
		`{"name":"Budi","email":"budi@example.com","phone":"0812","sportCategoryId":0}`)
	assert.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())

	rec = do(t, srv, http.MethodPost, "/api/gallery", `{"title":"","category":"Event","imageUrl":"u"}`)
	require.Equal(t, http.StatusCreated, rec.Code, rec.Body.String())
	assert.Equal(t, "", decodeBody[model.GalleryItem](t, rec).Title)

	rec = do(t, srv, http.MethodPost, "/api/gallery", `{"category":"Event","imageUrl":"u"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code, "a missing title is still rejected")
}

// =========================================================================
// ADMIN ROUTES
// =========================================================================

func TestAdmin_DisabledWithoutSecret(t *testing.T) {
	cfg := testConfig()
	cfg.JWTSecret = ""
	srv := newTestServer(t, cfg, memory.New())

	rec := do(t, srv, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"admin123"}`)
	assert.Equal(t, http.StatusNotFound, rec.Code)
}

func TestAdmin_Login(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())

	rec := do(t, srv, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"wrong"}`)
	assert.Equal(t, http.StatusUnauthorized, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/admin/login", `{"username":"admin"}`)
	assert.Equal(t, http.StatusBadRequest, rec.Code)

	rec = do(t, srv, http.MethodPost, "/api/admin/login", `{"username":"admin","password":"admin123"}`)
	require.Equal(t, http.StatusOK, rec.Code)

	body := decodeBody[map[string]any](t, rec)
	assert.NotEmpty(t, body["token"])
	user := body["user"].(map[string]any)
	assert.Equal(t, "admin", user["username"])
	assert.NotContains(t, user, "passwordHash")

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.True(t, cookies[0].HttpOnly)
}

func TestAdmin_RequiresToken(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())

	for _, path := range []string{"/api/admin/me", "/api/admin/messages", "/api/admin/join-requests"} {
		rec := do(t, srv, http.MethodGet, path, "")
		assert.Equal(t, http.StatusUnauthorized, rec.Code, path)
	}
	rec := do(t, srv, http.MethodDelete, "/api/admin/events/1", "", bearer("not-a-token"))
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
}

func TestAdmin_Me(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())
	token := login(t, srv)

	rec := do(t, srv, http.MethodGet, "/api/admin/me", "", bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "admin", decodeBody[model.User](t, rec).Username)

	rec = do(t, srv, http.MethodGet, "/api/admin/me", "", func(r *http.Request) {
		r.AddCookie(&http.Cookie{Name: "token", Value: token})
	})
	assert.Equal(t, http.StatusOK, rec.Code, "cookie works as well as the header")
}

func TestAdmin_ReadsSubmissions(t *testing.T) {
	for name, store := range stores(t) {
		t.Run(name, func(t *testing.T) {
			srv := newTestServer(t, testConfig(), store)
			token := login(t, srv)

			do(t, srv, http.MethodPost, "/api/join",
				`{"name":"Budi","email":"budi@example.com","phone":"0812","sportCategoryId":2,"message":"ikut"}`)

			rec := do(t, srv, http.MethodGet, "/api/admin/join-requests", "", bearer(token))
			require.Equal(t, http.StatusOK, rec.Code)
			reqs := decodeBody[[]model.JoinRequest](t, rec)
			require.Len(t, reqs, 1)
			require.NotNil(t, reqs[0].Message)
			assert.Equal(t, "ikut", *reqs[0].Message)
			assert.False(t, reqs[0].CreatedAt.IsZero())

			rec = do(t, srv, http.MethodDelete, "/api/admin/join-requests/1", "", bearer(token))
			assert.Equal(t, http.StatusOK, rec.Code)
			rec = do(t, srv, http.MethodGet, "/api/admin/join-requests/1", "", bearer(token))
			assert.Equal(t, http.StatusNotFound, rec.Code)
		})
	}
}

func TestAdmin_ManagesCategories(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())
	token := login(t, srv)

	rec := do(t, srv, http.MethodPost, "/api/admin/sport-categories", `{"name":"Panahan"}`, bearer(token))
	require.Equal(t, http.StatusCreated, rec.Code)
	assert.Equal(t, 1, decodeBody[model.SportCategory](t, rec).ID)

	rec = do(t, srv, http.MethodPut, "/api/admin/sport-categories/1", `{"name":"Panahan Tradisional"}`, bearer(token))
	require.Equal(t, http.StatusOK, rec.Code)

	rec = do(t, srv, http.MethodGet, "/api/sport-categories/1", "")
	assert.Equal(t, "Panahan Tradisional", decodeBody[model.SportCategory](t, rec).Name)

	rec = do(t, srv, http.MethodDelete, "/api/admin/sport-categories/1", "", bearer(token))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, http.StatusNotFound, do(t, srv, http.MethodGet, "/api/sport-categories/1", "").Code)
}

func TestAdmin_Logout(t *testing.T) {
	srv := newTestServer(t, testConfig(), memory.New())

	rec := do(t, srv, http.MethodPost, "/api/admin/logout", "")
	require.Equal(t, http.StatusOK, rec.Code)

	cookies := rec.Result().Cookies()
	require.Len(t, cookies, 1)
	assert.Equal(t, "token", cookies[0].Name)
	assert.Negative(t, cookies[0].MaxAge)
}
