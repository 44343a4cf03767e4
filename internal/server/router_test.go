package server

import (
	"bytes"
	"context"
	"encoding/hex"
	"encoding/json"
	"mime/multipart"
	"net/http"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/alicebob/miniredis/v2"
	"github.com/redis/go-redis/v9"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"

	"github.com/ayush/employee-admin/internal/auth"
	"github.com/ayush/employee-admin/internal/employees"
	"github.com/ayush/employee-admin/internal/images"
	"github.com/ayush/employee-admin/internal/models"
	"github.com/ayush/employee-admin/internal/store"
)

const (
	adminUser     = "Hukum Gupta"
	adminPassword = "Hukum Gupta"
)

func setupTestServer(t *testing.T, staticDir string) http.Handler {
	t.Helper()
	ctx := context.Background()

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { rdb.Close() })

	creds := store.NewMemoryCredentialStore()
	hash, err := bcrypt.GenerateFromPassword([]byte(adminPassword), bcrypt.MinCost)
	require.NoError(t, err)
	require.NoError(t, creds.Upsert(ctx, adminUser, string(hash)))

	disk, err := store.NewDiskStore(t.TempDir())
	require.NoError(t, err)
	imageSvc := images.NewService(disk)

	ttl := 30 * 24 * time.Hour
	return NewRouter(Options{
		Logger:         zerolog.Nop(),
		Gate:           auth.NewGate(creds, auth.NewSessionStore(rdb), auth.NewTokenSigner("test-secret"), ttl),
		Cookies:        auth.NewCookieHelper(false, ttl),
		Employees:      employees.NewService(store.NewMemoryStore(), imageSvc),
		Images:         imageSvc,
		LoginPath:      "/login",
		AllowedOrigins: []string{"http://localhost:5173"},
		MaxUploadBytes: 1 << 20,
		StaticDir:      staticDir,
	})
}

type client struct {
	t         *testing.T
	h         http.Handler
	userAgent string
	cookie    *http.Cookie
}

func (c *client) do(req *http.Request) *httptest.ResponseRecorder {
	req.Header.Set("User-Agent", c.userAgent)
	if c.cookie != nil {
		req.AddCookie(c.cookie)
	}
	rec := httptest.NewRecorder()
	c.h.ServeHTTP(rec, req)
	return rec
}

func (c *client) login(username, password string) *httptest.ResponseRecorder {
	body, err := json.Marshal(models.LoginRequest{Username: username, Password: password})
	require.NoError(c.t, err)
	rec := c.do(httptest.NewRequest(http.MethodPost, "/login", bytes.NewReader(body)))
	for _, ck := range rec.Result().Cookies() {
		if ck.Name == auth.AccessTokenCookie {
			c.cookie = ck
		}
	}
	return rec
}

func (c *client) get(target string) *httptest.ResponseRecorder {
	return c.do(httptest.NewRequest(http.MethodGet, target, nil))
}

func (c *client) createEmployee(email, mobile string) *httptest.ResponseRecorder {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)
	fields := map[string]string{
		"name": "Asha Rao", "email": email, "mobile_no": mobile,
		"designation": "Manager", "gender": "Female", "course": "BCA",
	}
	for k, v := range fields {
		require.NoError(c.t, mw.WriteField(k, v))
	}
	part, err := mw.CreateFormFile("image", "asha.png")
	require.NoError(c.t, err)
	_, err = part.Write([]byte("png-data"))
	require.NoError(c.t, err)
	require.NoError(c.t, mw.Close())

	req := httptest.NewRequest(http.MethodPost, "/user", &body)
	req.Header.Set("Content-Type", mw.FormDataContentType())
	return c.do(req)
}

func TestRouter_Health(t *testing.T) {
	c := &client{t: t, h: setupTestServer(t, "")}

	rec := c.get("/health")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"status":"ok"}`, rec.Body.String())
}

func TestRouter_LoginFlow(t *testing.T) {
	h := setupTestServer(t, "")
	c := &client{t: t, h: h, userAgent: "X"}

	rec := c.login(adminUser, "wrong")
	assert.Equal(t, http.StatusUnauthorized, rec.Code)
	assert.JSONEq(t, `{"auth":false}`, rec.Body.String())
	assert.Nil(t, c.cookie)

	rec = c.login(adminUser, adminPassword)
	require.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"auth":true,"name":"Hukum Gupta"}`, rec.Body.String())
	require.NotNil(t, c.cookie)
	assert.True(t, c.cookie.HttpOnly)

	rec = c.get("/users")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `[]`, rec.Body.String())

	rec = c.get("/session")
	assert.JSONEq(t, `{"auth":true,"name":"Hukum Gupta"}`, rec.Body.String())

	// Same cookie, different browser.
	thief := &client{t: t, h: h, userAgent: "Y", cookie: c.cookie}
	rec = thief.get("/users")
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login?cf="+hex.EncodeToString([]byte("/users")), rec.Header().Get("Location"))

	rec = c.get("/logout")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"logout successfully"}`, rec.Body.String())

	rec = c.get("/users")
	assert.Equal(t, http.StatusFound, rec.Code)
}

func TestRouter_ProtectedRoutesRedirectWithoutCookie(t *testing.T) {
	c := &client{t: t, h: setupTestServer(t, ""), userAgent: "X"}

	for _, target := range []string{"/users", "/user/abc", "/images/x.png", "/logout", "/session"} {
		rec := c.get(target)
		assert.Equal(t, http.StatusFound, rec.Code, target)
		assert.True(t, strings.HasPrefix(rec.Header().Get("Location"), "/login?cf="), target)
	}
}

func TestRouter_EmployeeLifecycle(t *testing.T) {
	c := &client{t: t, h: setupTestServer(t, ""), userAgent: "X"}
	require.Equal(t, http.StatusOK, c.login(adminUser, adminPassword).Code)

	rec := c.createEmployee("asha@example.com", "9123456780")
	require.Equal(t, http.StatusOK, rec.Code, rec.Body.String())
	var created models.Employee
	require.NoError(t, json.Unmarshal(rec.Body.Bytes(), &created))

	rec = c.createEmployee("asha@example.com", "9000000000")
	assert.Equal(t, http.StatusConflict, rec.Code)

	rec = c.get("/images/" + created.Image)
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "png-data", rec.Body.String())
	assert.Equal(t, "image/png", rec.Header().Get("Content-Type"))

	rec = c.do(httptest.NewRequest(http.MethodDelete, "/user/"+created.ID.Hex(), nil))
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.JSONEq(t, `{"message":"User deleted successfully"}`, rec.Body.String())

	assert.Equal(t, http.StatusNotFound, c.get("/user/"+created.ID.Hex()).Code)
	assert.Equal(t, http.StatusNotFound, c.get("/images/"+created.Image).Code)
	assert.Equal(t, http.StatusNotFound, c.get("/user/not-an-id").Code)
}

func TestRouter_CORSPreflight(t *testing.T) {
	h := setupTestServer(t, "")

	req := httptest.NewRequest(http.MethodOptions, "/users", nil)
	req.Header.Set("Origin", "http://localhost:5173")
	req.Header.Set("Access-Control-Request-Method", "PATCH")
	rec := httptest.NewRecorder()
	h.ServeHTTP(rec, req)

	assert.Equal(t, "http://localhost:5173", rec.Header().Get("Access-Control-Allow-Origin"))
	assert.Equal(t, "true", rec.Header().Get("Access-Control-Allow-Credentials"))
}

func TestRouter_StaticFallback(t *testing.T) {
	dir := t.TempDir()
	require.NoError(t, os.WriteFile(filepath.Join(dir, "index.html"), []byte("<html>app</html>"), 0o644))
	require.NoError(t, os.WriteFile(filepath.Join(dir, "app.js"), []byte("console.log(1)"), 0o644))
	c := &client{t: t, h: setupTestServer(t, dir), userAgent: "X"}

	rec := c.get("/login?cf=2f7573657273")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), "app")

	rec = c.get("/app.js")
	assert.Equal(t, http.StatusOK, rec.Code)
	assert.Equal(t, "console.log(1)", rec.Body.String())

	rec = c.get("/../../etc/passwd")
	assert.Contains(t, rec.Body.String(), "<html>app</html>")

	rec = c.login(adminUser, adminPassword)
	assert.Equal(t, http.StatusOK, rec.Code)
}
