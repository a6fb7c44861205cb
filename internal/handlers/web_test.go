package handlers

import (
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"testing"
	"time"

	"github.com/Yunxiang777/accounts/internal/auth"
	dom "github.com/Yunxiang777/accounts/internal/domain"
	"github.com/Yunxiang777/accounts/internal/service"

	"github.com/alicebob/miniredis/v2"
	"github.com/gin-gonic/gin"
	"github.com/redis/go-redis/v9"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"golang.org/x/crypto/bcrypt"
)

// newWebRouter wires the browser route group as app.Setup does, with a
// miniredis-backed session store.
func newWebRouter(t *testing.T) *gin.Engine {
	t.Helper()
	gin.SetMode(gin.TestMode)

	mr := miniredis.RunT(t)
	rdb := redis.NewClient(&redis.Options{Addr: mr.Addr()})
	t.Cleanup(func() { _ = rdb.Close() })

	sessions := auth.NewStore(rdb, time.Hour)
	userSvc := service.NewUserService(&fakeUserRepo{users: make(map[string]dom.User)}, bcrypt.MinCost)
	entrySvc := service.NewEntryService(&fakeEntryRepo{entries: make(map[int64]dom.Entry)}, nil)

	r := gin.New()
	web := NewWebHandler(sessions, userSvc, entrySvc)
	r.GET("/login", web.LoginPage)
	r.GET("/reg", web.RegisterPage)
	r.POST("/login", web.Login)
	r.POST("/reg", web.Register)
	r.POST("/logout", web.Logout)

	guarded := r.Group("", auth.RequireSession(sessions, "/login"))
	guarded.GET("/", web.Home)
	guarded.GET("/account", web.Account)
	guarded.POST("/account/create", web.AccountCreate)
	guarded.DELETE("/account/delete/:id", web.AccountDelete)
	return r
}

func postForm(r *gin.Engine, path string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) *http.Cookie {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.Value != "" {
			return c
		}
	}
	t.Fatal("no session cookie set")
	return nil
}

func webRegister(t *testing.T, r *gin.Engine) *http.Cookie {
	t.Helper()
	w := postForm(r, "/reg", url.Values{"username": {"alice1"}, "password": {"secret1"}}, nil)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/account", w.Header().Get("Location"))
	return sessionCookie(t, w)
}

func TestWebRegisterAndLogin(t *testing.T) {
	r := newWebRouter(t)
	webRegister(t, r)

	w := postForm(r, "/login", url.Values{"username": {"alice1"}, "password": {"secret1"}}, nil)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/account", w.Header().Get("Location"))
	sessionCookie(t, w)

	w = postForm(r, "/login", url.Values{"username": {"alice1"}, "password": {"wrong99"}}, nil)
	assert.Equal(t, http.StatusBadRequest, w.Code)
}

func TestWebAccountRequiresSession(t *testing.T) {
	r := newWebRouter(t)

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)

	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))
}

func TestWebAccountFlow(t *testing.T) {
	r := newWebRouter(t)
	cookie := webRegister(t, r)

	w := postForm(r, "/account/create", url.Values{
		"description": {"salary"},
		"amount":      {"1000"},
		"date":        {"2024-01-15"},
		"sign":        {"credit"},
	}, cookie)
	require.Equal(t, http.StatusFound, w.Code)
	require.Equal(t, "/account", w.Header().Get("Location"))

	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)

	require.Equal(t, http.StatusOK, rec.Code)
	assert.Contains(t, rec.Body.String(), `"totalAmount":1000`)
	assert.Contains(t, rec.Body.String(), "salary")
	assert.Contains(t, rec.Body.String(), "alice1")
}

func TestWebAccountCreateRejectsFraction(t *testing.T) {
	r := newWebRouter(t)
	cookie := webRegister(t, r)

	w := postForm(r, "/account/create", url.Values{
		"description": {"coffee"},
		"amount":      {"10.5"},
		"date":        {"2024-01-15"},
		"sign":        {"debit"},
	}, cookie)
	assert.Equal(t, http.StatusBadRequest, w.Code)
	assert.Contains(t, w.Body.String(), "integer")
}

func TestWebLogout(t *testing.T) {
	r := newWebRouter(t)
	cookie := webRegister(t, r)

	w := postForm(r, "/logout", nil, cookie)
	assert.Equal(t, http.StatusFound, w.Code)
	assert.Equal(t, "/login", w.Header().Get("Location"))

	// Session is gone; the ledger page bounces back to login.
	req := httptest.NewRequest(http.MethodGet, "/account", nil)
	req.AddCookie(cookie)
	rec := httptest.NewRecorder()
	r.ServeHTTP(rec, req)
	assert.Equal(t, http.StatusFound, rec.Code)
	assert.Equal(t, "/login", rec.Header().Get("Location"))
}
