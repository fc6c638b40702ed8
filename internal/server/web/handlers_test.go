package web

import (
	"context"
	"io"
	"log/slog"
	"net/http"
	"net/http/httptest"
	"net/url"
	"strings"
	"sync"
	"testing"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/dmitrijs2005/reviewpulse/internal/common"
	"github.com/dmitrijs2005/reviewpulse/internal/logging"
	"github.com/dmitrijs2005/reviewpulse/internal/server/config"
	"github.com/dmitrijs2005/reviewpulse/internal/server/models"
	"github.com/dmitrijs2005/reviewpulse/internal/server/services"
)

// --- in-memory repositories ---

type memUsersRepo struct {
	mu    sync.Mutex
	users map[string]*models.User
}

func newMemUsersRepo() *memUsersRepo {
	return &memUsersRepo{users: make(map[string]*models.User)}
}

func (r *memUsersRepo) Create(ctx context.Context, u *models.User) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	if _, ok := r.users[u.UserName]; ok {
		return nil, common.ErrorAlreadyExists
	}
	u.ID = int64(len(r.users) + 1)
	u.CreatedAt = time.Now()
	r.users[u.UserName] = u
	return u, nil
}

func (r *memUsersRepo) GetUserByUserName(ctx context.Context, userName string) (*models.User, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	u, ok := r.users[userName]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return u, nil
}

func (r *memUsersRepo) Exists(ctx context.Context, userName, email string) (bool, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	for _, u := range r.users {
		if u.UserName == userName || u.Email == email {
			return true, nil
		}
	}
	return false, nil
}

type memSessionsRepo struct {
	mu       sync.Mutex
	sessions map[string]*models.Session
}

func newMemSessionsRepo() *memSessionsRepo {
	return &memSessionsRepo{sessions: make(map[string]*models.Session)}
}

func (r *memSessionsRepo) Create(ctx context.Context, id, userName string, validity time.Duration) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	now := time.Now()
	r.sessions[id] = &models.Session{ID: id, UserName: userName, ExpiresAt: now.Add(validity), CreatedAt: now}
	return nil
}

func (r *memSessionsRepo) Find(ctx context.Context, id string) (*models.Session, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	s, ok := r.sessions[id]
	if !ok {
		return nil, common.ErrorNotFound
	}
	return s, nil
}

func (r *memSessionsRepo) Delete(ctx context.Context, id string) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	delete(r.sessions, id)
	return nil
}

type memPredictionsRepo struct {
	mu      sync.Mutex
	records []*models.Prediction
}

func (r *memPredictionsRepo) Create(ctx context.Context, p *models.Prediction) (*models.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	p.ID = int64(len(r.records) + 1)
	p.CreatedAt = time.Now()
	r.records = append(r.records, p)
	return p, nil
}

func (r *memPredictionsRepo) List(ctx context.Context) ([]*models.Prediction, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	out := make([]*models.Prediction, 0, len(r.records))
	for i := len(r.records) - 1; i >= 0; i-- {
		out = append(out, r.records[i])
	}
	return out, nil
}

type keywordPredictor struct{}

func (keywordPredictor) Predict(text string) (string, error) {
	lower := strings.ToLower(text)
	switch {
	case strings.Contains(lower, "love") || strings.Contains(lower, "great"):
		return "Positive", nil
	case strings.Contains(lower, "hate") || strings.Contains(lower, "awful"):
		return "Negative", nil
	default:
		return "Neutral", nil
	}
}

func (keywordPredictor) Labels() []string {
	return []string{"Positive", "Negative", "Neutral"}
}

// --- harness ---

type testApp struct {
	router      *gin.Engine
	predictions *memPredictionsRepo
}

func newTestApp(t *testing.T) *testApp {
	t.Helper()
	gin.SetMode(gin.TestMode)

	cfg := &config.Config{
		SecretKey:               "test-secret",
		SessionValidityDuration: time.Hour,
	}

	logger := logging.NewSlogLogger(slog.New(slog.NewTextHandler(io.Discard, nil)))
	predictions := &memPredictionsRepo{}

	userService := services.NewUserService(newMemUsersRepo(), newMemSessionsRepo(), cfg)
	predictionService := services.NewPredictionService(keywordPredictor{}, predictions, logger)

	router := NewRouter(NewHandlers(userService, predictionService, logger))
	return &testApp{router: router, predictions: predictions}
}

func (a *testApp) do(t *testing.T, method, target string, form url.Values, cookie *http.Cookie) *httptest.ResponseRecorder {
	t.Helper()
	var body io.Reader
	if form != nil {
		body = strings.NewReader(form.Encode())
	}
	req := httptest.NewRequest(method, target, body)
	if form != nil {
		req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	}
	if cookie != nil {
		req.AddCookie(cookie)
	}
	w := httptest.NewRecorder()
	a.router.ServeHTTP(w, req)
	return w
}

func (a *testApp) signup(t *testing.T, userName, email, password string) {
	t.Helper()
	w := a.do(t, http.MethodPost, "/register", url.Values{
		"username": {userName}, "email": {email}, "password": {password},
	}, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("register: status %d, body %s", w.Code, w.Body.String())
	}
}

func (a *testApp) login(t *testing.T, userName, password string) *http.Cookie {
	t.Helper()
	w := a.do(t, http.MethodPost, "/login", url.Values{
		"username": {userName}, "password": {password},
	}, nil)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("login: status %d, body %s", w.Code, w.Body.String())
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == SessionCookie && c.Value != "" {
			return c
		}
	}
	t.Fatal("login did not set a session cookie")
	return nil
}

// --- tests ---

func TestGuard_RedirectsAnonymousToLogin(t *testing.T) {
	app := newTestApp(t)

	for _, target := range []string{"/predict", "/history"} {
		w := app.do(t, http.MethodGet, target, nil, nil)
		if w.Code != http.StatusSeeOther {
			t.Fatalf("GET %s: status %d, want 303", target, w.Code)
		}
		if loc := w.Header().Get("Location"); loc != "/login" {
			t.Fatalf("GET %s: redirected to %q, want /login", target, loc)
		}
	}
}

func TestRegisterLoginLogoutFlow(t *testing.T) {
	app := newTestApp(t)

	app.signup(t, "alice", "alice@example.com", "secret123")
	cookie := app.login(t, "alice", "secret123")

	w := app.do(t, http.MethodGet, "/predict", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /predict with session: status %d", w.Code)
	}

	w = app.do(t, http.MethodGet, "/logout", nil, cookie)
	if w.Code != http.StatusSeeOther {
		t.Fatalf("logout: status %d", w.Code)
	}

	// the cookie still exists client-side but the session is gone
	w = app.do(t, http.MethodGet, "/history", nil, cookie)
	if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/login" {
		t.Fatalf("GET /history after logout: status %d, location %q", w.Code, w.Header().Get("Location"))
	}
}

func TestRegister_Duplicate(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@example.com", "secret123")

	w := app.do(t, http.MethodPost, "/register", url.Values{
		"username": {"alice"}, "email": {"other@example.com"}, "password": {"pw"},
	}, nil)
	if w.Code != http.StatusConflict {
		t.Fatalf("duplicate register: status %d, want 409", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already exists") {
		t.Fatalf("expected a duplicate message, got %s", w.Body.String())
	}
}

func TestLogin_BadCredentials(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@example.com", "secret123")

	for _, creds := range []url.Values{
		{"username": {"alice"}, "password": {"wrong"}},
		{"username": {"nobody"}, "password": {"secret123"}},
	} {
		w := app.do(t, http.MethodPost, "/login", creds, nil)
		if w.Code != http.StatusUnauthorized {
			t.Fatalf("bad login: status %d, want 401", w.Code)
		}
		if !strings.Contains(w.Body.String(), "Invalid username or password") {
			t.Fatalf("expected the generic failure message, got %s", w.Body.String())
		}
	}
}

func TestPredict_PositiveReviewShowsUpInHistory(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@example.com", "secret123")
	cookie := app.login(t, "alice", "secret123")

	w := app.do(t, http.MethodPost, "/predict", url.Values{"text": {"I love this product"}}, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("predict: status %d, body %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "Positive") {
		t.Fatalf("expected the Positive label, got %s", w.Body.String())
	}

	w = app.do(t, http.MethodGet, "/history", nil, cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("history: status %d", w.Code)
	}
	body := w.Body.String()
	if !strings.Contains(body, "I love this product") {
		t.Fatalf("history is missing the submitted review: %s", body)
	}
	if !strings.Contains(body, "Positive: 1") || !strings.Contains(body, "Negative: 0") {
		t.Fatalf("history counts are off: %s", body)
	}
}

func TestPredict_EmptyInput(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@example.com", "secret123")
	cookie := app.login(t, "alice", "secret123")

	w := app.do(t, http.MethodPost, "/predict", url.Values{"text": {"   "}}, cookie)
	if w.Code != http.StatusBadRequest {
		t.Fatalf("empty predict: status %d, want 400", w.Code)
	}
	if !strings.Contains(w.Body.String(), "Please enter a review") {
		t.Fatalf("expected the validation message, got %s", w.Body.String())
	}
	if len(app.predictions.records) != 0 {
		t.Fatal("empty input must not be stored")
	}
}

func TestLoginForm_RedirectsWhenLoggedIn(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@example.com", "secret123")
	cookie := app.login(t, "alice", "secret123")

	for _, target := range []string{"/login", "/register"} {
		w := app.do(t, http.MethodGet, target, nil, cookie)
		if w.Code != http.StatusSeeOther || w.Header().Get("Location") != "/" {
			t.Fatalf("GET %s while logged in: status %d, location %q", target, w.Code, w.Header().Get("Location"))
		}
	}
}

func TestHistory_NewestFirst(t *testing.T) {
	app := newTestApp(t)
	app.signup(t, "alice", "alice@example.com", "secret123")
	cookie := app.login(t, "alice", "secret123")

	app.do(t, http.MethodPost, "/predict", url.Values{"text": {"this is awful"}}, cookie)
	app.do(t, http.MethodPost, "/predict", url.Values{"text": {"this is great"}}, cookie)

	w := app.do(t, http.MethodGet, "/history", nil, cookie)
	body := w.Body.String()
	first := strings.Index(body, "this is great")
	second := strings.Index(body, "this is awful")
	if first == -1 || second == -1 || first > second {
		t.Fatalf("expected newest-first ordering, got %s", body)
	}
}
