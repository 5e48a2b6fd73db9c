package handlers_test

import (
	"context"
	"encoding/json"
	"fmt"
	"net/http"
	"net/http/httptest"
	"net/url"
	"sort"
	"strings"
	"testing"
	"time"

	"github.com/hueyning/kanban-app/internal/app"
	"github.com/hueyning/kanban-app/internal/auth"
	dom "github.com/hueyning/kanban-app/internal/domain"
	"github.com/hueyning/kanban-app/internal/handlers"
	"github.com/hueyning/kanban-app/internal/service"

	"github.com/gin-gonic/gin"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
)

type memUserRepo struct {
	seq   int64
	users map[string]dom.User
}

func (m *memUserRepo) GetByUsername(_ context.Context, username string) (dom.User, error) {
	u, ok := m.users[username]
	if !ok {
		return dom.User{}, pgx.ErrNoRows
	}
	return u, nil
}

func (m *memUserRepo) Create(_ context.Context, username, email, passwordHash string) (dom.User, error) {
	if _, ok := m.users[username]; ok {
		return dom.User{}, &pgconn.PgError{Code: "23505"}
	}
	m.seq++
	u := dom.User{ID: m.seq, Username: username, Email: email, PasswordHash: passwordHash}
	m.users[username] = u
	return u, nil
}

type memTaskRepo struct {
	seq   int64
	tasks map[int64]dom.Task
}

func (m *memTaskRepo) Insert(_ context.Context, t dom.Task) (dom.Task, error) {
	m.seq++
	t.ID = m.seq
	m.tasks[t.ID] = t
	return t, nil
}

func (m *memTaskRepo) GetByID(_ context.Context, id int64) (dom.Task, error) {
	t, ok := m.tasks[id]
	if !ok {
		return dom.Task{}, pgx.ErrNoRows
	}
	return t, nil
}

func (m *memTaskRepo) ListByOwnerAndStatus(_ context.Context, ownerID int64, status dom.Status) ([]dom.Task, error) {
	var list []dom.Task
	for _, t := range m.tasks {
		if t.OwnerID == ownerID && t.Status == status {
			list = append(list, t)
		}
	}
	sort.Slice(list, func(i, j int) bool { return list[i].ID > list[j].ID })
	return list, nil
}

func (m *memTaskRepo) UpdateStatus(_ context.Context, id int64, status dom.Status) error {
	t, ok := m.tasks[id]
	if !ok {
		return nil
	}
	t.Status = status
	m.tasks[id] = t
	return nil
}

func (m *memTaskRepo) Delete(_ context.Context, id int64) error {
	delete(m.tasks, id)
	return nil
}

type memSessions struct {
	seq int64
	m   map[string]int64
}

func (s *memSessions) Create(_ context.Context, userID int64) (string, error) {
	s.seq++
	id := fmt.Sprintf("sess-%d", s.seq)
	s.m[id] = userID
	return id, nil
}

func (s *memSessions) GetUserID(_ context.Context, id string) (int64, bool) {
	userID, ok := s.m[id]
	return userID, ok
}

func (s *memSessions) Delete(_ context.Context, id string) error {
	delete(s.m, id)
	return nil
}

const testSessionTTL = time.Hour

func newTestRouter() *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()

	userSvc := service.NewUserService(&memUserRepo{users: make(map[string]dom.User)})
	boardSvc := service.NewBoardService(&memTaskRepo{tasks: make(map[int64]dom.Task)}, nil)
	sessions := &memSessions{m: make(map[string]int64)}

	app.SetupRoutes(r, handlers.NewAuthHandler(sessions, userSvc, testSessionTTL), handlers.NewBoardHandler(boardSvc), sessions)
	return r
}

func postForm(t *testing.T, r *gin.Engine, path, cookie string, form url.Values) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodPost, path, strings.NewReader(form.Encode()))
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func get(t *testing.T, r *gin.Engine, path, cookie string) *httptest.ResponseRecorder {
	t.Helper()
	req := httptest.NewRequest(http.MethodGet, path, nil)
	if cookie != "" {
		req.AddCookie(&http.Cookie{Name: auth.SessionCookieName, Value: cookie})
	}
	w := httptest.NewRecorder()
	r.ServeHTTP(w, req)
	return w
}

func register(t *testing.T, r *gin.Engine, username, email, password, confirm string) *httptest.ResponseRecorder {
	t.Helper()
	return postForm(t, r, "/register", "", url.Values{
		"username": {username},
		"email":    {email},
		"password": {password},
		"confirm":  {confirm},
	})
}

func sessionCookie(t *testing.T, w *httptest.ResponseRecorder) string {
	t.Helper()
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName && c.Value != "" {
			return c.Value
		}
	}
	t.Fatalf("no session cookie in response")
	return ""
}

type boardPayload struct {
	Todo  []taskPayload `json:"todo"`
	Doing []taskPayload `json:"doing"`
	Done  []taskPayload `json:"done"`
}

type taskPayload struct {
	ID     int64  `json:"id"`
	Title  string `json:"title"`
	Body   string `json:"text"`
	Status string `json:"status"`
}

func fetchBoard(t *testing.T, r *gin.Engine, cookie string) boardPayload {
	t.Helper()
	w := get(t, r, "/", cookie)
	if w.Code != http.StatusOK {
		t.Fatalf("GET /: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	var b boardPayload
	if err := json.Unmarshal(w.Body.Bytes(), &b); err != nil {
		t.Fatalf("board decode: %v", err)
	}
	return b
}

func TestBoardRoute_RedirectsToLoginWithoutSession(t *testing.T) {
	r := newTestRouter()

	w := get(t, r, "/", "")
	if w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "/login") {
		t.Fatalf("expected pointer to login, got %s", w.Body.String())
	}
}

func TestRegister_WelcomesAndLogsIn(t *testing.T) {
	r := newTestRouter()

	w := register(t, r, "jack", "j@x.com", "rum", "rum")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d: %s", w.Code, w.Body.String())
	}
	if !strings.Contains(w.Body.String(), "thanks for registering") {
		t.Fatalf("expected welcome message, got %s", w.Body.String())
	}

	// The session from registration works immediately, no login step.
	cookie := sessionCookie(t, w)
	b := fetchBoard(t, r, cookie)
	if len(b.Todo)+len(b.Doing)+len(b.Done) != 0 {
		t.Fatalf("fresh board must be empty")
	}
}

func TestRegister_DuplicateUsername(t *testing.T) {
	r := newTestRouter()

	if w := register(t, r, "jack", "j@x.com", "rum", "rum"); w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	w := register(t, r, "jack", "other@x.com", "beer", "beer")
	if w.Code != http.StatusConflict {
		t.Fatalf("expected 409, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "already taken") {
		t.Fatalf("expected username-taken message, got %s", w.Body.String())
	}
}

func TestRegister_PasswordMismatch(t *testing.T) {
	r := newTestRouter()

	w := register(t, r, "josh", "josh@x.com", "rum", "beer")
	if w.Code != http.StatusBadRequest {
		t.Fatalf("expected 400, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "passwords do not match") {
		t.Fatalf("expected mismatch message, got %s", w.Body.String())
	}
}

func TestRegister_CookieLifetimeMatchesSessionTTL(t *testing.T) {
	r := newTestRouter()

	w := register(t, r, "jack", "j@x.com", "rum", "rum")
	if w.Code != http.StatusCreated {
		t.Fatalf("expected 201, got %d", w.Code)
	}
	for _, c := range w.Result().Cookies() {
		if c.Name == auth.SessionCookieName {
			if c.MaxAge != int(testSessionTTL.Seconds()) {
				t.Fatalf("cookie MaxAge = %d, want %d", c.MaxAge, int(testSessionTTL.Seconds()))
			}
			return
		}
	}
	t.Fatalf("no session cookie in response")
}

func TestLogin_InvalidCredentialsIndistinguishable(t *testing.T) {
	r := newTestRouter()
	register(t, r, "alice", "alice@x.com", "correct", "correct")

	login := func(username, password string) *httptest.ResponseRecorder {
		return postForm(t, r, "/login", "", url.Values{
			"username": {username},
			"password": {password},
		})
	}

	unknown := login("nobody", "correct")
	wrong := login("alice", "wrong")
	empty := login("alice", "")
	if unknown.Code != http.StatusUnauthorized || wrong.Code != http.StatusUnauthorized || empty.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401/401/401, got %d/%d/%d", unknown.Code, wrong.Code, empty.Code)
	}
	if unknown.Body.String() != wrong.Body.String() || wrong.Body.String() != empty.Body.String() {
		t.Fatalf("responses must not reveal which part failed: %s vs %s vs %s",
			unknown.Body.String(), wrong.Body.String(), empty.Body.String())
	}

	ok := login("alice", "correct")
	if ok.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", ok.Code, ok.Body.String())
	}
}

func TestOwnership_ForeignTaskMutationsRejected(t *testing.T) {
	r := newTestRouter()

	aliceCookie := sessionCookie(t, register(t, r, "alice", "alice@x.com", "pw", "pw"))
	bobCookie := sessionCookie(t, register(t, r, "bob", "bob@x.com", "pw", "pw"))

	postForm(t, r, "/do", aliceCookie, url.Values{"title": {"alice's"}, "text": {"secret"}})
	taskID := fetchBoard(t, r, aliceCookie).Todo[0].ID
	idForm := url.Values{"id": {fmt.Sprintf("%d", taskID)}}

	if w := postForm(t, r, "/done", bobCookie, idForm); w.Code != http.StatusForbidden {
		t.Fatalf("foreign status change: expected 403, got %d", w.Code)
	}
	if w := postForm(t, r, "/delete", bobCookie, idForm); w.Code != http.StatusForbidden {
		t.Fatalf("foreign delete: expected 403, got %d", w.Code)
	}

	// Bob's board never shows alice's task either.
	b := fetchBoard(t, r, bobCookie)
	if len(b.Todo)+len(b.Doing)+len(b.Done) != 0 {
		t.Fatalf("foreign task leaked into bob's board")
	}
	// And alice's task is untouched.
	if got := fetchBoard(t, r, aliceCookie).Todo; len(got) != 1 || got[0].Status != "TODO" {
		t.Fatalf("alice's task was affected: %+v", got)
	}
}

func TestEndToEnd_RegisterCreateMoveLogout(t *testing.T) {
	r := newTestRouter()

	// Register jack; welcome plus a live session.
	w := register(t, r, "jack", "j@x.com", "rum", "rum")
	if w.Code != http.StatusCreated {
		t.Fatalf("register: expected 201, got %d", w.Code)
	}
	cookie := sessionCookie(t, w)

	// Create a task; it lands in TODO.
	w = postForm(t, r, "/do", cookie, url.Values{"title": {"Buy rum"}, "text": {"We're out"}})
	if w.Code != http.StatusCreated {
		t.Fatalf("create: expected 201, got %d: %s", w.Code, w.Body.String())
	}
	b := fetchBoard(t, r, cookie)
	if len(b.Todo) != 1 || b.Todo[0].Title != "Buy rum" {
		t.Fatalf("expected exactly the created task in TODO, got %+v", b.Todo)
	}
	taskID := b.Todo[0].ID

	// Move it to DOING; it leaves TODO.
	w = postForm(t, r, "/doing", cookie, url.Values{"id": {fmt.Sprintf("%d", taskID)}})
	if w.Code != http.StatusOK {
		t.Fatalf("doing: expected 200, got %d: %s", w.Code, w.Body.String())
	}
	b = fetchBoard(t, r, cookie)
	if len(b.Todo) != 0 {
		t.Fatalf("task still in TODO after move")
	}
	if len(b.Doing) != 1 || b.Doing[0].ID != taskID {
		t.Fatalf("expected task in DOING, got %+v", b.Doing)
	}

	// Logout; the board is gated again.
	if w = get(t, r, "/logout", cookie); w.Code != http.StatusOK {
		t.Fatalf("logout: expected 200, got %d", w.Code)
	}
	if w = get(t, r, "/", cookie); w.Code != http.StatusUnauthorized {
		t.Fatalf("expected 401 after logout, got %d", w.Code)
	}
}

func TestSetStatus_MissingTaskIs404(t *testing.T) {
	r := newTestRouter()
	cookie := sessionCookie(t, register(t, r, "jack", "j@x.com", "rum", "rum"))

	w := postForm(t, r, "/doing", cookie, url.Values{"id": {"9999"}})
	if w.Code != http.StatusNotFound {
		t.Fatalf("expected 404, got %d", w.Code)
	}
}

func TestDelete_MissingTaskIsNoop(t *testing.T) {
	r := newTestRouter()
	cookie := sessionCookie(t, register(t, r, "jack", "j@x.com", "rum", "rum"))

	postForm(t, r, "/do", cookie, url.Values{"title": {"keep"}, "text": {"me"}})

	w := postForm(t, r, "/delete", cookie, url.Values{"id": {"9999"}})
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d: %s", w.Code, w.Body.String())
	}
	if b := fetchBoard(t, r, cookie); len(b.Todo) != 1 {
		t.Fatalf("unrelated task was affected")
	}
}

func TestForms_DescribeExpectedFields(t *testing.T) {
	r := newTestRouter()

	w := get(t, r, "/register", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	for _, field := range []string{"username", "email", "password", "confirm"} {
		if !strings.Contains(w.Body.String(), field) {
			t.Fatalf("register form missing %q: %s", field, w.Body.String())
		}
	}

	w = get(t, r, "/login", "")
	if w.Code != http.StatusOK {
		t.Fatalf("expected 200, got %d", w.Code)
	}
	if !strings.Contains(w.Body.String(), "password") {
		t.Fatalf("login form missing password field: %s", w.Body.String())
	}
}
