package handlers_test

import (
	"bytes"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/VinayakFrontend/task-manager-app/handlers"
	"github.com/VinayakFrontend/task-manager-app/middleware"
	"github.com/VinayakFrontend/task-manager-app/models"
	"github.com/VinayakFrontend/task-manager-app/store"
)

type env struct {
	t     *testing.T
	srv   *httptest.Server
	users *store.MemoryUserStore
	tasks *store.MemoryTaskStore
}

type msgReply struct {
	Msg string `json:"msg"`
}

func newEnv(t *testing.T) *env {
	t.Helper()

	users := store.NewMemoryUserStore()
	tasks := store.NewMemoryTaskStore()
	router := handlers.Router(
		&handlers.AuthHandler{Users: users},
		&handlers.TaskHandler{Tasks: tasks, Users: users},
	)
	srv := httptest.NewServer(router)
	t.Cleanup(srv.Close)

	return &env{t: t, srv: srv, users: users, tasks: tasks}
}

// request performs an API call and decodes the reply into out when non-nil.
func (e *env) request(method, path, token string, body, out interface{}) int {
	e.t.Helper()

	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			e.t.Fatalf("encoding body: %v", err)
		}
	}

	req, err := http.NewRequest(method, e.srv.URL+path, &buf)
	if err != nil {
		e.t.Fatalf("building request: %v", err)
	}
	req.Header.Set("Content-Type", "application/json")
	if token != "" {
		req.Header.Set(middleware.TokenHeader, token)
	}

	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		e.t.Fatalf("%s %s: %v", method, path, err)
	}
	defer resp.Body.Close()

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			e.t.Fatalf("decoding %s %s reply: %v", method, path, err)
		}
	}
	return resp.StatusCode
}

// signup registers an account and returns its session token.
func (e *env) signup(name, email, password string, role models.Role) string {
	e.t.Helper()

	var reply struct {
		Token string `json:"token"`
	}
	code := e.request(http.MethodPost, "/api/auth/signup", "", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}, &reply)
	if code != http.StatusOK {
		e.t.Fatalf("signup %s: status %d", email, code)
	}
	return reply.Token
}

func TestHealth(t *testing.T) {
	e := newEnv(t)

	var reply struct {
		Status string `json:"status"`
	}
	code := e.request(http.MethodGet, "/api/health", "", nil, &reply)
	if code != http.StatusOK || reply.Status != "healthy" {
		t.Errorf("health = %d %q", code, reply.Status)
	}
}

func TestSignupValidation(t *testing.T) {
	e := newEnv(t)

	var reply msgReply
	code := e.request(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"email": "no-name@example.com", "password": "pw",
	}, &reply)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
	if reply.Msg != "Please include all fields" {
		t.Errorf("msg = %q", reply.Msg)
	}
}

func TestSignupRejectsUnknownRole(t *testing.T) {
	e := newEnv(t)

	code := e.request(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "A", "email": "a@example.com", "password": "pw", "role": "superuser",
	}, nil)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
}

func TestSignupDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	e.signup("Alice", "alice@example.com", "secret", models.RoleUser)

	var reply msgReply
	code := e.request(http.MethodPost, "/api/auth/signup", "", map[string]string{
		"name": "Alice Again", "email": "alice@example.com", "password": "other",
	}, &reply)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
	if reply.Msg != "User already exists" {
		t.Errorf("msg = %q", reply.Msg)
	}
}

func TestLoginFailuresIndistinguishable(t *testing.T) {
	e := newEnv(t)
	e.signup("Alice", "alice@example.com", "secret", models.RoleUser)

	var wrongPass, noUser msgReply
	code := e.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "wrong",
	}, &wrongPass)
	if code != http.StatusBadRequest {
		t.Errorf("wrong password status = %d, want 400", code)
	}
	code = e.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "nobody@example.com", "password": "whatever",
	}, &noUser)
	if code != http.StatusBadRequest {
		t.Errorf("unknown email status = %d, want 400", code)
	}

	if wrongPass.Msg != noUser.Msg {
		t.Errorf("messages differ: %q vs %q", wrongPass.Msg, noUser.Msg)
	}
}

func TestLoginSucceeds(t *testing.T) {
	e := newEnv(t)
	e.signup("Alice", "alice@example.com", "secret", models.RoleUser)

	var reply struct {
		Token string `json:"token"`
	}
	code := e.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "alice@example.com", "password": "secret",
	}, &reply)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if reply.Token == "" {
		t.Error("no token issued")
	}
}

func TestProtectedRoutesRequireToken(t *testing.T) {
	e := newEnv(t)

	code := e.request(http.MethodGet, "/api/tasks", "", nil, nil)
	if code != http.StatusUnauthorized {
		t.Errorf("no token: status = %d, want 401", code)
	}

	req, _ := http.NewRequest(http.MethodGet, e.srv.URL+"/api/tasks", nil)
	req.Header.Set(middleware.TokenHeader, "garbage")
	resp, err := http.DefaultClient.Do(req)
	if err != nil {
		t.Fatal(err)
	}
	resp.Body.Close()
	if resp.StatusCode != http.StatusUnauthorized {
		t.Errorf("bad token: status = %d, want 401", resp.StatusCode)
	}
}

func TestAdminOnlyEndpointsForbiddenForUser(t *testing.T) {
	e := newEnv(t)
	userTok := e.signup("Bob", "bob@example.com", "secret", models.RoleUser)

	endpoints := []struct {
		method, path string
	}{
		{http.MethodGet, "/api/auth/users"},
		{http.MethodPost, "/api/auth/users"},
		{http.MethodPut, "/api/auth/users/64f0c2a5d4b9e1a2c3d4e5f6"},
		{http.MethodDelete, "/api/auth/users/64f0c2a5d4b9e1a2c3d4e5f6"},
		{http.MethodPost, "/api/tasks"},
		{http.MethodPut, "/api/tasks/64f0c2a5d4b9e1a2c3d4e5f6"},
		{http.MethodDelete, "/api/tasks/64f0c2a5d4b9e1a2c3d4e5f6"},
	}

	for _, ep := range endpoints {
		var reply msgReply
		code := e.request(ep.method, ep.path, userTok, map[string]string{}, &reply)
		if code != http.StatusForbidden {
			t.Errorf("%s %s: status = %d, want 403", ep.method, ep.path, code)
		}
		if reply.Msg != "Access denied" {
			t.Errorf("%s %s: msg = %q", ep.method, ep.path, reply.Msg)
		}
	}
}

func TestListUsersOmitsPasswordHash(t *testing.T) {
	e := newEnv(t)
	adminTok := e.signup("Admin", "admin@example.com", "secret", models.RoleAdmin)
	e.signup("Bob", "bob@example.com", "secret", models.RoleUser)

	var raw []map[string]interface{}
	code := e.request(http.MethodGet, "/api/auth/users", adminTok, nil, &raw)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if len(raw) != 2 {
		t.Fatalf("len(users) = %d, want 2", len(raw))
	}
	for _, u := range raw {
		if _, ok := u["password"]; ok {
			t.Error("password field exposed in user listing")
		}
		if _, ok := u["passwordHash"]; ok {
			t.Error("password hash exposed in user listing")
		}
	}
}

func TestCreateUserIssuesNoToken(t *testing.T) {
	e := newEnv(t)
	adminTok := e.signup("Admin", "admin@example.com", "secret", models.RoleAdmin)

	var raw map[string]interface{}
	code := e.request(http.MethodPost, "/api/auth/users", adminTok, map[string]string{
		"name": "Carol", "email": "carol@example.com", "password": "secret", "role": "user",
	}, &raw)
	if code != http.StatusCreated {
		t.Fatalf("status = %d, want 201", code)
	}
	if raw["msg"] != "User created" {
		t.Errorf("msg = %v", raw["msg"])
	}
	if _, ok := raw["token"]; ok {
		t.Error("directory user creation issued a token")
	}

	// The created account can log in normally.
	code = e.request(http.MethodPost, "/api/auth/login", "", map[string]string{
		"email": "carol@example.com", "password": "secret",
	}, nil)
	if code != http.StatusOK {
		t.Errorf("created user login status = %d, want 200", code)
	}
}

func TestCreateUserRequiresAllFields(t *testing.T) {
	e := newEnv(t)
	adminTok := e.signup("Admin", "admin@example.com", "secret", models.RoleAdmin)

	var reply msgReply
	code := e.request(http.MethodPost, "/api/auth/users", adminTok, map[string]string{
		"name": "Carol", "email": "carol@example.com", "password": "secret",
	}, &reply)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
	if reply.Msg != "All fields are required" {
		t.Errorf("msg = %q", reply.Msg)
	}
}

func TestUpdateUser(t *testing.T) {
	e := newEnv(t)
	adminTok := e.signup("Admin", "admin@example.com", "secret", models.RoleAdmin)
	e.signup("Bob", "bob@example.com", "secret", models.RoleUser)

	var users []models.UserInfo
	e.request(http.MethodGet, "/api/auth/users", adminTok, nil, &users)
	var bobID string
	for _, u := range users {
		if u.Email == "bob@example.com" {
			bobID = u.ID.Hex()
		}
	}

	var updated models.UserInfo
	code := e.request(http.MethodPut, "/api/auth/users/"+bobID, adminTok, map[string]string{
		"name": "Robert", "email": "robert@example.com", "role": "admin",
	}, &updated)
	if code != http.StatusOK {
		t.Fatalf("status = %d, want 200", code)
	}
	if updated.Name != "Robert" || updated.Email != "robert@example.com" || updated.Role != models.RoleAdmin {
		t.Errorf("updated = %+v", updated)
	}
}

func TestUpdateUserDuplicateEmail(t *testing.T) {
	e := newEnv(t)
	adminTok := e.signup("Admin", "admin@example.com", "secret", models.RoleAdmin)
	e.signup("Alice", "alice@example.com", "secret", models.RoleUser)
	e.signup("Bob", "bob@example.com", "secret", models.RoleUser)

	var users []models.UserInfo
	e.request(http.MethodGet, "/api/auth/users", adminTok, nil, &users)
	var bobID string
	for _, u := range users {
		if u.Email == "bob@example.com" {
			bobID = u.ID.Hex()
		}
	}

	// Taking another user's email is rejected.
	var reply msgReply
	code := e.request(http.MethodPut, "/api/auth/users/"+bobID, adminTok, map[string]string{
		"name": "Bob", "email": "alice@example.com", "role": "user",
	}, &reply)
	if code != http.StatusBadRequest {
		t.Errorf("status = %d, want 400", code)
	}
	if reply.Msg != "User already exists" {
		t.Errorf("msg = %q, want %q", reply.Msg, "User already exists")
	}

	// Keeping the current email is still allowed.
	code = e.request(http.MethodPut, "/api/auth/users/"+bobID, adminTok, map[string]string{
		"name": "Robert", "email": "bob@example.com", "role": "user",
	}, nil)
	if code != http.StatusOK {
		t.Errorf("status = %d, want 200", code)
	}
}

func TestUpdateUserNotFound(t *testing.T) {
	e := newEnv(t)
	adminTok := e.signup("Admin", "admin@example.com", "secret", models.RoleAdmin)

	code := e.request(http.MethodPut, "/api/auth/users/64f0c2a5d4b9e1a2c3d4e5f6", adminTok, map[string]string{
		"name": "X", "email": "x@example.com", "role": "user",
	}, nil)
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}

func TestDeleteUserNotFound(t *testing.T) {
	e := newEnv(t)
	adminTok := e.signup("Admin", "admin@example.com", "secret", models.RoleAdmin)

	code := e.request(http.MethodDelete, "/api/auth/users/64f0c2a5d4b9e1a2c3d4e5f6", adminTok, nil, nil)
	if code != http.StatusNotFound {
		t.Errorf("status = %d, want 404", code)
	}
}
