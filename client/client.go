package client

import (
	"bytes"
	"encoding/json"
	"fmt"
	"net/http"
	"time"

	"github.com/VinayakFrontend/task-manager-app/middleware"
	"github.com/VinayakFrontend/task-manager-app/models"
)

// APIError is a non-2xx reply from the server.
type APIError struct {
	Status int
	Msg    string
}

func (e *APIError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return fmt.Sprintf("server returned %d", e.Status)
}

// Unauthorized reports whether err is a 401 reply, meaning the session is
// missing or expired and the user must log in again.
func Unauthorized(err error) bool {
	apiErr, ok := err.(*APIError)
	return ok && apiErr.Status == http.StatusUnauthorized
}

// Client calls the task manager API, attaching the session token to every
// request.
type Client struct {
	baseURL string
	session *Session
	http    *http.Client
}

func New(baseURL string, session *Session) *Client {
	return &Client{
		baseURL: baseURL,
		session: session,
		http:    &http.Client{Timeout: 10 * time.Second},
	}
}

func (c *Client) Session() *Session { return c.session }

func (c *Client) do(method, path string, body, out interface{}) error {
	var buf bytes.Buffer
	if body != nil {
		if err := json.NewEncoder(&buf).Encode(body); err != nil {
			return err
		}
	}

	req, err := http.NewRequest(method, c.baseURL+path, &buf)
	if err != nil {
		return err
	}
	req.Header.Set("Content-Type", "application/json")
	if tok := c.session.Token(); tok != "" {
		req.Header.Set(middleware.TokenHeader, tok)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return err
	}
	defer resp.Body.Close()

	if resp.StatusCode >= 400 {
		var reply struct {
			Msg string `json:"msg"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&reply)
		return &APIError{Status: resp.StatusCode, Msg: reply.Msg}
	}

	if out != nil {
		return json.NewDecoder(resp.Body).Decode(out)
	}
	return nil
}

type tokenReply struct {
	Token string `json:"token"`
}

// Signup registers an account and stores the issued token.
func (c *Client) Signup(name, email, password string, role models.Role) error {
	var reply tokenReply
	err := c.do(http.MethodPost, "/api/auth/signup", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}, &reply)
	if err != nil {
		return err
	}
	return c.session.SetToken(reply.Token)
}

// Login exchanges credentials for a token and stores it.
func (c *Client) Login(email, password string) error {
	var reply tokenReply
	err := c.do(http.MethodPost, "/api/auth/login", map[string]string{
		"email":    email,
		"password": password,
	}, &reply)
	if err != nil {
		return err
	}
	return c.session.SetToken(reply.Token)
}

// Logout drops the stored token.
func (c *Client) Logout() error {
	return c.session.Clear()
}

func (c *Client) ListUsers() ([]models.UserInfo, error) {
	var users []models.UserInfo
	err := c.do(http.MethodGet, "/api/auth/users", nil, &users)
	return users, err
}

func (c *Client) CreateUser(name, email, password string, role models.Role) error {
	return c.do(http.MethodPost, "/api/auth/users", map[string]interface{}{
		"name":     name,
		"email":    email,
		"password": password,
		"role":     role,
	}, nil)
}

func (c *Client) UpdateUser(id, name, email string, role models.Role) (models.UserInfo, error) {
	var user models.UserInfo
	err := c.do(http.MethodPut, "/api/auth/users/"+id, map[string]interface{}{
		"name":  name,
		"email": email,
		"role":  role,
	}, &user)
	return user, err
}

func (c *Client) DeleteUser(id string) error {
	return c.do(http.MethodDelete, "/api/auth/users/"+id, nil, nil)
}

func (c *Client) ListTasks() ([]models.TaskView, error) {
	var tasks []models.TaskView
	err := c.do(http.MethodGet, "/api/tasks", nil, &tasks)
	return tasks, err
}

func (c *Client) CreateTask(title, description, assignedTo string) (models.TaskView, error) {
	var task models.TaskView
	err := c.do(http.MethodPost, "/api/tasks", map[string]string{
		"title":       title,
		"description": description,
		"assignedTo":  assignedTo,
	}, &task)
	return task, err
}

func (c *Client) CompleteTask(id string) (models.TaskView, error) {
	var task models.TaskView
	err := c.do(http.MethodPut, "/api/tasks/"+id+"/complete", nil, &task)
	return task, err
}

func (c *Client) CommentTask(id, text string) (models.TaskView, error) {
	var task models.TaskView
	body := map[string]interface{}{"comment": map[string]string{"text": text}}
	err := c.do(http.MethodPut, "/api/tasks/"+id+"/comment", body, &task)
	return task, err
}

func (c *Client) UpdateTask(id, title, description, assignedTo string) (models.TaskView, error) {
	var task models.TaskView
	err := c.do(http.MethodPut, "/api/tasks/"+id, map[string]string{
		"title":       title,
		"description": description,
		"assignedTo":  assignedTo,
	}, &task)
	return task, err
}

func (c *Client) DeleteTask(id string) error {
	return c.do(http.MethodDelete, "/api/tasks/"+id, nil, nil)
}
