package webapp

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"log/slog"
	"net/http"
	"net/url"
	"strings"
	"time"
)

// Client talks to the remote backend API the front end proxies to. The
// backend itself (auth, retrieval, SQL execution) is an external
// collaborator; this client only shapes requests and decodes responses.
type Client struct {
	baseURL string
	http    *http.Client
	logger  *slog.Logger
}

// NewClient builds a backend client. Passing a nil httpClient selects a
// default with a 30s timeout; tests inject their own.
func NewClient(baseURL string, httpClient *http.Client) *Client {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 30 * time.Second}
	}

	return &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    httpClient,
		logger:  slog.Default().With("component", "backend_client"),
	}
}

// APIError carries the backend's error detail alongside the status code.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail != "" {
		return fmt.Sprintf("backend returned %d: %s", e.StatusCode, e.Detail)
	}
	return fmt.Sprintf("backend returned %d", e.StatusCode)
}

type authResponse struct {
	AccessToken string `json:"access_token"`
	Detail      string `json:"detail"`
}

// RetrievedProduct is one product hit inside a chat response.
type RetrievedProduct struct {
	Name     string  `json:"name"`
	Category string  `json:"category"`
	Price    float64 `json:"price"`
	Color    string  `json:"color"`
	Image    string  `json:"image"`
	Score    float64 `json:"score"`
	Snippet  string  `json:"snippet"`
}

// OutletResult is one outlet row inside a chat response. Older backend
// versions send the phone under "contact".
type OutletResult struct {
	Name        string `json:"name"`
	Address     string `json:"address"`
	PhoneNumber string `json:"phone_number"`
	Contact     string `json:"contact"`
	Services    string `json:"services"`
	PlaceType   string `json:"place_type"`
	OpensAt     string `json:"opens_at"`
}

func (o *OutletResult) Phone() string {
	if o.PhoneNumber != "" {
		return o.PhoneNumber
	}
	return o.Contact
}

// ChatResponse is the structured reply from POST /chat.
type ChatResponse struct {
	Summary           string             `json:"summary"`
	RetrievedProducts []RetrievedProduct `json:"retrieved_products"`
	ExecutedSQLResult []OutletResult     `json:"executed_sql_result"`
}

// Login exchanges credentials for an access token via form-encoded
// POST /login.
func (c *Client) Login(ctx context.Context, username, password string) (string, error) {
	resp, err := c.postForm(ctx, "/login", username, password)
	if err != nil {
		return "", err
	}
	return resp.AccessToken, nil
}

// Register creates an account via form-encoded POST /register.
func (c *Client) Register(ctx context.Context, username, password string) error {
	_, err := c.postForm(ctx, "/register", username, password)
	return err
}

func (c *Client) postForm(ctx context.Context, path, username, password string) (*authResponse, error) {
	form := url.Values{
		"username": {username},
		"password": {password},
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path,
		strings.NewReader(form.Encode()))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/x-www-form-urlencoded")

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	var decoded authResponse
	body, _ := io.ReadAll(resp.Body)
	_ = json.Unmarshal(body, &decoded)

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: decoded.Detail}
	}

	return &decoded, nil
}

// Health probes GET /health.
func (c *Client) Health(ctx context.Context) error {
	req, err := http.NewRequestWithContext(ctx, http.MethodGet, c.baseURL+"/health", nil)
	if err != nil {
		return fmt.Errorf("failed to build request: %w", err)
	}

	resp, err := c.http.Do(req)
	if err != nil {
		return fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return &APIError{StatusCode: resp.StatusCode}
	}

	return nil
}

// Products runs GET /products?query= and returns the raw JSON payload.
func (c *Client) Products(ctx context.Context, token, query string) (json.RawMessage, error) {
	return c.getRaw(ctx, "/products", token, query)
}

// Outlets runs GET /outlets?query= and returns the raw JSON payload.
func (c *Client) Outlets(ctx context.Context, token, query string) (json.RawMessage, error) {
	return c.getRaw(ctx, "/outlets", token, query)
}

func (c *Client) getRaw(ctx context.Context, path, token, query string) (json.RawMessage, error) {
	u := c.baseURL + path + "?query=" + url.QueryEscape(query)

	req, err := http.NewRequestWithContext(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	setAuth(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	body, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode != http.StatusOK {
		return nil, &APIError{StatusCode: resp.StatusCode}
	}

	return json.RawMessage(body), nil
}

// Chat posts the prompt to POST /chat and decodes the structured reply.
func (c *Client) Chat(ctx context.Context, token, prompt string) (*ChatResponse, error) {
	payload, err := json.Marshal(map[string]string{"prompt": prompt})
	if err != nil {
		return nil, fmt.Errorf("failed to encode prompt: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/chat",
		bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("failed to build request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	setAuth(req, token)

	resp, err := c.http.Do(req)
	if err != nil {
		return nil, fmt.Errorf("backend unreachable: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		var decoded struct {
			Detail string `json:"detail"`
		}
		_ = json.NewDecoder(resp.Body).Decode(&decoded)
		return nil, &APIError{StatusCode: resp.StatusCode, Detail: decoded.Detail}
	}

	var chat ChatResponse
	if err := json.NewDecoder(resp.Body).Decode(&chat); err != nil {
		return nil, fmt.Errorf("failed to decode chat response: %w", err)
	}

	return &chat, nil
}

func setAuth(req *http.Request, token string) {
	if token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
}
