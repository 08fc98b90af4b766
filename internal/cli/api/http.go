package api

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"strings"
	"time"

	"IEats/internal/cli/repo"
)

// CookieName: имя cookie сессии на сервере.
const CookieName = "auth_token"

// ErrNoAuthCookie: сервер не прислал cookie сессии.
var ErrNoAuthCookie = errors.New("no auth cookie in response")

// Error: ответ сервера с кодом не 2xx. Code берётся из поля "error" тела.
type Error struct {
	Status int
	Code   string
	Field  string
	Body   string
}

func (e *Error) Error() string {
	switch {
	case e.Field != "":
		return fmt.Sprintf("server status %d: %s (%s)", e.Status, e.Code, e.Field)
	case e.Code != "":
		return fmt.Sprintf("server status %d: %s", e.Status, e.Code)
	default:
		return fmt.Sprintf("server status %d: %s", e.Status, e.Body)
	}
}

// IsStatus сообщает, является ли err ответом сервера с указанным статусом.
func IsStatus(err error, status int) bool {
	var apiErr *Error
	return errors.As(err, &apiErr) && apiErr.Status == status
}

// Client: HTTP-клиент REST API. Токен берётся из Tokens на каждый запрос.
type Client struct {
	BaseURL string
	Tokens  repo.TokenStore
	HTTP    *http.Client
}

// NewClient создаёт клиента с таймаутом по умолчанию.
func NewClient(baseURL string, tokens repo.TokenStore) *Client {
	return &Client{
		BaseURL: strings.TrimRight(baseURL, "/"),
		Tokens:  tokens,
		HTTP:    &http.Client{Timeout: 30 * time.Second},
	}
}

func (c *Client) token() string {
	if c.Tokens == nil {
		return ""
	}
	tok, _ := c.Tokens.Load()
	return tok
}

// Do выполняет запрос с JSON-телом и декодирует JSON-ответ в out (если out != nil).
// Ответ не 2xx возвращается как *Error.
func (c *Client) Do(ctx context.Context, method, path string, payload, out any) (*http.Response, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewReader(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, c.BaseURL+path, body)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")
	if tok := c.token(); tok != "" {
		req.AddCookie(&http.Cookie{Name: CookieName, Value: tok})
	}

	httpClient := c.HTTP
	if httpClient == nil {
		httpClient = http.DefaultClient
	}
	resp, err := httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()
	raw, err := io.ReadAll(resp.Body)
	if err != nil {
		return resp, err
	}

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &Error{Status: resp.StatusCode, Body: strings.TrimSpace(string(raw))}
		var e struct {
			Error string `json:"error"`
			Field string `json:"field"`
		}
		if json.Unmarshal(raw, &e) == nil {
			apiErr.Code, apiErr.Field = e.Error, e.Field
		}
		return resp, apiErr
	}
	if out != nil && len(raw) > 0 {
		if err := json.Unmarshal(raw, out); err != nil {
			return resp, fmt.Errorf("decode: %w", err)
		}
	}
	return resp, nil
}

// GetJSON: GET с декодированием ответа.
func (c *Client) GetJSON(ctx context.Context, path string, out any) error {
	_, err := c.Do(ctx, http.MethodGet, path, nil, out)
	return err
}

// PostJSON: POST с JSON-телом.
func (c *Client) PostJSON(ctx context.Context, path string, payload, out any) (*http.Response, error) {
	return c.Do(ctx, http.MethodPost, path, payload, out)
}

// PutJSON: PUT с JSON-телом, ответ не декодируется.
func (c *Client) PutJSON(ctx context.Context, path string, payload any) error {
	_, err := c.Do(ctx, http.MethodPut, path, payload, nil)
	return err
}

// Delete: DELETE без тела.
func (c *Client) Delete(ctx context.Context, path string) error {
	_, err := c.Do(ctx, http.MethodDelete, path, nil, nil)
	return err
}

// PersistAuthFromResponse извлекает auth cookie из ответа и сохраняет его в store.
func PersistAuthFromResponse(resp *http.Response, store repo.TokenStore) error {
	if resp == nil {
		return ErrNoAuthCookie
	}
	for _, c := range resp.Cookies() {
		if c.Name == CookieName && c.Value != "" {
			return store.Save(c.Value)
		}
	}
	return ErrNoAuthCookie
}
