// Package client envuelve la API REST /api/v1 con un servicio por dominio.
package client

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"net/http"
	"net/http/cookiejar"
	"net/url"
	"strings"
	"time"

	"github.com/jhoicas/retail-admin/internal/admin/storage"
	"github.com/jhoicas/retail-admin/internal/application/dto"
)

// Nombres del token CSRF compartidos con el servidor.
const (
	csrfCookieName = "csrftoken"
	csrfHeaderName = "X-CSRFToken"
)

// maxBodyBytes límite de lectura de respuestas.
const maxBodyBytes = 4 << 20

// APIError respuesta no exitosa de la API. Conserva el status para logs y tests;
// la interfaz muestra un mensaje genérico.
type APIError struct {
	Status  int
	Code    string
	Message string
}

func (e *APIError) Error() string {
	if e.Code != "" {
		return fmt.Sprintf("api: HTTP %d %s: %s", e.Status, e.Code, e.Message)
	}
	return fmt.Sprintf("api: HTTP %d: %s", e.Status, e.Message)
}

// StatusOf devuelve el status HTTP de un *APIError envuelto; 0 si el error es de red u otro.
func StatusOf(err error) int {
	var apiErr *APIError
	if errors.As(err, &apiErr) {
		return apiErr.Status
	}
	return 0
}

// Config opciones del cliente.
type Config struct {
	BaseURL string        // ej. http://localhost:8080
	Timeout time.Duration // 0 = 15s
}

// Client cliente HTTP autenticado. El token se lee de storage en cada petición.
type Client struct {
	baseURL    *url.URL
	httpClient *http.Client
	store      storage.Storage

	Auth        *AuthService
	Inventory   *InventoryService
	Orders      *OrdersService
	Forecasting *ForecastingService
	Vision      *VisionService
}

// New construye el cliente. El cookie jar conserva la cookie csrftoken entre peticiones.
func New(cfg Config, store storage.Storage) (*Client, error) {
	if store == nil {
		return nil, fmt.Errorf("client: storage es obligatorio")
	}
	base, err := url.Parse(strings.TrimRight(cfg.BaseURL, "/"))
	if err != nil || base.Scheme == "" || base.Host == "" {
		return nil, fmt.Errorf("client: base URL inválida %q", cfg.BaseURL)
	}
	jar, err := cookiejar.New(nil)
	if err != nil {
		return nil, fmt.Errorf("client: cookie jar: %w", err)
	}
	timeout := cfg.Timeout
	if timeout <= 0 {
		timeout = 15 * time.Second
	}
	c := &Client{
		baseURL:    base,
		httpClient: &http.Client{Timeout: timeout, Jar: jar},
		store:      store,
	}
	c.Auth = &AuthService{c: c}
	c.Inventory = &InventoryService{c: c}
	c.Orders = &OrdersService{c: c}
	c.Forecasting = &ForecastingService{c: c}
	c.Vision = &VisionService{c: c}
	return c, nil
}

func (c *Client) endpoint(path string, query url.Values) string {
	u := *c.baseURL
	u.Path = c.baseURL.Path + "/api/v1/" + strings.TrimLeft(path, "/")
	if len(query) > 0 {
		u.RawQuery = query.Encode()
	}
	return u.String()
}

func (c *Client) csrfToken() string {
	for _, ck := range c.httpClient.Jar.Cookies(c.baseURL) {
		if ck.Name == csrfCookieName {
			return ck.Value
		}
	}
	return ""
}

// do ejecuta la petición. in se serializa como JSON; out (si no es nil) recibe la respuesta.
// Las peticiones mutantes llevan X-CSRFToken cuando la cookie existe.
func (c *Client) do(ctx context.Context, method, path string, query url.Values, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		raw, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("client: serializar request: %w", err)
		}
		body = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.endpoint(path, query), body)
	if err != nil {
		return fmt.Errorf("client: crear request: %w", err)
	}
	req.Header.Set("Accept", "application/json")
	if in != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	if token, ok := c.store.Get(storage.KeyAuthToken); ok && token != "" {
		req.Header.Set("Authorization", "Bearer "+token)
	}
	if method != http.MethodGet && method != http.MethodHead {
		if tok := c.csrfToken(); tok != "" {
			req.Header.Set(csrfHeaderName, tok)
		}
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		if ctx.Err() != nil {
			return fmt.Errorf("client: %s %s cancelado: %w", method, path, ctx.Err())
		}
		return fmt.Errorf("client: %s %s: %w", method, path, err)
	}
	defer resp.Body.Close()

	raw, err := io.ReadAll(io.LimitReader(resp.Body, maxBodyBytes))
	if err != nil {
		return fmt.Errorf("client: leer respuesta: %w", err)
	}
	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		apiErr := &APIError{Status: resp.StatusCode}
		var e dto.ErrorResponse
		if json.Unmarshal(raw, &e) == nil && (e.Code != "" || e.Message != "") {
			apiErr.Code, apiErr.Message = e.Code, e.Message
		} else {
			apiErr.Message = strings.TrimSpace(string(raw))
		}
		return apiErr
	}
	if out == nil || len(raw) == 0 {
		return nil
	}
	if err := json.Unmarshal(raw, out); err != nil {
		return fmt.Errorf("client: deserializar %s %s: %w", method, path, err)
	}
	return nil
}

// pageQuery agrega limit/offset si están definidos.
func pageQuery(q url.Values, limit, offset int) url.Values {
	if q == nil {
		q = url.Values{}
	}
	if limit > 0 {
		q.Set("limit", fmt.Sprint(limit))
	}
	if offset > 0 {
		q.Set("offset", fmt.Sprint(offset))
	}
	return q
}

func setID(q url.Values, key string, id int64) {
	if id > 0 {
		q.Set(key, fmt.Sprint(id))
	}
}
