package gateway

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"os"
	"strings"
	"time"

	"github.com/velore/contactbook/internal/domain"
	"github.com/velore/contactbook/internal/platform/envutil"
	"github.com/velore/contactbook/internal/platform/logger"
)

// RequestError is the single failure kind the gateway reports for a non-2xx
// response. It carries the status text only; callers get a pass/fail signal.
type RequestError struct {
	Status     int
	StatusText string
}

func (e *RequestError) Error() string {
	return fmt.Sprintf("request failed: %s", e.StatusText)
}

type Config struct {
	BaseURL string
	Timeout time.Duration
}

func ConfigFromEnv() Config {
	timeoutSec := envutil.Int("CONTACTBOOK_TIMEOUT_SECONDS", 30)
	return Config{
		BaseURL: strings.TrimSpace(os.Getenv("CONTACTBOOK_URL")),
		Timeout: time.Duration(timeoutSec) * time.Second,
	}
}

// Client speaks the contacts JSON contract. Each call is exactly one network
// round-trip; there are no retries and no caching.
type Client struct {
	log        *logger.Logger
	baseURL    string
	httpClient *http.Client
}

func New(log *logger.Logger, cfg Config) (*Client, error) {
	if log == nil {
		return nil, fmt.Errorf("logger required")
	}

	cfg.BaseURL = strings.TrimSpace(cfg.BaseURL)
	if cfg.BaseURL == "" {
		cfg.BaseURL = "http://localhost:8080"
	}
	cfg.BaseURL = strings.TrimRight(cfg.BaseURL, "/")

	if cfg.Timeout <= 0 {
		cfg.Timeout = 30 * time.Second
	}

	return &Client{
		log:        log.With("client", "ContactGateway"),
		baseURL:    cfg.BaseURL,
		httpClient: &http.Client{Timeout: cfg.Timeout},
	}, nil
}

func NewFromEnv(log *logger.Logger) (*Client, error) {
	return New(log, ConfigFromEnv())
}

type contactEnvelope struct {
	Contact domain.Fields `json:"contact"`
}

// List fetches the full collection, the hydration source for clients without
// a server-rendered page.
func (c *Client) List(ctx context.Context) ([]domain.Contact, error) {
	body, err := c.do(ctx, http.MethodGet, "/contacts.json", nil)
	if err != nil {
		return nil, err
	}
	var contacts []domain.Contact
	if err := json.Unmarshal(body, &contacts); err != nil {
		return nil, fmt.Errorf("decode contact list: %w", err)
	}
	return contacts, nil
}

func (c *Client) Create(ctx context.Context, fields domain.Fields) (*domain.Contact, error) {
	body, err := c.do(ctx, http.MethodPost, "/contacts.json", contactEnvelope{Contact: fields})
	if err != nil {
		return nil, err
	}
	return decodeContact(body), nil
}

func (c *Client) Update(ctx context.Context, id int64, fields domain.Fields) (*domain.Contact, error) {
	body, err := c.do(ctx, http.MethodPut, fmt.Sprintf("/contacts/%d.json", id), contactEnvelope{Contact: fields})
	if err != nil {
		return nil, err
	}
	return decodeContact(body), nil
}

func (c *Client) Delete(ctx context.Context, id int64) error {
	_, err := c.do(ctx, http.MethodDelete, fmt.Sprintf("/contacts/%d.json", id), nil)
	return err
}

func (c *Client) do(ctx context.Context, method, path string, payload any) ([]byte, error) {
	var reqBody io.Reader
	if payload != nil {
		raw, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		reqBody = bytes.NewReader(raw)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return nil, err
	}
	if payload != nil {
		req.Header.Set("Content-Type", "application/json")
	}
	req.Header.Set("Accept", "application/json")

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, err
	}
	defer resp.Body.Close()

	body, _ := io.ReadAll(resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		c.log.Warn("request failed", "method", method, "path", path, "status", resp.StatusCode)
		statusText := strings.TrimSpace(resp.Status)
		if statusText == "" {
			statusText = http.StatusText(resp.StatusCode)
		}
		return nil, &RequestError{Status: resp.StatusCode, StatusText: statusText}
	}
	return body, nil
}

// decodeContact is lenient: update and delete endpoints may answer 2xx with
// an empty body, which counts as an empty result rather than an error.
func decodeContact(body []byte) *domain.Contact {
	var contact domain.Contact
	if err := json.Unmarshal(body, &contact); err != nil {
		return &domain.Contact{}
	}
	return &contact
}
