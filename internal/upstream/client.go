// Package upstream is the HTTP client for the sorplus admin backend. The
// backend's response shapes have drifted across revisions, so every decoder
// here is tolerant: bare arrays or {items}/{data} envelopes, totals under
// total/count/meta.total, and a skip+len fallback when none is present.
package upstream

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/sirupsen/logrus"
	"github.com/sorplus/public-gateway/internal/models"
)

// ErrAuthRequired signals an upstream 401/403 on an authenticated call.
var ErrAuthRequired = errors.New("authentication required")

// StatusError carries a non-2xx upstream status plus the backend's message.
type StatusError struct {
	StatusCode int
	Message    string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("upstream returned status %d: %s", e.StatusCode, e.Message)
}

// ListParams are forwarded to the public complaints endpoint. The gateway
// never depends on the backend honoring q/category; they are hints.
type ListParams struct {
	Skip       int
	Take       int
	Query      string
	Category   string
	CategoryID string
	Sort       string
}

// Client talks to the admin backend.
type Client struct {
	http *resty.Client
}

// New creates a backend client rooted at baseURL.
func New(baseURL string, timeout time.Duration) *Client {
	return &Client{
		http: resty.New().
			SetBaseURL(strings.TrimRight(baseURL, "/")).
			SetTimeout(timeout).
			SetHeader("User-Agent", "sorplus-public-gateway/1.0").
			SetHeader("Accept", "application/json"),
	}
}

// Categories fetches the category list. A malformed body degrades to an
// empty list rather than an error; only transport and status failures
// propagate.
func (c *Client) Categories(ctx context.Context) ([]models.Category, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/api/categories")
	if err != nil {
		return nil, fmt.Errorf("failed to fetch categories: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, &StatusError{StatusCode: resp.StatusCode(), Message: extractMessage(resp.Body())}
	}

	var categories []models.Category
	if err := json.Unmarshal(resp.Body(), &categories); err != nil {
		var envelope struct {
			Items []models.Category `json:"items"`
			Data  []models.Category `json:"data"`
		}
		if err := json.Unmarshal(resp.Body(), &envelope); err != nil {
			logrus.Debugf("Unrecognized categories payload, serving empty list")
			return nil, nil
		}
		categories = envelope.Items
		if categories == nil {
			categories = envelope.Data
		}
	}

	// Options need a usable name; half-formed rows are dropped.
	clean := categories[:0]
	for _, cat := range categories {
		if strings.TrimSpace(cat.Name) != "" {
			clean = append(clean, cat)
		}
	}
	return clean, nil
}

// PublicComplaints fetches one listing window and the backend's total when
// it reports one, otherwise skip+len(items).
func (c *Client) PublicComplaints(ctx context.Context, params ListParams) ([]models.Complaint, int, error) {
	req := c.http.R().
		SetContext(ctx).
		SetQueryParam("skip", strconv.Itoa(params.Skip)).
		SetQueryParam("take", strconv.Itoa(params.Take))

	if q := strings.TrimSpace(params.Query); q != "" {
		req.SetQueryParam("q", q)
	}
	if params.CategoryID != "" {
		req.SetQueryParam("categoryId", params.CategoryID)
	}
	if params.Category != "" {
		req.SetQueryParam("category", params.Category)
	}
	switch params.Sort {
	case "views":
		req.SetQueryParam("sort", "VIEWS")
		req.SetQueryParam("orderBy", "views")
		req.SetQueryParam("order", "desc")
	case "comments":
		req.SetQueryParam("sort", "COMMENTS")
		req.SetQueryParam("orderBy", "comments")
		req.SetQueryParam("order", "desc")
	default:
		req.SetQueryParam("sort", "NEW")
		req.SetQueryParam("orderBy", "createdAt")
		req.SetQueryParam("order", "desc")
	}

	resp, err := req.Get("/api/complaints/public")
	if err != nil {
		return nil, 0, fmt.Errorf("failed to fetch complaints: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return nil, 0, &StatusError{StatusCode: resp.StatusCode(), Message: extractMessage(resp.Body())}
	}

	records, total := decodeComplaintList(resp.Body())
	if total < 0 {
		total = params.Skip + len(records)
	}
	return records, total, nil
}

// Complaint fetches a single record, tolerating {item}/{data} wrapping.
func (c *Client) Complaint(ctx context.Context, id string) (models.Complaint, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get("/api/complaints/" + id)
	if err != nil {
		return models.Complaint{}, fmt.Errorf("failed to fetch complaint %s: %w", id, err)
	}
	if resp.StatusCode() != http.StatusOK {
		return models.Complaint{}, &StatusError{StatusCode: resp.StatusCode(), Message: extractMessage(resp.Body())}
	}

	var record models.Complaint
	if err := json.Unmarshal(resp.Body(), &record); err == nil && record.ID != "" {
		return record, nil
	}

	var envelope struct {
		Item *models.Complaint `json:"item"`
		Data *models.Complaint `json:"data"`
	}
	if err := json.Unmarshal(resp.Body(), &envelope); err == nil {
		if envelope.Item != nil {
			return *envelope.Item, nil
		}
		if envelope.Data != nil {
			return *envelope.Data, nil
		}
	}
	return record, nil
}

// Submit creates a complaint on behalf of an authenticated user. 401/403
// map to ErrAuthRequired so the handler can route to the login flow.
func (c *Client) Submit(ctx context.Context, token string, submission models.Submission) (json.RawMessage, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Authorization", "Bearer "+token).
		SetHeader("Content-Type", "application/json").
		SetBody(submission).
		Post("/api/complaints")
	if err != nil {
		return nil, fmt.Errorf("failed to submit complaint: %w", err)
	}

	switch {
	case resp.StatusCode() == http.StatusUnauthorized || resp.StatusCode() == http.StatusForbidden:
		return nil, ErrAuthRequired
	case resp.StatusCode() >= 300:
		return nil, &StatusError{StatusCode: resp.StatusCode(), Message: extractMessage(resp.Body())}
	}
	return json.RawMessage(resp.Body()), nil
}

// Login exchanges credentials for a session.
func (c *Client) Login(ctx context.Context, creds models.Credentials) (models.AuthSession, error) {
	return c.exchange(ctx, "/api/auth/login", creds)
}

// Register creates an account and returns the fresh session.
func (c *Client) Register(ctx context.Context, creds models.Credentials) (models.AuthSession, error) {
	return c.exchange(ctx, "/api/auth/register", creds)
}

func (c *Client) exchange(ctx context.Context, path string, creds models.Credentials) (models.AuthSession, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		SetHeader("Content-Type", "application/json").
		SetBody(creds).
		Post(path)
	if err != nil {
		return models.AuthSession{}, fmt.Errorf("auth request failed: %w", err)
	}
	if resp.StatusCode() >= 300 {
		return models.AuthSession{}, &StatusError{StatusCode: resp.StatusCode(), Message: extractMessage(resp.Body())}
	}

	var session models.AuthSession
	if err := json.Unmarshal(resp.Body(), &session); err != nil {
		return models.AuthSession{}, fmt.Errorf("failed to decode auth response: %w", err)
	}
	return session, nil
}

// Content fetches an admin-content document (rules, KVKK, terms, about) for
// pass-through proxying: status, content type and body are returned as-is.
func (c *Client) Content(ctx context.Context, path string) (int, string, []byte, error) {
	resp, err := c.http.R().
		SetContext(ctx).
		Get(path)
	if err != nil {
		return 0, "", nil, fmt.Errorf("failed to fetch content %s: %w", path, err)
	}
	return resp.StatusCode(), resp.Header().Get("Content-Type"), resp.Body(), nil
}

// decodeComplaintList accepts a bare array or an {items}/{data} envelope.
// The returned total is -1 when the backend did not report one.
func decodeComplaintList(body []byte) ([]models.Complaint, int) {
	var records []models.Complaint
	if err := json.Unmarshal(body, &records); err == nil {
		return records, -1
	}

	var envelope struct {
		Items []models.Complaint `json:"items"`
		Data  []models.Complaint `json:"data"`
		Total *int               `json:"total"`
		Count *int               `json:"count"`
		Meta  struct {
			Total *int `json:"total"`
		} `json:"meta"`
	}
	if err := json.Unmarshal(body, &envelope); err != nil {
		logrus.Debugf("Unrecognized complaints payload, serving empty list")
		return nil, -1
	}

	records = envelope.Items
	if records == nil {
		records = envelope.Data
	}

	switch {
	case envelope.Total != nil:
		return records, *envelope.Total
	case envelope.Count != nil:
		return records, *envelope.Count
	case envelope.Meta.Total != nil:
		return records, *envelope.Meta.Total
	default:
		return records, -1
	}
}

// extractMessage digs a human-readable error out of an upstream body:
// message, error, or a joined errors array.
func extractMessage(body []byte) string {
	var payload struct {
		Message string   `json:"message"`
		Error   string   `json:"error"`
		Errors  []string `json:"errors"`
	}
	if err := json.Unmarshal(body, &payload); err == nil {
		switch {
		case payload.Message != "":
			return payload.Message
		case payload.Error != "":
			return payload.Error
		case len(payload.Errors) > 0:
			return strings.Join(payload.Errors, ", ")
		}
	}
	text := strings.TrimSpace(string(body))
	if len(text) > 200 {
		text = text[:200]
	}
	return text
}
