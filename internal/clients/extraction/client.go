// Package extraction is the HTTP client for the external document
// extraction capability. The capability accepts a raw file (plus an
// optional document-type hint), runs parsing, AI extraction, and
// validation remotely, and returns one flat structured payload per file.
// It also renders downloadable report artifacts from a payload.
//
// The client owns the error taxonomy of this boundary: rate-limit
// exhaustion is distinguished from other processing failures because the
// caller has to tell the user to wait rather than retry.
package extraction

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"time"

	"github.com/documind/go-documind-backend/internal/domain"
)

// ErrRateLimited reports that the capability refused the call because its
// rate limit is exhausted (HTTP 429).
var ErrRateLimited = errors.New("extraction service rate limit exceeded")

// ErrUnavailable reports a transport-level failure: the capability could
// not be reached at all.
var ErrUnavailable = errors.New("extraction service unreachable")

// APIError is a processing failure reported by the capability itself,
// carrying its human-readable detail message.
type APIError struct {
	StatusCode int
	Detail     string
}

func (e *APIError) Error() string {
	if e.Detail == "" {
		return fmt.Sprintf("extraction service error (status %d)", e.StatusCode)
	}
	return fmt.Sprintf("extraction service error: %s", e.Detail)
}

// ReportKind selects the artifact produced by GenerateReport.
type ReportKind string

const (
	// ReportSpreadsheet renders an invoice payload as an xlsx workbook.
	ReportSpreadsheet ReportKind = "spreadsheet"
	// ReportSummary renders a contract payload as a plain-text legal summary.
	ReportSummary ReportKind = "summary"
)

// Report is a generated downloadable artifact.
type Report struct {
	Content     []byte
	ContentType string
}

// Client calls the extraction capability over HTTP.
type Client struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// New constructs a Client for the capability at baseURL. apiKey may be
// empty when the deployment does not require one.
func New(baseURL, apiKey string, timeout time.Duration) *Client {
	if timeout <= 0 {
		timeout = 60 * time.Second
	}
	return &Client{
		baseURL:    baseURL,
		apiKey:     apiKey,
		httpClient: &http.Client{Timeout: timeout},
	}
}

// Extract submits one file and returns its structured extraction result.
// typeHint forces the invoice or contract schema; empty means auto.
func (c *Client) Extract(ctx context.Context, filename string, content []byte, typeHint string) (*domain.ExtractionResult, error) {
	var body bytes.Buffer
	mw := multipart.NewWriter(&body)

	part, err := mw.CreateFormFile("file", filename)
	if err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if _, err := part.Write(content); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	hint := typeHint
	if hint == "" {
		hint = "auto"
	}
	if err := mw.WriteField("doc_type", hint); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}
	if err := mw.Close(); err != nil {
		return nil, fmt.Errorf("building upload form: %w", err)
	}

	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+"/extract-data", &body)
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", mw.FormDataContentType())
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.asError(resp)
	}

	var result domain.ExtractionResult
	if err := json.NewDecoder(resp.Body).Decode(&result); err != nil {
		return nil, fmt.Errorf("decoding extraction result: %w", err)
	}
	return &result, nil
}

// GenerateReport renders the given payload into a downloadable artifact:
// a spreadsheet for invoices or a text summary for contracts.
func (c *Client) GenerateReport(ctx context.Context, result *domain.ExtractionResult, kind ReportKind) (*Report, error) {
	path := "/generate-excel"
	if kind == ReportSummary {
		path = "/generate-summary"
	}

	payload, err := json.Marshal(result)
	if err != nil {
		return nil, fmt.Errorf("encoding report payload: %w", err)
	}
	req, err := http.NewRequestWithContext(ctx, http.MethodPost, c.baseURL+path, bytes.NewReader(payload))
	if err != nil {
		return nil, fmt.Errorf("creating request: %w", err)
	}
	req.Header.Set("Content-Type", "application/json")
	c.authorize(req)

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrUnavailable, err)
	}
	defer resp.Body.Close()

	if resp.StatusCode != http.StatusOK {
		return nil, c.asError(resp)
	}

	content, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("reading report artifact: %w", err)
	}
	return &Report{
		Content:     content,
		ContentType: resp.Header.Get("Content-Type"),
	}, nil
}

// authorize attaches the bearer token when one is configured.
func (c *Client) authorize(req *http.Request) {
	if c.apiKey != "" {
		req.Header.Set("Authorization", "Bearer "+c.apiKey)
	}
}

// asError maps a non-2xx response into the client's error taxonomy. The
// capability reports failures as {"detail": "..."}; an unparseable body
// falls back to a status-only APIError.
func (c *Client) asError(resp *http.Response) error {
	if resp.StatusCode == http.StatusTooManyRequests {
		return ErrRateLimited
	}

	body, _ := io.ReadAll(io.LimitReader(resp.Body, 64<<10))
	var e struct {
		Detail string `json:"detail"`
	}
	_ = json.Unmarshal(body, &e)
	return &APIError{StatusCode: resp.StatusCode, Detail: e.Detail}
}
