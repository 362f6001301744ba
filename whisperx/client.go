package whisperx

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"mime/multipart"
	"net/http"
	"net/url"
	"os"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

const (
	// DefaultBaseURL is where the local WhisperX server listens
	DefaultBaseURL = "http://localhost:8000"

	// DefaultTimeout for upload requests (long files can take time)
	DefaultTimeout = 30 * time.Minute
)

// Client is the TranscriptorWhisperX server API client
type Client struct {
	baseURL    string
	httpClient *http.Client
	debug      bool
}

// ClientOption configures the Client
type ClientOption func(*Client)

// WithBaseURL sets a custom base URL (for testing or a remote server)
func WithBaseURL(url string) ClientOption {
	return func(c *Client) {
		if url != "" {
			c.baseURL = strings.TrimSuffix(url, "/")
		}
	}
}

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) ClientOption {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the HTTP client timeout
func WithTimeout(timeout time.Duration) ClientOption {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// WithDebug enables debug logging
func WithDebug(debug bool) ClientOption {
	return func(c *Client) {
		c.debug = debug
	}
}

// NewClient creates a new server API client
func NewClient(opts ...ClientOption) *Client {
	c := &Client{
		baseURL: DefaultBaseURL,
		httpClient: &http.Client{
			Timeout: DefaultTimeout,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// Transcribe uploads an audio file and blocks until the server returns the
// transcription. The server handles one transcription at a time and answers
// 429 while busy; that surfaces here as an *APIError like any other non-2xx.
func (c *Client) Transcribe(ctx context.Context, req *TranscribeRequest) (*TranscribeResponse, error) {
	if req.FilePath == "" {
		return nil, fmt.Errorf("FilePath must be specified")
	}

	file, err := os.Open(req.FilePath)
	if err != nil {
		return nil, fmt.Errorf("failed to open file: %w", err)
	}
	defer file.Close()

	language := req.Language
	if language == "" {
		language = LanguagePT
	}
	precision := req.Precision
	if precision == "" {
		precision = PrecisionGood
	}

	body := &bytes.Buffer{}
	writer := multipart.NewWriter(body)

	part, err := writer.CreateFormFile("audio", filepath.Base(req.FilePath))
	if err != nil {
		return nil, fmt.Errorf("failed to create form file: %w", err)
	}
	if _, err := io.Copy(part, file); err != nil {
		return nil, fmt.Errorf("failed to copy file to form: %w", err)
	}

	if err := writer.WriteField("timestamp", strconv.FormatBool(req.Timestamp)); err != nil {
		return nil, fmt.Errorf("failed to write timestamp: %w", err)
	}
	if err := writer.WriteField("diferenciar_narrador", strconv.FormatBool(req.DiarizeSpeakers)); err != nil {
		return nil, fmt.Errorf("failed to write diferenciar_narrador: %w", err)
	}
	if err := writer.WriteField("idioma", language); err != nil {
		return nil, fmt.Errorf("failed to write idioma: %w", err)
	}
	if err := writer.WriteField("precisao", precision); err != nil {
		return nil, fmt.Errorf("failed to write precisao: %w", err)
	}

	if err := writer.Close(); err != nil {
		return nil, fmt.Errorf("failed to close multipart writer: %w", err)
	}

	url := c.baseURL + "/transcribe"
	httpReq, err := http.NewRequestWithContext(ctx, "POST", url, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}
	httpReq.Header.Set("Content-Type", writer.FormDataContentType())

	if c.debug {
		fmt.Printf("[DEBUG] POST %s\n", url)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if c.debug {
		fmt.Printf("[DEBUG] Response status: %d\n", resp.StatusCode)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	var result TranscribeResponse
	if err := json.Unmarshal(respBody, &result); err != nil {
		return nil, fmt.Errorf("failed to parse response: %w", err)
	}

	return &result, nil
}

// Stop asks the server to interrupt the transcription in progress. The
// server stops between segments, so the original upload request still
// settles on its own, possibly with partial text.
func (c *Client) Stop(ctx context.Context) error {
	httpReq, err := http.NewRequestWithContext(ctx, "POST", c.baseURL+"/stop", nil)
	if err != nil {
		return fmt.Errorf("failed to create request: %w", err)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()
	io.Copy(io.Discard, resp.Body)

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return &APIError{StatusCode: resp.StatusCode}
	}
	return nil
}

// Export fetches the last completed transcription in the given format and
// returns the raw file contents.
func (c *Client) Export(ctx context.Context, jobID, format string) ([]byte, error) {
	q := url.Values{}
	q.Set("job_id", jobID)
	q.Set("formato", format)

	httpReq, err := http.NewRequestWithContext(ctx, "GET", c.baseURL+"/export?"+q.Encode(), nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	if c.debug {
		fmt.Printf("[DEBUG] GET %s\n", httpReq.URL)
	}

	resp, err := c.httpClient.Do(httpReq)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		return nil, parseAPIError(resp.StatusCode, respBody)
	}

	return respBody, nil
}

// parseAPIError extracts the FastAPI-style {"detail": ...} message when the
// body carries one; otherwise the error falls back to a generic HTTP message.
func parseAPIError(status int, body []byte) *APIError {
	var payload struct {
		Detail string `json:"detail"`
	}
	if err := json.Unmarshal(body, &payload); err == nil && payload.Detail != "" {
		return &APIError{StatusCode: status, Detail: payload.Detail}
	}
	return &APIError{StatusCode: status}
}
