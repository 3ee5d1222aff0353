package client

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"net/url"
	"strings"
	"time"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// Client is a Go SDK for the maturity-engine API
type Client struct {
	baseURL    string
	httpClient *http.Client
}

// Option configures the client
type Option func(*Client)

// WithHTTPClient sets a custom HTTP client
func WithHTTPClient(client *http.Client) Option {
	return func(c *Client) {
		c.httpClient = client
	}
}

// WithTimeout sets the client timeout
func WithTimeout(timeout time.Duration) Option {
	return func(c *Client) {
		c.httpClient.Timeout = timeout
	}
}

// NewClient creates a new maturity-engine client
func NewClient(baseURL string, opts ...Option) *Client {
	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		httpClient: &http.Client{
			Timeout: 30 * time.Second,
		},
	}

	for _, opt := range opts {
		opt(c)
	}

	return c
}

// APIError is an error envelope returned by the server
type APIError struct {
	StatusCode int
	Code       string `json:"code"`
	Message    string `json:"message"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("API error (HTTP %d): %s - %s", e.StatusCode, e.Code, e.Message)
}

// QuestionSet is the assembled question list for a pathway
type QuestionSet struct {
	Pathway   models.Pathway    `json:"pathway"`
	Questions []models.Question `json:"questions"`
	Total     int               `json:"total"`
}

// Health checks the service health
func (c *Client) Health(ctx context.Context) error {
	return c.call(ctx, http.MethodGet, "/health", nil, nil)
}

// ClassificationQuestions lists the classification questions
func (c *Client) ClassificationQuestions(ctx context.Context) ([]models.Question, error) {
	var result struct {
		Questions []models.Question `json:"questions"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/catalog/classification", nil, &result); err != nil {
		return nil, err
	}
	return result.Questions, nil
}

// Pathways lists the assessment pathways
func (c *Client) Pathways(ctx context.Context) ([]models.Pathway, error) {
	var result struct {
		Pathways []models.Pathway `json:"pathways"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/catalog/pathways", nil, &result); err != nil {
		return nil, err
	}
	return result.Pathways, nil
}

// MaturityLevels lists the maturity tiers
func (c *Client) MaturityLevels(ctx context.Context) ([]models.MaturityLevel, error) {
	var result struct {
		Levels []models.MaturityLevel `json:"levels"`
	}
	if err := c.call(ctx, http.MethodGet, "/api/v1/catalog/levels", nil, &result); err != nil {
		return nil, err
	}
	return result.Levels, nil
}

// Classify resolves the pathway for classification option indices
func (c *Client) Classify(ctx context.Context, choices []int) (*models.Classification, error) {
	var result models.Classification
	req := models.ClassifyRequest{Choices: choices}
	if err := c.call(ctx, http.MethodPost, "/api/v1/assessment/classify", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Questions returns the assembled question set for a pathway
func (c *Client) Questions(ctx context.Context, pathwayID string) (*QuestionSet, error) {
	var result QuestionSet
	path := fmt.Sprintf("/api/v1/assessment/pathways/%s/questions", url.PathEscape(pathwayID))
	if err := c.call(ctx, http.MethodGet, path, nil, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// Score scores answers (question id -> option index) against a pathway
func (c *Client) Score(ctx context.Context, pathwayID string, answers map[string]int) (*models.AssessmentResult, error) {
	var result models.AssessmentResult
	req := models.ScoreRequest{PathwayID: pathwayID, Answers: answers}
	if err := c.call(ctx, http.MethodPost, "/api/v1/assessment/score", req, &result); err != nil {
		return nil, err
	}
	return &result, nil
}

// call sends in as JSON (if not nil) and decodes the envelope's data into out
func (c *Client) call(ctx context.Context, method, path string, in, out interface{}) error {
	var body io.Reader
	if in != nil {
		data, err := json.Marshal(in)
		if err != nil {
			return fmt.Errorf("failed to marshal request: %w", err)
		}
		body = bytes.NewReader(data)
	}

	resp, err := c.doRequest(ctx, method, path, body)
	if err != nil {
		return err
	}

	if out == nil {
		return nil
	}

	var result struct {
		Success bool            `json:"success"`
		Data    json.RawMessage `json:"data"`
	}
	if err := json.Unmarshal(resp, &result); err != nil {
		return fmt.Errorf("failed to unmarshal response: %w", err)
	}
	if err := json.Unmarshal(result.Data, out); err != nil {
		return fmt.Errorf("failed to unmarshal response data: %w", err)
	}

	return nil
}

func (c *Client) doRequest(ctx context.Context, method, path string, body io.Reader) ([]byte, error) {
	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, body)
	if err != nil {
		return nil, fmt.Errorf("failed to create request: %w", err)
	}

	req.Header.Set("Accept", "application/json")
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return nil, fmt.Errorf("request failed: %w", err)
	}
	defer resp.Body.Close()

	respBody, err := io.ReadAll(resp.Body)
	if err != nil {
		return nil, fmt.Errorf("failed to read response: %w", err)
	}

	if resp.StatusCode >= 400 {
		apiErr := &APIError{StatusCode: resp.StatusCode}
		var envelope struct {
			Error *APIError `json:"error"`
		}
		if err := json.Unmarshal(respBody, &envelope); err == nil && envelope.Error != nil {
			apiErr.Code = envelope.Error.Code
			apiErr.Message = envelope.Error.Message
		} else {
			apiErr.Code = "http_error"
			apiErr.Message = strings.TrimSpace(string(respBody))
		}
		return nil, apiErr
	}

	return respBody, nil
}
