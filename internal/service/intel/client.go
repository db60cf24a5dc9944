package intel

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"
	"time"

	appconfig "github.com/volleyclip/clipper/internal/config"
	apperrors "github.com/volleyclip/clipper/internal/errors"
	"github.com/volleyclip/clipper/internal/model"
)

const maxErrorBodyBytes = 4096

// APIError represents a non-2xx response from the intelligence service
type APIError struct {
	StatusCode int
	Body       string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("intelligence service: HTTP %d: %s", e.StatusCode, e.Body)
}

// HTTPClient is the production Client implementation
type HTTPClient struct {
	baseURL    string
	apiKey     string
	httpClient *http.Client
}

// NewHTTPClient creates a Client from intel configuration
func NewHTTPClient(cfg appconfig.IntelConfig) *HTTPClient {
	return &HTTPClient{
		baseURL: cfg.BaseURL,
		apiKey:  cfg.APIKey,
		httpClient: &http.Client{
			Timeout: cfg.Timeout,
		},
	}
}

// newHTTPClientForTest wires an explicit base URL and http.Client
func newHTTPClientForTest(baseURL string, httpClient *http.Client) *HTTPClient {
	if httpClient == nil {
		httpClient = &http.Client{Timeout: 10 * time.Second}
	}
	return &HTTPClient{baseURL: baseURL, apiKey: "test-key", httpClient: httpClient}
}

type createIndexRequest struct {
	IndexName string        `json:"index_name"`
	Models    []ModelConfig `json:"models"`
	Addons    []string      `json:"addons,omitempty"`
}

type idResponse struct {
	ID string `json:"_id"`
}

// CreateIndex creates a named index configured with the given models
func (c *HTTPClient) CreateIndex(ctx context.Context, name string, models []ModelConfig) (string, error) {
	req := createIndexRequest{
		IndexName: name,
		Models:    models,
		Addons:    []string{"thumbnail"},
	}

	var resp idResponse
	if err := c.doJSON(ctx, http.MethodPost, "/indexes", req, &resp); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeExternal, "failed to create index")
	}
	if resp.ID == "" {
		return "", apperrors.New(apperrors.CodeExternal, "index creation returned no identifier")
	}
	return resp.ID, nil
}

type registerAssetRequest struct {
	Method string `json:"method"`
	URL    string `json:"url"`
}

// RegisterAsset registers a fetchable source URL with an index.
// URL registration keeps the asset retrievable to the indexing backend
// without any local state on this side.
func (c *HTTPClient) RegisterAsset(ctx context.Context, indexID, sourceURL string) (string, error) {
	req := registerAssetRequest{Method: "url", URL: sourceURL}

	var resp idResponse
	path := fmt.Sprintf("/indexes/%s/assets", indexID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeExternal, "failed to register asset")
	}
	if resp.ID == "" {
		return "", apperrors.New(apperrors.CodeExternal, "asset registration returned no identifier")
	}
	return resp.ID, nil
}

type startTaskRequest struct {
	AssetID string `json:"asset_id"`
}

// StartIndexingTask triggers indexing of a registered asset
func (c *HTTPClient) StartIndexingTask(ctx context.Context, indexID, assetID string) (string, error) {
	req := startTaskRequest{AssetID: assetID}

	var resp idResponse
	path := fmt.Sprintf("/indexes/%s/indexed-assets", indexID)
	if err := c.doJSON(ctx, http.MethodPost, path, req, &resp); err != nil {
		return "", apperrors.Wrap(err, apperrors.CodeExternal, "failed to start indexing task")
	}
	if resp.ID == "" {
		return "", apperrors.New(apperrors.CodeExternal, "indexing task returned no identifier")
	}
	return resp.ID, nil
}

// GetAssetStatus reports the indexing state of an asset
func (c *HTTPClient) GetAssetStatus(ctx context.Context, indexID, assetID string) (*AssetStatus, error) {
	var resp AssetStatus
	path := fmt.Sprintf("/indexes/%s/indexed-assets/%s", indexID, assetID)
	if err := c.doJSON(ctx, http.MethodGet, path, nil, &resp); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternal, "failed to get asset status")
	}
	if resp.Status == "" {
		return nil, apperrors.New(apperrors.CodeExternal, "asset status response missing status field")
	}
	return &resp, nil
}

// segmentSchema constrains the analyze response to a list of {start, end}
// segments so the answer is machine-parseable.
var segmentSchema = map[string]any{
	"type": "object",
	"properties": map[string]any{
		"segments": map[string]any{
			"type": "array",
			"items": map[string]any{
				"type": "object",
				"properties": map[string]any{
					"start": map[string]any{"type": "number"},
					"end":   map[string]any{"type": "number"},
				},
				"required": []string{"start", "end"},
			},
		},
	},
	"required": []string{"segments"},
}

type analyzeRequest struct {
	VideoID        string         `json:"video_id"`
	Prompt         string         `json:"prompt"`
	Temperature    float64        `json:"temperature"`
	ResponseFormat responseFormat `json:"response_format"`
}

type responseFormat struct {
	Type       string         `json:"type"`
	JSONSchema map[string]any `json:"json_schema"`
}

type analyzeResponse struct {
	Data string `json:"data"`
}

type segmentsPayload struct {
	Segments *[]model.Segment `json:"segments"`
}

// Query runs a semantic query against an indexed asset
func (c *HTTPClient) Query(ctx context.Context, assetID, prompt string) ([]model.Segment, error) {
	req := analyzeRequest{
		VideoID:     assetID,
		Prompt:      prompt,
		Temperature: 0,
		ResponseFormat: responseFormat{
			Type:       "json_schema",
			JSONSchema: segmentSchema,
		},
	}

	var resp analyzeResponse
	if err := c.doJSON(ctx, http.MethodPost, "/analyze", req, &resp); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternal, "semantic query failed")
	}

	// The schema-constrained answer arrives as a JSON string; parse strictly.
	var payload segmentsPayload
	if err := json.Unmarshal([]byte(resp.Data), &payload); err != nil {
		return nil, apperrors.Wrap(err, apperrors.CodeExternal, "semantic query returned malformed JSON")
	}
	if payload.Segments == nil {
		return nil, apperrors.New(apperrors.CodeExternal, "semantic query response missing segments field")
	}

	return *payload.Segments, nil
}

// doJSON performs one JSON round trip against the service
func (c *HTTPClient) doJSON(ctx context.Context, method, path string, body, out any) error {
	var reqBody io.Reader
	if body != nil {
		data, err := json.Marshal(body)
		if err != nil {
			return fmt.Errorf("marshal request: %w", err)
		}
		reqBody = bytes.NewReader(data)
	}

	req, err := http.NewRequestWithContext(ctx, method, c.baseURL+path, reqBody)
	if err != nil {
		return fmt.Errorf("create request: %w", err)
	}
	req.Header.Set("x-api-key", c.apiKey)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	resp, err := c.httpClient.Do(req)
	if err != nil {
		return fmt.Errorf("http request failed: %w", err)
	}
	defer resp.Body.Close()

	if resp.StatusCode < 200 || resp.StatusCode >= 300 {
		errBody, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBodyBytes))
		return &APIError{StatusCode: resp.StatusCode, Body: string(errBody)}
	}

	if out != nil {
		if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
			return fmt.Errorf("decode response: %w", err)
		}
	}
	return nil
}
