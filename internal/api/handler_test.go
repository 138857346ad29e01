package api_test

import (
	"bytes"
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/emicklei/go-restful/v3"
	"github.com/palettelab/color-agent/internal/api"
	"github.com/palettelab/color-agent/internal/api/middleware"
	"github.com/palettelab/color-agent/internal/config"
	"github.com/palettelab/color-agent/internal/llm"
	"github.com/palettelab/color-agent/internal/models"
	"github.com/palettelab/color-agent/internal/resolver"
	"github.com/palettelab/color-agent/internal/validator"
	"github.com/rs/zerolog"
)

// fakeLLMClient answers every prompt with a fixed body, or an error.
type fakeLLMClient struct {
	content string
	err     error
}

func (f *fakeLLMClient) InvokeModel(ctx context.Context, request llm.LLMRequest) (*llm.LLMResponse, error) {
	if f.err != nil {
		return nil, f.err
	}
	return &llm.LLMResponse{Content: f.content}, nil
}

type fixedVerdict struct {
	verdict validator.Verdict
}

func (f *fixedVerdict) Validate(ctx context.Context, text string) validator.Verdict {
	return f.verdict
}

func setupTestAPI(t *testing.T, client llm.LLMClient, verdict validator.Verdict) *restful.Container {
	t.Helper()

	logger := zerolog.Nop()
	res, err := resolver.New(client, &fixedVerdict{verdict: verdict}, config.Default(), resolver.Options{
		BatchSize:  2,
		BatchDelay: time.Millisecond,
	}, &logger)
	if err != nil {
		t.Fatalf("Failed to build resolver: %v", err)
	}

	handler := api.NewHandler(res, &logger)
	container := restful.NewContainer()
	container.Filter(middleware.RecoverPanic)
	api.RegisterRoutes(container, handler)
	return container
}

func allow() validator.Verdict {
	return validator.Verdict{Valid: true}
}

func postJSON(t *testing.T, container *restful.Container, path string, body any) *httptest.ResponseRecorder {
	t.Helper()

	payload, err := json.Marshal(body)
	if err != nil {
		t.Fatalf("Failed to marshal request: %v", err)
	}

	req := httptest.NewRequest(http.MethodPost, path, bytes.NewReader(payload))
	req.Header.Set("Content-Type", "application/json")

	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)
	return recorder
}

func TestAPI_Health(t *testing.T) {
	container := setupTestAPI(t, &fakeLLMClient{}, allow())

	req := httptest.NewRequest(http.MethodGet, "/api/v1/health", nil)
	recorder := httptest.NewRecorder()
	container.ServeHTTP(recorder, req)

	if recorder.Code != http.StatusOK {
		t.Errorf("Expected status 200, got %d", recorder.Code)
	}

	var response api.HealthResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.Status != "ok" {
		t.Errorf("Expected status 'ok', got '%s'", response.Status)
	}
}

func TestAPI_SingleLookup(t *testing.T) {
	client := &fakeLLMClient{
		content: `{"colorName": "Navy", "hexCode": "#000080", "description": "a dark blue"}`,
	}
	container := setupTestAPI(t, client, allow())

	recorder := postJSON(t, container, "/api/v1/colors", models.ColorRequest{
		ColorDescription: "navy",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response models.ColorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if response.ColorName != "Navy" || response.HexCode != "#000080" {
		t.Errorf("Unexpected response: %+v", response)
	}
}

func TestAPI_SingleLookupRejected(t *testing.T) {
	container := setupTestAPI(t, &fakeLLMClient{}, validator.Verdict{
		Valid:  false,
		Reason: "not about colors",
	})

	recorder := postJSON(t, container, "/api/v1/colors", models.ColorRequest{
		ColorDescription: "my tax return",
	})

	if recorder.Code != http.StatusUnprocessableEntity {
		t.Fatalf("Expected status 422, got %d", recorder.Code)
	}

	var response middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if response.Error == "" {
		t.Error("Expected an error message")
	}
}

func TestAPI_BatchLookup(t *testing.T) {
	client := &fakeLLMClient{
		content: `{"colorName": "Some Color", "hexCode": "#123456", "description": "a color"}`,
	}
	container := setupTestAPI(t, client, allow())

	recorder := postJSON(t, container, "/api/v1/colors", models.ColorRequest{
		ColorDescriptions: []string{"red", "blue", "green"},
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response models.BatchResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(response.Results))
	}
	for i, expected := range []string{"red", "blue", "green"} {
		if response.Results[i].OriginalInput != expected {
			t.Errorf("Result %d: expected originalInput '%s', got '%s'", i, expected, response.Results[i].OriginalInput)
		}
	}
}

func TestAPI_Suggestion(t *testing.T) {
	client := &fakeLLMClient{
		content: `[{"colorName": "Sage", "hexCode": "#9CAF88", "description": "muted green", "category": "Walls"}]`,
	}
	container := setupTestAPI(t, client, allow())

	recorder := postJSON(t, container, "/api/v1/colors", models.ColorRequest{
		SuggestionQuery: "calm home office",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response models.BatchResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Results) != 1 || response.Results[0].Category != "Walls" {
		t.Errorf("Unexpected results: %+v", response.Results)
	}
}

func TestAPI_RejectsEmptyRequest(t *testing.T) {
	container := setupTestAPI(t, &fakeLLMClient{}, allow())

	recorder := postJSON(t, container, "/api/v1/colors", map[string]any{})

	if recorder.Code != http.StatusBadRequest {
		t.Fatalf("Expected status 400, got %d", recorder.Code)
	}

	var response middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if response.Error == "" {
		t.Error("Expected a descriptive error message")
	}
}

func TestAPI_RejectsEmptyBatchList(t *testing.T) {
	container := setupTestAPI(t, &fakeLLMClient{}, allow())

	recorder := postJSON(t, container, "/api/v1/colors", map[string]any{
		"colorDescriptions": []string{},
	})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty colorDescriptions, got %d", recorder.Code)
	}
}

func TestAPI_RejectsMultipleFields(t *testing.T) {
	container := setupTestAPI(t, &fakeLLMClient{}, allow())

	recorder := postJSON(t, container, "/api/v1/colors", models.ColorRequest{
		ColorDescription: "navy",
		SuggestionQuery:  "calm home office",
	})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for ambiguous request, got %d", recorder.Code)
	}
}

func TestAPI_UpstreamGarbageIsBadGateway(t *testing.T) {
	client := &fakeLLMClient{content: "no json here"}
	container := setupTestAPI(t, client, allow())

	recorder := postJSON(t, container, "/api/v1/colors", models.ColorRequest{
		ColorDescription: "navy",
	})

	if recorder.Code != http.StatusBadGateway {
		t.Fatalf("Expected status 502, got %d", recorder.Code)
	}

	var response middleware.ErrorResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse error response: %v", err)
	}
	if response.Error != "invalid response format" {
		t.Errorf("Expected opaque parse error, got '%s'", response.Error)
	}
}

func TestAPI_BatchText(t *testing.T) {
	client := &fakeLLMClient{
		content: `{"colorName": "Some Color", "hexCode": "#123456", "description": "a color"}`,
	}
	container := setupTestAPI(t, client, allow())

	recorder := postJSON(t, container, "/api/v1/colors/batch-text", models.BatchTextRequest{
		RawText: "Blues:\nnavy, sky blue\nteal",
	})

	if recorder.Code != http.StatusOK {
		t.Fatalf("Expected status 200, got %d: %s", recorder.Code, recorder.Body.String())
	}

	var response models.BatchResponse
	if err := json.Unmarshal(recorder.Body.Bytes(), &response); err != nil {
		t.Fatalf("Failed to parse response: %v", err)
	}
	if len(response.Results) != 3 {
		t.Fatalf("Expected 3 results, got %d", len(response.Results))
	}
	if response.Results[0].Category != "Blues" {
		t.Errorf("Expected parsed category to survive resolution, got '%s'", response.Results[0].Category)
	}
}

func TestAPI_BatchTextRejectsEmpty(t *testing.T) {
	container := setupTestAPI(t, &fakeLLMClient{}, allow())

	recorder := postJSON(t, container, "/api/v1/colors/batch-text", models.BatchTextRequest{
		RawText: "   ",
	})

	if recorder.Code != http.StatusBadRequest {
		t.Errorf("Expected status 400 for empty rawText, got %d", recorder.Code)
	}
}
