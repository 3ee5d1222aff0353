package client

import (
	"context"
	"encoding/json"
	"errors"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/terra-clan/maturity-engine/internal/models"
)

func writeEnvelope(w http.ResponseWriter, status int, data interface{}, code, message string) {
	w.Header().Set("Content-Type", "application/json")
	w.WriteHeader(status)
	resp := map[string]interface{}{"success": status < 300}
	if data != nil {
		resp["data"] = data
	}
	if code != "" {
		resp["error"] = map[string]string{"code": code, "message": message}
	}
	json.NewEncoder(w).Encode(resp)
}

func TestClassify(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.Method != http.MethodPost || r.URL.Path != "/api/v1/assessment/classify" {
			t.Errorf("unexpected request %s %s", r.Method, r.URL.Path)
		}
		var req models.ClassifyRequest
		if err := json.NewDecoder(r.Body).Decode(&req); err != nil {
			t.Errorf("invalid request body: %v", err)
		}
		if len(req.Choices) != 3 {
			t.Errorf("expected 3 choices, got %v", req.Choices)
		}
		writeEnvelope(w, http.StatusOK, models.Classification{Score: 8, Pathway: models.Pathway{ID: "growing"}}, "", "")
	}))
	defer srv.Close()

	c := NewClient(srv.URL + "/")
	result, err := c.Classify(context.Background(), []int{1, 2, 2})
	if err != nil {
		t.Fatalf("Classify failed: %v", err)
	}
	if result.Score != 8 || result.Pathway.ID != "growing" {
		t.Errorf("unexpected classification %+v", result)
	}
}

func TestScoreAPIError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		writeEnvelope(w, http.StatusUnprocessableEntity, nil, "scoring_error", `scoring failed at "nope": unknown`)
	}))
	defer srv.Close()

	_, err := NewClient(srv.URL).Score(context.Background(), "early", map[string]int{"nope": 0})

	var apiErr *APIError
	if !errors.As(err, &apiErr) {
		t.Fatalf("expected APIError, got %v", err)
	}
	if apiErr.StatusCode != http.StatusUnprocessableEntity || apiErr.Code != "scoring_error" {
		t.Errorf("unexpected error %+v", apiErr)
	}
}

func TestNonEnvelopeError(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		http.Error(w, "bad gateway", http.StatusBadGateway)
	}))
	defer srv.Close()

	err := NewClient(srv.URL).Health(context.Background())
	var apiErr *APIError
	if !errors.As(err, &apiErr) || apiErr.Code != "http_error" || apiErr.Message != "bad gateway" {
		t.Errorf("expected http_error, got %v", err)
	}
}

func TestCatalogCalls(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/api/v1/catalog/pathways":
			writeEnvelope(w, http.StatusOK, map[string]interface{}{
				"pathways": []models.Pathway{{ID: "early"}, {ID: "growing"}},
				"total":    2,
			}, "", "")
		case "/api/v1/catalog/levels":
			writeEnvelope(w, http.StatusOK, map[string]interface{}{
				"levels": []models.MaturityLevel{{Tier: 1, Name: "Initial"}},
				"total":  1,
			}, "", "")
		case "/api/v1/assessment/pathways/early/questions":
			writeEnvelope(w, http.StatusOK, QuestionSet{
				Pathway:   models.Pathway{ID: "early"},
				Questions: []models.Question{{ID: "infra-1"}},
				Total:     1,
			}, "", "")
		default:
			writeEnvelope(w, http.StatusNotFound, nil, "not_found", "not found")
		}
	}))
	defer srv.Close()

	c := NewClient(srv.URL, WithTimeout(5*time.Second))
	ctx := context.Background()

	pathways, err := c.Pathways(ctx)
	if err != nil || len(pathways) != 2 {
		t.Errorf("Pathways: %v, %v", pathways, err)
	}

	levels, err := c.MaturityLevels(ctx)
	if err != nil || len(levels) != 1 || levels[0].Name != "Initial" {
		t.Errorf("MaturityLevels: %v, %v", levels, err)
	}

	set, err := c.Questions(ctx, "early")
	if err != nil || set.Total != 1 || set.Questions[0].ID != "infra-1" {
		t.Errorf("Questions: %+v, %v", set, err)
	}

	if _, err := c.ClassificationQuestions(ctx); err == nil {
		t.Error("expected not_found error")
	}
}

func TestWithHTTPClient(t *testing.T) {
	custom := &http.Client{Timeout: time.Second}
	c := NewClient("http://localhost", WithHTTPClient(custom))
	if c.httpClient != custom {
		t.Error("expected custom http client")
	}
}
