package main

import (
	"bytes"
	"encoding/json"
	"net/http/httptest"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/terra-clan/maturity-engine/internal/api"
	"github.com/terra-clan/maturity-engine/internal/assessment"
	"github.com/terra-clan/maturity-engine/internal/catalog"
	"github.com/terra-clan/maturity-engine/internal/config"
	"github.com/terra-clan/maturity-engine/internal/models"
)

const contentDir = "../../content"

func run(t *testing.T, args ...string) (string, error) {
	t.Helper()

	var out bytes.Buffer
	root := newRootCmd()
	root.SetOut(&out)
	root.SetErr(&out)
	root.SetArgs(args)

	err := root.Execute()
	return out.String(), err
}

func writeAnswers(t *testing.T, body string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "answers.yaml")
	if err := os.WriteFile(path, []byte(body), 0o644); err != nil {
		t.Fatal(err)
	}
	return path
}

func skipWithoutContent(t *testing.T) {
	t.Helper()
	if _, err := os.Stat(contentDir); os.IsNotExist(err) {
		t.Skip("content directory not found, skipping")
	}
}

func TestValidate(t *testing.T) {
	skipWithoutContent(t)

	out, err := run(t, "validate", "--dir", contentDir)
	if err != nil {
		t.Fatalf("validate failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "is valid") || !strings.Contains(out, "scores 3..15") {
		t.Errorf("unexpected output:\n%s", out)
	}
}

func TestValidateReportsProblems(t *testing.T) {
	dir := t.TempDir()
	os.WriteFile(filepath.Join(dir, catalog.ClassificationFile), []byte("questions: []\n"), 0o644)
	os.WriteFile(filepath.Join(dir, catalog.PathwaysFile), []byte("pathways: []\n"), 0o644)
	os.WriteFile(filepath.Join(dir, catalog.LevelsFile), []byte("levels: []\n"), 0o644)
	os.Mkdir(filepath.Join(dir, catalog.PoolsDir), 0o755)

	out, err := run(t, "validate", "--dir", dir)
	if err == nil {
		t.Fatal("expected validation to fail")
	}
	if !strings.Contains(out, "  - ") {
		t.Errorf("expected problems to be listed, got:\n%s", out)
	}
}

func TestAssess(t *testing.T) {
	skipWithoutContent(t)

	path := writeAnswers(t, "classification: [1, 2, 2]\nanswers:\n  infra-1: 1\n  strategy-1: 2\n")

	out, err := run(t, "assess", "--dir", contentDir, "--answers", path)
	if err != nil {
		t.Fatalf("assess failed: %v\n%s", err, out)
	}
	for _, want := range []string{"(growing)", "Overall:  2.5", "3 - Defined", "Data Strategy"} {
		if !strings.Contains(out, want) {
			t.Errorf("output missing %q:\n%s", want, out)
		}
	}
}

func TestAssessJSONWithPathway(t *testing.T) {
	skipWithoutContent(t)

	path := writeAnswers(t, "pathway: early\nanswers:\n  infra-3-early: 0\n  culture-2: 1\n")

	out, err := run(t, "assess", "--dir", contentDir, "--answers", path, "--json")
	if err != nil {
		t.Fatalf("assess failed: %v\n%s", err, out)
	}

	var result models.AssessmentResult
	if err := json.Unmarshal([]byte(out), &result); err != nil {
		t.Fatalf("invalid JSON output: %v\n%s", err, out)
	}
	if result.Pathway.ID != "early" || result.OverallScore != 1.5 {
		t.Errorf("unexpected result %+v", result)
	}
}

func TestAssessRejectsForeignQuestion(t *testing.T) {
	skipWithoutContent(t)

	path := writeAnswers(t, "classification: [0, 0, 0]\nanswers:\n  governance-5-advanced: 0\n")

	_, err := run(t, "assess", "--dir", contentDir, "--answers", path)
	if err == nil || !strings.Contains(err.Error(), "governance-5-advanced") {
		t.Errorf("expected scoring error naming the question, got %v", err)
	}
}

func TestAnswerFileValidation(t *testing.T) {
	if _, err := readAnswerFile(writeAnswers(t, "answers:\n  infra-1: 0\n")); err == nil {
		t.Error("expected error without classification or pathway")
	}
	if _, err := readAnswerFile(writeAnswers(t, "pathway: early\n")); err == nil {
		t.Error("expected error without answers")
	}
	if _, err := readAnswerFile(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("expected error for missing file")
	}
}

func TestRemoteScore(t *testing.T) {
	skipWithoutContent(t)

	c, err := catalog.Load(contentDir)
	if err != nil {
		t.Fatal(err)
	}
	server := api.NewServer(config.ServerConfig{}, config.CORSConfig{}, api.Dependencies{
		Engine: assessment.NewEngine(c),
	})
	srv := httptest.NewServer(server.Router())
	defer srv.Close()

	path := writeAnswers(t, "classification: [4, 4, 4]\nanswers:\n  analytics-5-advanced: 4\n")

	out, err := run(t, "remote", "score", "--url", srv.URL, "--answers", path)
	if err != nil {
		t.Fatalf("remote score failed: %v\n%s", err, out)
	}
	if !strings.Contains(out, "(advanced)") || !strings.Contains(out, "5 - Optimised") {
		t.Errorf("unexpected output:\n%s", out)
	}

	path = writeAnswers(t, "pathway: early\nanswers:\n  nope: 0\n")
	if _, err := run(t, "remote", "score", "--url", srv.URL, "--answers", path); err == nil || !strings.Contains(err.Error(), "scoring_error") {
		t.Errorf("expected scoring_error, got %v", err)
	}
}
