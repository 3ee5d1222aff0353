package catalog

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"sort"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// Files expected in a catalog directory
const (
	ClassificationFile = "classification.yaml"
	PathwaysFile       = "pathways.yaml"
	LevelsFile         = "maturity_levels.yaml"
	PoolsDir           = "pools"
)

// Load reads and validates a catalog directory:
//
//	<dir>/classification.yaml
//	<dir>/pathways.yaml
//	<dir>/maturity_levels.yaml
//	<dir>/pools/*.yaml   (declaration order = filename order)
//
// Nothing is skipped: any unreadable file or invalid content fails the whole load.
func Load(dir string) (*Catalog, error) {
	slog.Info("loading catalog from directory", "dir", dir)

	content, err := ReadDir(dir)
	if err != nil {
		return nil, err
	}

	c, err := New(content)
	if err != nil {
		return nil, err
	}

	classification, pools, questions, pathways, levels := c.Stats()
	slog.Info("catalog loaded",
		"classification_questions", classification,
		"pools", pools,
		"questions", questions,
		"pathways", pathways,
		"levels", levels,
	)
	return c, nil
}

// ReadDir parses a catalog directory without validating it
func ReadDir(dir string) (Content, error) {
	var content Content

	var cf classificationFile
	if err := readYAML(filepath.Join(dir, ClassificationFile), &cf); err != nil {
		return content, err
	}
	for _, q := range cf.Questions {
		content.Classification = append(content.Classification, q.toModel())
	}

	var pf pathwaysFile
	if err := readYAML(filepath.Join(dir, PathwaysFile), &pf); err != nil {
		return content, err
	}
	content.Pathways = pf.Pathways

	var lf levelsFile
	if err := readYAML(filepath.Join(dir, LevelsFile), &lf); err != nil {
		return content, err
	}
	content.Levels = lf.Levels

	pools, err := readPools(filepath.Join(dir, PoolsDir))
	if err != nil {
		return content, err
	}
	content.Pools = pools

	return content, nil
}

// readPools loads every pool file in lexical filename order
func readPools(dir string) ([]models.QuestionPool, error) {
	entries, err := os.ReadDir(dir)
	if err != nil {
		return nil, fmt.Errorf("failed to read pools directory: %w", err)
	}

	var files []string
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		ext := strings.ToLower(filepath.Ext(entry.Name()))
		if ext != ".yaml" && ext != ".yml" {
			continue
		}
		files = append(files, entry.Name())
	}
	sort.Strings(files)

	pools := make([]models.QuestionPool, 0, len(files))
	for _, name := range files {
		var pf poolFile
		if err := readYAML(filepath.Join(dir, name), &pf); err != nil {
			return nil, err
		}

		// Use pool id from YAML, fall back to filename without extension
		id := pf.Pool
		if id == "" {
			id = strings.TrimSuffix(name, filepath.Ext(name))
		}

		pool := models.QuestionPool{ID: id}
		for _, q := range pf.Questions {
			pool.Questions = append(pool.Questions, q.toModel())
		}
		pools = append(pools, pool)

		slog.Debug("question pool loaded", "pool", id, "file", name, "questions", len(pool.Questions))
	}

	return pools, nil
}

func readYAML(path string, out any) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("failed to read %s: %w", filepath.Base(path), err)
	}
	if err := yaml.Unmarshal(data, out); err != nil {
		return fmt.Errorf("failed to parse %s: %w", filepath.Base(path), err)
	}
	return nil
}

// --- YAML file structs ---

// classificationFile represents classification.yaml
type classificationFile struct {
	Questions []questionFile `yaml:"questions"`
}

// pathwaysFile represents pathways.yaml
type pathwaysFile struct {
	Pathways []models.Pathway `yaml:"pathways"`
}

// levelsFile represents maturity_levels.yaml
type levelsFile struct {
	Levels []models.MaturityLevel `yaml:"levels"`
}

// poolFile represents a file under pools/
type poolFile struct {
	Pool      string         `yaml:"pool"`
	Questions []questionFile `yaml:"questions"`
}

// questionFile represents one question entry
type questionFile struct {
	ID          string          `yaml:"id"`
	Dimension   string          `yaml:"dimension"`
	Prompt      string          `yaml:"prompt"`
	Options     []models.Option `yaml:"options"`
	RequiredFor []string        `yaml:"required_for"`
	SkipFor     []string        `yaml:"skip_for"`
}

func (q questionFile) toModel() models.Question {
	return models.Question{
		ID:        q.ID,
		Dimension: q.Dimension,
		Prompt:    q.Prompt,
		Options:   q.Options,
		Inclusion: models.InclusionRule{
			RequiredFor: q.RequiredFor,
			SkipFor:     q.SkipFor,
		},
	}
}
