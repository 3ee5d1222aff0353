package catalog

import (
	"fmt"
	"sort"
	"strings"

	"github.com/terra-clan/maturity-engine/internal/models"
)

// Option scores must fall within this range
const (
	MinOptionScore = 1
	MaxOptionScore = 5
)

// ConfigurationError reports malformed catalog content.
// It is fatal: the process must not start with a catalog that fails validation.
type ConfigurationError struct {
	Problems []string
}

func (e *ConfigurationError) Error() string {
	if len(e.Problems) == 1 {
		return "catalog configuration error: " + e.Problems[0]
	}
	return fmt.Sprintf("catalog configuration error (%d problems): %s",
		len(e.Problems), strings.Join(e.Problems, "; "))
}

type problems []string

func (p *problems) addf(format string, args ...any) {
	*p = append(*p, fmt.Sprintf(format, args...))
}

func validate(content Content) error {
	var errs problems

	if len(content.Classification) == 0 {
		errs.addf("no classification questions defined")
	}
	if len(content.Pathways) == 0 {
		errs.addf("no pathways defined")
	}

	pathways := validatePathways(content, &errs)

	// Question ids are unique across classification questions and every pool
	seen := make(map[string]string)
	checkID := func(q models.Question, where string) {
		if q.ID == "" {
			errs.addf("question without id in %s", where)
			return
		}
		if prev, ok := seen[q.ID]; ok {
			errs.addf("duplicate question id %q (in %s and %s)", q.ID, prev, where)
			return
		}
		seen[q.ID] = where
	}

	for _, q := range content.Classification {
		checkID(q, "classification")
		validateOptions(q, true, pathways, &errs)
		if !q.Inclusion.IsZero() {
			errs.addf("classification question %q must not carry inclusion rules", q.ID)
		}
	}

	hasCore := false
	poolIDs := make(map[string]bool)
	maxScore := 0
	for _, pool := range content.Pools {
		if pool.ID == "" {
			errs.addf("question pool without id")
		}
		if poolIDs[pool.ID] {
			errs.addf("duplicate pool id %q", pool.ID)
		}
		poolIDs[pool.ID] = true
		if pool.ID == models.CorePoolID {
			hasCore = true
			if len(pool.Questions) == 0 {
				errs.addf("core pool is empty")
			}
		}

		for _, q := range pool.Questions {
			checkID(q, "pool "+pool.ID)
			validateOptions(q, false, pathways, &errs)
			validateInclusion(q, pool.ID, pathways, &errs)
			if q.Dimension == "" {
				errs.addf("question %q has no dimension", q.ID)
			}
			if _, hi := optionBounds(q.Options); hi > maxScore {
				maxScore = hi
			}
		}
	}
	if !hasCore {
		errs.addf("missing %q question pool", models.CorePoolID)
	}

	validateLevels(content.Levels, maxScore, &errs)
	validateCoverage(content, &errs)

	if len(errs) > 0 {
		return &ConfigurationError{Problems: errs}
	}
	return nil
}

func validatePathways(content Content, errs *problems) map[string]bool {
	ids := make(map[string]bool, len(content.Pathways))
	for _, p := range content.Pathways {
		if p.ID == "" {
			errs.addf("pathway without id")
			continue
		}
		if ids[p.ID] {
			errs.addf("duplicate pathway id %q", p.ID)
		}
		ids[p.ID] = true
		if p.MaxScore != nil && p.MinScore > *p.MaxScore {
			errs.addf("pathway %q has min_score %d > max_score %d", p.ID, p.MinScore, *p.MaxScore)
		}
	}
	return ids
}

func validateOptions(q models.Question, classification bool, pathways map[string]bool, errs *problems) {
	if len(q.Options) == 0 {
		errs.addf("question %q has no options", q.ID)
	}
	for i, o := range q.Options {
		if o.Score < MinOptionScore || o.Score > MaxOptionScore {
			errs.addf("question %q option %d score %d outside %d..%d",
				q.ID, i, o.Score, MinOptionScore, MaxOptionScore)
		}
		if len(o.PathwayFilter) > 0 && !classification {
			errs.addf("question %q option %d: pathway_filter is only allowed on classification questions", q.ID, i)
		}
		for _, id := range o.PathwayFilter {
			if !pathways[id] {
				errs.addf("question %q option %d: pathway_filter references unknown pathway %q", q.ID, i, id)
			}
		}
	}
}

func validateInclusion(q models.Question, poolID string, pathways map[string]bool, errs *problems) {
	rule := q.Inclusion
	if poolID == models.CorePoolID && !rule.IsZero() {
		errs.addf("core question %q must not carry required_for/skip_for", q.ID)
	}
	for _, id := range rule.RequiredFor {
		if !pathways[id] {
			errs.addf("question %q: required_for references unknown pathway %q", q.ID, id)
		}
	}
	for _, id := range rule.SkipFor {
		if !pathways[id] {
			errs.addf("question %q: skip_for references unknown pathway %q", q.ID, id)
		}
		for _, req := range rule.RequiredFor {
			if req == id {
				errs.addf("question %q lists pathway %q in both required_for and skip_for", q.ID, id)
			}
		}
	}
}

func validateLevels(levels []models.MaturityLevel, maxScore int, errs *problems) {
	if len(levels) == 0 {
		errs.addf("no maturity levels defined")
		return
	}
	tiers := make(map[int]bool, len(levels))
	for _, l := range levels {
		if tiers[l.Tier] {
			errs.addf("duplicate maturity tier %d", l.Tier)
		}
		tiers[l.Tier] = true
	}
	for tier := 1; tier <= len(levels); tier++ {
		if !tiers[tier] {
			errs.addf("maturity tiers are not contiguous: tier %d missing", tier)
		}
	}
	if len(levels) < maxScore {
		errs.addf("maturity tiers cover 1..%d but questions score up to %d", len(levels), maxScore)
	}
}

// validateCoverage checks that pathway intervals tile the attainable
// classification range without gaps or overlaps.
func validateCoverage(content Content, errs *problems) {
	if len(content.Pathways) == 0 || len(content.Classification) == 0 {
		return
	}
	lo, hi := classificationRange(content.Classification)

	sorted := make([]models.Pathway, len(content.Pathways))
	copy(sorted, content.Pathways)
	sort.SliceStable(sorted, func(i, j int) bool { return sorted[i].MinScore < sorted[j].MinScore })

	if sorted[0].MinScore > lo {
		errs.addf("classification scores %d..%d match no pathway", lo, sorted[0].MinScore-1)
	}

	for i := 1; i < len(sorted); i++ {
		prev, next := sorted[i-1], sorted[i]
		if prev.MaxScore == nil {
			errs.addf("pathway %q is open-ended but pathway %q starts above it", prev.ID, next.ID)
			continue
		}
		if next.MinScore <= *prev.MaxScore {
			errs.addf("pathways %q and %q overlap at score %d", prev.ID, next.ID, next.MinScore)
			continue
		}
		gapLo, gapHi := *prev.MaxScore+1, next.MinScore-1
		if gapLo <= gapHi && gapLo <= hi && gapHi >= lo {
			errs.addf("classification scores %d..%d match no pathway", gapLo, gapHi)
		}
	}

	last := sorted[len(sorted)-1]
	if last.MaxScore != nil && *last.MaxScore < hi {
		errs.addf("classification scores %d..%d match no pathway", *last.MaxScore+1, hi)
	}
}
