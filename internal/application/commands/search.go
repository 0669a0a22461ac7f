package commands

import (
	"context"
	"sort"
	"strings"

	"vartree/internal/domain"
)

// SearchResult is a node matching a search query
type SearchResult struct {
	Index domain.ModelIndex
	Path  domain.Path
	Key   string
	Value string
	Score int
}

// SearchCommand searches keys and scalar values with fuzzy matching
type SearchCommand struct {
	model *domain.VariantModel
	Query string
	Limit int // 0 means no limit
}

// NewSearchCommand creates a new SearchCommand
func NewSearchCommand(model *domain.VariantModel, query string) *SearchCommand {
	return &SearchCommand{
		model: model,
		Query: query,
	}
}

// Execute runs the search command and returns scored, sorted results
func (c *SearchCommand) Execute(ctx context.Context) ([]SearchResult, error) {
	if len(c.Query) < 2 {
		return nil, nil
	}

	var candidates []SearchResult
	c.model.Walk(func(index domain.ModelIndex, depth int) bool {
		if ctx.Err() != nil {
			return false
		}
		hit := SearchResult{
			Index: index,
			Path:  domain.Path(c.model.Path(index)),
		}
		if key := c.model.Data(index, domain.RoleDisplay); key.IsValid() {
			hit.Key = key.String()
		}
		if value := c.model.Data(index.Sibling(1), domain.RoleDisplay); value.IsScalar() {
			hit.Value = value.String()
		}
		candidates = append(candidates, hit)
		return true
	})
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	results := FuzzySort(candidates, c.Query)
	if c.Limit > 0 && len(results) > c.Limit {
		results = results[:c.Limit]
	}
	return results, nil
}

// FuzzyScore calculates a relevance score for how well target matches query
func FuzzyScore(target, query string) int {
	target = strings.ToLower(target)
	query = strings.ToLower(query)

	if len(query) == 0 {
		return 0
	}

	// Check for exact substring match first (highest priority)
	if strings.Contains(target, query) {
		score := 100
		// Bonus if it starts with query
		if strings.HasPrefix(target, query) {
			score += 50
		}
		return score
	}

	// Fuzzy match: check if chars appear in order
	score := 0
	queryIdx := 0
	prevMatchIdx := -1

	for i := 0; i < len(target) && queryIdx < len(query); i++ {
		if target[i] == query[queryIdx] {
			if prevMatchIdx == i-1 {
				score += 10 // consecutive chars
			}
			if i == 0 {
				score += 15 // start of string
			}
			if i > 0 && (target[i-1] == ' ' || target[i-1] == '.' || target[i-1] == '-') {
				score += 10 // after separator
			}
			score += 1
			prevMatchIdx = i
			queryIdx++
		}
	}

	if queryIdx == len(query) {
		return score
	}
	return 0
}

// FuzzySort scores candidates against the query, drops non-matches and
// sorts by relevance. Equal scores keep document order.
func FuzzySort(candidates []SearchResult, query string) []SearchResult {
	scored := make([]SearchResult, 0, len(candidates))

	for _, r := range candidates {
		s1 := FuzzyScore(r.Key, query)
		s2 := FuzzyScore(r.Value, query)
		s3 := FuzzyScore(r.Path.String(), query) / 2

		best := max(s1, s2, s3)

		if best > 0 {
			r.Score = best
			scored = append(scored, r)
		}
	}

	// Sort by score descending
	sort.SliceStable(scored, func(i, j int) bool {
		return scored[i].Score > scored[j].Score
	})

	return scored
}
