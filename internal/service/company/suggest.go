package company

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/heartmarshall/jobtrack-backend/internal/domain"
)

// Suggestion pairs a directory entry with its similarity to a queried name.
type Suggestion struct {
	Company *domain.Company
	Score   float64
}

// Suggest returns directory entries whose names are close to the given one,
// best match first, for "did you mean" prompts before a create. The score is
// normalized edit distance over canonical keys in [0, 1]; only entries at or
// above the configured threshold are returned, capped at the configured limit.
func (s *Service) Suggest(ctx context.Context, name string) ([]Suggestion, error) {
	if strings.TrimSpace(name) == "" {
		return []Suggestion{}, nil
	}

	all, err := s.companies.List(ctx)
	if err != nil {
		return nil, fmt.Errorf("list companies: %w", err)
	}

	suggestions := []Suggestion{}
	for _, c := range all {
		score := domain.Similarity(name, c.Name)
		if score >= s.cfg.SuggestMinScore {
			suggestions = append(suggestions, Suggestion{Company: c, Score: score})
		}
	}

	sort.SliceStable(suggestions, func(i, j int) bool {
		return suggestions[i].Score > suggestions[j].Score
	})

	if len(suggestions) > s.cfg.SuggestLimit {
		suggestions = suggestions[:s.cfg.SuggestLimit]
	}

	return suggestions, nil
}
