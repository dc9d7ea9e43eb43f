package search

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"github.com/blevesearch/bleve/v2"
	"github.com/blevesearch/bleve/v2/search/query"
)

// Params configures a search query.
type Params struct {
	Query  string
	Gender string // Exact gender filter, empty for all
	Limit  int
	Offset int
}

// DefaultLimit is used when Params.Limit is not positive.
const DefaultLimit = 20

// Result is one page of search hits.
type Result struct {
	Query  string `json:"query"`
	Total  uint64 `json:"total"`
	TookMs int64  `json:"took_ms"`
	Hits   []Hit  `json:"hits"`
}

// Hit is a matched fragrance with its relevance score.
type Hit struct {
	ID         int               `json:"id"`
	Score      float64           `json:"score"`
	Name       string            `json:"name"`
	Brand      string            `json:"brand"`
	Highlights map[string]string `json:"highlights,omitempty"`
}

// Search runs params against the current index.
func (s *Index) Search(ctx context.Context, params Params) (*Result, error) {
	if params.Limit <= 0 {
		params.Limit = DefaultLimit
	}

	req := bleve.NewSearchRequestOptions(buildQuery(params), params.Limit, params.Offset, false)
	req.SortBy([]string{"-_score", "position"})
	req.Fields = []string{"id", "name", "brand"}
	req.Highlight = bleve.NewHighlight()
	req.Highlight.AddField("name")
	req.Highlight.AddField("brand")

	s.mu.RLock()
	res, err := s.index.SearchInContext(ctx, req)
	s.mu.RUnlock()
	if err != nil {
		return nil, fmt.Errorf("execute search: %w", err)
	}

	result := &Result{
		Query:  params.Query,
		Total:  res.Total,
		TookMs: res.Took.Milliseconds(),
		Hits:   make([]Hit, 0, len(res.Hits)),
	}

	for _, h := range res.Hits {
		id, err := strconv.Atoi(h.ID)
		if err != nil {
			continue
		}
		hit := Hit{ID: id, Score: h.Score}
		if n, ok := h.Fields["name"].(string); ok {
			hit.Name = n
		}
		if b, ok := h.Fields["brand"].(string); ok {
			hit.Brand = b
		}
		if len(h.Fragments) > 0 {
			hit.Highlights = make(map[string]string, len(h.Fragments))
			for field, fragments := range h.Fragments {
				if len(fragments) > 0 {
					hit.Highlights[field] = fragments[0]
				}
			}
		}
		result.Hits = append(result.Hits, hit)
	}

	return result, nil
}

// buildQuery favours name matches, then brand, then accords and notes.
// Fuzzy and prefix clauses on the name tolerate typos and partial input.
func buildQuery(params Params) query.Query {
	var queries []query.Query

	if q := strings.TrimSpace(params.Query); q != "" {
		var text []query.Query

		nameMatch := bleve.NewMatchQuery(q)
		nameMatch.SetField("name")
		nameMatch.SetBoost(3.0)
		text = append(text, nameMatch)

		brandMatch := bleve.NewMatchQuery(q)
		brandMatch.SetField("brand")
		brandMatch.SetBoost(2.0)
		text = append(text, brandMatch)

		accordMatch := bleve.NewMatchQuery(q)
		accordMatch.SetField("accords")
		text = append(text, accordMatch)

		noteMatch := bleve.NewMatchQuery(q)
		noteMatch.SetField("notes")
		text = append(text, noteMatch)

		fuzzy := bleve.NewFuzzyQuery(strings.ToLower(q))
		fuzzy.SetFuzziness(1)
		fuzzy.SetField("name")
		fuzzy.SetBoost(0.8)
		text = append(text, fuzzy)

		if len(q) >= 2 {
			prefix := bleve.NewPrefixQuery(strings.ToLower(q))
			prefix.SetField("name")
			prefix.SetBoost(0.5)
			text = append(text, prefix)
		}

		queries = append(queries, bleve.NewDisjunctionQuery(text...))
	}

	if params.Gender != "" {
		gq := bleve.NewTermQuery(strings.ToLower(params.Gender))
		gq.SetField("gender")
		queries = append(queries, gq)
	}

	switch len(queries) {
	case 0:
		return bleve.NewMatchAllQuery()
	case 1:
		return queries[0]
	default:
		return bleve.NewConjunctionQuery(queries...)
	}
}
