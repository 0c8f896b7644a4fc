package search

import (
	"fmt"
	"sort"
	"strings"

	"github.com/quailykeep/recall/sessions"
)

// Field weights encode a hand-tuned trust ordering: curated keywords
// are the strongest signal, topical tags next, free-text summary the
// noisiest. These are behavioral constants; do not retune.
const (
	WeightKeyword = 3
	WeightTopic   = 2
	WeightSummary = 1

	DefaultThreshold  = 0.65
	DefaultMaxResults = 5
)

// Scored is the ephemeral result of scoring one session against a
// keyword list; it exists per query and is discarded after filtering.
type Scored struct {
	Meta        sessions.Metadata `json:"metadata"`
	RawScore    int               `json:"raw_score"`
	MaxPossible int               `json:"max_possible_score"`
	Percent     float64           `json:"percent_score"`
	Matched     []string          `json:"matched_keywords"`
}

// Result describes the outcome of one scoring pass. Immutable once
// produced; the cascade controller annotates Layer and Cost on its own
// copy.
type Result struct {
	Found         bool     `json:"found"`
	Query         string   `json:"query,omitempty"`
	Keywords      []string `json:"keywords,omitempty"`
	MatchedCount  int      `json:"matched_count"`
	TopID         string   `json:"top_session_id,omitempty"`
	TopPercent    float64  `json:"top_percent_score,omitempty"`
	TopMatched    []string `json:"top_matched_keywords,omitempty"`
	Reason        string   `json:"reason,omitempty"`
	Layer         Layer    `json:"layer,omitempty"`
	Cost          int      `json:"cost_estimate,omitempty"`
	NeedsFallback bool     `json:"needs_fallback,omitempty"`
}

// Score runs one weighted keyword-match pass over the given sessions
// and returns the filtered, rank-ordered matches alongside the result
// summary. Sessions sort by raw score descending, ties broken by
// importance rank ascending (lower rank wins); only sessions whose
// percent-of-max score meets threshold survive, truncated to
// maxResults.
func Score(keywords []string, sess []sessions.Metadata, threshold float64, maxResults int) (Result, []Scored) {
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	res := Result{Keywords: keywords}
	if len(keywords) == 0 {
		res.Reason = "no keywords extracted from query"
		return res, nil
	}

	maxPossible := len(keywords) * WeightKeyword
	scored := make([]Scored, 0, len(sess))
	for _, meta := range sess {
		scored = append(scored, scoreOne(keywords, meta, maxPossible))
	}

	sort.SliceStable(scored, func(i, j int) bool {
		if scored[i].RawScore != scored[j].RawScore {
			return scored[i].RawScore > scored[j].RawScore
		}
		return scored[i].Meta.ImportanceRank < scored[j].Meta.ImportanceRank
	})

	matched := make([]Scored, 0, maxResults)
	for _, s := range scored {
		if s.Percent < threshold {
			continue
		}
		matched = append(matched, s)
		if len(matched) >= maxResults {
			break
		}
	}

	res.MatchedCount = len(matched)
	if len(matched) > 0 {
		res.Found = true
		res.TopID = matched[0].Meta.ID
		res.TopPercent = matched[0].Percent
		res.TopMatched = matched[0].Matched
	} else {
		res.Reason = fmt.Sprintf("no session reached threshold %.2f across %d searched", threshold, len(sess))
	}
	return res, matched
}

func scoreOne(keywords []string, meta sessions.Metadata, maxPossible int) Scored {
	summary := strings.ToLower(meta.SummaryCompact)
	raw := 0
	var matched []string
	for _, kw := range keywords {
		hit := false
		if tagsOverlap(meta.Keywords, kw) {
			raw += WeightKeyword
			hit = true
		}
		if tagsOverlap(meta.Topics, kw) {
			raw += WeightTopic
			hit = true
		}
		if summary != "" && strings.Contains(summary, kw) {
			raw += WeightSummary
			hit = true
		}
		// One entry per keyword regardless of how many fields it hit.
		if hit {
			matched = append(matched, kw)
		}
	}
	percent := 0.0
	if maxPossible > 0 {
		percent = float64(raw) / float64(maxPossible)
	}
	return Scored{
		Meta:        meta,
		RawScore:    raw,
		MaxPossible: maxPossible,
		Percent:     percent,
		Matched:     matched,
	}
}

// tagsOverlap applies the bidirectional substring test: a tag matches a
// keyword when either contains the other, case-insensitively.
func tagsOverlap(tags []string, kw string) bool {
	for _, tag := range tags {
		tag = strings.ToLower(strings.TrimSpace(tag))
		if tag == "" {
			continue
		}
		if strings.Contains(tag, kw) || strings.Contains(kw, tag) {
			return true
		}
	}
	return false
}
