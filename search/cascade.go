package search

import (
	"log/slog"

	"github.com/quailykeep/recall/sessions"
)

// Layer names which metadata partition satisfied a query.
type Layer string

const (
	LayerNarrow Layer = "narrow"
	LayerWide   Layer = "wide"
	LayerSingle Layer = "single"
	LayerNone   Layer = "none"
)

// Fixed cost estimates attached to results; the narrow layer is
// strictly cheaper than the wide one.
const (
	costNarrow = 1
	costWide   = 5
)

// Controller runs the cascading search: the cheap, date-restricted
// narrow partition first, the full wide partition only on a miss. Most
// repeat queries hit recent context, so the wide scan stays the
// exception path. With Cascade false it degrades to a single pass over
// the wide partition behind the same entry point.
type Controller struct {
	Cascade    bool
	Threshold  float64
	MaxResults int
	logger     *slog.Logger
}

func NewController(cascade bool, threshold float64, maxResults int, logger *slog.Logger) *Controller {
	if threshold <= 0 {
		threshold = DefaultThreshold
	}
	if maxResults <= 0 {
		maxResults = DefaultMaxResults
	}
	if logger == nil {
		logger = slog.Default()
	}
	return &Controller{Cascade: cascade, Threshold: threshold, MaxResults: maxResults, logger: logger}
}

// Run scores the query keywords against the index and reports which
// layer satisfied it. On a full miss the result carries NeedsFallback,
// signaling that a broader search outside this engine is required.
func (c *Controller) Run(query string, keywords []string, idx sessions.Index) (Result, []Scored) {
	if !c.Cascade {
		res, matched := Score(keywords, idx.Wide(), c.Threshold, c.MaxResults)
		res.Query = query
		res.Layer = LayerSingle
		res.Cost = costWide
		res.NeedsFallback = !res.Found
		return res, matched
	}

	res, matched := Score(keywords, idx.Narrow(), c.Threshold, c.MaxResults)
	res.Query = query
	if res.Found {
		res.Layer = LayerNarrow
		res.Cost = costNarrow
		c.logger.Debug("query satisfied by narrow partition",
			"query", query, "matched", res.MatchedCount)
		return res, matched
	}

	c.logger.Debug("narrow partition missed, retrying wide", "query", query)
	res, matched = Score(keywords, idx.Wide(), c.Threshold, c.MaxResults)
	res.Query = query
	if res.Found {
		res.Layer = LayerWide
		res.Cost = costWide
		return res, matched
	}

	res.Layer = LayerNone
	res.Cost = costNarrow + costWide
	res.NeedsFallback = true
	return res, nil
}
