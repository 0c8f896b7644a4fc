// Package persona infers a four-letter personality type from free text
// using fixed per-dimension keyword patterns. It is evidence counting,
// not linguistics: pattern hits for each pole are tallied and turned
// into a score in [-1, 1] per dimension, accumulated across messages.
package persona

import (
	_ "embed"
	"fmt"
	"log/slog"
	"math"
	"regexp"
	"strings"

	"gopkg.in/yaml.v3"
)

//go:embed patterns.yaml
var defaultPatternsYAML []byte

const (
	TendencyNeutral = "neutral"

	// Scores inside (-ambiguityBand, ambiguityBand) leave a dimension
	// undecided; the classifier refuses to emit a label.
	ambiguityBand = 0.2

	confidenceCap = 0.95

	DefaultConfidenceThreshold = 0.6
)

type DimensionSpec struct {
	Code             string   `yaml:"code"`
	PositivePole     string   `yaml:"positive"`
	NegativePole     string   `yaml:"negative"`
	PositivePatterns []string `yaml:"positive_patterns"`
	NegativePatterns []string `yaml:"negative_patterns"`
}

type patternsFile struct {
	Dimensions []DimensionSpec `yaml:"dimensions"`
}

// PoleScore is the outcome of scoring one dimension over one text:
// score = (positive hits - negative hits) / (positive + negative), or 0
// with a neutral tendency when neither pole hit.
type PoleScore struct {
	Score        float64 `json:"score"`
	Tendency     string  `json:"tendency"`
	Confidence   float64 `json:"confidence"`
	PositiveHits int     `json:"positive_hits"`
	NegativeHits int     `json:"negative_hits"`
}

// DimensionState is the running evidence for one dimension across
// messages.
type DimensionState struct {
	Score      float64 `json:"score"`
	Confidence float64 `json:"confidence"`
	Samples    int     `json:"samples"`
}

type Classification struct {
	Label         string  `json:"label,omitempty"`
	Confidence    float64 `json:"confidence"`
	NeedsMoreData bool    `json:"needs_more_data"`
}

type compiledDimension struct {
	spec     DimensionSpec
	positive []*regexp.Regexp
	negative []*regexp.Regexp
}

type Classifier struct {
	dims      []compiledDimension
	threshold float64
	logger    *slog.Logger
}

// LoadPatterns parses a YAML pattern-set document.
func LoadPatterns(data []byte) ([]DimensionSpec, error) {
	var f patternsFile
	if err := yaml.Unmarshal(data, &f); err != nil {
		return nil, fmt.Errorf("parse patterns: %w", err)
	}
	if len(f.Dimensions) == 0 {
		return nil, fmt.Errorf("parse patterns: no dimensions defined")
	}
	return f.Dimensions, nil
}

// DefaultPatterns returns the embedded pattern sets.
func DefaultPatterns() ([]DimensionSpec, error) {
	return LoadPatterns(defaultPatternsYAML)
}

// DefaultClassifier builds a classifier from the embedded pattern sets.
func DefaultClassifier(logger *slog.Logger) (*Classifier, error) {
	specs, err := DefaultPatterns()
	if err != nil {
		return nil, err
	}
	return NewClassifier(specs, DefaultConfidenceThreshold, logger)
}

func NewClassifier(specs []DimensionSpec, threshold float64, logger *slog.Logger) (*Classifier, error) {
	if threshold <= 0 {
		threshold = DefaultConfidenceThreshold
	}
	if logger == nil {
		logger = slog.Default()
	}
	dims := make([]compiledDimension, 0, len(specs))
	for _, spec := range specs {
		if strings.TrimSpace(spec.Code) == "" {
			return nil, fmt.Errorf("dimension with empty code")
		}
		pos, err := compilePatterns(spec.PositivePatterns)
		if err != nil {
			return nil, fmt.Errorf("dimension %s: %w", spec.Code, err)
		}
		neg, err := compilePatterns(spec.NegativePatterns)
		if err != nil {
			return nil, fmt.Errorf("dimension %s: %w", spec.Code, err)
		}
		dims = append(dims, compiledDimension{spec: spec, positive: pos, negative: neg})
	}
	return &Classifier{dims: dims, threshold: threshold, logger: logger}, nil
}

func compilePatterns(patterns []string) ([]*regexp.Regexp, error) {
	out := make([]*regexp.Regexp, 0, len(patterns))
	for _, p := range patterns {
		re, err := regexp.Compile("(?i)" + p)
		if err != nil {
			return nil, fmt.Errorf("compile %q: %w", p, err)
		}
		out = append(out, re)
	}
	return out, nil
}

func (c *Classifier) Dimensions() []DimensionSpec {
	out := make([]DimensionSpec, 0, len(c.dims))
	for _, d := range c.dims {
		out = append(out, d.spec)
	}
	return out
}

// ScoreText scores every dimension against one text, keyed by
// dimension code.
func (c *Classifier) ScoreText(text string) map[string]PoleScore {
	out := make(map[string]PoleScore, len(c.dims))
	for _, d := range c.dims {
		out[d.spec.Code] = scoreDimension(text, d)
	}
	return out
}

func scoreDimension(text string, d compiledDimension) PoleScore {
	pos := countHits(text, d.positive)
	neg := countHits(text, d.negative)
	total := pos + neg
	if total == 0 {
		return PoleScore{Tendency: TendencyNeutral}
	}
	score := float64(pos-neg) / float64(total)
	tendency := TendencyNeutral
	switch {
	case score > 0:
		tendency = d.spec.PositivePole
	case score < 0:
		tendency = d.spec.NegativePole
	}
	// Confidence grows with the amount of evidence, capped.
	confidence := math.Min(confidenceCap, float64(total)/float64(total+2))
	return PoleScore{
		Score:        score,
		Tendency:     tendency,
		Confidence:   confidence,
		PositiveHits: pos,
		NegativeHits: neg,
	}
}

func countHits(text string, patterns []*regexp.Regexp) int {
	n := 0
	for _, re := range patterns {
		n += len(re.FindAllStringIndex(text, -1))
	}
	return n
}

// UpdateRunningScore folds one new observation into the running state.
// New evidence is down-weighted by 1/sqrt(samples+1), so early messages
// move the score a lot and later ones refine it; confidence rises
// monotonically toward the cap.
func UpdateRunningScore(prev DimensionState, newScore float64) DimensionState {
	w := 1 / math.Sqrt(float64(prev.Samples)+1)
	next := DimensionState{
		Score:   prev.Score + (newScore-prev.Score)*w,
		Samples: prev.Samples + 1,
	}
	next.Confidence = math.Min(confidenceCap, 1-1/math.Sqrt(float64(next.Samples)+1))
	if next.Confidence < prev.Confidence {
		next.Confidence = prev.Confidence
	}
	return next
}

// Classify turns the four running dimension states into a best-guess
// label. The label is empty whenever any dimension sits inside the
// ambiguity band; overall confidence is the mean of the per-dimension
// confidences.
func (c *Classifier) Classify(states map[string]DimensionState) Classification {
	var label strings.Builder
	ambiguous := false
	confidenceSum := 0.0
	for _, d := range c.dims {
		state := states[d.spec.Code]
		confidenceSum += state.Confidence
		switch {
		case state.Score >= ambiguityBand:
			label.WriteString(d.spec.PositivePole)
		case state.Score <= -ambiguityBand:
			label.WriteString(d.spec.NegativePole)
		default:
			ambiguous = true
		}
	}
	confidence := 0.0
	if len(c.dims) > 0 {
		confidence = confidenceSum / float64(len(c.dims))
	}
	out := Classification{Confidence: confidence}
	if !ambiguous {
		out.Label = label.String()
	}
	out.NeedsMoreData = ambiguous || confidence < c.threshold
	return out
}
