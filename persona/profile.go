package persona

import (
	"log/slog"
	"time"

	"github.com/quailykeep/recall/internal/fsstore"
)

// Profile is the persisted running evidence, one state per dimension,
// so classification improves across invocations.
type Profile struct {
	Dimensions map[string]DimensionState `json:"dimensions"`
	UpdatedAt  time.Time                 `json:"updated_at"`
}

// LoadProfile fails soft: a missing or unparseable profile yields a
// fresh one.
func LoadProfile(path string, logger *slog.Logger) (Profile, bool) {
	if logger == nil {
		logger = slog.Default()
	}
	var p Profile
	found, err := fsstore.ReadJSON(path, &p)
	if err != nil {
		logger.Warn("persona profile unreadable, starting fresh", "path", path, "error", err)
		return Profile{Dimensions: map[string]DimensionState{}}, false
	}
	if !found {
		return Profile{Dimensions: map[string]DimensionState{}}, false
	}
	if p.Dimensions == nil {
		p.Dimensions = map[string]DimensionState{}
	}
	return p, true
}

func SaveProfile(path string, p Profile) error {
	return fsstore.WriteJSONAtomic(path, p)
}

// Observe scores one text and folds the non-neutral dimension results
// into the profile. Dimensions with no evidence in the text keep their
// prior state untouched.
func (c *Classifier) Observe(p Profile, text string, now time.Time) Profile {
	if p.Dimensions == nil {
		p.Dimensions = map[string]DimensionState{}
	}
	for code, score := range c.ScoreText(text) {
		if score.Tendency == TendencyNeutral && score.PositiveHits == 0 && score.NegativeHits == 0 {
			continue
		}
		p.Dimensions[code] = UpdateRunningScore(p.Dimensions[code], score.Score)
	}
	p.UpdatedAt = now.UTC()
	return p
}
