package bundle

import (
	"log/slog"

	"github.com/quailykeep/recall/internal/fsstore"
)

// AuxContext carries the optional side inputs embedded in the snapshot
// so a second read of the raw files is unnecessary within the TTL
// window. Each section degrades to available=false when its file is
// missing or unparseable; absence is never an error.
type AuxContext struct {
	Lessons    LessonsContext `json:"lessons"`
	Project    DocContext     `json:"project"`
	Adaptation DocContext     `json:"adaptation"`
}

type LessonsContext struct {
	Available bool             `json:"available"`
	Items     []map[string]any `json:"items,omitempty"`
}

type DocContext struct {
	Available bool           `json:"available"`
	Fields    map[string]any `json:"fields,omitempty"`
}

func loadLessons(path string, logger *slog.Logger) LessonsContext {
	var items []map[string]any
	found, err := fsstore.ReadJSON(path, &items)
	if err != nil {
		logger.Warn("lessons file unreadable", "path", path, "error", err)
		return LessonsContext{}
	}
	if !found {
		return LessonsContext{}
	}
	return LessonsContext{Available: true, Items: items}
}

func loadDoc(path, what string, logger *slog.Logger) DocContext {
	var fields map[string]any
	found, err := fsstore.ReadJSON(path, &fields)
	if err != nil {
		logger.Warn(what+" file unreadable", "path", path, "error", err)
		return DocContext{}
	}
	if !found {
		return DocContext{}
	}
	return DocContext{Available: true, Fields: fields}
}
