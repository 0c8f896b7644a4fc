package statepaths

import (
	"path/filepath"

	"github.com/quailykeep/recall/internal/pathutil"
	"github.com/spf13/viper"
)

const (
	IndexFilename        = "session_index.json"
	SnapshotFilename     = "memory_bundle.json"
	LessonsFilename      = "lessons.json"
	ProjectBriefFilename = "project.json"
	AdaptationFilename   = "profile.json"
	PersonaFilename      = "persona_profile.json"
	SessionsDirName      = "sessions"
)

func StateDir() string {
	return pathutil.ResolveStateDir(viper.GetString("file_state_dir"), "~/.recall")
}

// MemoryDir is the project memory root; every input index, session
// record, and the snapshot live underneath it.
func MemoryDir() string {
	configured := viper.GetString("memory.dir")
	if configured != "" {
		return pathutil.ResolveStateDir(configured, "")
	}
	return pathutil.ResolveStateChildDir(
		StateDir(),
		viper.GetString("memory.dir_name"),
		"memory",
	)
}

func IndexPath() string {
	return filepath.Join(MemoryDir(), IndexFilename)
}

func SnapshotPath() string {
	return filepath.Join(MemoryDir(), SnapshotFilename)
}

func LessonsPath() string {
	return filepath.Join(MemoryDir(), LessonsFilename)
}

func ProjectBriefPath() string {
	return filepath.Join(MemoryDir(), ProjectBriefFilename)
}

func AdaptationProfilePath() string {
	return filepath.Join(MemoryDir(), AdaptationFilename)
}

func PersonaProfilePath() string {
	return filepath.Join(MemoryDir(), PersonaFilename)
}

func SessionsDir() string {
	return filepath.Join(MemoryDir(), SessionsDirName)
}
