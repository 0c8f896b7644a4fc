package sessions

const summaryCompactMaxChars = 200

// Metadata is the searchable surface of one persisted session. It is
// deliberately small: queries are scored against it so that only the
// sessions worth reading in full ever get resolved from disk.
type Metadata struct {
	ID             string   `json:"session_id"`
	Date           string   `json:"date,omitempty"`
	Keywords       []string `json:"keywords,omitempty"`
	Topics         []string `json:"key_topics,omitempty"`
	SummaryCompact string   `json:"summary_compact,omitempty"`
	ImportanceRank int      `json:"importance_rank"`
	Location       string   `json:"file_path,omitempty"`
}

// Record is a resolved session. A full record carries the session JSON
// in Content; when resolution fails or is blocked the record degrades
// to its metadata with Degraded set.
type Record struct {
	ID       string         `json:"session_id"`
	Degraded bool           `json:"degraded,omitempty"`
	Content  map[string]any `json:"content,omitempty"`
	Metadata *Metadata      `json:"metadata,omitempty"`
}

func degradedRecord(meta Metadata) Record {
	m := meta
	return Record{ID: meta.ID, Degraded: true, Metadata: &m}
}
