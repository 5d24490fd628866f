package entity

// Snapshot is the whole persisted document: every user's stats and
// theme choice. It is loaded once at startup and rewritten in full on
// every stats- or theme-affecting operation.
type Snapshot struct {
	Stats  map[int64]*UserStats `json:"stats"`
	Themes map[int64]string     `json:"themes"`
}

func NewSnapshot() *Snapshot {
	return &Snapshot{
		Stats:  make(map[int64]*UserStats),
		Themes: make(map[int64]string),
	}
}
