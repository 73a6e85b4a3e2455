package domain

// Question is a backend-owned question with its nested answers.
type Question struct {
	ID      int64
	Text    string
	Likes   int
	Answers []Answer // Backend order
}

// Answer belongs to exactly one Question by containment.
type Answer struct {
	ID      int64
	Content string
	Likes   int
}

// SnapshotKind tells a full collection apart from a search projection.
type SnapshotKind int

const (
	SnapshotFull SnapshotKind = iota
	SnapshotSearch
)

// Snapshot is one wholesale view of backend content used for a render pass.
// It is replaced on every fetch and never patched.
type Snapshot struct {
	Kind      SnapshotKind
	Keyword   string // Set for search snapshots only
	Questions []Question
}

// IsSearch reports whether the snapshot came from a keyword search.
func (s Snapshot) IsSearch() bool {
	return s.Kind == SnapshotSearch
}

// TargetType names what a rating points at.
type TargetType string

const (
	TargetQuestion TargetType = "question"
	TargetAnswer   TargetType = "answer"
)

// Valid reports whether the backend accepts this target type.
func (t TargetType) Valid() bool {
	return t == TargetQuestion || t == TargetAnswer
}

// Target identifies a rateable record.
type Target struct {
	Type TargetType
	ID   int64
}
