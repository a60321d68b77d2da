package history

import "time"

// ChangeStatus classifies how a commit touched a file.
type ChangeStatus int

const (
	StatusModified ChangeStatus = iota
	StatusAdded
	StatusDeleted
	StatusRenamed
	StatusCopied
)

// ParseStatus maps a git name-status letter (A, M, D, R100, C75, ...) to a
// ChangeStatus. Unknown letters are treated as modifications.
func ParseStatus(s string) ChangeStatus {
	if s == "" {
		return StatusModified
	}
	switch s[0] {
	case 'A':
		return StatusAdded
	case 'D':
		return StatusDeleted
	case 'R':
		return StatusRenamed
	case 'C':
		return StatusCopied
	default:
		return StatusModified
	}
}

// Letter returns the single-letter label shown next to a file row.
func (s ChangeStatus) Letter() string {
	switch s {
	case StatusAdded:
		return "A"
	case StatusDeleted:
		return "D"
	case StatusRenamed:
		return "R"
	case StatusCopied:
		return "C"
	default:
		return "M"
	}
}

func (s ChangeStatus) String() string {
	switch s {
	case StatusAdded:
		return "added"
	case StatusDeleted:
		return "deleted"
	case StatusRenamed:
		return "renamed"
	case StatusCopied:
		return "copied"
	default:
		return "modified"
	}
}

// FileChangeNode is one file's change record within a commit, plus the
// display fields resolved for it. Display fields are recomputed from the
// path on every fetch; they are never carried across batches.
type FileChangeNode struct {
	Path    string       `json:"path"`
	OldPath string       `json:"oldPath,omitempty"` // set for renames and copies
	Status  ChangeStatus `json:"status"`

	// Derived presentation fields (label service output).
	Icon        string `json:"icon,omitempty"`
	Name        string `json:"name,omitempty"`
	Description string `json:"description,omitempty"`
	Caption     string `json:"caption,omitempty"`
}

// Author identifies who wrote a commit.
type Author struct {
	Name  string `json:"name"`
	Email string `json:"email"`
}

// CommitNode is one commit as displayed in the history panel.
type CommitNode struct {
	ID           string           `json:"id"`
	Author       Author           `json:"author"`
	Date         time.Time        `json:"date"`
	RelativeDate string           `json:"relativeDate"`
	Subject      string           `json:"subject"`
	Body         string           `json:"body,omitempty"`
	FileChanges  []FileChangeNode `json:"fileChanges"`

	// Expanded is UI-only state, flipped by the user.
	Expanded bool `json:"expanded"`
}

// ShortID returns the abbreviated commit hash.
func (c CommitNode) ShortID() string {
	if len(c.ID) < 8 {
		return c.ID
	}
	return c.ID[:8]
}

// RevisionRange bounds a log query. To is the newest commit to start
// walking back from; From excludes itself and everything older.
type RevisionRange struct {
	From string `json:"fromRevision,omitempty"`
	To   string `json:"toRevision,omitempty"`
}

// QueryOptions parameterize a log query and are kept as part of the
// panel's restorable state.
type QueryOptions struct {
	// Path restricts the log to commits touching this path.
	Path     string         `json:"path,omitempty"`
	Range    *RevisionRange `json:"range,omitempty"`
	MaxCount int            `json:"maxCount,omitempty"`
}
