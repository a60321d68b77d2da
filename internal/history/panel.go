package history

// DefaultPageSize is the number of commits requested per page.
const DefaultPageSize = 100

// Panel holds the commit-history panel's accumulated state: the query
// options currently in effect and the commits loaded so far. The commit
// list is append-only between SetContent calls; pagination never reorders
// previously loaded commits.
type Panel struct {
	options QueryOptions
	commits []CommitNode
}

// NewPanel creates an empty panel.
func NewPanel() *Panel {
	return &Panel{}
}

// SetContent replaces the query options and clears accumulated commits.
// The caller is expected to trigger a fresh fetch afterwards.
func (p *Panel) SetContent(options QueryOptions) {
	p.options = options
	p.commits = nil
}

// Options returns the current query options.
func (p *Panel) Options() QueryOptions {
	return p.options
}

// Commits returns the loaded commits in display order.
func (p *Panel) Commits() []CommitNode {
	return p.commits
}

// Len returns the number of loaded commits.
func (p *Panel) Len() int {
	return len(p.commits)
}

// Append adds a fetched batch to the end of the list.
func (p *Panel) Append(batch []CommitNode) {
	p.commits = append(p.commits, batch...)
}

// ToggleExpanded flips the expanded flag of the commit at index i and
// reports whether anything changed. Other commits are left untouched.
func (p *Panel) ToggleExpanded(i int) bool {
	if i < 0 || i >= len(p.commits) {
		return false
	}
	p.commits[i].Expanded = !p.commits[i].Expanded
	return true
}

// NextPageOptions computes the query for the page following the commits
// loaded so far: same path filter, end of range moved to the parent of the
// last loaded commit, fixed page size. Returns false when nothing has been
// loaded yet (there is no "older than" anchor).
func (p *Panel) NextPageOptions() (QueryOptions, bool) {
	if len(p.commits) == 0 {
		return QueryOptions{}, false
	}
	last := p.commits[len(p.commits)-1]
	next := QueryOptions{
		Path:     p.options.Path,
		Range:    &RevisionRange{To: last.ID + "~1"},
		MaxCount: DefaultPageSize,
	}
	return next, true
}

// State is the serializable snapshot of a panel.
type State struct {
	Commits []CommitNode `json:"commits"`
	Options QueryOptions `json:"options"`
}

// StoreState snapshots the commit list and options verbatim.
func (p *Panel) StoreState() State {
	commits := make([]CommitNode, len(p.commits))
	copy(commits, p.commits)
	return State{Commits: commits, Options: p.options}
}

// RestoreState replaces the panel's state with a stored snapshot. No
// validation is performed; the snapshot is trusted as written.
func (p *Panel) RestoreState(s State) {
	p.options = s.Options
	p.commits = append([]CommitNode(nil), s.Commits...)
}
