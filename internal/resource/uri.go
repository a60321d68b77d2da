// Package resource models the URIs handed to openers: plain repository
// paths pinned to a revision, and opaque diff URIs encoding a left/right
// pair for comparison views.
package resource

import (
	"encoding/json"
	"errors"
	"fmt"
	"path"
	"strings"
)

const (
	// SchemeSCM marks a repository file at a specific revision.
	SchemeSCM = "scm"
	// SchemeDiff marks an encoded pair of URIs to compare.
	SchemeDiff = "diff"
)

// URI is a minimal scheme:path?query identifier. Paths are repo-relative.
type URI struct {
	Scheme string
	Path   string
	Query  string
}

// String renders the URI in scheme:path?query form.
func (u URI) String() string {
	s := u.Scheme + ":" + u.Path
	if u.Query != "" {
		s += "?" + u.Query
	}
	return s
}

// Parse splits a scheme:path?query string back into a URI.
func Parse(s string) (URI, error) {
	scheme, rest, ok := strings.Cut(s, ":")
	if !ok || scheme == "" {
		return URI{}, fmt.Errorf("uri %q: missing scheme", s)
	}
	p, q, _ := strings.Cut(rest, "?")
	return URI{Scheme: scheme, Path: p, Query: q}, nil
}

// WithRevision pins a repo-relative file path to a revision under the scm
// scheme. The revision travels in the query so the path stays a clean
// repository path.
func WithRevision(filePath, revision string) URI {
	return URI{Scheme: SchemeSCM, Path: filePath, Query: revision}
}

// Revision returns the revision carried by an scm URI.
func (u URI) Revision() string {
	return u.Query
}

// EncodeDiff packs two URIs into one opaque diff URI. The display name
// becomes the path; the pair travels JSON-encoded in the query.
func EncodeDiff(left, right URI, name string) URI {
	b, _ := json.Marshal([2]string{left.String(), right.String()})
	return URI{Scheme: SchemeDiff, Path: name, Query: string(b)}
}

// DecodeDiff unpacks a diff URI produced by EncodeDiff.
func DecodeDiff(u URI) (left, right URI, err error) {
	if u.Scheme != SchemeDiff {
		return URI{}, URI{}, fmt.Errorf("uri %q: not a diff uri", u)
	}
	var pair [2]string
	if err := json.Unmarshal([]byte(u.Query), &pair); err != nil {
		return URI{}, URI{}, fmt.Errorf("diff uri query: %w", err)
	}
	if left, err = Parse(pair[0]); err != nil {
		return URI{}, URI{}, err
	}
	if right, err = Parse(pair[1]); err != nil {
		return URI{}, URI{}, err
	}
	return left, right, nil
}

var errNoPath = errors.New("file change has no path")

// Change is the slice of a file-change record the open target depends on.
type Change struct {
	Path    string
	OldPath string // previous path for renames and copies
	Deleted bool
	Added   bool
}

// OpenTarget computes the URI to open for a file change inside commitID.
// fromRevision overrides the "before" side; when empty the parent of the
// commit is used. Deleted files open the before side alone, newly added
// files the after side alone, anything else an encoded diff of both.
func OpenTarget(c Change, commitID, fromRevision string) (URI, error) {
	if c.Path == "" {
		return URI{}, errNoPath
	}
	if fromRevision == "" {
		fromRevision = commitID + "~1"
	}
	fromPath := c.Path
	if c.OldPath != "" {
		fromPath = c.OldPath
	}
	from := WithRevision(fromPath, fromRevision)
	to := WithRevision(c.Path, commitID)

	switch {
	case c.Deleted:
		return from, nil
	case c.Added:
		return to, nil
	default:
		short := commitID
		if len(short) > 8 {
			short = short[:8]
		}
		name := fmt.Sprintf("%s @ %s", path.Base(c.Path), short)
		return EncodeDiff(from, to, name), nil
	}
}
