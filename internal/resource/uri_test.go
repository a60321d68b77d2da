package resource

import "testing"

func TestParseAndString(t *testing.T) {
	u := WithRevision("src/main.go", "abc123")
	if got := u.String(); got != "scm:src/main.go?abc123" {
		t.Fatalf("String = %q", got)
	}

	back, err := Parse(u.String())
	if err != nil {
		t.Fatalf("Parse error: %v", err)
	}
	if back != u {
		t.Fatalf("round trip mismatch: %+v != %+v", back, u)
	}
	if back.Revision() != "abc123" {
		t.Fatalf("Revision = %q", back.Revision())
	}

	if _, err := Parse("no-scheme-here"); err == nil {
		t.Fatal("expected error for missing scheme")
	}
}

func TestEncodeDecodeDiff(t *testing.T) {
	left := WithRevision("a.txt", "rev1")
	right := WithRevision("a.txt", "rev2")
	d := EncodeDiff(left, right, "a.txt @ rev2")

	if d.Scheme != SchemeDiff {
		t.Fatalf("scheme = %q", d.Scheme)
	}
	if d.Path != "a.txt @ rev2" {
		t.Fatalf("diff name = %q", d.Path)
	}

	l, r, err := DecodeDiff(d)
	if err != nil {
		t.Fatalf("DecodeDiff error: %v", err)
	}
	if l != left || r != right {
		t.Fatalf("pair mismatch: %+v %+v", l, r)
	}

	if _, _, err := DecodeDiff(left); err == nil {
		t.Fatal("expected error decoding a non-diff uri")
	}
}

func TestOpenTarget_Deleted(t *testing.T) {
	u, err := OpenTarget(Change{Path: "gone.txt", Deleted: true}, "abcdef1234", "")
	if err != nil {
		t.Fatalf("OpenTarget error: %v", err)
	}
	// Only the before side exists; the parent revision is the default.
	if u.Scheme != SchemeSCM || u.Path != "gone.txt" || u.Revision() != "abcdef1234~1" {
		t.Fatalf("unexpected target: %+v", u)
	}
}

func TestOpenTarget_Added(t *testing.T) {
	u, err := OpenTarget(Change{Path: "new.txt", Added: true}, "abcdef1234", "")
	if err != nil {
		t.Fatalf("OpenTarget error: %v", err)
	}
	// Only the after side exists, pinned to the commit itself.
	if u.Scheme != SchemeSCM || u.Path != "new.txt" || u.Revision() != "abcdef1234" {
		t.Fatalf("unexpected target: %+v", u)
	}
}

func TestOpenTarget_Modified(t *testing.T) {
	u, err := OpenTarget(Change{Path: "src/app.go"}, "0123456789abc", "")
	if err != nil {
		t.Fatalf("OpenTarget error: %v", err)
	}
	if u.Scheme != SchemeDiff {
		t.Fatalf("expected a diff uri, got %+v", u)
	}
	if u.Path != "app.go @ 01234567" {
		t.Fatalf("diff name = %q", u.Path)
	}
	l, r, err := DecodeDiff(u)
	if err != nil {
		t.Fatalf("DecodeDiff error: %v", err)
	}
	if l.Path != "src/app.go" || l.Revision() != "0123456789abc~1" {
		t.Fatalf("left side wrong: %+v", l)
	}
	if r.Path != "src/app.go" || r.Revision() != "0123456789abc" {
		t.Fatalf("right side wrong: %+v", r)
	}
}

func TestOpenTarget_RenameUsesOldPathForBefore(t *testing.T) {
	u, err := OpenTarget(Change{Path: "new/name.go", OldPath: "old/name.go"}, "abcdef1234", "")
	if err != nil {
		t.Fatalf("OpenTarget error: %v", err)
	}
	l, r, err := DecodeDiff(u)
	if err != nil {
		t.Fatalf("DecodeDiff error: %v", err)
	}
	if l.Path != "old/name.go" {
		t.Fatalf("before side must use the old path, got %q", l.Path)
	}
	if r.Path != "new/name.go" {
		t.Fatalf("after side must use the new path, got %q", r.Path)
	}
}

func TestOpenTarget_ExplicitFromRevision(t *testing.T) {
	u, err := OpenTarget(Change{Path: "f.txt"}, "headrev", "v1.0")
	if err != nil {
		t.Fatalf("OpenTarget error: %v", err)
	}
	l, _, err := DecodeDiff(u)
	if err != nil {
		t.Fatalf("DecodeDiff error: %v", err)
	}
	if l.Revision() != "v1.0" {
		t.Fatalf("explicit from revision ignored, got %q", l.Revision())
	}
}

func TestOpenTarget_NoPath(t *testing.T) {
	if _, err := OpenTarget(Change{}, "abc", ""); err == nil {
		t.Fatal("expected error for empty path")
	}
}
