package label

import (
	"testing"

	"github.com/interpretive-systems/histui/internal/resource"
)

func TestFileProvider_Resolve(t *testing.T) {
	p := NewFileProvider()

	u := resource.WithRevision("src/app/main.go", "abc123")
	if p.CanHandle(u) == 0 {
		t.Fatal("file provider must claim scm uris")
	}
	l := p.Resolve(u)
	if l.Name != "main.go" {
		t.Fatalf("Name = %q", l.Name)
	}
	if l.Description != "src/app" {
		t.Fatalf("Description = %q", l.Description)
	}
	if l.Caption != "src/app/main.go @ abc123" {
		t.Fatalf("Caption = %q", l.Caption)
	}
	if l.Icon != "file-go" {
		t.Fatalf("Icon = %q", l.Icon)
	}
}

func TestFileProvider_RootFileAndIconFallback(t *testing.T) {
	p := NewFileProvider()

	l := p.Resolve(resource.WithRevision("README.weird", "v1"))
	if l.Description != "" {
		t.Fatalf("root file must have empty description, got %q", l.Description)
	}
	if l.Icon != "file" {
		t.Fatalf("unknown extension should use the generic icon, got %q", l.Icon)
	}

	l = p.Resolve(resource.WithRevision("Makefile", "v1"))
	if l.Icon != "file-make" {
		t.Fatalf("well-known names beat extensions, got %q", l.Icon)
	}
}

func TestDiffProvider(t *testing.T) {
	p := NewDiffProvider()

	left := resource.WithRevision("a.go", "r1")
	right := resource.WithRevision("a.go", "r2")
	d := resource.EncodeDiff(left, right, "a.go @ r2")

	if p.CanHandle(d) == 0 {
		t.Fatal("diff provider must claim diff uris")
	}
	if p.CanHandle(left) != 0 {
		t.Fatal("diff provider must not claim scm uris")
	}

	l := p.Resolve(d)
	if l.Name != "a.go @ r2" || l.Icon != "diff" {
		t.Fatalf("unexpected label: %+v", l)
	}
}

func TestProviderScores_DiffWins(t *testing.T) {
	// The registry routes to the higher score; the diff provider must
	// outrank the file provider for the uris both could describe.
	fp, dp := NewFileProvider(), NewDiffProvider()
	d := resource.EncodeDiff(resource.WithRevision("x", "1"), resource.WithRevision("x", "2"), "x")
	if dp.CanHandle(d) <= fp.CanHandle(d) {
		t.Fatal("diff provider should outrank the file provider for diff uris")
	}
}
