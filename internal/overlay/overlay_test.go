package overlay

import (
	"slices"
	"strings"
	"testing"
	"time"

	"github.com/microsoft/typescript-go/shim/vfs"
)

// fakeFS is a minimal base filesystem recording every mutation attempt.
type fakeFS struct {
	files  map[string]string
	writes []string
}

var _ vfs.FS = (*fakeFS)(nil)

func (f *fakeFS) UseCaseSensitiveFileNames() bool { return true }

func (f *fakeFS) FileExists(path string) bool {
	_, ok := f.files[path]
	return ok
}

func (f *fakeFS) ReadFile(path string) (string, bool) {
	text, ok := f.files[path]
	return text, ok
}

func (f *fakeFS) DirectoryExists(path string) bool { return false }

func (f *fakeFS) GetAccessibleEntries(path string) (e vfs.Entries) { return e }

func (f *fakeFS) Stat(path string) vfs.FileInfo { return nil }

func (f *fakeFS) WalkDir(root string, walkFn vfs.WalkDirFunc) error { return nil }

func (f *fakeFS) Realpath(path string) string { return path }

func (f *fakeFS) WriteFile(path string, data string, bom bool) error {
	f.writes = append(f.writes, path)
	return nil
}

func (f *fakeFS) Remove(path string) error {
	f.writes = append(f.writes, path)
	return nil
}

func (f *fakeFS) Chtimes(path string, aTime, mTime time.Time) error {
	f.writes = append(f.writes, path)
	return nil
}

func TestNewRejectsPathSeparators(t *testing.T) {
	base := &fakeFS{}
	for _, name := range []string{"sub/a.ts", `sub\a.ts`, "/a.ts"} {
		_, err := New(base, "/proj", map[string]string{name: ""}, nil)
		if err == nil {
			t.Fatalf("expected error for source name %q", name)
		}
		if !strings.Contains(err.Error(), "path separator") {
			t.Fatalf("unexpected error for %q: %v", name, err)
		}
	}
}

func TestReadShadowsBase(t *testing.T) {
	base := &fakeFS{files: map[string]string{
		"/proj/a.ts":  "on disk",
		"/proj/b.ts":  "only on disk",
		"/other/a.ts": "outside root",
	}}
	o, err := New(base, "/proj", map[string]string{"a.ts": "in memory"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	// All spellings of the in-memory name resolve to the overlay entry.
	for _, path := range []string{"a.ts", "./a.ts", "/proj/a.ts"} {
		text, ok := o.ReadFile(path)
		if !ok || text != "in memory" {
			t.Fatalf("ReadFile(%q) = %q, %v; want overlay text", path, text, ok)
		}
		if !o.FileExists(path) {
			t.Fatalf("FileExists(%q) = false", path)
		}
	}

	// An absolute path outside the root never matches the in-memory entry.
	if text, _ := o.ReadFile("/other/a.ts"); text != "outside root" {
		t.Fatalf("ReadFile outside root = %q, want base text", text)
	}

	// Files not shadowed fall through to the base.
	if text, ok := o.ReadFile("/proj/b.ts"); !ok || text != "only on disk" {
		t.Fatalf("ReadFile fallthrough = %q, %v", text, ok)
	}
	if o.FileExists("/proj/missing.ts") {
		t.Fatal("FileExists reported a file neither layer has")
	}
}

func TestWriteCapturedNeverReachesBase(t *testing.T) {
	base := &fakeFS{}
	var gotName, gotText string
	o, err := New(base, "/proj", map[string]string{"a.ts": "x"}, func(name, text string) {
		gotName, gotText = name, text
	})
	if err != nil {
		t.Fatal(err)
	}

	if err := o.WriteFile("/proj/a.js", "var x;", false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if gotName != "/proj/a.js" || gotText != "var x;" {
		t.Fatalf("sink got (%q, %q)", gotName, gotText)
	}
	if len(base.writes) != 0 {
		t.Fatalf("base filesystem was written to: %v", base.writes)
	}

	// Byte order mark is prepended before reporting.
	if err := o.WriteFile("/proj/b.js", "var y;", true); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if gotText != "\uFEFFvar y;" {
		t.Fatalf("bom write reported %q", gotText)
	}
}

func TestWriteWithoutSinkIsDiscarded(t *testing.T) {
	base := &fakeFS{}
	o, err := New(base, "/proj", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.WriteFile("/proj/out.js", "x", false); err != nil {
		t.Fatalf("WriteFile: %v", err)
	}
	if len(base.writes) != 0 {
		t.Fatalf("base filesystem was written to: %v", base.writes)
	}
}

func TestMutationsNotAllowed(t *testing.T) {
	base := &fakeFS{}
	o, err := New(base, "/proj", nil, nil)
	if err != nil {
		t.Fatal(err)
	}
	if err := o.Remove("/proj/a.ts"); err == nil {
		t.Fatal("Remove succeeded")
	}
	if err := o.Chtimes("/proj/a.ts", time.Now(), time.Now()); err == nil {
		t.Fatal("Chtimes succeeded")
	}
	if len(base.writes) != 0 {
		t.Fatalf("base filesystem was mutated: %v", base.writes)
	}
}

func TestVirtualEntriesAreDiscoverable(t *testing.T) {
	base := &fakeFS{}
	o, err := New(base, "/proj", map[string]string{"a.ts": "x", "b.ts": "y"}, nil)
	if err != nil {
		t.Fatal(err)
	}

	if !o.DirectoryExists("/proj") {
		t.Fatal("DirectoryExists(/proj) = false")
	}
	if o.DirectoryExists("/elsewhere") {
		t.Fatal("DirectoryExists(/elsewhere) = true")
	}

	entries := o.GetAccessibleEntries("/proj")
	slices.Sort(entries.Files)
	if !slices.Equal(entries.Files, []string{"a.ts", "b.ts"}) {
		t.Fatalf("GetAccessibleEntries files = %v", entries.Files)
	}
}

func TestStatReportsVirtualSize(t *testing.T) {
	o, err := New(&fakeFS{}, "/proj", map[string]string{"a.ts": "hello"}, nil)
	if err != nil {
		t.Fatal(err)
	}
	info := o.Stat("a.ts")
	if info == nil {
		t.Fatal("Stat returned nil for virtual file")
	}
	if info.Size() != int64(len("hello")) {
		t.Fatalf("Stat size = %d", info.Size())
	}
}
