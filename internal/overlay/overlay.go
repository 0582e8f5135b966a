// Package overlay presents a vfs.FS identical to a wrapped base filesystem
// except for a fixed set of in-memory named sources, which shadow same-named
// files on disk. Writes never reach the base filesystem: they are routed to
// an optional capture callback or discarded.
package overlay

import (
	"fmt"
	"io/fs"
	"strings"
	"time"

	"github.com/microsoft/typescript-go/shim/tspath"
	"github.com/microsoft/typescript-go/shim/vfs"
)

// WriteSink receives the (name, text) pair of every file the compiler engine
// would have written. Text includes a byte order mark when the engine
// requested one.
type WriteSink func(fileName string, text string)

// Overlay is a vfs.FS whose in-memory sources take precedence over the
// underlying filesystem. The base filesystem is never written to.
type Overlay struct {
	base    vfs.FS
	rootDir string
	// files maps resolved absolute paths to source text.
	files map[string]string
	sink  WriteSink
}

var _ vfs.FS = (*Overlay)(nil)

// New builds an overlay over base. Source names are logical: they must not
// contain a path separator, and are resolved against rootDir, so "name",
// "./name" and "<rootDir>/name" all address the same entry. An absolute
// path outside rootDir never matches an in-memory source.
func New(base vfs.FS, rootDir string, sources map[string]string, sink WriteSink) (*Overlay, error) {
	files := make(map[string]string, len(sources))
	for name, text := range sources {
		if strings.ContainsAny(name, `/\`) {
			return nil, fmt.Errorf("invalid in-memory source name %q: must not contain a path separator", name)
		}
		files[tspath.ResolvePath(rootDir, name)] = text
	}
	return &Overlay{
		base:    base,
		rootDir: rootDir,
		files:   files,
		sink:    sink,
	}, nil
}

// lookup resolves path against the overlay root and returns the in-memory
// text for it, if any.
func (o *Overlay) lookup(path string) (string, bool) {
	text, ok := o.files[tspath.ResolvePath(o.rootDir, path)]
	return text, ok
}

func (o *Overlay) UseCaseSensitiveFileNames() bool {
	return o.base.UseCaseSensitiveFileNames()
}

func (o *Overlay) FileExists(path string) bool {
	if _, ok := o.lookup(path); ok {
		return true
	}
	return o.base.FileExists(path)
}

func (o *Overlay) ReadFile(path string) (contents string, ok bool) {
	if text, ok := o.lookup(path); ok {
		return text, true
	}
	return o.base.ReadFile(path)
}

func (o *Overlay) DirectoryExists(path string) bool {
	prefix := dirPrefix(path)
	for filePath := range o.files {
		if strings.HasPrefix(filePath, prefix) {
			return true
		}
	}
	return o.base.DirectoryExists(path)
}

func (o *Overlay) GetAccessibleEntries(path string) (result vfs.Entries) {
	result = o.base.GetAccessibleEntries(path)

	prefix := dirPrefix(path)
	for filePath := range o.files {
		rest, found := strings.CutPrefix(filePath, prefix)
		if !found {
			continue
		}
		if before, _, ok := strings.Cut(rest, "/"); ok {
			result.Directories = append(result.Directories, before)
		} else {
			result.Files = append(result.Files, rest)
		}
	}
	return result
}

func dirPrefix(path string) string {
	normalized := tspath.NormalizePath(path)
	if !strings.HasSuffix(normalized, "/") {
		normalized += "/"
	}
	return normalized
}

type overlayFileInfo struct {
	mode fs.FileMode
	name string
	size int64
}

var (
	_ fs.FileInfo = (*overlayFileInfo)(nil)
	_ fs.DirEntry = (*overlayFileInfo)(nil)
)

func (fi *overlayFileInfo) IsDir() bool                { return fi.mode.IsDir() }
func (fi *overlayFileInfo) ModTime() time.Time         { return time.Time{} }
func (fi *overlayFileInfo) Mode() fs.FileMode          { return fi.mode }
func (fi *overlayFileInfo) Name() string               { return fi.name }
func (fi *overlayFileInfo) Size() int64                { return fi.size }
func (fi *overlayFileInfo) Sys() any                   { return nil }
func (fi *overlayFileInfo) Info() (fs.FileInfo, error) { return fi, nil }
func (fi *overlayFileInfo) Type() fs.FileMode          { return fi.mode.Type() }

func (o *Overlay) Stat(path string) vfs.FileInfo {
	if text, ok := o.lookup(path); ok {
		return &overlayFileInfo{
			name: path,
			size: int64(len(text)),
		}
	}
	return o.base.Stat(path)
}

func (o *Overlay) WalkDir(root string, walkFn vfs.WalkDirFunc) error {
	return o.base.WalkDir(root, walkFn)
}

func (o *Overlay) Realpath(path string) string {
	resolved := tspath.ResolvePath(o.rootDir, path)
	if _, ok := o.files[resolved]; ok {
		return resolved
	}
	return o.base.Realpath(path)
}

// WriteFile intercepts every write. The base filesystem is never touched:
// the text is reported to the sink when one was supplied, otherwise the
// write is discarded. A requested byte order mark is prepended to the text
// before reporting.
func (o *Overlay) WriteFile(path string, data string, writeByteOrderMark bool) error {
	if o.sink != nil {
		if writeByteOrderMark {
			data = "\uFEFF" + data
		}
		o.sink(path, data)
	}
	return nil
}

// Remove is not allowed: the overlay must never mutate the underlying
// filesystem.
func (o *Overlay) Remove(path string) error {
	return fmt.Errorf("remove %s: not allowed through overlay", path)
}

// Chtimes is not allowed for the same reason as Remove.
func (o *Overlay) Chtimes(path string, aTime time.Time, mTime time.Time) error {
	return fmt.Errorf("chtimes %s: not allowed through overlay", path)
}
