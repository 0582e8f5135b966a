package compiler

import (
	"github.com/microsoft/typescript-go/shim/bundled"
	shimcompiler "github.com/microsoft/typescript-go/shim/compiler"
	"github.com/microsoft/typescript-go/shim/vfs"
	"github.com/microsoft/typescript-go/shim/vfs/cachedvfs"
	"github.com/microsoft/typescript-go/shim/vfs/osvfs"
)

// DefaultFS returns the OS filesystem with the bundled standard-library
// declarations, behind a cache layer. The cache is append-only and assumes
// on-disk files do not change for its lifetime, so one DefaultFS can be
// shared by every compilation made through the same compiler instance.
func DefaultFS() vfs.FS {
	return bundled.WrapFS(cachedvfs.From(osvfs.FS()))
}

// NewHost creates a compiler host rooted at cwd over the given filesystem.
// defaultLibDir overrides where the engine looks for its default library
// files; when empty, the bundled library path is used.
func NewHost(cwd string, fs vfs.FS, defaultLibDir string) shimcompiler.CompilerHost {
	if defaultLibDir == "" {
		defaultLibDir = bundled.LibPath()
	}
	return shimcompiler.NewCompilerHost(cwd, fs, defaultLibDir, nil, nil)
}
