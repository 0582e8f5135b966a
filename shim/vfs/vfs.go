// Package vfs re-exports the parts of typescript-go's internal vfs package
// used through the shim.
package vfs

import (
	"github.com/microsoft/typescript-go/internal/vfs"
)

type (
	Entries     = vfs.Entries
	FS          = vfs.FS
	FileInfo    = vfs.FileInfo
	WalkDirFunc = vfs.WalkDirFunc
)
