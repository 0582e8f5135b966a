// Package cachedvfs re-exports the parts of typescript-go's internal
// vfs/cachedvfs package used through the shim.
package cachedvfs

import (
	"github.com/microsoft/typescript-go/internal/vfs/cachedvfs"
)

type FS = cachedvfs.FS

var From = cachedvfs.From
