// Package osvfs re-exports the parts of typescript-go's internal vfs/osvfs
// package used through the shim.
package osvfs

import (
	"github.com/microsoft/typescript-go/internal/vfs/osvfs"
)

var FS = osvfs.FS
