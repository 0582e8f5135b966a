// Package bundled re-exports the parts of typescript-go's internal bundled
// package used through the shim.
package bundled

import (
	"github.com/microsoft/typescript-go/internal/bundled"
	"github.com/microsoft/typescript-go/internal/vfs"
)

func LibPath() string {
	return bundled.LibPath()
}

func WrapFS(fs vfs.FS) vfs.FS {
	return bundled.WrapFS(fs)
}
