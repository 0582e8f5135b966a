// Package checker re-exports the parts of typescript-go's internal checker
// package used through the shim.
package checker

import (
	"github.com/microsoft/typescript-go/internal/checker"
)

type Checker = checker.Checker
