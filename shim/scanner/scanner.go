// Package scanner re-exports the parts of typescript-go's internal scanner
// package used through the shim.
package scanner

import (
	"github.com/microsoft/typescript-go/internal/scanner"
)

var (
	GetECMALineAndCharacterOfPosition = scanner.GetECMALineAndCharacterOfPosition
	GetECMALineOfPosition             = scanner.GetECMALineOfPosition
	GetECMAPositionOfLineAndCharacter = scanner.GetECMAPositionOfLineAndCharacter
)
