package out

import (
	"context"

	"enough/internal/modules/exercise/domain"
)

type ProgramSource interface {
	Load(ctx context.Context) (domain.Program, error)
	// Origin names where the program came from, for diagnostics.
	Origin() string
}

// Opener builds a source for an arbitrary program file.
type Opener func(path string) ProgramSource
