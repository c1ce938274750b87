package out

import (
	"bytes"
	"context"
	_ "embed"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"strings"

	"gopkg.in/yaml.v3"

	"enough/internal/modules/exercise/domain"
	exerciseout "enough/internal/modules/exercise/port/out"
	apperrors "enough/internal/platform/errors"
)

//go:embed default_program.yaml
var defaultProgram []byte

type YAMLProgramSource struct {
	path string
}

// NewYAMLProgramSource reads the program at path, or the built-in program
// when path is empty.
func NewYAMLProgramSource(path string) exerciseout.ProgramSource {
	return &YAMLProgramSource{path: path}
}

func (s *YAMLProgramSource) Origin() string {
	if s.path == "" {
		return "built-in program"
	}
	return s.path
}

func (s *YAMLProgramSource) Load(_ context.Context) (domain.Program, error) {
	raw := defaultProgram
	if s.path != "" {
		data, err := os.ReadFile(s.path)
		if err != nil {
			if errors.Is(err, fs.ErrNotExist) {
				return domain.Program{}, fmt.Errorf("%w: program file %s does not exist", apperrors.ErrConfiguration, s.path)
			}
			return domain.Program{}, fmt.Errorf("%w: read program file: %v", apperrors.ErrConfiguration, err)
		}
		raw = data
	}
	return Decode(raw, s.Origin())
}

// Decode parses and validates a program document. Unknown keys are rejected
// so typos in hand-written programs surface at startup.
func Decode(raw []byte, origin string) (domain.Program, error) {
	program := domain.Program{}
	dec := yaml.NewDecoder(bytes.NewReader(raw))
	dec.KnownFields(true)
	if err := dec.Decode(&program); err != nil {
		return domain.Program{}, fmt.Errorf("%w: parse %s: %v", apperrors.ErrConfiguration, origin, err)
	}
	if problems := program.Validate(); len(problems) > 0 {
		return domain.Program{}, fmt.Errorf("%w: %s: %s", apperrors.ErrConfiguration, origin, strings.Join(problems, "; "))
	}
	return program, nil
}
