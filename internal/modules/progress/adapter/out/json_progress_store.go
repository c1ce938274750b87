package out

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"

	"enough/internal/modules/progress/domain"
	progressout "enough/internal/modules/progress/port/out"
	"enough/internal/platform/atomicfile"
	apperrors "enough/internal/platform/errors"
	"enough/internal/platform/validate"
)

type JSONProgressStore struct {
	path string
}

func NewJSONProgressStore(path string) progressout.Store {
	return &JSONProgressStore{path: path}
}

func (s *JSONProgressStore) Load(_ context.Context) (domain.Record, error) {
	payload, err := os.ReadFile(s.path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Record{}, apperrors.ErrNotFound
		}
		return domain.Record{}, fmt.Errorf("read progress: %w", err)
	}
	record := domain.Record{}
	if err := json.Unmarshal(payload, &record); err != nil {
		return domain.Record{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptRecord, s.path, err)
	}
	if record.SchemaVersion == 0 {
		record.SchemaVersion = domain.SchemaVersion
	}
	if err := validate.Struct(record); err != nil {
		return domain.Record{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptRecord, s.path, err)
	}
	return record, nil
}

func (s *JSONProgressStore) Save(_ context.Context, record domain.Record) error {
	if err := validate.Struct(record); err != nil {
		return err
	}
	if err := record.Check(); err != nil {
		return err
	}
	payload, err := json.MarshalIndent(record, "", "  ")
	if err != nil {
		return fmt.Errorf("marshal progress: %w", err)
	}
	if err := atomicfile.WriteFile(s.path, append(payload, '\n'), 0o644); err != nil {
		return fmt.Errorf("write progress: %w", err)
	}
	return nil
}
