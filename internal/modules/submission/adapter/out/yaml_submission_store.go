package out

import (
	"context"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"time"

	"gopkg.in/yaml.v3"

	"enough/internal/modules/submission/domain"
	submissionout "enough/internal/modules/submission/port/out"
	"enough/internal/platform/atomicfile"
	"enough/internal/platform/calendar"
	"enough/internal/platform/crypt"
	apperrors "enough/internal/platform/errors"
	"enough/internal/platform/slug"
	"enough/internal/platform/validate"
)

type fileSession struct {
	ID              string    `yaml:"id,omitempty"`
	StartedAt       time.Time `yaml:"started_at,omitempty"`
	EndedAt         time.Time `yaml:"ended_at,omitempty"`
	DurationSeconds int       `yaml:"duration_seconds"`
}

// fileRecord is the on-disk layout. Submissions is a YAML mapping from stem
// to completions, kept as a node so key order survives a round trip.
type fileRecord struct {
	SchemaVersion int           `yaml:"schema_version"`
	Exercise      string        `yaml:"exercise"`
	Date          calendar.Date `yaml:"date"`
	Week          int           `yaml:"week,omitempty"`
	Day           int           `yaml:"day,omitempty"`
	Session       *fileSession  `yaml:"session,omitempty"`
	Submissions   yaml.Node     `yaml:"submissions"`
}

type YAMLSubmissionStore struct {
	root  string
	codec crypt.Codec
}

func NewYAMLSubmissionStore(root string, codec crypt.Codec) submissionout.Store {
	if codec == nil {
		codec = crypt.Plain{}
	}
	return &YAMLSubmissionStore{root: root, codec: codec}
}

func (s *YAMLSubmissionStore) Path(exercise string, date calendar.Date) string {
	name := slug.Sanitize(exercise)
	return filepath.Join(s.root, name, name+"_"+date.Compact()+".yaml")
}

func (s *YAMLSubmissionStore) Load(_ context.Context, exercise string, date calendar.Date) (domain.Record, error) {
	path := s.Path(exercise, date)
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return domain.Record{}, apperrors.ErrNotFound
		}
		return domain.Record{}, fmt.Errorf("read submission: %w", err)
	}
	plain, err := s.codec.Open(raw)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%s: %w", path, err)
	}
	record, err := decodeRecord(plain)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptRecord, path, err)
	}
	if err := validate.Struct(record); err != nil {
		return domain.Record{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptRecord, path, err)
	}
	return record, nil
}

func (s *YAMLSubmissionStore) Save(_ context.Context, record domain.Record) (string, error) {
	record.Exercise = slug.Sanitize(record.Exercise)
	if err := validate.Struct(record); err != nil {
		return "", err
	}
	plain, err := encodeRecord(record)
	if err != nil {
		return "", err
	}
	sealed, err := s.codec.Seal(plain)
	if err != nil {
		return "", fmt.Errorf("seal submission: %w", err)
	}
	path := s.Path(record.Exercise, record.Date)
	if err := atomicfile.WriteFile(path, sealed, 0o600); err != nil {
		return "", fmt.Errorf("write submission: %w", err)
	}
	return path, nil
}

func (s *YAMLSubmissionStore) ListDates(_ context.Context, exercise string) ([]calendar.Date, error) {
	name := slug.Sanitize(exercise)
	matches, err := filepath.Glob(filepath.Join(s.root, name, name+"_*.yaml"))
	if err != nil {
		return nil, fmt.Errorf("glob submissions: %w", err)
	}
	dates := make([]calendar.Date, 0, len(matches))
	for _, path := range matches {
		stamp := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), name+"_"), ".yaml")
		if len(stamp) != 8 {
			continue
		}
		date, err := calendar.Parse(stamp)
		if err != nil {
			continue
		}
		dates = append(dates, date)
	}
	sort.Slice(dates, func(i, j int) bool { return dates[i].Before(dates[j]) })
	return dates, nil
}

func (s *YAMLSubmissionStore) ListExercises(_ context.Context) ([]string, error) {
	entries, err := os.ReadDir(s.root)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return nil, nil
		}
		return nil, fmt.Errorf("list exercises: %w", err)
	}
	out := []string{}
	for _, e := range entries {
		if e.IsDir() && !strings.HasPrefix(e.Name(), ".") {
			out = append(out, e.Name())
		}
	}
	sort.Strings(out)
	return out, nil
}

func encodeRecord(record domain.Record) ([]byte, error) {
	file := fileRecord{
		SchemaVersion: record.SchemaVersion,
		Exercise:      record.Exercise,
		Date:          record.Date,
		Week:          record.Week,
		Day:           record.Day,
		Submissions:   yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"},
	}
	if !record.Session.IsZero() {
		file.Session = &fileSession{
			ID:              record.Session.ID,
			StartedAt:       record.Session.StartedAt,
			EndedAt:         record.Session.EndedAt,
			DurationSeconds: record.Session.DurationSeconds,
		}
	}
	for _, entry := range record.Submissions {
		values := &yaml.Node{Kind: yaml.SequenceNode, Tag: "!!seq"}
		for _, c := range entry.Completions {
			values.Content = append(values.Content, &yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: c})
		}
		file.Submissions.Content = append(file.Submissions.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: entry.Stem},
			values,
		)
	}
	raw, err := yaml.Marshal(file)
	if err != nil {
		return nil, fmt.Errorf("marshal submission: %w", err)
	}
	return raw, nil
}

func decodeRecord(raw []byte) (domain.Record, error) {
	file := fileRecord{}
	if err := yaml.Unmarshal(raw, &file); err != nil {
		return domain.Record{}, err
	}
	record := domain.Record{
		SchemaVersion: file.SchemaVersion,
		Exercise:      file.Exercise,
		Date:          file.Date,
		Week:          file.Week,
		Day:           file.Day,
	}
	if record.SchemaVersion == 0 {
		record.SchemaVersion = domain.SchemaVersion
	}
	if file.Session != nil {
		record.Session = domain.Session{
			ID:              file.Session.ID,
			StartedAt:       file.Session.StartedAt,
			EndedAt:         file.Session.EndedAt,
			DurationSeconds: file.Session.DurationSeconds,
		}
	}

	node := file.Submissions
	if node.Kind == 0 {
		return record, nil
	}
	if node.Kind != yaml.MappingNode {
		return domain.Record{}, fmt.Errorf("submissions must be a mapping, found %s", node.Tag)
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		stem := node.Content[i].Value
		value := node.Content[i+1]
		var completions []string
		switch value.Kind {
		case yaml.ScalarNode:
			completions = []string{value.Value}
		default:
			if err := value.Decode(&completions); err != nil {
				return domain.Record{}, fmt.Errorf("stem %q: %w", stem, err)
			}
		}
		record.Append(stem, completions)
	}
	return record, nil
}
