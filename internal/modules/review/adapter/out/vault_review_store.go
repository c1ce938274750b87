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

	"enough/internal/modules/review/domain"
	reviewout "enough/internal/modules/review/port/out"
	"enough/internal/platform/atomicfile"
	"enough/internal/platform/calendar"
	"enough/internal/platform/crypt"
	apperrors "enough/internal/platform/errors"
	"enough/internal/platform/markdown"
	"enough/internal/platform/slug"
	"enough/internal/platform/validate"
)

const fileSuffix = "_review.md"

var summaryBlock = markdown.NewBlock("enough:review")

type responseYAML struct {
	Date        calendar.Date `yaml:"date"`
	Completions []string      `yaml:"completions"`
}

type promptReviewYAML struct {
	Responses  []responseYAML `yaml:"responses"`
	Reflection string         `yaml:"reflection"`
}

type themeYAML struct {
	Word  string `yaml:"word"`
	Count int    `yaml:"count"`
}

// frontmatter carries the structured review. PromptReviews maps stem to
// responses and reflection, in the order the stems were reviewed.
type frontmatter struct {
	SchemaVersion int           `yaml:"schema_version"`
	ID            string        `yaml:"id"`
	Exercise      string        `yaml:"exercise"`
	WeekStart     calendar.Date `yaml:"week_start"`
	CreatedAt     time.Time     `yaml:"created_at"`
	PromptReviews yaml.Node     `yaml:"prompt_reviews"`
	Insights      []string      `yaml:"insights"`
	Actions       []string      `yaml:"actions"`
	Themes        []themeYAML   `yaml:"themes,omitempty"`
}

type VaultReviewStore struct {
	root  string
	codec crypt.Codec
}

func NewVaultReviewStore(root string, codec crypt.Codec) reviewout.Store {
	if codec == nil {
		codec = crypt.Plain{}
	}
	return &VaultReviewStore{root: root, codec: codec}
}

func (s *VaultReviewStore) path(exercise string, weekStart calendar.Date) string {
	name := slug.Sanitize(exercise)
	return filepath.Join(s.root, name, name+"_"+weekStart.Compact()+fileSuffix)
}

// Save overwrites the week's review. Notes the user wrote outside the
// generated summary block are carried over.
func (s *VaultReviewStore) Save(_ context.Context, record domain.Record) (string, error) {
	if err := validate.Struct(record); err != nil {
		return "", err
	}
	path := s.path(record.Exercise, record.WeekStart)

	body := ""
	if existing, err := s.read(path); err == nil {
		if _, existingBody, splitErr := markdown.Split(existing); splitErr == nil {
			body = existingBody
		}
	}
	if strings.TrimSpace(summaryBlock.Outside(body)) == "" {
		body = "## Notes\n"
	}
	body = summaryBlock.Replace(body, renderSummary(record))

	meta, err := toFrontmatter(record)
	if err != nil {
		return "", err
	}
	rendered, err := markdown.Render(meta, body)
	if err != nil {
		return "", err
	}
	sealed, err := s.codec.Seal([]byte(rendered))
	if err != nil {
		return "", fmt.Errorf("seal review: %w", err)
	}
	if err := atomicfile.WriteFile(path, sealed, 0o600); err != nil {
		return "", fmt.Errorf("write review: %w", err)
	}
	return path, nil
}

func (s *VaultReviewStore) read(path string) (string, error) {
	raw, err := os.ReadFile(path)
	if err != nil {
		if errors.Is(err, fs.ErrNotExist) {
			return "", apperrors.ErrNotFound
		}
		return "", fmt.Errorf("read review: %w", err)
	}
	plain, err := s.codec.Open(raw)
	if err != nil {
		return "", fmt.Errorf("%s: %w", path, err)
	}
	return string(plain), nil
}

func (s *VaultReviewStore) Load(_ context.Context, exercise string, weekStart calendar.Date) (domain.Record, error) {
	path := s.path(exercise, weekStart)
	content, err := s.read(path)
	if err != nil {
		return domain.Record{}, err
	}
	meta := frontmatter{}
	if _, err := markdown.Decode(content, &meta); err != nil {
		return domain.Record{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptRecord, path, err)
	}
	record, err := fromFrontmatter(meta)
	if err != nil {
		return domain.Record{}, fmt.Errorf("%w: %s: %v", apperrors.ErrCorruptRecord, path, err)
	}
	return record, nil
}

func (s *VaultReviewStore) Weeks(_ context.Context, exercise string) ([]calendar.Date, error) {
	name := slug.Sanitize(exercise)
	matches, err := filepath.Glob(filepath.Join(s.root, name, name+"_*"+fileSuffix))
	if err != nil {
		return nil, fmt.Errorf("glob reviews: %w", err)
	}
	weeks := make([]calendar.Date, 0, len(matches))
	for _, path := range matches {
		stamp := strings.TrimSuffix(strings.TrimPrefix(filepath.Base(path), name+"_"), fileSuffix)
		week, err := calendar.Parse(stamp)
		if err != nil || len(stamp) != 8 {
			continue
		}
		weeks = append(weeks, week)
	}
	sort.Slice(weeks, func(i, j int) bool { return weeks[i].Before(weeks[j]) })
	return weeks, nil
}

func toFrontmatter(record domain.Record) (frontmatter, error) {
	meta := frontmatter{
		SchemaVersion: record.SchemaVersion,
		ID:            record.ID,
		Exercise:      record.Exercise,
		WeekStart:     record.WeekStart,
		CreatedAt:     record.CreatedAt,
		PromptReviews: yaml.Node{Kind: yaml.MappingNode, Tag: "!!map"},
		Insights:      nonNil(record.Insights),
		Actions:       nonNil(record.Actions),
	}
	for _, pr := range record.PromptReviews {
		body := promptReviewYAML{Reflection: pr.Reflection}
		for _, r := range pr.Responses {
			body.Responses = append(body.Responses, responseYAML{Date: r.Date, Completions: r.Completions})
		}
		value := &yaml.Node{}
		if err := value.Encode(body); err != nil {
			return frontmatter{}, fmt.Errorf("encode prompt review: %w", err)
		}
		meta.PromptReviews.Content = append(meta.PromptReviews.Content,
			&yaml.Node{Kind: yaml.ScalarNode, Tag: "!!str", Value: pr.Stem},
			value,
		)
	}
	for _, th := range record.Themes {
		meta.Themes = append(meta.Themes, themeYAML{Word: th.Word, Count: th.Count})
	}
	return meta, nil
}

func fromFrontmatter(meta frontmatter) (domain.Record, error) {
	record := domain.Record{
		SchemaVersion: meta.SchemaVersion,
		ID:            meta.ID,
		Exercise:      meta.Exercise,
		WeekStart:     meta.WeekStart,
		CreatedAt:     meta.CreatedAt,
		Insights:      meta.Insights,
		Actions:       meta.Actions,
	}
	if record.SchemaVersion == 0 {
		record.SchemaVersion = domain.SchemaVersion
	}
	node := meta.PromptReviews
	if node.Kind != yaml.MappingNode {
		return domain.Record{}, fmt.Errorf("prompt_reviews must be a mapping")
	}
	for i := 0; i+1 < len(node.Content); i += 2 {
		body := promptReviewYAML{}
		if err := node.Content[i+1].Decode(&body); err != nil {
			return domain.Record{}, fmt.Errorf("prompt review %q: %w", node.Content[i].Value, err)
		}
		pr := domain.PromptReview{Stem: node.Content[i].Value, Reflection: body.Reflection}
		for _, r := range body.Responses {
			pr.Responses = append(pr.Responses, domain.Response{Date: r.Date, Completions: r.Completions})
		}
		record.PromptReviews = append(record.PromptReviews, pr)
	}
	for _, th := range meta.Themes {
		record.Themes = append(record.Themes, domain.Theme{Word: th.Word, Count: th.Count})
	}
	if err := validate.Struct(record); err != nil {
		return domain.Record{}, err
	}
	return record, nil
}

func nonNil(items []string) []string {
	if items == nil {
		return []string{}
	}
	return items
}

func renderSummary(record domain.Record) string {
	b := strings.Builder{}
	fmt.Fprintf(&b, "# Week of %s\n", record.WeekStart)
	for _, pr := range record.PromptReviews {
		fmt.Fprintf(&b, "\n## %s\n\n", pr.Stem)
		for _, r := range pr.Responses {
			fmt.Fprintf(&b, "- %s: %s\n", r.Date, strings.Join(r.Completions, "; "))
		}
		if pr.Reflection != "" {
			fmt.Fprintf(&b, "\n> %s\n", pr.Reflection)
		}
	}
	writeList := func(title string, items []string) {
		if len(items) == 0 {
			return
		}
		fmt.Fprintf(&b, "\n## %s\n\n", title)
		for _, item := range items {
			fmt.Fprintf(&b, "- %s\n", item)
		}
	}
	writeList("Insights", record.Insights)
	writeList("Actions", record.Actions)
	if len(record.Themes) > 0 {
		words := make([]string, 0, len(record.Themes))
		for _, th := range record.Themes {
			words = append(words, fmt.Sprintf("%s (%d)", th.Word, th.Count))
		}
		fmt.Fprintf(&b, "\n## Themes\n\n%s\n", strings.Join(words, ", "))
	}
	return b.String()
}
