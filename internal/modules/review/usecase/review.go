package usecase

import (
	"context"
	"fmt"

	"enough/internal/modules/review/domain"
	"enough/internal/modules/review/dto"
	reviewin "enough/internal/modules/review/port/in"
	"enough/internal/modules/review/service"
	"enough/internal/platform/calendar"
	apperrors "enough/internal/platform/errors"
)

type Interactor struct {
	svc *service.ReviewService
}

func NewInteractor(svc *service.ReviewService) reviewin.Usecase {
	return &Interactor{svc: svc}
}

// reflectorBridge lets a presentation-side reflector serve the engine.
type reflectorBridge struct {
	inner reviewin.Reflector
}

func (b reflectorBridge) Reflect(ctx context.Context, review domain.PromptReview) (string, error) {
	return b.inner.Reflect(ctx, toPromptReview(review))
}

func (b reflectorBridge) Insights(ctx context.Context) ([]string, error) {
	return b.inner.Insights(ctx)
}

func (b reflectorBridge) Actions(ctx context.Context) ([]string, error) {
	return b.inner.Actions(ctx)
}

func toPromptReview(pr domain.PromptReview) dto.PromptReviewOutput {
	out := dto.PromptReviewOutput{Stem: pr.Stem, Reflection: pr.Reflection}
	for _, r := range pr.Responses {
		out.Responses = append(out.Responses, dto.ResponseOutput{Date: r.Date, Completions: append([]string(nil), r.Completions...)})
	}
	return out
}

func toOutput(record domain.Record, path string) dto.ReviewOutput {
	out := dto.ReviewOutput{
		ID:        record.ID,
		Exercise:  record.Exercise,
		WeekStart: record.WeekStart,
		WeekEnd:   record.WeekEnd(),
		CreatedAt: record.CreatedAt,
		Path:      path,
		Insights:  append([]string(nil), record.Insights...),
		Actions:   append([]string(nil), record.Actions...),
	}
	for _, pr := range record.PromptReviews {
		out.PromptReviews = append(out.PromptReviews, toPromptReview(pr))
	}
	for _, th := range record.Themes {
		out.Themes = append(out.Themes, dto.ThemeOutput{Word: th.Word, Count: th.Count})
	}
	return out
}

func (i *Interactor) RunWeekly(ctx context.Context, input dto.RunInput, reflector reviewin.Reflector) (dto.ReviewOutput, error) {
	if reflector == nil {
		return dto.ReviewOutput{}, fmt.Errorf("%w: reflector is required", apperrors.ErrInvalidInput)
	}
	record, path, err := i.svc.RunWeekly(ctx, input.Exercise, input.WeekStart, reflectorBridge{inner: reflector})
	if err != nil {
		return dto.ReviewOutput{}, err
	}
	return toOutput(record, path), nil
}

func (i *Interactor) Preview(ctx context.Context, input dto.RunInput) ([]dto.PromptReviewOutput, error) {
	reviews, _, err := i.svc.Collect(ctx, input.Exercise, input.WeekStart)
	if err != nil {
		return nil, err
	}
	out := make([]dto.PromptReviewOutput, 0, len(reviews))
	for _, pr := range reviews {
		out = append(out, toPromptReview(pr))
	}
	return out, nil
}

func (i *Interactor) Get(ctx context.Context, exercise string, weekStart calendar.Date) (dto.ReviewOutput, error) {
	record, err := i.svc.Get(ctx, exercise, weekStart)
	if err != nil {
		return dto.ReviewOutput{}, err
	}
	return toOutput(record, ""), nil
}

func (i *Interactor) Latest(ctx context.Context, exercise string) (dto.ReviewOutput, error) {
	record, err := i.svc.Latest(ctx, exercise)
	if err != nil {
		return dto.ReviewOutput{}, err
	}
	return toOutput(record, ""), nil
}

func (i *Interactor) List(ctx context.Context, exercise string) ([]dto.ReviewOutput, error) {
	records, err := i.svc.List(ctx, exercise)
	if err != nil {
		return nil, err
	}
	out := make([]dto.ReviewOutput, 0, len(records))
	for _, r := range records {
		out = append(out, toOutput(r, ""))
	}
	return out, nil
}
