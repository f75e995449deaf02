package service

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/google/uuid"

	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/organizer"
	"github.com/BuzzLyutic/todo-api/internal/repo"
	"github.com/BuzzLyutic/todo-api/internal/tags"
)

var (
	ErrValidation     = errors.New("validation error")
	ErrForbidden      = errors.New("forbidden")
	ErrBadCredentials = errors.New("bad credentials")
)

type TodoService struct {
	repo repo.TodoRepository
}

func NewTodoService(repo repo.TodoRepository) *TodoService {
	return &TodoService{repo: repo}
}

func (s *TodoService) List(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	return s.repo.ListByOwner(ctx, ownerID)
}

// Organized returns the owner's collection filtered, pin-partitioned, sorted
// and annotated for display. "today" is injected so deadline classification
// stays deterministic.
func (s *TodoService) Organized(ctx context.Context, ownerID uuid.UUID, filter organizer.Filter, today model.Date) (organizer.AnnotatedGroups, error) {
	todos, err := s.repo.ListByOwner(ctx, ownerID)
	if err != nil {
		return organizer.AnnotatedGroups{}, err
	}
	return organizer.Annotate(organizer.Organize(todos, filter), today), nil
}

func (s *TodoService) Get(ctx context.Context, ownerID, id uuid.UUID) (model.Todo, error) {
	return s.owned(ctx, ownerID, id)
}

func (s *TodoService) Create(ctx context.Context, ownerID uuid.UUID, input model.TodoInput) (model.Todo, error) {
	title := strings.TrimSpace(input.Title)
	if title == "" {
		return model.Todo{}, fmt.Errorf("%w: title is required", ErrValidation)
	}
	if err := validateTags(input.Tags); err != nil {
		return model.Todo{}, err
	}
	if err := validateDateRange(input.StartDate, input.EndDate); err != nil {
		return model.Todo{}, err
	}

	// New todos are always born incomplete and unpinned.
	return s.repo.Create(ctx, model.Todo{
		OwnerID:     ownerID,
		Title:       title,
		Description: input.Description,
		StartDate:   input.StartDate,
		EndDate:     input.EndDate,
		Tags:        input.Tags,
	})
}

// Update applies a partial update: only the fields present in the patch
// change, everything else keeps its stored value.
func (s *TodoService) Update(ctx context.Context, ownerID, id uuid.UUID, patch model.TodoPatch) (model.Todo, error) {
	if patch.Empty() {
		return model.Todo{}, fmt.Errorf("%w: no fields to update", ErrValidation)
	}
	if patch.Title != nil {
		trimmed := strings.TrimSpace(*patch.Title)
		if trimmed == "" {
			return model.Todo{}, fmt.Errorf("%w: title is required", ErrValidation)
		}
		patch.Title = &trimmed
	}
	if patch.TagsSet {
		if err := validateTags(patch.Tags); err != nil {
			return model.Todo{}, err
		}
	}

	stored, err := s.owned(ctx, ownerID, id)
	if err != nil {
		return model.Todo{}, err
	}

	merged := patch.ApplyTo(stored)
	if err := validateDateRange(merged.StartDate, merged.EndDate); err != nil {
		return model.Todo{}, err
	}

	return s.repo.Update(ctx, merged)
}

func (s *TodoService) Delete(ctx context.Context, ownerID, id uuid.UUID) error {
	if _, err := s.owned(ctx, ownerID, id); err != nil {
		return err
	}
	return s.repo.Delete(ctx, id)
}

func (s *TodoService) Stats(ctx context.Context, ownerID uuid.UUID, today model.Date) (repo.Stats, error) {
	return s.repo.Stats(ctx, ownerID, today)
}

// owned loads a todo and verifies the requester owns it. A mismatch is a
// distinct failure from the todo not existing.
func (s *TodoService) owned(ctx context.Context, ownerID, id uuid.UUID) (model.Todo, error) {
	t, err := s.repo.Get(ctx, id)
	if err != nil {
		return model.Todo{}, err
	}
	if t.OwnerID != ownerID {
		return model.Todo{}, ErrForbidden
	}
	return t, nil
}

func validateTags(labels []string) error {
	for _, label := range labels {
		if !tags.Valid(label) {
			return fmt.Errorf("%w: unknown tag %q", ErrValidation, label)
		}
	}
	return nil
}

func validateDateRange(start, end *model.Date) error {
	if start != nil && end != nil && end.Before(*start) {
		return fmt.Errorf("%w: endDate must not precede startDate", ErrValidation)
	}
	return nil
}
