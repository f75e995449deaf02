package tests

import (
	"context"
	"fmt"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/BuzzLyutic/todo-api/internal/model"
	"github.com/BuzzLyutic/todo-api/internal/repo"
	"github.com/BuzzLyutic/todo-api/internal/service"
)

func seedOwner(t *testing.T, users repo.UserRepository) model.User {
	t.Helper()
	user, err := users.Create(context.Background(), model.User{
		Email:        "owner@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)
	return user
}

func TestConcurrent_LastWriteWins(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()

	TruncateTables(t, pool)

	todoRepo := repo.NewTodoRepo(pool)
	todoService := service.NewTodoService(todoRepo)
	owner := seedOwner(t, repo.NewUserRepo(pool))
	ctx := context.Background()

	todo, err := todoService.Create(ctx, owner.ID, model.TodoInput{Title: "contended"})
	require.NoError(t, err)

	const goroutines = 10
	var wg sync.WaitGroup
	titles := make([]string, goroutines)
	errs := make([]error, goroutines)

	// Concurrent patches against the same todo. There is no version check,
	// so every write succeeds and the row ends up holding one of them.
	for i := 0; i < goroutines; i++ {
		titles[i] = fmt.Sprintf("writer %d", i)
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			title := titles[idx]
			_, errs[idx] = todoService.Update(ctx, owner.ID, todo.ID, model.TodoPatch{Title: &title})
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "writer %d should not error", i)
	}

	final, err := todoRepo.Get(ctx, todo.ID)
	require.NoError(t, err)
	assert.Contains(t, titles, final.Title, "final state must be one of the written values")
}

func TestConcurrent_PinToggles(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()

	TruncateTables(t, pool)

	todoRepo := repo.NewTodoRepo(pool)
	todoService := service.NewTodoService(todoRepo)
	owner := seedOwner(t, repo.NewUserRepo(pool))
	ctx := context.Background()

	todo, err := todoService.Create(ctx, owner.ID, model.TodoInput{Title: "pin me"})
	require.NoError(t, err)

	const goroutines = 20
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			pinned := idx%2 == 0
			_, errs[idx] = todoService.Update(ctx, owner.ID, todo.ID, model.TodoPatch{IsPinned: &pinned})
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		require.NoError(t, err, "toggle %d should not error", i)
	}

	// Whatever landed last, the row is still intact.
	final, err := todoRepo.Get(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "pin me", final.Title)
	assert.False(t, final.IsCompleted)
}

func TestConcurrent_CreateAndList(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()

	TruncateTables(t, pool)

	todoRepo := repo.NewTodoRepo(pool)
	todoService := service.NewTodoService(todoRepo)
	owner := seedOwner(t, repo.NewUserRepo(pool))
	ctx := context.Background()

	var wg sync.WaitGroup
	const creators = 5
	const perCreator = 5
	const readers = 5

	for i := 0; i < creators; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			for j := 0; j < perCreator; j++ {
				_, err := todoService.Create(ctx, owner.ID, model.TodoInput{
					Title: fmt.Sprintf("todo %d-%d", idx, j),
				})
				assert.NoError(t, err)
			}
		}(i)
	}

	for i := 0; i < readers; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 10; j++ {
				_, err := todoService.List(ctx, owner.ID)
				assert.NoError(t, err)
			}
		}()
	}

	wg.Wait()

	todos, err := todoRepo.ListByOwner(ctx, owner.ID)
	require.NoError(t, err)
	assert.Len(t, todos, creators*perCreator)
}

func TestConcurrent_OwnershipChecksUnderLoad(t *testing.T) {
	pool, cleanup := SetupTestDB(t)
	defer cleanup()

	TruncateTables(t, pool)

	todoRepo := repo.NewTodoRepo(pool)
	todoService := service.NewTodoService(todoRepo)
	userRepo := repo.NewUserRepo(pool)
	ctx := context.Background()

	owner := seedOwner(t, userRepo)
	stranger, err := userRepo.Create(ctx, model.User{
		Email:        "stranger@example.com",
		PasswordHash: "hash",
	})
	require.NoError(t, err)

	todo, err := todoService.Create(ctx, owner.ID, model.TodoInput{Title: "guarded"})
	require.NoError(t, err)

	const goroutines = 20
	var wg sync.WaitGroup
	errs := make([]error, goroutines)

	for i := 0; i < goroutines; i++ {
		wg.Add(1)
		go func(idx int) {
			defer wg.Done()
			title := "stolen"
			_, errs[idx] = todoService.Update(ctx, stranger.ID, todo.ID, model.TodoPatch{Title: &title})
		}(i)
	}

	wg.Wait()

	for i, err := range errs {
		assert.ErrorIs(t, err, service.ErrForbidden, "attempt %d must be rejected", i)
	}

	final, err := todoRepo.Get(ctx, todo.ID)
	require.NoError(t, err)
	assert.Equal(t, "guarded", final.Title)
}
