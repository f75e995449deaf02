package repo

import (
	"context"
	"errors"
	"time"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgxpool"

	"github.com/BuzzLyutic/todo-api/internal/model"
)

var (
	ErrorNotFound = errors.New("not found")
	ErrorConflict = errors.New("conflict")
)

const todoColumns = `id, owner_id, title, description, start_date, end_date,
	is_completed, is_pinned, tags, created_at, updated_at`

type TodoRepo struct {
	pool *pgxpool.Pool
}

func NewTodoRepo(pool *pgxpool.Pool) *TodoRepo {
	return &TodoRepo{
		pool: pool,
	}
}

func (r *TodoRepo) Create(ctx context.Context, t model.Todo) (model.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		INSERT INTO todos (owner_id, title, description, start_date, end_date, tags)
		VALUES ($1, $2, $3, $4, $5, $6)
		RETURNING `+todoColumns,
		t.OwnerID, t.Title, t.Description, dateArg(t.StartDate), dateArg(t.EndDate), tagsArg(t.Tags),
	)
	created, err := scanTodo(row)
	return created, mapError(err)
}

func (r *TodoRepo) Get(ctx context.Context, id uuid.UUID) (model.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE id = $1
	`, id)

	t, err := scanTodo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return t, ErrorNotFound
	}
	return t, err
}

func (r *TodoRepo) ListByOwner(ctx context.Context, ownerID uuid.UUID) ([]model.Todo, error) {
	rows, err := r.pool.Query(ctx, `
		SELECT `+todoColumns+`
		FROM todos
		WHERE owner_id = $1
		ORDER BY created_at DESC, id DESC
	`, ownerID)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	todos := make([]model.Todo, 0)
	for rows.Next() {
		t, err := scanTodo(rows)
		if err != nil {
			return nil, err
		}
		todos = append(todos, t)
	}
	return todos, rows.Err()
}

func (r *TodoRepo) Update(ctx context.Context, t model.Todo) (model.Todo, error) {
	row := r.pool.QueryRow(ctx, `
		UPDATE todos
		SET title = $2, description = $3, start_date = $4, end_date = $5,
		    is_completed = $6, is_pinned = $7, tags = $8, updated_at = now()
		WHERE id = $1
		RETURNING `+todoColumns,
		t.ID, t.Title, t.Description, dateArg(t.StartDate), dateArg(t.EndDate),
		t.IsCompleted, t.IsPinned, tagsArg(t.Tags),
	)

	updated, err := scanTodo(row)
	if errors.Is(err, pgx.ErrNoRows) {
		return updated, ErrorNotFound
	}
	return updated, err
}

func (r *TodoRepo) Delete(ctx context.Context, id uuid.UUID) error {
	cmd, err := r.pool.Exec(ctx, "DELETE FROM todos WHERE id = $1", id)
	if err != nil {
		return err
	}
	if cmd.RowsAffected() == 0 {
		return ErrorNotFound
	}
	return nil
}

func (r *TodoRepo) Stats(ctx context.Context, ownerID uuid.UUID, today model.Date) (Stats, error) {
	var s Stats
	err := r.pool.QueryRow(ctx, `
		SELECT
			COUNT(*),
			COUNT(*) FILTER (WHERE is_completed),
			COUNT(*) FILTER (WHERE is_pinned),
			COUNT(*) FILTER (WHERE NOT is_completed AND end_date IS NOT NULL AND end_date < $2)
		FROM todos
		WHERE owner_id = $1
	`, ownerID, today.Time()).Scan(&s.Total, &s.Completed, &s.Pinned, &s.Overdue)
	return s, err
}

// scanTodo reads one row in todoColumns order, converting nullable DATE
// columns into the date-only model type.
func scanTodo(row pgx.Row) (model.Todo, error) {
	var (
		t          model.Todo
		start, end *time.Time
	)
	err := row.Scan(
		&t.ID, &t.OwnerID, &t.Title, &t.Description, &start, &end,
		&t.IsCompleted, &t.IsPinned, &t.Tags, &t.CreatedAt, &t.UpdatedAt,
	)
	if err != nil {
		return t, err
	}
	t.StartDate = dateFromColumn(start)
	t.EndDate = dateFromColumn(end)
	return t, nil
}

func dateFromColumn(t *time.Time) *model.Date {
	if t == nil {
		return nil
	}
	d := model.DateOf(*t)
	return &d
}

func dateArg(d *model.Date) *time.Time {
	if d == nil {
		return nil
	}
	t := d.Time()
	return &t
}

func tagsArg(tags []string) []string {
	if tags == nil {
		return []string{}
	}
	return tags
}

func mapError(err error) error {
	if err == nil {
		return nil
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) {
		if pgErr.Code == "23505" {
			return ErrorConflict
		}
	}
	return err
}
