package task

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

// PostgresRepository implements Repository using pgxpool.
type PostgresRepository struct {
	pool *pgxpool.Pool
}

// NewRepository creates a new Repository backed by the given connection pool.
func NewRepository(pool *pgxpool.Pool) Repository {
	return &PostgresRepository{pool: pool}
}

const taskColumns = `
	t.id, t.title, t.description, t.status, t.priority, t.due_date,
	t.assigned_to, t.created_by, t.team_id, t.created_at,
	c.name, c.email, a.name, a.email`

const taskJoins = `
	FROM tasks t
	JOIN users c ON c.id = t.created_by
	LEFT JOIN users a ON a.id = t.assigned_to`

func scanTask(row pgx.Row, t *Task) error {
	return row.Scan(
		&t.ID, &t.Title, &t.Description, &t.Status, &t.Priority, &t.DueDate,
		&t.AssignedTo, &t.CreatedBy, &t.TeamID, &t.CreatedAt,
		&t.CreatorName, &t.CreatorEmail, &t.AssigneeName, &t.AssigneeEmail,
	)
}

// Create inserts a new task record. Creator and assignee info are filled in
// afterwards from the id returned by the insert.
func (r *PostgresRepository) Create(ctx context.Context, t *Task) error {
	query := `
		INSERT INTO tasks (title, description, status, priority, due_date, assigned_to, created_by, team_id)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8)
		RETURNING id, created_at`

	err := r.pool.QueryRow(ctx, query,
		t.Title,
		t.Description,
		t.Status,
		t.Priority,
		t.DueDate,
		t.AssignedTo,
		t.CreatedBy,
		t.TeamID,
	).Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		return fmt.Errorf("inserting task: %w", err)
	}

	created, err := r.GetByID(ctx, t.ID)
	if err != nil {
		return fmt.Errorf("reloading created task: %w", err)
	}
	*t = *created

	return nil
}

// GetByID retrieves a single task by its UUID with creator and assignee resolved.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Task, error) {
	query := `SELECT` + taskColumns + taskJoins + ` WHERE t.id = $1`

	var t Task
	if err := scanTask(r.pool.QueryRow(ctx, query, id), &t); err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("querying task: %w", err)
	}

	return &t, nil
}

// ListForUser returns the visibility union for a user, newest first. The
// three branches match the access rules: own personal tasks, assigned
// tasks, and all tasks of teams the user is a member of. The single query
// deduplicates rows that satisfy more than one branch.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Task, error) {
	query := `SELECT` + taskColumns + taskJoins + `
		WHERE (t.created_by = $1 AND t.team_id IS NULL)
		   OR t.assigned_to = $1
		   OR t.team_id IN (SELECT team_id FROM team_members WHERE user_id = $1)
		ORDER BY t.created_at DESC`

	return r.queryTasks(ctx, query, userID)
}

// ListByTeam returns all tasks belonging to a team, newest first.
func (r *PostgresRepository) ListByTeam(ctx context.Context, teamID uuid.UUID) ([]Task, error) {
	query := `SELECT` + taskColumns + taskJoins + `
		WHERE t.team_id = $1
		ORDER BY t.created_at DESC`

	return r.queryTasks(ctx, query, teamID)
}

func (r *PostgresRepository) queryTasks(ctx context.Context, query string, arg any) ([]Task, error) {
	rows, err := r.pool.Query(ctx, query, arg)
	if err != nil {
		return nil, fmt.Errorf("listing tasks: %w", err)
	}
	defer rows.Close()

	var tasks []Task
	for rows.Next() {
		var t Task
		if err := scanTask(rows, &t); err != nil {
			return nil, fmt.Errorf("scanning task row: %w", err)
		}
		tasks = append(tasks, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating task rows: %w", err)
	}

	if tasks == nil {
		tasks = []Task{}
	}

	return tasks, nil
}

// Update replaces all user-settable fields of a task in a single statement
// and returns the updated row with creator and assignee resolved.
func (r *PostgresRepository) Update(ctx context.Context, id uuid.UUID, fields Fields) (*Task, error) {
	query := `
		UPDATE tasks
		SET title = $2, description = $3, status = $4, priority = $5,
		    due_date = $6, assigned_to = $7, team_id = $8
		WHERE id = $1
		RETURNING id`

	var updatedID uuid.UUID
	err := r.pool.QueryRow(ctx, query,
		id,
		fields.Title,
		fields.Description,
		fields.Status,
		fields.Priority,
		fields.DueDate,
		fields.AssignedTo,
		fields.TeamID,
	).Scan(&updatedID)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTaskNotFound
		}
		return nil, fmt.Errorf("updating task: %w", err)
	}

	return r.GetByID(ctx, updatedID)
}

// Delete removes a task by its UUID. Deletion is permanent.
func (r *PostgresRepository) Delete(ctx context.Context, id uuid.UUID) error {
	result, err := r.pool.Exec(ctx, `DELETE FROM tasks WHERE id = $1`, id)
	if err != nil {
		return fmt.Errorf("deleting task: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrTaskNotFound
	}

	return nil
}
