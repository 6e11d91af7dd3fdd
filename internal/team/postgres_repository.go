package team

import (
	"context"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
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

// Create inserts a new team and its owner's membership in one transaction,
// so a team is never observable without its owner in the member set.
func (r *PostgresRepository) Create(ctx context.Context, t *Team) error {
	tx, err := r.pool.Begin(ctx)
	if err != nil {
		return fmt.Errorf("beginning transaction: %w", err)
	}
	defer tx.Rollback(ctx)

	query := `
		INSERT INTO teams (name, description, owner_id, invite_code)
		VALUES ($1, $2, $3, $4)
		RETURNING id, created_at`

	err = tx.QueryRow(ctx, query, t.Name, t.Description, t.OwnerID, t.InviteCode).
		Scan(&t.ID, &t.CreatedAt)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrInviteCodeTaken
		}
		return fmt.Errorf("inserting team: %w", err)
	}

	_, err = tx.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`,
		t.ID, t.OwnerID)
	if err != nil {
		return fmt.Errorf("inserting owner membership: %w", err)
	}

	if err := tx.Commit(ctx); err != nil {
		return fmt.Errorf("committing team creation: %w", err)
	}

	return nil
}

// GetByID retrieves a single team by its UUID.
func (r *PostgresRepository) GetByID(ctx context.Context, id uuid.UUID) (*Team, error) {
	query := `
		SELECT id, name, description, owner_id, invite_code, created_at
		FROM teams
		WHERE id = $1`

	return r.queryTeam(ctx, query, id)
}

// GetByInviteCode retrieves a single team by its invite code. The caller
// normalizes case before lookup.
func (r *PostgresRepository) GetByInviteCode(ctx context.Context, code string) (*Team, error) {
	query := `
		SELECT id, name, description, owner_id, invite_code, created_at
		FROM teams
		WHERE invite_code = $1`

	return r.queryTeam(ctx, query, code)
}

func (r *PostgresRepository) queryTeam(ctx context.Context, query string, arg any) (*Team, error) {
	var t Team
	err := r.pool.QueryRow(ctx, query, arg).
		Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.InviteCode, &t.CreatedAt)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, ErrTeamNotFound
		}
		return nil, fmt.Errorf("querying team: %w", err)
	}

	return &t, nil
}

// ListForUser returns every team the user owns or is a member of, oldest first.
func (r *PostgresRepository) ListForUser(ctx context.Context, userID uuid.UUID) ([]Team, error) {
	query := `
		SELECT DISTINCT t.id, t.name, t.description, t.owner_id, t.invite_code, t.created_at
		FROM teams t
		LEFT JOIN team_members m ON m.team_id = t.id
		WHERE t.owner_id = $1 OR m.user_id = $1
		ORDER BY t.created_at ASC`

	rows, err := r.pool.Query(ctx, query, userID)
	if err != nil {
		return nil, fmt.Errorf("listing teams: %w", err)
	}
	defer rows.Close()

	var teams []Team
	for rows.Next() {
		var t Team
		err := rows.Scan(&t.ID, &t.Name, &t.Description, &t.OwnerID, &t.InviteCode, &t.CreatedAt)
		if err != nil {
			return nil, fmt.Errorf("scanning team row: %w", err)
		}
		teams = append(teams, t)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating team rows: %w", err)
	}

	if teams == nil {
		teams = []Team{}
	}

	return teams, nil
}

// ListMembers returns the members of a team with profiles resolved, in
// join order.
func (r *PostgresRepository) ListMembers(ctx context.Context, teamID uuid.UUID) ([]Member, error) {
	query := `
		SELECT u.id, u.name, u.email, m.joined_at
		FROM team_members m
		JOIN users u ON u.id = m.user_id
		WHERE m.team_id = $1
		ORDER BY m.joined_at ASC`

	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing team members: %w", err)
	}
	defer rows.Close()

	var members []Member
	for rows.Next() {
		var m Member
		if err := rows.Scan(&m.ID, &m.Name, &m.Email, &m.JoinedAt); err != nil {
			return nil, fmt.Errorf("scanning member row: %w", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member rows: %w", err)
	}

	if members == nil {
		members = []Member{}
	}

	return members, nil
}

// MemberIDs returns the member ids of a team, in join order.
func (r *PostgresRepository) MemberIDs(ctx context.Context, teamID uuid.UUID) ([]uuid.UUID, error) {
	query := `
		SELECT user_id
		FROM team_members
		WHERE team_id = $1
		ORDER BY joined_at ASC`

	rows, err := r.pool.Query(ctx, query, teamID)
	if err != nil {
		return nil, fmt.Errorf("listing member ids: %w", err)
	}
	defer rows.Close()

	var ids []uuid.UUID
	for rows.Next() {
		var id uuid.UUID
		if err := rows.Scan(&id); err != nil {
			return nil, fmt.Errorf("scanning member id: %w", err)
		}
		ids = append(ids, id)
	}
	if err := rows.Err(); err != nil {
		return nil, fmt.Errorf("iterating member ids: %w", err)
	}

	return ids, nil
}

// IsMember reports whether the user is currently a member of the team.
func (r *PostgresRepository) IsMember(ctx context.Context, teamID, userID uuid.UUID) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM team_members WHERE team_id = $1 AND user_id = $2
		)`

	var exists bool
	if err := r.pool.QueryRow(ctx, query, teamID, userID).Scan(&exists); err != nil {
		return false, fmt.Errorf("checking membership: %w", err)
	}

	return exists, nil
}

// AddMember appends a user to a team's member set.
func (r *PostgresRepository) AddMember(ctx context.Context, teamID, userID uuid.UUID) error {
	_, err := r.pool.Exec(ctx,
		`INSERT INTO team_members (team_id, user_id) VALUES ($1, $2)`,
		teamID, userID)
	if err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" {
			return ErrAlreadyMember
		}
		return fmt.Errorf("inserting membership: %w", err)
	}

	return nil
}

// RemoveMember removes a user from a team's member set.
func (r *PostgresRepository) RemoveMember(ctx context.Context, teamID, userID uuid.UUID) error {
	result, err := r.pool.Exec(ctx,
		`DELETE FROM team_members WHERE team_id = $1 AND user_id = $2`,
		teamID, userID)
	if err != nil {
		return fmt.Errorf("deleting membership: %w", err)
	}

	if result.RowsAffected() == 0 {
		return ErrNotMember
	}

	return nil
}
