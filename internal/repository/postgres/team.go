package postgres

import (
	"context"
	"database/sql"
	"time"

	"github.com/google/uuid"

	"github.com/pratik-mahalle/hireloop/internal/domain/team"
	"github.com/pratik-mahalle/hireloop/internal/pkg/errors"
)

// TeamRepository implements team.Repository
type TeamRepository struct {
	db *sql.DB
}

// NewTeamRepository creates a new team repository
func NewTeamRepository(db *sql.DB) team.Repository {
	return &TeamRepository{db: db}
}

const teamColumns = `id, user_id, email, role, status, invited_by, invited_at, joined_at, member_user_id`

// Create inserts a pending invitation
func (r *TeamRepository) Create(ctx context.Context, m *team.Member) error {
	if m.ID == "" {
		m.ID = uuid.New().String()
	}
	if m.InvitedAt.IsZero() {
		m.InvitedAt = time.Now().UTC()
	}
	if m.Status == "" {
		m.Status = team.StatusPending
	}

	query := `
		INSERT INTO team_members (id, user_id, email, role, status, invited_by, invited_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7)
	`

	_, err := r.db.ExecContext(ctx, query,
		m.ID, m.UserID, m.Email, string(m.Role), string(m.Status), m.InvitedBy, m.InvitedAt.Unix(),
	)
	if err != nil {
		return errors.DatabaseError("Failed to create invitation", err)
	}
	return nil
}

// GetByID retrieves an invitation
func (r *TeamRepository) GetByID(ctx context.Context, id string) (*team.Member, error) {
	m, err := scanMember(r.db.QueryRowContext(ctx, `SELECT `+teamColumns+` FROM team_members WHERE id = $1`, id))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Invitation")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to get invitation", err)
	}
	return m, nil
}

// FindOpenByEmail returns a pending or active member with the email
func (r *TeamRepository) FindOpenByEmail(ctx context.Context, tenantID int64, email string) (*team.Member, error) {
	query := `SELECT ` + teamColumns + ` FROM team_members
		WHERE user_id = $1 AND LOWER(email) = LOWER($2) AND status IN ($3, $4)
		LIMIT 1`

	m, err := scanMember(r.db.QueryRowContext(ctx, query,
		tenantID, email, string(team.StatusPending), string(team.StatusActive)))
	if err == sql.ErrNoRows {
		return nil, errors.NotFound("Team member")
	}
	if err != nil {
		return nil, errors.DatabaseError("Failed to look up team member", err)
	}
	return m, nil
}

// ListByTenant lists the tenant's members, newest invitation first
func (r *TeamRepository) ListByTenant(ctx context.Context, tenantID int64) ([]*team.Member, error) {
	rows, err := r.db.QueryContext(ctx,
		`SELECT `+teamColumns+` FROM team_members WHERE user_id = $1 ORDER BY invited_at DESC`, tenantID)
	if err != nil {
		return nil, errors.DatabaseError("Failed to list team members", err)
	}
	defer rows.Close()

	var members []*team.Member
	for rows.Next() {
		m, err := scanMember(rows)
		if err != nil {
			return nil, errors.DatabaseError("Failed to scan team member", err)
		}
		members = append(members, m)
	}
	if err := rows.Err(); err != nil {
		return nil, errors.DatabaseError("Failed to iterate team members", err)
	}
	return members, nil
}

// Activate moves a pending invitation to active. The status guard in the
// WHERE clause makes concurrent accepts race-free.
func (r *TeamRepository) Activate(ctx context.Context, id string, memberUserID int64, joinedAt time.Time) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE team_members SET status = $1, joined_at = $2, member_user_id = $3 WHERE id = $4 AND status = $5`,
		string(team.StatusActive), joinedAt.UTC().Unix(), memberUserID, id, string(team.StatusPending),
	)
	if err != nil {
		return false, errors.DatabaseError("Failed to activate invitation", err)
	}
	return affectedOne(result)
}

// Expire moves a pending invitation to expired
func (r *TeamRepository) Expire(ctx context.Context, id string) (bool, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE team_members SET status = $1 WHERE id = $2 AND status = $3`,
		string(team.StatusExpired), id, string(team.StatusPending),
	)
	if err != nil {
		return false, errors.DatabaseError("Failed to expire invitation", err)
	}
	return affectedOne(result)
}

// ExpirePendingBefore expires stale pending invitations in one statement
func (r *TeamRepository) ExpirePendingBefore(ctx context.Context, cutoff time.Time) (int64, error) {
	result, err := r.db.ExecContext(ctx,
		`UPDATE team_members SET status = $1 WHERE status = $2 AND invited_at < $3`,
		string(team.StatusExpired), string(team.StatusPending), cutoff.UTC().Unix(),
	)
	if err != nil {
		return 0, errors.DatabaseError("Failed to expire invitations", err)
	}
	rows, err := result.RowsAffected()
	if err != nil {
		return 0, errors.DatabaseError("Failed to get affected rows", err)
	}
	return rows, nil
}

func affectedOne(result sql.Result) (bool, error) {
	rows, err := result.RowsAffected()
	if err != nil {
		return false, errors.DatabaseError("Failed to get affected rows", err)
	}
	return rows > 0, nil
}

func scanMember(s rowScanner) (*team.Member, error) {
	var m team.Member
	var role, status string
	var invitedAt int64
	var joinedAt, memberUserID sql.NullInt64

	err := s.Scan(&m.ID, &m.UserID, &m.Email, &role, &status, &m.InvitedBy, &invitedAt, &joinedAt, &memberUserID)
	if err != nil {
		return nil, err
	}

	m.Role = team.Role(role)
	m.Status = team.Status(status)
	m.InvitedAt = time.Unix(invitedAt, 0).UTC()
	m.JoinedAt = timePtr(joinedAt)
	m.MemberUserID = int64Ptr(memberUserID)
	return &m, nil
}
