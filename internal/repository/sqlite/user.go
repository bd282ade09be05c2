package sqlite

import (
	"context"
	"database/sql"
	"fmt"

	"github.com/clevelhire/platform/internal/models"
)

func (r *SQLiteRepo) CreateUser(ctx context.Context, u *models.User) error {
	if u == nil {
		return fmt.Errorf("user is nil")
	}

	ts := now()
	_, err := r.conn.Exec(ctx,
		`INSERT INTO users (id, email, password_hash, first_name, last_name, target_salary, created, updated) VALUES (?, ?, ?, ?, ?, ?, ?, ?)`,
		u.ID, u.Email, u.PasswordHash, u.FirstName, u.LastName, u.TargetSalary, ts, ts)
	if err != nil {
		return err
	}

	u.Created = ts
	u.Updated = ts
	return nil
}

func (r *SQLiteRepo) GetUserByID(ctx context.Context, id string) (*models.User, error) {
	return r.scanUser(r.conn.QueryRow(ctx,
		`SELECT id, email, password_hash, first_name, last_name, target_salary, created, updated FROM users WHERE id = ?`, id))
}

func (r *SQLiteRepo) GetUserByEmail(ctx context.Context, email string) (*models.User, error) {
	return r.scanUser(r.conn.QueryRow(ctx,
		`SELECT id, email, password_hash, first_name, last_name, target_salary, created, updated FROM users WHERE email = ?`, email))
}

func (r *SQLiteRepo) scanUser(row *sql.Row) (*models.User, error) {
	var u models.User
	var pw sql.NullString
	if err := row.Scan(&u.ID, &u.Email, &pw, &u.FirstName, &u.LastName, &u.TargetSalary, &u.Created, &u.Updated); err != nil {
		if err == sql.ErrNoRows {
			return nil, nil
		}

		return nil, err
	}

	if pw.Valid {
		u.PasswordHash = pw.String
	}

	return &u, nil
}

// ListActiveUsers returns every registered user. There is deliberately no
// subscription or enablement filter here: each account gets an agent.
func (r *SQLiteRepo) ListActiveUsers(ctx context.Context) ([]models.AgentUser, error) {
	rows, err := r.conn.Query(ctx, `SELECT id, target_salary FROM users ORDER BY created ASC`)
	if err != nil {
		return nil, fmt.Errorf("list active users: %w", err)
	}
	defer rows.Close()

	var out []models.AgentUser
	for rows.Next() {
		var u models.AgentUser
		if err := rows.Scan(&u.ID, &u.TargetSalary); err != nil {
			return nil, fmt.Errorf("scan active user: %w", err)
		}
		out = append(out, u)
	}

	return out, rows.Err()
}
