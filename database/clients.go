package database

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"

	"github.com/biosecret/go-taskmanager/models"
)

const clientColumns = `id, user_id, name, contact_email, created_at`

// ClientStore reads and writes the clients table. Every query is scoped by user_id.
type ClientStore struct {
	db *sqlx.DB
}

func NewClientStore(db *sqlx.DB) *ClientStore {
	return &ClientStore{db: db}
}

func (s *ClientStore) Create(ctx context.Context, userID int64, name string, contactEmail *string) (*models.Client, error) {
	var client models.Client
	err := s.db.GetContext(ctx, &client,
		`INSERT INTO clients (user_id, name, contact_email) VALUES ($1, $2, $3) RETURNING `+clientColumns,
		userID, name, contactEmail,
	)
	if err != nil {
		return nil, fmt.Errorf("insert client: %w", err)
	}
	return &client, nil
}

// List returns the user's clients, newest first.
func (s *ClientStore) List(ctx context.Context, userID int64) ([]models.Client, error) {
	clients := []models.Client{}
	err := s.db.SelectContext(ctx, &clients,
		`SELECT `+clientColumns+` FROM clients WHERE user_id = $1 ORDER BY created_at DESC, id DESC`,
		userID,
	)
	if err != nil {
		return nil, fmt.Errorf("select clients: %w", err)
	}
	return clients, nil
}

// Owns reports whether clientID exists and belongs to userID.
func (s *ClientStore) Owns(ctx context.Context, userID, clientID int64) (bool, error) {
	var exists bool
	err := s.db.GetContext(ctx, &exists,
		`SELECT EXISTS(SELECT 1 FROM clients WHERE id = $1 AND user_id = $2)`,
		clientID, userID,
	)
	if err != nil {
		return false, fmt.Errorf("check client owner: %w", err)
	}
	return exists, nil
}

// Update merges the supplied fields in a single conditional statement.
// A missing or foreign client returns ErrNotFound.
func (s *ClientStore) Update(ctx context.Context, userID, clientID int64, in models.ClientUpdate) (*models.Client, error) {
	var client models.Client
	err := s.db.GetContext(ctx, &client,
		`UPDATE clients
		 SET name = COALESCE($1, name),
		     contact_email = COALESCE($2, contact_email)
		 WHERE id = $3 AND user_id = $4
		 RETURNING `+clientColumns,
		in.Name, in.ContactEmailValue(), clientID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrNotFound
	}
	if err != nil {
		return nil, fmt.Errorf("update client: %w", err)
	}
	return &client, nil
}

// Delete removes the client and its tasks in one transaction and returns
// how many tasks went with it. A missing or foreign client returns ErrNotFound.
func (s *ClientStore) Delete(ctx context.Context, userID, clientID int64) (int64, error) {
	tx, err := s.db.BeginTxx(ctx, nil)
	if err != nil {
		return 0, fmt.Errorf("begin transaction: %w", err)
	}
	defer tx.Rollback()

	var lockedID int64
	err = tx.GetContext(ctx, &lockedID,
		`SELECT id FROM clients WHERE id = $1 AND user_id = $2 FOR UPDATE`,
		clientID, userID,
	)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrNotFound
	}
	if err != nil {
		return 0, fmt.Errorf("lock client: %w", err)
	}

	result, err := tx.ExecContext(ctx, `DELETE FROM tasks WHERE client_id = $1`, clientID)
	if err != nil {
		return 0, fmt.Errorf("delete client tasks: %w", err)
	}
	deletedTasks, err := result.RowsAffected()
	if err != nil {
		return 0, fmt.Errorf("count deleted tasks: %w", err)
	}

	if _, err := tx.ExecContext(ctx, `DELETE FROM clients WHERE id = $1 AND user_id = $2`, clientID, userID); err != nil {
		return 0, fmt.Errorf("delete client: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return 0, fmt.Errorf("commit client delete: %w", err)
	}
	return deletedTasks, nil
}
