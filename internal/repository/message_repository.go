package repository

import (
	"context"
	"database/sql"
	"errors"

	"github.com/estudiocobogo/catalogo-api/internal/model"
)

// MessageRepo persists contact-form messages.  Rows are insert-only
// apart from the read flag toggled from the admin inbox.
type MessageRepo struct {
	db *sql.DB
}

// NewMessageRepo constructs a MessageRepo with the provided DB handle.
func NewMessageRepo(db *sql.DB) *MessageRepo {
	return &MessageRepo{db: db}
}

// Create stores a submitted contact message and populates ID/CreatedAt.
func (r *MessageRepo) Create(ctx context.Context, m *model.ContactMessage) error {
	res, err := r.db.ExecContext(ctx,
		"INSERT INTO contact_messages (sender_name, sender_email, body) VALUES (?,?,?)",
		m.SenderName, m.SenderEmail, m.Body)
	if err != nil {
		return err
	}
	id, err := res.LastInsertId()
	if err != nil {
		return err
	}
	m.ID = uint64(id)
	return r.db.QueryRowContext(ctx,
		"SELECT created_at FROM contact_messages WHERE id = ?", m.ID).Scan(&m.CreatedAt)
}

// List returns all messages, newest first.
func (r *MessageRepo) List(ctx context.Context) ([]*model.ContactMessage, error) {
	rows, err := r.db.QueryContext(ctx,
		"SELECT id, sender_name, sender_email, body, read_flag, created_at FROM contact_messages ORDER BY created_at DESC, id DESC")
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []*model.ContactMessage
	for rows.Next() {
		m := new(model.ContactMessage)
		if err := rows.Scan(&m.ID, &m.SenderName, &m.SenderEmail, &m.Body, &m.Read, &m.CreatedAt); err != nil {
			return nil, err
		}
		out = append(out, m)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}
	return out, nil
}

// SetRead toggles the read flag of a message.
func (r *MessageRepo) SetRead(ctx context.Context, id uint64, read bool) error {
	res, err := r.db.ExecContext(ctx,
		"UPDATE contact_messages SET read_flag = ? WHERE id = ?", read, id)
	if err != nil {
		return err
	}
	if n, _ := res.RowsAffected(); n == 0 {
		var one int
		if err := r.db.QueryRowContext(ctx, "SELECT 1 FROM contact_messages WHERE id=?", id).Scan(&one); err != nil {
			if errors.Is(err, sql.ErrNoRows) {
				return ErrMessageNotFound
			}
			return err
		}
	}
	return nil
}
