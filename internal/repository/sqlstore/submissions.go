package sqlstore

import (
	"context"
	"fmt"

	"github.com/ghiffarsabda/kormimvp/internal/model"
	"github.com/ghiffarsabda/kormimvp/internal/repository"
)

var (
	_ repository.MessageRepository     = (*MessageDB)(nil)
	_ repository.JoinRequestRepository = (*JoinRequestDB)(nil)
)

// ---------------------------------------------------------------------------
// Contact messages

type MessageDB struct {
	db *DB
}

const messageColumns = `id, name, email, subject, message, created_at`

func scanMessage(s scanner, m *model.Message) error {
	return s.Scan(&m.ID, &m.Name, &m.Email, &m.Subject, &m.Message, &m.CreatedAt)
}

func (r *MessageDB) Create(ctx context.Context, msg *model.Message) error {
	msg.CreatedAt = r.db.clock()

	id, err := r.db.insert(ctx,
		`INSERT INTO messages (name, email, subject, message, created_at) VALUES (?, ?, ?, ?, ?)`,
		msg.Name, msg.Email, msg.Subject, msg.Message, msg.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: inserting message from %q: %w", msg.Email, err)
	}
	msg.ID = id
	return nil
}

func (r *MessageDB) GetByID(ctx context.Context, id int) (*model.Message, error) {
	return getOne(ctx, r.db, "message", id,
		`SELECT `+messageColumns+` FROM messages WHERE id = ?`, scanMessage)
}

func (r *MessageDB) List(ctx context.Context) ([]model.Message, error) {
	rows, err := r.db.query(ctx, `SELECT `+messageColumns+` FROM messages ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing messages: %w", err)
	}
	return collect(rows, scanMessage)
}

// Update never touches created_at; the stored value is copied back into msg.
func (r *MessageDB) Update(ctx context.Context, msg *model.Message) error {
	err := update(ctx, r.db, "message", msg.ID,
		`UPDATE messages SET name = ?, email = ?, subject = ?, message = ? WHERE id = ?`,
		msg.Name, msg.Email, msg.Subject, msg.Message,
	)
	if err != nil {
		return err
	}
	return r.db.createdAt(ctx, "messages", msg.ID, &msg.CreatedAt)
}

func (r *MessageDB) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.db, "message", "messages", id)
}

// ---------------------------------------------------------------------------
// Join requests

type JoinRequestDB struct {
	db *DB
}

const joinRequestColumns = `id, name, email, phone, sport_category_id, message, created_at`

// Message is nullable; database/sql allocates the *string only for non-NULL
// values.
func scanJoinRequest(s scanner, j *model.JoinRequest) error {
	return s.Scan(&j.ID, &j.Name, &j.Email, &j.Phone, &j.SportCategoryID, &j.Message, &j.CreatedAt)
}

func (r *JoinRequestDB) Create(ctx context.Context, req *model.JoinRequest) error {
	req.CreatedAt = r.db.clock()

	id, err := r.db.insert(ctx,
		`INSERT INTO join_requests (name, email, phone, sport_category_id, message, created_at)
		 VALUES (?, ?, ?, ?, ?, ?)`,
		req.Name, req.Email, req.Phone, req.SportCategoryID, req.Message, req.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("sqlstore: inserting join request from %q: %w", req.Email, err)
	}
	req.ID = id
	return nil
}

func (r *JoinRequestDB) GetByID(ctx context.Context, id int) (*model.JoinRequest, error) {
	return getOne(ctx, r.db, "join request", id,
		`SELECT `+joinRequestColumns+` FROM join_requests WHERE id = ?`, scanJoinRequest)
}

func (r *JoinRequestDB) List(ctx context.Context) ([]model.JoinRequest, error) {
	rows, err := r.db.query(ctx, `SELECT `+joinRequestColumns+` FROM join_requests ORDER BY id`)
	if err != nil {
		return nil, fmt.Errorf("sqlstore: listing join requests: %w", err)
	}
	return collect(rows, scanJoinRequest)
}

func (r *JoinRequestDB) Update(ctx context.Context, req *model.JoinRequest) error {
	err := update(ctx, r.db, "join request", req.ID,
		`UPDATE join_requests SET name = ?, email = ?, phone = ?, sport_category_id = ?, message = ? WHERE id = ?`,
		req.Name, req.Email, req.Phone, req.SportCategoryID, req.Message,
	)
	if err != nil {
		return err
	}
	return r.db.createdAt(ctx, "join_requests", req.ID, &req.CreatedAt)
}

func (r *JoinRequestDB) Delete(ctx context.Context, id int) error {
	return remove(ctx, r.db, "join request", "join_requests", id)
}
