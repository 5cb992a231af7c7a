package repo

import (
	"context"
	"database/sql"
)

// Notification representa uma notificação de liquidação para o usuário
type Notification struct {
	BetID       string
	UserID      string
	Status      string // won | lost
	PayoutCents int64
	Message     string
}

type Postgres struct {
	DB *sql.DB
}

func NewPostgres(db *sql.DB) *Postgres { return &Postgres{DB: db} }

// Insert grava a notificação; ON CONFLICT garante no máximo uma notificação por aposta
func (p *Postgres) Insert(ctx context.Context, n Notification) error {
	_, err := p.DB.ExecContext(ctx, `
		INSERT INTO notifications (bet_id, user_id, status, payout_cents, message, created_at)
		VALUES ($1,$2,$3,$4,$5,NOW())
		ON CONFLICT (bet_id) DO NOTHING`,
		n.BetID, n.UserID, n.Status, n.PayoutCents, n.Message)
	return err
}
