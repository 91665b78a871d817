package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

const insertCall = `
INSERT INTO calls (id, caller, receiver, kind, status)
VALUES ($1, $2, $3, $4, 'pending')
RETURNING id, caller, receiver, kind, status, started_at, ended_at
`

func (q *Queries) NewCall(ctx context.Context, caller, receiver pgtype.UUID, kind CallKind) (*Call, error) {
	var c Call
	row := q.db.QueryRow(ctx, insertCall, PgUUID(uuid.New()), caller, receiver, kind)
	if err := row.Scan(&c.ID, &c.Caller, &c.Receiver, &c.Kind, &c.Status, &c.StartedAt, &c.EndedAt); err != nil {
		return nil, err
	}
	return &c, nil
}
