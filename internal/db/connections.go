package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ConnectionWithPeer joins the counterparty's display fields for listings.
type ConnectionWithPeer struct {
	Connection
	PeerName  string
	PeerEmail string
	PeerPhoto pgtype.UUID
}

const connectionColumns = `id, requester, target, status, created_at, updated_at`

const insertConnection = `
INSERT INTO connections (id, requester, target, status)
VALUES ($1, $2, $3, 'pending')
RETURNING ` + connectionColumns

// NewConnection records a pending request. A duplicate pending request for
// the same pair trips the partial unique index; callers detect that with
// IsUniqueViolation.
func (q *Queries) NewConnection(ctx context.Context, requester, target pgtype.UUID) (*Connection, error) {
	var c Connection
	row := q.db.QueryRow(ctx, insertConnection, PgUUID(uuid.New()), requester, target)
	if err := scanConnection(row, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

const resolveConnection = `
UPDATE connections
SET status = $3, updated_at = now()
WHERE id = $1 AND target = $2 AND status = 'pending'
RETURNING ` + connectionColumns

// ResolveConnection accepts or declines a pending request. Only the target
// may resolve it, and only while it is still pending; anything else scans
// as pgx.ErrNoRows.
func (q *Queries) ResolveConnection(ctx context.Context, id, target pgtype.UUID, status ConnectionStatus) (*Connection, error) {
	var c Connection
	row := q.db.QueryRow(ctx, resolveConnection, id, target, status)
	if err := scanConnection(row, &c); err != nil {
		return nil, err
	}
	return &c, nil
}

const listPendingForUser = `
SELECT c.id, c.requester, c.target, c.status, c.created_at, c.updated_at,
       u.name, u.email, u.photo_blob
FROM connections c
JOIN users u ON u.id = c.requester
WHERE c.target = $1 AND c.status = 'pending'
ORDER BY c.created_at DESC
`

func (q *Queries) ListPendingForUser(ctx context.Context, target pgtype.UUID) ([]*ConnectionWithPeer, error) {
	return q.listConnectionPeers(ctx, listPendingForUser, target)
}

const listAcceptedForUser = `
SELECT c.id, c.requester, c.target, c.status, c.created_at, c.updated_at,
       u.name, u.email, u.photo_blob
FROM connections c
JOIN users u ON u.id = CASE WHEN c.requester = $1 THEN c.target ELSE c.requester END
WHERE (c.requester = $1 OR c.target = $1) AND c.status = 'accepted'
ORDER BY c.updated_at DESC
`

func (q *Queries) ListAcceptedForUser(ctx context.Context, user pgtype.UUID) ([]*ConnectionWithPeer, error) {
	return q.listConnectionPeers(ctx, listAcceptedForUser, user)
}

const getConnectionStatus = `
SELECT ` + connectionColumns + `
FROM connections
WHERE ((requester = $1 AND target = $2) OR (requester = $2 AND target = $1))
ORDER BY created_at DESC
LIMIT 1
`

// GetConnectionStatus returns the most recent connection between the pair,
// in either direction.
func (q *Queries) GetConnectionStatus(ctx context.Context, a, b pgtype.UUID) (*Connection, error) {
	var c Connection
	if err := scanConnection(q.db.QueryRow(ctx, getConnectionStatus, a, b), &c); err != nil {
		return nil, err
	}
	return &c, nil
}

func (q *Queries) listConnectionPeers(ctx context.Context, query string, user pgtype.UUID) ([]*ConnectionWithPeer, error) {
	rows, err := q.db.Query(ctx, query, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var conns []*ConnectionWithPeer
	for rows.Next() {
		var c ConnectionWithPeer
		err := rows.Scan(&c.ID, &c.Requester, &c.Target, &c.Status, &c.CreatedAt, &c.UpdatedAt,
			&c.PeerName, &c.PeerEmail, &c.PeerPhoto)
		if err != nil {
			return nil, err
		}
		conns = append(conns, &c)
	}
	return conns, rows.Err()
}

func scanConnection(row rowScanner, c *Connection) error {
	return row.Scan(&c.ID, &c.Requester, &c.Target, &c.Status, &c.CreatedAt, &c.UpdatedAt)
}
