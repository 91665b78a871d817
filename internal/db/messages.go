package db

import (
	"context"
	"sort"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
)

// ChatPartner is one entry in a user's conversation list.
type ChatPartner struct {
	PartnerID    pgtype.UUID
	PartnerName  string
	PartnerPhoto pgtype.UUID
	LastBody     string
	LastAt       pgtype.Timestamptz
}

const insertMessage = `
INSERT INTO messages (id, sender, recipient, body)
VALUES ($1, $2, $3, $4)
RETURNING id, sender, recipient, body, created_at
`

func (q *Queries) NewMessage(ctx context.Context, sender, recipient pgtype.UUID, body string) (*Message, error) {
	var m Message
	row := q.db.QueryRow(ctx, insertMessage, PgUUID(uuid.New()), sender, recipient, body)
	if err := row.Scan(&m.ID, &m.Sender, &m.Recipient, &m.Body, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

const listConversation = `
SELECT id, sender, recipient, body, created_at
FROM messages
WHERE (sender = $1 AND recipient = $2) OR (sender = $2 AND recipient = $1)
ORDER BY created_at ASC
`

// ListConversation returns the full exchange between two users, oldest first.
func (q *Queries) ListConversation(ctx context.Context, a, b pgtype.UUID) ([]*Message, error) {
	rows, err := q.db.Query(ctx, listConversation, a, b)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var msgs []*Message
	for rows.Next() {
		var m Message
		if err := rows.Scan(&m.ID, &m.Sender, &m.Recipient, &m.Body, &m.CreatedAt); err != nil {
			return nil, err
		}
		msgs = append(msgs, &m)
	}
	return msgs, rows.Err()
}

const listChatPartners = `
SELECT DISTINCT ON (partner) partner, u.name, u.photo_blob, m.body, m.created_at
FROM (
	SELECT CASE WHEN sender = $1 THEN recipient ELSE sender END AS partner, body, created_at
	FROM messages
	WHERE sender = $1 OR recipient = $1
) m
JOIN users u ON u.id = m.partner
ORDER BY partner, m.created_at DESC
`

// ListChatPartners returns one row per conversation partner carrying the
// latest message, newest conversations first.
func (q *Queries) ListChatPartners(ctx context.Context, user pgtype.UUID) ([]*ChatPartner, error) {
	rows, err := q.db.Query(ctx, listChatPartners, user)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var partners []*ChatPartner
	for rows.Next() {
		var p ChatPartner
		if err := rows.Scan(&p.PartnerID, &p.PartnerName, &p.PartnerPhoto, &p.LastBody, &p.LastAt); err != nil {
			return nil, err
		}
		partners = append(partners, &p)
	}
	if err := rows.Err(); err != nil {
		return nil, err
	}

	// DISTINCT ON forces partner ordering; re-sort by recency here.
	sort.SliceStable(partners, func(i, j int) bool {
		return partners[i].LastAt.Time.After(partners[j].LastAt.Time)
	})
	return partners, nil
}
