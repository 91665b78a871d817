package db

import (
	"context"

	"github.com/google/uuid"
)

const insertMeeting = `
INSERT INTO meetings (id, meeting_code, host_email)
VALUES ($1, $2, $3)
RETURNING id, meeting_code, host_email, active, created_at
`

// NewMeeting creates an active meeting with a fresh random code.
func (q *Queries) NewMeeting(ctx context.Context, hostEmail string) (*Meeting, error) {
	var m Meeting
	row := q.db.QueryRow(ctx, insertMeeting, PgUUID(uuid.New()), uuid.NewString(), hostEmail)
	if err := row.Scan(&m.ID, &m.MeetingCode, &m.HostEmail, &m.Active, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}

const getActiveMeetingByCode = `
SELECT id, meeting_code, host_email, active, created_at
FROM meetings WHERE meeting_code = $1 AND active
`

// GetActiveMeetingByCode validates a join code. Inactive meetings scan as
// pgx.ErrNoRows, same as unknown codes.
func (q *Queries) GetActiveMeetingByCode(ctx context.Context, code string) (*Meeting, error) {
	var m Meeting
	row := q.db.QueryRow(ctx, getActiveMeetingByCode, code)
	if err := row.Scan(&m.ID, &m.MeetingCode, &m.HostEmail, &m.Active, &m.CreatedAt); err != nil {
		return nil, err
	}
	return &m, nil
}
