package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tutorhub/tutorhub/pkg/utils/passwords"
)

// NewTutorParams contains the parameters for registering a tutor
type NewTutorParams struct {
	Name           string
	Email          string
	Password       string // plaintext password
	Phone          string
	Institution    string
	Course         string
	Qualifications string
	PhotoBlob      pgtype.UUID
}

const insertTutor = `
INSERT INTO tutors (id, name, email, phone, institution, course, qualifications, photo_blob, password)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9)
RETURNING id, name, email, phone, institution, course, qualifications, photo_blob, password, created_at
`

// NewTutor registers a tutor with a hashed password
func (q *Queries) NewTutor(ctx context.Context, params NewTutorParams) (*Tutor, error) {
	hashedPassword, err := passwords.NewPassword(passwords.PasswordInput{
		Password: params.Password,
	})
	if err != nil {
		return nil, err
	}

	row := q.db.QueryRow(ctx, insertTutor,
		PgUUID(uuid.New()),
		params.Name,
		params.Email,
		PgText(params.Phone),
		PgText(params.Institution),
		PgText(params.Course),
		PgText(params.Qualifications),
		params.PhotoBlob,
		hashedPassword,
	)

	var t Tutor
	if err := scanTutor(row, &t); err != nil {
		return nil, err
	}
	return &t, nil
}

const listTutors = `
SELECT id, name, email, phone, institution, course, qualifications, photo_blob, password, created_at
FROM tutors ORDER BY created_at DESC
`

func (q *Queries) ListTutors(ctx context.Context) ([]*Tutor, error) {
	rows, err := q.db.Query(ctx, listTutors)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var tutors []*Tutor
	for rows.Next() {
		var t Tutor
		if err := scanTutor(rows, &t); err != nil {
			return nil, err
		}
		tutors = append(tutors, &t)
	}
	return tutors, rows.Err()
}

func scanTutor(row rowScanner, t *Tutor) error {
	return row.Scan(
		&t.ID,
		&t.Name,
		&t.Email,
		&t.Phone,
		&t.Institution,
		&t.Course,
		&t.Qualifications,
		&t.PhotoBlob,
		&t.Password,
		&t.CreatedAt,
	)
}
