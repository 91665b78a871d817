package db

import (
	"context"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tutorhub/tutorhub/pkg/utils/passwords"
)

// NewUserParams contains the parameters for creating a new user
type NewUserParams struct {
	Name           string
	Email          string
	Password       string // plaintext password
	PhotoBlob      pgtype.UUID
	Year           string
	Course         string
	Institution    string
	GraduationYear string
	Phone          string
}

const insertUser = `
INSERT INTO users (id, name, email, password, photo_blob, year, course, institution, graduation_year, phone)
VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10)
RETURNING id, name, email, password, photo_blob, year, course, institution, graduation_year, phone, created_at
`

// NewUser creates a new user with a hashed password
func (q *Queries) NewUser(ctx context.Context, params NewUserParams) (*User, error) {
	hashedPassword, err := passwords.NewPassword(passwords.PasswordInput{
		Password: params.Password,
	})
	if err != nil {
		return nil, err
	}

	row := q.db.QueryRow(ctx, insertUser,
		PgUUID(uuid.New()),
		params.Name,
		params.Email,
		hashedPassword,
		params.PhotoBlob,
		PgText(params.Year),
		PgText(params.Course),
		PgText(params.Institution),
		PgText(params.GraduationYear),
		PgText(params.Phone),
	)

	var u User
	if err := scanUser(row, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

const getUserByEmail = `
SELECT id, name, email, password, photo_blob, year, course, institution, graduation_year, phone, created_at
FROM users WHERE email = $1
`

func (q *Queries) GetUserByEmail(ctx context.Context, email string) (*User, error) {
	var u User
	if err := scanUser(q.db.QueryRow(ctx, getUserByEmail, email), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

const getUserByID = `
SELECT id, name, email, password, photo_blob, year, course, institution, graduation_year, phone, created_at
FROM users WHERE id = $1
`

func (q *Queries) GetUserByID(ctx context.Context, id pgtype.UUID) (*User, error) {
	var u User
	if err := scanUser(q.db.QueryRow(ctx, getUserByID, id), &u); err != nil {
		return nil, err
	}
	return &u, nil
}

const listUsers = `
SELECT id, name, email, password, photo_blob, year, course, institution, graduation_year, phone, created_at
FROM users ORDER BY created_at DESC
`

func (q *Queries) ListUsers(ctx context.Context) ([]*User, error) {
	rows, err := q.db.Query(ctx, listUsers)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var users []*User
	for rows.Next() {
		var u User
		if err := scanUser(rows, &u); err != nil {
			return nil, err
		}
		users = append(users, &u)
	}
	return users, rows.Err()
}

// UpdateProfileParams carries the editable profile fields. Empty strings
// clear the corresponding column.
type UpdateProfileParams struct {
	ID             pgtype.UUID
	Year           string
	Course         string
	Institution    string
	GraduationYear string
	Phone          string
	PhotoBlob      pgtype.UUID
}

const updateUserProfile = `
UPDATE users
SET year = $2, course = $3, institution = $4, graduation_year = $5, phone = $6,
    photo_blob = COALESCE($7, photo_blob)
WHERE id = $1
RETURNING id, name, email, password, photo_blob, year, course, institution, graduation_year, phone, created_at
`

func (q *Queries) UpdateUserProfile(ctx context.Context, params UpdateProfileParams) (*User, error) {
	row := q.db.QueryRow(ctx, updateUserProfile,
		params.ID,
		PgText(params.Year),
		PgText(params.Course),
		PgText(params.Institution),
		PgText(params.GraduationYear),
		PgText(params.Phone),
		params.PhotoBlob,
	)

	var u User
	if err := scanUser(row, &u); err != nil {
		return nil, err
	}
	return &u, nil
}

type rowScanner interface {
	Scan(dest ...any) error
}

func scanUser(row rowScanner, u *User) error {
	return row.Scan(
		&u.ID,
		&u.Name,
		&u.Email,
		&u.Password,
		&u.PhotoBlob,
		&u.Year,
		&u.Course,
		&u.Institution,
		&u.GraduationYear,
		&u.Phone,
		&u.CreatedAt,
	)
}
