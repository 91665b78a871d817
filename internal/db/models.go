package db

import (
	"context"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgconn"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/tutorhub/tutorhub/pkg/utils/markdown"
	"github.com/tutorhub/tutorhub/pkg/utils/passwords"
)

// DBTX is satisfied by both *pgxpool.Pool and pgx.Tx.
type DBTX interface {
	Exec(ctx context.Context, sql string, args ...any) (pgconn.CommandTag, error)
	Query(ctx context.Context, sql string, args ...any) (pgx.Rows, error)
	QueryRow(ctx context.Context, sql string, args ...any) pgx.Row
}

func New(db DBTX) *Queries {
	return &Queries{db: db}
}

type Queries struct {
	db DBTX
}

type ConnectionStatus string

const (
	ConnectionStatusPending  ConnectionStatus = "pending"
	ConnectionStatusAccepted ConnectionStatus = "accepted"
	ConnectionStatusDeclined ConnectionStatus = "declined"
)

type CallKind string

const (
	CallKindAudio CallKind = "audio"
	CallKindVideo CallKind = "video"
)

type CallStatus string

const (
	CallStatusPending   CallStatus = "pending"
	CallStatusAccepted  CallStatus = "accepted"
	CallStatusRejected  CallStatus = "rejected"
	CallStatusCompleted CallStatus = "completed"
)

type User struct {
	ID             pgtype.UUID
	Name           string
	Email          string
	Password       passwords.Password
	PhotoBlob      pgtype.UUID
	Year           pgtype.Text
	Course         pgtype.Text
	Institution    pgtype.Text
	GraduationYear pgtype.Text
	Phone          pgtype.Text
	CreatedAt      pgtype.Timestamptz
}

type Tutor struct {
	ID             pgtype.UUID
	Name           string
	Email          string
	Phone          pgtype.Text
	Institution    pgtype.Text
	Course         pgtype.Text
	Qualifications pgtype.Text
	PhotoBlob      pgtype.UUID
	Password       passwords.Password
	CreatedAt      pgtype.Timestamptz
}

type Video struct {
	ID            pgtype.UUID
	UserID        pgtype.UUID
	Title         string
	Description   string
	Category      string
	VideoBlob     pgtype.UUID
	ThumbnailBlob pgtype.UUID
	VideoWidth    int32
	VideoHeight   int32
	ThumbWidth    int32
	ThumbHeight   int32
	Duration      float64
	FileName      string
	FileSize      int64
	Likes         []pgtype.UUID
	Dislikes      []pgtype.UUID
	ViewedBy      []pgtype.UUID
	Tags          []string
	CreatedAt     pgtype.Timestamptz
}

// Views is derived from the viewer set, never stored.
func (v *Video) Views() int {
	return len(v.ViewedBy)
}

type Comment struct {
	ID        pgtype.UUID
	UserID    pgtype.UUID
	VideoID   pgtype.UUID
	Body      markdown.Markdown
	CreatedAt pgtype.Timestamptz
}

type Connection struct {
	ID        pgtype.UUID
	Requester pgtype.UUID
	Target    pgtype.UUID
	Status    ConnectionStatus
	CreatedAt pgtype.Timestamptz
	UpdatedAt pgtype.Timestamptz
}

type Message struct {
	ID        pgtype.UUID
	Sender    pgtype.UUID
	Recipient pgtype.UUID
	Body      string
	CreatedAt pgtype.Timestamptz
}

type Meeting struct {
	ID          pgtype.UUID
	MeetingCode string
	HostEmail   string
	Active      bool
	CreatedAt   pgtype.Timestamptz
}

type Call struct {
	ID        pgtype.UUID
	Caller    pgtype.UUID
	Receiver  pgtype.UUID
	Kind      CallKind
	Status    CallStatus
	StartedAt pgtype.Timestamptz
	EndedAt   pgtype.Timestamptz
}
