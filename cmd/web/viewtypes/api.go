// Package viewtypes holds the JSON shapes the API hands to clients.
package viewtypes

import (
	"time"

	"github.com/dustin/go-humanize"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/pkg/utils/format"
)

type Video struct {
	ID            string    `json:"id"`
	UserID        string    `json:"userId"`
	Title         string    `json:"title"`
	Description   string    `json:"description"`
	Category      string    `json:"category"`
	VideoBlob     string    `json:"videoBlob"`
	ThumbnailBlob string    `json:"thumbnailBlob"`
	VideoWidth    int32     `json:"videoWidth"`
	VideoHeight   int32     `json:"videoHeight"`
	ThumbWidth    int32     `json:"thumbWidth"`
	ThumbHeight   int32     `json:"thumbHeight"`
	AspectRatio   float64   `json:"aspectRatio"`
	Duration      float64   `json:"duration"`
	DurationLabel string    `json:"durationLabel"`
	FileName      string    `json:"fileName"`
	FileSize      int64     `json:"fileSize"`
	FileSizeLabel string    `json:"fileSizeLabel"`
	Likes         []string  `json:"likes"`
	Dislikes      []string  `json:"dislikes"`
	Views         int       `json:"views"`
	Tags          []string  `json:"tags"`
	CreatedAt     time.Time `json:"createdAt"`
}

func VideoFromRow(v *db.Video) Video {
	tags := v.Tags
	if tags == nil {
		tags = []string{}
	}
	return Video{
		ID:            db.UUIDString(v.ID),
		UserID:        db.UUIDString(v.UserID),
		Title:         v.Title,
		Description:   v.Description,
		Category:      v.Category,
		VideoBlob:     db.UUIDString(v.VideoBlob),
		ThumbnailBlob: db.UUIDString(v.ThumbnailBlob),
		VideoWidth:    v.VideoWidth,
		VideoHeight:   v.VideoHeight,
		ThumbWidth:    v.ThumbWidth,
		ThumbHeight:   v.ThumbHeight,
		AspectRatio:   float64(v.VideoWidth) / float64(v.VideoHeight),
		Duration:      v.Duration,
		DurationLabel: format.Duration(v.Duration),
		FileName:      v.FileName,
		FileSize:      v.FileSize,
		FileSizeLabel: humanize.Bytes(uint64(v.FileSize)),
		Likes:         db.UUIDStrings(v.Likes),
		Dislikes:      db.UUIDStrings(v.Dislikes),
		Views:         v.Views(),
		Tags:          tags,
		CreatedAt:     v.CreatedAt.Time,
	}
}

func VideosFromRows(rows []*db.Video) []Video {
	out := make([]Video, 0, len(rows))
	for _, v := range rows {
		out = append(out, VideoFromRow(v))
	}
	return out
}

type User struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	PhotoBlob      string    `json:"photoBlob,omitempty"`
	Year           string    `json:"year,omitempty"`
	Course         string    `json:"course,omitempty"`
	Institution    string    `json:"institution,omitempty"`
	GraduationYear string    `json:"graduationYear,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func UserFromRow(u *db.User) User {
	return User{
		ID:             db.UUIDString(u.ID),
		Name:           u.Name,
		Email:          u.Email,
		PhotoBlob:      db.UUIDString(u.PhotoBlob),
		Year:           u.Year.String,
		Course:         u.Course.String,
		Institution:    u.Institution.String,
		GraduationYear: u.GraduationYear.String,
		Phone:          u.Phone.String,
		CreatedAt:      u.CreatedAt.Time,
	}
}

func UsersFromRows(rows []*db.User) []User {
	out := make([]User, 0, len(rows))
	for _, u := range rows {
		out = append(out, UserFromRow(u))
	}
	return out
}

type Tutor struct {
	ID             string    `json:"id"`
	Name           string    `json:"name"`
	Email          string    `json:"email"`
	Phone          string    `json:"phone,omitempty"`
	Institution    string    `json:"institution,omitempty"`
	Course         string    `json:"course,omitempty"`
	Qualifications string    `json:"qualifications,omitempty"`
	PhotoBlob      string    `json:"photoBlob,omitempty"`
	CreatedAt      time.Time `json:"createdAt"`
}

func TutorFromRow(t *db.Tutor) Tutor {
	return Tutor{
		ID:             db.UUIDString(t.ID),
		Name:           t.Name,
		Email:          t.Email,
		Phone:          t.Phone.String,
		Institution:    t.Institution.String,
		Course:         t.Course.String,
		Qualifications: t.Qualifications.String,
		PhotoBlob:      db.UUIDString(t.PhotoBlob),
		CreatedAt:      t.CreatedAt.Time,
	}
}

func TutorsFromRows(rows []*db.Tutor) []Tutor {
	out := make([]Tutor, 0, len(rows))
	for _, t := range rows {
		out = append(out, TutorFromRow(t))
	}
	return out
}

type Comment struct {
	ID          string    `json:"id"`
	UserID      string    `json:"userId"`
	VideoID     string    `json:"videoId"`
	Body        string    `json:"body"`
	BodyHTML    string    `json:"bodyHtml"`
	AuthorName  string    `json:"authorName,omitempty"`
	AuthorPhoto string    `json:"authorPhoto,omitempty"`
	CreatedAt   time.Time `json:"createdAt"`
}

func CommentFromRow(c *db.Comment) Comment {
	return Comment{
		ID:        db.UUIDString(c.ID),
		UserID:    db.UUIDString(c.UserID),
		VideoID:   db.UUIDString(c.VideoID),
		Body:      c.Body.Source,
		BodyHTML:  string(c.Body.Render()),
		CreatedAt: c.CreatedAt.Time,
	}
}

func CommentsFromRows(rows []*db.CommentWithAuthor) []Comment {
	out := make([]Comment, 0, len(rows))
	for _, row := range rows {
		c := CommentFromRow(&row.Comment)
		c.AuthorName = row.AuthorName
		c.AuthorPhoto = db.UUIDString(row.AuthorPhoto)
		out = append(out, c)
	}
	return out
}

type Connection struct {
	ID        string    `json:"id"`
	Requester string    `json:"requester"`
	Target    string    `json:"target"`
	Status    string    `json:"status"`
	PeerName  string    `json:"peerName,omitempty"`
	PeerEmail string    `json:"peerEmail,omitempty"`
	PeerPhoto string    `json:"peerPhoto,omitempty"`
	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

func ConnectionFromRow(c *db.Connection) Connection {
	return Connection{
		ID:        db.UUIDString(c.ID),
		Requester: db.UUIDString(c.Requester),
		Target:    db.UUIDString(c.Target),
		Status:    string(c.Status),
		CreatedAt: c.CreatedAt.Time,
		UpdatedAt: c.UpdatedAt.Time,
	}
}

func ConnectionsFromRows(rows []*db.ConnectionWithPeer) []Connection {
	out := make([]Connection, 0, len(rows))
	for _, row := range rows {
		c := ConnectionFromRow(&row.Connection)
		c.PeerName = row.PeerName
		c.PeerEmail = row.PeerEmail
		c.PeerPhoto = db.UUIDString(row.PeerPhoto)
		out = append(out, c)
	}
	return out
}

type Message struct {
	ID        string    `json:"id"`
	Sender    string    `json:"sender"`
	Recipient string    `json:"recipient"`
	Body      string    `json:"body"`
	CreatedAt time.Time `json:"createdAt"`
}

func MessageFromRow(m *db.Message) Message {
	return Message{
		ID:        db.UUIDString(m.ID),
		Sender:    db.UUIDString(m.Sender),
		Recipient: db.UUIDString(m.Recipient),
		Body:      m.Body,
		CreatedAt: m.CreatedAt.Time,
	}
}

func MessagesFromRows(rows []*db.Message) []Message {
	out := make([]Message, 0, len(rows))
	for _, m := range rows {
		out = append(out, MessageFromRow(m))
	}
	return out
}

type ChatPartner struct {
	PartnerID    string    `json:"partnerId"`
	PartnerName  string    `json:"partnerName"`
	PartnerPhoto string    `json:"partnerPhoto,omitempty"`
	LastBody     string    `json:"lastBody"`
	LastAt       time.Time `json:"lastAt"`
}

func ChatPartnersFromRows(rows []*db.ChatPartner) []ChatPartner {
	out := make([]ChatPartner, 0, len(rows))
	for _, p := range rows {
		out = append(out, ChatPartner{
			PartnerID:    db.UUIDString(p.PartnerID),
			PartnerName:  p.PartnerName,
			PartnerPhoto: db.UUIDString(p.PartnerPhoto),
			LastBody:     p.LastBody,
			LastAt:       p.LastAt.Time,
		})
	}
	return out
}

type Meeting struct {
	ID          string    `json:"id"`
	MeetingCode string    `json:"meetingCode"`
	HostEmail   string    `json:"hostEmail"`
	Active      bool      `json:"active"`
	CreatedAt   time.Time `json:"createdAt"`
}

func MeetingFromRow(m *db.Meeting) Meeting {
	return Meeting{
		ID:          db.UUIDString(m.ID),
		MeetingCode: m.MeetingCode,
		HostEmail:   m.HostEmail,
		Active:      m.Active,
		CreatedAt:   m.CreatedAt.Time,
	}
}

type Call struct {
	ID        string    `json:"id"`
	Caller    string    `json:"caller"`
	Receiver  string    `json:"receiver"`
	Kind      string    `json:"kind"`
	Status    string    `json:"status"`
	StartedAt time.Time `json:"startedAt"`
}

func CallFromRow(c *db.Call) Call {
	return Call{
		ID:        db.UUIDString(c.ID),
		Caller:    db.UUIDString(c.Caller),
		Receiver:  db.UUIDString(c.Receiver),
		Kind:      string(c.Kind),
		Status:    string(c.Status),
		StartedAt: c.StartedAt.Time,
	}
}
