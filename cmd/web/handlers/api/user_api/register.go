// package user_api provides student account API handlers.
package user_api

import (
	"context"
	"log/slog"
	"mime/multipart"
	"strings"

	"github.com/jackc/pgx/v5/pgtype"
	"github.com/labstack/echo/v4"
	"github.com/tutorhub/tutorhub/cmd/web/auth"
	"github.com/tutorhub/tutorhub/cmd/web/handlers/common"
	"github.com/tutorhub/tutorhub/cmd/web/viewtypes"
	"github.com/tutorhub/tutorhub/internal/blob"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/email"
)

// HandleRegister creates a student account. The photo part is optional.
func HandleRegister(sm *auth.SessionManager, dbc *db.DatabaseConnection, store blob.Store) echo.HandlerFunc {
	return func(c echo.Context) error {
		name := strings.TrimSpace(c.FormValue("name"))
		address := strings.TrimSpace(c.FormValue("email"))
		password := c.FormValue("password")

		if name == "" || address == "" || password == "" {
			return common.ErrBadRequest("name, email and password are required")
		}
		if !email.IsEmail(address) {
			return common.ErrBadRequest("invalid email address")
		}

		ctx := c.Request().Context()

		photoBlob, err := StorePhoto(ctx, c, store)
		if err != nil {
			slog.Error("failed to store profile photo", "error", err)
			return common.ErrInternal("failed to store photo")
		}

		user, err := dbc.Queries(ctx).NewUser(ctx, db.NewUserParams{
			Name:           name,
			Email:          address,
			Password:       password,
			PhotoBlob:      photoBlob,
			Year:           c.FormValue("year"),
			Course:         c.FormValue("course"),
			Institution:    c.FormValue("institution"),
			GraduationYear: c.FormValue("graduationYear"),
			Phone:          c.FormValue("phone"),
		})
		if err != nil {
			if db.IsUniqueViolation(err) {
				return common.ErrBadRequest("email already registered")
			}
			slog.Error("failed to create user", "email", address, "error", err)
			return common.ErrInternal("failed to register")
		}

		if err := sm.SaveSession(c.Response().Writer, c.Request(), db.UUIDString(user.ID), user.Name, auth.AccessUser); err != nil {
			slog.Error("failed to save session after register", "error", err)
		}

		return c.JSON(201, viewtypes.UserFromRow(user))
	}
}

// StorePhoto saves an optional "photo" multipart part and returns its blob
// id. A missing part is not an error; the returned UUID is simply invalid.
func StorePhoto(ctx context.Context, c echo.Context, store blob.Store) (pgtype.UUID, error) {
	fileHeader, err := c.FormFile("photo")
	if err != nil {
		return pgtype.UUID{}, nil
	}
	return storePhotoFile(ctx, fileHeader, store)
}

func storePhotoFile(ctx context.Context, fileHeader *multipart.FileHeader, store blob.Store) (pgtype.UUID, error) {
	src, err := fileHeader.Open()
	if err != nil {
		return pgtype.UUID{}, err
	}
	defer src.Close()

	contentType := fileHeader.Header.Get("Content-Type")
	if contentType == "" {
		contentType = "application/octet-stream"
	}

	id, err := store.Put(ctx, src, contentType)
	if err != nil {
		return pgtype.UUID{}, err
	}
	return db.PgUUID(id), nil
}
