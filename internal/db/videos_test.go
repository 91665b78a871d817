package db

import (
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
)

func TestReactionHelpers(t *testing.T) {
	t.Parallel()

	alice := PgUUID(uuid.New())
	bob := PgUUID(uuid.New())

	likes, dislikes := ApplyLike(nil, nil, alice)
	require.Equal(t, []pgtype.UUID{alice}, likes)
	require.Empty(t, dislikes)

	// Liking twice is idempotent.
	likes, dislikes = ApplyLike(likes, dislikes, alice)
	require.Equal(t, []pgtype.UUID{alice}, likes)
	require.Empty(t, dislikes)

	// Switching to dislike moves the viewer, leaving the sets disjoint.
	likes, dislikes = ApplyDislike(likes, dislikes, alice)
	require.Empty(t, likes)
	require.Equal(t, []pgtype.UUID{alice}, dislikes)

	// A second viewer's like does not disturb the first viewer's dislike.
	likes, dislikes = ApplyLike(likes, dislikes, bob)
	require.Equal(t, []pgtype.UUID{bob}, likes)
	require.Equal(t, []pgtype.UUID{alice}, dislikes)

	// And back again.
	likes, dislikes = ApplyLike(likes, dislikes, alice)
	require.ElementsMatch(t, []pgtype.UUID{alice, bob}, likes)
	require.Empty(t, dislikes)
}

func TestApplyView(t *testing.T) {
	t.Parallel()

	alice := PgUUID(uuid.New())
	bob := PgUUID(uuid.New())

	viewed := ApplyView(nil, alice)
	require.Len(t, viewed, 1)

	// Repeat views count once.
	viewed = ApplyView(viewed, alice)
	require.Len(t, viewed, 1)

	viewed = ApplyView(viewed, bob)
	require.Len(t, viewed, 2)

	v := Video{ViewedBy: viewed}
	require.Equal(t, 2, v.Views())
}

func TestUUIDString(t *testing.T) {
	t.Parallel()

	u := uuid.New()
	require.Equal(t, u.String(), UUIDString(PgUUID(u)))
	require.Equal(t, "", UUIDString(pgtype.UUID{}))

	require.Equal(t, []string{u.String()}, UUIDStrings([]pgtype.UUID{PgUUID(u)}))
}

func TestPgText(t *testing.T) {
	t.Parallel()

	require.False(t, PgText("").Valid)
	require.True(t, PgText("Physics").Valid)
}

func TestParsePgUUID(t *testing.T) {
	t.Parallel()

	u := uuid.New()
	parsed, err := ParsePgUUID(u.String())
	require.NoError(t, err)
	require.Equal(t, PgUUID(u), parsed)

	_, err = ParsePgUUID("not-a-uuid")
	require.Error(t, err)
}
