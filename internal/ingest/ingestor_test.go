package ingest

import (
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgtype"
	"github.com/stretchr/testify/require"
	"github.com/tutorhub/tutorhub/internal/blob"
	"github.com/tutorhub/tutorhub/internal/db"
	"github.com/tutorhub/tutorhub/internal/media"
)

type stubProber struct {
	info media.VideoInfo
	err  error
}

func (p stubProber) Probe(ctx context.Context, path string) (media.VideoInfo, error) {
	return p.info, p.err
}

type stubDeriver struct {
	thumb *media.Thumbnail
	err   error
}

func (d stubDeriver) Derive(ctx context.Context, path string, info media.VideoInfo) (*media.Thumbnail, error) {
	return d.thumb, d.err
}

// spyStore records puts and deletes and can be told to fail the nth put.
type spyStore struct {
	puts      []uuid.UUID
	deletes   []uuid.UUID
	stored    map[uuid.UUID]bool
	failAtPut int // 1-based; 0 never fails
}

func (s *spyStore) Put(ctx context.Context, r io.Reader, contentType string) (uuid.UUID, error) {
	if _, err := io.Copy(io.Discard, r); err != nil {
		return uuid.Nil, err
	}
	if s.failAtPut > 0 && len(s.puts)+1 == s.failAtPut {
		return uuid.Nil, errors.New("disk full")
	}
	if s.stored == nil {
		s.stored = map[uuid.UUID]bool{}
	}
	id := uuid.New()
	s.puts = append(s.puts, id)
	s.stored[id] = true
	return id, nil
}

func (s *spyStore) Open(ctx context.Context, id uuid.UUID) (io.ReadCloser, blob.Info, error) {
	return nil, blob.Info{}, blob.ErrNotFound
}

func (s *spyStore) Delete(ctx context.Context, id uuid.UUID) error {
	if !s.stored[id] {
		return blob.ErrNotFound
	}
	delete(s.stored, id)
	s.deletes = append(s.deletes, id)
	return nil
}

type stubRepo struct {
	inserted  *db.NewVideoParams
	insertErr error
	video     *db.Video
	deleted   []pgtype.UUID
}

func (r *stubRepo) NewVideo(ctx context.Context, params db.NewVideoParams) (*db.Video, error) {
	if r.insertErr != nil {
		return nil, r.insertErr
	}
	r.inserted = &params
	v := &db.Video{
		ID:            db.PgUUID(uuid.New()),
		UserID:        params.UserID,
		Title:         params.Title,
		VideoBlob:     params.VideoBlob,
		ThumbnailBlob: params.ThumbnailBlob,
		VideoWidth:    params.VideoWidth,
		VideoHeight:   params.VideoHeight,
		ThumbWidth:    params.ThumbWidth,
		ThumbHeight:   params.ThumbHeight,
		Duration:      params.Duration,
		FileSize:      params.FileSize,
	}
	r.video = v
	return v, nil
}

func (r *stubRepo) GetVideo(ctx context.Context, id pgtype.UUID) (*db.Video, error) {
	if r.video == nil || r.video.ID != id {
		return nil, errors.New("no rows in result set")
	}
	return r.video, nil
}

func (r *stubRepo) DeleteVideo(ctx context.Context, id pgtype.UUID) (*db.Video, error) {
	v, err := r.GetVideo(ctx, id)
	if err != nil {
		return nil, err
	}
	r.deleted = append(r.deleted, id)
	return v, nil
}

type capturingPublisher struct {
	published []*db.Video
}

func (p *capturingPublisher) PublishVideo(v *db.Video) {
	p.published = append(p.published, v)
}

func testThumb() *media.Thumbnail {
	return &media.Thumbnail{Data: []byte("jpeg bytes"), Width: 720, Height: 405}
}

func testRequest() Request {
	return Request{
		Reader:      strings.NewReader("mp4 bytes"),
		FileName:    "lecture.mp4",
		ContentType: "video/mp4",
		UserID:      db.PgUUID(uuid.New()),
		Title:       "Intro to Calculus",
	}
}

func TestIngestSuccess(t *testing.T) {
	t.Parallel()

	store := &spyStore{}
	repo := &stubRepo{}
	pub := &capturingPublisher{}
	ing := &Ingestor{
		Prober:    stubProber{info: media.VideoInfo{Width: 1280, Height: 720, Duration: 50}},
		Deriver:   stubDeriver{thumb: testThumb()},
		Store:     store,
		Repo:      repo,
		Publisher: pub,
	}

	video, err := ing.Ingest(context.Background(), testRequest())
	require.NoError(t, err)
	require.NotNil(t, video)

	require.Len(t, store.puts, 2)
	require.Empty(t, store.deletes)

	require.Equal(t, db.PgUUID(store.puts[0]), repo.inserted.VideoBlob)
	require.Equal(t, db.PgUUID(store.puts[1]), repo.inserted.ThumbnailBlob)
	require.Equal(t, int32(1280), repo.inserted.VideoWidth)
	require.Equal(t, int32(405), repo.inserted.ThumbHeight)
	require.Equal(t, int64(len("mp4 bytes")), repo.inserted.FileSize)

	require.Len(t, pub.published, 1)
	require.Equal(t, video, pub.published[0])
}

func TestIngestNoVideoStream(t *testing.T) {
	t.Parallel()

	store := &spyStore{}
	ing := &Ingestor{
		Prober:  stubProber{err: media.ErrNoVideoStream},
		Deriver: stubDeriver{thumb: testThumb()},
		Store:   store,
		Repo:    &stubRepo{},
	}

	_, err := ing.Ingest(context.Background(), testRequest())
	require.ErrorIs(t, err, media.ErrNoVideoStream)

	// The pipeline aborted before any blob was written.
	require.Empty(t, store.puts)
}

func TestIngestDeriveFailureWritesNothing(t *testing.T) {
	t.Parallel()

	store := &spyStore{}
	ing := &Ingestor{
		Prober:  stubProber{info: media.VideoInfo{Width: 1280, Height: 720}},
		Deriver: stubDeriver{err: media.ErrThumbnailFailed},
		Store:   store,
		Repo:    &stubRepo{},
	}

	_, err := ing.Ingest(context.Background(), testRequest())
	require.ErrorIs(t, err, media.ErrThumbnailFailed)
	require.Empty(t, store.puts)
}

func TestIngestThumbStoreFailureRollsBackVideoBlob(t *testing.T) {
	t.Parallel()

	store := &spyStore{failAtPut: 2}
	pub := &capturingPublisher{}
	ing := &Ingestor{
		Prober:    stubProber{info: media.VideoInfo{Width: 1280, Height: 720}},
		Deriver:   stubDeriver{thumb: testThumb()},
		Store:     store,
		Repo:      &stubRepo{},
		Publisher: pub,
	}

	_, err := ing.Ingest(context.Background(), testRequest())
	require.ErrorIs(t, err, ErrStorage)

	// The video blob written in step three was reaped.
	require.Len(t, store.puts, 1)
	require.Equal(t, store.puts, store.deletes)
	require.Empty(t, pub.published)
}

func TestIngestInsertFailureRollsBackBothBlobs(t *testing.T) {
	t.Parallel()

	store := &spyStore{}
	ing := &Ingestor{
		Prober:  stubProber{info: media.VideoInfo{Width: 1280, Height: 720}},
		Deriver: stubDeriver{thumb: testThumb()},
		Store:   store,
		Repo:    &stubRepo{insertErr: errors.New("connection reset")},
	}

	_, err := ing.Ingest(context.Background(), testRequest())
	require.Error(t, err)

	require.Len(t, store.puts, 2)
	require.ElementsMatch(t, store.puts, store.deletes)
}

func TestRemoveDeletesBlobsThenRecord(t *testing.T) {
	t.Parallel()

	store := &spyStore{}
	repo := &stubRepo{}
	ing := &Ingestor{
		Prober:  stubProber{info: media.VideoInfo{Width: 1280, Height: 720, Duration: 10}},
		Deriver: stubDeriver{thumb: testThumb()},
		Store:   store,
		Repo:    repo,
	}

	video, err := ing.Ingest(context.Background(), testRequest())
	require.NoError(t, err)

	removed, err := ing.Remove(context.Background(), video.ID)
	require.NoError(t, err)
	require.Equal(t, video.ID, removed.ID)

	require.ElementsMatch(t, store.puts, store.deletes)
	require.Equal(t, []pgtype.UUID{video.ID}, repo.deleted)
}

func TestRemoveToleratesMissingBlob(t *testing.T) {
	t.Parallel()

	store := &spyStore{}
	repo := &stubRepo{}
	ing := &Ingestor{
		Prober:  stubProber{info: media.VideoInfo{Width: 1280, Height: 720, Duration: 10}},
		Deriver: stubDeriver{thumb: testThumb()},
		Store:   store,
		Repo:    repo,
	}

	video, err := ing.Ingest(context.Background(), testRequest())
	require.NoError(t, err)

	// Simulate a previously interrupted removal.
	require.NoError(t, store.Delete(context.Background(), uuid.UUID(video.VideoBlob.Bytes)))

	_, err = ing.Remove(context.Background(), video.ID)
	require.NoError(t, err)
	require.Equal(t, []pgtype.UUID{video.ID}, repo.deleted)
}
