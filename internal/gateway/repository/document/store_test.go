package document

import (
	"context"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestMemoryStoreCRUD(t *testing.T) {
	ctx := context.Background()
	s := NewMemory()

	rec := Record{ID: "doc-1", UserID: "u1", FileName: "report.pdf", FileType: "application/pdf", FileSize: 42, TextURL: "http://blob/text"}
	require.NoError(t, s.Put(ctx, rec))

	got, err := s.Get(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, "report.pdf", got.FileName)
	require.False(t, got.CreatedAt.IsZero())

	require.NoError(t, s.AttachBundleURL(ctx, "doc-1", "http://blob/stix"))
	got, err = s.Get(ctx, "doc-1")
	require.NoError(t, err)
	require.Equal(t, "http://blob/stix", got.StixBundleURL)

	require.NoError(t, s.Put(ctx, Record{ID: "doc-2", UserID: "u1", FileName: "b.txt", FileType: "text/plain"}))
	require.NoError(t, s.Put(ctx, Record{ID: "doc-3", UserID: "u2", FileName: "c.txt", FileType: "text/plain"}))

	list, err := s.ListByUser(ctx, "u1")
	require.NoError(t, err)
	require.Len(t, list, 2)

	require.NoError(t, s.Delete(ctx, "doc-1"))
	_, err = s.Get(ctx, "doc-1")
	require.ErrorIs(t, err, ErrNotFound)
	require.ErrorIs(t, s.Delete(ctx, "doc-1"), ErrNotFound)
	require.ErrorIs(t, s.AttachBundleURL(ctx, "missing", "u"), ErrNotFound)
}

func TestPutRequiresID(t *testing.T) {
	s := NewMemory()
	require.Error(t, s.Put(context.Background(), Record{}))
}

func TestNewFromDSNEmptyFallsBackToMemory(t *testing.T) {
	s, err := NewFromDSN("")
	require.NoError(t, err)
	require.Nil(t, s.db)
	require.NoError(t, s.Close())
}
