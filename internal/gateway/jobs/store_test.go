package jobs

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/require"
)

func TestBeginRejectsConcurrentDuplicate(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Begin("doc-1"))
	require.ErrorIs(t, s.Begin("doc-1"), ErrJobRunning)

	// A different document is unaffected.
	require.NoError(t, s.Begin("doc-2"))
}

func TestTerminalJobAllowsReExtraction(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Begin("doc-1"))
	s.Done("doc-1", "http://blob/stix/doc-1.json", 3)

	j, err := s.Get("doc-1")
	require.NoError(t, err)
	require.Equal(t, StatusDone, j.Status)
	require.Equal(t, 3, j.ObjectCount)
	require.True(t, j.Terminal())

	require.NoError(t, s.Begin("doc-1"))
}

func TestFailRecordsError(t *testing.T) {
	s := NewStore()
	require.NoError(t, s.Begin("doc-1"))
	s.Fail("doc-1", errors.New("blob write failed"))

	j, err := s.Get("doc-1")
	require.NoError(t, err)
	require.Equal(t, StatusFailed, j.Status)
	require.Equal(t, "blob write failed", j.Error)
	require.NoError(t, s.Begin("doc-1"))
}

func TestGetUnknownDocument(t *testing.T) {
	s := NewStore()
	_, err := s.Get("missing")
	require.ErrorIs(t, err, ErrNotFound)
}
