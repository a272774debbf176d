package highscore_test

import (
	"errors"
	"testing"
	"time"

	"github.com/plus3/blockfall/highscore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memBackend struct {
	props   map[string][]byte
	saves   int
	loadErr error
	saveErr error
}

func newMemBackend() *memBackend {
	return &memBackend{props: make(map[string][]byte)}
}

func (m *memBackend) ObjectPropExists(object, prop string) bool {
	_, ok := m.props[object+"/"+prop]
	return ok
}

func (m *memBackend) LoadObjectProp(object, prop string) ([]byte, error) {
	if m.loadErr != nil {
		return nil, m.loadErr
	}
	return m.props[object+"/"+prop], nil
}

func (m *memBackend) SaveObjectProp(object, prop string, data []byte) error {
	if m.saveErr != nil {
		return m.saveErr
	}
	m.saves++
	m.props[object+"/"+prop] = append([]byte(nil), data...)
	return nil
}

func scores(entries []highscore.Entry) []int {
	out := make([]int, len(entries))
	for i, e := range entries {
		out[i] = e.Score
	}
	return out
}

func TestRecord(t *testing.T) {
	s, err := highscore.New(newMemBackend(), 3, nil)
	require.NoError(t, err)

	rank, err := s.Record(highscore.Entry{Name: "a", Score: 300})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)

	rank, _ = s.Record(highscore.Entry{Name: "b", Score: 800})
	assert.Equal(t, 1, rank)
	rank, _ = s.Record(highscore.Entry{Name: "c", Score: 100})
	assert.Equal(t, 3, rank)
	assert.Equal(t, []int{800, 300, 100}, scores(s.Entries()))

	t.Run("full table drops the lowest", func(t *testing.T) {
		rank, err := s.Record(highscore.Entry{Name: "d", Score: 500})
		require.NoError(t, err)
		assert.Equal(t, 2, rank)
		assert.Equal(t, []int{800, 500, 300}, scores(s.Entries()))
	})

	t.Run("ties rank below", func(t *testing.T) {
		rank, _ := s.Record(highscore.Entry{Name: "e", Score: 500})
		assert.Equal(t, 3, rank)
		entries := s.Entries()
		assert.Equal(t, "d", entries[1].Name)
		assert.Equal(t, "e", entries[2].Name)
	})

	t.Run("too low", func(t *testing.T) {
		assert.False(t, s.Qualifies(500))
		rank, err := s.Record(highscore.Entry{Score: 200})
		require.NoError(t, err)
		assert.Equal(t, 0, rank)
	})

	t.Run("zero never qualifies", func(t *testing.T) {
		empty, _ := highscore.New(nil, 5, nil)
		assert.False(t, empty.Qualifies(0))
	})

	best, ok := s.Best()
	require.True(t, ok)
	assert.Equal(t, "b", best.Name)
}

func TestPersistence(t *testing.T) {
	backend := newMemBackend()
	at := time.Date(2024, 3, 1, 12, 0, 0, 0, time.UTC)

	s, err := highscore.New(backend, 5, nil)
	require.NoError(t, err)
	assert.True(t, s.Persistent())
	_, err = s.Record(highscore.Entry{Name: "x", Score: 1200, Lines: 12, Level: 2, Pieces: 40, At: at})
	require.NoError(t, err)
	_, err = s.Record(highscore.Entry{Name: "y", Score: 100, At: at})
	require.NoError(t, err)
	assert.Equal(t, 2, backend.saves)

	reopened, err := highscore.New(backend, 5, nil)
	require.NoError(t, err)
	assert.Equal(t, s.Entries(), reopened.Entries())

	t.Run("smaller table truncates on load", func(t *testing.T) {
		small, err := highscore.New(backend, 1, nil)
		require.NoError(t, err)
		assert.Equal(t, []int{1200}, scores(small.Entries()))
	})
}

func TestDegradedMode(t *testing.T) {
	s, err := highscore.New(nil, 3, nil)
	require.NoError(t, err)
	assert.False(t, s.Persistent())

	rank, err := s.Record(highscore.Entry{Score: 10})
	require.NoError(t, err)
	assert.Equal(t, 1, rank)
	assert.NoError(t, s.Save())
	assert.Len(t, s.Entries(), 1)
}

func TestBackendErrors(t *testing.T) {
	t.Run("unreadable table starts empty", func(t *testing.T) {
		backend := newMemBackend()
		backend.props["highscores/table"] = []byte("entries: [")
		s, err := highscore.New(backend, 3, nil)
		assert.Error(t, err)
		require.NotNil(t, s)
		assert.Empty(t, s.Entries())
	})

	t.Run("load failure", func(t *testing.T) {
		backend := newMemBackend()
		backend.props["highscores/table"] = nil
		backend.loadErr = errors.New("disk on fire")
		_, err := highscore.New(backend, 3, nil)
		assert.ErrorIs(t, err, backend.loadErr)
	})

	t.Run("save failure keeps the entry in memory", func(t *testing.T) {
		backend := newMemBackend()
		backend.saveErr = errors.New("read-only")
		s, err := highscore.New(backend, 3, nil)
		require.NoError(t, err)

		rank, err := s.Record(highscore.Entry{Score: 50})
		assert.ErrorIs(t, err, backend.saveErr)
		assert.Equal(t, 1, rank)
		assert.Len(t, s.Entries(), 1)
	})

	t.Run("invalid size", func(t *testing.T) {
		_, err := highscore.New(nil, 0, nil)
		assert.Error(t, err)
	})
}
