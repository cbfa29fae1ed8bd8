package registry

import (
	"context"
	"fmt"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/FXdmz/HPA-Azure-Demo/internal/domain"
)

type fakeCreator struct {
	seq int
	err error
}

func (f *fakeCreator) CreateThread(ctx context.Context) (domain.Thread, error) {
	if f.err != nil {
		return domain.Thread{}, f.err
	}
	f.seq++
	return domain.Thread{ID: fmt.Sprintf("thread_%d", f.seq)}, nil
}

func TestGetOrCreateReusesThread(t *testing.T) {
	creator := &fakeCreator{}
	s := NewSessions(creator, zerolog.Nop())

	first, err := s.GetOrCreate(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "thread_1", first)

	second, err := s.GetOrCreate(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, first, second)
	assert.Equal(t, 1, creator.seq)
}

func TestGetOrCreateSeparatesSessions(t *testing.T) {
	creator := &fakeCreator{}
	s := NewSessions(creator, zerolog.Nop())

	a, err := s.GetOrCreate(context.Background(), "a")
	require.NoError(t, err)
	b, err := s.GetOrCreate(context.Background(), "b")
	require.NoError(t, err)
	assert.NotEqual(t, a, b)
}

func TestGetOrCreatePropagatesError(t *testing.T) {
	creator := &fakeCreator{err: fmt.Errorf("platform down")}
	s := NewSessions(creator, zerolog.Nop())

	_, err := s.GetOrCreate(context.Background(), "default")
	require.Error(t, err)
	assert.Contains(t, err.Error(), "failed to create thread")

	// The failed session left nothing behind: once the platform recovers a
	// fresh thread is created.
	creator.err = nil
	id, err := s.GetOrCreate(context.Background(), "default")
	require.NoError(t, err)
	assert.Equal(t, "thread_1", id)
}

func TestClearStartsNewThread(t *testing.T) {
	creator := &fakeCreator{}
	s := NewSessions(creator, zerolog.Nop())

	first, err := s.GetOrCreate(context.Background(), "default")
	require.NoError(t, err)

	s.Clear("default")

	second, err := s.GetOrCreate(context.Background(), "default")
	require.NoError(t, err)
	assert.NotEqual(t, first, second)
}

func TestClearUnknownSessionIsNoop(t *testing.T) {
	s := NewSessions(&fakeCreator{}, zerolog.Nop())
	assert.NotPanics(t, func() {
		s.Clear("never-seen")
	})
}
