package dialogue

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStore_CreateGetDelete(t *testing.T) {
	st := NewStore(10, time.Minute)
	now := time.Now()

	s := st.Create("alice", now)
	require.NotEmpty(t, s.ID)

	got, err := st.Get(s.ID, "alice")
	require.NoError(t, err)
	assert.Same(t, s, got)

	_, err = st.Get(s.ID, "bob")
	assert.ErrorIs(t, err, ErrSessionNotFound)

	assert.ErrorIs(t, st.Delete(s.ID, "bob"), ErrSessionNotFound)
	require.NoError(t, st.Delete(s.ID, "alice"))

	_, err = st.Get(s.ID, "alice")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_GetOrCreate(t *testing.T) {
	st := NewStore(10, time.Minute)
	now := time.Now()

	a := st.GetOrCreate("tg:42", "tg:42", now)
	b := st.GetOrCreate("tg:42", "tg:42", now)
	assert.Same(t, a, b)
	assert.Equal(t, 1, st.Len())
}

func TestStore_Expiry(t *testing.T) {
	st := NewStore(10, 20*time.Millisecond)
	s := st.Create("alice", time.Now())

	time.Sleep(60 * time.Millisecond)

	_, err := st.Get(s.ID, "alice")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_Capacity(t *testing.T) {
	st := NewStore(2, time.Minute)
	first := st.Create("alice", time.Now())
	st.Create("alice", time.Now())
	st.Create("alice", time.Now())

	assert.Equal(t, 2, st.Len())
	_, err := st.Get(first.ID, "alice")
	assert.ErrorIs(t, err, ErrSessionNotFound)
}

func TestStore_RemoveIgnoresOwner(t *testing.T) {
	st := NewStore(10, time.Minute)
	st.GetOrCreate("telegram:-100", "telegram_1", time.Now())

	assert.True(t, st.Remove("telegram:-100"))
	assert.False(t, st.Remove("telegram:-100"))
	assert.Equal(t, 0, st.Len())
}
