package session

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/dmitrijs2005/resumebook/internal/common"
)

type fakeRepo struct {
	data   map[string][]byte
	getErr error
	setErr error
	delErr error
}

func newFakeRepo() *fakeRepo { return &fakeRepo{data: map[string][]byte{}} }

func (f *fakeRepo) Get(ctx context.Context, key string) ([]byte, error) {
	if f.getErr != nil {
		return nil, f.getErr
	}
	return f.data[key], nil
}
func (f *fakeRepo) Set(ctx context.Context, key string, value []byte) error {
	if f.setErr != nil {
		return f.setErr
	}
	f.data[key] = value
	return nil
}
func (f *fakeRepo) Delete(ctx context.Context, key string) error {
	if f.delErr != nil {
		return f.delErr
	}
	delete(f.data, key)
	return nil
}
func (f *fakeRepo) List(ctx context.Context) (map[string][]byte, error) { return f.data, nil }
func (f *fakeRepo) Clear(ctx context.Context) error {
	f.data = map[string][]byte{}
	return nil
}

func signed(t *testing.T, exp time.Time) string {
	t.Helper()
	tok := jwt.NewWithClaims(jwt.SigningMethodHS256, jwt.RegisteredClaims{
		ExpiresAt: jwt.NewNumericDate(exp),
	})
	s, err := tok.SignedString([]byte("whatever"))
	require.NoError(t, err)
	return s
}

func TestNew_ReadsExpiry(t *testing.T) {
	exp := time.Now().Add(time.Hour).Truncate(time.Second)
	s := New("  " + signed(t, exp) + "\n")

	assert.True(t, exp.Equal(s.ExpiresAt))
	assert.False(t, s.Expired(time.Now()))
	assert.True(t, s.Expired(exp.Add(time.Second)))
}

func TestNew_OpaqueTokenNeverExpires(t *testing.T) {
	s := New("not-a-jwt")
	assert.Equal(t, "not-a-jwt", s.Token)
	assert.True(t, s.ExpiresAt.IsZero())
	assert.False(t, s.Expired(time.Now().Add(100*365*24*time.Hour)))

	var nilSess *Session
	assert.False(t, nilSess.Expired(time.Now()))
}

func TestStore_RoundTrip(t *testing.T) {
	repo := newFakeRepo()
	st := NewStore(repo)
	ctx := context.Background()

	_, err := st.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	saved, err := st.Save(ctx, "tok-1\n")
	require.NoError(t, err)
	assert.Equal(t, "tok-1", saved.Token)
	assert.Equal(t, []byte("tok-1"), repo.data[common.SessionKey])

	loaded, err := st.Load(ctx)
	require.NoError(t, err)
	assert.Equal(t, "tok-1", loaded.Token)

	require.NoError(t, st.Clear(ctx))
	_, err = st.Load(ctx)
	require.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, st.Clear(ctx))
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()
	boom := errors.New("disk gone")

	_, err := NewStore(newFakeRepo()).Save(ctx, "   ")
	require.Error(t, err)

	r := newFakeRepo()
	r.getErr = boom
	_, err = NewStore(r).Load(ctx)
	require.ErrorIs(t, err, boom)

	r = newFakeRepo()
	r.setErr = boom
	_, err = NewStore(r).Save(ctx, "t")
	require.ErrorIs(t, err, boom)

	r = newFakeRepo()
	r.delErr = boom
	require.ErrorIs(t, NewStore(r).Clear(ctx), boom)
}
