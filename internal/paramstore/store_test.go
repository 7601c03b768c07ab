package paramstore

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore() *Store {
	return NewStore(NewSchema(DefaultEntries()))
}

func TestStore_RoundTrip(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	require.NoError(t, s.SetCurrent("brightness", EncodeUint32(128), TypeUint32))
	v, err := s.GetCurrent("brightness")
	require.NoError(t, err)
	assert.Equal(t, uint32(128), v.DecodeUint32())
}

func TestStore_UnknownParam(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	err := s.SetCurrent("not-a-param", EncodeUint32(1), TypeUint32)
	assert.ErrorIs(t, err, ErrUnknownParam)

	_, err = s.GetCurrent("not-a-param")
	assert.ErrorIs(t, err, ErrUnknownParam)
}

func TestStore_MissingBeforeSet(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	_, err := s.GetCurrent("brightness")
	assert.ErrorIs(t, err, ErrMissing)
}

func TestStore_BadTypeLeavesStoreUnchanged(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	require.NoError(t, s.SetCurrent("brightness", EncodeUint32(64), TypeUint32))

	err := s.SetCurrent("brightness", EncodeInt32(10), TypeInt32)
	assert.ErrorIs(t, err, ErrBadType)

	v, err := s.GetCurrent("brightness")
	require.NoError(t, err)
	assert.Equal(t, uint32(64), v.DecodeUint32(), "failed set must not mutate the store")
}

func TestStore_UnsupportedValueRejected(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	require.NoError(t, s.SetSupported("gain", EncodeUint32(10)))
	require.NoError(t, s.SetSupported("gain", EncodeUint32(20)))

	err := s.SetCurrent("gain", EncodeUint32(15), TypeUint32)
	assert.ErrorIs(t, err, ErrUnsupported)

	require.NoError(t, s.SetCurrent("gain", EncodeUint32(20), TypeUint32))
}

func TestStore_EmptySupportedMeansAny(t *testing.T) {
	t.Parallel()
	s := newTestStore()
	assert.NoError(t, s.SetCurrent("contrast", EncodeUint32(42), TypeUint32))
}

func TestStore_ListCurrentIsSchemaOrder(t *testing.T) {
	t.Parallel()
	s := newTestStore()

	// Set in reverse-of-schema order to prove iteration order is the
	// schema's, not the store's insertion order.
	require.NoError(t, s.SetCurrent("video-snapshot", EncodeUint8(1), TypeUint8))
	require.NoError(t, s.SetCurrent("brightness", EncodeUint32(1), TypeUint32))
	require.NoError(t, s.SetCurrent("camera-mode", EncodeUint32(0), TypeUint32))

	entries := s.ListCurrent()
	require.Len(t, entries, 3)
	assert.Equal(t, "camera-mode", entries[0].Name)
	assert.Equal(t, "brightness", entries[1].Name)
	assert.Equal(t, "video-snapshot", entries[2].Name)
}
