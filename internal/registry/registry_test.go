package registry

import (
	"testing"

	"github.com/camerarecorder/camera-streaming-daemon/internal/camera"
	"github.com/camerarecorder/camera-streaming-daemon/internal/paramstore"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeDevice struct {
	id string
}

func (f *fakeDevice) Info() camera.Info                { return camera.Info{Model: f.id} }
func (f *fakeDevice) Streams() []*camera.Stream         { return nil }
func (f *fakeDevice) GetParam(string) (paramstore.Value, error) {
	return paramstore.Value{}, paramstore.ErrUnknownParam
}
func (f *fakeDevice) SetParam(string, paramstore.Value, paramstore.Type) error { return nil }
func (f *fakeDevice) GetParamType(string) (paramstore.Type, bool)              { return 0, false }
func (f *fakeDevice) ParamList() []paramstore.CurrentEntry                     { return nil }
func (f *fakeDevice) SetMode(camera.Mode) error                                { return nil }
func (f *fakeDevice) GetMode() camera.Mode                                     { return camera.ModePreview }

func TestRegistry_AssignsAscendingFromFirstSlot(t *testing.T) {
	t.Parallel()
	r := New()
	id, err := r.Add(&fakeDevice{id: "cam0"})
	require.NoError(t, err)
	assert.EqualValues(t, 100, id)
}

func TestRegistry_OutOfSlotsAfterSix(t *testing.T) {
	t.Parallel()
	r := New()
	for i := 0; i < 6; i++ {
		_, err := r.Add(&fakeDevice{id: "cam"})
		require.NoError(t, err)
	}
	_, err := r.Add(&fakeDevice{id: "cam6"})
	assert.ErrorIs(t, err, ErrOutOfSlots)
}

func TestRegistry_RemoveFreesSlotForReuse(t *testing.T) {
	t.Parallel()
	r := New()
	id, err := r.Add(&fakeDevice{id: "cam0"})
	require.NoError(t, err)

	require.NoError(t, r.Remove(id))

	again, err := r.Add(&fakeDevice{id: "cam0b"})
	require.NoError(t, err)
	assert.Equal(t, id, again, "freed slot must be reused before any higher slot")
}

func TestRegistry_LookupUnknownReturnsNotFound(t *testing.T) {
	t.Parallel()
	r := New()
	_, err := r.Lookup(104)
	assert.ErrorIs(t, err, ErrNotFound)
}

func TestRegistry_AddRemoveReAddSequencing(t *testing.T) {
	t.Parallel()
	r := New()
	a, err := r.Add(&fakeDevice{id: "a"})
	require.NoError(t, err)
	b, err := r.Add(&fakeDevice{id: "b"})
	require.NoError(t, err)
	assert.EqualValues(t, a+1, b)

	require.NoError(t, r.Remove(a))
	c, err := r.Add(&fakeDevice{id: "c"})
	require.NoError(t, err)
	assert.Equal(t, a, c, "re-add after removal takes the now-free lowest slot")

	dev, err := r.Lookup(c)
	require.NoError(t, err)
	assert.Equal(t, "c", dev.Info().Model)
}

func TestRegistry_ListComponentIDsReflectsAssignmentOrder(t *testing.T) {
	t.Parallel()
	r := New()
	id1, _ := r.Add(&fakeDevice{id: "1"})
	id2, _ := r.Add(&fakeDevice{id: "2"})
	assert.Equal(t, []uint8{id1, id2}, r.ListComponentIDs())
}
