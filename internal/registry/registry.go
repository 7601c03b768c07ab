package registry

import (
	"errors"
	"sync"

	"github.com/camerarecorder/camera-streaming-daemon/internal/camera"
	"github.com/camerarecorder/camera-streaming-daemon/internal/constants"
)

// ErrOutOfSlots is returned by Add when all six camera component slots
// are occupied.
var ErrOutOfSlots = errors.New("registry: no free camera component slot")

// ErrNotFound is returned by Remove/Lookup for an unknown component ID.
var ErrNotFound = errors.New("registry: component id not found")

// Registry assigns camera.Devices to MAV_COMPONENT IDs. The dispatch
// loop is the sole caller (spec.md's single-consumer concurrency
// model), so Registry itself does not need to be lock-free — the
// mutex here guards against the supplemented hotplug goroutine adding
// or removing devices outside the main dispatch loop (SPEC_FULL.md §4).
type Registry struct {
	mu      sync.Mutex
	slots   [constants.CompIDCameraSlots]camera.Device
	inOrder []uint8 // component IDs in assignment order, for ListComponentIDs
}

// New returns an empty Registry.
func New() *Registry {
	return &Registry{}
}

// Add assigns dev the first free component ID, ascending from
// MAV_COMP_ID_CAMERA. It returns ErrOutOfSlots if all six are occupied.
func (r *Registry) Add(dev camera.Device) (uint8, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	for i := range r.slots {
		if r.slots[i] == nil {
			r.slots[i] = dev
			compID := uint8(constants.CompIDCameraFirst + i)
			r.inOrder = append(r.inOrder, compID)
			return compID, nil
		}
	}
	return 0, ErrOutOfSlots
}

// Remove frees compID's slot, making it available for reassignment.
func (r *Registry) Remove(compID uint8) error {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.slotIndex(compID)
	if !ok || r.slots[idx] == nil {
		return ErrNotFound
	}
	r.slots[idx] = nil
	for i, id := range r.inOrder {
		if id == compID {
			r.inOrder = append(r.inOrder[:i], r.inOrder[i+1:]...)
			break
		}
	}
	return nil
}

// Lookup returns the device assigned to compID.
func (r *Registry) Lookup(compID uint8) (camera.Device, error) {
	r.mu.Lock()
	defer r.mu.Unlock()

	idx, ok := r.slotIndex(compID)
	if !ok || r.slots[idx] == nil {
		return nil, ErrNotFound
	}
	return r.slots[idx], nil
}

// ListComponentIDs returns the currently assigned component IDs in
// assignment order.
func (r *Registry) ListComponentIDs() []uint8 {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]uint8(nil), r.inOrder...)
}

func (r *Registry) slotIndex(compID uint8) (int, bool) {
	if compID < constants.CompIDCameraFirst || compID > constants.CompIDCameraLast {
		return 0, false
	}
	return int(compID) - constants.CompIDCameraFirst, true
}
