// Package registry implements the MAV_COMPONENT slot allocator
// (spec.md C7): it assigns each active camera.Device the first free
// component ID in the MAV_COMP_ID_CAMERA..CAMERA6 range (100-105) and
// looks devices back up by that ID when dispatching an incoming
// MAVLink message addressed to them.
package registry
