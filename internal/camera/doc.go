// Package camera provides the uniform surface over real and simulated
// video capture devices that the MAVLink camera-component server
// multiplexes onto the wire.
//
// A Device is a polymorphic handle (V4L2Device, GazeboSimDevice, ...)
// exposing capability info, advertised formats, and the parameter
// get/set surface backed by internal/paramstore. Plugins discover
// devices (V4L2 node enumeration, a static simulated feed) and hand
// back a Device by URI. The frame-size Resolver picks a best-fit
// (width, height) out of a device's advertised formats for a
// requested stream resolution.
//
// Nothing in this package talks MAVLink; it is consumed by
// internal/server, which owns the protocol.
package camera
