// Package paramstore implements the parameter schema and per-camera
// parameter store described as C1/C2 in spec.md: a closed, bijective
// name<->id<->type registry (Schema) and a per-camera current/supported
// value store (Store) that handlers in internal/server dispatch
// PARAM_EXT_* traffic against.
//
// ParamValue carries the typed scalar in the leading bytes of an
// opaque 128-byte buffer, mirroring the MAVLink PARAM_EXT wire field —
// callers never inspect the buffer directly, only through the typed
// Encode/Decode helpers gated by the schema's declared type.
package paramstore
