// Package rtsp provides the RTSP URI naming collaborator spec.md §1
// names as an external dependency of the command dispatcher: given a
// server address and a stream, produce the rtsp:// URI a GCS should
// connect to for VIDEO_STREAM_INFORMATION / SET_VIDEO_STREAM_SETTINGS.
//
// Path naming follows the same "deviceN -> camera ID" convention the
// MediaMTX path layer uses, adapted here to a camera.Stream's owning
// device and stream ID instead of a recording/snapshot file path.
package rtsp
