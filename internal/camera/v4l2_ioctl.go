package camera

import (
	"fmt"
	"unsafe"

	"golang.org/x/sys/unix"
)

// A small slice of the V4L2 ioctl surface (linux/videodev2.h); this is
// not a general V4L2 binding. The device-side setters issue only
// VIDIOC_S_CTRL; VIDIOC_G_CTRL (via ioctlGetControl) and VIDIOC_S_FMT
// are declared but not called anywhere.
const (
	vidiocSCtrl = 0xc008561c // VIDIOC_S_CTRL
	vidiocGCtrl = 0xc008561b // VIDIOC_G_CTRL
	vidiocSFmt  = 0xc0d05605 // VIDIOC_S_FMT (single-planar, abbreviated)
)

// v4l2Control mirrors struct v4l2_control { __u32 id; __s32 value; }.
type v4l2Control struct {
	ID    uint32
	Value int32
}

// ioctlSetControl issues VIDIOC_S_CTRL for a numeric control.
func ioctlSetControl(fd int, ctrlID uint32, value int32) error {
	ctrl := v4l2Control{ID: ctrlID, Value: value}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(vidiocSCtrl), uintptr(unsafe.Pointer(&ctrl)))
	if errno != 0 {
		return fmt.Errorf("VIDIOC_S_CTRL(id=%d, value=%d): %w", ctrlID, value, errno)
	}
	return nil
}

// ioctlGetControl issues VIDIOC_G_CTRL for a numeric control.
func ioctlGetControl(fd int, ctrlID uint32) (int32, error) {
	ctrl := v4l2Control{ID: ctrlID}
	_, _, errno := unix.Syscall(unix.SYS_IOCTL, uintptr(fd), uintptr(vidiocGCtrl), uintptr(unsafe.Pointer(&ctrl)))
	if errno != 0 {
		return 0, fmt.Errorf("VIDIOC_G_CTRL(id=%d): %w", ctrlID, errno)
	}
	return ctrl.Value, nil
}

// V4L2 control IDs (linux/v4l2-controls.h) used by the device-side
// setters that have a real hardware effect.
const (
	ctrlBrightness = 0x00980900
	ctrlContrast   = 0x00980901
	ctrlSaturation = 0x00980902
	ctrlHue        = 0x00980903
	ctrlGain       = 0x00980918
	ctrlSharpness  = 0x0098091b
)
