//go:build !darwin

package config

// defaultCameraDevice returns the default webcam device for this platform.
func defaultCameraDevice() string {
	return "/dev/video0"
}
