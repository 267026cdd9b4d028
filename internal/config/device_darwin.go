package config

// defaultCameraDevice returns the default webcam device for this platform.
// On macOS ffmpeg's avfoundation input addresses cameras by index.
func defaultCameraDevice() string {
	return "0"
}
