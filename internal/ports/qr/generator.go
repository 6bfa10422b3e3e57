package qr

// Generator encodes a URL as a QR code image. Encoding is pure CPU work,
// so there is no context on the call.
type Generator interface {
	// Encode returns a PNG of the given pixel size.
	Encode(url string, size int) ([]byte, error)
}
