// Package qr encodes URLs as PNG QR codes.
package qr

import (
	"fmt"

	qrcode "github.com/skip2/go-qrcode"
)

type Encoder struct{}

func NewEncoder() *Encoder {
	return &Encoder{}
}

// Encode returns a size x size PNG. Medium error correction keeps the
// modules coarse enough to scan from a printed label.
func (e *Encoder) Encode(url string, size int) ([]byte, error) {
	png, err := qrcode.Encode(url, qrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("encode qr: %w", err)
	}
	return png, nil
}
