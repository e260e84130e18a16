package qrcode

import (
	"fmt"

	goqrcode "github.com/skip2/go-qrcode"
)

// DefaultSize is the edge length in pixels of rendered codes.
const DefaultSize = 256

// RenderPNG encodes payload as a QR code PNG of size x size pixels. Folder
// payloads can be long, so medium error correction is used to keep the
// symbol scannable.
func RenderPNG(payload string, size int) ([]byte, error) {
	if payload == "" {
		return nil, fmt.Errorf("qr payload is empty")
	}
	if size <= 0 {
		size = DefaultSize
	}
	png, err := goqrcode.Encode(payload, goqrcode.Medium, size)
	if err != nil {
		return nil, fmt.Errorf("rendering qr code: %w", err)
	}
	return png, nil
}

// RenderTerminal returns the payload as a block-character QR code for
// printing to a terminal.
func RenderTerminal(payload string) (string, error) {
	if payload == "" {
		return "", fmt.Errorf("qr payload is empty")
	}
	q, err := goqrcode.New(payload, goqrcode.Low)
	if err != nil {
		return "", fmt.Errorf("rendering qr code: %w", err)
	}
	return q.ToSmallString(false), nil
}
