package ocr

import "context"

// Engine extracts text from an image. The text is best-effort: it may
// come back empty or garbled, and downstream parsing is expected to
// cope with ordinary OCR noise.
type Engine interface {
	ExtractText(ctx context.Context, image []byte) (string, error)
}
