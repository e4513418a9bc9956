// Package ocr wraps an external optical-character-recognition engine behind
// a scoped acquire/release contract: callers take an Engine for exactly one
// extraction and must Close it on every path.
package ocr

import (
	"context"
	"errors"
)

var (
	// ErrNoTextFound indicates the image contains no recognizable text.
	ErrNoTextFound = errors.New("ocr: no text found in image")

	// ErrEngineClosed indicates use of an engine after release.
	ErrEngineClosed = errors.New("ocr: engine already released")
)

// Engine is a single-use recognition handle.
type Engine interface {
	// Recognize transcribes the text in the given image bytes.
	Recognize(ctx context.Context, image []byte) (string, error)

	// Close releases the engine. Safe to call more than once.
	Close() error
}

// EngineProvider acquires a fresh Engine per extraction. Engines are never
// held across requests.
type EngineProvider interface {
	Acquire(ctx context.Context) (Engine, error)
}
