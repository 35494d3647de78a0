// Package fonts provides the font used to measure and draw block labels.
//
// Block labels are disassembly or IR lines, so a monospaced face is used.
// The Go Mono TTF ships with golang.org/x/image and is compiled into the
// binary, which keeps measurement identical on every machine. The same bytes
// are embedded into SVG output so browsers draw labels with the face they
// were measured with.
package fonts

import (
	"encoding/base64"
	"sync"

	"github.com/gogpu/gg/text"
	"golang.org/x/image/font/gofont/gomono"
)

// FontFamily is the CSS font-family name used in SVG output.
const FontFamily = "Go Mono"

// FallbackFontFamily provides fallback fonts for viewers that ignore the
// embedded face.
const FallbackFontFamily = `'Go Mono', 'DejaVu Sans Mono', Menlo, Consolas, monospace`

// DefaultSize is the default label size in pixels.
const DefaultSize = 12.0

// MonoTTF returns the TTF font data.
func MonoTTF() []byte {
	return gomono.TTF
}

var (
	ttfBase64     string
	ttfBase64Once sync.Once

	source     *text.FontSource
	sourceErr  error
	sourceOnce sync.Once
)

// MonoTTFBase64 returns the TTF data as a base64 string.
// The result is cached after first computation.
func MonoTTFBase64() string {
	ttfBase64Once.Do(func() {
		ttfBase64 = base64.StdEncoding.EncodeToString(gomono.TTF)
	})
	return ttfBase64
}

// Source returns the shared parsed font source. Parsing happens once.
func Source() (*text.FontSource, error) {
	sourceOnce.Do(func() {
		source, sourceErr = text.NewFontSource(gomono.TTF)
	})
	return source, sourceErr
}

// Face returns a face of the given pixel size.
func Face(size float64) (text.Face, error) {
	src, err := Source()
	if err != nil {
		return nil, err
	}
	if size <= 0 {
		size = DefaultSize
	}
	return src.Face(size), nil
}
