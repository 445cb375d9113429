package shindan

import (
	"context"
	"encoding/base64"
)

// Renderer turns a standalone html document into image bytes. It is
// an external capability: lib/htmlshot provides a headless-Chrome
// implementation. Implementations with a single underlying browser
// session are expected to serialize concurrent Render calls
// themselves.
type Renderer interface {
	Render(ctx context.Context, html string) ([]byte, error)
	Close() error
}

// Base64 returns the rendered image encoded as standard base64.
func (r ImageResult) Base64() string {
	return base64.StdEncoding.EncodeToString(r.Image)
}
