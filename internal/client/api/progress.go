package api

import (
	"io"

	"resourcehub/internal/client/models"
)

// progressReader reports bytes consumed by the transport while it reads the
// request body. Totals are measured over the encoded multipart body.
type progressReader struct {
	r        io.Reader
	uploadID string
	chunk    int
	sent     int64
	total    int64
	fn       models.ProgressFunc
}

// newProgressReader returns nil when fn is nil so callers can skip wrapping
// the body entirely.
func newProgressReader(uploadID string, total int64, chunk int, fn models.ProgressFunc) *progressReader {
	if fn == nil {
		return nil
	}
	return &progressReader{uploadID: uploadID, total: total, chunk: chunk, fn: fn}
}

func (p *progressReader) Read(b []byte) (int, error) {
	n, err := p.r.Read(b)
	if n > 0 {
		p.sent += int64(n)
		p.fn(models.UploadProgress{
			UploadID:   p.uploadID,
			BytesSent:  p.sent,
			BytesTotal: p.total,
			ChunkIndex: p.chunk,
		})
	}
	return n, err
}
