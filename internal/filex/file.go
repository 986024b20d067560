// Package filex contains small file and chunk-arithmetic helpers shared by
// the upload client and the CLI.
package filex

import (
	"fmt"
	"os"
	"path/filepath"
)

// NumChunks returns how many fixed-size chunks are needed to cover size
// bytes. A zero-byte file still occupies one chunk so the session always has
// at least one part to acknowledge.
func NumChunks(size, chunkSize int64) int {
	if chunkSize <= 0 {
		return 0
	}
	if size <= 0 {
		return 1
	}
	n := size / chunkSize
	if size%chunkSize != 0 {
		n++
	}
	return int(n)
}

// ChunkRange returns the byte offset and length of chunk index within a file
// of the given size.
func ChunkRange(index int, size, chunkSize int64) (offset, length int64) {
	offset = int64(index) * chunkSize
	length = chunkSize
	if offset+length > size {
		length = size - offset
	}
	if length < 0 {
		length = 0
	}
	return offset, length
}

// EnsureParentDir creates the directory that should contain path, so files
// like the local cache can be opened on first run.
func EnsureParentDir(path string) error {
	dir := filepath.Dir(path)
	if dir == "" || dir == "." {
		return nil
	}
	if err := os.MkdirAll(dir, 0o770); err != nil {
		return fmt.Errorf("mkdir %s: %w", dir, err)
	}
	return nil
}

// HumanBytes renders a byte count the way the backend does in listings,
// e.g. "1.5 MB".
func HumanBytes(n int64) string {
	const unit = 1024
	if n < unit {
		return fmt.Sprintf("%d B", n)
	}
	div, exp := int64(unit), 0
	for m := n / unit; m >= unit; m /= unit {
		div *= unit
		exp++
	}
	return fmt.Sprintf("%.1f %cB", float64(n)/float64(div), "KMGTPE"[exp])
}
