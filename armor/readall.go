package armor

import (
	"fmt"
	"io"
)

// chunkSize is the unit by which ReadAll reads and grows its buffer.
const chunkSize = 64 * 1024

// ReadAll reads r until end of stream and returns everything it read. The
// buffer starts at one chunk and grows linearly by whole chunks, so streams
// of unknown length never require the caller to pre-size anything. The
// returned slice length is exactly the number of bytes read.
func ReadAll(r io.Reader) ([]byte, error) {
	buf := make([]byte, 0, chunkSize)
	for {
		if cap(buf)-len(buf) < chunkSize {
			grown := make([]byte, len(buf), cap(buf)+chunkSize)
			copy(grown, buf)
			buf = grown
		}
		n, err := r.Read(buf[len(buf) : len(buf)+chunkSize])
		buf = buf[:len(buf)+n]
		if err == io.EOF {
			return buf, nil
		}
		if err != nil {
			return nil, fmt.Errorf("armor: reading input: %w", err)
		}
	}
}
