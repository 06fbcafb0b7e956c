// Package lines splits a byte region into lines without copying.
package lines

import (
	"bytes"
	"iter"
)

// All returns an iterator over the lines of data. Every yielded line is a
// subslice of data; no content bytes are copied. Lines are split on '\n',
// a trailing '\r' is trimmed from each line, and a final line without a
// terminator is still yielded. Re-ranging the sequence restarts it from the
// beginning.
func All(data []byte) iter.Seq[[]byte] {
	return func(yield func([]byte) bool) {
		rest := data
		for len(rest) > 0 {
			line := rest
			if i := bytes.IndexByte(rest, '\n'); i >= 0 {
				line = rest[:i]
				rest = rest[i+1:]
			} else {
				rest = nil
			}
			if n := len(line); n > 0 && line[n-1] == '\r' {
				line = line[:n-1]
			}
			if !yield(line) {
				return
			}
		}
	}
}
