// Package escape intercepts in-band control directives embedded in the
// client's input stream before the bytes reach the pty.
//
// Two directives are recognized: the xterm window-resize sequence
// "ESC [ 8 ; rows ; cols t" at the start of a chunk, and embedded NUL
// bytes used by clients as a forced process-rescan trigger.
package escape

import (
	"bytes"
	"strconv"
)

// resizePrefix opens the xterm resize sequence; terminator closes it.
const (
	resizePrefix = "\x1b[8;"
	terminator   = 't'
)

// Resize holds terminal dimensions extracted from an intercepted sequence.
type Resize struct {
	Rows uint16
	Cols uint16
}

// Intercept scans a chunk for a leading resize directive and strips it.
//
// Returns the remaining bytes and the extracted dimensions, if any.
// Malformed numeric fields strip the sequence but yield no resize. A
// sequence whose terminator has not arrived yet passes through untouched:
// reassembly across reads is not attempted.
func Intercept(chunk []byte) ([]byte, *Resize) {
	if !bytes.HasPrefix(chunk, []byte(resizePrefix)) {
		return chunk, nil
	}

	end := bytes.IndexByte(chunk, terminator)
	if end < 0 {
		return chunk, nil
	}

	fields := bytes.Split(chunk[len(resizePrefix):end], []byte{';'})
	rest := chunk[end+1:]
	if len(fields) != 2 {
		return rest, nil
	}

	rows, err := strconv.ParseUint(string(fields[0]), 10, 16)
	if err != nil {
		return rest, nil
	}
	cols, err := strconv.ParseUint(string(fields[1]), 10, 16)
	if err != nil {
		return rest, nil
	}

	return rest, &Resize{Rows: uint16(rows), Cols: uint16(cols)}
}

// StripNUL removes embedded NUL bytes from a chunk, reporting whether any
// were present. NUL never belongs in terminal input; clients send it as a
// forced-rescan trigger.
func StripNUL(chunk []byte) ([]byte, bool) {
	if !bytes.ContainsRune(chunk, 0) {
		return chunk, false
	}

	filtered := make([]byte, 0, len(chunk))
	for _, b := range chunk {
		if b != 0 {
			filtered = append(filtered, b)
		}
	}
	return filtered, true
}
