package protocol

import (
	"bufio"
	"bytes"
	"errors"
	"io"
	"strconv"
)

// MaxBulkLength bounds a single bulk string inside a request frame (512 MiB)
const MaxBulkLength = 512 * 1024 * 1024

// ReadFrame reads one complete request frame from r, following the *<count> and
// $<len> headers so pipelined or partially delivered requests are split correctly.
//
// Input that does not start a well-formed array is returned as read so that Parse
// can reject it without the connection being dropped. io.EOF is returned only when
// the stream ends on a frame boundary.
func ReadFrame(r *bufio.Reader) ([]byte, error) {
	header, err := r.ReadBytes('\n')
	if err != nil {
		if len(header) == 0 {
			return nil, err
		}
		return nil, unexpected(err)
	}

	if header[0] != '*' {
		return header, nil
	}
	count, err := strconv.Atoi(string(trimCRLF(header[1:])))
	if err != nil || count < 1 {
		return header, nil
	}

	frame := append([]byte(nil), header...)
	for i := 0; i < count; i++ {
		line, err := r.ReadBytes('\n')
		if err != nil {
			return nil, unexpected(err)
		}
		frame = append(frame, line...)

		if line[0] != '$' {
			return frame, nil
		}
		n, err := strconv.Atoi(string(trimCRLF(line[1:])))
		if err != nil || n < 0 {
			return frame, nil
		}
		if n > MaxBulkLength {
			return nil, newProtocolError("invalid bulk length")
		}

		payload := make([]byte, n+len(crlf))
		if _, err := io.ReadFull(r, payload); err != nil {
			return nil, unexpected(err)
		}
		frame = append(frame, payload...)
	}

	return frame, nil
}

func trimCRLF(b []byte) []byte {
	return bytes.TrimRight(b, crlf)
}

func unexpected(err error) error {
	if errors.Is(err, io.EOF) {
		return io.ErrUnexpectedEOF
	}
	return err
}
