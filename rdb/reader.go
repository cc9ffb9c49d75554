package rdb

import "fmt"

// Reader is a bounds-checked forward cursor over a snapshot buffer.
// Every failure is reported as a *DecodeError carrying the cursor offset.
type Reader struct {
	data []byte
	pos  int
}

// NewReader creates a Reader positioned at the start of data
func NewReader(data []byte) *Reader {
	return &Reader{data: data}
}

// Pos returns the current offset
func (r *Reader) Pos() int {
	return r.pos
}

// Remaining returns the number of unread bytes
func (r *Reader) Remaining() int {
	return len(r.data) - r.pos
}

// Peek returns the next byte without consuming it
func (r *Reader) Peek() (byte, error) {
	if r.Remaining() < 1 {
		return 0, r.fail("unexpected end of data", ErrShortBuffer)
	}
	return r.data[r.pos], nil
}

// ReadByte consumes one byte
func (r *Reader) ReadByte() (byte, error) {
	b, err := r.Peek()
	if err != nil {
		return 0, err
	}
	r.pos++
	return b, nil
}

// Take consumes exactly n bytes. The returned slice aliases the buffer.
func (r *Reader) Take(n int) ([]byte, error) {
	if n < 0 || r.Remaining() < n {
		return nil, r.fail(fmt.Sprintf("need %d bytes, have %d", n, r.Remaining()), ErrShortBuffer)
	}
	b := r.data[r.pos : r.pos+n]
	r.pos += n
	return b, nil
}

// Skip discards exactly n bytes
func (r *Reader) Skip(n int) error {
	_, err := r.Take(n)
	return err
}

// ReadLength consumes a length prefix
func (r *Reader) ReadLength() (int, error) {
	n, length, err := DecodeLength(r.data[r.pos:])
	if err != nil {
		return 0, r.fail("decoding length", err)
	}
	r.pos += n
	return length, nil
}

// ReadInteger consumes an integer-encoded value
func (r *Reader) ReadInteger() (int64, error) {
	n, v, err := DecodeInteger(r.data[r.pos:])
	if err != nil {
		return 0, r.fail("decoding integer", err)
	}
	r.pos += n
	return v, nil
}

// ReadString consumes a length-prefixed byte string
func (r *Reader) ReadString() ([]byte, error) {
	n, s, err := DecodeString(r.data[r.pos:])
	if err != nil {
		return nil, r.fail("decoding string", err)
	}
	r.pos += n
	return s, nil
}

func (r *Reader) fail(reason string, err error) error {
	return &DecodeError{Offset: r.pos, Reason: reason, Err: err}
}
