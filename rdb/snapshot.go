package rdb

import (
	"encoding/binary"
	"fmt"
	"strconv"
	"time"
	"unicode/utf8"
)

// AuxValue is the value of an auxiliary header field: AuxString or AuxInteger
type AuxValue interface {
	fmt.Stringer
	auxValue()
}

// AuxString is a string-encoded auxiliary value
type AuxString string

// AuxInteger is an integer-encoded auxiliary value
type AuxInteger int64

func (AuxString) auxValue()  {}
func (AuxInteger) auxValue() {}

func (s AuxString) String() string  { return string(s) }
func (i AuxInteger) String() string { return strconv.FormatInt(int64(i), 10) }

// Entry is a decoded key/value pair. Aggregate types are flattened into Value.
type Entry struct {
	Key       string
	Value     string
	ExpiresAt time.Time // zero when the entry has no expiry
}

// HasExpiry reports whether the entry carried an expiry opcode
func (e Entry) HasExpiry() bool {
	return !e.ExpiresAt.IsZero()
}

// Snapshot is the decoded content of a snapshot file
type Snapshot struct {
	Version int
	Aux     map[string]AuxValue
	Entries []Entry
}

// Persistent returns the entries without an expiry, in file order
func (s *Snapshot) Persistent() []Entry {
	return s.filter(false)
}

// Expiring returns the entries with an expiry, in file order
func (s *Snapshot) Expiring() []Entry {
	return s.filter(true)
}

func (s *Snapshot) filter(expiring bool) []Entry {
	out := make([]Entry, 0, len(s.Entries))
	for _, e := range s.Entries {
		if e.HasExpiry() == expiring {
			out = append(out, e)
		}
	}
	return out
}

// Parse decodes a complete snapshot. It either returns every entry up to
// the end-of-file opcode or an error; no partial result is returned.
// Trailing checksum bytes are neither consumed nor verified.
func Parse(data []byte) (*Snapshot, error) {
	version, err := parseHeader(data)
	if err != nil {
		return nil, err
	}

	r := NewReader(data)
	r.pos = headerSize

	aux, err := parseAux(r)
	if err != nil {
		return nil, err
	}

	entries, err := parseEntries(r)
	if err != nil {
		return nil, err
	}

	return &Snapshot{Version: version, Aux: aux, Entries: entries}, nil
}

func parseHeader(data []byte) (int, error) {
	if len(data) < headerSize {
		return 0, &DecodeError{Offset: 0, Reason: "input too short to parse rdb version", Err: ErrShortBuffer}
	}
	if string(data[:len(MagicString)]) != MagicString {
		return 0, &DecodeError{Offset: 0, Reason: "magic string is missing", Err: ErrInvalidMagic}
	}

	raw := string(data[len(MagicString):headerSize])
	version, err := strconv.ParseUint(raw, 10, 32)
	if err != nil {
		return 0, &DecodeError{Offset: len(MagicString), Reason: fmt.Sprintf("version %q", raw), Err: ErrInvalidVersion}
	}
	return int(version), nil
}

func parseAux(r *Reader) (map[string]AuxValue, error) {
	aux := make(map[string]AuxValue)
	for {
		b, err := r.Peek()
		if err != nil || b != OpAux {
			return aux, nil
		}
		r.pos++

		keyOffset := r.Pos()
		key, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		if !utf8.Valid(key) {
			return nil, &DecodeError{Offset: keyOffset, Reason: "auxiliary key", Err: ErrInvalidAuxKey}
		}

		next, err := r.Peek()
		if err != nil {
			return nil, err
		}
		if isIntegerMarker(next) {
			v, err := r.ReadInteger()
			if err != nil {
				return nil, err
			}
			aux[string(key)] = AuxInteger(v)
			continue
		}

		v, err := r.ReadString()
		if err != nil {
			return nil, err
		}
		aux[string(key)] = AuxString(v)
	}
}

func parseEntries(r *Reader) ([]Entry, error) {
	var entries []Entry
	for r.Remaining() > 0 {
		op, _ := r.Peek()

		switch op {
		case OpEOF:
			return entries, nil

		case OpSelectDB:
			// opcode + database index
			if err := r.Skip(2); err != nil {
				return nil, err
			}
			if b, err := r.Peek(); err == nil && b == OpResizeDB {
				r.pos++
				// hash table sizes are only used to advance the cursor
				if _, err := r.ReadLength(); err != nil {
					return nil, err
				}
				if _, err := r.ReadLength(); err != nil {
					return nil, err
				}
			}

		case OpExpireTime:
			r.pos++
			b, err := r.Take(4)
			if err != nil {
				return nil, err
			}
			expiresAt := time.Unix(int64(binary.LittleEndian.Uint32(b)), 0)
			entry, err := parsePair(r)
			if err != nil {
				return nil, err
			}
			entry.ExpiresAt = expiresAt
			entries = append(entries, entry)

		case OpExpireTimeMs:
			r.pos++
			b, err := r.Take(8)
			if err != nil {
				return nil, err
			}
			expiresAt := time.UnixMilli(int64(binary.LittleEndian.Uint64(b)))
			entry, err := parsePair(r)
			if err != nil {
				return nil, err
			}
			entry.ExpiresAt = expiresAt
			entries = append(entries, entry)

		default:
			entry, err := parsePair(r)
			if err != nil {
				return nil, err
			}
			entries = append(entries, entry)
		}
	}
	return entries, nil
}

// parsePair reads a type tag, a key and a value shaped by the tag
func parsePair(r *Reader) (Entry, error) {
	tagOffset := r.Pos()
	tag, err := r.ReadByte()
	if err != nil {
		return Entry{}, err
	}

	key, err := r.ReadString()
	if err != nil {
		return Entry{}, err
	}

	value, err := parseValue(r, tag, tagOffset)
	if err != nil {
		return Entry{}, err
	}

	return Entry{Key: string(key), Value: string(value)}, nil
}

func parseValue(r *Reader, tag byte, tagOffset int) ([]byte, error) {
	switch {
	case tag == TypeString:
		return r.ReadString()

	case tag == TypeList, tag == TypeSet:
		return readJoined(r, func(dst []byte) ([]byte, error) {
			elem, err := r.ReadString()
			return append(dst, elem...), err
		})

	case tag == TypeZSet:
		return readJoined(r, func(dst []byte) ([]byte, error) {
			member, err := r.ReadString()
			if err != nil {
				return nil, err
			}
			score, err := r.ReadLength()
			if err != nil {
				return nil, err
			}
			dst = append(dst, member...)
			dst = append(dst, fieldSep)
			return appendInt64LE(dst, int64(score)), nil
		})

	case tag == TypeHash:
		return readJoined(r, func(dst []byte) ([]byte, error) {
			field, err := r.ReadString()
			if err != nil {
				return nil, err
			}
			value, err := r.ReadString()
			if err != nil {
				return nil, err
			}
			dst = append(dst, field...)
			dst = append(dst, fieldSep)
			return append(dst, value...), nil
		})

	case tag >= TypeIntMin && tag <= TypeIntMax:
		v, err := r.ReadInteger()
		if err != nil {
			return nil, err
		}
		return appendInt64LE(nil, v), nil

	case tag == TypeRaw55, tag == TypeRaw250:
		return r.Take(1)

	default:
		return nil, &DecodeError{Offset: tagOffset, Reason: fmt.Sprintf("value type %d", tag), Err: ErrUnknownType}
	}
}

// readJoined reads a length-prefixed element count and joins each element
// appended by readElem with commas.
func readJoined(r *Reader, readElem func(dst []byte) ([]byte, error)) ([]byte, error) {
	count, err := r.ReadLength()
	if err != nil {
		return nil, err
	}

	out := []byte{}
	for i := 0; i < count; i++ {
		if i > 0 {
			out = append(out, elementSep)
		}
		if out, err = readElem(out); err != nil {
			return nil, err
		}
	}
	return out, nil
}
