package protocol

import (
	"fmt"
	"strconv"
)

const crlf = "\r\n"

// Value is a typed wire response. The set of implementations is closed.
type Value interface {
	value()
}

// SimpleString serializes as +<text>\r\n
type SimpleString string

// Error serializes as -<text>\r\n
type Error string

// Array serializes as *<count>\r\n followed by one bulk string per item
type Array []string

// BulkString is a length-prefixed string. Null is the wire "null" ($-1).
type BulkString struct {
	Text string
	Null bool
}

func (SimpleString) value() {}
func (Error) value()        {}
func (Array) value()        {}
func (BulkString) value()   {}

// Bulk returns a present bulk string
func Bulk(text string) BulkString {
	return BulkString{Text: text}
}

// NullBulk returns the absent bulk string
func NullBulk() BulkString {
	return BulkString{Null: true}
}

// Serialize encodes a value into wire bytes. A nil value encodes as a null bulk string.
func Serialize(v Value) []byte {
	return AppendValue(nil, v)
}

// AppendValue appends the wire form of v to dst and returns the extended slice
func AppendValue(dst []byte, v Value) []byte {
	switch v := v.(type) {
	case nil:
		return append(dst, "$-1"+crlf...)
	case SimpleString:
		dst = append(dst, '+')
		dst = append(dst, v...)
		return append(dst, crlf...)
	case Error:
		dst = append(dst, '-')
		dst = append(dst, v...)
		return append(dst, crlf...)
	case BulkString:
		if v.Null {
			return append(dst, "$-1"+crlf...)
		}
		return appendBulk(dst, v.Text)
	case Array:
		dst = append(dst, '*')
		dst = strconv.AppendInt(dst, int64(len(v)), 10)
		dst = append(dst, crlf...)
		for _, item := range v {
			dst = appendBulk(dst, item)
		}
		return dst
	default:
		panic(fmt.Sprintf("protocol: unknown value type %T", v))
	}
}

func appendBulk(dst []byte, text string) []byte {
	dst = append(dst, '$')
	dst = strconv.AppendInt(dst, int64(len(text)), 10)
	dst = append(dst, crlf...)
	dst = append(dst, text...)
	return append(dst, crlf...)
}
