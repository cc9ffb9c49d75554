package protocol

import (
	"bufio"
	"fmt"
	"io"
	"strconv"
)

// EncodeCommand builds a request frame from command arguments
func EncodeCommand(args ...string) []byte {
	return Serialize(Array(args))
}

// ReadReply decodes one server reply. Integer replies are surfaced as SimpleString
// text and null elements inside arrays become empty strings.
func ReadReply(r *bufio.Reader) (Value, error) {
	line, err := readLine(r)
	if err != nil {
		return nil, err
	}

	switch line[0] {
	case '+', ':':
		return SimpleString(line[1:]), nil
	case '-':
		return Error(line[1:]), nil
	case '$':
		return readBulk(r, line)
	case '*':
		n, err := strconv.Atoi(line[1:])
		if err != nil {
			return nil, newProtocolError(fmt.Sprintf("invalid array length %q", line[1:]))
		}
		if n < 0 {
			return Array(nil), nil
		}
		items := make(Array, 0, n)
		for i := 0; i < n; i++ {
			item, err := ReadReply(r)
			if err != nil {
				return nil, err
			}
			switch item := item.(type) {
			case BulkString:
				items = append(items, item.Text)
			case SimpleString:
				items = append(items, string(item))
			case Error:
				items = append(items, string(item))
			default:
				return nil, ErrNestedArray
			}
		}
		return items, nil
	default:
		return nil, newProtocolError(fmt.Sprintf("unexpected reply type %q", line[0]))
	}
}

func readBulk(r *bufio.Reader, header string) (Value, error) {
	n, err := strconv.Atoi(header[1:])
	if err != nil {
		return nil, newProtocolError(fmt.Sprintf("invalid bulk length %q", header[1:]))
	}
	if n < 0 {
		return NullBulk(), nil
	}
	if n > MaxBulkLength {
		return nil, newProtocolError("invalid bulk length")
	}

	buf := make([]byte, n+len(crlf))
	if _, err := io.ReadFull(r, buf); err != nil {
		return nil, unexpected(err)
	}
	return Bulk(string(buf[:n])), nil
}

func readLine(r *bufio.Reader) (string, error) {
	line, err := r.ReadString('\n')
	if err != nil {
		if line == "" {
			return "", err
		}
		return "", unexpected(err)
	}
	line = string(trimCRLF([]byte(line)))
	if line == "" {
		return "", newProtocolError("empty reply line")
	}
	return line, nil
}
