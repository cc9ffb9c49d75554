package protocol

import (
	"strconv"
	"strings"
	"unicode/utf8"

	"github.com/samber/lo"
)

// Segment positions inside a split array-of-bulk-strings frame:
// *<n> $<len> NAME $<len> ARG1 $<len> ARG2 ...
const (
	nameIndex   = 2
	arg1Index   = 4
	arg2Index   = 6
	optionIndex = 8
)

// Parse decodes the first array-of-bulk-strings frame in buf into a Command.
// Unrecognized command names decode as Unknown; malformed input returns a *ProtocolError.
func Parse(buf []byte) (Command, error) {
	if !utf8.Valid(buf) {
		return nil, newProtocolError("invalid UTF-8 sequence")
	}

	parts := strings.Split(string(buf), crlf)
	if len(parts) < 4 || !strings.HasPrefix(parts[0], "*") {
		return nil, newProtocolError("invalid RESP format")
	}
	parts = firstFrame(parts)

	name := strings.ToUpper(parts[nameIndex])
	if strings.HasPrefix(name, "CONFIG") {
		if len(parts) < 5 {
			return nil, newProtocolError("invalid CONFIG command format")
		}
		name = name + " " + strings.ToUpper(parts[arg1Index])
	}

	switch name {
	case "PING":
		if len(parts) >= 6 {
			return Ping{Message: lo.ToPtr(parts[arg1Index])}, nil
		}
		return Ping{}, nil

	case "ECHO":
		if len(parts) < 6 {
			return nil, newProtocolError("invalid ECHO command format")
		}
		return Echo{Message: parts[arg1Index]}, nil

	case "GET":
		if len(parts) < 6 {
			if len(parts) < 5 {
				return nil, newProtocolError("invalid GET command format")
			}
			return nil, newProtocolError("invalid GET command format: key not provided")
		}
		return Get{Key: parts[arg1Index]}, nil

	case "SET":
		if len(parts) < 7 {
			if len(parts) < 6 {
				return nil, newProtocolError("invalid SET command format")
			}
			return nil, newProtocolError("invalid SET command format: value not provided")
		}
		return Set{
			Key:     parts[arg1Index],
			Value:   parts[arg2Index],
			Options: parseSetOptions(parts),
		}, nil

	case "CONFIG GET":
		if len(parts) < 7 {
			return nil, newProtocolError("invalid CONFIG GET command format: parameter not provided")
		}
		return ConfigGet{Parameter: parts[arg2Index]}, nil

	case "INFO":
		if len(parts) >= 6 {
			return Info{Section: lo.ToPtr(parts[arg1Index])}, nil
		}
		return Info{}, nil

	case "KEYS":
		if len(parts) < 6 {
			return nil, newProtocolError("invalid KEYS command format")
		}
		return Keys{Pattern: parts[arg1Index]}, nil

	default:
		return Unknown{Command: name}, nil
	}
}

// firstFrame trims segments belonging to pipelined frames after the first one.
// A frame with n elements spans 1+2n segments plus the empty tail after the final CRLF.
func firstFrame(parts []string) []string {
	count, err := strconv.Atoi(parts[0][1:])
	if err != nil || count < 1 {
		return parts
	}
	end := 2*count + 2
	if end >= len(parts) {
		return parts
	}
	parts = parts[:end]
	parts[end-1] = ""
	return parts
}

// parseSetOptions pairs the literal tokens after the SET value.
// Length markers and the empty tail after the final CRLF are dropped; empty
// option values are kept. A trailing unpaired token is ignored.
func parseSetOptions(parts []string) []SetOption {
	if len(parts) <= optionIndex {
		return nil
	}

	rest := parts[optionIndex:]
	if rest[len(rest)-1] == "" {
		rest = rest[:len(rest)-1]
	}

	tokens := lo.Filter(rest, func(s string, _ int) bool {
		return !strings.HasPrefix(s, "$")
	})

	pairs := lo.Filter(lo.Chunk(tokens, 2), func(pair []string, _ int) bool {
		return len(pair) == 2
	})

	return lo.Map(pairs, func(pair []string, _ int) SetOption {
		return SetOption{Name: strings.ToUpper(pair[0]), Value: pair[1]}
	})
}
