package protocol

import (
	"bufio"
	"io"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReadFrame_SplitsPipelinedRequests(t *testing.T) {
	t.Parallel()

	r := bufio.NewReader(strings.NewReader(
		"*1\r\n$4\r\nPING\r\n" +
			"*3\r\n$3\r\nSET\r\n$3\r\nfoo\r\n$3\r\nbar\r\n" +
			"*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n",
	))

	frame, err := ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, "*1\r\n$4\r\nPING\r\n", string(frame))

	frame, err = ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, "*3\r\n$3\r\nSET\r\n$3\r\nfoo\r\n$3\r\nbar\r\n", string(frame))

	frame, err = ReadFrame(r)
	require.NoError(t, err)
	assert.Equal(t, "*2\r\n$3\r\nGET\r\n$3\r\nfoo\r\n", string(frame))

	_, err = ReadFrame(r)
	assert.ErrorIs(t, err, io.EOF)
}

func TestReadFrame_BinarySafePayload(t *testing.T) {
	t.Parallel()

	// payload contains an embedded CRLF
	input := "*2\r\n$4\r\nECHO\r\n$4\r\na\r\nb\r\n"
	frame, err := ReadFrame(bufio.NewReader(strings.NewReader(input)))
	require.NoError(t, err)
	assert.Equal(t, input, string(frame))
}

func TestReadFrame_MalformedHeadersReturnedRaw(t *testing.T) {
	t.Parallel()

	t.Run("Inline", func(t *testing.T) {
		frame, err := ReadFrame(bufio.NewReader(strings.NewReader("PING\r\n")))
		require.NoError(t, err)
		assert.Equal(t, "PING\r\n", string(frame))
	})

	t.Run("Bad count", func(t *testing.T) {
		frame, err := ReadFrame(bufio.NewReader(strings.NewReader("*x\r\n")))
		require.NoError(t, err)
		assert.Equal(t, "*x\r\n", string(frame))
	})

	t.Run("Element without length marker", func(t *testing.T) {
		frame, err := ReadFrame(bufio.NewReader(strings.NewReader("*1\r\nPING\r\n")))
		require.NoError(t, err)
		assert.Equal(t, "*1\r\nPING\r\n", string(frame))
	})
}

func TestReadFrame_Truncated(t *testing.T) {
	t.Parallel()

	_, err := ReadFrame(bufio.NewReader(strings.NewReader("*2\r\n$4\r\nECHO\r\n$5\r\nhe")))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)

	_, err = ReadFrame(bufio.NewReader(strings.NewReader("*1")))
	assert.ErrorIs(t, err, io.ErrUnexpectedEOF)
}

func TestReadFrame_OversizedBulk(t *testing.T) {
	t.Parallel()

	_, err := ReadFrame(bufio.NewReader(strings.NewReader("*1\r\n$999999999999\r\n")))
	require.Error(t, err)
	assert.ErrorIs(t, err, ErrProtocol)
}

func TestReadFrame_FeedsParse(t *testing.T) {
	t.Parallel()

	r := bufio.NewReader(strings.NewReader("*2\r\n$4\r\nKEYS\r\n$3\r\nf*o\r\n"))
	frame, err := ReadFrame(r)
	require.NoError(t, err)

	cmd, err := Parse(frame)
	require.NoError(t, err)
	assert.Equal(t, Keys{Pattern: "f*o"}, cmd)
}
