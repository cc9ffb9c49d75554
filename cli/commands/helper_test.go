package commands

import (
	"bufio"
	"bytes"
	"net"
	"os"
	"testing"

	"github.com/himakhaitan/redis-lite/protocol"
	"github.com/spf13/cobra"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// executeCommand runs the cobra command with given arguments.
// Only cobra errors (arg count, flags) are checked; runtime failures are printed.
func executeCommand(t *testing.T, cmd *cobra.Command, args []string) {
	cmd.SetArgs(args)
	err := cmd.Execute()
	assert.NoError(t, err)
}

func captureOutput(f func()) string {
	var buf bytes.Buffer
	stdout := os.Stdout
	r, w, _ := os.Pipe()
	os.Stdout = w

	f()

	w.Close()
	os.Stdout = stdout
	buf.ReadFrom(r)
	return buf.String()
}

// fakeServer answers a single request with a canned reply and reports the
// request it received. REDISLITE_ADDR points at it for the test's duration.
func fakeServer(t *testing.T, reply string) <-chan protocol.Command {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	t.Cleanup(func() { _ = listener.Close() })
	t.Setenv(AddrEnv, listener.Addr().String())

	requests := make(chan protocol.Command, 1)
	go func() {
		conn, err := listener.Accept()
		if err != nil {
			return
		}
		defer conn.Close()

		frame, err := protocol.ReadFrame(bufio.NewReader(conn))
		if err != nil {
			return
		}
		cmd, err := protocol.Parse(frame)
		if err == nil {
			requests <- cmd
		}
		_, _ = conn.Write([]byte(reply))
	}()
	return requests
}

// unreachable points the commands at a closed port
func unreachable(t *testing.T) {
	listener, err := net.Listen("tcp", "127.0.0.1:0")
	require.NoError(t, err)
	addr := listener.Addr().String()
	require.NoError(t, listener.Close())
	t.Setenv(AddrEnv, addr)
}
