package commands

import (
	"bufio"
	"fmt"
	"net"
	"os"
	"time"

	"github.com/himakhaitan/redis-lite/cli/output"
	"github.com/himakhaitan/redis-lite/protocol"
)

const (
	// AddrEnv overrides the server address used by every command
	AddrEnv     = "REDISLITE_ADDR"
	DefaultAddr = "localhost:6379"

	requestTimeout = 10 * time.Second
)

// addrOverride is set from the root --addr flag and wins over AddrEnv
var addrOverride string

// SetServerAddr makes every command connect to addr. An empty addr restores
// the REDISLITE_ADDR / default lookup.
func SetServerAddr(addr string) {
	addrOverride = addr
}

func serverAddr() string {
	if addrOverride != "" {
		return addrOverride
	}
	if addr := os.Getenv(AddrEnv); addr != "" {
		return addr
	}
	return DefaultAddr
}

// send opens a connection, writes one request and reads its reply
func send(args ...string) (protocol.Value, error) {
	conn, err := net.DialTimeout("tcp", serverAddr(), requestTimeout)
	if err != nil {
		return nil, err
	}
	defer conn.Close()

	if err := conn.SetDeadline(time.Now().Add(requestTimeout)); err != nil {
		return nil, err
	}
	if _, err := conn.Write(protocol.EncodeCommand(args...)); err != nil {
		return nil, fmt.Errorf("failed to send request: %w", err)
	}

	reply, err := protocol.ReadReply(bufio.NewReader(conn))
	if err != nil {
		return nil, fmt.Errorf("failed to read reply: %w", err)
	}
	return reply, nil
}

// sendAndPrint runs one request and prints the reply redis-cli style
func sendAndPrint(args ...string) {
	reply, err := send(args...)
	if err != nil {
		output.Error(fmt.Sprintf("Failed to connect to server at %s\n %v", serverAddr(), err))
		return
	}
	output.Reply(reply)
}
