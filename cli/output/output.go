package output

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/himakhaitan/redis-lite/protocol"
)

// ANSI color codes
const (
	reset = "\033[0m"
	bold  = "\033[1m"

	red    = "\033[31m"
	yellow = "\033[33m"
	blue   = "\033[34m"
	green  = "\033[32m"
	cyan   = "\033[36m"
	grey   = "\033[90m"
)

// core printer
func printMessage(title, color, message string) {
	fmt.Fprintf(os.Stdout, "%s%s[%s]%s %s%s%s\n",
		color, bold, title, reset, color, message, reset,
	)
}

// Public functions

func Info(msg string) {
	printMessage("INFO", blue, msg)
}

func Warn(msg string) {
	printMessage("WARN", yellow, msg)
}

func Error(msg string) {
	printMessage("ERROR", red, msg)
}

func Success(msg string) {
	printMessage("SUCCESS", green, msg)
}

func Debug(msg string) {
	printMessage("DEBUG", cyan, msg)
}

func Dim(msg string) {
	fmt.Fprintf(os.Stdout, "%s%s%s\n", grey, msg, reset)
}

// Reply prints a server reply the way redis-cli does
func Reply(v protocol.Value) {
	fmt.Fprint(os.Stdout, FormatReply(v))
}

// FormatReply renders a reply as redis-cli style text with a trailing newline
func FormatReply(v protocol.Value) string {
	switch v := v.(type) {
	case protocol.SimpleString:
		return string(v) + "\n"
	case protocol.Error:
		return fmt.Sprintf("%s(error) %s%s\n", red, string(v), reset)
	case protocol.BulkString:
		if v.Null {
			return "(nil)\n"
		}
		return strconv.Quote(v.Text) + "\n"
	case protocol.Array:
		if len(v) == 0 {
			return "(empty array)\n"
		}
		var b strings.Builder
		width := len(strconv.Itoa(len(v)))
		for i, item := range v {
			fmt.Fprintf(&b, "%*d) %s\n", width, i+1, strconv.Quote(item))
		}
		return b.String()
	default:
		return "(nil)\n"
	}
}
