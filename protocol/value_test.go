package protocol

import (
	"testing"

	"github.com/sebdah/goldie/v2"
	"github.com/stretchr/testify/assert"
)

func TestSerialize_Golden(t *testing.T) {
	g := goldie.New(t,
		goldie.WithFixtureDir("testdata/golden"),
		goldie.WithNameSuffix(".golden"),
	)

	tests := []struct {
		name  string
		value Value
	}{
		{"simple_string", SimpleString("OK")},
		{"bulk_string", Bulk("hello")},
		{"null_bulk", NullBulk()},
		{"error", Error("ERR boom")},
		{"array", Array{"foo", "bar"}},
		{"empty_array", Array{}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			g.Assert(t, tt.name, Serialize(tt.value))
		})
	}
}

func TestSerialize_EdgeCases(t *testing.T) {
	t.Parallel()

	assert.Equal(t, "$-1\r\n", string(Serialize(nil)))
	assert.Equal(t, "$0\r\n\r\n", string(Serialize(Bulk(""))))
	assert.Equal(t, "*0\r\n", string(Serialize(Array(nil))))
	// length is counted in bytes, not runes
	assert.Equal(t, "$2\r\n\xc3\xa9\r\n", string(Serialize(Bulk("é"))))
	assert.Equal(t, "*1\r\n$0\r\n\r\n", string(Serialize(Array{""})))
}

func TestAppendValue_Appends(t *testing.T) {
	t.Parallel()

	dst := []byte("+PONG\r\n")
	dst = AppendValue(dst, SimpleString("OK"))
	assert.Equal(t, "+PONG\r\n+OK\r\n", string(dst))
}
