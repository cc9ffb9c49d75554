package store

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestErrorInstantiation(t *testing.T) {
	t.Parallel()
	assert.NotNil(t, ErrKeyNotFound, "ErrKeyNotFound must be initialized")
	assert.NotNil(t, ErrInvalidPattern, "ErrInvalidPattern must be initialized")
}

func TestErrKeyNotFound_Message(t *testing.T) {
	t.Parallel()
	assert.Equal(t, "key not found", ErrKeyNotFound.Error(), "ErrKeyNotFound message should match")
}

func TestErrInvalidPattern_Wrapped(t *testing.T) {
	t.Parallel()
	err := fmt.Errorf("%w %q", ErrInvalidPattern, "[")
	assert.True(t, errors.Is(err, ErrInvalidPattern), "ErrInvalidPattern must be identifiable via errors.Is")
}
