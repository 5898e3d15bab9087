package errors

import (
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

const (
	errTest  Code = "test failure"
	errOther Code = "other failure"
)

func TestWrapNil(t *testing.T) {
	assert.NoError(t, Wrap(errTest, nil, "ignored"))
	assert.NoError(t, Wrapf(errTest, nil, "ignored %d", 1))
}

func TestIsMatchesCodeThroughWrapping(t *testing.T) {
	err := Wrap(errTest, fmt.Errorf("dial tcp: refused"), "query rooms")
	wrapped := fmt.Errorf("refresh: %w", err)

	assert.True(t, Is(wrapped, errTest))
	assert.False(t, Is(wrapped, errOther))
	assert.Contains(t, wrapped.Error(), "query rooms")
}

func TestCodeOf(t *testing.T) {
	code, ok := CodeOf(fmt.Errorf("outer: %w", New(errOther, "boom")))
	assert.True(t, ok)
	assert.Equal(t, errOther, code)

	code, ok = CodeOf(errTest)
	assert.True(t, ok)
	assert.Equal(t, errTest, code)

	_, ok = CodeOf(fmt.Errorf("plain"))
	assert.False(t, ok)
}
