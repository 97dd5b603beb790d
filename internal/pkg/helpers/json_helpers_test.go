package helpers

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecodeStrict(t *testing.T) {
	type payload struct {
		Content *string `json:"content,omitempty"`
	}

	var dst payload
	err := DecodeStrict(strings.NewReader(`{"content":"hello"}`), &dst)
	require.NoError(t, err)
	require.NotNil(t, dst.Content)
	assert.Equal(t, "hello", *dst.Content)

	dst = payload{}
	err = DecodeStrict(strings.NewReader(`{"content":"hi","posterId":42}`), &dst)
	assert.Error(t, err)

	dst = payload{}
	err = DecodeStrict(strings.NewReader(`{}`), &dst)
	require.NoError(t, err)
	assert.Nil(t, dst.Content)
}
