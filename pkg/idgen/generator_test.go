package idgen

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSnowflakeGenerator_Unique(t *testing.T) {
	gen, err := NewSnowflakeGenerator(1)
	require.NoError(t, err)

	seen := make(map[int64]bool)
	for range 1000 {
		id := gen.GenerateID()
		assert.False(t, seen[id], "duplicate id %d", id)
		seen[id] = true
	}
}

func TestSnowflakeGenerator_BadNode(t *testing.T) {
	_, err := NewSnowflakeGenerator(1024)
	assert.Error(t, err)
}

func TestSnowflakeGenerator_RequestID(t *testing.T) {
	gen, err := NewSnowflakeGenerator(1)
	require.NoError(t, err)

	a := gen.RequestID()
	b := gen.RequestID()
	assert.NotEmpty(t, a)
	assert.NotEqual(t, a, b)
}
