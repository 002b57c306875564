package postgres

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestNewPool_InvalidDSN(t *testing.T) {
	_, err := NewPool(context.Background(), "postgres://%zz", PoolConfig{MaxConns: 2})
	assert.ErrorContains(t, err, "parse config")
}
