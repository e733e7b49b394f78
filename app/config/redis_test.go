package config

import (
	"context"
	"testing"

	"github.com/alicebob/miniredis/v2"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

/*
Redis config test cases:
1) NewRedisClient success against miniredis, password and db applied
2) NewRedisClient pool defaults when optional env unset
3) NewRedisClient fails when Redis is unreachable
*/

func TestNewRedisClient_Success(t *testing.T) {
	s := miniredis.RunT(t)
	s.RequireAuth("secret")

	cfg := Config{
		RedisAddr:     s.Addr(),
		RedisPassword: "secret",
		RedisDB:       2,
	}

	client, err := NewRedisClient(cfg)
	require.NoError(t, err)
	defer client.Close()

	opts := client.Options()
	assert.Equal(t, 2, opts.DB)
	assert.Equal(t, "secret", opts.Password)
	assert.NoError(t, client.Ping(context.Background()).Err())
}

func TestNewRedisClient_PoolDefaults(t *testing.T) {
	s := miniredis.RunT(t)

	client, err := NewRedisClient(Config{RedisAddr: s.Addr()})
	require.NoError(t, err)
	defer client.Close()

	opts := client.Options()
	assert.Equal(t, 10, opts.PoolSize)
	assert.Equal(t, 2, opts.MinIdleConns)
}

func TestNewRedisClient_Unreachable(t *testing.T) {
	_, err := NewRedisClient(Config{RedisAddr: "127.0.0.1:1"})
	assert.Error(t, err)
}
