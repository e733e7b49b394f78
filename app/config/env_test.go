package config

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

/*
Env config test cases:
1) GetString existing var
2) GetString missing var → fallback
3) GetString empty value preserved
4) GetInt valid / missing / invalid / negative
5) GetBool valid / invalid → fallback
6) GetDuration valid / invalid → fallback
7) Load without .env (no panic)
*/

func TestGetString(t *testing.T) {
	t.Setenv("TEST_GETSTRING_EXISTING", "test_value")
	assert.Equal(t, "test_value", GetString("TEST_GETSTRING_EXISTING", "fallback"))

	assert.Equal(t, "fallback_value", GetString("TEST_GETSTRING_NONEXISTENT", "fallback_value"))

	// Empty string is a valid value, not a fallback trigger
	t.Setenv("TEST_GETSTRING_EMPTY", "")
	assert.Equal(t, "", GetString("TEST_GETSTRING_EMPTY", "fallback"))
}

func TestGetInt(t *testing.T) {
	t.Setenv("TEST_GETINT_VALID", "42")
	assert.Equal(t, 42, GetInt("TEST_GETINT_VALID", 0))

	assert.Equal(t, 99, GetInt("TEST_GETINT_NONEXISTENT", 99))

	t.Setenv("TEST_GETINT_INVALID", "not_a_number")
	assert.Equal(t, 99, GetInt("TEST_GETINT_INVALID", 99))

	t.Setenv("TEST_GETINT_NEGATIVE", "-10")
	assert.Equal(t, -10, GetInt("TEST_GETINT_NEGATIVE", 0))
}

func TestGetBool(t *testing.T) {
	t.Setenv("TEST_GETBOOL_TRUE", "true")
	assert.True(t, GetBool("TEST_GETBOOL_TRUE", false))

	t.Setenv("TEST_GETBOOL_INVALID", "yes-please")
	assert.True(t, GetBool("TEST_GETBOOL_INVALID", true))

	assert.False(t, GetBool("TEST_GETBOOL_NONEXISTENT", false))
}

func TestGetDuration(t *testing.T) {
	t.Setenv("TEST_GETDURATION_VALID", "90s")
	assert.Equal(t, 90*time.Second, GetDuration("TEST_GETDURATION_VALID", time.Minute))

	t.Setenv("TEST_GETDURATION_INVALID", "ninety seconds")
	assert.Equal(t, time.Minute, GetDuration("TEST_GETDURATION_INVALID", time.Minute))

	assert.Equal(t, time.Hour, GetDuration("TEST_GETDURATION_NONEXISTENT", time.Hour))
}

func TestLoad_WithoutEnvFile(t *testing.T) {
	assert.NotPanics(t, func() {
		Load()
		Load()
	}, "Load() should be safe to call even when .env does not exist")
}
