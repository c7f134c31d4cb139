package env

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestGet(t *testing.T) {
	s := &Service{}

	t.Setenv("PAGEPILOT_TEST_KEY", "value")
	assert.Equal(t, "value", s.Get("PAGEPILOT_TEST_KEY", "fallback"))
	assert.Equal(t, "fallback", s.Get("PAGEPILOT_TEST_MISSING", "fallback"))
}

func TestMustGet(t *testing.T) {
	s := &Service{}

	t.Setenv("PAGEPILOT_TEST_KEY", "value")
	v, err := s.MustGet("PAGEPILOT_TEST_KEY")
	require.NoError(t, err)
	assert.Equal(t, "value", v)

	_, err = s.MustGet("PAGEPILOT_TEST_MISSING")
	assert.Error(t, err)
}

func TestGetBool(t *testing.T) {
	s := &Service{}

	cases := map[string]bool{
		"1": true, "true": true, "YES": true, "on": true,
		"0": false, "false": false, "no": false, "OFF": false,
	}
	for raw, want := range cases {
		t.Setenv("PAGEPILOT_TEST_BOOL", raw)
		assert.Equal(t, want, s.GetBool("PAGEPILOT_TEST_BOOL", !want), "raw=%q", raw)
	}

	t.Setenv("PAGEPILOT_TEST_BOOL", "maybe")
	assert.True(t, s.GetBool("PAGEPILOT_TEST_BOOL", true))
	assert.False(t, s.GetBool("PAGEPILOT_TEST_MISSING", false))
}

func TestGetInt(t *testing.T) {
	s := &Service{}

	t.Setenv("PAGEPILOT_TEST_INT", "42")
	assert.Equal(t, 42, s.GetInt("PAGEPILOT_TEST_INT", 7))

	t.Setenv("PAGEPILOT_TEST_INT", "not a number")
	assert.Equal(t, 7, s.GetInt("PAGEPILOT_TEST_INT", 7))

	assert.Equal(t, 7, s.GetInt("PAGEPILOT_TEST_MISSING", 7))
}
