package validator

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIsValidLogin(t *testing.T) {
	t.Parallel()

	valid := []string{"abc", "alice", "user_1", "first.last", strings.Repeat("a", 64)}
	for _, login := range valid {
		assert.True(t, IsValidLogin(login), "login %q", login)
	}

	invalid := []string{"", "ab", strings.Repeat("a", 65), "with space", "semi;colon", "dash-ed"}
	for _, login := range invalid {
		assert.False(t, IsValidLogin(login), "login %q", login)
	}
}

func TestIsValidPassword(t *testing.T) {
	t.Parallel()

	assert.True(t, IsValidPassword("12345678"))
	assert.True(t, IsValidPassword("a much longer passphrase"))
	assert.False(t, IsValidPassword("1234567"))
	assert.False(t, IsValidPassword(""))
}
