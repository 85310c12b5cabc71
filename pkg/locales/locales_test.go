package locales

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMessage(t *testing.T) {
	assert.Contains(t, LimitReached("tr"), "Günlük")
	assert.Contains(t, LimitReached("en"), "daily recipe limit")

	// Unknown language falls back to the default.
	assert.Equal(t, LimitReached("tr"), LimitReached("de"))

	// Unknown key falls back to the key itself.
	assert.Equal(t, "no_such_key", Message("no_such_key", "tr"))

	assert.NotEmpty(t, UsageNotRecorded("en"))
}
