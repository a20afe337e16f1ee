package bookings

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSignedReference(t *testing.T) {
	ref := SignedReference("1234567890123456789012", "2026-04-01")

	parts := strings.Split(ref, "|")
	require.Len(t, parts, 3)
	assert.Equal(t, "1234567890123456789012", parts[0])
	assert.Equal(t, "2026-04-01", parts[1])
	assert.NotEmpty(t, parts[2])

	// Same inputs, same signature.
	assert.Equal(t, ref, SignedReference("1234567890123456789012", "2026-04-01"))

	// Any change to the payload changes the signature.
	other := SignedReference("1234567890123456789012", "2026-04-02")
	assert.NotEqual(t, strings.Split(other, "|")[2], parts[2])
}
