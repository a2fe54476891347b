package maplink

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestExtractQueryForm(t *testing.T) {
	lat, lng, ok := Extract("https://maps.google.com/?q=-6.914744,107.609810")
	assert.True(t, ok)
	assert.Equal(t, "-6.914744", lat)
	assert.Equal(t, "107.609810", lng)
}

func TestExtractAtForm(t *testing.T) {
	lat, lng, ok := Extract("https://www.google.com/maps/@-7.257472,112.752090,15z")
	assert.True(t, ok)
	assert.Equal(t, "-7.257472", lat)
	assert.Equal(t, "112.752090", lng)
}

func TestExtractPrefersQueryForm(t *testing.T) {
	// When both shapes appear, the q= pair must win.
	lat, lng, ok := Extract("https://www.google.com/maps/@-7.257472,112.752090,15z?q=-6.914744,107.609810")
	assert.True(t, ok)
	assert.Equal(t, "-6.914744", lat)
	assert.Equal(t, "107.609810", lng)
}

func TestExtractNoMatch(t *testing.T) {
	_, _, ok := Extract("https://maps.google.com/place/Bandung")
	assert.False(t, ok)
}

func TestExtractRequiresDecimalPair(t *testing.T) {
	// Integer-only coordinates do not match either pattern.
	_, _, ok := Extract("https://maps.google.com/?q=-6,107")
	assert.False(t, ok)
}
