package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBandOf(t *testing.T) {
	assert.Equal(t, BandWeak, BandOf(0))
	assert.Equal(t, BandWeak, BandOf(4.9))
	assert.Equal(t, BandFair, BandOf(5))
	assert.Equal(t, BandFair, BandOf(6.9))
	assert.Equal(t, BandStrong, BandOf(7))
	assert.Equal(t, BandStrong, BandOf(10))

	assert.Equal(t, Success, BandStrong.Color())
	assert.Equal(t, Warning, BandFair.Color())
	assert.Equal(t, Error, BandWeak.Color())
}

func TestPercentStyle(t *testing.T) {
	assert.Equal(t, Success, PercentStyle(70).GetForeground())
	assert.Equal(t, Error, PercentStyle(49).GetForeground())
	assert.True(t, ScoreStyle(8).GetBold())
}
