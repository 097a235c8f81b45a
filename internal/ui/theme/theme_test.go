package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestByName(t *testing.T) {
	for _, want := range Available() {
		got, ok := ByName(want.Name)
		assert.True(t, ok, want.Name)
		assert.Equal(t, want.Name, got.Name)
	}

	_, ok := ByName("solarized")
	assert.False(t, ok)
}

func TestNextWrapsAround(t *testing.T) {
	t.Cleanup(func() { SetTheme(Nord) })

	SetTheme(Nord)
	assert.Equal(t, "dracula", Next().Name)

	SetTheme(Catppuccin)
	assert.Equal(t, "nord", Next().Name)
}
