package theme

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestGetThemeFallsBackToDracula(t *testing.T) {
	assert.Equal(t, Dracula(), GetTheme("does-not-exist"))
	assert.Equal(t, Nord(), GetTheme(NordName))
}

func TestEveryAvailableThemeResolves(t *testing.T) {
	for _, name := range AvailableThemes() {
		th := GetTheme(name)
		assert.NotEmpty(t, th.Accent, name)
		assert.NotEmpty(t, th.TextFg, name)
	}
}

func TestIsLight(t *testing.T) {
	assert.True(t, IsLight(DefaultLight()))
	assert.False(t, IsLight(DefaultDark()))
	assert.True(t, IsLight(SolarizedLightName))
}
