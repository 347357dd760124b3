package paths

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMatchBareName(t *testing.T) {
	m := NewMatcher([]string{"lang"})
	assert.True(t, m.Match("lang"))
	assert.True(t, m.Match("minecraft/lang"))
	assert.True(t, m.Match("minecraft/lang/en_us.json"))
	assert.False(t, m.Match("lang.json"))
	assert.False(t, m.Match("language/en.json"))
}

func TestMatchTrailingSlash(t *testing.T) {
	m := NewMatcher([]string{"sounds/"})
	assert.True(t, m.Match("sounds"))
	assert.True(t, m.Match("sounds/step.ogg"))
	assert.True(t, m.Match("minecraft/sounds/step.ogg"))
}

func TestMatchExtension(t *testing.T) {
	m := NewMatcher([]string{"*.ogg"})
	assert.True(t, m.Match("theme.ogg"))
	assert.True(t, m.Match("music/game/theme.ogg"))
	assert.False(t, m.Match("music/theme.ogg.txt"))
	assert.False(t, m.Match("icon.png"))
}

func TestMatchQuestionMark(t *testing.T) {
	m := NewMatcher([]string{"?.bin"})
	assert.True(t, m.Match("a.bin"))
	assert.True(t, m.Match("data/x.bin"))
	assert.False(t, m.Match("ab.bin"))
}

func TestMatchDoublestarPrefix(t *testing.T) {
	m := NewMatcher([]string{"**/*.mcmeta"})
	assert.True(t, m.Match("pack.mcmeta"))
	assert.True(t, m.Match("textures/block/water.png.mcmeta"))
	assert.False(t, m.Match("textures/block/water.png"))
}

func TestMatchDoublestarMiddle(t *testing.T) {
	m := NewMatcher([]string{"textures/**/*.png"})
	assert.True(t, m.Match("textures/block/stone.png"))
	assert.True(t, m.Match("textures/gui.png"))
	assert.False(t, m.Match("icons/block/stone.png"))
	assert.False(t, m.Match("textures/block/stone.jpg"))
}

func TestMatchDoublestarSuffix(t *testing.T) {
	m := NewMatcher([]string{"realms/**"})
	assert.True(t, m.Match("realms"))
	assert.True(t, m.Match("realms/lang/en_us.json"))
	assert.False(t, m.Match("minecraft/realms.json"))
}

func TestMatchDoublestarAlone(t *testing.T) {
	m := NewMatcher([]string{"**"})
	assert.True(t, m.Match("anything"))
	assert.True(t, m.Match("a/b/c"))
}

func TestMatchWholePath(t *testing.T) {
	m := NewMatcher([]string{"icons/*.png"})
	assert.True(t, m.Match("icons/icon_16x16.png"))
	assert.False(t, m.Match("icons/mac/icon.png"))
	assert.False(t, m.Match("other/icons/icon.png"))
}

func TestMatchEmpty(t *testing.T) {
	var nilMatcher *Matcher
	assert.True(t, nilMatcher.Empty())
	assert.False(t, nilMatcher.Match("a"))

	m := NewMatcher([]string{"", "/"})
	assert.True(t, m.Empty())
	assert.False(t, m.Match("a/b/c.png"))
}
