package playback

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestMood_String(t *testing.T) {
	assert.Equal(t, "None", MoodNone.String())
	assert.Equal(t, "Joyful", MoodJoyful.String())
	assert.Equal(t, "Focused", MoodFocused.String())
	assert.Equal(t, "Unknown", Mood(42).String())
	assert.Equal(t, "Unknown", Mood(-1).String())
}

func TestMoods_ExcludesNone(t *testing.T) {
	moods := Moods()
	assert.Len(t, moods, 8)
	assert.NotContains(t, moods, MoodNone)
}

func TestParseMood(t *testing.T) {
	m, ok := ParseMood(" energetic ")
	assert.True(t, ok)
	assert.Equal(t, MoodEnergetic, m)

	m, ok = ParseMood("grumpy")
	assert.False(t, ok)
	assert.Equal(t, MoodNone, m)
}
