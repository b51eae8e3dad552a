package playback

import "strings"

// Mood is the listening mood selected by the user. It is recorded and
// reported but does not influence track selection.
type Mood int

const (
	MoodNone Mood = iota
	MoodJoyful
	MoodCalm
	MoodEnergetic
	MoodSad
	MoodAngry
	MoodPeaceful
	MoodStressed
	MoodFocused
)

var moodNames = [...]string{
	MoodNone:      "None",
	MoodJoyful:    "Joyful",
	MoodCalm:      "Calm",
	MoodEnergetic: "Energetic",
	MoodSad:       "Sad",
	MoodAngry:     "Angry",
	MoodPeaceful:  "Peaceful",
	MoodStressed:  "Stressed",
	MoodFocused:   "Focused",
}

// Moods lists the selectable moods in display order.
func Moods() []Mood {
	return []Mood{
		MoodJoyful, MoodCalm, MoodEnergetic, MoodSad,
		MoodAngry, MoodPeaceful, MoodStressed, MoodFocused,
	}
}

func (m Mood) String() string {
	if m < 0 || int(m) >= len(moodNames) {
		return "Unknown"
	}
	return moodNames[m]
}

// ParseMood returns the mood with the given name (case-insensitive).
// Unknown names yield MoodNone and false.
func ParseMood(name string) (Mood, bool) {
	for i, n := range moodNames {
		if strings.EqualFold(n, strings.TrimSpace(name)) {
			return Mood(i), true
		}
	}
	return MoodNone, false
}
