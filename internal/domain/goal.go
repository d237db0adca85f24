package domain

// AgeGroup selects a recommended daily intake.
type AgeGroup string

// Supported age groups.
const (
	AgeChild  AgeGroup = "Child (4-8)"
	AgeTeen   AgeGroup = "Teen (9-13)"
	AgeAdult  AgeGroup = "Adult (14-64)"
	AgeSenior AgeGroup = "Senior (65+)"
)

// DefaultAgeGroup is used for new profiles.
const DefaultAgeGroup = AgeAdult

var ageGuidelines = map[AgeGroup]int{
	AgeChild:  1200,
	AgeTeen:   1700,
	AgeAdult:  2200, // middle of 2000-2500
	AgeSenior: 1800, // middle of 1700-2000
}

// AgeGroups returns the supported groups youngest first.
func AgeGroups() []AgeGroup {
	return []AgeGroup{AgeChild, AgeTeen, AgeAdult, AgeSenior}
}

// GoalForAgeGroup returns the recommended daily goal in ml for g.
func GoalForAgeGroup(g AgeGroup) (int, bool) {
	ml, ok := ageGuidelines[g]
	return ml, ok
}

// Progress describes today's intake relative to the goal.
type Progress struct {
	GoalML      int     `json:"goalMl"`
	IntakeML    int     `json:"intakeMl"`
	RemainingML int     `json:"remainingMl"`
	Percent     float64 `json:"percent"`
}

// ComputeProgress derives progress figures. A goal below 1 is treated as 1.
func ComputeProgress(intakeML, goalML int) Progress {
	goal := max(1, goalML)
	return Progress{
		GoalML:      goal,
		IntakeML:    intakeML,
		RemainingML: max(0, goal-intakeML),
		Percent:     float64(intakeML) / float64(goal) * 100,
	}
}

// MotivationalMessage returns the status line shown for a progress percent.
func MotivationalMessage(percent float64) string {
	switch {
	case percent <= 0:
		return "Start with one glass of water!"
	case percent < 50:
		return "Good start! Keep sipping through the day."
	case percent < 75:
		return "Nice! You're more than halfway there."
	case percent < 100:
		return "Almost there! A few more sips to reach your goal."
	case percent < 150:
		return "Goal completed! Great job staying hydrated!"
	default:
		return "Wow, you crossed your goal! Stay balanced."
	}
}

// MascotMood is the mascot's expression.
type MascotMood string

// Mascot moods, in order of progress.
const (
	MoodNeutral     MascotMood = "neutral"
	MoodSmiling     MascotMood = "smiling"
	MoodWaving      MascotMood = "waving"
	MoodCelebrating MascotMood = "celebrating"
)

// Mascot is the mascot state for a progress percent.
type Mascot struct {
	Mood  MascotMood `json:"mood"`
	Emoji string     `json:"emoji"`
	Label string     `json:"label"`
}

// MascotFor picks the mascot state for a progress percent.
func MascotFor(percent float64) Mascot {
	switch {
	case percent < 50:
		return Mascot{MoodNeutral, "😐", "Mascot: Neutral (keep going!)"}
	case percent < 75:
		return Mascot{MoodSmiling, "😊", "Mascot: Smiling (good progress!)"}
	case percent < 100:
		return Mascot{MoodWaving, "👋😄", "Mascot: Waving (almost there!)"}
	default:
		return Mascot{MoodCelebrating, "🎉😄", "Mascot: Celebrating (goal reached!)"}
	}
}
