package engine

import "strings"

type Category string

const (
	CategoryPhysical     Category = "Physical"
	CategoryIntellect    Category = "Intellect"
	CategoryHealth       Category = "Health"
	CategoryProfessional Category = "Professional"
)

// Categories lists all categories in priority order. Ties in the
// specialization resolver break toward the earlier entry.
var Categories = []Category{
	CategoryPhysical,
	CategoryIntellect,
	CategoryHealth,
	CategoryProfessional,
}

func (c Category) IsValid() bool {
	switch c {
	case CategoryPhysical, CategoryIntellect, CategoryHealth, CategoryProfessional:
		return true
	default:
		return false
	}
}

// ParseCategory parses user input to a Category.
func ParseCategory(input string) (Category, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "physical", "phys", "body":
		return CategoryPhysical, true
	case "intellect", "int", "mind":
		return CategoryIntellect, true
	case "health", "vit":
		return CategoryHealth, true
	case "professional", "prof", "career", "work":
		return CategoryProfessional, true
	default:
		return "", false
	}
}

type TaskType string

const (
	TaskBasic     TaskType = "Basic"
	TaskConstant  TaskType = "Constant"
	TaskTemporary TaskType = "Temporary"
	TaskNegative  TaskType = "Negative"
)

func (t TaskType) IsValid() bool {
	switch t {
	case TaskBasic, TaskConstant, TaskTemporary, TaskNegative:
		return true
	default:
		return false
	}
}

type Difficulty string

const (
	DifficultyEasy   Difficulty = "Easy"
	DifficultyMedium Difficulty = "Medium"
	DifficultyHard   Difficulty = "Hard"
	DifficultyEpic   Difficulty = "Epic"
)

func (d Difficulty) IsValid() bool {
	switch d {
	case DifficultyEasy, DifficultyMedium, DifficultyHard, DifficultyEpic:
		return true
	default:
		return false
	}
}

func ParseDifficulty(input string) (Difficulty, bool) {
	switch strings.TrimSpace(strings.ToLower(input)) {
	case "easy":
		return DifficultyEasy, true
	case "medium", "med":
		return DifficultyMedium, true
	case "hard":
		return DifficultyHard, true
	case "epic":
		return DifficultyEpic, true
	default:
		return "", false
	}
}

const (
	// XPPerTask is the flat reward for a completion with no difficulty set.
	XPPerTask = 10

	// XPToLevelUp is the XP span of one level.
	XPToLevelUp = 100

	// DefaultPenalty applies to Negative completions without an override.
	DefaultPenalty = 15

	// CategoryReward / CategoryPenalty are the per-event attribute deltas.
	CategoryReward  = 5
	CategoryPenalty = 5
)

// XPRates maps difficulty to the XP awarded per completion.
var XPRates = map[Difficulty]int{
	DifficultyEasy:   5,
	DifficultyMedium: 10,
	DifficultyHard:   25,
	DifficultyEpic:   50,
}

// XPForDifficulty returns the reward for a completion, falling back to the
// flat rate when no difficulty is set.
func XPForDifficulty(d Difficulty) int {
	if xp, ok := XPRates[d]; ok {
		return xp
	}
	return XPPerTask
}
