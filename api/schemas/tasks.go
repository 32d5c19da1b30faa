package schemas

// -- Task Schemas --

// TaskCategory classifies a task for downstream environment and config selection.
type TaskCategory string

const (
	CategoryCombat      TaskCategory = "combat"
	CategorySkilling    TaskCategory = "skilling"
	CategoryQuesting    TaskCategory = "questing"
	CategoryTrading     TaskCategory = "trading"
	CategoryExploration TaskCategory = "exploration"
	CategoryPVP         TaskCategory = "pvp"
	CategoryUnknown     TaskCategory = "unknown"
)

// AllCategories lists every known category. Useful for exhaustive table tests
// and CLI validation.
var AllCategories = []TaskCategory{
	CategoryCombat,
	CategorySkilling,
	CategoryQuesting,
	CategoryTrading,
	CategoryExploration,
	CategoryPVP,
	CategoryUnknown,
}

// TaskDifficulty is derived from the description during parsing, never supplied
// by the caller.
type TaskDifficulty string

const (
	DifficultyBeginner     TaskDifficulty = "beginner"
	DifficultyIntermediate TaskDifficulty = "intermediate"
	DifficultyAdvanced     TaskDifficulty = "advanced"
	DifficultyExpert       TaskDifficulty = "expert"
)

// TaskObjective is one measurable sub-goal within a task, e.g. "kill 10 goblins".
type TaskObjective struct {
	Description string `json:"description"`
	Target      string `json:"target"`
	Quantity    int    `json:"quantity"`
	Location    string `json:"location,omitempty"`
	Completed   bool   `json:"completed"`
}

// TaskRequirement captures preconditions extracted from the description.
// QuestsCompleted is always empty today: no natural language cue was designed
// for it, so the parser has nothing to fill it with. The field stays so the
// contract snapshot keeps a stable shape.
type TaskRequirement struct {
	SkillLevels     map[string]int `json:"skill_levels"`
	Items           []string       `json:"items"`
	QuestsCompleted []string       `json:"quests_completed"`
	CombatLevel     *int           `json:"combat_level,omitempty"`
}

// Task is the structured form of a natural language task description.
//
// Invariants: Objectives is never empty (a synthetic "general" objective is
// created when extraction finds nothing), and Category/Difficulty are always
// assigned (unknown/beginner fallbacks). A Task is created once by the parser
// and only mutated afterwards to toggle an objective's Completed flag.
type Task struct {
	ID           string          `json:"id"`
	Name         string          `json:"name"`
	Description  string          `json:"description"`
	Category     TaskCategory    `json:"category"`
	Difficulty   TaskDifficulty  `json:"difficulty"`
	Objectives   []TaskObjective `json:"objectives"`
	Requirements TaskRequirement `json:"requirements"`
	// EstimatedDuration is in minutes when set.
	EstimatedDuration *int           `json:"estimated_duration,omitempty"`
	RewardXP          map[string]int `json:"reward_xp"`
	RewardItems       []string       `json:"reward_items"`
}

// IsComplete reports whether every objective has been completed.
func (t *Task) IsComplete() bool {
	for _, obj := range t.Objectives {
		if !obj.Completed {
			return false
		}
	}
	return true
}
