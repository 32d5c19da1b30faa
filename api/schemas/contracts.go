package schemas

// -- Environment Contract Schemas --

// ObservationType distinguishes discrete from continuous observation spaces.
type ObservationType string

const (
	ObservationDiscrete   ObservationType = "discrete"
	ObservationContinuous ObservationType = "continuous"
)

// Observation describes a single entry in an environment's observation space.
type Observation struct {
	Name        string          `json:"name"`
	Description string          `json:"description,omitempty"`
	Type        ObservationType `json:"type"`
	Min         float64         `json:"min"`
	Max         float64         `json:"max"`
}

// Action is one action an agent can take.
type Action struct {
	Name        string `json:"name"`
	Description string `json:"description,omitempty"`
}

// ActionGroup is a named collection of related actions (movement, combat, ...).
type ActionGroup struct {
	Name        string   `json:"name"`
	Description string   `json:"description,omitempty"`
	Actions     []Action `json:"actions"`
}

// ObjectiveInfo is the snapshot of a task objective embedded in a contract.
type ObjectiveInfo struct {
	Description string `json:"description"`
	Target      string `json:"target"`
	Quantity    int    `json:"quantity"`
	Completed   bool   `json:"completed"`
}

// TaskInfo snapshots the originating task inside a generated contract so the
// training side can inspect it without a second lookup.
type TaskInfo struct {
	Name         string           `json:"name"`
	Category     TaskCategory     `json:"category"`
	Difficulty   TaskDifficulty   `json:"difficulty"`
	Objectives   []ObjectiveInfo  `json:"objectives"`
	Requirements *TaskRequirement `json:"requirements,omitempty"`
}

// EnvironmentContract describes a training environment tailored to a task:
// its observation space, action groups, and reward weighting. Contracts are
// generated fresh per request and never mutated in place; callers own the
// returned value, and persistence to disk is a best-effort convenience.
type EnvironmentContract struct {
	Name            string             `json:"name"`
	Description     string             `json:"description,omitempty"`
	Category        TaskCategory       `json:"category,omitempty"`
	Difficulty      TaskDifficulty     `json:"difficulty,omitempty"`
	Observations    []Observation      `json:"observations"`
	Actions         []ActionGroup      `json:"actions"`
	RewardStructure map[string]float64 `json:"reward_structure,omitempty"`
	TaskInfo        *TaskInfo          `json:"task_info,omitempty"`
}

// Clone returns a deep copy of the contract so per-task customization never
// bleeds into a shared base template.
func (c *EnvironmentContract) Clone() *EnvironmentContract {
	out := &EnvironmentContract{
		Name:        c.Name,
		Description: c.Description,
		Category:    c.Category,
		Difficulty:  c.Difficulty,
	}
	if c.Observations != nil {
		out.Observations = make([]Observation, len(c.Observations))
		copy(out.Observations, c.Observations)
	}
	if c.Actions != nil {
		out.Actions = make([]ActionGroup, len(c.Actions))
		for i, g := range c.Actions {
			cg := g
			cg.Actions = make([]Action, len(g.Actions))
			copy(cg.Actions, g.Actions)
			out.Actions[i] = cg
		}
	}
	if c.RewardStructure != nil {
		out.RewardStructure = make(map[string]float64, len(c.RewardStructure))
		for k, v := range c.RewardStructure {
			out.RewardStructure[k] = v
		}
	}
	if c.TaskInfo != nil {
		ti := *c.TaskInfo
		ti.Objectives = make([]ObjectiveInfo, len(c.TaskInfo.Objectives))
		copy(ti.Objectives, c.TaskInfo.Objectives)
		out.TaskInfo = &ti
	}
	return out
}

// NewTaskInfo builds the contract snapshot for a task.
func NewTaskInfo(task *Task, includeRequirements bool) *TaskInfo {
	info := &TaskInfo{
		Name:       task.Name,
		Category:   task.Category,
		Difficulty: task.Difficulty,
		Objectives: make([]ObjectiveInfo, len(task.Objectives)),
	}
	for i, obj := range task.Objectives {
		info.Objectives[i] = ObjectiveInfo{
			Description: obj.Description,
			Target:      obj.Target,
			Quantity:    obj.Quantity,
			Completed:   obj.Completed,
		}
	}
	if includeRequirements {
		req := task.Requirements
		info.Requirements = &req
	}
	return info
}

// -- Training Preparation Schemas --

// TrainingPrep is the bundle handed to the training launcher: where the
// generated contract lives on disk plus the task-specialized configuration.
type TrainingPrep struct {
	EnvironmentContractPath string         `json:"environment_contract_path"`
	TrainingConfig          TrainingBundle `json:"training_config"`
	TaskName                string         `json:"task_name"`
	TaskCategory            TaskCategory   `json:"task_category"`
}

// TrainingBundle names the derived configuration and carries its full dict form.
type TrainingBundle struct {
	ConfigName string         `json:"config_name"`
	ConfigData map[string]any `json:"config_data"`
}
