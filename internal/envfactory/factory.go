package envfactory

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/naton1/taskforge/api/schemas"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

// baseContractNames maps a task category to the base contract template it
// customizes. Categories without a dedicated template fall back to NhEnv.
var baseContractNames = map[schemas.TaskCategory]string{
	schemas.CategoryCombat:      "NhEnv",
	schemas.CategoryPVP:         "NhEnv",
	schemas.CategorySkilling:    "SkillingEnv",
	schemas.CategoryTrading:     "TradingEnv",
	schemas.CategoryQuesting:    "QuestEnv",
	schemas.CategoryExploration: "ExplorationEnv",
}

const defaultBaseContract = "NhEnv"

// Factory creates environment contracts for tasks by customizing base
// contract templates loaded from disk. A missing or empty contracts directory
// is not an error; every category then resolves to the synthesized generic
// contract.
type Factory struct {
	contractsDir string
	base         map[string]*schemas.EnvironmentContract
	log          *zap.Logger
}

// New creates a factory and loads every base contract found in contractsDir.
func New(contractsDir string, logger *zap.Logger) *Factory {
	f := &Factory{
		contractsDir: contractsDir,
		base:         map[string]*schemas.EnvironmentContract{},
		log:          logger.Named("envfactory"),
	}
	f.loadBaseContracts()
	return f
}

func (f *Factory) loadBaseContracts() {
	entries, err := os.ReadDir(f.contractsDir)
	if err != nil {
		f.log.Warn("Contracts directory not readable, starting with no base contracts",
			zap.String("dir", f.contractsDir), zap.Error(err))
		return
	}

	for _, entry := range entries {
		if entry.IsDir() || !strings.HasSuffix(entry.Name(), ".json") {
			continue
		}
		path := filepath.Join(f.contractsDir, entry.Name())
		data, err := os.ReadFile(path)
		if err != nil {
			f.log.Error("Failed to read contract file", zap.String("path", path), zap.Error(err))
			continue
		}
		var contract schemas.EnvironmentContract
		if err := json.Unmarshal(data, &contract); err != nil {
			f.log.Error("Failed to parse contract file", zap.String("path", path), zap.Error(err))
			continue
		}
		name := strings.TrimSuffix(entry.Name(), ".json")
		f.base[name] = &contract
		f.log.Info("Loaded base contract", zap.String("name", name))
	}
}

// ContractForTask builds an environment contract for the task. The base
// template is selected by category; when it was not loaded from disk the
// generic contract is synthesized instead of failing. The returned contract
// is owned by the caller and regenerated fresh on every call.
func (f *Factory) ContractForTask(task *schemas.Task) *schemas.EnvironmentContract {
	baseName, ok := baseContractNames[task.Category]
	if !ok {
		baseName = defaultBaseContract
	}

	base, ok := f.base[baseName]
	if !ok {
		f.log.Warn("No base contract for category, using generic environment",
			zap.String("category", string(task.Category)),
			zap.String("base", baseName))
		return f.genericContract(task)
	}

	contract := base.Clone()
	contract.Name = task.Name + "Env"
	contract.Description = "Environment for task: " + task.Description
	contract.Observations = append(contract.Observations, taskObservations(task)...)
	contract.Actions = append(contract.Actions, taskActions(task)...)
	contract.TaskInfo = schemas.NewTaskInfo(task, false)

	f.log.Info("Created environment contract", zap.String("name", contract.Name))
	return contract
}

// taskObservations derives per-objective progress observations plus the
// skilling extras.
func taskObservations(task *schemas.Task) []schemas.Observation {
	var obs []schemas.Observation
	for i, objective := range task.Objectives {
		obs = append(obs, schemas.Observation{
			Name:        fmt.Sprintf("objective_%d_progress", i),
			Description: "Progress towards: " + objective.Description,
			Type:        schemas.ObservationDiscrete,
			Min:         0,
			Max:         float64(objective.Quantity),
		})
	}

	if task.Category == schemas.CategorySkilling {
		obs = append(obs,
			schemas.Observation{
				Name:        "xp_gained",
				Description: "Experience gained this episode",
				Type:        schemas.ObservationContinuous,
				Min:         0,
				Max:         10000,
			},
			schemas.Observation{
				Name:        "skill_level_progress",
				Description: "Progress towards next skill level",
				Type:        schemas.ObservationContinuous,
				Min:         0,
				Max:         1,
			})
	}
	return obs
}

// taskActions adds the category specific action groups. Only skilling and
// exploration tasks carry extras today.
func taskActions(task *schemas.Task) []schemas.ActionGroup {
	switch task.Category {
	case schemas.CategorySkilling:
		return []schemas.ActionGroup{{
			Name:        "skilling_actions",
			Description: "Actions for skilling tasks",
			Actions: []schemas.Action{
				{Name: "mine", Description: "Mine a resource"},
				{Name: "cut_tree", Description: "Cut down a tree"},
				{Name: "fish", Description: "Catch fish"},
				{Name: "cook", Description: "Cook food"},
				{Name: "craft_item", Description: "Craft an item"},
			},
		}}
	case schemas.CategoryExploration:
		return []schemas.ActionGroup{{
			Name:        "movement_actions",
			Description: "Actions for exploration tasks",
			Actions: []schemas.Action{
				{Name: "move_north", Description: "Move north"},
				{Name: "move_south", Description: "Move south"},
				{Name: "move_east", Description: "Move east"},
				{Name: "move_west", Description: "Move west"},
				{Name: "interact_object", Description: "Interact with object"},
				{Name: "use_teleport", Description: "Use teleportation"},
			},
		}}
	default:
		return nil
	}
}

// genericContract synthesizes the minimal fallback environment used when no
// base contract matches the task's category.
func (f *Factory) genericContract(task *schemas.Task) *schemas.EnvironmentContract {
	return &schemas.EnvironmentContract{
		Name:        task.Name + "Env",
		Description: "Generic environment for task: " + task.Description,
		Observations: []schemas.Observation{
			{
				Name:        "player_position",
				Description: "Player's position in the game world",
				Type:        schemas.ObservationDiscrete,
				Min:         0,
				Max:         4096,
			},
			{
				Name:        "task_progress",
				Description: "Overall task completion progress",
				Type:        schemas.ObservationContinuous,
				Min:         0,
				Max:         1,
			},
		},
		Actions: []schemas.ActionGroup{{
			Name:        "basic_actions",
			Description: "Basic game actions",
			Actions: []schemas.Action{
				{Name: "wait", Description: "Do nothing"},
				{Name: "move", Description: "Move player"},
				{Name: "interact", Description: "Interact with object"},
				{Name: "use_item", Description: "Use an item"},
			},
		}},
		TaskInfo: schemas.NewTaskInfo(task, false),
	}
}

// SaveContract writes a contract into the contracts directory. Persistence is
// a best-effort convenience: failures are logged, never propagated, because
// the in-memory contract is already valid.
func (f *Factory) SaveContract(contract *schemas.EnvironmentContract, filename string) {
	path := filepath.Join(f.contractsDir, filename+".json")
	data, err := json.MarshalIndent(contract, "", "  ")
	if err != nil {
		f.log.Error("Failed to encode contract", zap.String("path", path), zap.Error(err))
		return
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		f.log.Error("Failed to save contract", zap.String("path", path), zap.Error(err))
		return
	}
	f.log.Info("Saved environment contract", zap.String("path", path))
}

// ListContracts returns the names of all loaded base contracts, sorted order
// not guaranteed.
func (f *Factory) ListContracts() []string {
	names := make([]string, 0, len(f.base))
	for name := range f.base {
		names = append(names, name)
	}
	return names
}

// Contract returns a loaded base contract by name, or nil when absent.
func (f *Factory) Contract(name string) *schemas.EnvironmentContract {
	return f.base[name]
}
