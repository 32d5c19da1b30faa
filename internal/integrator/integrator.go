package integrator

import (
	"os"
	"path/filepath"
	"strings"

	jsoniter "github.com/json-iterator/go"
	"github.com/naton1/taskforge/api/schemas"
	"github.com/naton1/taskforge/internal/configstore"
	"go.uber.org/zap"
)

var json = jsoniter.ConfigCompatibleWithStandardLibrary

const baseEpisodeSteps = 1000

// Integrator bridges a parsed task to the training pipeline's inputs: an
// environment contract file on disk plus a task-specialized training
// configuration.
type Integrator struct {
	store        *configstore.Store
	contractsDir string
	log          *zap.Logger
}

// New creates an integrator writing contracts under contractsDir.
func New(store *configstore.Store, contractsDir string, logger *zap.Logger) *Integrator {
	return &Integrator{
		store:        store,
		contractsDir: contractsDir,
		log:          logger.Named("integrator"),
	}
}

// PrepareTraining builds everything the training launcher needs for a task.
// It never fails: disk trouble while persisting the contract is logged and
// leaves the path empty, and a missing base configuration degrades to the
// defaults. The in-memory result is always complete.
func (i *Integrator) PrepareTraining(task *schemas.Task, baseConfigName string) *schemas.TrainingPrep {
	contract := i.buildContract(task)
	contractPath := i.saveTempContract(contract)
	bundle := i.buildTrainingBundle(task, baseConfigName)

	return &schemas.TrainingPrep{
		EnvironmentContractPath: contractPath,
		TrainingConfig:          bundle,
		TaskName:                task.Name,
		TaskCategory:            task.Category,
	}
}

// buildContract assembles the category-specialized training contract: a
// shared envelope plus the fixed component block from the dispatch table.
func (i *Integrator) buildContract(task *schemas.Task) *schemas.EnvironmentContract {
	components := componentsFor(task.Category)

	observations := make([]schemas.Observation, len(components.observations))
	copy(observations, components.observations)
	actions := make([]schemas.ActionGroup, len(components.actions))
	copy(actions, components.actions)
	rewards := make(map[string]float64, len(components.rewards))
	for k, v := range components.rewards {
		rewards[k] = v
	}

	return &schemas.EnvironmentContract{
		Name:            compactName(task.Name) + "Env",
		Description:     "Environment for task: " + task.Description,
		Category:        task.Category,
		Difficulty:      task.Difficulty,
		Observations:    observations,
		Actions:         actions,
		RewardStructure: rewards,
		TaskInfo:        schemas.NewTaskInfo(task, true),
	}
}

// saveTempContract persists the contract as temp_{name}.json under the
// contracts directory, creating it if absent. Returns the file path, or ""
// when the write failed; persistence is never a precondition for preparing
// training. Temp files accumulate until CleanupTempContracts runs.
func (i *Integrator) saveTempContract(contract *schemas.EnvironmentContract) string {
	if err := os.MkdirAll(i.contractsDir, 0o755); err != nil {
		i.log.Error("Failed to create contracts directory",
			zap.String("dir", i.contractsDir), zap.Error(err))
		return ""
	}

	path := filepath.Join(i.contractsDir, "temp_"+contract.Name+".json")
	data, err := json.MarshalIndent(contract, "", "  ")
	if err != nil {
		i.log.Error("Failed to encode contract", zap.String("path", path), zap.Error(err))
		return ""
	}
	if err := os.WriteFile(path, data, 0o644); err != nil {
		i.log.Error("Failed to save temporary contract", zap.String("path", path), zap.Error(err))
		return ""
	}

	i.log.Info("Saved temporary environment contract", zap.String("path", path))
	return path
}

// CleanupTempContracts deletes every temp_*.json this integrator's directory
// holds and reports how many were removed.
func (i *Integrator) CleanupTempContracts() int {
	matches, err := filepath.Glob(filepath.Join(i.contractsDir, "temp_*.json"))
	if err != nil {
		i.log.Error("Failed to scan for temporary contracts", zap.Error(err))
		return 0
	}

	removed := 0
	for _, path := range matches {
		if err := os.Remove(path); err != nil {
			i.log.Error("Failed to remove temporary contract", zap.String("path", path), zap.Error(err))
			continue
		}
		removed++
	}
	if removed > 0 {
		i.log.Info("Removed temporary contracts", zap.Int("count", removed))
	}
	return removed
}

// buildTrainingBundle loads the base configuration and overlays the
// task-derived overrides onto it.
func (i *Integrator) buildTrainingBundle(task *schemas.Task, baseConfigName string) schemas.TrainingBundle {
	// Load is total: a missing or corrupt base degrades to defaults.
	i.store.Load(baseConfigName, configstore.FormatYAML)

	overrides := map[string]any{
		"training": map[string]any{
			"experiment_name": underscoreName(task.Name) + "_training",
		},
		"environment": map[string]any{
			"environment_name":  compactName(task.Name) + "Env",
			"max_episode_steps": i.estimateEpisodeSteps(task),
		},
		"agent": map[string]any{
			"model_name": modelNameFor(task.Category),
		},
	}

	switch task.Category {
	case schemas.CategorySkilling:
		// Skilling grinds need longer runs and gentler step penalties.
		overrides["training"].(map[string]any)["total_timesteps"] = 2000000
		overrides["environment"].(map[string]any)["step_penalty"] = -0.05
	case schemas.CategoryExploration:
		overrides["agent"].(map[string]any)["exploration_noise"] = 0.2
	}

	updated := i.store.Update(baseConfigName, overrides)

	return schemas.TrainingBundle{
		ConfigName: baseConfigName + "_" + underscoreName(task.Name),
		ConfigData: configstore.ToMap(updated),
	}
}

// estimateEpisodeSteps scales a base step count by objective count and the
// category multiplier.
func (i *Integrator) estimateEpisodeSteps(task *schemas.Task) int {
	multiplier, ok := episodeStepMultipliers[task.Category]
	if !ok {
		multiplier = 1.0
	}
	return int(float64(baseEpisodeSteps) * float64(len(task.Objectives)) * multiplier)
}

// modelNameFor derives the agent model name from the category, e.g.
// combat -> CombatAgent.
func modelNameFor(category schemas.TaskCategory) string {
	name := string(category)
	if name == "" {
		return "Agent"
	}
	return strings.ToUpper(name[:1]) + name[1:] + "Agent"
}

func compactName(name string) string {
	return strings.ReplaceAll(name, " ", "")
}

func underscoreName(name string) string {
	return strings.ReplaceAll(name, " ", "_")
}
