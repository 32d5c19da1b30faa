package integrator

import (
	stdjson "encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/naton1/taskforge/api/schemas"
	"github.com/naton1/taskforge/internal/configstore"
	"github.com/naton1/taskforge/internal/tasks"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.uber.org/zap"
)

func newTestIntegrator(t *testing.T) (*Integrator, string) {
	t.Helper()
	store, err := configstore.New(t.TempDir(), zap.NewNop())
	require.NoError(t, err)
	contractsDir := t.TempDir()
	return New(store, contractsDir, zap.NewNop()), contractsDir
}

func parseTask(t *testing.T, description string) *schemas.Task {
	t.Helper()
	return tasks.NewParser(zap.NewNop()).Parse(description)
}

func section(t *testing.T, data map[string]any, key string) map[string]any {
	t.Helper()
	m, ok := data[key].(map[string]any)
	require.True(t, ok, "config data must contain section %q", key)
	return m
}

func TestPrepareTraining(t *testing.T) {
	integ, contractsDir := newTestIntegrator(t)
	task := parseTask(t, "Kill 10 goblins in Lumbridge")

	prep := integ.PrepareTraining(task, "default")
	require.NotNil(t, prep)
	assert.Equal(t, task.Name, prep.TaskName)
	assert.Equal(t, schemas.CategoryCombat, prep.TaskCategory)

	// The contract landed where the path says, under the temp_ prefix.
	assert.Equal(t, filepath.Join(contractsDir, "temp_Kill10GoblinsInLumbridgeEnv.json"), prep.EnvironmentContractPath)
	data, err := os.ReadFile(prep.EnvironmentContractPath)
	require.NoError(t, err)
	var contract schemas.EnvironmentContract
	require.NoError(t, stdjson.Unmarshal(data, &contract))
	assert.Equal(t, "Kill10GoblinsInLumbridgeEnv", contract.Name)
	assert.Equal(t, schemas.CategoryCombat, contract.Category)

	// The config bundle carries the task-derived overrides.
	assert.Equal(t, "default_Kill_10_Goblins_In_Lumbridge", prep.TrainingConfig.ConfigName)
	training := section(t, prep.TrainingConfig.ConfigData, "training")
	assert.Equal(t, "Kill_10_Goblins_In_Lumbridge_training", training["experiment_name"])
	env := section(t, prep.TrainingConfig.ConfigData, "environment")
	assert.Equal(t, "Kill10GoblinsInLumbridgeEnv", env["environment_name"])
	assert.EqualValues(t, 1000, env["max_episode_steps"])
	agent := section(t, prep.TrainingConfig.ConfigData, "agent")
	assert.Equal(t, "CombatAgent", agent["model_name"])
}

func TestPrepareTrainingSkillingAdjustments(t *testing.T) {
	integ, _ := newTestIntegrator(t)
	task := parseTask(t, "Mine 50 iron ore")
	require.Equal(t, schemas.CategorySkilling, task.Category)

	prep := integ.PrepareTraining(task, "default")

	training := section(t, prep.TrainingConfig.ConfigData, "training")
	assert.EqualValues(t, 2000000, training["total_timesteps"])
	env := section(t, prep.TrainingConfig.ConfigData, "environment")
	assert.EqualValues(t, -0.05, env["step_penalty"])
	// Skilling multiplier 2.0 with a single objective.
	assert.EqualValues(t, 2000, env["max_episode_steps"])
}

func TestPrepareTrainingExplorationAdjustments(t *testing.T) {
	integ, _ := newTestIntegrator(t)
	task := parseTask(t, "go to varrock")
	require.Equal(t, schemas.CategoryExploration, task.Category)

	prep := integ.PrepareTraining(task, "default")

	agent := section(t, prep.TrainingConfig.ConfigData, "agent")
	assert.EqualValues(t, 0.2, agent["exploration_noise"])
}

func TestEstimateEpisodeSteps(t *testing.T) {
	integ, _ := newTestIntegrator(t)

	testCases := []struct {
		category   schemas.TaskCategory
		objectives int
		want       int
	}{
		{schemas.CategoryCombat, 1, 1000},
		{schemas.CategoryPVP, 1, 1200},
		{schemas.CategorySkilling, 3, 6000},
		{schemas.CategoryExploration, 2, 3000},
		{schemas.CategoryQuesting, 1, 3000},
		{schemas.CategoryTrading, 5, 4000},
		{schemas.CategoryUnknown, 2, 2000},
	}

	for _, tc := range testCases {
		t.Run(string(tc.category), func(t *testing.T) {
			task := &schemas.Task{
				Category:   tc.category,
				Objectives: make([]schemas.TaskObjective, tc.objectives),
			}
			assert.Equal(t, tc.want, integ.estimateEpisodeSteps(task))
		})
	}
}

func TestBuildContractComponents(t *testing.T) {
	integ, _ := newTestIntegrator(t)

	testCases := []struct {
		name        string
		description string
		category    schemas.TaskCategory
		wantObs     string
		wantReward  string
		wantWeight  float64
	}{
		{"combat", "kill 10 goblins", schemas.CategoryCombat, "hitpoints", "kill_enemy", 100.0},
		{"skilling", "mine 50 iron ore", schemas.CategorySkilling, "skill_xp", "level_up", 50.0},
		{"exploration", "go to varrock", schemas.CategoryExploration, "position_x", "reached_destination", 100.0},
		{"generic", "do whatever", schemas.CategoryUnknown, "game_state", "objective_completed", 50.0},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			task := parseTask(t, tc.description)
			require.Equal(t, tc.category, task.Category)

			contract := integ.buildContract(task)
			var obsNames []string
			for _, o := range contract.Observations {
				obsNames = append(obsNames, o.Name)
			}
			assert.Contains(t, obsNames, tc.wantObs)
			assert.Equal(t, tc.wantWeight, contract.RewardStructure[tc.wantReward])

			// The envelope always snapshots the task, requirements included.
			require.NotNil(t, contract.TaskInfo)
			require.NotNil(t, contract.TaskInfo.Requirements)
			assert.Len(t, contract.TaskInfo.Objectives, len(task.Objectives))
		})
	}
}

func TestBuildContractPVPSharesCombatComponents(t *testing.T) {
	integ, _ := newTestIntegrator(t)
	task := &schemas.Task{
		Name:       "Ambush",
		Category:   schemas.CategoryPVP,
		Objectives: []schemas.TaskObjective{{Description: "ambush", Target: "general", Quantity: 1}},
	}

	contract := integ.buildContract(task)
	assert.Equal(t, combatComponents.rewards["kill_enemy"], contract.RewardStructure["kill_enemy"])
	assert.Equal(t, "combat_actions", contract.Actions[0].Name)
}

func TestCleanupTempContracts(t *testing.T) {
	integ, contractsDir := newTestIntegrator(t)

	integ.PrepareTraining(parseTask(t, "kill 10 goblins"), "default")
	integ.PrepareTraining(parseTask(t, "mine 50 iron ore"), "default")

	// A non-temp contract in the same directory must survive cleanup.
	keep := filepath.Join(contractsDir, "NhEnv.json")
	require.NoError(t, os.WriteFile(keep, []byte("{}"), 0o644))

	assert.Equal(t, 2, integ.CleanupTempContracts())
	assert.Equal(t, 0, integ.CleanupTempContracts(), "second cleanup finds nothing")

	_, err := os.Stat(keep)
	assert.NoError(t, err)
	leftovers, err := filepath.Glob(filepath.Join(contractsDir, "temp_*.json"))
	require.NoError(t, err)
	assert.Empty(t, leftovers)
}
