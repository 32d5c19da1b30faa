package config

import (
	"testing"

	"github.com/spf13/viper"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// -- Constructor and Defaults Tests --

func TestNewDefaultConfig(t *testing.T) {
	cfg := NewDefaultConfig()

	// Verify a few key defaults to ensure the mechanism works.
	assert.Equal(t, "info", cfg.Logger.Level)
	assert.Equal(t, "taskforge", cfg.Logger.ServiceName)
	assert.Equal(t, "GeneralizedAgent", cfg.Agent.ModelName)
	assert.Equal(t, 0.1, cfg.Agent.ExplorationNoise)
	assert.Equal(t, "GeneralEnv", cfg.Environment.EnvironmentName)
	assert.Equal(t, 1000, cfg.Environment.MaxEpisodeSteps)
	assert.Equal(t, -0.1, cfg.Environment.StepPenalty)
	assert.Equal(t, 1000000, cfg.Training.TotalTimesteps)
	assert.Equal(t, "experiment", cfg.Training.ExperimentName)
	assert.Equal(t, 43594, cfg.Server.SimulationPort)
}

// -- Validation Logic Tests --

func TestConfigValidation(t *testing.T) {
	cfg := NewDefaultConfig()
	require.NoError(t, cfg.Validate(), "default config must validate")

	testCases := []struct {
		name    string
		mutate  func(*Config)
		wantErr string
	}{
		{
			name:    "zero learning rate",
			mutate:  func(c *Config) { c.Agent.LearningRate = 0 },
			wantErr: "agent.learning_rate",
		},
		{
			name:    "negative batch size",
			mutate:  func(c *Config) { c.Agent.BatchSize = -1 },
			wantErr: "agent.batch_size",
		},
		{
			name:    "zero episode steps",
			mutate:  func(c *Config) { c.Environment.MaxEpisodeSteps = 0 },
			wantErr: "environment.max_episode_steps",
		},
		{
			name:    "zero timesteps",
			mutate:  func(c *Config) { c.Training.TotalTimesteps = 0 },
			wantErr: "training.total_timesteps",
		},
		{
			name:    "zero parallel envs",
			mutate:  func(c *Config) { c.Training.ParallelEnvs = 0 },
			wantErr: "training.parallel_envs",
		},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			bad := *NewDefaultConfig()
			tc.mutate(&bad)
			err := bad.Validate()
			require.Error(t, err)
			assert.Contains(t, err.Error(), tc.wantErr)
		})
	}
}

// -- Viper Integration Tests --

func TestNewConfigFromViper(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("agent.model_name", "CombatAgent")
	v.Set("environment.max_episode_steps", 6000)

	cfg, err := NewConfigFromViper(v)
	require.NoError(t, err)
	assert.Equal(t, "CombatAgent", cfg.Agent.ModelName)
	assert.Equal(t, 6000, cfg.Environment.MaxEpisodeSteps)
	// Untouched defaults survive the overlay.
	assert.Equal(t, 4, cfg.Agent.StackFrames)
}

func TestNewConfigFromViperRejectsInvalid(t *testing.T) {
	v := viper.New()
	SetDefaults(v)
	v.Set("training.total_timesteps", 0)

	_, err := NewConfigFromViper(v)
	require.Error(t, err)
	assert.Contains(t, err.Error(), "invalid configuration")
}
