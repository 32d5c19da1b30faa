package config

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/spf13/viper"
)

// Config holds the entire application configuration: the ambient sections
// (logger, paths) plus the four training sections that the integrator
// specializes per task.
type Config struct {
	Logger      LoggerConfig      `mapstructure:"logger" yaml:"logger" json:"logger"`
	Paths       PathsConfig       `mapstructure:"paths" yaml:"paths" json:"paths"`
	Agent       AgentConfig       `mapstructure:"agent" yaml:"agent" json:"agent"`
	Environment EnvironmentConfig `mapstructure:"environment" yaml:"environment" json:"environment"`
	Training    TrainingConfig    `mapstructure:"training" yaml:"training" json:"training"`
	Server      ServerConfig      `mapstructure:"server" yaml:"server" json:"server"`
}

// LoggerConfig holds all the configuration for the logger.
type LoggerConfig struct {
	Level       string `mapstructure:"level" yaml:"level"`
	Format      string `mapstructure:"format" yaml:"format"`
	AddSource   bool   `mapstructure:"add_source" yaml:"add_source"`
	ServiceName string `mapstructure:"service_name" yaml:"service_name"`
	LogFile     string `mapstructure:"log_file" yaml:"log_file"`
	MaxSize     int    `mapstructure:"max_size" yaml:"max_size"`
	MaxBackups  int    `mapstructure:"max_backups" yaml:"max_backups"`
	MaxAge      int    `mapstructure:"max_age" yaml:"max_age"`
	Compress    bool   `mapstructure:"compress" yaml:"compress"`
}

// PathsConfig locates the on-disk collaborators: the base environment
// contracts and the named training configuration store.
type PathsConfig struct {
	ContractsDir string `mapstructure:"contracts_dir" yaml:"contracts_dir"`
	ConfigDir    string `mapstructure:"config_dir" yaml:"config_dir"`
}

// AgentConfig holds the RL agent hyperparameters.
type AgentConfig struct {
	ModelName        string  `mapstructure:"model_name" yaml:"model_name" json:"model_name"`
	StackFrames      int     `mapstructure:"stack_frames" yaml:"stack_frames" json:"stack_frames"`
	Deterministic    bool    `mapstructure:"deterministic" yaml:"deterministic" json:"deterministic"`
	LearningRate     float64 `mapstructure:"learning_rate" yaml:"learning_rate" json:"learning_rate"`
	BatchSize        int     `mapstructure:"batch_size" yaml:"batch_size" json:"batch_size"`
	BufferSize       int     `mapstructure:"buffer_size" yaml:"buffer_size" json:"buffer_size"`
	ExplorationNoise float64 `mapstructure:"exploration_noise" yaml:"exploration_noise" json:"exploration_noise"`
}

// EnvironmentConfig holds the environment side of a training run.
type EnvironmentConfig struct {
	EnvironmentName string  `mapstructure:"environment_name" yaml:"environment_name" json:"environment_name"`
	MaxEpisodeSteps int     `mapstructure:"max_episode_steps" yaml:"max_episode_steps" json:"max_episode_steps"`
	RewardScaling   float64 `mapstructure:"reward_scaling" yaml:"reward_scaling" json:"reward_scaling"`
	TimeoutPenalty  float64 `mapstructure:"timeout_penalty" yaml:"timeout_penalty" json:"timeout_penalty"`
	SuccessReward   float64 `mapstructure:"success_reward" yaml:"success_reward" json:"success_reward"`
	StepPenalty     float64 `mapstructure:"step_penalty" yaml:"step_penalty" json:"step_penalty"`
}

// TrainingConfig holds settings for a training session.
type TrainingConfig struct {
	ExperimentName      string `mapstructure:"experiment_name" yaml:"experiment_name" json:"experiment_name"`
	TotalTimesteps      int    `mapstructure:"total_timesteps" yaml:"total_timesteps" json:"total_timesteps"`
	EvalFrequency       int    `mapstructure:"eval_frequency" yaml:"eval_frequency" json:"eval_frequency"`
	CheckpointFrequency int    `mapstructure:"checkpoint_frequency" yaml:"checkpoint_frequency" json:"checkpoint_frequency"`
	NumEvalEpisodes     int    `mapstructure:"num_eval_episodes" yaml:"num_eval_episodes" json:"num_eval_episodes"`
	ParallelEnvs        int    `mapstructure:"parallel_envs" yaml:"parallel_envs" json:"parallel_envs"`
	UseTensorboard      bool   `mapstructure:"use_tensorboard" yaml:"use_tensorboard" json:"use_tensorboard"`
	SaveBestModel       bool   `mapstructure:"save_best_model" yaml:"save_best_model" json:"save_best_model"`
}

// ServerConfig holds connection details for the simulation and API servers
// that the training pipeline talks to. The launcher that actually spawns them
// lives outside this module; the values only ride along inside configs.
type ServerConfig struct {
	SimulationHost    string `mapstructure:"simulation_host" yaml:"simulation_host" json:"simulation_host"`
	SimulationPort    int    `mapstructure:"simulation_port" yaml:"simulation_port" json:"simulation_port"`
	APIHost           string `mapstructure:"api_host" yaml:"api_host" json:"api_host"`
	APIPort           int    `mapstructure:"api_port" yaml:"api_port" json:"api_port"`
	ConnectionTimeout int    `mapstructure:"connection_timeout" yaml:"connection_timeout" json:"connection_timeout"`
}

// NewDefaultConfig creates a configuration populated with default values.
func NewDefaultConfig() *Config {
	v := viper.New()
	SetDefaults(v)

	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		// Cannot happen with the defaults above, but fail loudly if it does.
		panic(fmt.Sprintf("failed to unmarshal default config: %v", err))
	}
	return &cfg
}

// SetDefaults initializes default values on a viper instance.
func SetDefaults(v *viper.Viper) {
	// -- Logger --
	v.SetDefault("logger.level", "info")
	v.SetDefault("logger.format", "console")
	v.SetDefault("logger.add_source", false)
	v.SetDefault("logger.service_name", "taskforge")
	v.SetDefault("logger.log_file", "")
	v.SetDefault("logger.max_size", 100)
	v.SetDefault("logger.max_backups", 5)
	v.SetDefault("logger.max_age", 30)
	v.SetDefault("logger.compress", true)

	// -- Paths --
	v.SetDefault("paths.contracts_dir", filepath.Join("contracts", "environments"))
	v.SetDefault("paths.config_dir", defaultConfigDir())

	// -- Agent --
	v.SetDefault("agent.model_name", "GeneralizedAgent")
	v.SetDefault("agent.stack_frames", 4)
	v.SetDefault("agent.deterministic", false)
	v.SetDefault("agent.learning_rate", 3e-4)
	v.SetDefault("agent.batch_size", 32)
	v.SetDefault("agent.buffer_size", 100000)
	v.SetDefault("agent.exploration_noise", 0.1)

	// -- Environment --
	v.SetDefault("environment.environment_name", "GeneralEnv")
	v.SetDefault("environment.max_episode_steps", 1000)
	v.SetDefault("environment.reward_scaling", 1.0)
	v.SetDefault("environment.timeout_penalty", -10.0)
	v.SetDefault("environment.success_reward", 100.0)
	v.SetDefault("environment.step_penalty", -0.1)

	// -- Training --
	v.SetDefault("training.experiment_name", "experiment")
	v.SetDefault("training.total_timesteps", 1000000)
	v.SetDefault("training.eval_frequency", 10000)
	v.SetDefault("training.checkpoint_frequency", 50000)
	v.SetDefault("training.num_eval_episodes", 10)
	v.SetDefault("training.parallel_envs", 4)
	v.SetDefault("training.use_tensorboard", true)
	v.SetDefault("training.save_best_model", true)

	// -- Server --
	v.SetDefault("server.simulation_host", "localhost")
	v.SetDefault("server.simulation_port", 43594)
	v.SetDefault("server.api_host", "127.0.0.1")
	v.SetDefault("server.api_port", 9999)
	v.SetDefault("server.connection_timeout", 30)
}

// NewConfigFromViper creates a configuration instance from a viper object.
func NewConfigFromViper(v *viper.Viper) (*Config, error) {
	var cfg Config
	if err := v.Unmarshal(&cfg); err != nil {
		return nil, fmt.Errorf("error unmarshaling config: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid configuration: %w", err)
	}
	return &cfg, nil
}

// Validate checks the configuration for sane values.
func (c *Config) Validate() error {
	if c.Agent.LearningRate <= 0 {
		return fmt.Errorf("agent.learning_rate must be positive")
	}
	if c.Agent.BatchSize <= 0 {
		return fmt.Errorf("agent.batch_size must be a positive integer")
	}
	if c.Environment.MaxEpisodeSteps <= 0 {
		return fmt.Errorf("environment.max_episode_steps must be a positive integer")
	}
	if c.Training.TotalTimesteps <= 0 {
		return fmt.Errorf("training.total_timesteps must be a positive integer")
	}
	if c.Training.ParallelEnvs <= 0 {
		return fmt.Errorf("training.parallel_envs must be a positive integer")
	}
	return nil
}

func defaultConfigDir() string {
	home, err := os.UserHomeDir()
	if err != nil {
		return filepath.Join(".taskforge", "config")
	}
	return filepath.Join(home, ".taskforge", "config")
}
