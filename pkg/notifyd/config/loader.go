package config

import (
	"fmt"
	"os"
	"regexp"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/tyhdefu/rnotifyd/pkg/notifyd/secrets"
)

// wellKnownSecrets are the config fields the OS keyring is consulted for
// before YAML expansion runs, giving the keyring the highest priority in the
// resolution chain described in the notifier config block.
var wellKnownSecrets = []string{"DISCORD_WEBHOOK_TOKEN", "SLACK_WEBHOOK_URL", "NOTIFYD_STATUS_TOKEN"}

var envVarPattern = regexp.MustCompile(`\$\{([A-Za-z_][A-Za-z0-9_]*)\}`)

// Load reads the job config and notifier config YAML files, expanding
// ${VAR} references against the process environment (populated, in turn, by
// an optional .env file and the OS keyring for the well-known secret
// names), and validates every job id.
func Load(jobPath, notifierPath string) (*Config, *NotifierConfig, error) {
	loadDotEnv()
	applyKeyringOverrides()

	jobData, err := os.ReadFile(jobPath)
	if err != nil {
		return nil, nil, fmt.Errorf("reading job config %s: %w", jobPath, err)
	}
	var cfg Config
	if err := yaml.Unmarshal([]byte(expandEnvVars(string(jobData))), &cfg); err != nil {
		return nil, nil, fmt.Errorf("parsing job config %s: %w", jobPath, err)
	}
	if err := validate(&cfg); err != nil {
		return nil, nil, err
	}

	var notifierCfg NotifierConfig
	if notifierPath != "" {
		notifierData, err := os.ReadFile(notifierPath)
		if err != nil {
			return nil, nil, fmt.Errorf("reading notifier config %s: %w", notifierPath, err)
		}
		if err := yaml.Unmarshal([]byte(expandEnvVars(string(notifierData))), &notifierCfg); err != nil {
			return nil, nil, fmt.Errorf("parsing notifier config %s: %w", notifierPath, err)
		}
	}

	return &cfg, &notifierCfg, nil
}

func validate(cfg *Config) error {
	for id, def := range cfg.Jobs {
		if def.Cmd == "" {
			return fmt.Errorf("job %q: cmd must not be empty", id)
		}
	}
	return nil
}

// loadDotEnv loads a .env file from the working directory, if present.
// godotenv.Load never overwrites a variable already set in the process
// environment.
func loadDotEnv() {
	_ = godotenv.Load(".env")
}

// applyKeyringOverrides gives the OS keyring priority over whatever is
// already in the environment for the well-known secret names.
func applyKeyringOverrides() {
	for _, name := range wellKnownSecrets {
		if val := secrets.GetKeyring(name); val != "" {
			os.Setenv(name, val)
		}
	}
}

// expandEnvVars replaces ${VAR} references with the named environment
// variable's value, or the empty string if unset.
func expandEnvVars(input string) string {
	return envVarPattern.ReplaceAllStringFunc(input, func(match string) string {
		name := envVarPattern.FindStringSubmatch(match)[1]
		return os.Getenv(name)
	})
}
