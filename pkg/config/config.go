package config

import (
	"os"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
	"github.com/pkg/errors"
	"gopkg.in/yaml.v2"
)

const (
	// KeyVaultNameKey is the app setting holding the vault name.
	KeyVaultNameKey = "KeyVault.Name"
	// KeyVaultSecretNameKey is the app setting holding the secret name.
	KeyVaultSecretNameKey = "KeyVault.SecretName"
	// KeyVaultNameEnvVar overrides KeyVaultNameKey when set.
	KeyVaultNameEnvVar = "KeyVaultName"

	// DefaultVaultDNSSuffix is the Key Vault DNS suffix for the public cloud.
	DefaultVaultDNSSuffix = "vault.azure.net"

	envPrefix = "kvsample"
)

// Settings holds app settings parsed from a settings file.
type Settings map[string]string

var _ Source = Settings{}

// Lookup implements Source.
func (s Settings) Lookup(key string) (string, bool) {
	v, ok := s[key]
	return v, ok
}

// ParseSettings parses app settings from a yaml file. An empty path yields
// empty settings.
func ParseSettings(settingsFile string) (Settings, error) {
	s := Settings{}
	if settingsFile == "" {
		return s, nil
	}
	bytes, err := os.ReadFile(settingsFile)
	if err != nil {
		return nil, errors.Wrapf(err, "failed to read settings file %s", settingsFile)
	}
	if err = yaml.Unmarshal(bytes, &s); err != nil {
		return nil, errors.Wrap(err, "failed to unmarshal settings")
	}
	return s, nil
}

// ServerConfig holds process configuration read from KVSAMPLE_* variables.
type ServerConfig struct {
	Port           int    `envconfig:"PORT" default:"8080"`
	SettingsFile   string `envconfig:"SETTINGS_FILE"`
	MetricsBackend string `envconfig:"METRICS_BACKEND" default:"prometheus"`
	VaultDNSSuffix string `envconfig:"VAULT_DNS_SUFFIX" default:"vault.azure.net"`
}

// ParseServerConfig reads ServerConfig from the environment.
func ParseServerConfig() (*ServerConfig, error) {
	c := new(ServerConfig)
	if err := envconfig.Process(envPrefix, c); err != nil {
		return nil, errors.Wrap(err, "failed to process environment")
	}
	if err := validateServerConfig(c); err != nil {
		return nil, err
	}
	return c, nil
}

func validateServerConfig(c *ServerConfig) error {
	if c.Port <= 0 || c.Port > 65535 {
		return errors.Errorf("port %d is out of range", c.Port)
	}
	if c.VaultDNSSuffix == "" {
		return errors.New("vault dns suffix is required")
	}
	return nil
}

// LoadDotEnv loads variables from the given .env files into the process
// environment. Missing files are ignored and existing variables are kept.
func LoadDotEnv(files ...string) error {
	for _, f := range files {
		if _, err := os.Stat(f); err != nil {
			continue
		}
		if err := godotenv.Load(f); err != nil {
			return errors.Wrapf(err, "failed to load %s", f)
		}
	}
	return nil
}
