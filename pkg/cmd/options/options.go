package options

import (
	"strconv"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"

	"github.com/Azure/kvsample/pkg/config"
	"github.com/Azure/kvsample/pkg/credential"
	"github.com/Azure/kvsample/pkg/keyvault"
	"github.com/Azure/kvsample/pkg/version"
)

const (
	portFlag           = "port"
	settingsFileFlag   = "settings-file"
	metricsBackendFlag = "metrics-backend"
	vaultDNSSuffixFlag = "vault-dns-suffix"
)

// Options holds the settings shared by the commands that fetch the secret.
// Values come from KVSAMPLE_* environment variables unless the matching
// flag is set.
type Options struct {
	Port           int
	SettingsFile   string
	MetricsBackend string
	VaultDNSSuffix string

	Auth credential.Provider
}

// New returns Options with a credential provider tagged with the kvsample
// application ID.
func New() *Options {
	return &Options{
		Auth: credential.NewProvider(azcore.ClientOptions{
			Telemetry: policy.TelemetryOptions{ApplicationID: version.ApplicationID},
		}),
	}
}

// AddFlags adds the flags used to build a fetcher.
func (o *Options) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&o.SettingsFile, settingsFileFlag, "", "Path to the app settings file holding KeyVault.Name and KeyVault.SecretName (env: KVSAMPLE_SETTINGS_FILE)")
	f.StringVar(&o.VaultDNSSuffix, vaultDNSSuffixFlag, config.DefaultVaultDNSSuffix, "DNS suffix of the Key Vault endpoint (env: KVSAMPLE_VAULT_DNS_SUFFIX)")
	o.Auth.AddFlags(f)
}

// AddServerFlags adds the flags used to run the server.
func (o *Options) AddServerFlags(f *pflag.FlagSet) {
	f.IntVar(&o.Port, portFlag, 8080, "Port for the server to listen on (env: KVSAMPLE_PORT)")
	f.StringVar(&o.MetricsBackend, metricsBackendFlag, "prometheus", "Backend used for metrics (env: KVSAMPLE_METRICS_BACKEND)")
}

// Complete fills the options that were not set on the command line from the
// environment and validates the result.
func (o *Options) Complete(f *pflag.FlagSet) error {
	cfg, err := config.ParseServerConfig()
	if err != nil {
		return err
	}
	if !changed(f, portFlag) {
		o.Port = cfg.Port
	}
	if !changed(f, settingsFileFlag) {
		o.SettingsFile = cfg.SettingsFile
	}
	if !changed(f, metricsBackendFlag) {
		o.MetricsBackend = cfg.MetricsBackend
	}
	if !changed(f, vaultDNSSuffixFlag) {
		o.VaultDNSSuffix = cfg.VaultDNSSuffix
	}

	if o.VaultDNSSuffix == "" {
		return FlagIsRequiredError(vaultDNSSuffixFlag)
	}
	if o.Port <= 0 || o.Port > 65535 {
		return InvalidFlagValueError(portFlag, strconv.Itoa(o.Port))
	}
	return errors.Wrap(o.Auth.Validate(), "invalid auth flags")
}

// NewFetcher builds a SecretFetcher from the options.
func (o *Options) NewFetcher(logger logr.Logger) (*keyvault.SecretFetcher, error) {
	settings, err := config.ParseSettings(o.SettingsFile)
	if err != nil {
		return nil, err
	}
	return keyvault.NewSecretFetcher(settings, o.Auth,
		keyvault.WithVaultDNSSuffix(o.VaultDNSSuffix),
		keyvault.WithLogger(logger),
	)
}

func changed(f *pflag.FlagSet, name string) bool {
	return f != nil && f.Lookup(name) != nil && f.Changed(name)
}
