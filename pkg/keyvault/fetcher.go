package keyvault

import (
	"context"
	"fmt"
	"net/http"
	"net/url"
	"strconv"
	"strings"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/runtime"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
	"github.com/go-logr/logr"
	"github.com/pkg/errors"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/metric"

	"github.com/Azure/kvsample/pkg/config"
	"github.com/Azure/kvsample/pkg/credential"
	"github.com/Azure/kvsample/pkg/version"
)

// latestVersion selects the current version of a secret.
const latestVersion = ""

// SecretFetcher retrieves the configured secret from Key Vault.
// It holds no mutable state and is safe for concurrent use.
type SecretFetcher struct {
	env       config.Source
	settings  config.Source
	resolver  credential.Resolver
	newClient ClientFactory
	dnsSuffix string
	logger    logr.Logger
	meter     metric.Meter
	reporter  *statsReporter
}

// Option configures a SecretFetcher.
type Option func(*SecretFetcher)

// WithEnv sets the source the KeyVaultName override is read from.
func WithEnv(env config.Source) Option {
	return func(f *SecretFetcher) {
		f.env = env
	}
}

// WithVaultDNSSuffix sets the DNS suffix of the vault endpoint.
func WithVaultDNSSuffix(suffix string) Option {
	return func(f *SecretFetcher) {
		f.dnsSuffix = suffix
	}
}

// WithClientFactory replaces the azsecrets client factory.
func WithClientFactory(factory ClientFactory) Option {
	return func(f *SecretFetcher) {
		f.newClient = factory
	}
}

// WithLogger sets the logger.
func WithLogger(logger logr.Logger) Option {
	return func(f *SecretFetcher) {
		f.logger = logger
	}
}

// WithMeter sets the meter fetch metrics are recorded with.
func WithMeter(meter metric.Meter) Option {
	return func(f *SecretFetcher) {
		f.meter = meter
	}
}

// NewSecretFetcher returns a SecretFetcher reading the vault and secret names
// from settings and authenticating with credentials from resolver.
func NewSecretFetcher(settings config.Source, resolver credential.Resolver, opts ...Option) (*SecretFetcher, error) {
	if resolver == nil {
		return nil, errors.New("credential resolver is required")
	}
	f := &SecretFetcher{
		env:       config.Env{},
		settings:  settings,
		resolver:  resolver,
		newClient: NewAzSecretsClient,
		dnsSuffix: config.DefaultVaultDNSSuffix,
		logger:    logr.Discard(),
		meter:     otel.Meter("keyvault"),
	}
	for _, opt := range opts {
		opt(f)
	}

	reporter, err := newStatsReporter(f.meter)
	if err != nil {
		return nil, errors.Wrap(err, "failed to register metrics")
	}
	f.reporter = reporter
	return f, nil
}

// VaultURL returns the endpoint of the named vault.
func VaultURL(vaultName, dnsSuffix string) string {
	return fmt.Sprintf("https://%s.%s/", vaultName, dnsSuffix)
}

// VaultName returns the configured vault name. The KeyVaultName environment
// variable takes precedence over the KeyVault.Name setting.
func (f *SecretFetcher) VaultName() string {
	return config.FirstNonBlank(
		config.Lookup{Source: f.env, Key: config.KeyVaultNameEnvVar},
		config.Lookup{Source: f.settings, Key: config.KeyVaultNameKey},
	)
}

// SecretName returns the configured secret name.
func (f *SecretFetcher) SecretName() string {
	return config.Get(f.settings, config.KeyVaultSecretNameKey)
}

// FetchSecret makes a single attempt to retrieve the configured secret.
// Every failure is reported in the returned Outcome.
func (f *SecretFetcher) FetchSecret(ctx context.Context) (outcome Outcome) {
	start := time.Now()
	vaultURL := VaultURL(f.VaultName(), f.dnsSuffix)
	secretName := f.SecretName()

	defer func() {
		if r := recover(); r != nil {
			outcome = unexpected(errors.Errorf("panic while fetching secret: %v", r))
		}
		f.reporter.report(ctx, outcome, time.Since(start))

		log := f.logger.WithValues("keyvault", vaultURL, "secretName", secretName, "kind", outcome.Kind, "duration", time.Since(start))
		if outcome.Success {
			log.Info("fetched secret")
		} else {
			log.Error(errors.New(outcome.Detail), "failed to fetch secret")
		}
	}()

	cred, err := f.resolver.Resolve()
	if err != nil {
		return classify(errors.Wrap(err, "failed to resolve credential"), vaultURL, vaultHost(vaultURL))
	}

	client, err := f.newClient(vaultURL, cred, clientOptions())
	if err != nil {
		return classify(errors.Wrap(err, "failed to create secrets client"), vaultURL, vaultHost(vaultURL))
	}

	var rawResponse *http.Response
	resp, err := client.GetSecret(runtime.WithCaptureResponse(ctx, &rawResponse), secretName, latestVersion, nil)
	if err != nil {
		return classify(err, vaultURL, vaultHost(vaultURL))
	}
	if resp.Value == nil || (rawResponse != nil && rawResponse.StatusCode >= http.StatusBadRequest) {
		return secretUnavailable(reasonPhrase(rawResponse))
	}
	return retrieved(*resp.Value)
}

// clientOptions returns the azsecrets options for a single attempt.
func clientOptions() *azsecrets.ClientOptions {
	return &azsecrets.ClientOptions{
		ClientOptions: azcore.ClientOptions{
			Retry: policy.RetryOptions{
				MaxRetries: -1,
			},
			Telemetry: policy.TelemetryOptions{
				ApplicationID: version.ApplicationID,
			},
		},
	}
}

// reasonPhrase returns the reason phrase of the response status line.
func reasonPhrase(resp *http.Response) string {
	if resp == nil {
		return ""
	}
	if reason := strings.TrimPrefix(resp.Status, strconv.Itoa(resp.StatusCode)+" "); reason != "" && reason != resp.Status {
		return reason
	}
	return http.StatusText(resp.StatusCode)
}

func vaultHost(vaultURL string) string {
	u, err := url.Parse(vaultURL)
	if err != nil {
		return ""
	}
	return u.Hostname()
}
