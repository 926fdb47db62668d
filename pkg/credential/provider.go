package credential

import (
	"fmt"
	"os"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/google/uuid"
	"github.com/pkg/errors"
	"github.com/spf13/pflag"
)

// Resolver resolves a token credential.
type Resolver interface {
	Resolve() (azcore.TokenCredential, error)
}

// Provider is a Resolver configured from command line flags.
type Provider interface {
	Resolver
	AddFlags(f *pflag.FlagSet)
	Validate() error
}

// authArgs is an implementation of the Provider interface
type authArgs struct {
	authMethod    string
	rawClientID   string
	tenantID      string
	authorityHost string
	tokenFile     string

	clientOptions azcore.ClientOptions
}

// NewProvider returns a new Provider. The client options are passed to every
// azidentity credential it builds.
func NewProvider(clientOptions azcore.ClientOptions) Provider {
	return &authArgs{
		authMethod:    DefaultAuthMethod,
		clientOptions: clientOptions,
	}
}

// AddFlags adds the flags for this package to the specified FlagSet
func (a *authArgs) AddFlags(f *pflag.FlagSet) {
	f.StringVar(&a.authMethod, "auth-method", DefaultAuthMethod, fmt.Sprintf("auth method to use. Supported values: %s", strings.Join(authMethods, ", ")))
	f.StringVar(&a.rawClientID, "client-id", "", "client id of the identity (used with --auth-method=[workload_identity|managed_identity]). Defaults to "+AzureClientIDEnvVar)
	f.StringVar(&a.tenantID, "tenant-id", "", "tenant id (used with --auth-method=workload_identity). Defaults to "+AzureTenantIDEnvVar)
	f.StringVar(&a.authorityHost, "authority-host", "", "Microsoft Entra authority host (used with --auth-method=workload_identity). Defaults to "+AzureAuthorityHostEnvVar)
	f.StringVar(&a.tokenFile, "federated-token-file", "", "path to the federated token file (used with --auth-method=workload_identity). Defaults to "+AzureFederatedTokenFileEnvVar)
}

// Validate validates the authArgs and fills unset values from the environment.
func (a *authArgs) Validate() error {
	if a.authMethod == "" {
		return errors.New("--auth-method is a required parameter")
	}
	if !isSupportedAuthMethod(a.authMethod) {
		return errors.Errorf("unsupported --auth-method %q. Supported values: %s", a.authMethod, strings.Join(authMethods, ", "))
	}

	a.rawClientID = valueOrEnv(a.rawClientID, AzureClientIDEnvVar)
	a.tenantID = valueOrEnv(a.tenantID, AzureTenantIDEnvVar)
	a.authorityHost = valueOrEnv(a.authorityHost, AzureAuthorityHostEnvVar)
	a.tokenFile = valueOrEnv(a.tokenFile, AzureFederatedTokenFileEnvVar)
	if a.authorityHost == "" {
		a.authorityHost = DefaultAuthorityHost
	}

	if a.rawClientID != "" {
		if _, err := uuid.Parse(a.rawClientID); err != nil {
			return errors.Wrap(err, "parsing --client-id")
		}
	}

	if a.authMethod == WorkloadIdentityAuthMethod {
		if a.rawClientID == "" {
			return errors.Errorf("--client-id or %s must be specified when --auth-method=%q", AzureClientIDEnvVar, WorkloadIdentityAuthMethod)
		}
		if a.tenantID == "" {
			return errors.Errorf("--tenant-id or %s must be specified when --auth-method=%q", AzureTenantIDEnvVar, WorkloadIdentityAuthMethod)
		}
		if a.tokenFile == "" {
			return errors.Errorf("--federated-token-file or %s must be specified when --auth-method=%q", AzureFederatedTokenFileEnvVar, WorkloadIdentityAuthMethod)
		}
	}
	return nil
}

// Resolve builds a new credential for the configured auth method.
func (a *authArgs) Resolve() (azcore.TokenCredential, error) {
	switch a.authMethod {
	case DefaultAuthMethod, "":
		return azidentity.NewDefaultAzureCredential(&azidentity.DefaultAzureCredentialOptions{ClientOptions: a.clientOptions})
	case ChainAuthMethod:
		return newChain(a.chainSources())
	case WorkloadIdentityAuthMethod:
		return a.workloadIdentityCredential()
	case ManagedIdentityAuthMethod:
		return a.managedIdentityCredential()
	case CLIAuthMethod:
		return azidentity.NewAzureCLICredential(nil)
	default:
		return nil, errors.Errorf("unsupported auth method %q", a.authMethod)
	}
}

func (a *authArgs) workloadIdentityCredential() (azcore.TokenCredential, error) {
	if a.rawClientID == "" || a.tenantID == "" || a.tokenFile == "" {
		return nil, errors.New("client id, tenant id and federated token file are required for workload identity")
	}
	authorityHost := a.authorityHost
	if authorityHost == "" {
		authorityHost = DefaultAuthorityHost
	}
	return newClientAssertionCredential(a.tenantID, a.rawClientID, authorityHost, a.tokenFile)
}

func (a *authArgs) managedIdentityCredential() (azcore.TokenCredential, error) {
	opts := &azidentity.ManagedIdentityCredentialOptions{ClientOptions: a.clientOptions}
	if a.rawClientID != "" {
		opts.ID = azidentity.ClientID(a.rawClientID)
	}
	return azidentity.NewManagedIdentityCredential(opts)
}

// chainSources returns the ordered identity sources tried by the chain method.
func (a *authArgs) chainSources() []source {
	return []source{
		{
			name: "environment",
			build: func() (azcore.TokenCredential, error) {
				return azidentity.NewEnvironmentCredential(&azidentity.EnvironmentCredentialOptions{ClientOptions: a.clientOptions})
			},
		},
		{
			name:  "workload_identity",
			build: a.workloadIdentityCredential,
		},
		{
			name:  "managed_identity",
			build: a.managedIdentityCredential,
		},
		{
			name: "cli",
			build: func() (azcore.TokenCredential, error) {
				return azidentity.NewAzureCLICredential(nil)
			},
		},
	}
}

func isSupportedAuthMethod(method string) bool {
	for _, m := range authMethods {
		if m == method {
			return true
		}
	}
	return false
}

func valueOrEnv(value, envVar string) string {
	if value != "" {
		return value
	}
	return strings.TrimSpace(os.Getenv(envVar))
}
