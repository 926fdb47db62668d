package credential

// Environment variables read by the workload identity sources. These are the
// variables injected by the Azure Workload Identity webhook.
const (
	AzureClientIDEnvVar           = "AZURE_CLIENT_ID"
	AzureTenantIDEnvVar           = "AZURE_TENANT_ID"
	AzureFederatedTokenFileEnvVar = "AZURE_FEDERATED_TOKEN_FILE" // #nosec
	AzureAuthorityHostEnvVar      = "AZURE_AUTHORITY_HOST"

	// DefaultAuthorityHost is the Microsoft Entra authority for the public cloud.
	DefaultAuthorityHost = "https://login.microsoftonline.com/"
)

// Supported values for --auth-method.
const (
	DefaultAuthMethod          = "default"
	ChainAuthMethod            = "chain"
	WorkloadIdentityAuthMethod = "workload_identity"
	ManagedIdentityAuthMethod  = "managed_identity"
	CLIAuthMethod              = "cli"
)

var authMethods = []string{
	DefaultAuthMethod,
	ChainAuthMethod,
	WorkloadIdentityAuthMethod,
	ManagedIdentityAuthMethod,
	CLIAuthMethod,
}
