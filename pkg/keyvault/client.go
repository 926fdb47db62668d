package keyvault

import (
	"context"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/security/keyvault/azsecrets"
)

//go:generate mockgen -destination=mock_keyvault/keyvault_mock.go -package=mock_keyvault github.com/Azure/kvsample/pkg/keyvault SecretsClient

// SecretsClient is the subset of the azsecrets client used by the fetcher.
type SecretsClient interface {
	GetSecret(ctx context.Context, name string, version string, options *azsecrets.GetSecretOptions) (azsecrets.GetSecretResponse, error)
}

var _ SecretsClient = &azsecrets.Client{}

// ClientFactory builds a SecretsClient for a vault.
type ClientFactory func(vaultURL string, cred azcore.TokenCredential, options *azsecrets.ClientOptions) (SecretsClient, error)

// NewAzSecretsClient is the ClientFactory backed by azsecrets.
func NewAzSecretsClient(vaultURL string, cred azcore.TokenCredential, options *azsecrets.ClientOptions) (SecretsClient, error) {
	return azsecrets.NewClient(vaultURL, cred, options)
}
