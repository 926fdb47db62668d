package keyvault

import (
	"net"
	"net/http"
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/pkg/errors"

	"github.com/Azure/kvsample/pkg/config"
)

const (
	// ErrorCodeForbidden is the Key Vault error code for a denied request.
	ErrorCodeForbidden = "Forbidden"
	// ErrorCodeVaultNotFound is the error code for a vault that does not exist.
	ErrorCodeVaultNotFound = "VaultNotFound"
)

// IsVaultError returns true if the error was reported by the Key Vault service.
func IsVaultError(err error) bool {
	var rerr *azcore.ResponseError
	return errors.As(err, &rerr)
}

// IsAccessDenied returns true if the Key Vault service denied the request.
// Ref: https://learn.microsoft.com/en-us/azure/key-vault/general/rest-error-codes#http-403-insufficient-permissions
func IsAccessDenied(err error) bool {
	var rerr *azcore.ResponseError
	return errors.As(err, &rerr) && (rerr.ErrorCode == ErrorCodeForbidden || rerr.StatusCode == http.StatusForbidden)
}

// IsVaultNotFound returns true if the Key Vault service reported that the vault does not exist.
func IsVaultNotFound(err error) bool {
	var rerr *azcore.ResponseError
	return errors.As(err, &rerr) && rerr.ErrorCode == ErrorCodeVaultNotFound
}

// IsHostNotFound returns true if the error is a DNS "no such host" failure
// for the given host. A vault name that does not exist fails this way before
// any request reaches the service.
func IsHostNotFound(err error, host string) bool {
	var derr *net.DNSError
	if !errors.As(err, &derr) || !derr.IsNotFound {
		return false
	}
	return host != "" && strings.EqualFold(strings.TrimSuffix(derr.Name, "."), host)
}

// classify maps an error from the retrieval into an Outcome.
func classify(err error, vaultURL, vaultHost string) Outcome {
	switch {
	case err == nil:
		return unreachable()
	case IsAccessDenied(err):
		return accessDenied(err)
	case IsVaultNotFound(err), IsHostNotFound(err, vaultHost):
		return vaultNotFound(vaultURL, config.KeyVaultNameEnvVar, err)
	case IsVaultError(err):
		return vaultError(err)
	default:
		return unexpected(err)
	}
}
