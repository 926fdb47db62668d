package keyvault

import "fmt"

// Kind names the code path that produced an Outcome.
type Kind string

const (
	// KindRetrieved means the secret value was retrieved.
	KindRetrieved Kind = "Retrieved"
	// KindSecretUnavailable means the identity was accepted but the
	// response carried no secret.
	KindSecretUnavailable Kind = "SecretUnavailable"
	// KindAccessDenied means the identity lacks permission on the vault.
	KindAccessDenied Kind = "AccessDenied"
	// KindVaultNotFound means the vault name does not resolve to a vault.
	KindVaultNotFound Kind = "VaultNotFound"
	// KindVaultError is any other failure reported by the Key Vault service.
	KindVaultError Kind = "VaultError"
	// KindUnexpected is any failure not reported by the Key Vault service,
	// such as credential resolution or transport errors.
	KindUnexpected Kind = "Unexpected"
	// KindUnreachable signals a classification gap.
	KindUnreachable Kind = "Unreachable"
)

const (
	msgRetrieved         = "Value pulled directly from Key Vault with 'GetSecret':"
	msgSecretUnavailable = "Identity assigned properly, but failed to Get Secret!!"
	msgAccessDenied      = "Unable to get secret from Key Vault!"
	msgVaultNotFoundFmt  = "The specified Key Vault %s was not found. Please check your environment variables for the '%s' key"
	msgVaultError        = "Key Vault request error"
	msgUnexpected        = "Something went wrong!"
	msgUnreachable       = "Very odd... never really should have gotten here!"
)

// Outcome is the normalized result of a secret retrieval.
type Outcome struct {
	Kind    Kind
	Success bool
	// Message is the human readable status.
	Message string
	// Secret is the retrieved value. It is empty unless Kind is KindRetrieved.
	Secret string
	// Detail is the reason phrase or error text for every other Kind.
	Detail string
}

// Values returns the three values handed to the rendering layer: the
// success flag, the message, and the secret or, when there is none, the
// detail explaining why.
func (o Outcome) Values() (bool, string, string) {
	if o.Kind == KindRetrieved {
		return o.Success, o.Message, o.Secret
	}
	return o.Success, o.Message, o.Detail
}

func retrieved(value string) Outcome {
	return Outcome{Kind: KindRetrieved, Success: true, Message: msgRetrieved, Secret: value}
}

func secretUnavailable(reason string) Outcome {
	return Outcome{Kind: KindSecretUnavailable, Success: true, Message: msgSecretUnavailable, Detail: reason}
}

func accessDenied(err error) Outcome {
	return Outcome{Kind: KindAccessDenied, Message: msgAccessDenied, Detail: err.Error()}
}

func vaultNotFound(vaultURL, envVar string, err error) Outcome {
	return Outcome{Kind: KindVaultNotFound, Message: fmt.Sprintf(msgVaultNotFoundFmt, vaultURL, envVar), Detail: err.Error()}
}

func vaultError(err error) Outcome {
	return Outcome{Kind: KindVaultError, Message: msgVaultError, Detail: err.Error()}
}

func unexpected(err error) Outcome {
	return Outcome{Kind: KindUnexpected, Message: msgUnexpected, Detail: err.Error()}
}

func unreachable() Outcome {
	return Outcome{Kind: KindUnreachable, Message: msgUnreachable}
}

// View is the rendering of an Outcome handed to the presentation layer.
type View struct {
	KvSuccess bool   `json:"kvSuccess"`
	Message   string `json:"message"`
	Secret    string `json:"secret"`
	Kind      Kind   `json:"kind"`
}

// View returns the rendering of o.
func (o Outcome) View() View {
	success, message, secret := o.Values()
	return View{
		KvSuccess: success,
		Message:   message,
		Secret:    secret,
		Kind:      o.Kind,
	}
}
