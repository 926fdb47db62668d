package credential

import (
	"strings"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
	"github.com/pkg/errors"
)

// ErrNoCredentialAvailable is returned when no identity source in a chain
// could be constructed.
var ErrNoCredentialAvailable = errors.New("no credential available")

// source is a named identity source in a credential chain.
type source struct {
	name  string
	build func() (azcore.TokenCredential, error)
}

// newChain builds every source in order and chains the ones that could be
// constructed. At token time the chain returns the first credential that
// succeeds.
func newChain(sources []source) (azcore.TokenCredential, error) {
	var (
		creds   []azcore.TokenCredential
		skipped []string
	)
	for _, s := range sources {
		cred, err := s.build()
		if err != nil {
			skipped = append(skipped, s.name+": "+err.Error())
			continue
		}
		creds = append(creds, cred)
	}
	if len(creds) == 0 {
		return nil, errors.Wrapf(ErrNoCredentialAvailable, "tried [%s]", strings.Join(skipped, "; "))
	}
	return azidentity.NewChainedTokenCredential(creds, nil)
}
