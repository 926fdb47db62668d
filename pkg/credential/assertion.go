package credential

import (
	"context"
	"net/url"
	"os"
	"sync"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/AzureAD/microsoft-authentication-library-for-go/apps/confidential"
	"github.com/pkg/errors"
)

// assertionRefreshInterval is how long a token read from the federated token
// file is reused before the file is read again.
const assertionRefreshInterval = 5 * time.Minute

// clientAssertionCredential authenticates an application with a federated
// token read from a file, exchanged through msal's confidential client.
type clientAssertionCredential struct {
	file string
	// now is replaced in tests
	now func() time.Time

	mu        sync.Mutex
	assertion string
	lastRead  time.Time

	client confidential.Client
}

var _ azcore.TokenCredential = &clientAssertionCredential{}

// newClientAssertionCredential constructs a clientAssertionCredential.
func newClientAssertionCredential(tenantID, clientID, authorityHost, file string) (*clientAssertionCredential, error) {
	c := &clientAssertionCredential{file: file, now: time.Now}

	cred := confidential.NewCredFromAssertionCallback(
		func(ctx context.Context, _ confidential.AssertionRequestOptions) (string, error) {
			return c.getAssertion(ctx)
		},
	)

	authority, err := url.JoinPath(authorityHost, tenantID)
	if err != nil {
		return nil, errors.Wrap(err, "failed to construct authority URL")
	}

	client, err := confidential.New(authority, clientID, cred)
	if err != nil {
		return nil, errors.Wrap(err, "failed to create confidential client")
	}
	c.client = client

	return c, nil
}

// GetToken implements the TokenCredential interface
func (c *clientAssertionCredential) GetToken(ctx context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	token, err := c.client.AcquireTokenByCredential(ctx, opts.Scopes)
	if err != nil {
		return azcore.AccessToken{}, err
	}

	return azcore.AccessToken{
		Token:     token.AccessToken,
		ExpiresOn: token.ExpiresOn,
	}, nil
}

// getAssertion reads the assertion from the file and returns it
// if the file has not been read in the last 5 minutes
func (c *clientAssertionCredential) getAssertion(context.Context) (string, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	if now := c.now(); c.lastRead.Add(assertionRefreshInterval).Before(now) {
		content, err := os.ReadFile(c.file)
		if err != nil {
			return "", errors.Wrapf(err, "failed to read federated token file %s", c.file)
		}
		c.assertion = string(content)
		c.lastRead = now
	}
	return c.assertion, nil
}
