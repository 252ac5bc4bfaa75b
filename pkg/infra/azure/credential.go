package azure

import (
	"context"
	"errors"
	"fmt"
	"net/http"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/Azure/azure-sdk-for-go/sdk/azidentity"
)

const (
	SubscriptionKeyHeader = "Ocp-Apim-Subscription-Key"
	APIKeyHeader          = "api-key"

	CognitiveServicesScope = "https://cognitiveservices.azure.com/.default"
)

// Credential authorizes an outgoing request to a Cognitive Services resource.
type Credential interface {
	Authorize(ctx context.Context, req *http.Request) error
}

type keyCredential struct {
	header string
	key    string
}

func NewKeyCredential(header, key string) Credential {
	return &keyCredential{header: header, key: key}
}

func (c *keyCredential) Authorize(_ context.Context, req *http.Request) error {
	if c.key == "" {
		return errors.New("azure key is not configured")
	}
	req.Header.Set(c.header, c.key)
	return nil
}

type tokenCredential struct {
	cred  azcore.TokenCredential
	scope string
}

// NewTokenCredential authorizes with Entra ID bearer tokens for scope.
func NewTokenCredential(cred azcore.TokenCredential, scope string) Credential {
	return &tokenCredential{cred: cred, scope: scope}
}

func (c *tokenCredential) Authorize(ctx context.Context, req *http.Request) error {
	token, err := c.cred.GetToken(ctx, policy.TokenRequestOptions{
		Scopes: []string{c.scope},
	})
	if err != nil {
		return fmt.Errorf("failed to get azure token: %w", err)
	}
	req.Header.Set("Authorization", "Bearer "+token.Token)
	return nil
}

// NewCredential picks the default identity chain when useIdentity is set and
// the key header otherwise.
func NewCredential(useIdentity bool, header, key string) (Credential, error) {
	if !useIdentity {
		return NewKeyCredential(header, key), nil
	}
	cred, err := azidentity.NewDefaultAzureCredential(nil)
	if err != nil {
		return nil, fmt.Errorf("failed to create azure identity credential: %w", err)
	}
	return NewTokenCredential(cred, CognitiveServicesScope), nil
}
