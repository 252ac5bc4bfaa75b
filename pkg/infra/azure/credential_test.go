package azure

import (
	"context"
	"errors"
	"net/http"
	"testing"
	"time"

	"github.com/Azure/azure-sdk-for-go/sdk/azcore"
	"github.com/Azure/azure-sdk-for-go/sdk/azcore/policy"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeTokenCredential struct {
	scopes []string
	err    error
}

func (f *fakeTokenCredential) GetToken(_ context.Context, opts policy.TokenRequestOptions) (azcore.AccessToken, error) {
	f.scopes = opts.Scopes
	if f.err != nil {
		return azcore.AccessToken{}, f.err
	}
	return azcore.AccessToken{Token: "entra-token", ExpiresOn: time.Now().Add(time.Hour)}, nil
}

func TestKeyCredential_Authorize(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPost, "https://example.test", nil)

	err := NewKeyCredential(SubscriptionKeyHeader, "k-123").Authorize(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "k-123", req.Header.Get(SubscriptionKeyHeader))
}

func TestKeyCredential_MissingKey(t *testing.T) {
	req, _ := http.NewRequest(http.MethodPost, "https://example.test", nil)

	err := NewKeyCredential(APIKeyHeader, "").Authorize(context.Background(), req)

	assert.Error(t, err)
	assert.Empty(t, req.Header.Get(APIKeyHeader))
}

func TestTokenCredential_Authorize(t *testing.T) {
	fake := &fakeTokenCredential{}
	req, _ := http.NewRequest(http.MethodPost, "https://example.test", nil)

	err := NewTokenCredential(fake, CognitiveServicesScope).Authorize(context.Background(), req)

	require.NoError(t, err)
	assert.Equal(t, "Bearer entra-token", req.Header.Get("Authorization"))
	assert.Equal(t, []string{CognitiveServicesScope}, fake.scopes)
}

func TestTokenCredential_TokenError(t *testing.T) {
	fake := &fakeTokenCredential{err: errors.New("no identity")}
	req, _ := http.NewRequest(http.MethodPost, "https://example.test", nil)

	err := NewTokenCredential(fake, CognitiveServicesScope).Authorize(context.Background(), req)

	assert.ErrorContains(t, err, "no identity")
}

func TestNewCredential_KeyMode(t *testing.T) {
	cred, err := NewCredential(false, SubscriptionKeyHeader, "abc")
	require.NoError(t, err)
	assert.IsType(t, &keyCredential{}, cred)
}
