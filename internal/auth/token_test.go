package auth

import (
	"context"
	"encoding/base64"
	"fmt"
	"net/http/httptest"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// unsignedToken builds a structurally valid JWT with an empty signature,
// the kind any client can mint without credentials.
func unsignedToken(sub string) string {
	enc := base64.RawURLEncoding
	header := enc.EncodeToString([]byte(`{"alg":"none","typ":"JWT"}`))
	payload := enc.EncodeToString([]byte(fmt.Sprintf(`{"sub":%q}`, sub)))
	return header + "." + payload + "."
}

func TestExtractTokenFromRequest(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/reviews/r1/vote", nil)
	_, err := ExtractTokenFromRequest(r)
	assert.Error(t, err)

	r.Header.Set("Authorization", "Bearer some-token")
	token, err := ExtractTokenFromRequest(r)
	require.NoError(t, err)
	assert.Equal(t, "some-token", token)

	r.Header.Set("Authorization", "some-token")
	_, err = ExtractTokenFromRequest(r)
	assert.Error(t, err)
}

func TestCallerIdentityIgnoresUnverifiedTokens(t *testing.T) {
	// Minting a fresh sub per request must not change the caller's identity:
	// without the verifying middleware all requests from one address share
	// the IP identity.
	identities := make(map[string]bool)
	for i := 0; i < 3; i++ {
		r := httptest.NewRequest("POST", "/api/reviews/r1/vote", nil)
		r.RemoteAddr = "203.0.113.7:41000"
		r.Header.Set("Authorization", "Bearer "+unsignedToken(fmt.Sprintf("forged-%d", i)))
		identities[CallerIdentity(r)] = true
	}

	require.Len(t, identities, 1)
	assert.True(t, identities["203.0.113.7"])
}

func TestCallerIdentityUsesVerifiedSubject(t *testing.T) {
	r := httptest.NewRequest("POST", "/api/reviews/r1/vote", nil)
	r.RemoteAddr = "203.0.113.7:41000"
	r.Header.Set("Authorization", "Bearer "+unsignedToken("forged"))

	// The middleware stashes the subject only after signature verification.
	ctx := context.WithValue(r.Context(), userIDKey, "user-123")
	assert.Equal(t, "user-123", CallerIdentity(r.WithContext(ctx)))
}
