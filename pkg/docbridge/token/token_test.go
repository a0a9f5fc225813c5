package token_test

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/docbridge/docbridge/pkg/docbridge/token"
)

const testSecret = "a-long-enough-signing-secret"

func TestIssuer_Enabled(t *testing.T) {
	tests := []struct {
		name   string
		secret string
		want   bool
	}{
		{"placeholder secret disables issuance", token.PlaceholderSecret, false},
		{"short secret disables issuance", "abcdefghij", false}, // exactly 10 chars
		{"eleven chars is enough", "abcdefghijk", true},
		{"real secret enables issuance", testSecret, true},
		{"empty secret disables issuance", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, token.New(tt.secret, time.Hour).Enabled())
		})
	}
}

func TestIssuer_RoundTrip(t *testing.T) {
	issuer := token.New(testSecret, time.Hour)

	payload := map[string]any{
		"documentType": "word",
		"fileId":       "a/b/report.docx",
		"user":         map[string]any{"id": "u1", "name": "Alice"},
	}

	tok, err := issuer.Issue(payload)
	require.NoError(t, err)
	require.NotEmpty(t, tok)

	claims := issuer.Verify(tok)
	require.NotNil(t, claims)
	assert.Equal(t, "word", claims["documentType"])
	assert.Equal(t, "a/b/report.docx", claims["fileId"])
	user, ok := claims["user"].(map[string]any)
	require.True(t, ok)
	assert.Equal(t, "Alice", user["name"])
}

func TestIssuer_ExpiredTokenVerifiesToNil(t *testing.T) {
	issuer := token.New(testSecret, time.Hour)

	tok, err := issuer.IssueWithExpiry(map[string]any{"fileId": "x"}, -time.Second)
	require.NoError(t, err)

	assert.Nil(t, issuer.Verify(tok))
}

func TestIssuer_DisabledIssuerSkipsIssuance(t *testing.T) {
	issuer := token.New(token.PlaceholderSecret, time.Hour)

	tok, err := issuer.Issue(map[string]any{"fileId": "x"})
	require.NoError(t, err)
	assert.Empty(t, tok)
}

func TestIssuer_VerifyNeverErrors(t *testing.T) {
	issuer := token.New(testSecret, time.Hour)

	assert.Nil(t, issuer.Verify(""))
	assert.Nil(t, issuer.Verify("not-a-jwt"))
	assert.Nil(t, issuer.Verify("aaaa.bbbb.cccc"))

	// Token signed with a different key.
	other := token.New("another-perfectly-long-secret", time.Hour)
	tok, err := other.Issue(map[string]any{"fileId": "x"})
	require.NoError(t, err)
	assert.Nil(t, issuer.Verify(tok))
}
