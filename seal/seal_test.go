package seal_test

import (
	"strings"
	"testing"

	apperrors "github.com/jrsteele09/go-auth-gateway/internal/errors"
	"github.com/jrsteele09/go-auth-gateway/seal"
	"github.com/stretchr/testify/require"
)

const testSecret = "complex-password-at-least-32-characters-long"

func TestSealUnsealRoundTrip(t *testing.T) {
	sealed, err := seal.Seal(testSecret, "refresh-token-value")
	require.NoError(t, err)

	var out string
	require.NoError(t, seal.Unseal(testSecret, sealed, &out))
	require.Equal(t, "refresh-token-value", out)
}

func TestSealArbitraryPayload(t *testing.T) {
	type payload struct {
		RefreshToken string `json:"refreshToken"`
		UserID       string `json:"userId"`
		Counter      int    `json:"counter"`
	}

	in := payload{RefreshToken: "rt-1", UserID: "user-1", Counter: 42}
	sealed, err := seal.Seal(testSecret, in)
	require.NoError(t, err)

	var out payload
	require.NoError(t, seal.Unseal(testSecret, sealed, &out))
	require.Equal(t, in, out)
}

func TestSealedValueIsCookieSafe(t *testing.T) {
	sealed, err := seal.Seal(testSecret, strings.Repeat("token;with=unsafe,chars ", 8))
	require.NoError(t, err)

	// Cookie values must avoid separators, whitespace and quotes
	require.NotContains(t, sealed, ";")
	require.NotContains(t, sealed, ",")
	require.NotContains(t, sealed, " ")
	require.NotContains(t, sealed, `"`)
}

func TestSealProducesFreshCiphertext(t *testing.T) {
	first, err := seal.Seal(testSecret, "same-value")
	require.NoError(t, err)
	second, err := seal.Seal(testSecret, "same-value")
	require.NoError(t, err)
	require.NotEqual(t, first, second)
}

func TestUnsealRejectsBitFlips(t *testing.T) {
	sealed, err := seal.Seal(testSecret, "refresh-token-value")
	require.NoError(t, err)

	// Flip a character in every segment; each mutation must fail the
	// authenticity check, never yield garbage plaintext.
	for i := 0; i < len(sealed); i++ {
		if sealed[i] == '.' {
			continue
		}
		mutated := []byte(sealed)
		if mutated[i] == 'A' {
			mutated[i] = 'B'
		} else {
			mutated[i] = 'A'
		}
		var out string
		err := seal.Unseal(testSecret, string(mutated), &out)
		require.ErrorIs(t, err, apperrors.ErrAuthenticity, "mutation at index %d", i)
		require.Empty(t, out)
	}
}

func TestUnsealRejectsTruncation(t *testing.T) {
	sealed, err := seal.Seal(testSecret, "refresh-token-value")
	require.NoError(t, err)

	var out string
	require.ErrorIs(t, seal.Unseal(testSecret, sealed[:len(sealed)-2], &out), apperrors.ErrAuthenticity)
	require.ErrorIs(t, seal.Unseal(testSecret, "", &out), apperrors.ErrAuthenticity)
	require.ErrorIs(t, seal.Unseal(testSecret, "not-a-sealed-value", &out), apperrors.ErrAuthenticity)
}

func TestUnsealRejectsWrongSecret(t *testing.T) {
	sealed, err := seal.Seal(testSecret, "refresh-token-value")
	require.NoError(t, err)

	var out string
	require.ErrorIs(t, seal.Unseal("a-different-secret-entirely-here", sealed, &out), apperrors.ErrAuthenticity)
}

func TestEmptySecretIsConfigurationError(t *testing.T) {
	_, err := seal.Seal("", "value")
	require.ErrorIs(t, err, apperrors.ErrConfiguration)

	var out string
	require.ErrorIs(t, seal.Unseal("", "s1.x.y.z", &out), apperrors.ErrConfiguration)
}
