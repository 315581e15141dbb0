package vault

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestReport_MatchesSentinel(t *testing.T) {
	err := Report(KindVaultAlreadyInUse, "balance %d", 10)
	assert.ErrorIs(t, err, ErrVaultAlreadyInUse)
	assert.NotErrorIs(t, err, ErrInvalidAmount)
	assert.Contains(t, err.Error(), "VaultAlreadyInUse (6000)")
	assert.Contains(t, err.Error(), "balance 10")

	wrapped := fmt.Errorf("submit: %w", err)
	assert.ErrorIs(t, wrapped, ErrVaultAlreadyInUse)
	assert.Equal(t, KindVaultAlreadyInUse, KindOf(wrapped))
}

func TestKindOf_Unknown(t *testing.T) {
	assert.Equal(t, KindUnknown, KindOf(errors.New("x")))
	assert.Equal(t, KindUnknown, KindOf(nil))
}

func TestFromCode(t *testing.T) {
	for _, k := range []Kind{KindSeedsMismatch, KindVaultAlreadyInUse, KindInvalidAmount, KindNoViableNonce} {
		err, ok := FromCode(uint32(k))
		require.True(t, ok, k.String())
		assert.Equal(t, k, KindOf(err))
	}
	_, ok := FromCode(1)
	assert.False(t, ok)
}

func TestKind_String(t *testing.T) {
	assert.Equal(t, "InvalidAmount", KindInvalidAmount.String())
	assert.Equal(t, "Kind(7)", Kind(7).String())
}
