package fault_test

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/sengkeat-dex/Tokenize/fault"
)

func TestClassification(t *testing.T) {
	assert.True(t, fault.IsErrNotFound(fault.ErrAssetNotFound))
	assert.True(t, fault.IsErrNotFound(fault.ErrWalletNotFound))
	assert.True(t, fault.IsErrExists(fault.ErrDuplicateHolding))
	assert.True(t, fault.IsErrInvalid(fault.ErrAssetNotHeld))
	assert.True(t, fault.IsErrProcess(fault.ErrLockFailure))

	assert.False(t, fault.IsErrNotFound(fault.ErrDuplicateHolding))
	assert.False(t, fault.IsErrExists(fault.ErrAssetNotHeld))
	assert.False(t, fault.IsErrProcess(errors.New("plain")))
}

func TestClassificationThroughWrapping(t *testing.T) {
	err := fmt.Errorf("add a1 to w1: %w", fault.ErrWalletNotFound)

	assert.True(t, fault.IsErrNotFound(err))
	assert.ErrorIs(t, err, fault.ErrWalletNotFound)
	assert.NotErrorIs(t, err, fault.ErrAssetNotFound)
}
