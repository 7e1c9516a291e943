package bulk

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestValidateRejectsEmptyList(t *testing.T) {
	assert.ErrorIs(t, Validate(nil), ErrEmpty)
	assert.ErrorIs(t, Validate([]int{}), ErrEmpty)
}

func TestValidateRejectsOversizedList(t *testing.T) {
	ids := make([]int, MaxIDs+1)
	for i := range ids {
		ids[i] = i + 1
	}

	assert.ErrorIs(t, Validate(ids), ErrTooMany)
}

func TestValidateAcceptsListAtCap(t *testing.T) {
	ids := make([]int, MaxIDs)
	for i := range ids {
		ids[i] = i + 1
	}

	assert.NoError(t, Validate(ids))
	assert.NoError(t, Validate([]int{42}))
}
