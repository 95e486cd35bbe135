package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	derrors "boardkeep/pkg/domain-errors"
)

func TestParseName(t *testing.T) {
	for _, raw := range []string{"work", "leisure", "school"} {
		name, err := ParseName(raw)
		require.NoError(t, err)
		assert.Equal(t, raw, name.String())
		assert.True(t, name.Valid())
	}

	_, err := ParseName("groceries")
	require.Error(t, err)
	assert.True(t, derrors.HasCode(err, derrors.CodeValidation))
}

func TestNamesIsStable(t *testing.T) {
	assert.Equal(t, []Name{NameWork, NameLeisure, NameSchool}, Names())

	// Mutating the returned slice must not change the board set.
	names := Names()
	names[0] = Name("hacked")
	assert.Equal(t, []Name{NameWork, NameLeisure, NameSchool}, Names())
}
