package soil

import (
	"sort"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	regions := table.Regions()
	assert.Len(t, regions, 30)
	assert.True(t, sort.StringsAreSorted(regions))
}

func TestLookup(t *testing.T) {
	table, err := Load()
	require.NoError(t, err)

	kerala, ok := table.Lookup("Kerala")
	require.True(t, ok)
	assert.Equal(t, 80.0, kerala.Nitrogen)
	assert.Equal(t, 6.5, kerala.PH)

	_, ok = table.Lookup("Atlantis")
	assert.False(t, ok)
}
