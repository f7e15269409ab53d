package services

import (
	"testing"

	"github.com/gridironlabs/gridiron-system/oddsapi"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestCollateOverUnder(t *testing.T) {
	outcomes := []oddsapi.Outcome{
		{Name: "Over", Description: "Patrick Mahomes", Price: -115, Point: fptr(284.5)},
		{Name: "Under", Description: "Patrick Mahomes", Price: -105, Point: fptr(284.5)},
		{Name: "Over", Description: "Josh Allen", Price: -110, Point: fptr(249.5)},
		{Name: "Under", Description: "Josh Allen", Price: -110, Point: fptr(249.5)},
	}

	props := collateOverUnder(outcomes)
	require.Len(t, props, 2)

	mahomes := props[0]
	assert.Equal(t, "Patrick Mahomes", mahomes.playerName)
	require.NotNil(t, mahomes.line)
	assert.InDelta(t, 284.5, *mahomes.line, 0.001)
	require.NotNil(t, mahomes.overPrice)
	assert.Equal(t, float64(-115), *mahomes.overPrice)
	require.NotNil(t, mahomes.underPrice)
	assert.Equal(t, float64(-105), *mahomes.underPrice)

	allen := props[1]
	assert.Equal(t, "Josh Allen", allen.playerName)
}

func TestCollateOverUnderAnytimeTD(t *testing.T) {
	// Anytime-TD markets only quote a "Yes" side and carry no point.
	outcomes := []oddsapi.Outcome{
		{Name: "Yes", Description: "Christian McCaffrey", Price: -140},
	}

	props := collateOverUnder(outcomes)
	require.Len(t, props, 1)
	assert.Nil(t, props[0].line)
	require.NotNil(t, props[0].overPrice)
	assert.Equal(t, float64(-140), *props[0].overPrice)
	assert.Nil(t, props[0].underPrice)
}

func TestCollateOverUnderSkipsOutcomesWithoutPlayer(t *testing.T) {
	outcomes := []oddsapi.Outcome{
		{Name: "Over", Price: -110, Point: fptr(47.5)}, // no description
	}
	assert.Empty(t, collateOverUnder(outcomes))
}
