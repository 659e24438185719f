package hal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func TestDetectDeviceTierReturnsKnownValue(t *testing.T) {
	switch DetectDeviceTier() {
	case TierS, TierA, TierB, TierC, TierD:
	default:
		t.Fatalf("unexpected tier %v", DetectDeviceTier())
	}
}

func TestTierStringNames(t *testing.T) {
	require.Equal(t, "S", TierS.String())
	require.Equal(t, "A", TierA.String())
	require.Equal(t, "B", TierB.String())
	require.Equal(t, "C", TierC.String())
	require.Equal(t, "D", TierD.String())
}

func TestProfileStringNames(t *testing.T) {
	require.Equal(t, "full", ProfileFull.String())
	require.Equal(t, "lite", ProfileLite.String())
	require.Equal(t, "minimal", ProfileMinimal.String())
}
