package hal

import (
	"testing"

	"github.com/stretchr/testify/require"
)

func testBackend(name string, typ BackendType, priority int, required FeatureSet) Backend {
	return Backend{
		Name:             name,
		Type:             typ,
		Priority:         priority,
		RequiredFeatures: required,
		Config:           KernelConfig{QK: GroupSize, RowBlock: 1, Parallel: 1},
		VecDot:           scalarVecDot,
		Quantize:         scalarQuantize,
	}
}

func TestRegisterAndGet(t *testing.T) {
	r := newRegistry()
	require.Equal(t, OK, r.Register(testBackend("scalar", BackendScalar, 0, 0)))
	require.Equal(t, 1, r.Count())

	got, st := r.Get(0)
	require.Equal(t, OK, st)
	require.Equal(t, "scalar", got.Name)
}

func TestRegisterInvalidName(t *testing.T) {
	r := newRegistry()
	require.Equal(t, Invalid, r.Register(Backend{VecDot: scalarVecDot, Quantize: scalarQuantize}))
}

func TestRegisterInvalidMissingKernels(t *testing.T) {
	r := newRegistry()
	require.Equal(t, Invalid, r.Register(Backend{Name: "x"}))
}

func TestRegistryCapacityExceeded(t *testing.T) {
	r := newRegistry()
	for i := 0; i < MaxBackends; i++ {
		require.Equal(t, OK, r.Register(testBackend("b", BackendScalar, 0, 0)))
	}
	require.Equal(t, MaxBackends, r.Count())
	require.Equal(t, Invalid, r.Register(testBackend("overflow", BackendScalar, 0, 0)))
	require.Equal(t, MaxBackends, r.Count())
}

func TestSelectBestIndexPicksHighestFeasiblePriority(t *testing.T) {
	r := newRegistry()
	r.features = FeatureSet(0).With(FeatureAVX2)
	require.Equal(t, OK, r.Register(testBackend("scalar", BackendScalar, 0, 0)))
	require.Equal(t, OK, r.Register(testBackend("avx2", BackendAVX2, 50, FeatureSet(0).With(FeatureAVX2))))
	require.Equal(t, OK, r.Register(testBackend("avx512", BackendAVX2, 90, FeatureSet(0).With(FeatureAVX512F))))

	idx := r.selectBestIndex()
	require.Equal(t, 1, idx, "avx512 is infeasible on this probed set; avx2 should win over scalar")
}

func TestSelectBestIndexTieBreaksByRegistrationOrder(t *testing.T) {
	r := newRegistry()
	require.Equal(t, OK, r.Register(testBackend("first", BackendScalar, 10, 0)))
	require.Equal(t, OK, r.Register(testBackend("second", BackendAVX2, 10, 0)))
	require.Equal(t, 0, r.selectBestIndex())
}

func TestInitIdempotent(t *testing.T) {
	r := newRegistry()
	require.Equal(t, OK, r.Init())
	firstActive, st := r.GetActive()
	require.Equal(t, OK, st)

	require.Equal(t, OK, r.Init(), "second Init without Shutdown must be a no-op returning OK")
	secondActive, _ := r.GetActive()
	require.Equal(t, firstActive.Name, secondActive.Name)
}

func TestInitAlwaysSelectsAFeasibleBackend(t *testing.T) {
	r := newRegistry()
	require.Equal(t, OK, r.Init())
	active, st := r.GetActive()
	require.Equal(t, OK, st)
	require.True(t, r.GetFeatures().Has(active.RequiredFeatures))
	for i := 0; i < r.Count(); i++ {
		b, _ := r.Get(i)
		if b.feasible(r.features) {
			require.LessOrEqual(t, b.Priority, active.Priority)
		}
	}
}

func TestSelectUnsupportedTypeLeavesActiveUnchanged(t *testing.T) {
	r := newRegistry()
	require.Equal(t, OK, r.Init())
	before, _ := r.GetActive()

	st := r.Select(BackendGPU) // never registered by default roster in this test
	require.Equal(t, Unsupported, st)

	after, _ := r.GetActive()
	require.Equal(t, before.Name, after.Name)
}

func TestSelectInfeasibleFeaturesReturnsUnsupported(t *testing.T) {
	r := newRegistry()
	r.features = 0
	require.Equal(t, OK, r.Register(testBackend("scalar", BackendScalar, 0, 0)))
	require.Equal(t, OK, r.Register(testBackend("avx2", BackendAVX2, 50, FeatureSet(0).With(FeatureAVX2))))
	idx := r.selectBestIndex()
	require.Equal(t, 0, idx)
	r.activeIndex = idx
	r.state = stateInitialized

	require.Equal(t, Unsupported, r.Select(BackendAVX2))
	active, _ := r.GetActive()
	require.Equal(t, "scalar", active.Name)
}

func TestShutdownClearsTableAndIsIdempotent(t *testing.T) {
	r := newRegistry()
	require.Equal(t, OK, r.Init())
	require.Greater(t, r.Count(), 0)

	r.Shutdown()
	require.Equal(t, 0, r.Count())
	_, st := r.GetActive()
	require.Equal(t, NoBackend, st)

	r.Shutdown() // idempotent
	require.Equal(t, 0, r.Count())
}

func TestGlobalSelectScalarThenReinitRestoresBestBackend(t *testing.T) {
	defer Shutdown()
	require.Equal(t, OK, Init())
	first, st := GetActiveBackend()
	require.Equal(t, OK, st)

	require.Equal(t, OK, SelectBackend(BackendScalar))
	Shutdown()
	require.Equal(t, OK, Init())

	second, st := GetActiveBackend()
	require.Equal(t, OK, st)
	require.Equal(t, first.Type, second.Type)
}
