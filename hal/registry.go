package hal

// MaxBackends bounds the registry table.
const MaxBackends = 16

type lifecycleState int

const (
	stateUninitialized lifecycleState = iota
	stateInitialized
)

// Registry is the fixed-capacity ordered sequence of backend descriptors
// plus the active selection and probed feature bitmask.
//
// Registry is single-threaded-by-convention: Register, Init, Select, and
// Shutdown must all be called from one controlling thread. Once Init has
// returned, every field this type exposes is treated as immutable, so
// concurrent readers need no synchronization of their own.
type Registry struct {
	backends    [MaxBackends]Backend
	count       int
	activeIndex int // -1 when no backend is selected
	features    FeatureSet
	state       lifecycleState
}

// newRegistry returns an empty, uninitialized Registry.
func newRegistry() *Registry {
	return &Registry{activeIndex: -1}
}

// defaultRoster accumulates the compile-time backend set: every backend
// file this build includes (scalar.go unconditionally, the accelerated
// backend_*.go files under their own build tags) appends its descriptor
// here from its own build-tagged init().
var defaultRoster []Backend

func registerDefault(b Backend) {
	defaultRoster = append(defaultRoster, b)
}

// Register validates and appends a by-value copy of b.
func (r *Registry) Register(b Backend) Status {
	if !b.valid() {
		return Invalid
	}
	if r.count >= MaxBackends {
		return Invalid
	}
	r.backends[r.count] = b
	r.count++
	logf("backend %q (%s) registered, priority=%d required=%s", b.Name, b.Type, b.Priority, b.RequiredFeatures)
	return OK
}

// Count returns the number of registered backends.
func (r *Registry) Count() int {
	return r.count
}

// Get returns a copy of the descriptor at index.
func (r *Registry) Get(index int) (Backend, Status) {
	if index < 0 || index >= r.count {
		return Backend{}, Invalid
	}
	return r.backends[index], OK
}

// GetActive returns a copy of the active backend's descriptor, or
// NoBackend if none is selected.
func (r *Registry) GetActive() (Backend, Status) {
	if r.activeIndex < 0 {
		return Backend{}, NoBackend
	}
	return r.backends[r.activeIndex], OK
}

// GetFeatures returns the probed feature bitmask.
func (r *Registry) GetFeatures() FeatureSet {
	return r.features
}

// GetKernelConfig returns the active backend's kernel configuration.
func (r *Registry) GetKernelConfig() (KernelConfig, Status) {
	b, st := r.GetActive()
	if st != OK {
		return KernelConfig{}, st
	}
	return b.Config, OK
}

// selectBestIndex returns the index of the highest-priority feasible
// backend, ties broken by earliest registration.
func (r *Registry) selectBestIndex() int {
	best := -1
	for i := 0; i < r.count; i++ {
		if !r.backends[i].feasible(r.features) {
			continue
		}
		if best == -1 || r.backends[i].Priority > r.backends[best].Priority {
			best = i
		}
	}
	return best
}

// Init probes capabilities, registers the compile-time backend roster,
// and selects+initializes the best feasible backend. Idempotent: a second
// call without an intervening Shutdown is a no-op returning OK.
func (r *Registry) Init() Status {
	if r.state == stateInitialized {
		return OK
	}

	r.features = probeFeatures()
	logf("capability probe: %s", r.features)

	for _, b := range defaultRoster {
		if st := r.Register(b); st != OK {
			logWarnf("failed to register default backend %q: %s", b.Name, st)
		}
	}

	idx := r.selectBestIndex()
	if idx == -1 {
		return NoBackend
	}
	if r.backends[idx].Init != nil {
		if st := r.backends[idx].Init(); st != OK {
			return InitFailed
		}
	}
	r.activeIndex = idx
	r.state = stateInitialized
	logf("active backend: %s (%s)", r.backends[idx].Name, r.backends[idx].Type)
	return OK
}

// Select switches the active backend to the earliest-registered backend
// of the given type. When that type is not registered or not feasible it
// returns Unsupported and leaves the previous selection untouched. Otherwise
// it runs the previous backend's Shutdown hook and then the new backend's
// Init hook; if that Init hook fails, no backend is active afterward.
func (r *Registry) Select(t BackendType) Status {
	idx := -1
	for i := 0; i < r.count; i++ {
		if r.backends[i].Type == t {
			idx = i
			break
		}
	}
	if idx == -1 {
		return Unsupported
	}
	if !r.backends[idx].feasible(r.features) {
		return Unsupported
	}

	if r.activeIndex != -1 && r.backends[r.activeIndex].Shutdown != nil {
		r.backends[r.activeIndex].Shutdown()
	}
	if r.backends[idx].Init != nil {
		if st := r.backends[idx].Init(); st != OK {
			r.activeIndex = -1
			return InitFailed
		}
	}
	r.activeIndex = idx
	r.state = stateInitialized
	logf("active backend switched to: %s (%s)", r.backends[idx].Name, r.backends[idx].Type)
	return OK
}

// Shutdown fires every registered Shutdown hook in registration order and
// clears the table. Idempotent; since this module's hooks return no
// error, a panicking hook is the only failure mode and is recovered so
// the structural cleanup always runs.
func (r *Registry) Shutdown() {
	for i := 0; i < r.count; i++ {
		hook := r.backends[i].Shutdown
		if hook == nil {
			continue
		}
		func() {
			defer func() {
				if rec := recover(); rec != nil {
					logWarnf("backend %q shutdown hook panicked: %v", r.backends[i].Name, rec)
				}
			}()
			hook()
		}()
	}
	r.count = 0
	r.activeIndex = -1
	r.features = 0
	r.state = stateUninitialized
}

// global is the process-wide registry instance the package-level API
// below operates on.
var global = newRegistry()

// Init initializes the process-wide HAL registry. See Registry.Init.
func Init() Status { return global.Init() }

// Shutdown tears down the process-wide HAL registry. See Registry.Shutdown.
func Shutdown() { global.Shutdown() }

// RegisterBackend registers b with the process-wide registry.
func RegisterBackend(b Backend) Status { return global.Register(b) }

// GetBackendCount returns the number of registered backends.
func GetBackendCount() int { return global.Count() }

// GetBackend returns a copy of the descriptor at index.
func GetBackend(index int) (Backend, Status) { return global.Get(index) }

// GetActiveBackend returns a copy of the active backend's descriptor.
func GetActiveBackend() (Backend, Status) { return global.GetActive() }

// SelectBackend switches the process-wide active backend.
func SelectBackend(t BackendType) Status { return global.Select(t) }

// GetFeatures returns the probed feature bitmask.
func GetFeatures() FeatureSet { return global.GetFeatures() }

// GetKernelConfig returns the active backend's kernel configuration.
func GetKernelConfig() (KernelConfig, Status) { return global.GetKernelConfig() }
