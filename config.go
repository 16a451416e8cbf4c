package hll

import "sync"

// defaultOutputVersion is the only wire version this library writes; v1
// is also the only version it reads.
const defaultOutputVersion = 1

// Config holds the process-wide mutable settings governing default
// parameters (which a host passes to AggState.AddToken), the output
// wire version, and the Sparse/Dense selection override. None of these
// are per-sketch metadata and none ever appear in a serialized sketch's
// bytes.
//
// A package-level instance backs the package-level convenience functions
// below; NewConfig lets a host keep isolated configuration (e.g. one
// Config per connection) instead of sharing process-wide state.
type Config struct {
	mu sync.RWMutex

	defaults      Parameters
	outputVersion int
	maxSparse     int
}

// NewConfig returns a Config seeded with the documented defaults:
// log2m=11, regwidth=5, expthresh=-1, sparseon=1, output_version=1,
// max_sparse=-1.
func NewConfig() *Config {
	return &Config{
		defaults: Parameters{
			Log2m:         11,
			Regwidth:      5,
			Expthresh:     AutoExpthresh,
			SparseEnabled: true,
		},
		outputVersion: defaultOutputVersion,
		maxSparse:     -1,
	}
}

var defaultConfig = NewConfig()

// DefaultParameters returns the current default Parameters. AggState does
// not read them itself; a host passes them to AggState.AddToken, which
// absorbs them on its first call.
func (c *Config) DefaultParameters() Parameters {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.defaults
}

// SetDefaultParameters installs new default Parameters, returning the
// previous value. It validates the new defaults and returns
// ErrInvalidParameter without changing anything if they're out of range.
func (c *Config) SetDefaultParameters(p Parameters) (Parameters, error) {
	if err := p.validate(); err != nil {
		return Parameters{}, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	previous := c.defaults
	c.defaults = p
	return previous, nil
}

// OutputVersion returns the wire version this Config will write.
func (c *Config) OutputVersion() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.outputVersion
}

// SetOutputVersion installs the wire version written by EncodeSketch,
// returning the previous value. Only version 1 is currently legal.
func (c *Config) SetOutputVersion(v int) (int, error) {
	if v != 1 {
		return 0, errDataf("unsupported output version %d; only 1 is supported", v)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	previous := c.outputVersion
	c.outputVersion = v
	return previous, nil
}

// MaxSparse returns the Sparse/Dense selection override: -1 means "choose
// Sparse whenever it's smaller than Dense", and a non-negative value means
// "choose Sparse whenever it has at most that many filled registers".
func (c *Config) MaxSparse() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.maxSparse
}

// SetMaxSparse installs a new Sparse/Dense selection override, returning
// the previous value.
func (c *Config) SetMaxSparse(n int) (int, error) {
	if n < -1 {
		return 0, errDataf("max_sparse must be >= -1, got %d", n)
	}

	c.mu.Lock()
	defer c.mu.Unlock()
	previous := c.maxSparse
	c.maxSparse = n
	return previous, nil
}

// The package-level functions below operate on the shared defaultConfig,
// for hosts that don't need per-connection isolation.

// DefaultParameters returns defaultConfig's current default Parameters.
func DefaultParameters() Parameters { return defaultConfig.DefaultParameters() }

// SetDefaultParameters installs defaultConfig's default Parameters.
func SetDefaultParameters(p Parameters) (Parameters, error) {
	return defaultConfig.SetDefaultParameters(p)
}

// SetOutputVersion installs defaultConfig's output wire version.
func SetOutputVersion(v int) (int, error) { return defaultConfig.SetOutputVersion(v) }

// SetMaxSparse installs defaultConfig's Sparse/Dense selection override.
func SetMaxSparse(n int) (int, error) { return defaultConfig.SetMaxSparse(n) }
