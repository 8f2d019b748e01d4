package discount

import (
	"context"
	"fmt"
	"sync"

	"github.com/noah-isme/toyland-orders/internal/common"
)

// ErrConfigUnavailable is returned when the discount configuration cannot
// be resolved. It is fatal to the batch: no order can be priced without it.
var ErrConfigUnavailable error = common.NewAppError(
	common.CodeConfigUnavailable,
	"discount: config unavailable",
	nil,
)

// Provider supplies the discount configuration for a batch run. The
// returned Config is always fully populated; callers never observe an
// intermediate "not yet loaded" state.
type Provider interface {
	Config(ctx context.Context) (Config, error)
}

// StaticProvider serves a fixed configuration.
type StaticProvider struct {
	Cfg Config
}

// Config returns the fixed configuration after validating it.
func (p StaticProvider) Config(context.Context) (Config, error) {
	if err := p.Cfg.Validate(); err != nil {
		return Config{}, fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
	}
	return p.Cfg, nil
}

// LazyProvider resolves the configuration from a backing loader exactly
// once, on first use. A loader failure is cached and surfaced as
// ErrConfigUnavailable on every subsequent call; there is no per-order
// retry.
type LazyProvider struct {
	load func(ctx context.Context) (Config, error)

	once sync.Once
	cfg  Config
	err  error
}

// NewLazyProvider wraps the loader behind a once-only gate.
func NewLazyProvider(load func(ctx context.Context) (Config, error)) *LazyProvider {
	return &LazyProvider{load: load}
}

// Config resolves and returns the configuration.
func (p *LazyProvider) Config(ctx context.Context) (Config, error) {
	p.once.Do(func() {
		if p.load == nil {
			p.err = fmt.Errorf("%w: no loader configured", ErrConfigUnavailable)
			return
		}
		cfg, err := p.load(ctx)
		if err != nil {
			p.err = fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
			return
		}
		if err := cfg.Validate(); err != nil {
			p.err = fmt.Errorf("%w: %v", ErrConfigUnavailable, err)
			return
		}
		p.cfg = cfg
	})
	return p.cfg, p.err
}
