package autotrade

import (
	"context"
	"errors"
	"fmt"
	"sync"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/eventmodels"
	"github.com/jiaming2012/autotrade/src/marketdata"
	"github.com/jiaming2012/autotrade/src/orders"
	"github.com/jiaming2012/autotrade/src/strategy"
	"github.com/jiaming2012/autotrade/src/worker"
)

var ErrUnknownSymbol = fmt.Errorf("unknown symbol")

const defaultQueueSize = 1024

type Option func(*Engine)

// WithSkewSource replaces the volume profile that drives entries.
func WithSkewSource(factory func(symbol string) strategy.SkewSource) Option {
	return func(e *Engine) {
		e.skewFactory = factory
	}
}

func WithCommission(perUnit float64) Option {
	return func(e *Engine) {
		e.commission = perUnit
	}
}

func WithQueueSize(size int) Option {
	return func(e *Engine) {
		e.queueSize = size
	}
}

// instance is everything owned by one symbol. Apart from the dispatcher, its fields are
// only touched from tasks running on that dispatcher.
type instance struct {
	symbol     string
	source     *marketdata.Symbol
	position   *orders.PaperPosition
	chart      *strategy.MemoryChart
	strategy   *strategy.Strategy
	dispatcher *worker.Dispatcher
	now        time.Time
}

type Engine struct {
	choices     eventmodels.ChoicesYAML
	symbols     []string
	instances   map[string]*instance
	skewFactory func(symbol string) strategy.SkewSource
	commission  float64
	queueSize   int

	mu      sync.Mutex
	started bool
	wg      sync.WaitGroup
}

func New(choices eventmodels.ChoicesYAML, opts ...Option) (*Engine, error) {
	choices.ApplyDefaults()
	if err := choices.Validate(); err != nil {
		return nil, fmt.Errorf("autotrade.New: %w", err)
	}

	e := &Engine{
		choices:   choices,
		symbols:   choices.SymbolNames(),
		instances: make(map[string]*instance),
		queueSize: defaultQueueSize,
	}

	for _, opt := range opts {
		opt(e)
	}

	for _, symbol := range e.symbols {
		inst, err := e.newInstance(symbol, choices.Symbols[symbol])
		if err != nil {
			return nil, fmt.Errorf("autotrade.New: %w", err)
		}

		e.instances[symbol] = inst
	}

	return e, nil
}

func (e *Engine) newInstance(symbol string, cfg eventmodels.SymbolChoiceYAML) (*instance, error) {
	instrument := eventmodels.NewInstrument(symbol, cfg.InstrumentType)

	inst := &instance{
		symbol:     symbol,
		position:   orders.NewPaperPosition(instrument, orders.WithCommission(e.commission)),
		chart:      strategy.NewMemoryChart(symbol, 100),
		dispatcher: worker.NewDispatcher(symbol, e.queueSize),
	}

	// ticks carry their own timestamps during replay
	inst.source = marketdata.NewSymbol(instrument, func() time.Time { return inst.now })

	var opts []strategy.Option
	if e.skewFactory != nil {
		opts = append(opts, strategy.WithSkewSource(e.skewFactory(symbol)))
	}

	s, err := strategy.New(symbol, cfg, e.choices.TimeFrame, inst.chart, opts...)
	if err != nil {
		return nil, fmt.Errorf("newInstance: %w", err)
	}

	// the position sees each quote before the strategy, so fills and P&L use the latest touch
	if err := inst.source.OnQuote(symbol+" position", inst.position.HandleQuote); err != nil {
		return nil, fmt.Errorf("newInstance: %w", err)
	}

	if err := s.SetPosition(inst.position, inst.source); err != nil {
		return nil, fmt.Errorf("newInstance: %w", err)
	}

	inst.strategy = s
	return inst, nil
}

func (e *Engine) Symbols() []string {
	return append([]string(nil), e.symbols...)
}

// Start runs one dispatcher goroutine per symbol until ctx is done or Stop is called.
func (e *Engine) Start(ctx context.Context) {
	e.mu.Lock()
	defer e.mu.Unlock()

	if e.started {
		return
	}
	e.started = true

	for _, symbol := range e.symbols {
		inst := e.instances[symbol]
		e.wg.Add(1)
		go func() {
			defer e.wg.Done()
			inst.dispatcher.Run(ctx)
		}()
	}

	log.Infof("autotrade: started %d symbols", len(e.symbols))
}

// Stop drains every dispatcher and waits for them to exit.
func (e *Engine) Stop() {
	e.mu.Lock()
	started := e.started
	e.mu.Unlock()

	if !started {
		return
	}

	for _, symbol := range e.symbols {
		e.instances[symbol].dispatcher.Close()
	}

	e.wg.Wait()
	log.Info("autotrade: stopped")
}

// AcceptTick hands a provider field to the symbol's synthesizer. It may be called from any goroutine.
func (e *Engine) AcceptTick(symbol string, t time.Time, field eventmodels.TickField, value string) error {
	inst, ok := e.instances[symbol]
	if !ok {
		return fmt.Errorf("Engine.AcceptTick: %s: %w", symbol, ErrUnknownSymbol)
	}

	err := inst.dispatcher.Post(func() {
		inst.now = t
		if err := inst.source.AcceptTickField(field, value); err != nil {
			log.Warnf("%s: %v", symbol, err)
		}
	})
	if err != nil {
		return fmt.Errorf("Engine.AcceptTick: %w", err)
	}

	return nil
}

// CloseAndDone flattens every tradable symbol and waits for each to finish.
func (e *Engine) CloseAndDone(ctx context.Context) error {
	var errs []error
	for _, symbol := range e.symbols {
		inst := e.instances[symbol]
		if err := inst.dispatcher.Call(ctx, inst.strategy.CloseAndDone); err != nil {
			errs = append(errs, err)
		}
	}

	if len(errs) > 0 {
		return fmt.Errorf("Engine.CloseAndDone: %w", errors.Join(errs...))
	}

	return nil
}

func (e *Engine) Snapshot(ctx context.Context, symbol string) (strategy.Snapshot, error) {
	inst, ok := e.instances[symbol]
	if !ok {
		return strategy.Snapshot{}, fmt.Errorf("Engine.Snapshot: %s: %w", symbol, ErrUnknownSymbol)
	}

	var snapshot strategy.Snapshot
	if err := inst.dispatcher.Call(ctx, func() { snapshot = inst.strategy.Snapshot() }); err != nil {
		return strategy.Snapshot{}, fmt.Errorf("Engine.Snapshot: %w", err)
	}

	return snapshot, nil
}

// Snapshots returns one snapshot per symbol, ordered by symbol.
func (e *Engine) Snapshots(ctx context.Context) ([]strategy.Snapshot, error) {
	snapshots := make([]strategy.Snapshot, 0, len(e.symbols))
	for _, symbol := range e.symbols {
		snapshot, err := e.Snapshot(ctx, symbol)
		if err != nil {
			return nil, fmt.Errorf("Engine.Snapshots: %w", err)
		}

		snapshots = append(snapshots, snapshot)
	}

	return snapshots, nil
}
