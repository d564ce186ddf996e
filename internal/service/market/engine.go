package market

import (
	"sync"
	"time"

	"marketsim/internal/domain/models"
	drepo "marketsim/internal/domain/repository"
)

const (
	defaultPeriodMin = 1 * time.Second
	defaultPeriodMax = 3 * time.Second

	tickVolumeMin  = 100_000
	tickVolumeSpan = 1_000_000
)

type subscriber struct {
	id uint64
	fn func(models.Tick)
	// ready flips once the initial snapshot tick has been delivered; timer
	// firings skip subscribers that are still waiting for it, so the
	// snapshot is always the first tick a consumer sees.
	ready bool
}

// symbolState is the per-symbol table entry. It exists only while at least
// one subscriber is attached; dropping it forgets the current price, so a
// later subscribe restarts the walk from the base price. Keeps per-symbol
// memory bounded.
type symbolState struct {
	symbol string
	price  float64
	subs   []subscriber
	period time.Duration
	stop   chan struct{}
}

// Engine owns the per-symbol price state and fans generated ticks out to
// subscribers. All state transitions serialize on one mutex; each symbol has
// a single timer goroutine, so a consumer is never invoked concurrently with
// itself.
type Engine struct {
	registry drepo.Registry
	model    *PriceModel
	metrics  drepo.Metrics

	rand      Rand
	now       func() time.Time
	periodMin time.Duration
	periodMax time.Duration

	mu     sync.Mutex
	nextID uint64
	table  map[string]*symbolState
	closed bool
}

type EngineOption func(*Engine)

// WithTickPeriod bounds the per-symbol firing period. The period is drawn
// once per symbol activation, not per firing.
func WithTickPeriod(min, max time.Duration) EngineOption {
	return func(e *Engine) {
		if min > 0 && max > min {
			e.periodMin = min
			e.periodMax = max
		}
	}
}

// WithEngineClock overrides the wall clock for tick timestamps.
func WithEngineClock(now func() time.Time) EngineOption {
	return func(e *Engine) {
		if now != nil {
			e.now = now
		}
	}
}

// NewEngine creates the tick engine. The rand source is shared with the
// price model and must only be drawn from under the engine mutex, which all
// engine paths guarantee.
func NewEngine(registry drepo.Registry, model *PriceModel, metrics drepo.Metrics, rnd Rand, opts ...EngineOption) *Engine {
	e := &Engine{
		registry:  registry,
		model:     model,
		metrics:   metrics,
		rand:      rnd,
		now:       time.Now,
		periodMin: defaultPeriodMin,
		periodMax: defaultPeriodMax,
		table:     make(map[string]*symbolState),
	}
	for _, opt := range opts {
		opt(e)
	}
	return e
}

// Subscribe registers a consumer for a symbol's ticks and synchronously
// delivers one zero-change snapshot tick before returning. The first
// subscriber for a symbol starts its timer; the returned handle is
// idempotent and, when it removes the last subscriber, stops the timer and
// discards the symbol's state.
func (e *Engine) Subscribe(symbol string, fn func(models.Tick)) func() {
	e.mu.Lock()
	if e.closed {
		e.mu.Unlock()
		return func() {}
	}
	st, ok := e.table[symbol]
	if !ok {
		st = &symbolState{
			symbol: symbol,
			price:  e.registry.BasePrice(symbol),
			period: e.periodMin + time.Duration(e.rand.Int63n(int64(e.periodMax-e.periodMin))),
			stop:   make(chan struct{}),
		}
		e.table[symbol] = st
		go e.run(st)
	}
	e.nextID++
	id := e.nextID
	st.subs = append(st.subs, subscriber{id: id, fn: fn})
	e.metrics.RecordSubscribers(symbol, len(st.subs))
	initial := models.Tick{
		Symbol:    symbol,
		Price:     Round2(st.price),
		Volume:    tickVolumeMin + e.rand.Int63n(tickVolumeSpan),
		Timestamp: e.now().UnixMilli(),
	}
	e.mu.Unlock()

	fn(initial)

	e.mu.Lock()
	if cur, ok := e.table[symbol]; ok && cur == st {
		for i := range cur.subs {
			if cur.subs[i].id == id {
				cur.subs[i].ready = true
				break
			}
		}
	}
	e.mu.Unlock()

	var once sync.Once
	return func() {
		once.Do(func() { e.unsubscribe(symbol, id) })
	}
}

// CurrentPrice returns the last generated price for the symbol, or its base
// price if the symbol is not currently active.
func (e *Engine) CurrentPrice(symbol string) float64 {
	e.mu.Lock()
	if st, ok := e.table[symbol]; ok {
		p := st.price
		e.mu.Unlock()
		return Round2(p)
	}
	e.mu.Unlock()
	return Round2(e.registry.BasePrice(symbol))
}

// ActiveSymbols reports how many symbols currently hold a timer.
func (e *Engine) ActiveSymbols() int {
	e.mu.Lock()
	defer e.mu.Unlock()
	return len(e.table)
}

// Close stops every symbol timer. Subscribers are not notified; the engine
// simply goes quiet.
func (e *Engine) Close() {
	e.mu.Lock()
	defer e.mu.Unlock()
	if e.closed {
		return
	}
	e.closed = true
	for sym, st := range e.table {
		close(st.stop)
		delete(e.table, sym)
	}
}

func (e *Engine) unsubscribe(symbol string, id uint64) {
	e.mu.Lock()
	defer e.mu.Unlock()
	st, ok := e.table[symbol]
	if !ok {
		return
	}
	for i := range st.subs {
		if st.subs[i].id == id {
			st.subs = append(st.subs[:i], st.subs[i+1:]...)
			break
		}
	}
	e.metrics.RecordSubscribers(symbol, len(st.subs))
	if len(st.subs) == 0 {
		close(st.stop)
		delete(e.table, symbol)
	}
}

func (e *Engine) run(st *symbolState) {
	t := time.NewTicker(st.period)
	defer t.Stop()
	for {
		select {
		case <-st.stop:
			return
		case <-t.C:
			e.fire(st)
		}
	}
}

// fire advances the symbol's price and delivers the tick to every ready
// subscriber in registration order. The subscriber snapshot is taken under
// the lock; delivery happens outside it so a consumer may safely call its
// own unsubscribe handle.
func (e *Engine) fire(st *symbolState) {
	e.mu.Lock()
	if len(st.subs) == 0 {
		e.mu.Unlock()
		return
	}
	sym := st.symbol
	base := e.registry.BasePrice(sym)
	st.price = e.model.NextPrice(st.price, base, e.registry.Volatility(sym))
	price := Round2(st.price)
	tick := models.Tick{
		Symbol:        sym,
		Price:         price,
		Change:        Round2(price - base),
		ChangePercent: Round2((price - base) / base * 100),
		Volume:        tickVolumeMin + e.rand.Int63n(tickVolumeSpan),
		Timestamp:     e.now().UnixMilli(),
	}
	targets := make([]func(models.Tick), 0, len(st.subs))
	for _, s := range st.subs {
		if s.ready {
			targets = append(targets, s.fn)
		}
	}
	e.mu.Unlock()

	e.metrics.RecordTick(sym, price)
	for _, fn := range targets {
		fn(tick)
	}
}
