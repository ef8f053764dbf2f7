package strategy

import (
	"fmt"
	"time"

	"github.com/kataras/go-events"
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/eventmodels"
	"github.com/jiaming2012/autotrade/src/indicators"
	"github.com/jiaming2012/autotrade/src/orders"
)

type SkewSource interface {
	Fill(price float64, t time.Time, volume uint32)
	Skewness(t time.Time) (float64, bool)
}

type TickSource interface {
	OnQuote(subscriberName string, fn func(eventmodels.Quote)) error
	RemoveOnQuote(fn func(eventmodels.Quote)) error
	OnTrade(subscriberName string, fn func(eventmodels.Trade)) error
	RemoveOnTrade(fn func(eventmodels.Trade)) error
}

type Option func(*Strategy)

func WithSkewSource(source SkewSource) Option {
	return func(s *Strategy) {
		s.skew = source
	}
}

// Strategy runs the order lifecycle for one symbol. Every method must be called from
// the symbol's own goroutine.
type Strategy struct {
	symbol    string
	cfg       eventmodels.SymbolChoiceYAML
	state     TradeState
	quote     eventmodels.Quote
	position  orders.Position
	ticks     TickSource
	order     *orders.Order
	chart     Chart
	skew      SkewSource
	lastSkew  float64
	volume    int64
	bars      *BarFactory
	timeFrame *TradeTimeFrame
	execStats *ExecutionStats

	onQuote     func(eventmodels.Quote)
	onTrade     func(eventmodels.Trade)
	onFilled    events.Listener
	onCancelled events.Listener
}

func New(symbol string, cfg eventmodels.SymbolChoiceYAML, timeFrame eventmodels.TimeFrameYAML, chart Chart, opts ...Option) (*Strategy, error) {
	s := &Strategy{
		symbol:    symbol,
		cfg:       cfg,
		state:     TradeStateInit,
		chart:     chart,
		timeFrame: NewTradeTimeFrame(timeFrame),
		execStats: NewExecutionStats(1000),
	}

	if !cfg.Tradable {
		s.state = TradeStateNoTrade
	}

	for _, opt := range opts {
		opt(s)
	}

	if s.skew == nil {
		profile, err := indicators.NewVolumeProfile(symbol, cfg.Histogram, cfg.MinEntries)
		if err != nil {
			return nil, fmt.Errorf("strategy.New: %w", err)
		}

		s.skew = profile
	}

	s.bars = NewBarFactory(time.Second, s.HandleBarQuotes01Sec)
	s.onQuote = s.HandleQuote
	s.onTrade = s.HandleTrade
	s.onFilled = s.orderFilledListener
	s.onCancelled = s.orderCancelledListener

	log.Infof("%s: strategy installed (algorithm=%q, signal=%q, feed=%s, state=%s)", symbol, cfg.Algorithm, cfg.SignalFrom, cfg.Feed, s.state)
	return s, nil
}

func (s *Strategy) State() TradeState {
	return s.state
}

func (s *Strategy) Symbol() string {
	return s.symbol
}

// SetPosition attaches the position and starts consuming its quotes and trades.
func (s *Strategy) SetPosition(position orders.Position, ticks TickSource) error {
	if s.ticks != nil {
		if err := s.Clear(); err != nil {
			return fmt.Errorf("Strategy.SetPosition: %w", err)
		}
	}

	s.position = position
	s.ticks = ticks

	if err := ticks.OnQuote(s.symbol+" strategy", s.onQuote); err != nil {
		return fmt.Errorf("Strategy.SetPosition: %w", err)
	}

	if err := ticks.OnTrade(s.symbol+" strategy", s.onTrade); err != nil {
		return fmt.Errorf("Strategy.SetPosition: %w", err)
	}

	return nil
}

func (s *Strategy) Clear() error {
	if s.ticks == nil {
		return nil
	}

	if err := s.ticks.RemoveOnQuote(s.onQuote); err != nil {
		return fmt.Errorf("Strategy.Clear: %w", err)
	}

	if err := s.ticks.RemoveOnTrade(s.onTrade); err != nil {
		return fmt.Errorf("Strategy.Clear: %w", err)
	}

	s.ticks = nil
	return nil
}

func (s *Strategy) HandleQuote(quote eventmodels.Quote) {
	if !quote.IsValid() {
		return
	}

	s.chart.Append(SeriesQuoteAsk, quote.Timestamp, quote.Ask)
	s.chart.Append(SeriesQuoteBid, quote.Timestamp, quote.Bid)

	s.quote = quote

	// the one second bars provide the pulse for the algorithm
	s.bars.Add(quote.Timestamp, quote.Midpoint(), 1)
}

func (s *Strategy) HandleTrade(trade eventmodels.Trade) {
	s.chart.Append(SeriesTrade, trade.Timestamp, trade.Price)
	s.chart.Append(SeriesVolume, trade.Timestamp, float64(trade.Size))

	mid := s.quote.Midpoint()
	var direction int64
	switch {
	case mid < trade.Price:
		direction = int64(trade.Size)
	case mid > trade.Price:
		direction = -int64(trade.Size)
	}

	s.volume += direction
	s.chart.Append(SeriesDirection, trade.Timestamp, float64(direction))

	s.skew.Fill(trade.Price, trade.Timestamp, trade.Size)
}

func (s *Strategy) HandleBarQuotes01Sec(bar eventmodels.Bar) {
	if s.position != nil {
		stats := s.position.QueryStats()
		s.chart.Append(SeriesProfitLoss, bar.Timestamp, stats.Total)
	}

	err := s.timeFrame.TimeTick(bar, TimeFrameHandlers{
		RegularHours: s.HandleRHTrading,
		Cancel:       s.HandleCancel,
		GoNeutral:    s.HandleGoNeutral,
	})
	if err != nil {
		log.Errorf("%s: %v", s.symbol, err)
	}
}

func (s *Strategy) HandleRHTrading(bar eventmodels.Bar) {
	begin := time.Now()

	skew, ready := s.skew.Skewness(bar.Timestamp)
	skew = indicators.SanitizeSkew(skew)
	triggerEntry := ready && skew > s.cfg.SkewThreshold

	s.lastSkew = skew
	s.chart.Append(SeriesSkewness, bar.Timestamp, skew)

	switch s.state {
	case TradeStateSearch:
		if triggerEntry && s.position == nil {
			log.Tracef("%s: entry signal with skew %v before a position is attached", s.symbol, skew)
		} else if triggerEntry {
			log.Infof("%s entry with skew: %v", s.symbol, skew)
			s.EnterLong(bar)
		}
	case TradeStateLongSubmitted:
		// wait for the order to execute
	case TradeStateLongExit:
		if s.position != nil && s.position.UnrealizedPL() > s.quote.Bid*s.cfg.ProfitExitFraction {
			s.ExitLong(bar)
		}
	case TradeStateShortSubmitted:
		// wait for the order to execute
	case TradeStateShortExit:
		log.Tracef("%s: no exit rule for a short position", s.symbol)
	case TradeStateLongExitSubmitted, TradeStateShortExitSubmitted:
		// wait for the exit to execute
	case TradeStateNoTrade, TradeStateEndOfDayCancel, TradeStateEndOfDayNeutral, TradeStateDone:
	case TradeStateInit:
		s.state = TradeStateSearch
	}

	elapsed := time.Since(begin)
	s.execStats.Add(elapsed)
	s.chart.Append(SeriesExecutionTime, bar.Timestamp, float64(elapsed.Microseconds()))
}

func (s *Strategy) EnterLong(bar eventmodels.Bar) {
	s.order = s.position.ConstructOrder(orders.Market, orders.OrderSideBuy, s.cfg.Quantity, 0)
	s.chart.AddLabel(SeriesLongEntry, bar.Timestamp, bar.Close, "Long Submit")
	s.placeOrder(TradeStateLongSubmitted)
}

func (s *Strategy) ExitLong(bar eventmodels.Bar) {
	s.order = s.position.ConstructOrder(orders.Limit, orders.OrderSideSell, s.cfg.Quantity, s.quote.Bid-s.cfg.TickSize)
	s.chart.AddLabel(SeriesLongExit, bar.Timestamp, s.quote.Midpoint(), "Long Exit")
	s.placeOrder(TradeStateLongExitSubmitted)
}

// placeOrder enters the submitted state before placing, as the fill may be reported
// before PlaceOrder returns.
func (s *Strategy) placeOrder(submitted TradeState) {
	order := s.order
	order.OnCancelled(s.onCancelled)
	order.OnFilled(s.onFilled)

	previous := s.state
	s.state = submitted

	if err := s.position.PlaceOrder(order); err != nil {
		log.Errorf("%s: failed to place %v: %v", s.symbol, order, err)
		s.releaseOrder(order)
		if s.state == submitted {
			s.state = previous
		}
		return
	}

	log.Infof("%s: %v", s.symbol, order)
}

func (s *Strategy) releaseOrder(order *orders.Order) {
	order.RemoveOnCancelled(s.onCancelled)
	order.RemoveOnFilled(s.onFilled)

	if s.order == order {
		s.order = nil
	}
}

func (s *Strategy) orderFilledListener(payload ...interface{}) {
	order, ok := orders.OrderFromPayload(payload...)
	if !ok {
		log.Errorf("%s: order filled without an order: %v", s.symbol, payload)
		return
	}

	s.HandleOrderFilled(order)
}

func (s *Strategy) orderCancelledListener(payload ...interface{}) {
	order, ok := orders.OrderFromPayload(payload...)
	if !ok {
		log.Errorf("%s: order cancelled without an order: %v", s.symbol, payload)
		return
	}

	s.HandleOrderCancelled(order)
}

func (s *Strategy) HandleOrderFilled(order *orders.Order) {
	s.releaseOrder(order)

	switch s.state {
	case TradeStateLongSubmitted:
		s.chart.AddLabel(SeriesLongFill, order.FillDate, order.AvgFillPrice, "Long Fill")
		s.state = TradeStateLongExit
	case TradeStateShortSubmitted:
		s.chart.AddLabel(SeriesShortFill, order.FillDate, order.AvgFillPrice, "Short Fill")
		s.state = TradeStateShortExit
	case TradeStateLongExitSubmitted:
		s.chart.AddLabel(SeriesLongExit, order.FillDate, order.AvgFillPrice, "Long Exit Fill")
		s.state = TradeStateSearch
	case TradeStateShortExitSubmitted:
		s.chart.AddLabel(SeriesShortFill, order.FillDate, order.AvgFillPrice, "Short Exit Fill")
		s.state = TradeStateSearch
	case TradeStateEndOfDayCancel, TradeStateEndOfDayNeutral, TradeStateDone:
	default:
		log.Panicf("%s: order %d filled in state %s", s.symbol, order.ID, s.state)
	}
}

func (s *Strategy) HandleOrderCancelled(order *orders.Order) {
	s.releaseOrder(order)

	switch s.state {
	case TradeStateEndOfDayCancel, TradeStateEndOfDayNeutral:
		log.Infof("%s: order %d cancelled - end of day", s.symbol, order.ID)
		s.state = TradeStateDone
	case TradeStateLongExitSubmitted, TradeStateShortExitSubmitted:
		log.Errorf("%s: order %d cancelled during exit, no retry available", s.symbol, order.ID)
		s.state = TradeStateDone
	default:
		s.state = TradeStateSearch
	}
}

func (s *Strategy) HandleCancel(bar eventmodels.Bar) {
	s.state = TradeStateEndOfDayCancel
	if s.position != nil {
		if err := s.position.CancelOrders(); err != nil {
			log.Errorf("%s: failed to cancel orders: %v", s.symbol, err)
		}
	}
}

func (s *Strategy) HandleGoNeutral(bar eventmodels.Bar) {
	if s.state == TradeStateNoTrade {
		return
	}

	s.state = TradeStateEndOfDayNeutral
	if s.position != nil {
		if err := s.position.ClosePosition(); err != nil {
			log.Errorf("%s: failed to close position: %v", s.symbol, err)
		}
	}
}

func (s *Strategy) CloseAndDone() {
	if s.state == TradeStateNoTrade {
		return
	}

	log.Infof("%s: sending close & done", s.symbol)
	if s.position != nil {
		if err := s.position.ClosePosition(); err != nil {
			log.Errorf("%s: failed to close position: %v", s.symbol, err)
		}
	}

	s.state = TradeStateDone
}
