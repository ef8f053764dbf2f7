package marketdata

import (
	"fmt"
	"math"
	"strconv"
	"time"

	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/eventmodels"
	"github.com/jiaming2012/autotrade/src/eventpubsub"
)

// Symbol accumulates provider tick fields for one instrument and synthesizes
// quote, trade and greek events from them. It is not safe for concurrent use.
type Symbol struct {
	instrument *eventmodels.Instrument
	clock      func() time.Time
	hub        *eventpubsub.Hub

	bid      float64
	ask      float64
	last     float64
	high     float64
	low      float64
	close    float64
	bidSize  uint32
	askSize  uint32
	lastSize uint32
	volume   uint32

	optionPrice     float64
	underlyingPrice float64
	pvDividend      float64

	bidFound           bool
	askFound           bool
	bidSizeFound       bool
	askSizeFound       bool
	lastFound          bool
	lastSizeFound      bool
	lastTimestampFound bool
}

func NewSymbol(instrument *eventmodels.Instrument, clock func() time.Time) *Symbol {
	if clock == nil {
		clock = time.Now
	}

	return &Symbol{
		instrument: instrument,
		clock:      clock,
		hub:        eventpubsub.NewHub(instrument.Name),
	}
}

func (s *Symbol) Instrument() *eventmodels.Instrument {
	return s.instrument
}

func (s *Symbol) AcceptTickPrice(kind eventmodels.PriceTickKind, price float64) {
	switch kind {
	case eventmodels.PriceTickBid:
		if price != s.bid {
			s.bid = price
			s.bidFound = true
			s.buildQuote()
		}
	case eventmodels.PriceTickAsk:
		if price != s.ask {
			s.ask = price
			s.askFound = true
			s.buildQuote()
		}
	case eventmodels.PriceTickLast:
		s.last = price
		s.lastFound = true
		s.buildTrade()
	case eventmodels.PriceTickHigh:
		s.high = price
	case eventmodels.PriceTickLow:
		s.low = price
	case eventmodels.PriceTickClose:
		s.close = price
	default:
		log.Tracef("%s: ignoring price tick kind %q", s.instrument.Name, kind)
	}
}

// scaleSize applies the instrument's size multiplier, saturating at math.MaxUint32.
func (s *Symbol) scaleSize(raw Decimal) uint32 {
	scaled := uint64(DecodeSize(raw)) * uint64(s.instrument.Type.SizeMultiplier())
	if scaled > math.MaxUint32 {
		log.Warnf("%s: size %d exceeds %d, saturating", s.instrument.Name, scaled, uint32(math.MaxUint32))
		return math.MaxUint32
	}

	return uint32(scaled)
}

func (s *Symbol) AcceptTickSize(kind eventmodels.SizeTickKind, raw Decimal) {
	size := s.scaleSize(raw)

	switch kind {
	case eventmodels.SizeTickBid:
		if size != s.bidSize {
			s.bidSize = size
			s.bidSizeFound = true
			s.buildQuote()
		}
	case eventmodels.SizeTickAsk:
		if size != s.askSize {
			s.askSize = size
			s.askSizeFound = true
			s.buildQuote()
		}
	case eventmodels.SizeTickLast:
		s.lastSize = size
		s.lastSizeFound = true
		s.buildTrade()
	case eventmodels.SizeTickVolume:
		s.volume = size
		s.lastFound = false
		s.lastSizeFound = false
	default:
		log.Tracef("%s: ignoring size tick kind %q", s.instrument.Name, kind)
	}
}

// AcceptTickString handles the last-trade timestamp. The timestamp flag is recorded
// but never gates trade synthesis; receiving it discards any half-built trade.
func (s *Symbol) AcceptTickString(kind eventmodels.StringTickKind, value string) {
	switch kind {
	case eventmodels.StringTickLastTimestamp:
		s.lastTimestampFound = true
		s.lastFound = false
		s.lastSizeFound = false
		s.buildTrade()
	default:
		log.Tracef("%s: ignoring string tick kind %q", s.instrument.Name, kind)
	}
}

// AcceptTickField routes a parsed provider field and its textual value.
func (s *Symbol) AcceptTickField(field eventmodels.TickField, value string) error {
	switch field.Category {
	case eventmodels.TickCategoryPrice:
		price, err := strconv.ParseFloat(value, 64)
		if err != nil {
			return fmt.Errorf("Symbol.AcceptTickField: invalid price %q for %s: %w", value, field.Name(), err)
		}

		s.AcceptTickPrice(field.Price, price)
	case eventmodels.TickCategorySize:
		raw, err := ParseDecimal(value)
		if err != nil {
			raw = UnsetDecimal
		}

		s.AcceptTickSize(field.Size, raw)
	case eventmodels.TickCategoryString:
		s.AcceptTickString(field.String, value)
	default:
		log.Tracef("%s: ignoring tick field %v", s.instrument.Name, field)
	}

	return nil
}

func (s *Symbol) Greeks(optionPrice, underlyingPrice, pvDividend, impliedVolatility, delta, gamma, vega, theta float64) {
	s.optionPrice = optionPrice
	s.underlyingPrice = underlyingPrice
	s.pvDividend = pvDividend

	s.hub.Publish(eventpubsub.GreekTopic, eventmodels.Greek{
		Timestamp:         s.clock(),
		ImpliedVolatility: impliedVolatility,
		Delta:             delta,
		Gamma:             gamma,
		Theta:             theta,
		Vega:              vega,
		Reserved:          0,
	})
}

func (s *Symbol) buildQuote() {
	if !s.askFound && !s.bidFound {
		return
	}

	s.hub.Publish(eventpubsub.QuoteTopic, eventmodels.Quote{
		Timestamp: s.clock(),
		Bid:       s.bid,
		BidSize:   s.bidSize,
		Ask:       s.ask,
		AskSize:   s.askSize,
	})

	s.askFound = false
	s.askSizeFound = false
	s.bidFound = false
	s.bidSizeFound = false
}

func (s *Symbol) buildTrade() {
	if !s.lastFound || !s.lastSizeFound {
		return
	}

	s.hub.Publish(eventpubsub.TradeTopic, eventmodels.Trade{
		Timestamp: s.clock(),
		Price:     s.last,
		Size:      s.lastSize,
	})

	s.lastFound = false
	s.lastSizeFound = false
}

func (s *Symbol) OnQuote(subscriberName string, fn func(eventmodels.Quote)) error {
	return s.hub.Subscribe(subscriberName, eventpubsub.QuoteTopic, fn)
}

func (s *Symbol) RemoveOnQuote(fn func(eventmodels.Quote)) error {
	return s.hub.Unsubscribe(eventpubsub.QuoteTopic, fn)
}

func (s *Symbol) OnTrade(subscriberName string, fn func(eventmodels.Trade)) error {
	return s.hub.Subscribe(subscriberName, eventpubsub.TradeTopic, fn)
}

func (s *Symbol) RemoveOnTrade(fn func(eventmodels.Trade)) error {
	return s.hub.Unsubscribe(eventpubsub.TradeTopic, fn)
}

func (s *Symbol) OnGreek(subscriberName string, fn func(eventmodels.Greek)) error {
	return s.hub.Subscribe(subscriberName, eventpubsub.GreekTopic, fn)
}

func (s *Symbol) RemoveOnGreek(fn func(eventmodels.Greek)) error {
	return s.hub.Unsubscribe(eventpubsub.GreekTopic, fn)
}

func (s *Symbol) High() float64 {
	return s.high
}

func (s *Symbol) Low() float64 {
	return s.low
}

func (s *Symbol) Close() float64 {
	return s.close
}

func (s *Symbol) Volume() uint32 {
	return s.volume
}

func (s *Symbol) OptionPrice() float64 {
	return s.optionPrice
}

func (s *Symbol) UnderlyingPrice() float64 {
	return s.underlyingPrice
}

func (s *Symbol) PVDividend() float64 {
	return s.pvDividend
}
