package strategy

type TradeState string

const (
	TradeStateInit               TradeState = "init"
	TradeStateSearch             TradeState = "search"
	TradeStateLongSubmitted      TradeState = "long_submitted"
	TradeStateLongExit           TradeState = "long_exit"
	TradeStateShortSubmitted     TradeState = "short_submitted"
	TradeStateShortExit          TradeState = "short_exit"
	TradeStateLongExitSubmitted  TradeState = "long_exit_submitted"
	TradeStateShortExitSubmitted TradeState = "short_exit_submitted"
	TradeStateNoTrade            TradeState = "no_trade"
	TradeStateEndOfDayCancel     TradeState = "end_of_day_cancel"
	TradeStateEndOfDayNeutral    TradeState = "end_of_day_neutral"
	TradeStateDone               TradeState = "done"
)

func (s TradeState) String() string {
	return string(s)
}

// IsQuiescent reports whether the strategy will no longer open positions today.
func (s TradeState) IsQuiescent() bool {
	switch s {
	case TradeStateNoTrade, TradeStateEndOfDayCancel, TradeStateEndOfDayNeutral, TradeStateDone:
		return true
	default:
		return false
	}
}
