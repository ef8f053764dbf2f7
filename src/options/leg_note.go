package options

import "fmt"

// LegType is the role a leg plays in the combo.
type LegType string

const (
	LegTypeLong  LegType = "long"
	LegTypeShort LegType = "short"
)

type LegSide string

const (
	LegSideLong  LegSide = "long"
	LegSideShort LegSide = "short"
)

type LegOption string

const (
	LegOptionCall LegOption = "call"
	LegOptionPut  LegOption = "put"
)

type LegAlgo string

const (
	LegAlgoUnknown  LegAlgo = "unknown"
	LegAlgoBullPut  LegAlgo = "bull-put"
	LegAlgoBearCall LegAlgo = "bear-call"
)

type LegMomentum string

const (
	LegMomentumUnknown LegMomentum = "unknown"
	LegMomentumRise    LegMomentum = "rise"
	LegMomentumFall    LegMomentum = "fall"
)

type LegState string

const (
	LegStateOpen    LegState = "open"
	LegStateClosing LegState = "closing"
	LegStateClosed  LegState = "closed"
	LegStateExpired LegState = "expired"
)

// LegNote is the metadata stored against each leg of a combo position.
type LegNote struct {
	Algo     LegAlgo     `json:"algo"`
	Momentum LegMomentum `json:"momentum"`
	Type     LegType     `json:"type"`
	Side     LegSide     `json:"side"`
	Option   LegOption   `json:"option"`
	State    LegState    `json:"state"`
	Lock     bool        `json:"lock"`
}

func (n LegNote) String() string {
	return fmt.Sprintf("algo=%s,momentum=%s,type=%s,side=%s,option=%s,state=%s,lock=%t", n.Algo, n.Momentum, n.Type, n.Side, n.Option, n.State, n.Lock)
}
