package spread

import (
	log "github.com/sirupsen/logrus"

	"github.com/jiaming2012/autotrade/src/options"
)

type legDefinition struct {
	Type options.LegType
	Side options.LegSide
}

// Indexed by leg role. The side of a role is the same whichever way the market moves;
// only the option kind depends on momentum.
var legDefinitions = [...]legDefinition{
	{Type: options.LegTypeLong, Side: options.LegSideLong},
	{Type: options.LegTypeShort, Side: options.LegSideShort},
}

func legIndex(legType options.LegType) int {
	switch legType {
	case options.LegTypeLong:
		return 0
	case options.LegTypeShort:
		return 1
	default:
		log.Panicf("legIndex: unknown leg type %q", legType)
		return -1
	}
}

func legOption(momentum options.LegMomentum) options.LegOption {
	switch momentum {
	case options.LegMomentumRise:
		return options.LegOptionPut
	case options.LegMomentumFall:
		return options.LegOptionCall
	default:
		log.Panicf("legOption: no option kind for momentum %q", momentum)
		return ""
	}
}

func momentumOf(direction options.MarketDirection) (options.LegMomentum, options.LegAlgo) {
	switch direction {
	case options.MarketDirectionRising:
		return options.LegMomentumRise, options.LegAlgoBullPut
	case options.MarketDirectionFalling:
		return options.LegMomentumFall, options.LegAlgoBearCall
	default:
		log.Panicf("momentumOf: direction %q has no spread", direction)
		return options.LegMomentumUnknown, options.LegAlgoUnknown
	}
}
