package eventmodels

type PriceTickKind string

const (
	PriceTickBid   PriceTickKind = "bid"
	PriceTickAsk   PriceTickKind = "ask"
	PriceTickLast  PriceTickKind = "last"
	PriceTickHigh  PriceTickKind = "high"
	PriceTickLow   PriceTickKind = "low"
	PriceTickClose PriceTickKind = "close"
)

type SizeTickKind string

const (
	SizeTickBid    SizeTickKind = "bid_size"
	SizeTickAsk    SizeTickKind = "ask_size"
	SizeTickLast   SizeTickKind = "last_size"
	SizeTickVolume SizeTickKind = "volume"
)

type StringTickKind string

const (
	StringTickLastTimestamp StringTickKind = "last_timestamp"
)

type TickCategory int

const (
	TickCategoryPrice TickCategory = iota + 1
	TickCategorySize
	TickCategoryString
)

// TickField carries exactly one kind, selected by Category.
type TickField struct {
	Category TickCategory
	Price    PriceTickKind
	Size     SizeTickKind
	String   StringTickKind
}

func (f TickField) Name() string {
	switch f.Category {
	case TickCategoryPrice:
		return string(f.Price)
	case TickCategorySize:
		return string(f.Size)
	case TickCategoryString:
		return string(f.String)
	default:
		return "unknown"
	}
}

var tickFields = map[string]TickField{
	string(PriceTickBid):            {Category: TickCategoryPrice, Price: PriceTickBid},
	string(PriceTickAsk):            {Category: TickCategoryPrice, Price: PriceTickAsk},
	string(PriceTickLast):           {Category: TickCategoryPrice, Price: PriceTickLast},
	string(PriceTickHigh):           {Category: TickCategoryPrice, Price: PriceTickHigh},
	string(PriceTickLow):            {Category: TickCategoryPrice, Price: PriceTickLow},
	string(PriceTickClose):          {Category: TickCategoryPrice, Price: PriceTickClose},
	string(SizeTickBid):             {Category: TickCategorySize, Size: SizeTickBid},
	string(SizeTickAsk):             {Category: TickCategorySize, Size: SizeTickAsk},
	string(SizeTickLast):            {Category: TickCategorySize, Size: SizeTickLast},
	string(SizeTickVolume):          {Category: TickCategorySize, Size: SizeTickVolume},
	string(StringTickLastTimestamp): {Category: TickCategoryString, String: StringTickLastTimestamp},
}

// Interactive Brokers tick type codes.
var ibTickCodes = map[int]string{
	0:  string(SizeTickBid),
	1:  string(PriceTickBid),
	2:  string(PriceTickAsk),
	3:  string(SizeTickAsk),
	4:  string(PriceTickLast),
	5:  string(SizeTickLast),
	6:  string(PriceTickHigh),
	7:  string(PriceTickLow),
	8:  string(SizeTickVolume),
	9:  string(PriceTickClose),
	45: string(StringTickLastTimestamp),
}

// ParseTickField returns false for kinds the synthesizer does not consume.
func ParseTickField(name string) (TickField, bool) {
	f, ok := tickFields[name]
	return f, ok
}

func TickFieldFromIB(code int) (TickField, bool) {
	name, ok := ibTickCodes[code]
	if !ok {
		return TickField{}, false
	}

	return ParseTickField(name)
}
