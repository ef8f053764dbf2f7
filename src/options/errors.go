package options

import "fmt"

var (
	ErrNoSuchChain = fmt.Errorf("no such chain")
	ErrNoStrike    = fmt.Errorf("no strike available")
)
