package market

// Quote carries the market facts attached to a company node.
type Quote struct {
	Ticker   string
	Price    float64
	High52wk float64
	Low52wk  float64
}

type Client interface {
	Lookup(name string) (*Quote, error)
	Name() string
}
