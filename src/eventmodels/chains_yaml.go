package eventmodels

type ChainsYAML struct {
	Underlying string      `yaml:"underlying"`
	Chains     []ChainYAML `yaml:"chains"`
}

type ChainYAML struct {
	Expiry  string    `yaml:"expiry"`
	Strikes []float64 `yaml:"strikes"`
}
