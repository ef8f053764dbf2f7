package eventpubsub

type Topic string

const (
	QuoteTopic Topic = "quote"
	TradeTopic Topic = "trade"
	GreekTopic Topic = "greek"
)
