package domain

// Asset and quote currency are fixed for this widget.
const (
	AssetID     = "solana"
	AssetSymbol = "SOL"
	AssetName   = "Solana"
	Currency    = "usd"

	// HistoryDays is the lookback window for the historical chart.
	HistoryDays = 30
)
