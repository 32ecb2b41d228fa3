package market

// PriceVolumeRow is one traded price level within a (owner, instrument, day)
// scope: total volume and net aggressor delta recorded at that price.
type PriceVolumeRow struct {
	Price    float64 `json:"price"`
	Volume   float64 `json:"volume"`
	DeltaAgg float64 `json:"deltaAgg"`
}
