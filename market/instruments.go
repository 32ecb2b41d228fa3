// market/instruments.go
package market

// InstrumentMeta describes a futures contract as far as the journal needs:
// the minimum price increment and its dollar value per contract.
type InstrumentMeta struct {
	Name      string
	TickSize  float64
	TickValue float64
}

// PointValue is the dollar value of one full point per contract.
func (m InstrumentMeta) PointValue() float64 {
	if m.TickSize == 0 {
		return 0
	}
	return m.TickValue / m.TickSize
}

var Instruments = map[string]InstrumentMeta{
	"ES": {
		Name:      "ES",
		TickSize:  0.25,
		TickValue: 12.50,
	},
	"MES": {
		Name:      "MES",
		TickSize:  0.25,
		TickValue: 1.25,
	},
	"NQ": {
		Name:      "NQ",
		TickSize:  0.25,
		TickValue: 5.00,
	},
	"MNQ": {
		Name:      "MNQ",
		TickSize:  0.25,
		TickValue: 0.50,
	},
	"CL": {
		Name:      "CL",
		TickSize:  0.01,
		TickValue: 10.00,
	},
	"GC": {
		Name:      "GC",
		TickSize:  0.10,
		TickValue: 10.00,
	},
}
