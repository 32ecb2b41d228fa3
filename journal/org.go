package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders a TradeRecord as an Org-mode block suitable for
// pasting into a journal. Structured facts live in a PROPERTIES drawer for
// easy search; the narrative sections stay blank for the trader to fill.
func FormatTradeOrg(t TradeRecord) string {
	heading := fmt.Sprintf("** Trade: %s %s (%s)", t.Instrument, t.Side, shortID(t.ID))

	var b strings.Builder
	b.WriteString(heading)
	b.WriteString("\n")
	b.WriteString(":PROPERTIES:\n")
	b.WriteString(fmt.Sprintf(":TRADE_ID: %s\n", t.ID))
	b.WriteString(fmt.Sprintf(":INSTRUMENT: %s\n", t.Instrument))
	b.WriteString(fmt.Sprintf(":SIDE: %s\n", t.Side))
	b.WriteString(fmt.Sprintf(":SIZE: %.0f\n", t.Size))
	if t.OpenPrice != nil {
		b.WriteString(fmt.Sprintf(":OPEN_PRICE: %.2f\n", *t.OpenPrice))
	}
	if t.ClosePrice != nil {
		b.WriteString(fmt.Sprintf(":CLOSE_PRICE: %.2f\n", *t.ClosePrice))
	}
	if t.OpenTime != nil {
		b.WriteString(fmt.Sprintf(":OPEN_TIME: %s\n", t.OpenTime.Format(time.RFC3339)))
	}
	b.WriteString(fmt.Sprintf(":CLOSE_TIME: %s\n", t.CloseTime.Format(time.RFC3339)))
	b.WriteString(fmt.Sprintf(":PNL: %.2f\n", t.PnL))
	b.WriteString(fmt.Sprintf(":FEE: %.2f\n", t.Fee))
	if t.Pips != nil {
		b.WriteString(fmt.Sprintf(":PIPS: %.1f\n", *t.Pips))
	}
	if t.ExternalKey != "" {
		b.WriteString(fmt.Sprintf(":ORDER: %s\n", t.ExternalKey))
	}
	b.WriteString(":END:\n")
	b.WriteString("\n")
	b.WriteString("*** Thesis\n- \n\n")
	b.WriteString("*** Execution\n- \n\n")
	b.WriteString("*** Review\n- \n")

	return b.String()
}

// FormatTradesOrg renders multiple trades separated by blank lines.
func FormatTradesOrg(trades []TradeRecord) string {
	var b strings.Builder
	for i, t := range trades {
		if i > 0 {
			b.WriteString("\n\n")
		}
		b.WriteString(FormatTradeOrg(t))
	}
	return b.String()
}

func shortID(full string) string {
	if len(full) <= 8 {
		return full
	}
	return full[:8]
}
