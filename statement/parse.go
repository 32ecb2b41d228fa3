package statement

import (
	"strings"
)

// headerSynonyms maps canonical statement columns to the spellings seen in
// English, German and Russian exports. Matching is case-insensitive and
// applied once at parse time; downstream code only sees canonical fields.
var headerSynonyms = map[string][]string{
	"symbol":       {"symbol", "instrument", "символ", "инструмент"},
	"side":         {"side", "direction", "seite", "richtung", "сторона", "направление"},
	"size":         {"size", "qty", "quantity", "contracts", "menge", "anzahl", "размер", "кол-во", "количество"},
	"pnl":          {"p&l", "pnl", "profit", "profit/loss", "gewinn/verlust", "прибыль", "п/у"},
	"fee":          {"fee", "fees", "commission", "gebühr", "provision", "комиссия"},
	"open price":   {"open price", "open", "entry price", "eröffnungskurs", "цена открытия"},
	"close price":  {"close price", "close", "exit price", "schlusskurs", "цена закрытия"},
	"open date":    {"open date", "open time", "eröffnungsdatum", "дата открытия", "время открытия"},
	"close date":   {"close date", "close time", "schlussdatum", "дата закрытия", "время закрытия"},
	"open order":   {"open order", "open order id", "ордер открытия"},
	"close order":  {"close order", "close order id", "ордер закрытия"},
	"pips":         {"pips", "punkte", "пипсы", "пункты"},
	"drawdown":     {"drawdown", "просадка"},
	"drawdownCash": {"cash drawdown", "drawdown cash", "просадка $"},
}

// DetectDelimiter sniffs ';' vs ',' over the first ~2000 characters.
// Semicolon wins ties: European exports use it with comma decimals.
func DetectDelimiter(text string) rune {
	head := text
	if len(head) > 2000 {
		head = head[:2000]
	}
	if strings.Count(head, ";") >= strings.Count(head, ",") {
		return ';'
	}
	return ','
}

// splitLines splits on \r\n, \r or \n and drops blank lines.
func splitLines(text string) []string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	text = strings.ReplaceAll(text, "\r", "\n")

	var out []string
	for _, ln := range strings.Split(text, "\n") {
		if strings.TrimSpace(ln) != "" {
			out = append(out, ln)
		}
	}
	return out
}

// splitFields splits one line on the delimiter, honoring quoted fields:
// a double quote toggles quote state, the delimiter only splits outside.
func splitFields(line string, delim rune) []string {
	var out []string
	var b strings.Builder
	inQuote := false

	for _, r := range line {
		switch {
		case r == '"':
			inQuote = !inQuote
		case r == delim && !inQuote:
			out = append(out, strings.TrimSpace(b.String()))
			b.Reset()
		default:
			b.WriteRune(r)
		}
	}
	out = append(out, strings.TrimSpace(b.String()))
	return out
}

// resolveHeader maps canonical field names to column indexes. The first
// matching column wins.
func resolveHeader(header []string) map[string]int {
	idx := make(map[string]int, len(headerSynonyms))
	for canonical, spellings := range headerSynonyms {
		for i, cell := range header {
			cell = strings.ToLower(strings.TrimSpace(cell))
			match := false
			for _, sp := range spellings {
				if cell == sp {
					match = true
					break
				}
			}
			if match {
				idx[canonical] = i
				break
			}
		}
	}
	return idx
}

// Parse turns broker CSV text into normalized rows. The text is read twice
// at most: once for the delimiter sniff, once for the real pass. Field-level
// failures degrade to nil values; Parse itself never fails on content.
func Parse(text string) []Row {
	lines := splitLines(text)
	if len(lines) < 2 {
		return nil
	}

	delim := DetectDelimiter(text)
	idx := resolveHeader(splitFields(lines[0], delim))

	cell := func(cols []string, field string) string {
		i, ok := idx[field]
		if !ok || i >= len(cols) {
			return ""
		}
		return cols[i]
	}

	rows := make([]Row, 0, len(lines)-1)
	for _, ln := range lines[1:] {
		cols := splitFields(ln, delim)

		empty := true
		for _, c := range cols {
			if c != "" {
				empty = false
				break
			}
		}
		if empty {
			continue
		}

		r := Row{
			Symbol:       cell(cols, "symbol"),
			Side:         cell(cols, "side"),
			Size:         ParseNumber(cell(cols, "size")),
			PnL:          ParseNumber(cell(cols, "pnl")),
			Fee:          ParseNumber(cell(cols, "fee")),
			OpenPrice:    ParseNumber(cell(cols, "open price")),
			ClosePrice:   ParseNumber(cell(cols, "close price")),
			Pips:         ParseNumber(cell(cols, "pips")),
			Drawdown:     ParseNumber(cell(cols, "drawdown")),
			DrawdownCash: ParseNumber(cell(cols, "drawdownCash")),
			OpenDateRaw:  cell(cols, "open date"),
			CloseDateRaw: cell(cols, "close date"),
			OpenOrderID:  strings.TrimSpace(cell(cols, "open order")),
			CloseOrderID: strings.TrimSpace(cell(cols, "close order")),
		}
		r.OpenDate = ParseDate(r.OpenDateRaw)
		r.CloseDate = ParseDate(r.CloseDateRaw)

		rows = append(rows, r)
	}
	return rows
}
