package journal

import (
	"fmt"
	"strings"
	"time"
)

// FormatTradeOrg renders one trade as an Org subtree with empty
// narrative sections to fill in during review.
func FormatTradeOrg(t TradeRecord) string {
	var b strings.Builder

	fmt.Fprintf(&b, "** Trade: %s (%s)\n", t.Reason, shortID(t.TradeID))
	b.WriteString(":PROPERTIES:\n")
	fmt.Fprintf(&b, ":TRADE_ID: %s\n", t.TradeID)
	fmt.Fprintf(&b, ":RUN_ID: %s\n", t.RunID)
	fmt.Fprintf(&b, ":ENTRY_TIME: %s\n", t.EntryTime.Format(time.RFC3339))
	fmt.Fprintf(&b, ":EXIT_TIME: %s\n", t.ExitTime.Format(time.RFC3339))
	fmt.Fprintf(&b, ":ENTRY_PRICE: %.4f\n", t.EntryPrice)
	fmt.Fprintf(&b, ":EXIT_PRICE: %.4f\n", t.ExitPrice)
	fmt.Fprintf(&b, ":SHARES: %.4f\n", t.Shares)
	fmt.Fprintf(&b, ":RETURN_PCT: %.2f\n", t.Return*100)
	fmt.Fprintf(&b, ":REASON: %s\n", t.Reason)
	if t.EntryStage != "" {
		fmt.Fprintf(&b, ":ENTRY_STAGE: %s\n", t.EntryStage)
	}
	if t.ExitStage != "" {
		fmt.Fprintf(&b, ":EXIT_STAGE: %s\n", t.ExitStage)
	}
	b.WriteString(":END:\n")
	b.WriteString("\n*** Thesis\n\n*** Execution\n\n*** Review\n")

	return b.String()
}

// FormatTradesOrg renders many trades separated by a blank line.
func FormatTradesOrg(trades []TradeRecord) string {
	parts := make([]string, 0, len(trades))
	for _, t := range trades {
		parts = append(parts, FormatTradeOrg(t))
	}
	return strings.Join(parts, "\n\n")
}

func shortID(id string) string {
	if len(id) > 8 {
		return id[:8]
	}
	return id
}
