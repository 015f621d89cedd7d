package fulfill

import (
	"fmt"
	"strings"
	"unicode/utf8"

	"github.com/shopspring/decimal"
	"golang.org/x/text/currency"
	"golang.org/x/text/language"
	"golang.org/x/text/message"

	"github.com/roach88/kopi/internal/config"
	"github.com/roach88/kopi/internal/model"
)

const receiptWidth = 38

// centerLine pads s to the middle of the receipt, counting runes so
// non-ASCII shop names and labels stay centered.
func centerLine(s string) string {
	pad := (receiptWidth - utf8.RuneCountInString(s)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + s
}

// RenderReceipt produces the printable receipt body. The result is
// stored verbatim in the receipt ledger, so any change here only
// affects receipts issued from now on.
func RenderReceipt(cfg *config.Config, r *model.Receipt, po *model.PendingOrder) string {
	unit, err := currency.ParseISO(cfg.Currency)
	if err != nil {
		unit = currency.USD
	}
	p := message.NewPrinter(language.English)
	amount := func(d decimal.Decimal) string {
		f, _ := d.Float64()
		return p.Sprintf("%v", currency.Symbol(unit.Amount(f)))
	}

	var b strings.Builder
	rule := strings.Repeat("-", receiptWidth)
	center := func(s string) {
		b.WriteString(centerLine(s) + "\n")
	}

	center("KOPI CORNER")
	center(po.OrderTime.Format("2006-01-02 15:04:05"))
	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "Order:    %s\n", po.OrderID)
	fmt.Fprintf(&b, "Customer: %s\n", po.CustomerName)
	if po.CashierID != "" {
		fmt.Fprintf(&b, "Cashier:  %s\n", po.CashierID)
	}
	fmt.Fprintf(&b, "Type:     %s\n", po.OrderType)
	b.WriteString(rule + "\n")

	for i := range po.Lines {
		l := &po.Lines[i]
		name := l.ProductName
		if l.SizeName != "" {
			name += " (" + l.SizeName + ")"
		}
		fmt.Fprintf(&b, "%-26s %11s\n", fmt.Sprintf("%dx %s", l.Quantity, name), amount(l.Subtotal()))
		if l.AddOns != "" {
			fmt.Fprintf(&b, "   + %s\n", l.AddOns)
		}
		if l.SpecialRequest != "" {
			fmt.Fprintf(&b, "   * %s\n", l.SpecialRequest)
		}
	}

	b.WriteString(rule + "\n")
	fmt.Fprintf(&b, "%-26s %11s\n", "TOTAL", amount(r.TotalAmount))
	fmt.Fprintf(&b, "%-26s %11s\n", "CASH", amount(r.CashPaid))
	fmt.Fprintf(&b, "%-26s %11s\n", "CHANGE", amount(r.Change))
	b.WriteString(rule + "\n")
	center("Thank you!")
	return b.String()
}
