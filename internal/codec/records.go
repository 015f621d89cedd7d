package codec

import (
	"github.com/shopspring/decimal"

	"github.com/roach88/kopi/internal/model"
)

// Legacy-row defaults. Rows written by older builds may lack trailing
// fields; decoders fill these in instead of failing.
const (
	defaultOrderType       = "DINE_IN"
	defaultComplaintStatus = "OPEN"
)

// EncodePendingOrder renders a pending order as one record line:
//
//	orderId|customer|time|status|total|[line;line;...]|orderType|cashierId
//
// where each line is name^price^qty^temp^sugar^addOns^addOnCost^special^size^sizeCost.
func EncodePendingOrder(po *model.PendingOrder) string {
	items := make([]string, 0, len(po.Lines))
	for i := range po.Lines {
		l := &po.Lines[i]
		items = append(items, joinWith(itemFieldSep,
			escapeField(l.ProductName),
			encodeDecimal(l.Price),
			itoa(l.Quantity),
			escapeField(l.Temperature),
			itoa(l.SugarLevel),
			escapeField(l.AddOns),
			encodeDecimal(l.AddOnCost),
			escapeField(l.SpecialRequest),
			escapeField(l.SizeName),
			encodeDecimal(l.SizeCost),
		))
	}
	return joinFields(
		escapeField(po.OrderID),
		escapeField(po.CustomerName),
		encodeTime(po.OrderTime),
		string(po.Status),
		encodeDecimal(po.TotalAmount),
		encodeList(items),
		escapeField(po.OrderType),
		escapeField(po.CashierID),
	)
}

// DecodePendingOrder parses one pending-order line. Rows older than the
// orderType/cashierId fields decode with OrderType DINE_IN and an empty
// cashier id. The stored total is ignored in favor of the recomputed sum
// of the decoded lines.
func DecodePendingOrder(line string) (*model.PendingOrder, error) {
	const entity = "pending-order"
	fields, err := splitRecord(entity, line)
	if err != nil {
		return nil, err
	}
	if len(fields) < 6 {
		return nil, malformed(entity, "want at least 6 fields, got %d", len(fields))
	}

	status, err := model.ParseOrderStatus(fields[3])
	if err != nil {
		return nil, malformed(entity, "%v", err)
	}
	orderTime, err := parseTime(entity, fields[2])
	if err != nil {
		return nil, err
	}
	if _, err := parseDecimal(entity, fields[4]); err != nil {
		return nil, err
	}
	items, err := decodeList(entity, fields[5])
	if err != nil {
		return nil, err
	}

	po := &model.PendingOrder{
		OrderID:      unescapeField(fields[0]),
		CustomerName: unescapeField(fields[1]),
		OrderTime:    orderTime,
		Status:       status,
		OrderType:    defaultOrderType,
	}
	if len(fields) > 6 {
		po.OrderType = unescapeField(fields[6])
	}
	if len(fields) > 7 {
		po.CashierID = unescapeField(fields[7])
	}

	for _, item := range items {
		l, err := decodeOrderLine(entity, item)
		if err != nil {
			return nil, err
		}
		po.Lines = append(po.Lines, l)
	}
	po.TotalAmount = po.SumLines()
	return po, nil
}

func decodeOrderLine(entity, item string) (model.OrderLine, error) {
	parts := splitItem(item)
	if len(parts) < 3 {
		return model.OrderLine{}, malformed(entity, "line item wants at least 3 fields, got %d", len(parts))
	}
	price, err := parseDecimal(entity, parts[1])
	if err != nil {
		return model.OrderLine{}, err
	}
	qty, err := parseInt(entity, parts[2])
	if err != nil {
		return model.OrderLine{}, err
	}
	l := model.OrderLine{
		ProductName: unescapeField(parts[0]),
		Price:       price,
		Quantity:    qty,
		AddOnCost:   decimal.Zero,
		SizeCost:    decimal.Zero,
	}
	if len(parts) > 3 {
		l.Temperature = unescapeField(parts[3])
	}
	if len(parts) > 4 {
		if l.SugarLevel, err = parseInt(entity, parts[4]); err != nil {
			return model.OrderLine{}, err
		}
	}
	if len(parts) > 5 {
		l.AddOns = unescapeField(parts[5])
	}
	if len(parts) > 6 {
		if l.AddOnCost, err = parseDecimal(entity, parts[6]); err != nil {
			return model.OrderLine{}, err
		}
	}
	if len(parts) > 7 {
		l.SpecialRequest = unescapeField(parts[7])
	}
	if len(parts) > 8 {
		l.SizeName = unescapeField(parts[8])
	}
	if len(parts) > 9 {
		if l.SizeCost, err = parseDecimal(entity, parts[9]); err != nil {
			return model.OrderLine{}, err
		}
	}
	return l, nil
}

// EncodeReceipt renders a receipt row. Content is base64 so the stored
// receipt body survives newlines and delimiter characters byte for byte.
func EncodeReceipt(r *model.Receipt) string {
	return joinFields(
		escapeField(r.ReceiptID),
		escapeField(r.OrderID),
		escapeField(r.CustomerName),
		escapeField(r.CashierID),
		encodeTime(r.IssuedAt),
		encodeDecimal(r.TotalAmount),
		encodeDecimal(r.CashPaid),
		encodeDecimal(r.Change),
		encodeBlob(r.Content),
	)
}

// DecodeReceipt parses a receipt row. Legacy rows without cash fields
// decode with CashPaid equal to the total and zero change.
func DecodeReceipt(line string) (*model.Receipt, error) {
	const entity = "receipt"
	fields, err := splitRecord(entity, line)
	if err != nil {
		return nil, err
	}
	if len(fields) < 6 {
		return nil, malformed(entity, "want at least 6 fields, got %d", len(fields))
	}
	issued, err := parseTime(entity, fields[4])
	if err != nil {
		return nil, err
	}
	total, err := parseDecimal(entity, fields[5])
	if err != nil {
		return nil, err
	}
	r := &model.Receipt{
		ReceiptID:    unescapeField(fields[0]),
		OrderID:      unescapeField(fields[1]),
		CustomerName: unescapeField(fields[2]),
		CashierID:    unescapeField(fields[3]),
		IssuedAt:     issued,
		TotalAmount:  total,
		CashPaid:     total,
		Change:       decimal.Zero,
	}
	if len(fields) > 6 {
		if r.CashPaid, err = parseDecimal(entity, fields[6]); err != nil {
			return nil, err
		}
	}
	if len(fields) > 7 {
		if r.Change, err = parseDecimal(entity, fields[7]); err != nil {
			return nil, err
		}
	}
	if len(fields) > 8 {
		if r.Content, err = decodeBlob(entity, fields[8]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// EncodeOrderRecord renders a flat order-history row.
func EncodeOrderRecord(r *model.OrderRecord) string {
	return joinFields(
		escapeField(r.OrderID),
		escapeField(r.CustomerName),
		encodeTime(r.OrderTime),
		encodeDecimal(r.TotalAmount),
		string(r.Status),
		escapeField(r.OrderType),
	)
}

// DecodeOrderRecord parses an order-history row; legacy rows lacking the
// order type decode as DINE_IN.
func DecodeOrderRecord(line string) (*model.OrderRecord, error) {
	const entity = "order-record"
	fields, err := splitRecord(entity, line)
	if err != nil {
		return nil, err
	}
	if len(fields) < 5 {
		return nil, malformed(entity, "want at least 5 fields, got %d", len(fields))
	}
	orderTime, err := parseTime(entity, fields[2])
	if err != nil {
		return nil, err
	}
	total, err := parseDecimal(entity, fields[3])
	if err != nil {
		return nil, err
	}
	status, err := model.ParseOrderStatus(fields[4])
	if err != nil {
		return nil, malformed(entity, "%v", err)
	}
	r := &model.OrderRecord{
		OrderID:      unescapeField(fields[0]),
		CustomerName: unescapeField(fields[1]),
		OrderTime:    orderTime,
		TotalAmount:  total,
		Status:       status,
		OrderType:    defaultOrderType,
	}
	if len(fields) > 5 {
		r.OrderType = unescapeField(fields[5])
	}
	return r, nil
}

// EncodeItemRecord renders a flat item-history row.
func EncodeItemRecord(r *model.ItemRecord) string {
	return joinFields(
		escapeField(r.OrderID),
		escapeField(r.ProductName),
		itoa(r.Quantity),
		encodeDecimal(r.UnitPrice),
		encodeDecimal(r.Subtotal),
		escapeField(r.SizeName),
		itoa(r.SugarLevel),
	)
}

// DecodeItemRecord parses an item-history row; size and sugar are
// optional trailing fields.
func DecodeItemRecord(line string) (*model.ItemRecord, error) {
	const entity = "item-record"
	fields, err := splitRecord(entity, line)
	if err != nil {
		return nil, err
	}
	if len(fields) < 5 {
		return nil, malformed(entity, "want at least 5 fields, got %d", len(fields))
	}
	qty, err := parseInt(entity, fields[2])
	if err != nil {
		return nil, err
	}
	unitPrice, err := parseDecimal(entity, fields[3])
	if err != nil {
		return nil, err
	}
	subtotal, err := parseDecimal(entity, fields[4])
	if err != nil {
		return nil, err
	}
	r := &model.ItemRecord{
		OrderID:     unescapeField(fields[0]),
		ProductName: unescapeField(fields[1]),
		Quantity:    qty,
		UnitPrice:   unitPrice,
		Subtotal:    subtotal,
	}
	if len(fields) > 5 {
		r.SizeName = unescapeField(fields[5])
	}
	if len(fields) > 6 {
		if r.SugarLevel, err = parseInt(entity, fields[6]); err != nil {
			return nil, err
		}
	}
	return r, nil
}

// EncodeCashTransaction renders a drawer-movement row.
func EncodeCashTransaction(t *model.CashTransaction) string {
	return joinFields(
		escapeField(t.TransactionID),
		escapeField(t.OrderID),
		escapeField(t.CashierID),
		encodeTime(t.Time),
		encodeDecimal(t.Amount),
		string(t.Kind),
	)
}

// DecodeCashTransaction parses a drawer-movement row; legacy rows
// without a kind decode as SALE.
func DecodeCashTransaction(line string) (*model.CashTransaction, error) {
	const entity = "cash-transaction"
	fields, err := splitRecord(entity, line)
	if err != nil {
		return nil, err
	}
	if len(fields) < 5 {
		return nil, malformed(entity, "want at least 5 fields, got %d", len(fields))
	}
	at, err := parseTime(entity, fields[3])
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal(entity, fields[4])
	if err != nil {
		return nil, err
	}
	t := &model.CashTransaction{
		TransactionID: unescapeField(fields[0]),
		OrderID:       unescapeField(fields[1]),
		CashierID:     unescapeField(fields[2]),
		Time:          at,
		Amount:        amount,
		Kind:          model.CashSale,
	}
	if len(fields) > 5 {
		switch k := model.CashTransactionKind(fields[5]); k {
		case model.CashSale, model.CashRefund:
			t.Kind = k
		default:
			return nil, malformed(entity, "unknown kind %q", fields[5])
		}
	}
	return t, nil
}

// EncodeComplaint renders a complaint row; the free text is base64.
func EncodeComplaint(c *model.Complaint) string {
	return joinFields(
		escapeField(c.ComplaintID),
		encodeTime(c.Time),
		escapeField(c.CustomerName),
		encodeBlob(c.Text),
		escapeField(c.Status),
	)
}

// DecodeComplaint parses a complaint row; legacy rows without a status
// decode as OPEN.
func DecodeComplaint(line string) (*model.Complaint, error) {
	const entity = "complaint"
	fields, err := splitRecord(entity, line)
	if err != nil {
		return nil, err
	}
	if len(fields) < 4 {
		return nil, malformed(entity, "want at least 4 fields, got %d", len(fields))
	}
	at, err := parseTime(entity, fields[1])
	if err != nil {
		return nil, err
	}
	text, err := decodeBlob(entity, fields[3])
	if err != nil {
		return nil, err
	}
	c := &model.Complaint{
		ComplaintID:  unescapeField(fields[0]),
		Time:         at,
		CustomerName: unescapeField(fields[2]),
		Text:         text,
		Status:       defaultComplaintStatus,
	}
	if len(fields) > 4 {
		c.Status = unescapeField(fields[4])
	}
	return c, nil
}

// EncodeReturn renders a return-transaction row; the reason is base64.
func EncodeReturn(t *model.ReturnTransaction) string {
	return joinFields(
		escapeField(t.ReturnID),
		escapeField(t.OrderID),
		encodeTime(t.Time),
		encodeDecimal(t.Amount),
		encodeBlob(t.Reason),
		escapeField(t.CashierID),
	)
}

// DecodeReturn parses a return-transaction row; legacy rows lack the
// cashier id.
func DecodeReturn(line string) (*model.ReturnTransaction, error) {
	const entity = "return"
	fields, err := splitRecord(entity, line)
	if err != nil {
		return nil, err
	}
	if len(fields) < 5 {
		return nil, malformed(entity, "want at least 5 fields, got %d", len(fields))
	}
	at, err := parseTime(entity, fields[2])
	if err != nil {
		return nil, err
	}
	amount, err := parseDecimal(entity, fields[3])
	if err != nil {
		return nil, err
	}
	reason, err := decodeBlob(entity, fields[4])
	if err != nil {
		return nil, err
	}
	t := &model.ReturnTransaction{
		ReturnID: unescapeField(fields[0]),
		OrderID:  unescapeField(fields[1]),
		Time:     at,
		Amount:   amount,
		Reason:   reason,
	}
	if len(fields) > 5 {
		t.CashierID = unescapeField(fields[5])
	}
	return t, nil
}
