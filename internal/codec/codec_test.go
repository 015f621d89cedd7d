package codec

import (
	"strings"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/roach88/kopi/internal/model"
)

func d(s string) decimal.Decimal {
	return decimal.RequireFromString(s)
}

func samplePendingOrder() *model.PendingOrder {
	po := &model.PendingOrder{
		OrderID:      "ord-0001",
		CustomerName: "Dana | Crane",
		OrderTime:    time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		Status:       model.StatusPaid,
		OrderType:    "TAKEAWAY",
		CashierID:    "csh-07",
		Lines: []model.OrderLine{
			{
				ProductName:    "Latte",
				Price:          d("4.50"),
				Quantity:       2,
				Temperature:    "HOT",
				SugarLevel:     50,
				AddOns:         "Espresso Shot",
				AddOnCost:      d("0.75"),
				SpecialRequest: "no foam; extra hot",
				SizeName:       "Large",
				SizeCost:       d("1.00"),
			},
			{
				ProductName: "Croissant",
				Price:       d("3.25"),
				Quantity:    1,
				AddOnCost:   d("0"),
				SizeCost:    d("0"),
			},
		},
	}
	po.TotalAmount = po.SumLines()
	return po
}

func TestPendingOrder_RoundTrip(t *testing.T) {
	po := samplePendingOrder()

	got, err := DecodePendingOrder(EncodePendingOrder(po))
	require.NoError(t, err)
	assert.Equal(t, po, got)
}

func TestPendingOrder_RoundTrip_DelimiterHeavyValues(t *testing.T) {
	po := &model.PendingOrder{
		OrderID:      "ord-0002",
		CustomerName: "a|b^c;d[e]f{g}",
		OrderTime:    time.Date(2024, 3, 15, 10, 0, 0, 0, time.UTC),
		Status:       model.StatusPending,
		OrderType:    "DINE_IN",
		Lines: []model.OrderLine{
			{
				ProductName:    "{pipe} special | blend",
				Price:          d("2.00"),
				Quantity:       1,
				SpecialRequest: "caret^semi;pipe|done",
				AddOnCost:      d("0"),
				SizeCost:       d("0"),
			},
		},
	}
	po.TotalAmount = po.SumLines()

	line := EncodePendingOrder(po)
	require.NotContains(t, line, "\n", "encoded line must be newline-free")

	got, err := DecodePendingOrder(line)
	require.NoError(t, err)
	assert.Equal(t, po, got)
}

func TestPendingOrder_RoundTrip_NoItems(t *testing.T) {
	po := &model.PendingOrder{
		OrderID:      "ord-0003",
		CustomerName: "",
		OrderTime:    time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC),
		Status:       model.StatusPending,
		OrderType:    "DINE_IN",
		TotalAmount:  decimal.Zero,
	}

	got, err := DecodePendingOrder(EncodePendingOrder(po))
	require.NoError(t, err)
	assert.Empty(t, got.Lines)
	assert.True(t, got.TotalAmount.IsZero())
}

func TestPendingOrder_LegacyRow_Defaults(t *testing.T) {
	// Row written before the orderType and cashierId fields existed,
	// with a line item that stops after quantity.
	line := "ord-legacy|Sam|2023-06-01T08:00:00Z|PENDING|3.00|[Americano^3.00^1]"

	po, err := DecodePendingOrder(line)
	require.NoError(t, err)
	assert.Equal(t, "DINE_IN", po.OrderType)
	assert.Equal(t, "", po.CashierID)
	require.Len(t, po.Lines, 1)
	assert.Equal(t, "", po.Lines[0].Temperature)
	assert.Equal(t, 0, po.Lines[0].SugarLevel)
	assert.True(t, po.Lines[0].AddOnCost.IsZero())
	assert.True(t, po.Lines[0].SizeCost.IsZero())
	assert.True(t, po.TotalAmount.Equal(d("3.00")))
}

func TestPendingOrder_Decode_Malformed(t *testing.T) {
	tests := []struct {
		name string
		line string
	}{
		{"empty", ""},
		{"too few fields", "ord|cust|2024-03-15T09:30:00Z"},
		{"bad status", "ord|cust|2024-03-15T09:30:00Z|SHIPPED|1.00|[]"},
		{"bad timestamp", "ord|cust|yesterday|PENDING|1.00|[]"},
		{"bad total", "ord|cust|2024-03-15T09:30:00Z|PENDING|lots|[]"},
		{"unbracketed items", "ord|cust|2024-03-15T09:30:00Z|PENDING|1.00|Latte^1.00^1"},
		{"bad item quantity", "ord|cust|2024-03-15T09:30:00Z|PENDING|1.00|[Latte^1.00^two]"},
		{"oversized line", "ord|cust|" + strings.Repeat("x", MaxLineLen+1)},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := DecodePendingOrder(tt.line)
			require.Error(t, err)
			assert.True(t, IsMalformed(err), "want MalformedRecordError, got %v", err)
		})
	}
}

func TestReceipt_RoundTrip_BlobContent(t *testing.T) {
	r := &model.Receipt{
		ReceiptID:    "rcp-0001",
		OrderID:      "ord-0001",
		CustomerName: "Dana",
		CashierID:    "csh-07",
		IssuedAt:     time.Date(2024, 3, 15, 9, 31, 0, 0, time.UTC),
		TotalAmount:  d("15.75"),
		CashPaid:     d("20.00"),
		Change:       d("4.25"),
		Content:      "KOPI CORNER\nTotal: 15.75\n|^;[]{} all delimiters\nThank you!\n",
	}

	line := EncodeReceipt(r)
	require.NotContains(t, line, "\n")

	got, err := DecodeReceipt(line)
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestReceipt_LegacyRow_Defaults(t *testing.T) {
	line := "rcp-old|ord-old|Kim|csh-01|2023-01-01T12:00:00Z|9.00"

	r, err := DecodeReceipt(line)
	require.NoError(t, err)
	assert.True(t, r.CashPaid.Equal(d("9.00")), "legacy cash paid defaults to the total")
	assert.True(t, r.Change.IsZero())
	assert.Equal(t, "", r.Content)
}

func TestReceipt_Decode_BadBase64(t *testing.T) {
	line := "rcp|ord|Kim|csh|2023-01-01T12:00:00Z|9.00|9.00|0|%%%not-base64%%%"

	_, err := DecodeReceipt(line)
	require.Error(t, err)
	assert.True(t, IsMalformed(err))
}

func TestOrderRecord_RoundTrip(t *testing.T) {
	r := &model.OrderRecord{
		OrderID:      "ord-0001",
		CustomerName: "Dana",
		OrderTime:    time.Date(2024, 3, 15, 9, 30, 0, 0, time.UTC),
		TotalAmount:  d("15.75"),
		Status:       model.StatusCompleted,
		OrderType:    "TAKEAWAY",
	}

	got, err := DecodeOrderRecord(EncodeOrderRecord(r))
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestItemRecord_RoundTrip(t *testing.T) {
	r := &model.ItemRecord{
		OrderID:     "ord-0001",
		ProductName: "Iced Latte | XL",
		Quantity:    3,
		UnitPrice:   d("4.50"),
		Subtotal:    d("13.50"),
		SizeName:    "Large",
		SugarLevel:  25,
	}

	got, err := DecodeItemRecord(EncodeItemRecord(r))
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestCashTransaction_RoundTrip(t *testing.T) {
	tx := &model.CashTransaction{
		TransactionID: "tx-0001",
		OrderID:       "ord-0001",
		CashierID:     "csh-07",
		Time:          time.Date(2024, 3, 15, 9, 31, 0, 0, time.UTC),
		Amount:        d("20.00"),
		Kind:          model.CashRefund,
	}

	got, err := DecodeCashTransaction(EncodeCashTransaction(tx))
	require.NoError(t, err)
	assert.Equal(t, tx, got)
}

func TestCashTransaction_LegacyKindDefaultsToSale(t *testing.T) {
	line := "tx-old|ord-old|csh-01|2023-01-01T12:00:00Z|5.00"

	tx, err := DecodeCashTransaction(line)
	require.NoError(t, err)
	assert.Equal(t, model.CashSale, tx.Kind)
}

func TestComplaint_RoundTrip_MultilineText(t *testing.T) {
	c := &model.Complaint{
		ComplaintID:  "cmp-0001",
		Time:         time.Date(2024, 3, 15, 11, 0, 0, 0, time.UTC),
		CustomerName: "Robin",
		Text:         "The latte was cold.\nSecond visit in a row|not happy.",
		Status:       "OPEN",
	}

	got, err := DecodeComplaint(EncodeComplaint(c))
	require.NoError(t, err)
	assert.Equal(t, c, got)
}

func TestReturn_RoundTrip(t *testing.T) {
	r := &model.ReturnTransaction{
		ReturnID:  "ret-0001",
		OrderID:   "ord-0001",
		Time:      time.Date(2024, 3, 15, 12, 0, 0, 0, time.UTC),
		Amount:    d("15.75"),
		Reason:    "wrong order\nremade instead",
		CashierID: "csh-07",
	}

	got, err := DecodeReturn(EncodeReturn(r))
	require.NoError(t, err)
	assert.Equal(t, r, got)
}

func TestEscapeField_RoundTrip(t *testing.T) {
	values := []string{
		"",
		"plain",
		"|^;[]{}",
		"{pipe} literal placeholder",
		"{brace}{nl}{cr}",
		"line\nbreak\rreturn",
		"unicode ☕ fine",
	}
	for _, v := range values {
		assert.Equal(t, v, unescapeField(escapeField(v)), "value %q", v)
	}
	escaped := escapeField("a|b")
	assert.NotContains(t, escaped, "|")
}
