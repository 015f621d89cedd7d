package codec

import (
	"encoding/base64"
	"errors"
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

const (
	fieldSep     = "|"
	itemSep      = ";"
	itemFieldSep = "^"
	listOpen     = "["
	listClose    = "]"

	// MaxLineLen is the longest line the decoders accept. Anything
	// longer is treated as corrupt.
	MaxLineLen = 1 << 20
)

// timeLayout is the on-disk timestamp format for all ledger rows.
const timeLayout = time.RFC3339Nano

// MalformedRecordError reports a line that failed to decode. It is
// recovered locally by loaders: log, skip the line, keep going.
type MalformedRecordError struct {
	Entity string
	Reason string
}

// Error implements the error interface.
func (e *MalformedRecordError) Error() string {
	return fmt.Sprintf("malformed %s record: %s", e.Entity, e.Reason)
}

// IsMalformed returns true if err is a malformed-record error.
// Uses errors.As to handle wrapped errors.
func IsMalformed(err error) bool {
	var me *MalformedRecordError
	return errors.As(err, &me)
}

func malformed(entity, format string, args ...any) error {
	return &MalformedRecordError{Entity: entity, Reason: fmt.Sprintf(format, args...)}
}

// escapes maps each delimiter to its placeholder. The brace pair must be
// applied first on encode and last on decode so placeholders themselves
// survive the trip.
var escapes = []struct{ raw, placeholder string }{
	{"{", "{brace}"},
	{fieldSep, "{pipe}"},
	{itemFieldSep, "{caret}"},
	{itemSep, "{semi}"},
	{listOpen, "{lbr}"},
	{listClose, "{rbr}"},
	{"\n", "{nl}"},
	{"\r", "{cr}"},
}

func escapeField(s string) string {
	for _, e := range escapes {
		s = strings.ReplaceAll(s, e.raw, e.placeholder)
	}
	return s
}

func unescapeField(s string) string {
	for i := len(escapes) - 1; i >= 0; i-- {
		s = strings.ReplaceAll(s, escapes[i].placeholder, escapes[i].raw)
	}
	return s
}

// encodeBlob base64-encodes a field that may contain newlines or
// arbitrary bytes, e.g. a rendered receipt body.
func encodeBlob(s string) string {
	return base64.StdEncoding.EncodeToString([]byte(s))
}

func decodeBlob(entity, s string) (string, error) {
	b, err := base64.StdEncoding.DecodeString(s)
	if err != nil {
		return "", malformed(entity, "invalid base64 field: %v", err)
	}
	return string(b), nil
}

func joinFields(fields ...string) string {
	return strings.Join(fields, fieldSep)
}

func joinWith(sep string, fields ...string) string {
	return strings.Join(fields, sep)
}

func splitItem(item string) []string {
	return strings.Split(item, itemFieldSep)
}

func itoa(n int) string {
	return strconv.Itoa(n)
}

// splitRecord splits a record line into level-1 fields. Escaping
// guarantees no raw field separator survives inside values, including
// inside the bracketed item list, so a plain split is exact.
func splitRecord(entity, line string) ([]string, error) {
	if len(line) > MaxLineLen {
		return nil, malformed(entity, "line exceeds %d bytes", MaxLineLen)
	}
	if strings.TrimSpace(line) == "" {
		return nil, malformed(entity, "empty line")
	}
	return strings.Split(line, fieldSep), nil
}

func encodeList(items []string) string {
	return listOpen + strings.Join(items, itemSep) + listClose
}

func decodeList(entity, field string) ([]string, error) {
	if !strings.HasPrefix(field, listOpen) || !strings.HasSuffix(field, listClose) {
		return nil, malformed(entity, "item list missing brackets: %q", field)
	}
	inner := field[len(listOpen) : len(field)-len(listClose)]
	if inner == "" {
		return nil, nil
	}
	return strings.Split(inner, itemSep), nil
}

func encodeDecimal(d decimal.Decimal) string {
	return d.String()
}

func parseDecimal(entity, s string) (decimal.Decimal, error) {
	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, malformed(entity, "invalid amount %q", s)
	}
	return d, nil
}

func parseInt(entity, s string) (int, error) {
	n, err := strconv.Atoi(s)
	if err != nil {
		return 0, malformed(entity, "invalid integer %q", s)
	}
	return n, nil
}

func encodeTime(t time.Time) string {
	return t.Format(timeLayout)
}

func parseTime(entity, s string) (time.Time, error) {
	t, err := time.Parse(timeLayout, s)
	if err != nil {
		return time.Time{}, malformed(entity, "invalid timestamp %q", s)
	}
	return t, nil
}
