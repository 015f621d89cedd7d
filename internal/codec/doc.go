// Package codec implements the delimited text format used by every
// ledger file: one record per line, fields separated by '|', nested line
// items carried in a bracketed list whose items are separated by ';' and
// whose fields are separated by '^'.
//
// Free-text fields are made delimiter-safe by placeholder substitution
// ('|' becomes "{pipe}" and so on); fields that may contain newlines or
// arbitrary text, such as rendered receipt bodies, are base64 encoded
// instead. Both directions round-trip exactly: Decode(Encode(r)) == r.
//
// Decoders are tolerant of legacy rows with fewer trailing fields, which
// take documented defaults, and report a *MalformedRecordError for lines
// they cannot parse so callers can skip a corrupt line and keep loading
// the rest of the file. The package does no I/O.
package codec
