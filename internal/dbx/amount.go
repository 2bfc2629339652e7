package dbx

import (
	"fmt"
	"strconv"
)

// Amounts are unsigned 64-bit and do not fit BIGINT, so they are stored as
// NUMERIC(20,0) on PostgreSQL and TEXT on SQLite and cross the driver
// boundary as base-10 strings.

// Amount formats v for a query argument.
func Amount(v uint64) string {
	return strconv.FormatUint(v, 10)
}

// ParseAmount parses an amount column.
func ParseAmount(s string) (uint64, error) {
	v, err := strconv.ParseUint(s, 10, 64)
	if err != nil {
		return 0, fmt.Errorf("bad amount %q: %w", s, err)
	}
	return v, nil
}

// ParseAmounts parses several amount columns into their destinations.
func ParseAmounts(pairs ...any) error {
	if len(pairs)%2 != 0 {
		return fmt.Errorf("ParseAmounts: odd argument count %d", len(pairs))
	}
	for i := 0; i < len(pairs); i += 2 {
		src, ok := pairs[i].(string)
		dst, ok2 := pairs[i+1].(*uint64)
		if !ok || !ok2 {
			return fmt.Errorf("ParseAmounts: argument %d must be string followed by *uint64", i)
		}
		v, err := ParseAmount(src)
		if err != nil {
			return err
		}
		*dst = v
	}
	return nil
}

// Seconds converts a stored BIGINT timestamp to ledger seconds.
func Seconds(v int64) (uint32, error) {
	if v < 0 || v > int64(^uint32(0)) {
		return 0, fmt.Errorf("timestamp %d out of range", v)
	}
	return uint32(v), nil
}
