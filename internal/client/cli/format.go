package cli

import (
	"errors"
	"fmt"
	"math"
	"math/big"
	"strconv"
	"strings"
	"time"

	"github.com/dustin/go-humanize"
	"github.com/shopspring/decimal"
)

// aprShift turns a percentage into a yearly ratio numerator: 8% is
// 8 * 10^10 at the ledger's 1e12 precision.
const aprShift = 10

var (
	errInvalidAPR    = errors.New("invalid yearly APR")
	errInvalidNumber = errors.New("invalid number")
)

func parseAmount(s string) (uint64, error) {
	v, err := strconv.ParseUint(strings.ReplaceAll(s, "_", ""), 10, 64)
	if err != nil {
		return 0, fmt.Errorf("%w %q", errInvalidNumber, s)
	}
	return v, nil
}

// parseAPR reads a percentage such as "8", "8%" or "0.25".
func parseAPR(s string) (uint64, error) {
	d, err := decimal.NewFromString(strings.TrimSuffix(strings.TrimSpace(s), "%"))
	if err != nil || d.IsNegative() {
		return 0, fmt.Errorf("%w %q", errInvalidAPR, s)
	}
	n := d.Shift(aprShift)
	if !n.Equal(n.Truncate(0)) {
		return 0, fmt.Errorf("%w %q: too many decimal places", errInvalidAPR, s)
	}
	bi := n.BigInt()
	if !bi.IsUint64() {
		return 0, fmt.Errorf("%w %q: out of range", errInvalidAPR, s)
	}
	return bi.Uint64(), nil
}

func formatAPR(ratio uint64) string {
	return decimal.NewFromBigInt(new(big.Int).SetUint64(ratio), -aprShift).String() + "%"
}

func formatAmount(v uint64) string {
	return humanize.BigComma(new(big.Int).SetUint64(v))
}

// formatSigned renders a decimal integer string with separators; anything
// unparsable is returned as is.
func formatSigned(s string) string {
	v, ok := new(big.Int).SetString(s, 10)
	if !ok {
		return s
	}
	return humanize.BigComma(v)
}

func formatRunway(seconds uint64, infinite bool) string {
	if infinite {
		return "infinite"
	}
	return fmt.Sprintf("%ds (%s)", seconds, formatSpan(seconds))
}

func formatSpan(seconds uint64) string {
	if seconds > math.MaxInt32 {
		seconds = math.MaxInt32
	}
	base := time.Unix(0, 0)
	return strings.TrimSpace(humanize.RelTime(base, base.Add(time.Duration(seconds)*time.Second), "", ""))
}

// formatUnlock describes the unlock moment relative to the ledger's now.
func formatUnlock(unlock uint64, now uint32) string {
	if unlock == 0 {
		return "-"
	}
	if unlock > math.MaxInt32 {
		unlock = math.MaxInt32
	}
	at := time.Unix(int64(unlock), 0)
	rel := humanize.RelTime(time.Unix(int64(now), 0), at, "from now", "ago")
	return fmt.Sprintf("%s (%s)", at.UTC().Format(time.RFC3339), rel)
}

func formatTime(ts uint32) string {
	if ts == 0 {
		return "-"
	}
	return time.Unix(int64(ts), 0).UTC().Format(time.RFC3339)
}
