package statement

import (
	"fmt"
	"regexp"
	"strconv"
)

var (
	dmyPattern = regexp.MustCompile(`^(\d{1,2})[-/](\d{1,2})[-/](\d{2,4})$`)
	ymdPattern = regexp.MustCompile(`^(\d{3,4})[-/](\d{1,2})[-/](\d{1,2})$`)
)

// NormalizeDate converts DD/MM/YYYY, DD-MM-YYYY and YYYY/MM/DD shaped tokens
// to YYYY-MM-DD with zero-padded day and month. Two-digit years up to 50 map
// to 20YY, the rest to 19YY. Tokens matching no known pattern are returned
// unchanged; downstream consumers must tolerate non-ISO dates in that case.
func NormalizeDate(s string) string {
	if m := dmyPattern.FindStringSubmatch(s); m != nil {
		return isoDate(m[3], m[2], m[1])
	}
	if m := ymdPattern.FindStringSubmatch(s); m != nil {
		return isoDate(m[1], m[2], m[3])
	}
	return s
}

func isoDate(year, month, day string) string {
	if len(year) == 2 {
		if n, _ := strconv.Atoi(year); n > 50 {
			year = "19" + year
		} else {
			year = "20" + year
		}
	}
	if len(month) == 1 {
		month = "0" + month
	}
	if len(day) == 1 {
		day = "0" + day
	}
	return fmt.Sprintf("%s-%s-%s", year, month, day)
}
