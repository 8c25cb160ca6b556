package marque

import (
	"fmt"
	"strconv"
	"strings"
)

// FormatToken renders an address as the portable highlight token
// "body:<start>-<end>". The address is expected to be expressed against the
// stable document root already.
func FormatToken(a Address) string {
	return fmt.Sprintf("%s:%d-%d", StableRootTag, a.Start(), a.End())
}

// ParseToken parses a highlight token into its bounds. Tokens must name the
// stable root and carry non-negative integer bounds with start <= end;
// anything else returns ErrBadToken.
func ParseToken(token string) (start, end int, err error) {
	head, rest, ok := strings.Cut(token, ":")
	if !ok || head != StableRootTag {
		return 0, 0, ErrBadToken
	}
	rawStart, rawEnd, ok := strings.Cut(rest, "-")
	if !ok {
		return 0, 0, ErrBadToken
	}
	start, err = strconv.Atoi(rawStart)
	if err != nil || start < 0 {
		return 0, 0, ErrBadToken
	}
	end, err = strconv.Atoi(rawEnd)
	if err != nil || end < start {
		return 0, 0, ErrBadToken
	}
	return start, end, nil
}
