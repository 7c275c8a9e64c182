package faucet

import "strings"

// classifications maps substrings of upstream error text to an ErrorKind.
// Both lnd and the EVM providers expose most failures only as free text,
// so this table is the single place that text is interpreted. Entries are
// checked in order; anything unmatched stays ErrGeneric and is never
// treated as a success.
var classifications = []struct {
	substr string
	kind   ErrorKind
}{
	{"not valid for this network", ErrInvalidAddress},
	// "insufficient" must outrank the bare "address" match: geth's
	// insufficient-funds error names the sending address in its text.
	{"insufficient", ErrInsufficientFunds},
	{"address", ErrInvalidAddress},
	{"replacement transaction underpriced", ErrPendingTx},
	{"replacement", ErrPendingTx},
	{"context deadline exceeded", ErrProviderUnavailable},
	{"connection refused", ErrProviderUnavailable},
}

// Classify reduces raw upstream error text to the closed ErrorKind set.
func Classify(detail string) ErrorKind {
	lower := strings.ToLower(detail)
	for _, c := range classifications {
		if strings.Contains(lower, c.substr) {
			return c.kind
		}
	}
	return ErrGeneric
}
