package chat

import "strings"

// ParseMessage splits a "COIN-ADDRESS" chat message. Spaces are stripped
// from both halves and the coin code is upper-cased, so " btc - tb1q..."
// resolves the same as "BTC-tb1q...". Anything that is not exactly two
// dash-separated parts is not a faucet request.
func ParseMessage(content string) (coinCode string, address string, ok bool) {
	parts := strings.Split(content, "-")
	if len(parts) != 2 {
		return "", "", false
	}
	coinCode = strings.ToUpper(strings.ReplaceAll(parts[0], " ", ""))
	address = strings.ReplaceAll(parts[1], " ", "")
	if coinCode == "" || address == "" {
		return "", "", false
	}
	return coinCode, address, true
}
