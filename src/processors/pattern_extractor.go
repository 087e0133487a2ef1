// Package processors holds the pure classification and projection engines.
// Each engine consumes already-fetched records and produces derived values;
// none of them touch the database.
package processors

import (
	"regexp"
	"strings"
)

// transactionPrefixRe matches the transaction-type preambles banks prepend to
// the merchant segment, e.g. "PURCHASE AUTHORIZED ON 03/01 ..." or
// "RECURRING PAYMENT AUTHORIZED ON 02/15/26 ...".
var transactionPrefixRe = regexp.MustCompile(
	`^(PURCHASE|RECURRING PAYMENT|RECURRING TRANSFER|TRANSFER|PAYMENT|ATM WITHDRAWAL|POS PURCHASE)` +
		`( AUTHORIZED)?( ON)? \d{1,2}/\d{1,2}(/\d{2,4})?\s+`)

// p2pApps are payment apps whose descriptions embed a counterparty name after
// the app marker.
var p2pApps = []string{"VENMO", "CASH APP", "ZELLE", "PAYPAL"}

// transferAnchors are the phrases bank-internal transfer descriptions use
// before the counterparty name.
var transferAnchors = []string{
	"ONLINE TRANSFER TO ",
	"ONLINE TRANSFER FROM ",
	"TRANSFER TO ",
	"TRANSFER FROM ",
}

// Canonicalize maps a raw transaction description to a stable grouping key so
// that the many textual variants of one payee collapse to a single
// classification rule. It is deterministic and total: identical input always
// yields identical output, and empty input yields an empty string.
//
// The steps apply in order, first match wins: strip the transaction-type
// preamble, apply payee-family special cases, then fall back to the first
// four uppercased tokens of whatever remains.
func Canonicalize(description string) string {
	s := strings.ToUpper(strings.TrimSpace(description))
	if s == "" {
		return ""
	}
	s = transactionPrefixRe.ReplaceAllString(s, "")

	// The marketplace retailer's many sub-descriptors collapse to one key.
	if strings.Contains(s, "AMAZON") || strings.Contains(s, "AMZN") {
		return "AMAZON"
	}

	if name, ok := p2pCounterparty(s); ok {
		return name
	}

	if name, ok := transferCounterparty(s); ok {
		return name
	}

	tokens := strings.Fields(s)
	if len(tokens) > 4 {
		tokens = tokens[:4]
	}
	return strings.Join(tokens, " ")
}

// NormalizeMerchant derives the looser secondary key stored on a rule as its
// normalized description: the first two letter-runs of the merchant segment,
// so "AMAZON.COM/BILLWA" and "AMAZON MKTPL*AB12C" both normalize to a key
// beginning with "AMAZON".
func NormalizeMerchant(description string) string {
	s := strings.ToUpper(strings.TrimSpace(description))
	if s == "" {
		return ""
	}
	s = transactionPrefixRe.ReplaceAllString(s, "")

	var words []string
	for _, tok := range strings.Fields(s) {
		w := leadingLetters(tok)
		if len(w) >= 3 {
			words = append(words, w)
		}
		if len(words) == 2 {
			break
		}
	}
	return strings.Join(words, " ")
}

// p2pCounterparty extracts the counterparty name from a peer-to-peer payment
// description: the name tokens following the app marker and its delimiter,
// minus any trailing 2-letter region code.
func p2pCounterparty(s string) (string, bool) {
	for _, app := range p2pApps {
		if !strings.HasPrefix(s, app) {
			continue
		}
		rest := strings.TrimLeft(strings.TrimPrefix(s, app), " *-")
		for _, filler := range []string{"PAYMENT ", "TO ", "FROM "} {
			rest = strings.TrimPrefix(rest, filler)
		}
		name := nameTokens(rest)
		if name == "" {
			return app, true
		}
		return name, true
	}
	return "", false
}

// transferCounterparty extracts the counterparty from bank-internal transfer
// descriptions, cutting at reference or date suffixes.
func transferCounterparty(s string) (string, bool) {
	for _, anchor := range transferAnchors {
		idx := strings.Index(s, anchor)
		if idx < 0 {
			continue
		}
		rest := s[idx+len(anchor):]
		if cut := strings.Index(rest, " ON "); cut >= 0 {
			rest = rest[:cut]
		}
		if cut := strings.Index(rest, " REF"); cut >= 0 {
			rest = rest[:cut]
		}
		rest = strings.TrimSpace(rest)
		if rest == "" {
			continue
		}
		return rest, true
	}
	return "", false
}

// nameTokens keeps the leading tokens that look like a person or business
// name, stopping at the first token containing a digit (phone numbers,
// reference codes), and strips a trailing 2-letter region code.
func nameTokens(s string) string {
	var keep []string
	for _, tok := range strings.Fields(s) {
		if strings.ContainsAny(tok, "0123456789") {
			break
		}
		keep = append(keep, tok)
	}
	if n := len(keep); n > 1 && len(keep[n-1]) == 2 && isLetters(keep[n-1]) {
		keep = keep[:n-1]
	}
	return strings.Join(keep, " ")
}

// leadingLetters returns the run of letters at the start of a token.
func leadingLetters(tok string) string {
	for i, r := range tok {
		if r < 'A' || r > 'Z' {
			return tok[:i]
		}
	}
	return tok
}

func isLetters(s string) bool {
	for _, r := range s {
		if r < 'A' || r > 'Z' {
			return false
		}
	}
	return len(s) > 0
}
