package processors_test

import (
	"testing"

	"github.com/username/budgetfolio/backend/src/processors"
)

func TestCanonicalize(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expect      string
	}{
		{
			name:        "marketplace retailer collapses across sub-descriptors",
			description: "PURCHASE AUTHORIZED ON 03/01 AMAZON MKTPL*AB12C3 SEATTLE WA CARD 1234",
			expect:      "AMAZON",
		},
		{
			name:        "marketplace retailer short code",
			description: "AMZN Mktp US*XY98",
			expect:      "AMAZON",
		},
		{
			name:        "p2p payment extracts counterparty",
			description: "VENMO PAYMENT JOHN SMITH 1023456789",
			expect:      "JOHN SMITH",
		},
		{
			name:        "p2p with filler and region code",
			description: "CASH APP*JOHN SMITH CA",
			expect:      "JOHN SMITH",
		},
		{
			name:        "p2p to recipient",
			description: "ZELLE TO JANE DOE",
			expect:      "JANE DOE",
		},
		{
			name:        "transfer cuts at date suffix",
			description: "ONLINE TRANSFER TO SAVINGS ACCOUNT ON 03/05",
			expect:      "SAVINGS ACCOUNT",
		},
		{
			name:        "transfer cuts at reference suffix",
			description: "TRANSFER TO BILLS REF 88213",
			expect:      "BILLS",
		},
		{
			name:        "fallback keeps first four tokens",
			description: "MCDONALD'S F32812 PROVO UT CARD 9876",
			expect:      "MCDONALD'S F32812 PROVO UT",
		},
		{
			name:        "preamble stripped before fallback",
			description: "RECURRING PAYMENT AUTHORIZED ON 02/15/26 NETFLIX.COM LOS GATOS CA",
			expect:      "NETFLIX.COM LOS GATOS CA",
		},
		{
			name:        "empty input",
			description: "",
			expect:      "",
		},
		{
			name:        "whitespace only",
			description: "   ",
			expect:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := processors.Canonicalize(tt.description)
			if got != tt.expect {
				t.Errorf("Canonicalize(%q) = %q, want %q", tt.description, got, tt.expect)
			}
		})
	}
}

func TestCanonicalizeIsStable(t *testing.T) {
	descriptions := []string{
		"PURCHASE AUTHORIZED ON 03/01 AMAZON MKTPL*AB12C3 SEATTLE WA CARD 1234",
		"VENMO PAYMENT JOHN SMITH 1023456789",
		"MCDONALD'S F32812 PROVO UT CARD 9876",
	}
	for _, d := range descriptions {
		first := processors.Canonicalize(d)
		for i := 0; i < 10; i++ {
			if got := processors.Canonicalize(d); got != first {
				t.Fatalf("Canonicalize(%q) unstable: %q then %q", d, first, got)
			}
		}
	}
}

func TestNormalizeMerchant(t *testing.T) {
	tests := []struct {
		name        string
		description string
		expect      string
	}{
		{
			name:        "punctuation bounds the merchant run",
			description: "AMAZON.COM/BILLWA",
			expect:      "AMAZON",
		},
		{
			name:        "two letter runs kept",
			description: "AMAZON MKTPL*AB12C",
			expect:      "AMAZON MKTPL",
		},
		{
			name:        "preamble stripped first",
			description: "PURCHASE AUTHORIZED ON 03/01 NETFLIX.COM LOS GATOS CA",
			expect:      "NETFLIX LOS",
		},
		{
			name:        "short runs dropped",
			description: "QT 123 GAS STATION",
			expect:      "GAS STATION",
		},
		{
			name:        "empty input",
			description: "",
			expect:      "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := processors.NormalizeMerchant(tt.description)
			if got != tt.expect {
				t.Errorf("NormalizeMerchant(%q) = %q, want %q", tt.description, got, tt.expect)
			}
		})
	}
}
