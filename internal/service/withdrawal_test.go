package service

import "testing"

func TestValidTradeLink(t *testing.T) {
	tests := []struct {
		name string
		link string
		want bool
	}{
		{
			"valid link",
			"https://steamcommunity.com/tradeoffer/new/?partner=123456&token=AbCdEf12",
			true,
		},
		{
			"valid link with dash in token",
			"https://steamcommunity.com/tradeoffer/new/?partner=98765&token=Ab-Cd_12",
			true,
		},
		{"http scheme", "http://steamcommunity.com/tradeoffer/new/?partner=1&token=aa", false},
		{"missing token", "https://steamcommunity.com/tradeoffer/new/?partner=123456", false},
		{"missing partner", "https://steamcommunity.com/tradeoffer/new/?token=AbCdEf12", false},
		{"non-numeric partner", "https://steamcommunity.com/tradeoffer/new/?partner=abc&token=AbCdEf12", false},
		{"wrong host", "https://example.com/tradeoffer/new/?partner=123&token=AbCdEf12", false},
		{"trailing garbage", "https://steamcommunity.com/tradeoffer/new/?partner=123&token=abc&extra=1", false},
		{"empty", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := ValidTradeLink(tt.link); got != tt.want {
				t.Errorf("ValidTradeLink(%q) = %v, want %v", tt.link, got, tt.want)
			}
		})
	}
}

func TestTradeLinkPartner(t *testing.T) {
	partner, ok := TradeLinkPartner("https://steamcommunity.com/tradeoffer/new/?partner=123456&token=AbCdEf12")
	if !ok {
		t.Fatal("TradeLinkPartner failed on valid link")
	}
	if partner != "123456" {
		t.Errorf("partner = %q, want 123456", partner)
	}

	if _, ok := TradeLinkPartner("https://example.com/"); ok {
		t.Error("TradeLinkPartner should fail on invalid link")
	}
}
