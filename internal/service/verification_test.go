package service

import (
	"testing"

	"github.com/Ranlix-IT/cs2-mini-app-secure/internal/config"
)

func TestContainsBotHandle(t *testing.T) {
	tests := []struct {
		input string
		want  bool
	}{
		{"@rancasebot", true},
		{"rancasebot", true},
		{"RANCASEBOT", true},
		{"Иван @RanCaseBot", true},
		{"играю в rancasebot каждый день", true},
		{"", false},
		{"rancase", false},
		{"совсем другой текст", false},
	}

	for _, tt := range tests {
		if got := containsBotHandle(tt.input); got != tt.want {
			t.Errorf("containsBotHandle(%q) = %v, want %v", tt.input, got, tt.want)
		}
	}
}

func TestExtractSteamID(t *testing.T) {
	tests := []struct {
		name   string
		url    string
		wantID string
		wantOK bool
	}{
		{"numeric profile", "https://steamcommunity.com/profiles/76561198000000001", "76561198000000001", true},
		{"vanity url", "https://steamcommunity.com/id/gamer_2025", "gamer_2025", true},
		{"vanity with trailing slash", "https://steamcommunity.com/id/gamer/", "gamer", true},
		{"not steam", "https://example.com/profiles/123", "", false},
		{"empty", "", "", false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			id, ok := ExtractSteamID(tt.url)
			if ok != tt.wantOK {
				t.Fatalf("ExtractSteamID(%q) ok = %v, want %v", tt.url, ok, tt.wantOK)
			}
			if id != tt.wantID {
				t.Errorf("ExtractSteamID(%q) = %q, want %q", tt.url, id, tt.wantID)
			}
		})
	}
}

func TestSteamBonus(t *testing.T) {
	base := config.SteamVerifyBonus

	tests := []struct {
		level int
		want  int64
	}{
		{3, base},
		{9, base},
		{10, base + 500},
		{24, base + 500},
		{25, base + 1000},
		{49, base + 1000},
		{50, base + 1500},
		{100, base + 1500},
	}

	for _, tt := range tests {
		if got := SteamBonus(tt.level); got != tt.want {
			t.Errorf("SteamBonus(%d) = %d, want %d", tt.level, got, tt.want)
		}
	}
}
