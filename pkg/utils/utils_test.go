package utils

import (
	"testing"

	"github.com/blitzgame/blitzserver/pkg/blitzrpc"
)

func TestFormatCards(t *testing.T) {
	if got := FormatCards(nil); got != "None" {
		t.Errorf("FormatCards(nil) = %q, want None", got)
	}

	cards := []blitzrpc.Card{
		{Number: 1, Color: blitzrpc.ColorRed},
		{Number: 10, Color: blitzrpc.ColorBlue},
		{Number: 5, Color: blitzrpc.ColorYellow},
	}
	if got := FormatCards(cards); got != "R1 B10 Y5" {
		t.Errorf("FormatCards = %q, want %q", got, "R1 B10 Y5")
	}
}
