package utils

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/blitzgame/blitzserver/pkg/blitzrpc"
)

// FormatCards renders cards compactly for logs, e.g. "R1 R2 B10".
func FormatCards(cards []blitzrpc.Card) string {
	if len(cards) == 0 {
		return "None"
	}

	var b strings.Builder
	for i, card := range cards {
		if i > 0 {
			b.WriteByte(' ')
		}
		b.WriteString(colorLetter(card.Color))
		fmt.Fprintf(&b, "%d", card.Number)
	}
	return b.String()
}

func colorLetter(c blitzrpc.Color) string {
	switch c {
	case blitzrpc.ColorRed:
		return "R"
	case blitzrpc.ColorBlue:
		return "B"
	case blitzrpc.ColorGreen:
		return "G"
	case blitzrpc.ColorYellow:
		return "Y"
	default:
		return "?"
	}
}

// EnsureDataDirExists creates the datadir and necessary subdirectories if they don't exist
func EnsureDataDirExists(datadir string) error {
	// Create main datadir
	if err := os.MkdirAll(datadir, 0700); err != nil {
		return fmt.Errorf("failed to create datadir %s: %v", datadir, err)
	}

	// Create logs subdirectory
	logsDir := filepath.Join(datadir, "logs")
	if err := os.MkdirAll(logsDir, 0700); err != nil {
		return fmt.Errorf("failed to create logs directory %s: %v", logsDir, err)
	}

	return nil
}
