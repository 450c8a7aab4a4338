package ui

import (
	"fmt"
	"math"
	"strings"

	"github.com/halvard/sonarmix/sonar"
)

func clamp(v, lo, hi float64) float64 {
	if v < lo {
		return lo
	}
	if v > hi {
		return hi
	}
	return v
}

// gaugeCells maps a 0..1 level onto a fader of the given width, returning
// how many cells are filled. A non-zero level always lights at least one
// cell so quiet channels stay distinguishable from silent ones.
func gaugeCells(level float64, width int) int {
	if width <= 0 {
		return 0
	}
	level = clamp(level, 0, 1)
	cells := int(math.Round(level * float64(width)))
	if cells == 0 && level > 0 {
		cells = 1
	}
	return cells
}

// mixMarker maps a -1..1 chat-mix balance onto a marker position within the
// given width. -1 is the leftmost cell, 0 the middle, 1 the rightmost.
func mixMarker(balance float64, width int) int {
	if width <= 0 {
		return 0
	}
	balance = clamp(balance, -1, 1)
	pos := int(math.Round((balance + 1) / 2 * float64(width-1)))
	if pos >= width {
		pos = width - 1
	}
	return pos
}

func formatPercent(level float64) string {
	return fmt.Sprintf("%3.0f%%", clamp(level, 0, 1)*100)
}

var channelLabels = map[sonar.Channel]string{
	sonar.ChannelMaster:      "Master",
	sonar.ChannelGame:        "Game",
	sonar.ChannelChatRender:  "Chat",
	sonar.ChannelMedia:       "Media",
	sonar.ChannelAux:         "Aux",
	sonar.ChannelChatCapture: "Mic",
}

func channelLabel(channel sonar.Channel) string {
	if label, ok := channelLabels[channel]; ok {
		return label
	}
	return string(channel)
}

func truncate(s string, width int) string {
	if width <= 0 {
		return ""
	}
	runes := []rune(s)
	if len(runes) <= width {
		return s
	}
	if width <= 1 {
		return string(runes[:width])
	}
	return string(runes[:width-1]) + "…"
}

func repeatRune(r rune, n int) string {
	if n <= 0 {
		return ""
	}
	return strings.Repeat(string(r), n)
}
