package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/halvard/sonarmix/sonar"
)

const (
	labelWidth = 8
	gaugeWidth = 24
)

func (m model) View() string {
	var b strings.Builder

	b.WriteString(m.viewHeader())
	b.WriteString("\n\n")
	b.WriteString(m.viewChannels())
	b.WriteString("\n")
	b.WriteString(m.viewChatMix())
	b.WriteString("\n\n")
	b.WriteString(m.viewFooter())

	return b.String()
}

func (m model) viewHeader() string {
	logo := m.styles.Logo.Render(" sonarmix ")

	mode := "classic"
	if m.snapshot.Streamer() {
		mode = fmt.Sprintf("streamer · %s", m.slider)
	}
	badge := m.styles.Accent.Render(mode)

	status := m.viewStatus()

	line := lipgloss.JoinHorizontal(lipgloss.Top, logo, "  ", badge, "  ", status)
	return m.styles.Header.Render(line)
}

func (m model) viewStatus() string {
	switch {
	case m.snapshot.IsOffline():
		return m.styles.Danger.Render("engine offline")
	case !m.snapshot.HasData:
		return m.styles.Muted.Render("connecting…")
	case m.busy:
		return m.styles.Muted.Render("applying…")
	case m.snapshot.LastError != nil:
		return m.styles.Warning.Render("poll failed, retrying")
	default:
		return m.styles.Success.Render("●")
	}
}

func (m model) viewChannels() string {
	rows := make([]string, 0, len(m.channels))
	for i, channel := range m.channels {
		rows = append(rows, m.viewChannelRow(channel, i == m.selected))
	}
	return strings.Join(rows, "\n")
}

func (m model) viewChannelRow(channel sonar.Channel, selected bool) string {
	cursor := "  "
	if selected {
		cursor = m.styles.Accent.Render("▸ ")
	}

	label := fmt.Sprintf("%-*s", labelWidth, truncate(channelLabel(channel), labelWidth))
	if selected {
		label = m.styles.Selected.Render(label)
	} else {
		label = m.styles.Text.Render(label)
	}

	current, ok := m.currentState(channel)
	if !ok {
		return cursor + label + m.styles.Faint.Render(" "+repeatRune('░', gaugeWidth)+"    --")
	}

	filled := gaugeCells(current.Volume, gaugeWidth)
	gauge := m.styles.GaugeFill.Render(repeatRune('█', filled)) +
		m.styles.GaugeEmpty.Render(repeatRune('░', gaugeWidth-filled))

	level := m.styles.Muted.Render(formatPercent(current.Volume))

	tail := ""
	if current.Muted {
		tail = "  " + m.styles.Danger.Render("MUTED")
	}

	return cursor + label + " " + gauge + "  " + level + tail
}

func (m model) viewChatMix() string {
	label := fmt.Sprintf("%-*s", labelWidth, "ChatMix")

	if !m.snapshot.HasData {
		return "  " + m.styles.Muted.Render(label) +
			" " + m.styles.Faint.Render(repeatRune('░', gaugeWidth))
	}

	balance := m.snapshot.ChatMix.Balance
	marker := mixMarker(balance, gaugeWidth)

	var bar strings.Builder
	for i := 0; i < gaugeWidth; i++ {
		switch {
		case i == marker:
			bar.WriteString(m.styles.Accent.Render("◆"))
		case i == gaugeWidth/2:
			bar.WriteString(m.styles.Muted.Render("┊"))
		default:
			bar.WriteString(m.styles.Faint.Render("─"))
		}
	}

	ends := m.styles.Muted.Render(fmt.Sprintf("  game %+.2f chat", balance))
	return "  " + m.styles.Text.Render(label) + " " + bar.String() + ends
}

func (m model) viewFooter() string {
	if m.opErr != nil {
		return m.styles.Footer.Render(m.styles.Danger.Render(truncate(m.opErr.Error(), max(m.width-2, 20))))
	}
	return m.styles.Footer.Render(m.help.View(m.keys))
}
