package main

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
	"github.com/lucasb-eyer/go-colorful"

	"github.com/moodviz/moodviz/internal/mood"
	"github.com/moodviz/moodviz/internal/service"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#00ffff"))

	labelStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#888899"))

	valueStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#00ccff")).
			Bold(true)

	panelStyle = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#444466")).
			Padding(0, 1)
)

// swatch renders a palette as a row of colored blocks.
func swatch(palette []colorful.Color) string {
	var sb strings.Builder
	for _, c := range palette {
		sb.WriteString(lipgloss.NewStyle().Background(lipgloss.Color(c.Hex())).Render("   "))
	}
	return sb.String()
}

func field(label, value string) string {
	return labelStyle.Render(fmt.Sprintf("%-11s", label)) + valueStyle.Render(value)
}

// renderMoods lists every mood profile with its palettes.
func renderMoods() string {
	var panels []string
	for _, m := range mood.Moods() {
		p := mood.Lookup(m)
		body := lipgloss.JoinVertical(lipgloss.Left,
			titleStyle.Render(string(p.Mood)),
			field("style", string(p.AnimationStyle)),
			field("shape", string(p.ParticleShape)),
			field("particles", fmt.Sprint(p.ParticleCount)),
			field("speed", fmt.Sprintf("%.1f", p.BaseSpeed)),
			field("intensity", fmt.Sprintf("x%.1f", p.IntensityMultiplier)),
			field("palette", swatch(p.Palette)),
			field("background", swatch(p.BackgroundPalette)),
		)
		panels = append(panels, panelStyle.Render(body))
	}
	return lipgloss.JoinVertical(lipgloss.Left, panels...) + "\n"
}

func renderSummary(snap service.SessionSnapshot, path string) string {
	return lipgloss.JoinVertical(lipgloss.Left,
		titleStyle.Render("frame written"),
		field("path", path),
		field("mood", string(snap.Mood)),
		field("style", string(snap.Style)),
		field("particles", fmt.Sprint(snap.ParticleCount)),
		field("frames", fmt.Sprint(snap.Frames)),
		field("pulse", fmt.Sprintf("%.2f Hz", snap.PulseFrequency)),
	)
}
