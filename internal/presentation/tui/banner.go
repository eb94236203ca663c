package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the espalier ASCII art banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	// Green-to-blue gradient, one color per row.
	colors := []string{"#34d399", "#2dd4bf", "#22d3ee", "#38bdf8", "#60a5fa", "#818cf8"}
	rows := []string{
		`                       _ _           `,
		`  ___  ___ _ __   __ _| (_) ___ _ __ `,
		` / _ \/ __| '_ \ / _` + "`" + ` | | |/ _ \ '__|`,
		`|  __/\__ \ |_) | (_| | | |  __/ |   `,
		` \___||___/ .__/ \__,_|_|_|\___|_|   `,
		`          |_|                        `,
	}

	fmt.Println()
	for i, row := range rows {
		fmt.Println(termenv.String(row).Foreground(p.Color(colors[i])))
	}
	fmt.Println()
}
