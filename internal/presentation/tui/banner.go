package tui

import (
	"fmt"

	"github.com/muesli/termenv"
)

// PrintBanner outputs the Pathwise ASCII banner.
func PrintBanner() {
	p := termenv.ColorProfile()
	s1 := termenv.String("  ____       _   _                _          ").Foreground(p.Color("#34d399"))
	s2 := termenv.String(" |  _ \\ __ _| |_| |____      ___(_)___  ___ ").Foreground(p.Color("#2dd4bf"))
	s3 := termenv.String(" | |_) / _` | __| '_ \\ \\ /\\ / / | / __|/ _ \\").Foreground(p.Color("#22d3ee"))
	s4 := termenv.String(" |  __/ (_| | |_| | | \\ V  V /| | \\__ \\  __/").Foreground(p.Color("#38bdf8"))
	s5 := termenv.String(" |_|   \\__,_|\\__|_| |_|\\_/\\_/ |_|_|___/\\___|").Foreground(p.Color("#818cf8"))

	fmt.Println()
	fmt.Println(s1)
	fmt.Println(s2)
	fmt.Println(s3)
	fmt.Println(s4)
	fmt.Println(s5)
	fmt.Println()
}
