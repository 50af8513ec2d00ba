// Package render turns engine events into colored terminal text.
package render

import (
	"fmt"
	"strings"
)

// ANSI escape code constants for terminal styling.
const (
	Reset = "\033[0m"
	Bold  = "\033[1m"
	Dim   = "\033[2m"

	Red     = "\033[31m"
	Green   = "\033[32m"
	Yellow  = "\033[33m"
	Blue    = "\033[34m"
	Magenta = "\033[35m"
	Cyan    = "\033[36m"
	White   = "\033[37m"
)

var teamColors = map[string]string{
	"red":     Red,
	"blue":    Blue,
	"green":   Green,
	"yellow":  Yellow,
	"magenta": Magenta,
	"cyan":    Cyan,
	"white":   White,
}

// TeamColor returns the escape code for a roster named after a color, or ""
// when the name is not a known color.
func TeamColor(team string) string {
	return teamColors[strings.ToLower(strings.TrimSpace(team))]
}

// Colorize wraps text with the given ANSI color code and a reset suffix.
// An empty color leaves text untouched.
//
// Postcondition: Returns text wrapped with color and Reset, or text itself.
func Colorize(color, text string) string {
	if color == "" {
		return text
	}
	return color + text + Reset
}

// Colorf wraps a formatted string with the given ANSI color code.
func Colorf(color, format string, args ...any) string {
	return Colorize(color, fmt.Sprintf(format, args...))
}

// StripANSI removes all ANSI escape sequences from a string.
//
// Postcondition: Returns s with all \033[...m sequences removed.
func StripANSI(s string) string {
	result := make([]byte, 0, len(s))
	i := 0
	for i < len(s) {
		if s[i] == '\033' && i+1 < len(s) && s[i+1] == '[' {
			j := i + 2
			for j < len(s) && s[j] != 'm' {
				j++
			}
			if j < len(s) {
				i = j + 1
				continue
			}
		}
		result = append(result, s[i])
		i++
	}
	return string(result)
}

// PlainWidth reports the printable width of s, ignoring escape sequences.
func PlainWidth(s string) int {
	return len([]rune(StripANSI(s)))
}
