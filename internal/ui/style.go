package ui

import (
	"fmt"
	"io"
	"strings"
	"unicode/utf8"

	"github.com/fatih/color"
)

// Sprint color functions for building styled strings.
var (
	Bold        = color.New(color.Bold).SprintFunc()
	Dim         = color.New(color.Faint).SprintFunc()
	Cyan        = color.New(color.FgCyan).SprintFunc()
	Green       = color.New(color.FgGreen).SprintFunc()
	Red         = color.New(color.FgRed).SprintFunc()
	BoldCyan    = color.New(color.Bold, color.FgCyan).SprintFunc()
	BoldRed     = color.New(color.Bold, color.FgRed).SprintFunc()
	BoldYellow  = color.New(color.Bold, color.FgYellow).SprintFunc()
	BoldMagenta = color.New(color.Bold, color.FgMagenta).SprintFunc()
)

// CriticalMark is the marker printed next to zero-slack activities.
const CriticalMark = "⚡"

// Header writes a bold title underlined to its own width.
func Header(w io.Writer, title string) {
	fmt.Fprintf(w, "%s\n", BoldCyan(title))
	fmt.Fprintln(w, Cyan(strings.Repeat("═", utf8.RuneCountInString(title))))
}

// Slack renders a slack value: yellow when critical, dimmed otherwise.
func Slack(slack int) string {
	if slack == 0 {
		return BoldYellow("0 " + CriticalMark)
	}
	if slack < 0 {
		return BoldRed(fmt.Sprint(slack))
	}
	return Dim(fmt.Sprint(slack))
}

// Arrow joins names the way the critical path is displayed.
func Arrow(names []string) string {
	return strings.Join(names, " -> ")
}
