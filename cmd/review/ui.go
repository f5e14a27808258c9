package main

import (
	"fmt"
	"io"

	"github.com/charmbracelet/lipgloss"
)

var (
	titleStyle = lipgloss.NewStyle().
			Bold(true).
			Foreground(lipgloss.Color("#7C3AED"))

	reviewStyle = lipgloss.NewStyle().
			BorderStyle(lipgloss.RoundedBorder()).
			BorderForeground(lipgloss.Color("#3B82F6")).
			Padding(0, 1)

	timestampStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#6B7280"))

	statusOKStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#10B981")).
			Bold(true)

	statusBadStyle = lipgloss.NewStyle().
			Foreground(lipgloss.Color("#EF4444")).
			Bold(true)
)

// printReview 以边框形式输出复盘
func printReview(w io.Writer, title, review, timestamp string) {
	fmt.Fprintln(w, titleStyle.Render(title))
	fmt.Fprintln(w, reviewStyle.Render(review))
	if timestamp != "" {
		fmt.Fprintln(w, timestampStyle.Render("生成时间："+timestamp))
	}
}

// printStatus 输出健康检查结果
func printStatus(w io.Writer, target, status string, ok bool) {
	style := statusBadStyle
	if ok {
		style = statusOKStyle
	}
	fmt.Fprintf(w, "%s %s\n", target, style.Render(status))
}
