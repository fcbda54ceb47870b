// Package ui layout constants for consistent spacing and dimensions.
package ui

// Layout constants for page and board sizing.
const (
	// Chrome rows around page content
	HeaderHeight    = 2
	TabBarHeight    = 2
	FooterHeight    = 1
	ToastHeight     = 1
	ContentPaddingH = 2

	// Board dimensions
	ColumnGap        = 1
	ColumnMinWidth   = 24
	CardHeight       = 4
	ColumnChromeRows = 4

	// Modal dimensions
	ModalMinWidth = 46
	ModalMaxWidth = 72

	// Detail view
	DetailDescriptionWidth = 76

	// Responsive breakpoints
	MinimumTerminalWidth  = 80
	MinimumTerminalHeight = 24
)

// ContentHeight returns the rows available to a page for a terminal height.
func ContentHeight(terminalHeight int) int {
	h := terminalHeight - HeaderHeight - TabBarHeight - FooterHeight - ToastHeight
	if h < 1 {
		return 1
	}
	return h
}

// ColumnWidth splits the terminal width across n board columns.
func ColumnWidth(terminalWidth, n int) int {
	if n < 1 {
		n = 1
	}
	w := (terminalWidth - ContentPaddingH*2 - ColumnGap*(n-1)) / n
	if w < ColumnMinWidth {
		return ColumnMinWidth
	}
	return w
}

// ModalWidth clamps a modal to the terminal.
func ModalWidth(terminalWidth int) int {
	w := terminalWidth - 8
	if w > ModalMaxWidth {
		return ModalMaxWidth
	}
	if w < ModalMinWidth {
		return ModalMinWidth
	}
	return w
}
