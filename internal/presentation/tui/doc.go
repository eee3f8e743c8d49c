// Package tui holds the terminal presentation of the console: the markdown
// renderer for help pages, the banner and the error colors.
package tui
