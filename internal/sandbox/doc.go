// Package sandbox is a small reference host for the console: a card
// library, a player with a hand and a debug flag, plus the debug, hand and
// player commands that manipulate them.
package sandbox
