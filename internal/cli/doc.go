// Package cli runs the interactive console session behind "devconsole run".
package cli
