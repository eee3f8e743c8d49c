/*
Package http serves a console over HTTP with a chi router.

	POST /execute   {"line": "hand add strike_r 2"}
	POST /complete  {"line": "hand a"}
	GET  /commands
	GET  /events    line reports and id reloads as server-sent events
	GET  /metrics   when a metrics handler is configured

Lines are evaluated through Console.Capture, so concurrent requests never
interleave inside the command tree.
*/
package http
