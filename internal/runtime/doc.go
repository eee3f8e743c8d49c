/*
Package runtime implements the chain executor of the devconsole engine.

The executor starts at the node selected by the command word and repeats
transform, check, run and advance for each remaining token, until a terminal
node ends the chain or an error aborts the line. It also answers autocomplete
queries by resolving the entered tokens without running anything.

The executor takes no locks: one line is resolved at a time.
*/
package runtime
