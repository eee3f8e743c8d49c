/*
Package templates builds reusable command nodes for common argument shapes.

Numeric templates are intermediates whose autocomplete candidates are a short
list of numerals and whose autocomplete message is "number". The candidates
are a hint: attach the next node as the default sub command so any numeral is
accepted.

	count := templates.NewSmallNumberTemplate()
	count.SetDefaultSubCommand(next)

The id helpers turn an ports.IDSource into candidate functions. Sources are
pulled on every autocomplete query and never cached, so suggestions follow
live state.
*/
package templates
