/*
Package ports defines the driven ports (interfaces) of the devconsole engine.

These interfaces decouple command wiring from the places ids come from, so a
command tree can list card or relic ids from memory, a catalog file or redis
without knowing which.

# Key Interfaces

  - IDSource: Lists the ids offered as autocomplete candidates. Called afresh on every query.
  - Watchable: Notifies about backend changes, for sources that support live reload.
*/
package ports
