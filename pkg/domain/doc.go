/*
Package domain contains the core types of the devconsole command engine.

It defines the two-variant command node contract, the results a line can
produce and the errors a line can fail with. This package is kept pure and
free of external dependencies like I/O, following Hexagonal Architecture
principles.

# Key Entities

  - Node: A link of a command chain. Either an intermediate (routes a token to
    the next node) or a terminal (performs a side effect and ends the chain).
  - Router: The extra capabilities of an intermediate node (lookup, autocomplete
    candidates, default messages).
  - Result: What a resolved line produced (executed, or incomplete with
    Suggestions).
  - PreconditionError / UnresolvedTokenError: The two ways a line can fail.
*/
package domain
