/*
Package domain contains the core vocabulary of the marionette engine.

It defines the error taxonomy shared by every layer, the key and mouse-button
identifiers that scripts name, and the lifecycle events emitted while macros are
played. This package is kept pure and free of I/O, following the same hexagonal
split as the ports and adapters packages.

# Error Taxonomy

  - ErrSyntax: bad grammar, unknown command or wrong arity (load time).
  - ErrRecursionExceeded: the shared nesting bound was reached during play.
  - ErrNotFound: missing variable, image or macro.
  - ErrArithmetic: division or modulo by zero.
  - ErrIO / ErrDecode: a Location could not be opened or an image could not be decoded.
  - ErrInvalidArgument: an argument outside its domain (e.g. occurrence < 1).
*/
package domain
