/*
Package ports defines the driven ports (interfaces) for the marionette engine.

These interfaces decouple the interpreter from external implementations, allowing
scripts to be read from different backends and played against different event
generators.

# Key Interfaces

  - Location: addresses and opens script or image bytes, resolving relative references.
  - Surface: the primitive event-generation operations every gesture calls but never implements.
  - Locker: cross-process exclusion for a shared surface.
*/
package ports
