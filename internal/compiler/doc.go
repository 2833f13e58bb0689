/*
Package compiler defines the script grammar: the closed, ordered registry of
instruction recognizers and the per-command builders that validate parameters
and capture them in gestures.

All validation happens here, at load time. A gesture built by this package
only resolves variable values and talks to the Surface when played.

# Value Tokens

Numeric parameters accept either an integer literal or a variable name; the
latter is resolved against the playing script when the gesture runs.

# Macro References

play, scan and their callbacks name macros with a SPEC token:

	[location[:var=value]...][->macro]

"->name" plays a macro of the current script, "->" plays its first macro, and
"lib/clicks.txt:x=10->click" loads lib/clicks.txt next to the current script,
forwards x and plays its "click" macro.
*/
package compiler
