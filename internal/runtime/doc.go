/*
Package runtime is the interpreter core of marionette.

It turns script text into Macros of Gestures (Loader), binds them to a Location
with their own variable and image stores (Script), and plays them against a
ports.Surface. Every Script produced by one Loader shares that Loader's
RecursionGuard, which bounds the total nesting depth of cooperating scripts.
*/
package runtime
