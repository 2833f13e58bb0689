/*
Package marionette is a UI-automation script engine.

It loads plain-text scripts describing keyboard and mouse steps, timed waits,
screen-image matching and cross-script calls, parses them into macros and plays
them against an event surface supplied by the host.

# Script Format

Scripts are line oriented. Blank lines separate blocks, each block becomes one
macro, lines starting with "#" are comments and a "name <identifier>" line names
the block it belongs to:

	# log in and open the menu
	name login
	mouse_move 120 40
	mouse_click left
	key_type VK_ENTER
	delay 250

	name open_menu
	scan menu.png x y 10 100 ->click_menu -

Cross-script calls load a fresh script next to the caller and may forward
variables into it:

	play lib/util.txt:count=5->repeat 2

# Usage

	engine := marionette.New(marionette.WithLogger(logger))
	script, err := engine.LoadFile("scripts/main.txt")
	if err != nil {
		log.Fatal(err)
	}
	if err := engine.Run(ctx, script, surface, "login", 1); err != nil {
		log.Fatal(err)
	}

The surface implements ports.Surface. The memory adapter records every event and
is the usual choice for tests; the trace adapter writes the events back out as
instruction lines.

# Errors

Grammar problems are reported at load time as *domain.SyntaxError, before any
step runs. Playback errors wrap the sentinels in pkg/domain (ErrNotFound,
ErrRecursionExceeded, ErrArithmetic, ErrIO, ErrDecode, ErrInvalidArgument) and
can be matched with errors.Is.
*/
package marionette
