/*
Package runner implements the line loop of a devconsole.

It acts as the bridge between a Console and the outside world. The runner
reads one line at a time through a pluggable handler, sanitizes it, lets
interceptors veto it, evaluates it and hands the report back to the handler.
Lines are evaluated strictly one after another.

# Key Components

  - Runner: The loop. Stops on exit words, end of input or context cancellation.
  - IOHandler: Decouples how lines are read and reports are shown.
  - TextHandler: A standard implementation for interactive or piped text.
  - JSONHandler: JSON-Lines reports for programs driving the console.

# Usage

	r := runner.NewRunner(
		runner.WithInputHandler(runner.NewTextHandler(os.Stdin, os.Stdout)),
		runner.WithLogger(logger),
	)

	if err := r.Run(ctx, console); err != nil {
		log.Fatal(err)
	}
*/
package runner
