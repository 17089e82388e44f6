package cli

import (
	"bufio"
	"context"
	"errors"
	"fmt"
	"io"
	"strings"
)

// errUnknownCommand is returned by a dispatcher for a command it does not
// know.
var errUnknownCommand = errors.New("unknown command")

// dispatcher is the command surface the REPL drives. The real App satisfies
// it; tests can provide a lightweight stub.
type dispatcher interface {
	Dispatch(ctx context.Context, cmd string, args []string) error
}

// runREPL reads commands line by line from reader and hands them to d.
//
// The prompt shows the current status (from statusFn). Blank lines are
// skipped; "exit" and "quit" end the loop, as does EOF or ctx cancellation.
// Command handlers report their own failures to the user; the loop only
// reports unknown commands.
func runREPL(ctx context.Context, d dispatcher, statusFn func() string, reader *bufio.Reader, w io.Writer) {
	for {
		if ctx.Err() != nil {
			return
		}

		fmt.Fprintf(w, "skillswap %s> ", statusFn())
		line, err := reader.ReadString('\n')
		if err != nil && line == "" {
			fmt.Fprintln(w)
			return
		}

		parts := strings.Fields(line)
		if len(parts) == 0 {
			continue
		}
		cmd := strings.ToLower(parts[0])

		switch cmd {
		case "exit", "quit":
			fmt.Fprintln(w, "Bye!")
			return
		}

		if err := d.Dispatch(ctx, cmd, parts[1:]); errors.Is(err, errUnknownCommand) {
			fmt.Fprintln(w, "Unknown command:", parts[0], "(type 'help' for commands)")
		}
	}
}
