// Command ignite-cli is a thin synchronous client for the networked
// front-end of spec §6: `set <k> <v>`, `get <k>`, `rm <k>`, each connecting
// fresh and exiting on completion.
package main

import (
	"errors"
	"fmt"
	"os"

	"flag"

	"github.com/iamNilotpal/ignite/internal/client"
	ignerr "github.com/iamNilotpal/ignite/pkg/errors"
	"github.com/iamNilotpal/ignite/pkg/options"
)

func main() {
	if len(os.Args) < 2 {
		usage()
		os.Exit(1)
	}

	fs := flag.NewFlagSet(os.Args[1], flag.ExitOnError)
	addr := fs.String("addr", options.DefaultAddr, "server address")
	fs.Parse(os.Args[2:])

	args := fs.Args()
	cmd := os.Args[1]

	c, err := client.Dial(*addr)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignite-cli: %v\n", err)
		os.Exit(1)
	}
	defer c.Close()

	switch cmd {
	case "set":
		if len(args) != 2 {
			usage()
			os.Exit(1)
		}
		runSet(c, args[0], args[1])
	case "get":
		if len(args) != 1 {
			usage()
			os.Exit(1)
		}
		runGet(c, args[0])
	case "rm":
		if len(args) != 1 {
			usage()
			os.Exit(1)
		}
		runRemove(c, args[0])
	default:
		usage()
		os.Exit(1)
	}
}

func runSet(c *client.Client, key, value string) {
	if _, _, err := c.Set(key, value); err != nil {
		fmt.Fprintf(os.Stderr, "ignite-cli: %v\n", err)
		os.Exit(1)
	}
}

func runGet(c *client.Client, key string) {
	value, ok, err := c.Get(key)
	if err != nil {
		fmt.Fprintf(os.Stderr, "ignite-cli: %v\n", err)
		os.Exit(1)
	}
	if !ok {
		fmt.Println("Key not found")
		return
	}
	fmt.Println(value)
}

func runRemove(c *client.Client, key string) {
	if err := c.Remove(key); err != nil {
		var wireErr *ignerr.WireError
		if errors.As(err, &wireErr) && wireErr.Code() == ignerr.ErrorCodeIndexKeyNotFound {
			fmt.Println("Key not found")
			os.Exit(1)
		}
		fmt.Fprintf(os.Stderr, "ignite-cli: %v\n", err)
		os.Exit(1)
	}
}

func usage() {
	fmt.Fprintln(os.Stderr, "usage: ignite-cli set [-addr host:port] <key> <value> | get [-addr host:port] <key> | rm [-addr host:port] <key>")
}
