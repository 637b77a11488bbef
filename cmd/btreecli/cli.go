package main

import (
	"bufio"
	"cmp"
	"context"
	"fmt"
	"io"
	"strings"
	"sync"

	"github.com/npillmayer/btindex"
	"github.com/npillmayer/btindex/formatter"
	"github.com/npillmayer/btindex/html"
	"github.com/npillmayer/btindex/watch"
)

// Cli is an interactive session on a tree of string keys and values.
type Cli struct {
	scanner *bufio.Scanner
	out     io.Writer
	mu      sync.Mutex // guards out, written to by the event watcher as well
	tree    *btindex.Tree[string, string]
	format  *formatter.Config
	cast    *watch.Broadcaster
	unwatch context.CancelFunc
}

// NewCli creates a session reading commands from in and writing to out.
func NewCli(in io.Reader, out io.Writer, order int, format *formatter.Config) (*Cli, error) {
	cast := watch.New(context.Background())
	tree, err := btindex.NewWithConfig[string, string](btindex.Config[string]{
		Order:    order,
		Compare:  cmp.Compare[string],
		Observer: cast,
	})
	if err != nil {
		cast.Close()
		return nil, err
	}
	return &Cli{
		scanner: bufio.NewScanner(in),
		out:     out,
		tree:    tree,
		format:  format,
		cast:    cast,
	}, nil
}

// Run processes commands until input is exhausted or the user exits.
func (c *Cli) Run() error {
	defer c.close()
	c.printHelp()
	c.printPrompt()
	for c.scanner.Scan() {
		if !c.processInput(c.scanner.Text()) {
			return nil
		}
		c.printPrompt()
	}
	return c.scanner.Err()
}

func (c *Cli) close() {
	if c.unwatch != nil {
		c.unwatch()
		c.unwatch = nil
	}
	c.cast.Close()
}

func (c *Cli) printf(format string, args ...any) {
	c.mu.Lock()
	defer c.mu.Unlock()
	fmt.Fprintf(c.out, format, args...)
}

func (c *Cli) printHelp() {
	c.printf(`
B-Tree CLI (order %d)

Available Commands:
  SET <key> <val> Insert a key-value pair into the B-Tree
  GET <key>       Retrieve the value for key from the B-Tree
  DEL <key>       Remove a key-value pair from the B-Tree
  DUMP            Print the nodes of the B-Tree
  DOT             Print the B-Tree in Graphviz DOT format
  HTML            Print the B-Tree as an HTML fragment
  CHECK           Validate the invariants of the B-Tree
  WATCH on|off    Toggle printing of splits, rotations and merges
  HELP            Print this message
  EXIT            Terminate this session

`, c.tree.Order())
}

func (c *Cli) printPrompt() {
	c.printf("> ")
}

// processInput executes a single command line. It returns false if the
// session should end.
func (c *Cli) processInput(line string) bool {
	fields := strings.Fields(line)
	if len(fields) < 1 {
		return true
	}
	command := strings.ToLower(fields[0])
	switch command {
	default:
		c.printf("Unknown command \"%s\"\n", command)
	case "set":
		c.processSetCommand(fields[1:])
	case "get":
		c.processGetCommand(fields[1:])
	case "del":
		c.processDeleteCommand(fields[1:])
	case "dump":
		c.dump()
	case "dot":
		c.mu.Lock()
		btindex.Tree2Dot(c.tree, c.out)
		c.mu.Unlock()
	case "html":
		c.mu.Lock()
		err := html.Render(c.out, c.tree)
		c.mu.Unlock()
		if err != nil {
			c.printf("Error: %v\n", err)
		} else {
			c.printf("\n")
		}
	case "check":
		if err := c.tree.Check(); err != nil {
			c.printf("Error: %v\n", err)
		} else {
			c.printf("OK: %d entries, height %d\n", c.tree.Len(), c.tree.Height())
		}
	case "watch":
		c.processWatchCommand(fields[1:])
	case "help":
		c.printHelp()
	case "exit", "quit":
		return false
	}
	return true
}

func (c *Cli) processSetCommand(args []string) {
	if len(args) != 2 {
		c.printf("Usage: SET <key> <value>\n")
		return
	}
	c.tree.Insert(args[0], args[1])
	c.dump()
}

func (c *Cli) processGetCommand(args []string) {
	if len(args) != 1 {
		c.printf("Usage: GET <key>\n")
		return
	}
	val, found := c.tree.Search(args[0])
	if !found {
		c.printf("Key not found.\n")
		return
	}
	c.printf("%s\n", val)
}

func (c *Cli) processDeleteCommand(args []string) {
	if len(args) != 1 {
		c.printf("Usage: DEL <key>\n")
		return
	}
	if !c.tree.Delete(args[0]) {
		c.printf("Key not found.\n")
		return
	}
	c.dump()
}

func (c *Cli) processWatchCommand(args []string) {
	if len(args) != 1 || (args[0] != "on" && args[0] != "off") {
		c.printf("Usage: WATCH on|off\n")
		return
	}
	if args[0] == "off" {
		if c.unwatch != nil {
			c.unwatch()
			c.unwatch = nil
		}
		return
	}
	if c.unwatch != nil {
		return
	}
	ctx, cancel := context.WithCancel(context.Background())
	events, ok := c.cast.Subscribe(ctx, 64)
	if !ok {
		cancel()
		c.printf("Error: event broadcaster closed\n")
		return
	}
	c.unwatch = cancel
	go func() {
		for e := range events {
			c.printf("  » %s\n", e)
		}
	}()
}

func (c *Cli) dump() {
	c.mu.Lock()
	defer c.mu.Unlock()
	if err := formatter.Print(c.out, c.tree, c.format); err != nil {
		fmt.Fprintf(c.out, "Error: %v\n", err)
	}
}
