// Package command parses argv style commands and runs them on an ops.Engine.
package command

import (
	"context"
	"fmt"
	log "log/slog"
	"slices"
	"strings"

	"github.com/sharedcode/meshin"
	"github.com/sharedcode/meshin/ops"
)

type handler func(ctx context.Context, d *Dispatcher, args []string) (Reply, error)

type commandEntry struct {
	// arity is the exact argc including the name, or -n for at least n.
	arity   int
	handler handler
}

// Dispatcher routes commands by name.
type Dispatcher struct {
	engine   *ops.Engine
	commands map[string]commandEntry
}

// NewDispatcher returns a dispatcher over e with the data and meshin commands registered.
func NewDispatcher(e *ops.Engine) *Dispatcher {
	d := &Dispatcher{engine: e, commands: map[string]commandEntry{}}
	d.registerDataCommands()
	d.registerMeshinCommands()
	return d
}

// Engine returns the engine commands run on.
func (d *Dispatcher) Engine() *ops.Engine {
	return d.engine
}

func (d *Dispatcher) register(name string, arity int, h handler) {
	d.commands[name] = commandEntry{arity: arity, handler: h}
}

// Commands returns the registered command names, sorted.
func (d *Dispatcher) Commands() []string {
	names := make([]string, 0, len(d.commands))
	for n := range d.commands {
		names = append(names, n)
	}
	slices.Sort(names)
	return names
}

// Execute runs args[0] with the remaining arguments. Names are case-insensitive.
func (d *Dispatcher) Execute(ctx context.Context, args []string) (Reply, error) {
	if len(args) == 0 {
		return Reply{}, meshin.NewSyntaxError("empty command")
	}
	name := strings.ToUpper(args[0])
	entry, ok := d.commands[name]
	if !ok {
		return Reply{}, meshin.NewSyntaxError("unknown command '%s'", args[0])
	}
	if (entry.arity > 0 && len(args) != entry.arity) || (entry.arity < 0 && len(args) < -entry.arity) {
		return Reply{}, meshin.NewSyntaxError("wrong number of arguments for '%s' command", strings.ToLower(name))
	}
	log.Debug("execute", "command", name, "argc", len(args))
	r, err := entry.handler(ctx, d, args)
	if err != nil {
		return Reply{}, fmt.Errorf("%s failed: %w", name, err)
	}
	return r, nil
}
