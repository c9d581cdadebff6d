// Package console runs a game session as a line-oriented text console.
package console

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"strings"

	"go.uber.org/zap"

	"github.com/cory-johannsen/wildone/internal/game/command"
	"github.com/cory-johannsen/wildone/internal/game/message"
	"github.com/cory-johannsen/wildone/internal/game/ruleset"
	"github.com/cory-johannsen/wildone/internal/game/session"
	"github.com/cory-johannsen/wildone/internal/observability"
)

// Saver persists the running game.
type Saver func(ctx context.Context) error

// ItemNames resolves item type ids to display names.
type ItemNames interface {
	Name(typeID int) string
}

// Config wires a Console to one game. Details supplies the banner and may
// be nil; Save is nil when saving is disabled.
type Config struct {
	Game    *session.Game
	Broker  *message.Broker
	Items   ItemNames
	Details *ruleset.GameDetails
	Save    Saver
	Logger  *zap.Logger
}

// Console reads commands, runs them against the game and writes the
// narration the game raises.
type Console struct {
	cfg      Config
	registry *command.Registry
	in       io.Reader
	out      io.Writer
	sub      message.Subscription
	pending  []string
}

// New creates a Console and starts collecting the game's narration. The
// narration the game raised before the console attached is written first.
//
// Precondition: cfg.Game, cfg.Broker, cfg.Items and cfg.Logger must be non-nil.
// Postcondition: Close must be called to detach from the broker.
func New(cfg Config, in io.Reader, out io.Writer) *Console {
	c := &Console{
		cfg:      cfg,
		registry: command.DefaultRegistry(),
		in:       in,
		out:      out,
		pending:  cfg.Game.Messages(),
	}
	c.sub = cfg.Broker.Subscribe(func(msg string) { c.pending = append(c.pending, msg) })
	return c
}

// Close detaches the console from the broker.
func (c *Console) Close() {
	c.cfg.Broker.Unsubscribe(c.sub)
}

// Run prints the banner and the current location, then executes one command
// per input line until quit, end of input or ctx is cancelled.
//
// Postcondition: Returns nil on quit or end of input, ctx.Err() on
// cancellation, or a wrapped read error.
func (c *Console) Run(ctx context.Context) (err error) {
	defer observability.Recover(c.cfg.Logger, &err)
	ctx, cancel := context.WithCancel(ctx)
	defer cancel()

	lines := make(chan string)
	readErr := make(chan error, 1)
	go func() {
		defer close(lines)
		scanner := bufio.NewScanner(c.in)
		for scanner.Scan() {
			select {
			case lines <- scanner.Text():
			case <-ctx.Done():
				return
			}
		}
		readErr <- scanner.Err()
	}()

	c.banner()
	c.flush()
	c.look()
	c.prompt()

	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case line, ok := <-lines:
			if !ok {
				if err := <-readErr; err != nil {
					return fmt.Errorf("reading input: %w", err)
				}
				return nil
			}
			if c.Execute(ctx, line) {
				return nil
			}
			c.prompt()
		}
	}
}

// Execute runs one command line and writes its output.
//
// Postcondition: Returns true when the line asked to quit.
func (c *Console) Execute(ctx context.Context, line string) (quit bool) {
	defer c.flush()

	parsed := command.Parse(line)
	if parsed.Command == "" {
		return false
	}
	cmd, ok := c.registry.Resolve(parsed.Command)
	if !ok {
		c.printf("You don't know how to '%s'.", parsed.Command)
		return false
	}
	c.cfg.Logger.Debug("command", zap.String("command", cmd.Name), zap.Strings("args", parsed.Args))

	switch cmd.Handler {
	case command.HandlerMove:
		c.move(cmd.Name)
	case command.HandlerLook:
		c.look()
	case command.HandlerExits:
		c.exits()
	case command.HandlerTalk:
		c.talk()
	case command.HandlerChoose:
		c.choose(parsed)
	case command.HandlerAttack:
		c.cfg.Game.AttackCurrentMonster()
	case command.HandlerUse:
		c.use()
	case command.HandlerStatus:
		c.status()
	case command.HandlerInventory:
		c.inventory()
	case command.HandlerQuests:
		c.quests()
	case command.HandlerRecipes:
		c.recipes()
	case command.HandlerCraft:
		c.craft(parsed)
	case command.HandlerWield:
		c.wield(parsed)
	case command.HandlerReady:
		c.ready(parsed)
	case command.HandlerWares:
		c.wares()
	case command.HandlerBuy:
		c.buy(parsed)
	case command.HandlerSell:
		c.sell(parsed)
	case command.HandlerHelp:
		c.help()
	case command.HandlerSave:
		c.save(ctx)
	case command.HandlerQuit:
		if c.cfg.Save != nil {
			c.save(ctx)
		}
		c.println("Goodbye.")
		return true
	default:
		c.printf("You don't know how to '%s'.", parsed.Command)
	}
	return false
}

func (c *Console) save(ctx context.Context) {
	if c.cfg.Save == nil {
		c.println("Saving is disabled.")
		return
	}
	if err := c.cfg.Save(ctx); err != nil {
		observability.LogFailure(c.cfg.Logger, "saving game", err)
		c.println("Your game could not be saved.")
		return
	}
	c.println("Game saved.")
}

func (c *Console) banner() {
	d := c.cfg.Details
	if d == nil {
		return
	}
	title := d.Title
	if d.Version != "" {
		title += " v" + d.Version
	}
	c.println(title)
	if d.Subtitle != "" {
		c.println(d.Subtitle)
	}
	c.println("Type 'help' for a list of commands.")
	c.println("")
}

func (c *Console) prompt() {
	p := c.cfg.Game.Player()
	fmt.Fprintf(c.out, "[%s %s]> ", p.Name(), p.HitPoints())
}

// flush writes the narration collected since the last flush.
func (c *Console) flush() {
	for _, msg := range c.pending {
		c.println(msg)
	}
	c.pending = c.pending[:0]
}

func (c *Console) println(s string) {
	fmt.Fprintln(c.out, s)
}

func (c *Console) printf(format string, args ...any) {
	c.println(fmt.Sprintf(format, args...))
}

func usage(cmd string) string {
	return strings.ToUpper(cmd[:1]) + cmd[1:] + " what?"
}
