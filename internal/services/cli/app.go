// Package cli is the terminal front end over the client core: catalog
// browsing through the paginated queries plus the local state stores
package cli

import (
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strings"
	"time"

	"videotube/internal/adapters/youtube"
	"videotube/internal/core/catalog"
	"videotube/internal/core/stores"
	"videotube/internal/platform/logger"
	"videotube/internal/platform/monitor"
)

// ErrUsage marks a bad command line; callers print usage and exit 2
var ErrUsage = errors.New("usage")

// Deps are the backends the App drives
type Deps struct {
	API  youtube.API
	Subs stores.SubscriptionAPI
	Blob stores.Blob
	Out  io.Writer
	Now  func() time.Time
}

// App holds the stores for one process
type App struct {
	browser *catalog.Browser
	history *stores.History
	subs    *stores.Subscriptions
	player  *stores.Player
	ui      *stores.UI

	out io.Writer
	now func() time.Time
	log logger.Logger
}

// New restores persisted state from d.Blob
func New(d Deps) *App {
	if d.Now == nil {
		d.Now = time.Now
	}
	if d.Blob == nil {
		d.Blob = stores.NewMemoryBlob()
	}
	return &App{
		browser: catalog.NewBrowser(d.API),
		history: stores.NewHistory(d.Blob),
		subs:    stores.NewSubscriptions(d.Subs, d.Blob),
		player:  stores.NewPlayer(),
		ui:      stores.NewUI(d.Blob),
		out:     d.Out,
		now:     d.Now,
		log:     *logger.Named("cli"),
	}
}

type command struct {
	name  string
	usage string
	run   func(ctx context.Context, a *App, args []string) error
}

var commands = []command{
	{"search", "search [-max N] [-pages N] [-order O] <query>", runSearch},
	{"channels", "channels [-max N] <query>", runChannels},
	{"channel", "channel [-pages N] <id>", runChannel},
	{"video", "video <id>", runVideo},
	{"related", "related [-max N] <videoId>", runRelated},
	{"popular", "popular [-region CC] [-max N] [-pages N]", runPopular},
	{"history", "history [list | clear | rm <query>]", runHistory},
	{"subs", "subs [list | sync | add <id> | rm <id>]", runSubs},
	{"player", "player <op>... (play <id> | pause | toggle | volume <v> | mute | rate <r>)", runPlayer},
	{"ui", "ui [show | collapse | expand | toggle]", runUI},
}

// Usage writes the command list
func Usage(w io.Writer) {
	fmt.Fprintln(w, "usage: videotube <command> [args]")
	for _, c := range commands {
		fmt.Fprintf(w, "  %s\n", c.usage)
	}
}

// Run dispatches one command line
// Failures other than usage errors are reported to the monitor
func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		return ErrUsage
	}
	name := strings.ToLower(args[0])
	for _, c := range commands {
		if c.name != name {
			continue
		}
		err := c.run(ctx, a, args[1:])
		if err != nil && !errors.Is(err, ErrUsage) && !youtube.IsCanceled(err) {
			monitor.Get().LogError(ctx, err, monitor.Fields{"component": "cli", "action": name})
		}
		return err
	}
	return fmt.Errorf("%w: unknown command %q", ErrUsage, name)
}

// flags builds a FlagSet that reports errors instead of exiting
func (a *App) flags(name string) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(a.out)
	return fs
}

func parse(fs *flag.FlagSet, args []string) error {
	if err := fs.Parse(args); err != nil {
		return fmt.Errorf("%w: %v", ErrUsage, err)
	}
	return nil
}
