package cli

import (
	"context"
	"fmt"
	"strconv"
	"strings"

	"videotube/internal/adapters/youtube"
	"videotube/internal/core/format"
	"videotube/internal/core/media"
	"videotube/internal/core/paginate"
)

// more pulls up to pages-1 further pages through the query's proximity trigger
func more[T media.Keyed](ctx context.Context, q *paginate.Query[T], pages int) error {
	t := q.Trigger()
	for i := 1; i < pages && q.Snapshot().HasMore; i++ {
		// leave range then re-enter so every pass is an edge
		if _, err := t.Observe(ctx, false); err != nil {
			return err
		}
		if _, err := t.Observe(ctx, true); err != nil {
			return err
		}
	}
	return q.Snapshot().Err
}

func runSearch(ctx context.Context, a *App, args []string) error {
	fs := a.flags("search")
	max := fs.Int("max", 0, "results per page")
	pages := fs.Int("pages", 1, "pages to load")
	order := fs.String("order", "", "relevance | date | viewCount | rating | title")
	if err := parse(fs, args); err != nil {
		return err
	}
	query := strings.TrimSpace(strings.Join(fs.Args(), " "))

	a.history.SetCurrentQuery(query)
	q, err := a.browser.SearchVideos(ctx, youtube.SearchParams{Query: query, MaxResults: *max, Order: *order})
	if err != nil {
		return err
	}
	a.history.Add(query)
	if err := more(ctx, q, *pages); err != nil {
		return err
	}
	a.videos(q.Snapshot())
	return nil
}

func runChannels(ctx context.Context, a *App, args []string) error {
	fs := a.flags("channels")
	max := fs.Int("max", 0, "results per page")
	if err := parse(fs, args); err != nil {
		return err
	}
	q, err := a.browser.SearchChannels(ctx, youtube.SearchParams{Query: strings.Join(fs.Args(), " "), MaxResults: *max})
	if err != nil {
		return err
	}
	for _, c := range q.Snapshot().Items {
		a.channelLine(c)
	}
	return nil
}

func runChannel(ctx context.Context, a *App, args []string) error {
	fs := a.flags("channel")
	pages := fs.Int("pages", 1, "pages of uploads to load")
	if err := parse(fs, args); err != nil {
		return err
	}
	if fs.NArg() != 1 {
		return fmt.Errorf("%w: channel needs one id", ErrUsage)
	}
	c, err := a.browser.Catalog().Channel(ctx, fs.Arg(0))
	if err != nil {
		return err
	}
	if n, err := strconv.ParseInt(c.SubscriberCount, 10, 64); err == nil {
		a.subs.SetSubscriberCount(c.ID, n)
	}
	a.channelLine(c)
	if c.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", firstLine(c.Description))
	}

	q, err := a.browser.ChannelVideos(ctx, youtube.ChannelVideosParams{ChannelID: c.ID})
	if err != nil {
		return err
	}
	if err := more(ctx, q, *pages); err != nil {
		return err
	}
	a.videos(q.Snapshot())
	return nil
}

func runVideo(ctx context.Context, a *App, args []string) error {
	if len(args) != 1 {
		return fmt.Errorf("%w: video needs one id", ErrUsage)
	}
	v, err := a.browser.Catalog().Video(ctx, args[0])
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "%s\n", v.Title)
	fmt.Fprintf(a.out, "  %s | %s | %s | %s likes\n",
		v.ChannelTitle, format.ViewCount(v.ViewCount), format.TimeAgo(v.PublishedAt, a.now()), format.Grouped(v.LikeCount))
	fmt.Fprintf(a.out, "  length %s\n", format.Duration(v.Duration))
	if v.Description != "" {
		fmt.Fprintf(a.out, "  %s\n", firstLine(v.Description))
	}
	return nil
}

func runRelated(ctx context.Context, a *App, args []string) error {
	fs := a.flags("related")
	max := fs.Int("max", 0, "results per page")
	if err := parse(fs, args); err != nil {
		return err
	}
	q, err := a.browser.Related(ctx, youtube.RelatedParams{VideoID: fs.Arg(0), MaxResults: *max})
	if err != nil {
		return err
	}
	a.videos(q.Snapshot())
	return nil
}

func runPopular(ctx context.Context, a *App, args []string) error {
	fs := a.flags("popular")
	region := fs.String("region", "", "two letter region code")
	max := fs.Int("max", 0, "results per page")
	pages := fs.Int("pages", 1, "pages to load")
	if err := parse(fs, args); err != nil {
		return err
	}
	q, err := a.browser.Popular(ctx, youtube.PopularParams{RegionCode: strings.ToUpper(*region), MaxResults: *max})
	if err != nil {
		return err
	}
	if err := more(ctx, q, *pages); err != nil {
		return err
	}
	a.videos(q.Snapshot())
	return nil
}

func runHistory(_ context.Context, a *App, args []string) error {
	op := "list"
	if len(args) > 0 {
		op = args[0]
	}
	switch op {
	case "list":
		for _, it := range a.history.Items() {
			fmt.Fprintln(a.out, it.Query)
		}
	case "clear":
		a.history.Clear()
	case "rm":
		if len(args) < 2 {
			return fmt.Errorf("%w: history rm needs a query", ErrUsage)
		}
		a.history.Remove(strings.Join(args[1:], " "))
	default:
		return fmt.Errorf("%w: unknown history op %q", ErrUsage, op)
	}
	return nil
}

func runSubs(ctx context.Context, a *App, args []string) error {
	op := "list"
	if len(args) > 0 {
		op = args[0]
	}
	switch op {
	case "list":
		for _, id := range a.subs.IDs() {
			fmt.Fprintln(a.out, id)
		}
		return nil
	case "sync":
		if err := a.subs.Load(ctx); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%d subscriptions\n", len(a.subs.IDs()))
		return nil
	case "add", "rm":
		if len(args) != 2 {
			return fmt.Errorf("%w: subs %s needs one channel id", ErrUsage, op)
		}
		var err error
		if op == "add" {
			err = a.subs.Subscribe(ctx, args[1])
		} else {
			err = a.subs.Unsubscribe(ctx, args[1])
		}
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "%s subscribed=%t\n", args[1], a.subs.IsSubscribed(args[1]))
		return nil
	}
	return fmt.Errorf("%w: unknown subs op %q", ErrUsage, op)
}

// runPlayer applies ops in order; player state lives only for this process
func runPlayer(_ context.Context, a *App, args []string) error {
	for i := 0; i < len(args); i++ {
		switch op := args[i]; op {
		case "play", "volume", "rate":
			if i+1 >= len(args) {
				return fmt.Errorf("%w: player %s needs a value", ErrUsage, op)
			}
			i++
			if op == "play" {
				a.player.SetCurrentItem(args[i])
				continue
			}
			v, err := strconv.ParseFloat(args[i], 64)
			if err != nil {
				return fmt.Errorf("%w: player %s: %v", ErrUsage, op, err)
			}
			if op == "volume" {
				a.player.SetVolume(v)
			} else {
				a.player.SetPlaybackRate(v)
			}
		case "pause":
			a.player.SetPlaying(false)
		case "toggle":
			a.player.TogglePlayPause()
		case "mute":
			a.player.ToggleMute()
		case "reset":
			a.player.Reset()
		default:
			return fmt.Errorf("%w: unknown player op %q", ErrUsage, op)
		}
	}
	st := a.player.State()
	fmt.Fprintf(a.out, "item=%q playing=%t volume=%.2f muted=%t rate=%.2f\n",
		st.CurrentItemID, st.IsPlaying, st.Volume, st.IsMuted, st.PlaybackRate)
	return nil
}

func runUI(_ context.Context, a *App, args []string) error {
	op := "show"
	if len(args) > 0 {
		op = args[0]
	}
	switch op {
	case "show":
	case "collapse":
		a.ui.SetSidebarCollapsed(true)
	case "expand":
		a.ui.SetSidebarCollapsed(false)
	case "toggle":
		a.ui.ToggleSidebar()
	default:
		return fmt.Errorf("%w: unknown ui op %q", ErrUsage, op)
	}
	st := a.ui.State()
	fmt.Fprintf(a.out, "sidebar open=%t collapsed=%t\n", st.IsSidebarOpen, st.IsSidebarCollapsed)
	return nil
}
