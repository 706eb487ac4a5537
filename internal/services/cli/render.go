package cli

import (
	"fmt"
	"strings"
	"text/tabwriter"

	"videotube/internal/core/format"
	"videotube/internal/core/media"
	"videotube/internal/core/paginate"
)

func (a *App) videos(s paginate.Snapshot[media.Video]) {
	tw := tabwriter.NewWriter(a.out, 0, 0, 2, ' ', 0)
	for _, v := range s.Items {
		fmt.Fprintf(tw, "%s\t%s\t%s\t%s\t%s\t%s\n",
			v.ID, truncate(v.Title, 60), v.ChannelTitle,
			format.Duration(v.Duration), format.ViewCount(v.ViewCount), format.TimeAgo(v.PublishedAt, a.now()))
	}
	_ = tw.Flush()
	if s.HasMore {
		fmt.Fprintf(a.out, "(%d pages loaded, more available)\n", s.Pages)
	}
}

func (a *App) channelLine(c media.Channel) {
	mark := " "
	if a.subs.IsSubscribed(c.ID) {
		mark = "*"
	}
	fmt.Fprintf(a.out, "%s %s  %s  %s  %s videos\n", mark, c.ID, c.Title, format.SubscriberCount(c.SubscriberCount), format.Compact(c.VideoCount))
}

func truncate(s string, n int) string {
	r := []rune(s)
	if len(r) <= n {
		return s
	}
	return string(r[:n-1]) + "…"
}

func firstLine(s string) string {
	line, _, _ := strings.Cut(strings.TrimSpace(s), "\n")
	return truncate(line, 120)
}
