package search

import (
	"fmt"
	"html"
	"strings"
	"time"

	"github.com/edgard/chansearch/internal/database"
)

const (
	ellipsis   = "..."
	dateLayout = "2006-01-02 15:04"
)

var newlineReplacer = strings.NewReplacer("\r\n", " ", "\n", " ", "\r", " ")

// Formatter renders search results as Telegram HTML.
type Formatter struct {
	LinkHost       string
	SnippetLength  int
	OpenMessage    string
	PrivateChannel string
}

// FormatResult renders one result with its 1-based position:
//
//	1. <b>Title</b> (2025-03-01 07:15)
//	   snippet
//	   <a href="https://t.me/handle/42">Open message</a>
func (f Formatter) FormatResult(result database.SearchResult, index int) string {
	lines := []string{
		fmt.Sprintf("%d. <b>%s</b> (%s)", index, html.EscapeString(result.ChannelTitle), formatDate(result.PostedAt)),
		"   " + html.EscapeString(Snippet(result.Text, f.SnippetLength)),
	}

	if link := f.MessageLink(result.Message); link != "" {
		lines = append(lines, fmt.Sprintf(`   <a href="%s">%s</a>`, html.EscapeString(link), f.OpenMessage))
	} else {
		lines = append(lines, "   "+f.PrivateChannel)
	}

	return strings.Join(lines, "\n")
}

// MessageLink returns the public permalink of msg, or "" for private channels.
func (f Formatter) MessageLink(msg database.Message) string {
	handle := strings.TrimPrefix(strings.TrimSpace(msg.ChannelUsername.String), "@")
	if !msg.ChannelUsername.Valid || handle == "" {
		return ""
	}
	return fmt.Sprintf("https://%s/%s/%d", f.LinkHost, handle, msg.MessageID)
}

// Snippet flattens text onto one line and truncates it to limit runes,
// ending with an ellipsis when cut.
func Snippet(text string, limit int) string {
	snippet := newlineReplacer.Replace(strings.TrimSpace(text))
	runes := []rune(snippet)
	if limit <= len(ellipsis) || len(runes) <= limit {
		return snippet
	}
	return string(runes[:limit-len(ellipsis)]) + ellipsis
}

// formatDate renders a stored RFC 3339 timestamp in UTC. Unparsable values
// are shown as stored.
func formatDate(postedAt string) string {
	t, err := time.Parse(time.RFC3339, postedAt)
	if err != nil {
		return postedAt
	}
	return t.UTC().Format(dateLayout)
}
