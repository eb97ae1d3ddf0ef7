package handlers

import (
	"bytes"
	"context"
	"html/template"
	"log/slog"
	"strings"
	"time"
	"unicode/utf8"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/samber/lo"

	"github.com/olyvenbayani/guestbook/models"
	"github.com/olyvenbayani/guestbook/storage"
)

const pageTemplate = `<!DOCTYPE html>
<html>
<head><title>Guestbook</title></head>
<body>
<h1>Guestbook</h1>
<form action="/" method="POST">
<input type="text" name="message" placeholder="Leave a message">
<input type="submit" value="Sign">
</form>
<ul>
{{range .Entries}}<li>{{.Text}}</li>
{{end}}</ul>
</body>
</html>
`

var page = template.Must(template.New("guestbook").Parse(pageTemplate))

type entryView struct {
	Text string
}

type pageData struct {
	Entries []entryView
}

// EntryPublisher pushes accepted entries to the live feed.
type EntryPublisher interface {
	PublishEntry(ctx context.Context, msg *models.Message) error
}

// Guestbook serves the render and submit paths against the message log.
type Guestbook struct {
	log    storage.Log
	logger *slog.Logger
	feed   EntryPublisher // nil when the live feed is disabled
	maxLen int
}

func NewGuestbook(log storage.Log, logger *slog.Logger, feed EntryPublisher, maxLen int) *Guestbook {
	return &Guestbook{log: log, logger: logger, feed: feed, maxLen: maxLen}
}

// Index renders the submission form and every stored message in append
// order. The page is built in full before anything is written so a storage
// fault never produces a partial response.
func (g *Guestbook) Index(c *fiber.Ctx) error {
	lines, err := g.log.ReadAll()
	if err != nil {
		g.logger.Error("failed to read message log", "error", err)
		return fiber.ErrInternalServerError
	}

	entries := lo.Map(lines, func(line string, _ int) entryView {
		return entryView{Text: line}
	})

	var buf bytes.Buffer
	if err := page.Execute(&buf, pageData{Entries: entries}); err != nil {
		g.logger.Error("failed to render guestbook page", "error", err)
		return fiber.ErrInternalServerError
	}

	c.Set(fiber.HeaderContentType, fiber.MIMETextHTMLCharsetUTF8)
	return c.Send(buf.Bytes())
}

// Sign appends the submitted message and redirects back to the page, so a
// browser refresh never resubmits. Empty and whitespace-only submissions
// are dropped without touching the log and still redirect.
func (g *Guestbook) Sign(c *fiber.Ctx) error {
	// The log is line-delimited; embedded newlines would forge extra entries.
	message := strings.NewReplacer("\r", " ", "\n", " ").Replace(c.FormValue("message"))
	message = strings.TrimSpace(message)
	if message == "" {
		return c.Redirect("/", fiber.StatusSeeOther)
	}
	if utf8.RuneCountInString(message) > g.maxLen {
		return fiber.NewError(fiber.StatusBadRequest, "message too long")
	}

	if err := g.log.Append(message); err != nil {
		g.logger.Error("failed to append message", "error", err)
		return fiber.ErrInternalServerError
	}

	if g.feed != nil {
		msg := &models.Message{
			ID:        uuid.NewString(),
			Text:      message,
			CreatedAt: time.Now().UTC(),
		}
		ctx, cancel := context.WithTimeout(c.UserContext(), 5*time.Second)
		defer cancel()
		if err := g.feed.PublishEntry(ctx, msg); err != nil {
			// The append already succeeded; the feed is best effort.
			g.logger.Warn("failed to publish entry to feed", "error", err)
		}
	}

	return c.Redirect("/", fiber.StatusSeeOther)
}

// Health handles GET /healthz requests
func (g *Guestbook) Health(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{
		"status":    "healthy",
		"timestamp": time.Now().Format(time.RFC3339Nano),
		"service":   "guestbook",
	})
}
