package handlers

import (
	"context"
	"log/slog"
	"time"

	"github.com/gofiber/contrib/websocket"

	"github.com/olyvenbayani/guestbook/config"
	"github.com/olyvenbayani/guestbook/models"
	"github.com/olyvenbayani/guestbook/nats_service"
)

// liveClient is one websocket subscriber on the /live feed.
type liveClient struct {
	conn        *websocket.Conn
	logger      *slog.Logger
	messageChan chan *models.Message // Channel for entries from the NATS subscription
	doneChan    chan struct{}        // Channel to signal closure
}

func newLiveClient(conn *websocket.Conn, logger *slog.Logger) *liveClient {
	return &liveClient{
		conn:        conn,
		logger:      logger,
		messageChan: make(chan *models.Message, 256),
		doneChan:    make(chan struct{}),
	}
}

// handleRead drains the connection so pong frames are processed and closure
// is detected. Clients never send entries over the feed; the form does that.
func (c *liveClient) handleRead() {
	defer close(c.doneChan) // Signal writer to stop
	c.conn.SetReadLimit(config.MaxMessageSize)
	c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
	c.conn.SetPongHandler(func(string) error {
		c.conn.SetReadDeadline(time.Now().Add(config.PongWait))
		return nil
	})

	for {
		if _, _, err := c.conn.ReadMessage(); err != nil {
			if websocket.IsUnexpectedCloseError(err, websocket.CloseGoingAway, websocket.CloseAbnormalClosure) {
				c.logger.Warn("websocket read error", "error", err)
			}
			return
		}
	}
}

// handleWrite pushes feed entries and keepalive pings to the client.
func (c *liveClient) handleWrite() {
	ticker := time.NewTicker(config.PingPeriod)
	defer ticker.Stop()

	for {
		select {
		case message, ok := <-c.messageChan:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if !ok {
				// The message channel was closed.
				c.conn.WriteMessage(websocket.CloseMessage, []byte{})
				return
			}
			if err := c.conn.WriteJSON(message); err != nil {
				c.logger.Warn("websocket write error", "error", err)
				return
			}

		case <-ticker.C:
			c.conn.SetWriteDeadline(time.Now().Add(config.WriteWait))
			if err := c.conn.WriteMessage(websocket.PingMessage, nil); err != nil {
				return
			}

		case <-c.doneChan:
			return
		}
	}
}

// HandleLive manages the lifecycle of one live-feed connection. The client
// receives entries appended after it connected; existing entries are on the
// rendered page already.
func HandleLive(conn *websocket.Conn, feed *nats_service.NatsService, logger *slog.Logger) {
	client := newLiveClient(conn, logger)

	subCtx, cancelSub := context.WithCancel(context.Background())
	defer cancelSub()

	consumeCtx, err := feed.SubscribeEntries(subCtx, func(msg *models.Message) {
		// Runs in the NATS delivery goroutine; never block it for long.
		select {
		case client.messageChan <- msg:
		case <-time.After(1 * time.Second):
			logger.Warn("dropping entry for slow websocket client")
		case <-client.doneChan:
		}
	})
	if err != nil {
		logger.Error("failed to subscribe to entry feed", "error", err)
		conn.Close()
		return
	}

	defer func() {
		consumeCtx.Stop()
		close(client.messageChan) // Close channel *after* stopping consumer
		conn.Close()
	}()

	go client.handleWrite()

	// Blocks until the connection closes or errors, triggering the defers.
	client.handleRead()
}
