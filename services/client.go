package services

import (
	"encoding/json"
	"sync"

	"github.com/flipfrenzy/flipfrenzy-backend/game"
	"github.com/flipfrenzy/flipfrenzy-backend/utils/logger"
	"github.com/gorilla/websocket"
)

type Client struct {
	playerID string
	conn     *websocket.Conn
	room     *Room
	send     chan []byte
	once     sync.Once
}

func (c *Client) Close() {
	c.once.Do(func() {
		close(c.send)
		c.conn.Close()
	})
}

// command is the inbound WS message shape. Fields are used per action:
// resolve_action reads type/target/use, remove_player reads target.
type command struct {
	Action string `json:"action"`
	Type   string `json:"type,omitempty"`
	Target string `json:"target,omitempty"`
	Use    bool   `json:"use,omitempty"`
}

// --------------------
// Client read/write pumps
// --------------------
func (c *Client) readPump() {
	defer func() {
		c.room.Disconnect(c.playerID)
		c.conn.Close()
	}()

	for {
		_, message, err := c.conn.ReadMessage()
		if err != nil {
			if websocket.IsCloseError(err, websocket.CloseNormalClosure, websocket.CloseGoingAway) {
				logger.Debugf("[Client %s] disconnected normally", c.playerID)
			} else {
				logger.Debugf("[Client %s] read error: %v", c.playerID, err)
			}
			return
		}

		var cmd command
		if err := json.Unmarshal(message, &cmd); err != nil {
			logger.Debugf("[Client %s] invalid message: %v", c.playerID, err)
			continue
		}

		switch cmd.Action {
		case "draw":
			c.room.Draw(c.playerID)
		case "stay":
			c.room.Stay(c.playerID)
		case "pass":
			c.room.Pass(c.playerID)
		case "resolve_action":
			c.room.ResolveAction(c.playerID, game.PendingType(cmd.Type), cmd.Target, cmd.Use)
		case "cancel_action":
			c.room.CancelAction(c.playerID)
		case "end_round":
			c.room.EndRound(c.playerID)
		case "remove_player":
			c.room.RemovePlayer(cmd.Target)
		default:
			logger.Debugf("[Client %s] unknown action: %q", c.playerID, cmd.Action)
		}
	}
}

func (c *Client) writePump() {
	defer c.conn.Close()
	for msg := range c.send {
		if err := c.conn.WriteMessage(websocket.TextMessage, msg); err != nil {
			logger.Debugf("[Client %s] write error: %v", c.playerID, err)
			return
		}
	}
}
