package services

import (
	"net/http"
	"strings"

	"github.com/flipfrenzy/flipfrenzy-backend/utils/logger"
	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	CheckOrigin: func(r *http.Request) bool { return true },
}

// HandleWebSocket is the join entrypoint: /ws/:code?name=Alice. An unknown
// code creates the session; a name collision or a locked session closes the
// socket with a user-facing reason.
func HandleWebSocket(c *gin.Context) {
	code := strings.ToUpper(c.Param("code"))
	name := strings.TrimSpace(c.Query("name"))
	if code == "" || name == "" {
		c.JSON(http.StatusBadRequest, gin.H{"error": "code and name are required"})
		return
	}

	room, err := GetOrCreateRoom(code)
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{"error": "session unavailable"})
		return
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logger.Errorf("[WS] upgrade error: %v", err)
		return
	}

	player, err := room.Join(name)
	if err != nil {
		// Explicit rejection: tell the client why before closing.
		conn.WriteJSON(gin.H{"type": "join_rejected", "reason": err.Error()})
		conn.Close()
		return
	}

	client := &Client{
		playerID: player.ID,
		conn:     conn,
		room:     room,
		send:     make(chan []byte, 32),
	}
	logger.Infof("[WS] player %q joined room %s as %s", name, code, player.ID)

	// Tell the joiner who they are, then start pumps; the room broadcast
	// delivers the first full snapshot.
	conn.WriteJSON(gin.H{"type": "joined", "playerId": player.ID, "seat": player.Seat})
	room.addClient(client)
	room.broadcastState()
}
