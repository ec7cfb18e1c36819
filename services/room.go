package services

import (
	"encoding/json"
	"sync"

	"github.com/flipfrenzy/flipfrenzy-backend/config"
	"github.com/flipfrenzy/flipfrenzy-backend/game"
	"github.com/flipfrenzy/flipfrenzy-backend/models"
	"github.com/flipfrenzy/flipfrenzy-backend/utils/logger"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Room wraps one game.Session with its connected clients. The room mutex is
// the serialization point: every inbound command for the session runs under
// it, so commands apply as atomic read-modify-writes.
type Room struct {
	Code  string
	rowID uint

	mu      sync.Mutex
	game    *game.Session
	clients map[string]*Client // keyed by player id
}

// -------------------- Client management --------------------

func (r *Room) addClient(c *Client) {
	r.mu.Lock()
	if old, ok := r.clients[c.playerID]; ok {
		old.Close()
	}
	r.clients[c.playerID] = c
	r.mu.Unlock()

	go c.writePump()
	go c.readPump()

	logger.Infof("[Room %s] player %s connected (total=%d)", r.Code, c.playerID, r.clientCount())
}

func (r *Room) removeClient(playerID string) {
	r.mu.Lock()
	if c, ok := r.clients[playerID]; ok {
		delete(r.clients, playerID)
		c.Close()
	}
	r.mu.Unlock()
}

func (r *Room) clientCount() int {
	r.mu.Lock()
	defer r.mu.Unlock()
	return len(r.clients)
}

// -------------------- Commands --------------------

// Join admits or reconnects a player. Join collisions come back as explicit
// errors for the WS handshake to report; nothing partial is left behind.
func (r *Room) Join(name string) (*game.Player, error) {
	r.mu.Lock()
	before := r.game.State()
	p, err := r.game.Join(name)
	if err != nil {
		r.mu.Unlock()
		return nil, err
	}
	if perr := r.persist(nil, p); perr != nil {
		r.game.Restore(before)
		r.mu.Unlock()
		return nil, perr
	}
	r.mu.Unlock()
	r.broadcastState()
	return p, nil
}

// apply runs one game command under the room lock. A command that mutated
// nothing is dropped silently; a persistence failure rolls the aggregate
// back so no partial mutation survives.
func (r *Room) apply(name string, fn func(s *game.Session) bool) {
	r.mu.Lock()
	before := r.game.State()
	if !fn(r.game) {
		r.mu.Unlock()
		return
	}
	if err := r.persist(nil, nil); err != nil {
		r.game.Restore(before)
		r.mu.Unlock()
		logger.Errorf("[Room %s] %s not persisted, rolled back: %v", r.Code, name, err)
		return
	}
	r.mu.Unlock()
	r.broadcastState()
}

func (r *Room) Draw(actor string) { r.apply("draw", func(s *game.Session) bool { return s.Draw(actor) }) }
func (r *Room) Stay(actor string) { r.apply("stay", func(s *game.Session) bool { return s.Stay(actor) }) }
func (r *Room) Pass(actor string) { r.apply("pass", func(s *game.Session) bool { return s.Pass(actor) }) }

func (r *Room) ResolveAction(actor string, pendingType game.PendingType, target string, use bool) {
	r.apply("resolve_action", func(s *game.Session) bool {
		switch pendingType {
		case game.PendingSecondChance:
			return s.UseSecondChance(actor, use)
		case game.PendingFreeze:
			return s.ResolveFreeze(actor, target)
		case game.PendingSwap:
			return s.ResolveSwap(actor, target)
		case game.PendingTake3:
			return s.ResolveTake3(actor, target)
		}
		return false
	})
}

func (r *Room) CancelAction(actor string) {
	r.apply("cancel_action", func(s *game.Session) bool { return s.CancelAction(actor) })
}

func (r *Room) RemovePlayer(target string) {
	r.apply("remove_player", func(s *game.Session) bool { return s.RemovePlayer(target) })
}

// EndRound closes the round and writes the immutable per-player score rows
// in the same transaction as the session state.
func (r *Room) EndRound(actor string) {
	r.mu.Lock()
	before := r.game.State()
	results, ok := r.game.EndRound()
	if !ok {
		r.mu.Unlock()
		return
	}
	if err := r.persist(results, nil); err != nil {
		r.game.Restore(before)
		r.mu.Unlock()
		logger.Errorf("[Room %s] end_round not persisted, rolled back: %v", r.Code, err)
		return
	}
	r.mu.Unlock()
	logger.Infof("[Room %s] round closed by %s, %d scores recorded", r.Code, actor, len(results))
	r.broadcastState()
}

// Disconnect flips the player offline and recomputes the pause flag. The
// player is never removed here; removal is an explicit command.
func (r *Room) Disconnect(playerID string) {
	r.removeClient(playerID)
	r.apply("disconnect", func(s *game.Session) bool { return s.SetConnected(playerID, false) })
}

// Snapshot returns the current state for REST spectators.
func (r *Room) Snapshot() game.Snapshot {
	r.mu.Lock()
	defer r.mu.Unlock()
	return r.game.Snapshot()
}

// -------------------- Persistence --------------------

// persist writes the session row, any new round-score rows and an optional
// newly joined player row in one transaction. Caller holds the room lock.
func (r *Room) persist(results []game.RoundResult, joined *game.Player) error {
	st := r.game.State()
	stateJSON, err := json.Marshal(st)
	if err != nil {
		return err
	}
	snap := r.game.Snapshot()
	status := "waiting"
	if snap.Locked {
		status = "in_progress"
	}
	if snap.Paused {
		status = "paused"
	}

	return config.DB.Transaction(func(tx *gorm.DB) error {
		if err := tx.Model(&models.Session{}).Where("id = ?", r.rowID).Updates(map[string]any{
			"locked":     snap.Locked,
			"round":      snap.Round,
			"status":     status,
			"state_json": datatypes.JSON(stateJSON),
		}).Error; err != nil {
			return err
		}
		if joined != nil {
			row := models.Player{
				SessionID: r.rowID,
				UID:       joined.ID,
				Name:      joined.Name,
				Seat:      joined.Seat,
				Active:    true,
			}
			if err := tx.Where("uid = ?", joined.ID).FirstOrCreate(&row).Error; err != nil {
				return err
			}
		}
		for _, res := range results {
			row := models.RoundScore{
				SessionID:   r.rowID,
				PlayerUID:   res.PlayerID,
				RoundNumber: res.Round,
				Score:       res.Score,
			}
			if err := tx.Create(&row).Error; err != nil {
				return err
			}
			if err := tx.Model(&models.Player{}).Where("uid = ?", res.PlayerID).
				Update("total_score", gorm.Expr("total_score + ?", res.Score)).Error; err != nil {
				return err
			}
		}
		return nil
	})
}

// -------------------- Broadcast --------------------

// broadcastState sends the full snapshot to every connected client. Slow
// clients get dropped messages, not a blocked room.
func (r *Room) broadcastState() {
	r.mu.Lock()
	snap := r.game.Snapshot()
	clients := make([]*Client, 0, len(r.clients))
	for _, c := range r.clients {
		clients = append(clients, c)
	}
	r.mu.Unlock()

	b, _ := json.Marshal(snap)
	for _, c := range clients {
		// A client may close its send channel between the roster copy
		// above and this send; recover so one dead client cannot kill
		// the broadcasting goroutine.
		func(c *Client) {
			defer func() {
				if rec := recover(); rec != nil {
					logger.Warnf("[Room %s] recovered broadcast to player %s: %v", r.Code, c.playerID, rec)
				}
			}()
			select {
			case c.send <- b:
			default:
				logger.Warnf("[Room %s] dropping snapshot to player %s", r.Code, c.playerID)
			}
		}(c)
	}
}
