package services

import (
	"encoding/json"
	"errors"
	"math/rand"
	"sync"

	"github.com/flipfrenzy/flipfrenzy-backend/config"
	"github.com/flipfrenzy/flipfrenzy-backend/game"
	"github.com/flipfrenzy/flipfrenzy-backend/models"
	"github.com/flipfrenzy/flipfrenzy-backend/utils/logger"
	"gorm.io/gorm"
)

var (
	Rooms   = make(map[string]*Room)
	RoomsMu sync.Mutex
)

const codeLetters = "ABCDEFGHJKLMNPQRSTUVWXYZ"

// NewCode generates a 5-letter join code not currently in use.
func NewCode() string {
	for {
		b := make([]byte, 5)
		for i := range b {
			b[i] = codeLetters[rand.Intn(len(codeLetters))]
		}
		code := string(b)
		RoomsMu.Lock()
		_, taken := Rooms[code]
		RoomsMu.Unlock()
		if taken {
			continue
		}
		var count int64
		config.DB.Model(&models.Session{}).Where("code = ?", code).Count(&count)
		if count == 0 {
			return code
		}
	}
}

// GetRoom returns the live room for a code, if any.
func GetRoom(code string) (*Room, bool) {
	RoomsMu.Lock()
	defer RoomsMu.Unlock()
	r, ok := Rooms[code]
	return r, ok
}

// GetOrCreateRoom returns the live room for a code, rehydrating it from the
// database after a restart, or creating a brand-new session when the code
// names nothing at all.
func GetOrCreateRoom(code string) (*Room, error) {
	RoomsMu.Lock()
	defer RoomsMu.Unlock()
	if r, ok := Rooms[code]; ok {
		return r, nil
	}

	var row models.Session
	err := config.DB.Where("code = ?", code).First(&row).Error
	switch {
	case err == nil:
		// A row without state was created but never played; start fresh.
		sess := game.NewSession(code, game.Config{})
		if len(row.StateJSON) > 0 {
			var st game.State
			if jerr := json.Unmarshal(row.StateJSON, &st); jerr != nil {
				logger.Errorf("[Room %s] corrupt state column: %v", code, jerr)
				return nil, jerr
			}
			sess = game.RestoreSession(game.Config{}, &st)
		}
		r := &Room{
			Code:    code,
			rowID:   row.ID,
			game:    sess,
			clients: make(map[string]*Client),
		}
		Rooms[code] = r
		logger.Infof("[Room %s] rehydrated from store (round %d)", code, row.Round)
		return r, nil
	case errors.Is(err, gorm.ErrRecordNotFound):
		row = models.Session{Code: code, Status: "waiting", Round: 1}
		if cerr := config.DB.Create(&row).Error; cerr != nil {
			logger.Errorf("[Room %s] failed to create session row: %v", code, cerr)
			return nil, cerr
		}
		r := &Room{
			Code:    code,
			rowID:   row.ID,
			game:    game.NewSession(code, game.Config{}),
			clients: make(map[string]*Client),
		}
		Rooms[code] = r
		logger.Infof("[Room %s] created", code)
		return r, nil
	default:
		logger.Errorf("[Room %s] DB error on lookup: %v", code, err)
		return nil, err
	}
}
