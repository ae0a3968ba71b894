package api

import (
	"net/http"
	"strconv"
	"time"

	"github.com/jonathan-hinds/Idle-RPGv2/internal/constants"
	"github.com/jonathan-hinds/Idle-RPGv2/internal/logging"

	"github.com/gin-gonic/gin"
	"github.com/gorilla/websocket"
)

var upgrader = websocket.Upgrader{
	ReadBufferSize:  1024,
	WriteBufferSize: 1024,
	// The service sits behind the site gateway, which enforces origins.
	CheckOrigin: func(r *http.Request) bool { return true },
}

// StreamBattle replays a stored battle log over a websocket, pacing
// events by their simulated timestamps. A ?speed=N query compresses the
// replay (speed 10 plays ten simulated seconds per wall second).
func (h *Handler) StreamBattle(c *gin.Context) {
	rec, err := h.repo.GetBattleByUUID(c.Param("battleID"))
	if err != nil {
		c.JSON(http.StatusNotFound, gin.H{constants.JSONKeyError: constants.ErrBattleNotFound})
		return
	}
	result, err := rec.DecodeResult()
	if err != nil {
		c.JSON(http.StatusInternalServerError, gin.H{constants.JSONKeyError: constants.ErrFailedFetchBattles})
		return
	}

	speed := 10.0
	if s := c.Query("speed"); s != "" {
		if v, err := strconv.ParseFloat(s, 64); err == nil && v > 0 && v <= 1000 {
			speed = v
		}
	}

	conn, err := upgrader.Upgrade(c.Writer, c.Request, nil)
	if err != nil {
		logging.Error("websocket upgrade failed", err, logging.Fields{constants.LogFieldBattleID: result.ID})
		return
	}
	defer conn.Close()

	prev := 0.0
	for i := range result.Log {
		ev := &result.Log[i]
		if wait := ev.Time - prev; wait > 0 {
			time.Sleep(time.Duration(wait / speed * float64(time.Second)))
		}
		prev = ev.Time
		if err := conn.WriteJSON(ev); err != nil {
			// Client went away mid-replay; nothing to recover.
			return
		}
	}
	_ = conn.WriteMessage(websocket.CloseMessage,
		websocket.FormatCloseMessage(websocket.CloseNormalClosure, "replay complete"))
}
