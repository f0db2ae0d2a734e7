package server

import (
	"fmt"
	"slices"
	"strings"

	"github.com/voxarena/server/internal/core/event"
	"go.uber.org/zap"
)

// Standing is one row of the scoreboard.
type Standing struct {
	PlayerID string
	Kills    int
	Deaths   int
}

// Scoreboard tracks kills and deaths per connected player from hub events
// and writes the kill feed to the log.
type Scoreboard struct {
	rows map[string]*Standing
	log  *zap.Logger
}

func NewScoreboard(bus *event.Bus, log *zap.Logger) *Scoreboard {
	s := &Scoreboard{rows: make(map[string]*Standing), log: log}
	event.Subscribe(bus, s.onJoined)
	event.Subscribe(bus, s.onKilled)
	event.Subscribe(bus, s.onLeft)
	return s
}

func (s *Scoreboard) row(playerID string) *Standing {
	r, ok := s.rows[playerID]
	if !ok {
		r = &Standing{PlayerID: playerID}
		s.rows[playerID] = r
	}
	return r
}

func (s *Scoreboard) onJoined(ev event.PlayerJoined) {
	s.row(ev.PlayerID)
	s.log.Info("玩家進入競技場", zap.String("player", ev.PlayerID), zap.String("avatar", ev.AvatarID))
}

func (s *Scoreboard) onKilled(ev event.AvatarKilled) {
	if ev.KillerPlayerID != ev.VictimPlayerID {
		s.row(ev.KillerPlayerID).Kills++
	}
	s.row(ev.VictimPlayerID).Deaths++

	how := "擊殺"
	if ev.Headshot {
		how = "爆頭擊殺"
	}
	s.log.Info(fmt.Sprintf("%s  %s → %s", how, short(ev.KillerPlayerID), short(ev.VictimPlayerID)))
}

func (s *Scoreboard) onLeft(ev event.PlayerLeft) {
	delete(s.rows, ev.PlayerID)
}

// Standings returns the scoreboard ordered by kills, then fewest deaths.
func (s *Scoreboard) Standings() []Standing {
	out := make([]Standing, 0, len(s.rows))
	for _, r := range s.rows {
		out = append(out, *r)
	}
	slices.SortFunc(out, func(a, b Standing) int {
		if a.Kills != b.Kills {
			return b.Kills - a.Kills
		}
		if a.Deaths != b.Deaths {
			return a.Deaths - b.Deaths
		}
		return strings.Compare(a.PlayerID, b.PlayerID)
	})
	return out
}

// short trims a ULID to its random tail for log lines.
func short(id string) string {
	if len(id) > 6 {
		return id[len(id)-6:]
	}
	return id
}
