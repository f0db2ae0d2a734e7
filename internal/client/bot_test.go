package client

import (
	"math"
	"testing"

	"github.com/voxarena/server/internal/action"
	"github.com/voxarena/server/internal/component"
)

func TestYawTowards(t *testing.T) {
	cases := []struct {
		d    component.Vec3
		want float64
	}{
		{component.Vec3{Z: -1}, 0},
		{component.Vec3{X: -1}, math.Pi / 2},
		{component.Vec3{X: 1}, -math.Pi / 2},
	}
	for _, c := range cases {
		if got := YawTowards(c.d); math.Abs(float64(got)-c.want) > 1e-6 {
			t.Errorf("YawTowards(%+v) = %v, want %v", c.d, got, c.want)
		}
	}
}

func TestBotEngagesNearestEnemy(t *testing.T) {
	r, _ := newReplicator(t)
	spawnLocal(t, r)
	bot := NewBot(1)

	bot.Drive(r)
	if in := r.Input(); in.Fire || in.MoveZ != 1 {
		t.Fatalf("alone: input = %+v, want wandering", *in)
	}

	r.Receive(encode(t, &action.SpawnEnemyAvatar{AvatarSpawn: action.AvatarSpawn{
		PlayerID: "p2", AvatarID: "foe", Position: component.Vec3{X: 1, Z: -4},
	}}))
	bot.Drive(r)
	in := r.Input()
	if !in.Fire || in.MoveZ != 0 || in.Yaw != 0 {
		t.Errorf("enemy ahead: input = %+v, want firing straight ahead", *in)
	}

	r.Receive(encode(t, &action.AvatarDeath{VictimID: "foe", KillerID: "me"}))
	bot.Drive(r)
	if r.Input().Fire {
		t.Error("bot keeps firing at a dead enemy")
	}
}
