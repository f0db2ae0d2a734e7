package event

import "testing"

func TestEventsAreDeliveredNextTick(t *testing.T) {
	b := NewBus()
	var got []string
	Subscribe(b, func(e PlayerJoined) { got = append(got, e.PlayerID) })

	Emit(b, PlayerJoined{PlayerID: "p1"})
	b.DispatchAll()
	if len(got) != 0 {
		t.Fatalf("event delivered in the tick it was emitted: %v", got)
	}
	if b.pending() != 1 {
		t.Fatalf("pending = %d, want 1", b.pending())
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 || got[0] != "p1" {
		t.Fatalf("got %v, want [p1]", got)
	}

	b.SwapBuffers()
	b.DispatchAll()
	if len(got) != 1 {
		t.Errorf("event delivered twice: %v", got)
	}
}

func TestSubscribersAreTyped(t *testing.T) {
	b := NewBus()
	joined, left := 0, 0
	Subscribe(b, func(PlayerJoined) { joined++ })
	Subscribe(b, func(PlayerLeft) { left++ })

	Emit(b, PlayerLeft{PlayerID: "p"})
	Emit(b, PlayerLeft{PlayerID: "q"})
	b.SwapBuffers()
	b.DispatchAll()

	if joined != 0 || left != 2 {
		t.Errorf("joined=%d left=%d, want 0 and 2", joined, left)
	}
}
