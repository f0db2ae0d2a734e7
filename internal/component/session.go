package component

// Owner links an entity to the network player that created it.
// The server despawns everything owned by a player when their connection drops.
type Owner struct {
	PlayerID string
}

// Avatar marks a player-controlled body.
type Avatar struct {
	PlayerID string
	Dead     bool
	Kills    int
	Deaths   int
}
