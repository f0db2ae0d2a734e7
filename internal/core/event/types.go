package event

// PlayerJoined is emitted once a connection's avatar has been spawned.
type PlayerJoined struct {
	PlayerID string
	AvatarID string
}

// PlayerLeft is emitted after a disconnected player's entities are removed.
type PlayerLeft struct {
	PlayerID string
	Removed  int
}

// AvatarKilled is emitted when the server confirms a lethal hit.
type AvatarKilled struct {
	KillerPlayerID string
	VictimPlayerID string
	Headshot       bool
}
