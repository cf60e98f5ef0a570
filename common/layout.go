package common

// Logical screen size; frames are scaled to fit inside it.
const (
	BaseWidth  = 1280
	BaseHeight = 720
)

// TPS is the game update rate the player runs at.
const TPS = 60
