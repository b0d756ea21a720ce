package game

// Grid
const (
	DefaultTileSize = 16.0 // pixels per tile edge
)

// Movement speeds, in pixels per simulation step
const (
	AvatarSpeed        = 1.25
	PursuerSpeed       = 1.0
	ScaredPursuerSpeed = 0.5
	JailMoveSpeed      = 0.5
)

// Timing (milliseconds)
const (
	StepMs           = 1000.0 / 60.0
	MaxSubSteps      = 5
	ReleaseDelayMs   = 2000.0 // delay before the first pursuer leaves the pen
	ReleaseStaggerMs = 3000.0 // extra delay for each following pursuer
	ReleaseTweenMs   = 600.0
	RespawnDelayMs   = 1000.0 // eaten pursuer regenerating in the pen
	ScaredDurationMs = 6000.0
	ScaredWarningMs  = 2000.0 // blink during the final part of the window
	ScaredBlinkMs    = 250.0
)

// Scoring
const (
	PelletPoints       = 10
	PowerPelletPoints  = 50
	PursuerBasePoints  = 200
	PursuerMaxPoints   = 1600
	StartingLives      = 3
	DefaultGhostCount  = 4
	CatchDistanceRatio = 0.5 // of a tile, between world centers
)

// Pellet layout defaults
const (
	DefaultPowerRatio = 1.0 / 13.0
	DefaultPowerMin   = 1
)
