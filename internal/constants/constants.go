package constants

// Centralized constants for env keys, headers and routes.
const (
	// Environment variable keys
	EnvConfigPath = "IDLERPG_CONFIG"
	EnvDBPath     = "IDLERPG_DB"

	// HTTP headers and content types
	HeaderOwnerID     = "X-Owner-ID"
	HeaderContentType = "Content-Type"

	ContentTypeJSON = "application/json"
)

// Routes used by the backend router
const (
	RouteAPIPrefix         = "/api"
	RouteAbilities         = "/abilities"
	RouteLeaderboard       = "/leaderboard"
	RouteCharacters        = "/characters"
	RouteCharacterByID     = "/characters/:characterID"
	RouteCharacterRotation = "/characters/:characterID/rotation"
	RouteCharacterBattles  = "/characters/:characterID/battles"
	RouteChallenge         = "/battles/challenge"
	RouteBattleByID        = "/battles/:battleID"
	RouteBattleStream      = "/battles/:battleID/stream"
	RouteQueueJoin         = "/queue/join"
	RouteQueueStatus       = "/queue/status"
	RouteQueueLeave        = "/queue/leave"
)

// Common JSON response keys
const (
	JSONKeyError   = "error"
	JSONKeyMessage = "message"
	JSONKeyStatus  = "status"
)

// Common error messages used across API handlers
const (
	ErrInvalidRequest       = "Invalid request"
	ErrOwnerRequired        = "X-Owner-ID header is required"
	ErrInvalidCharacterID   = "Invalid character ID"
	ErrCharacterNotFound    = "Character not found"
	ErrBattleNotFound       = "Battle not found"
	ErrRotationTooShort     = "Rotation must contain at least 3 abilities"
	ErrUnknownAbility       = "Rotation references an unknown ability"
	ErrNotCharacterOwner    = "Character does not belong to this owner"
	ErrFailedFetchAbilities = "Failed to fetch abilities"
	ErrFailedFetchBattles   = "Failed to fetch battles"
	ErrFailedFetchLeaders   = "Failed to fetch leaderboard"
	ErrFailedSaveCharacter  = "Failed to save character"
	ErrFailedRunBattle      = "Failed to run battle"
	ErrFailedQueueOp        = "Queue operation failed"
	ErrSameCharacter        = "A character cannot battle itself"
)

// Logging field names
const (
	LogFieldBattleID    = "battle_id"
	LogFieldCharacterID = "character_id"
	LogFieldOwnerID     = "owner_id"
	LogFieldEffectType  = "effect_type"
	LogFieldAbilityID   = "ability_id"
	LogFieldAddr        = "addr"
)
