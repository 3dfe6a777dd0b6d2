package request

import "game-platform/internal/data/entity"

// GameRequest is the body of create and update calls
type GameRequest = entity.GameData

// BulkGameRequest wraps the JSON array posted to the bulk endpoint. Items are
// validated one by one by the game service.
type BulkGameRequest struct {
	Games []GameRequest `json:"games" validate:"required,min=1,max=500"`
}
