package model

import "time"

// WorldSnapshot is the single shared multiplayer-state blob, opaque to the
// server. At most one snapshot exists at any time; every update replaces it
// wholesale.
type WorldSnapshot struct {
	Data      JSONObject
	UpdatedAt time.Time
}
