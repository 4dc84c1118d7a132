package clubs

// Club is one physical gym location with a live member counter used by
// the occupancy display.
type Club struct {
	ID                  int64  `json:"id"`
	Name                string `json:"name"`
	Address             string `json:"address"`
	PhoneNumber         string `json:"phoneNumber"`
	CurrentMembersCount int    `json:"currentMembersCount"`
}
