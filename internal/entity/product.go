package entity

import "time"

// Product references exactly one of NecklaceID/RingID. The repository and
// handlers both enforce the exclusivity.
type Product struct {
	ID         int       `json:"id"`
	Name       string    `json:"name"`
	Mass       float64   `json:"mass"`
	Price      float64   `json:"price"`
	MetalID    int       `json:"metalId"`
	GemID      int       `json:"gemId"`
	NecklaceID *int      `json:"necklaceId"`
	RingID     *int      `json:"ringId"`
	CreatorID  int       `json:"creatorId"`
	CreatedAt  time.Time `json:"created_at"`
}
