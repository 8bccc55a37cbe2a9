package entity

// Reference data used to configure a product. Metals and gems are seeded,
// links are the repeating chain units a necklace is built from.

type Metal struct {
	ID          int     `json:"id"`
	Name        string  `json:"name"`
	Purity      string  `json:"purity"`
	Density     float64 `json:"density"`     // g/mm^3
	CostPerGram float64 `json:"costPerGram"`
}

type Gem struct {
	ID    int     `json:"id"`
	Name  string  `json:"name"`
	Shape string  `json:"shape"`
	Carat float64 `json:"carat"`
	Price float64 `json:"price"`
}

type Link struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Size   float64 `json:"size"`
	Volume float64 `json:"volume"`
}

type Ring struct {
	ID     int     `json:"id"`
	Name   string  `json:"name"`
	Size   float64 `json:"size"`
	Volume float64 `json:"volume"`
}

type Necklace struct {
	ID        int    `json:"id"`
	LinkID    int    `json:"linkId"`
	Name      string `json:"name"`
	LinkCount int    `json:"linkCount"`
}

// Quote is the derived mass and price for a configured piece.
type Quote struct {
	Mass  float64 `json:"mass"`
	Price float64 `json:"price"`
}
