package domain

import "time"

// Brew is a single recorded brewing session against a bag.
// Method is always present; the recipe and tasting fields are optional and
// nil means not recorded.
type Brew struct {
	ID           string    `json:"id"`
	BagID        string    `json:"bagId"`
	OwnerID      string    `json:"-"`
	Method       string    `json:"method"`
	Brewer       string    `json:"brewer,omitempty"`
	Grinder      string    `json:"grinder,omitempty"`
	Dose         *int      `json:"dose"`
	GrindSetting *int      `json:"grindSetting"`
	WaterAmount  *int      `json:"waterAmount"`
	Rating       *float64  `json:"rating"`
	Nutty        *int      `json:"nutty"`
	Acidity      *int      `json:"acidity"`
	Fruity       *int      `json:"fruity"`
	Floral       *int      `json:"floral"`
	Sweetness    *int      `json:"sweetness"`
	Chocolate    *int      `json:"chocolate"`
	IsBest       bool      `json:"isBest"`
	Notes        string    `json:"notes,omitempty"`
	CreatedAt    time.Time `json:"createdAt"`
}

// FeedBrew is a brew joined with the identifying fields of its bag,
// as shown on the public activity feed.
type FeedBrew struct {
	Brew
	CoffeeName string `json:"coffeeName"`
	Roaster    string `json:"roaster"`
}
