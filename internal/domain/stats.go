package domain

import (
	"math"
	"sort"
	"time"
)

// RestingStatus classifies a bag by how long its coffee has rested since roast.
type RestingStatus string

const (
	// RestingStatusUnknown means the roast date is not recorded.
	RestingStatusUnknown RestingStatus = "UNKNOWN"
	// RestingStatusResting covers the first three days after roast.
	RestingStatusResting RestingStatus = "RESTING"
	// RestingStatusReady covers days 4 through 21.
	RestingStatusReady RestingStatus = "READY"
	// RestingStatusPastPeak covers everything beyond day 21.
	RestingStatusPastPeak RestingStatus = "PAST_PEAK"
)

// RoastAgeDays returns the whole days elapsed between the roast date and now,
// clamped to zero for future-dated roasts. Nil when no roast date is recorded.
func RoastAgeDays(roastDate *time.Time, now time.Time) *int {
	if roastDate == nil {
		return nil
	}
	days := int(math.Floor(now.Sub(*roastDate).Hours() / 24))
	if days < 0 {
		days = 0
	}
	return &days
}

// RestingFor maps a roast age in days onto a resting band.
func RestingFor(ageDays *int) RestingStatus {
	switch {
	case ageDays == nil:
		return RestingStatusUnknown
	case *ageDays <= 3:
		return RestingStatusResting
	case *ageDays <= 21:
		return RestingStatusReady
	default:
		return RestingStatusPastPeak
	}
}

// Mean averages the values and rounds to two decimals.
// Returns nil for an empty slice.
func Mean(values []float64) *float64 {
	if len(values) == 0 {
		return nil
	}
	var sum float64
	for _, v := range values {
		sum += v
	}
	m := math.Round(sum/float64(len(values))*100) / 100
	return &m
}

// meanOfRecorded averages the non-nil entries, treating ints as float64.
func meanOfRecorded(values []*int) *float64 {
	var recorded []float64
	for _, v := range values {
		if v != nil {
			recorded = append(recorded, float64(*v))
		}
	}
	return Mean(recorded)
}

// TasteAverages holds the per-attribute mean tasting scores for a bag.
// Each average covers only the brews where that attribute was recorded.
type TasteAverages struct {
	Nutty     *float64 `json:"nutty"`
	Acidity   *float64 `json:"acidity"`
	Fruity    *float64 `json:"fruity"`
	Floral    *float64 `json:"floral"`
	Sweetness *float64 `json:"sweetness"`
	Chocolate *float64 `json:"chocolate"`
}

// TrendPoint is one rated brew in a bag's rating history.
// BrewNumber counts rated brews only, starting at 1 in chronological order.
type TrendPoint struct {
	BrewID     string    `json:"brewId"`
	BrewNumber int       `json:"brewNumber"`
	Rating     float64   `json:"rating"`
	BrewedAt   time.Time `json:"brewedAt"`
}

// BagAnalytics is the full derived-statistics report for one bag.
type BagAnalytics struct {
	BagID               string         `json:"bagId"`
	TotalBrews          int            `json:"totalBrews"`
	AverageRating       *float64       `json:"averageRating"`
	AverageDose         *float64       `json:"averageDose"`
	AverageGrindSetting *float64       `json:"averageGrindSetting"`
	AverageWaterAmount  *float64       `json:"averageWaterAmount"`
	TasteAverages       TasteAverages  `json:"tasteAverages"`
	MethodCounts        map[string]int `json:"methodCounts"`
	RatingTrend         []TrendPoint   `json:"ratingTrend"`
	BestBrew            *Brew          `json:"bestBrew"`
}

// ComputeAnalytics derives the statistics report for a bag from its brews.
// Brews must be in chronological order (oldest first).
func ComputeAnalytics(bagID string, brews []*Brew) BagAnalytics {
	a := BagAnalytics{
		BagID:        bagID,
		TotalBrews:   len(brews),
		MethodCounts: map[string]int{},
		RatingTrend:  []TrendPoint{},
	}

	var ratings []float64
	var dose, grindSetting, waterAmount []*int
	var nutty, acidity, fruity, floral, sweetness, chocolate []*int

	for _, b := range brews {
		if b.Rating != nil {
			ratings = append(ratings, *b.Rating)
			a.RatingTrend = append(a.RatingTrend, TrendPoint{
				BrewID:     b.ID,
				BrewNumber: len(a.RatingTrend) + 1,
				Rating:     *b.Rating,
				BrewedAt:   b.CreatedAt,
			})
		}
		if b.Method != "" {
			a.MethodCounts[b.Method]++
		}
		dose = append(dose, b.Dose)
		grindSetting = append(grindSetting, b.GrindSetting)
		waterAmount = append(waterAmount, b.WaterAmount)
		nutty = append(nutty, b.Nutty)
		acidity = append(acidity, b.Acidity)
		fruity = append(fruity, b.Fruity)
		floral = append(floral, b.Floral)
		sweetness = append(sweetness, b.Sweetness)
		chocolate = append(chocolate, b.Chocolate)
	}

	a.AverageRating = Mean(ratings)
	a.AverageDose = meanOfRecorded(dose)
	a.AverageGrindSetting = meanOfRecorded(grindSetting)
	a.AverageWaterAmount = meanOfRecorded(waterAmount)
	a.TasteAverages = TasteAverages{
		Nutty:     meanOfRecorded(nutty),
		Acidity:   meanOfRecorded(acidity),
		Fruity:    meanOfRecorded(fruity),
		Floral:    meanOfRecorded(floral),
		Sweetness: meanOfRecorded(sweetness),
		Chocolate: meanOfRecorded(chocolate),
	}
	a.BestBrew = SelectBestBrew(brews)
	return a
}

// SelectBestBrew picks the brew to display as the bag's best. An explicitly
// marked brew always wins. Otherwise the highest-rated brew is chosen, with
// the most recent breaking ties. Nil when no brew is marked or rated.
func SelectBestBrew(brews []*Brew) *Brew {
	for _, b := range brews {
		if b.IsBest {
			return b
		}
	}

	rated := make([]*Brew, 0, len(brews))
	for _, b := range brews {
		if b.Rating != nil {
			rated = append(rated, b)
		}
	}
	if len(rated) == 0 {
		return nil
	}

	sort.SliceStable(rated, func(i, j int) bool {
		if *rated[i].Rating != *rated[j].Rating {
			return *rated[i].Rating > *rated[j].Rating
		}
		return rated[i].CreatedAt.After(rated[j].CreatedAt)
	})
	return rated[0]
}
