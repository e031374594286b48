package schema

import (
	"strings"
	"time"
	"unicode"

	"go.mongodb.org/mongo-driver/bson/primitive"
	"golang.org/x/text/runes"
	"golang.org/x/text/transform"
	"golang.org/x/text/unicode/norm"
)

const (
	TourCollection = "tours"

	TourDifficultyEasy      = "easy"
	TourDifficultyMedium    = "medium"
	TourDifficultyDifficult = "difficult"

	// DefaultRatingsAverage is used for tours without any review.
	DefaultRatingsAverage = 4.5
)

// GeoPoint is a GeoJSON point with an optional human readable address.
type GeoPoint struct {
	Type        string    `bson:"type" json:"type" validate:"omitempty,eq=Point"`
	Coordinates []float64 `bson:"coordinates" json:"coordinates" validate:"omitempty,len=2"`
	Address     string    `bson:"address,omitempty" json:"address,omitempty"`
	Description string    `bson:"description,omitempty" json:"description,omitempty"`
}

// TourLocation is a waypoint of a tour tagged with the day it is visited.
type TourLocation struct {
	GeoPoint `bson:",inline"`
	Day      int `bson:"day,omitempty" json:"day,omitempty"`
}

type Tour struct {
	ID              primitive.ObjectID   `bson:"_id,omitempty" json:"id"`
	Name            string               `bson:"name" json:"name" validate:"required,min=10,max=40"`
	Slug            string               `bson:"slug,omitempty" json:"slug,omitempty"`
	Duration        float64              `bson:"duration" json:"duration" validate:"required,gt=0"`
	MaxGroupSize    int                  `bson:"maxGroupSize" json:"maxGroupSize" validate:"required,gt=0"`
	Difficulty      string               `bson:"difficulty" json:"difficulty" validate:"required,oneof=easy medium difficult"`
	RatingsAverage  float64              `bson:"ratingsAverage" json:"ratingsAverage" validate:"min=1,max=5"`
	RatingsQuantity int                  `bson:"ratingsQuantity" json:"ratingsQuantity"`
	Price           float64              `bson:"price" json:"price" validate:"required,gt=0"`
	PriceDiscount   float64              `bson:"priceDiscount,omitempty" json:"priceDiscount,omitempty" validate:"omitempty,gt=0,ltfield=Price"`
	Summary         string               `bson:"summary" json:"summary" validate:"required"`
	Description     string               `bson:"description,omitempty" json:"description,omitempty"`
	ImageCover      string               `bson:"imageCover" json:"imageCover" validate:"required"`
	Images          []string             `bson:"images,omitempty" json:"images,omitempty"`
	CreatedAt       time.Time            `bson:"createdAt" json:"createdAt"`
	StartDates      []time.Time          `bson:"startDates,omitempty" json:"startDates,omitempty"`
	SecretTour      bool                 `bson:"secretTour" json:"secretTour"`
	StartLocation   *GeoPoint            `bson:"startLocation,omitempty" json:"startLocation,omitempty"`
	Locations       []TourLocation       `bson:"locations,omitempty" json:"locations,omitempty"`
	Guides          []primitive.ObjectID `bson:"guides,omitempty" json:"guides,omitempty"`

	// Read-time fields. Never persisted: DurationWeeks is computed by
	// Derive, the other two are filled in by $lookup population.
	DurationWeeks float64  `bson:"-" json:"durationWeeks,omitempty"`
	GuideDetails  []User   `bson:"guideDetails,omitempty" json:"guideDetails,omitempty"`
	Reviews       []Review `bson:"reviews,omitempty" json:"reviews,omitempty"`
}

// SetDefaults prepares a tour for insertion.
func (t *Tour) SetDefaults() {
	t.Slug = Slugify(t.Name)
	if t.CreatedAt.IsZero() {
		t.CreatedAt = time.Now().UTC()
	}
	if t.RatingsAverage == 0 {
		t.RatingsAverage = DefaultRatingsAverage
	}
	t.RatingsQuantity = 0

	// read-time fields must not sneak into the stored document
	t.DurationWeeks = 0
	t.GuideDetails = nil
	t.Reviews = nil
}

// Derive computes the read-time fields of a tour.
func (t *Tour) Derive() {
	t.DurationWeeks = t.Duration / 7
}

// TourStats is one per-difficulty summary record.
type TourStats struct {
	Difficulty string  `bson:"_id" json:"difficulty"`
	NumTours   int     `bson:"numTours" json:"numTours"`
	NumRatings int     `bson:"numRatings" json:"numRatings"`
	AvgRating  float64 `bson:"avgRating" json:"avgRating"`
	AvgPrice   float64 `bson:"avgPrice" json:"avgPrice"`
	MinPrice   float64 `bson:"minPrice" json:"minPrice"`
	MaxPrice   float64 `bson:"maxPrice" json:"maxPrice"`
}

// MonthlyPlanEntry is the number of tour starts within one month of a year.
type MonthlyPlanEntry struct {
	Month         int      `bson:"month" json:"month"`
	NumTourStarts int      `bson:"numTourStarts" json:"numTourStarts"`
	Tours         []string `bson:"tours" json:"tours"`
}

var slugStripper = transform.Chain(norm.NFD, runes.Remove(runes.In(unicode.Mn)), norm.NFC)

// Slugify derives a URL-safe slug from a tour name. Accented characters
// are folded to their base form, everything outside [a-z0-9] becomes a
// single dash.
func Slugify(name string) string {
	folded, _, err := transform.String(slugStripper, name)
	if err != nil {
		folded = name
	}

	var b strings.Builder
	dash := false
	for _, r := range strings.ToLower(folded) {
		switch {
		case (r >= 'a' && r <= 'z') || (r >= '0' && r <= '9'):
			b.WriteRune(r)
			dash = false
		default:
			if b.Len() > 0 && !dash {
				b.WriteByte('-')
				dash = true
			}
		}
	}
	return strings.TrimSuffix(b.String(), "-")
}
