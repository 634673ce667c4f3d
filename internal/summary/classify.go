// Package summary reduces an event's record sets into one derived
// EventSummary. Everything here is a pure function of its inputs; the
// caller supplies "now".
package summary

import (
	"strings"
	"time"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

// AgeBucket is the pricing bucket of an attendee.
type AgeBucket int

const (
	Adult AgeBucket = iota
	MidMinor
	YoungMinor
)

const (
	youngMinorMaxAge = 3  // exclusive
	midMinorMaxAge   = 10 // exclusive
)

// DietCategory is the closed set of catering diets. DietOther collects
// every tag that is not recognised.
type DietCategory int

const (
	DietStandard DietCategory = iota
	DietVegetarian
	DietVegan
	DietGlutenFree
	DietLactoseFree
	DietGlutenAndLactoseFree
	DietOther

	numDietCategories
)

// ParseDiet maps a free-text diet tag onto a category. An empty tag means
// standard; anything unrecognised means other.
func ParseDiet(tag string) DietCategory {
	switch strings.ToLower(strings.TrimSpace(tag)) {
	case "", "standard":
		return DietStandard
	case "vegetarian":
		return DietVegetarian
	case "vegan":
		return DietVegan
	case "gluten-free", "glutenfree":
		return DietGlutenFree
	case "lactose-free", "lactosefree":
		return DietLactoseFree
	case "gluten-and-lactose-free", "glutenlactosefree":
		return DietGlutenAndLactoseFree
	default:
		return DietOther
	}
}

// DietCounts holds one counter per diet category.
type DietCounts [numDietCategories]int

// Total is the number of attendees counted across all diets.
func (d DietCounts) Total() int {
	n := 0
	for _, c := range d {
		n += c
	}
	return n
}

// Classification is the output of classifying an attendee list.
type Classification struct {
	Adults       int
	MidMinors    int
	YoungMinors  int
	ServiceSeats int
	Diets        DietCounts
}

// Total is the number of classified attendees.
func (c Classification) Total() int {
	return c.Adults + c.MidMinors + c.YoungMinors
}

// AgeOn returns the age in whole years on the given day, or false when the
// birth date is unknown. Both values are read as calendar dates.
func AgeOn(dob *time.Time, day time.Time) (int, bool) {
	if dob == nil {
		return 0, false
	}
	by, bm, bd := dob.Date()
	ey, em, ed := day.Date()

	age := ey - by
	if em < bm || (em == bm && ed < bd) {
		age--
	}
	return age, true
}

// Bucket assigns an attendee to an age bucket for an event held on eventDate.
// A minor without a birth date falls into the mid bucket.
func Bucket(a model.Attendee, eventDate time.Time) AgeBucket {
	if !a.IsMinor {
		return Adult
	}
	age, known := AgeOn(a.DateOfBirth, eventDate)
	switch {
	case !known:
		return MidMinor
	case age < youngMinorMaxAge:
		return YoungMinor
	case age < midMinorMaxAge:
		return MidMinor
	default:
		return Adult
	}
}

// Classify counts attendees per age bucket, per diet, and in service groups.
func Classify(attendees []model.Attendee, eventDate time.Time) Classification {
	var c Classification
	for _, a := range attendees {
		switch Bucket(a, eventDate) {
		case Adult:
			c.Adults++
		case MidMinor:
			c.MidMinors++
		case YoungMinor:
			c.YoungMinors++
		}

		c.Diets[ParseDiet(a.Diet)]++

		if a.InServiceGroup {
			c.ServiceSeats++
		}
	}
	return c
}
