package summary

import (
	"math/rand"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"

	"github.com/Shivanand-hulikatti/event-planner/internal/model"
)

var weddingDay = time.Date(2026, time.June, 14, 0, 0, 0, 0, time.UTC)

func dob(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestAgeOn(t *testing.T) {
	tests := []struct {
		name string
		dob  *time.Time
		want int
		ok   bool
	}{
		{"unknown", nil, 0, false},
		{"birthday on the day", dob(2016, time.June, 14), 10, true},
		{"birthday the day after", dob(2016, time.June, 15), 9, true},
		{"birthday earlier in month", dob(2016, time.June, 1), 10, true},
		{"birthday next month", dob(2016, time.July, 1), 9, true},
		{"newborn", dob(2026, time.January, 1), 0, true},
		{"leap day", dob(2020, time.February, 29), 6, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			age, ok := AgeOn(tt.dob, weddingDay)
			assert.Equal(t, tt.ok, ok)
			assert.Equal(t, tt.want, age)
		})
	}
}

func TestBucket(t *testing.T) {
	tests := []struct {
		name     string
		attendee model.Attendee
		want     AgeBucket
	}{
		{"adult without dob", model.Attendee{}, Adult},
		{"not a minor regardless of dob", model.Attendee{DateOfBirth: dob(2025, time.January, 1)}, Adult},
		{"minor aged 2", model.Attendee{IsMinor: true, DateOfBirth: dob(2024, time.January, 1)}, YoungMinor},
		{"minor turning 3 on the day", model.Attendee{IsMinor: true, DateOfBirth: dob(2023, time.June, 14)}, MidMinor},
		{"minor day before turning 3", model.Attendee{IsMinor: true, DateOfBirth: dob(2023, time.June, 15)}, YoungMinor},
		{"minor aged 9", model.Attendee{IsMinor: true, DateOfBirth: dob(2017, time.January, 1)}, MidMinor},
		{"minor turning 10 on the day", model.Attendee{IsMinor: true, DateOfBirth: dob(2016, time.June, 14)}, Adult},
		{"minor aged 15", model.Attendee{IsMinor: true, DateOfBirth: dob(2011, time.March, 3)}, Adult},
		{"minor with unknown age", model.Attendee{IsMinor: true}, MidMinor},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, Bucket(tt.attendee, weddingDay))
		})
	}
}

func TestParseDiet(t *testing.T) {
	tests := map[string]DietCategory{
		"":                        DietStandard,
		"  ":                      DietStandard,
		"standard":                DietStandard,
		"Vegetarian":              DietVegetarian,
		"VEGAN":                   DietVegan,
		"gluten-free":             DietGlutenFree,
		"glutenfree":              DietGlutenFree,
		"Lactose-Free":            DietLactoseFree,
		"lactosefree":             DietLactoseFree,
		"gluten-and-lactose-free": DietGlutenAndLactoseFree,
		"glutenlactosefree":       DietGlutenAndLactoseFree,
		"keto":                    DietOther,
		"wegetariańska":           DietOther,
	}
	for tag, want := range tests {
		assert.Equal(t, want, ParseDiet(tag), "tag %q", tag)
	}
}

func TestClassify_MinorWithoutBirthDateIsMidMinor(t *testing.T) {
	c := Classify([]model.Attendee{{IsMinor: true}}, weddingDay)

	assert.Equal(t, 0, c.Adults)
	assert.Equal(t, 1, c.MidMinors)
	assert.Equal(t, 0, c.YoungMinors)
}

func TestClassify_CountsServiceSeatsAndDiets(t *testing.T) {
	attendees := []model.Attendee{
		{Diet: "vegan"},
		{Diet: "vegan", InServiceGroup: true},
		{Diet: "paleo", InServiceGroup: true},
		{},
	}
	c := Classify(attendees, weddingDay)

	assert.Equal(t, 4, c.Adults)
	assert.Equal(t, 2, c.ServiceSeats)
	assert.Equal(t, 2, c.Diets[DietVegan])
	assert.Equal(t, 1, c.Diets[DietOther])
	assert.Equal(t, 1, c.Diets[DietStandard])
}

func randomAttendees(r *rand.Rand, n int) []model.Attendee {
	diets := []string{"", "standard", "vegan", "Vegetarian", "gluten-free", "lactosefree",
		"gluten-and-lactose-free", "halal", "???"}
	out := make([]model.Attendee, n)
	for i := range out {
		a := model.Attendee{
			IsMinor:        r.Intn(3) == 0,
			Diet:           diets[r.Intn(len(diets))],
			InServiceGroup: r.Intn(10) == 0,
		}
		if r.Intn(4) != 0 {
			a.DateOfBirth = dob(2026-r.Intn(60), time.Month(1+r.Intn(12)), 1+r.Intn(28))
		}
		out[i] = a
	}
	return out
}

func TestClassify_PartitionsEveryAttendee(t *testing.T) {
	r := rand.New(rand.NewSource(42))
	for i := 0; i < 200; i++ {
		attendees := randomAttendees(r, r.Intn(80))
		c := Classify(attendees, weddingDay)

		assert.Equal(t, len(attendees), c.Total(), "age buckets")
		assert.Equal(t, len(attendees), c.Diets.Total(), "diet buckets")
	}
}
