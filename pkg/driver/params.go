package driver

import (
	"github.com/tripwise/go-tripgraph/pkg/types"
)

// Builders that turn typed rows into Cypher parameter maps. Optional
// numeric values travel as null so that MERGE/SET never invents a
// property for a value the source file did not carry.

// floatParam converts an optional float into a query parameter.
func floatParam(f *float64) any {
	if f == nil {
		return nil
	}
	return *f
}

func travellerRows(travellers []types.Traveller) []map[string]any {
	rows := make([]map[string]any, 0, len(travellers))
	for _, t := range travellers {
		rows = append(rows, map[string]any{
			"user_id":        t.UserID,
			"user_gender":    t.Gender,
			"age_group":      t.AgeGroup,
			"traveller_type": t.TravellerType,
		})
	}
	return rows
}

func hotelRows(hotels []types.Hotel) []map[string]any {
	rows := make([]map[string]any, 0, len(hotels))
	for _, h := range hotels {
		rows = append(rows, map[string]any{
			"hotel_id":         h.HotelID,
			"hotel_name":       h.Name,
			"star_rating":      floatParam(h.StarRating),
			"cleanliness_base": floatParam(h.CleanlinessBase),
			"comfort_base":     floatParam(h.ComfortBase),
			"facilities_base":  floatParam(h.FacilitiesBase),
		})
	}
	return rows
}

func reviewRows(reviews []types.Review) []map[string]any {
	rows := make([]map[string]any, 0, len(reviews))
	for _, r := range reviews {
		rows = append(rows, map[string]any{
			"review_id":             r.ReviewID,
			"user_id":               r.UserID,
			"hotel_id":              r.HotelID,
			"review_date":           r.Date,
			"review_text":           r.Text,
			"score_overall":         floatParam(r.ScoreOverall),
			"score_cleanliness":     floatParam(r.ScoreCleanliness),
			"score_comfort":         floatParam(r.ScoreComfort),
			"score_facilities":      floatParam(r.ScoreFacilities),
			"score_location":        floatParam(r.ScoreLocation),
			"score_staff":           floatParam(r.ScoreStaff),
			"score_value_for_money": floatParam(r.ScoreValueForMoney),
		})
	}
	return rows
}

func visaRows(rules []types.VisaRule) []map[string]any {
	rows := make([]map[string]any, 0, len(rules))
	for _, v := range rules {
		rows = append(rows, map[string]any{
			"from":          v.FromCountry,
			"to":            v.ToCountry,
			"requires_visa": v.RequiresVisa,
			"visa_type":     v.VisaType,
		})
	}
	return rows
}

// countryNames returns the distinct non-empty country names across
// hotels and travellers, in order of first appearance.
func countryNames(travellers []types.Traveller, hotels []types.Hotel) []string {
	seen := make(map[string]bool)
	var names []string
	for _, h := range hotels {
		if h.Country != "" && !seen[h.Country] {
			seen[h.Country] = true
			names = append(names, h.Country)
		}
	}
	for _, t := range travellers {
		if t.Country != "" && !seen[t.Country] {
			seen[t.Country] = true
			names = append(names, t.Country)
		}
	}
	return names
}

// cityNames returns the distinct non-empty city names across hotels,
// in order of first appearance.
func cityNames(hotels []types.Hotel) []string {
	seen := make(map[string]bool)
	var names []string
	for _, h := range hotels {
		if h.City != "" && !seen[h.City] {
			seen[h.City] = true
			names = append(names, h.City)
		}
	}
	return names
}

// hotelCityPairs pairs each hotel with its city. Hotels without a
// city are left out and end up with no LOCATED_IN edge.
func hotelCityPairs(hotels []types.Hotel) []map[string]any {
	var rows []map[string]any
	for _, h := range hotels {
		if h.City == "" {
			continue
		}
		rows = append(rows, map[string]any{
			"hotel_id": h.HotelID,
			"city":     h.City,
		})
	}
	return rows
}

// cityCountryPairs returns the distinct (city, country) pairs across
// hotels. Pairs missing either side are left out.
func cityCountryPairs(hotels []types.Hotel) []map[string]any {
	type pair struct{ city, country string }
	seen := make(map[pair]bool)
	var rows []map[string]any
	for _, h := range hotels {
		if h.City == "" || h.Country == "" {
			continue
		}
		p := pair{h.City, h.Country}
		if seen[p] {
			continue
		}
		seen[p] = true
		rows = append(rows, map[string]any{
			"city":    h.City,
			"country": h.Country,
		})
	}
	return rows
}

// travellerCountryPairs pairs each traveller with their home country.
// Travellers without a country are left out.
func travellerCountryPairs(travellers []types.Traveller) []map[string]any {
	var rows []map[string]any
	for _, t := range travellers {
		if t.Country == "" {
			continue
		}
		rows = append(rows, map[string]any{
			"user_id": t.UserID,
			"country": t.Country,
		})
	}
	return rows
}
