package dataset

import (
	"fmt"

	"github.com/tripwise/go-tripgraph/pkg/tabular"
	"github.com/tripwise/go-tripgraph/pkg/types"
)

// Paths names the four source files of one load run.
type Paths struct {
	Travellers string
	Hotels     string
	Reviews    string
	Visa       string
}

// Dataset holds the fully decoded contents of the four sources.
type Dataset struct {
	Travellers []types.Traveller
	Hotels     []types.Hotel
	Reviews    []types.Review
	VisaRules  []types.VisaRule
}

// Load reads and decodes all four sources. A missing file, a missing
// required column or a malformed cell fails here, before any database
// interaction.
func Load(paths Paths) (*Dataset, error) {
	travellers, err := LoadTravellers(paths.Travellers)
	if err != nil {
		return nil, err
	}
	hotels, err := LoadHotels(paths.Hotels)
	if err != nil {
		return nil, err
	}
	reviews, err := LoadReviews(paths.Reviews)
	if err != nil {
		return nil, err
	}
	visaRules, err := LoadVisaRules(paths.Visa)
	if err != nil {
		return nil, err
	}

	return &Dataset{
		Travellers: travellers,
		Hotels:     hotels,
		Reviews:    reviews,
		VisaRules:  visaRules,
	}, nil
}

// LoadTravellers reads one travellers file into typed rows.
func LoadTravellers(path string) ([]types.Traveller, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := table.Require("user_id", "user_gender", "country", "age_group", "traveller_type", "join_date"); err != nil {
		return nil, err
	}

	out := make([]types.Traveller, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		if err := requireCell(table, row, "user_id"); err != nil {
			return nil, err
		}
		out = append(out, types.Traveller{
			UserID:        row.String("user_id"),
			Gender:        row.String("user_gender"),
			Country:       row.String("country"),
			AgeGroup:      row.String("age_group"),
			TravellerType: row.String("traveller_type"),
			JoinDate:      row.String("join_date"),
		})
	}
	return out, nil
}

// LoadHotels reads one hotels file into typed rows.
func LoadHotels(path string) ([]types.Hotel, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := table.Require(
		"hotel_id", "hotel_name", "city", "country", "star_rating", "lat", "lon",
		"cleanliness_base", "comfort_base", "facilities_base",
		"location_base", "staff_base", "value_for_money_base",
	); err != nil {
		return nil, err
	}

	out := make([]types.Hotel, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		if err := requireCell(table, row, "hotel_id"); err != nil {
			return nil, err
		}

		h := types.Hotel{
			HotelID: row.String("hotel_id"),
			Name:    row.String("hotel_name"),
			City:    row.String("city"),
			Country: row.String("country"),
		}

		numeric := []struct {
			column string
			dst    **float64
		}{
			{"star_rating", &h.StarRating},
			{"lat", &h.Lat},
			{"lon", &h.Lon},
			{"cleanliness_base", &h.CleanlinessBase},
			{"comfort_base", &h.ComfortBase},
			{"facilities_base", &h.FacilitiesBase},
			{"location_base", &h.LocationBase},
			{"staff_base", &h.StaffBase},
			{"value_for_money_base", &h.ValueForMoneyBase},
		}
		for _, n := range numeric {
			v, err := row.Float(n.column)
			if err != nil {
				return nil, err
			}
			*n.dst = v
		}

		out = append(out, h)
	}
	return out, nil
}

// LoadReviews reads one reviews file into typed rows.
func LoadReviews(path string) ([]types.Review, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := table.Require(
		"review_id", "user_id", "hotel_id", "review_date", "score_overall",
		"score_cleanliness", "score_comfort", "score_facilities",
		"score_location", "score_staff", "score_value_for_money", "review_text",
	); err != nil {
		return nil, err
	}

	out := make([]types.Review, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		for _, key := range []string{"review_id", "user_id", "hotel_id"} {
			if err := requireCell(table, row, key); err != nil {
				return nil, err
			}
		}

		r := types.Review{
			ReviewID: row.String("review_id"),
			UserID:   row.String("user_id"),
			HotelID:  row.String("hotel_id"),
			Date:     row.String("review_date"),
			Text:     row.String("review_text"),
		}

		numeric := []struct {
			column string
			dst    **float64
		}{
			{"score_overall", &r.ScoreOverall},
			{"score_cleanliness", &r.ScoreCleanliness},
			{"score_comfort", &r.ScoreComfort},
			{"score_facilities", &r.ScoreFacilities},
			{"score_location", &r.ScoreLocation},
			{"score_staff", &r.ScoreStaff},
			{"score_value_for_money", &r.ScoreValueForMoney},
		}
		for _, n := range numeric {
			v, err := row.Float(n.column)
			if err != nil {
				return nil, err
			}
			*n.dst = v
		}

		out = append(out, r)
	}
	return out, nil
}

// LoadVisaRules reads one visa file into typed rows, coercing the
// requires_visa flag to a boolean during decode.
func LoadVisaRules(path string) ([]types.VisaRule, error) {
	table, err := tabular.ReadFile(path)
	if err != nil {
		return nil, err
	}
	if err := table.Require("from", "to", "requires_visa", "visa_type"); err != nil {
		return nil, err
	}

	out := make([]types.VisaRule, 0, table.Len())
	for i := 0; i < table.Len(); i++ {
		row := table.Row(i)
		for _, key := range []string{"from", "to"} {
			if err := requireCell(table, row, key); err != nil {
				return nil, err
			}
		}
		out = append(out, types.VisaRule{
			FromCountry:  row.String("from"),
			ToCountry:    row.String("to"),
			RequiresVisa: row.Bool("requires_visa"),
			VisaType:     row.String("visa_type"),
		})
	}
	return out, nil
}

func requireCell(table *tabular.Table, row tabular.Row, column string) error {
	if row.IsMissing(column) {
		return fmt.Errorf("%s: line %d: required column %q is empty", table.Name(), row.Line(), column)
	}
	return nil
}
