package types

// Traveller is one row of the travellers source file.
// Country and JoinDate are optional; an empty string means the cell
// was missing.
type Traveller struct {
	UserID        string
	Gender        string
	Country       string
	AgeGroup      string
	TravellerType string
	JoinDate      string
}

// Hotel is one row of the hotels source file.
// Numeric columns are pointers: nil means the cell was missing, and a
// nil value reaches the database as null so no property is written.
// Only a subset of the columns is persisted on the Hotel node; the
// rest (lat/lon, the location/staff/value base scores) are carried so
// callers can inspect them, but the loader never stores them.
type Hotel struct {
	HotelID    string
	Name       string
	City       string
	Country    string
	StarRating *float64

	Lat *float64
	Lon *float64

	CleanlinessBase   *float64
	ComfortBase       *float64
	FacilitiesBase    *float64
	LocationBase      *float64
	StaffBase         *float64
	ValueForMoneyBase *float64
}

// Review is one row of the reviews source file. Each review names the
// traveller who wrote it and the hotel it scores, which is what the
// WROTE, REVIEWED and STAYED_AT relationships are built from.
type Review struct {
	ReviewID string
	UserID   string
	HotelID  string
	Date     string
	Text     string

	ScoreOverall       *float64
	ScoreCleanliness   *float64
	ScoreComfort       *float64
	ScoreFacilities    *float64
	ScoreLocation      *float64
	ScoreStaff         *float64
	ScoreValueForMoney *float64
}

// VisaRule is one row of the visa source file. RequiresVisa has
// already been coerced from the file's free-form flag column; only
// true rows produce a NEEDS_VISA relationship.
type VisaRule struct {
	FromCountry  string
	ToCountry    string
	RequiresVisa bool
	VisaType     string
}
