package athlinks

// Shapes returned by the reignite results API. Almost any nested object can
// be missing from a response, so optional levels are pointers and accessors
// have to null-check their way down.

type EpochTime struct {
	Epoch *int64 `json:"epoch"`
}

type EventMetadata struct {
	ID       *int64     `json:"id"`
	Name     string     `json:"name"`
	Start    *EpochTime `json:"start"`
	MasterID *int64     `json:"masterId"`
}

type masterMetadata struct {
	Events []masterEvent `json:"events"`
}

type masterEvent struct {
	ID    int64      `json:"id"`
	Name  string     `json:"name"`
	Start *EpochTime `json:"start"`
}

// EventSummary is one child event of a master (recurring) event.
type EventSummary struct {
	ID   int64
	Name string
	// start of the event in epoch milliseconds, 0 when the API didn't
	// report one
	Epoch int64
	// YYYY-MM-DD, or "Unknown" when there is no epoch
	Date string
}

// CourseBlock is one race/category within an event, e.g. "5K".
type CourseBlock struct {
	Race      *RaceInfo  `json:"race"`
	Intervals []Interval `json:"intervals"`
}

type RaceInfo struct {
	Name string `json:"name"`
}

// Interval is a timing segment within a course, usually the finish line.
type Interval struct {
	Distance *Distance   `json:"distance"`
	Results  []RawResult `json:"results"`
}

type Distance struct {
	Meters *float64 `json:"meters"`
}

// RawResult is one participant's record at one interval.
type RawResult struct {
	DisplayName      string    `json:"displayName"`
	Gender           string    `json:"gender"`
	Age              *int      `json:"age"`
	Bib              string    `json:"bib"`
	Location         *Location `json:"location"`
	ChipTimeInMillis *int64    `json:"chipTimeInMillis"`
	Rankings         *Rankings `json:"rankings"`
	Status           string    `json:"status"`
}

type Location struct {
	Locality string `json:"locality"`
	Region   string `json:"region"`
	Country  string `json:"country"`
}

type Rankings struct {
	Overall *int `json:"overall"`
	Gender  *int `json:"gender"`
	Primary *int `json:"primary"`
}
