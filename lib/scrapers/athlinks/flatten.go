package athlinks

import (
	"fmt"
	"math"
	"strconv"
)

const milesPerMeter = 0.000621371

// Row is one participant at one interval, with the event context attached.
// Every field is already rendered for tabular output, absent values are
// empty strings.
type Row struct {
	EventID      string
	EventName    string
	EventDate    string
	RaceType     string
	Name         string
	Gender       string
	Age          string
	Bib          string
	City         string
	State        string
	Country      string
	Time         string
	Pace         string
	OverallRank  string
	GenderRank   string
	DivisionRank string
	Status       string
}

// Flatten turns nested course blocks into one row per
// (course, interval, participant), preserving the order they arrived in.
// Missing intervals or results contribute nothing, a zero-value metadata
// leaves the event fields empty.
func Flatten(blocks []CourseBlock, meta EventMetadata) []Row {
	eventID := ""
	if meta.ID != nil {
		eventID = strconv.FormatInt(*meta.ID, 10)
	}
	eventDate := ""
	if meta.Start != nil && meta.Start.Epoch != nil {
		eventDate = formatEpochDate(*meta.Start.Epoch)
	}

	var rows []Row
	for _, course := range blocks {
		raceType := ""
		if course.Race != nil {
			raceType = course.Race.Name
		}

		for _, interval := range course.Intervals {
			var meters *float64
			if interval.Distance != nil {
				meters = interval.Distance.Meters
			}

			for _, r := range interval.Results {
				row := Row{
					EventID:   eventID,
					EventName: meta.Name,
					EventDate: eventDate,
					RaceType:  raceType,
					Name:      r.DisplayName,
					Gender:    r.Gender,
					Bib:       r.Bib,
					Time:      formatElapsed(r.ChipTimeInMillis),
					Pace:      formatPace(r.ChipTimeInMillis, meters),
					Status:    r.Status,
				}
				if r.Age != nil {
					row.Age = strconv.Itoa(*r.Age)
				}
				if r.Location != nil {
					row.City = r.Location.Locality
					row.State = r.Location.Region
					row.Country = r.Location.Country
				}
				if r.Rankings != nil {
					row.OverallRank = formatRank(r.Rankings.Overall)
					row.GenderRank = formatRank(r.Rankings.Gender)
					row.DivisionRank = formatRank(r.Rankings.Primary)
				}
				rows = append(rows, row)
			}
		}
	}
	return rows
}

func formatRank(rank *int) string {
	if rank == nil {
		return ""
	}
	return strconv.Itoa(*rank)
}

// formatElapsed renders chip millis as H:MM:SS, or MM:SS under an hour.
// Truncates to whole seconds.
func formatElapsed(millis *int64) string {
	if millis == nil {
		return ""
	}
	seconds := *millis / 1000
	m, s := seconds/60, seconds%60
	h := m / 60
	m = m % 60
	if h > 0 {
		return fmt.Sprintf("%d:%02d:%02d", h, m, s)
	}
	return fmt.Sprintf("%02d:%02d", m, s)
}

// formatPace renders minutes per mile as M:SS. Both the chip time and the
// interval distance have to be known for pace to be computable, otherwise
// the empty string stands in for it. This never errors: a row with a weird
// distance just loses its pace, not the whole flatten.
func formatPace(millis *int64, meters *float64) string {
	if millis == nil || meters == nil {
		return ""
	}
	miles := *meters * milesPerMeter
	if miles <= 0 {
		return ""
	}

	minutes := float64(*millis) / 1000 / 60
	pace := minutes / miles
	if math.IsNaN(pace) || math.IsInf(pace, 0) || pace < 0 {
		return ""
	}

	whole := int(pace)
	seconds := int((pace - float64(whole)) * 60)
	return fmt.Sprintf("%d:%02d", whole, seconds)
}
