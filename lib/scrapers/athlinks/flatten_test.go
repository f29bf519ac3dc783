package athlinks

import (
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func i64(v int64) *int64     { return &v }
func f64(v float64) *float64 { return &v }
func iptr(v int) *int        { return &v }

func TestFormatElapsed(t *testing.T) {
	cases := []struct {
		millis *int64
		expect string
	}{
		{millis: i64(5_425_000), expect: "1:30:25"},
		{millis: i64(325_000), expect: "05:25"},
		{millis: i64(0), expect: "00:00"},
		{millis: i64(3_600_000), expect: "1:00:00"},
		// truncates, never rounds up
		{millis: i64(325_999), expect: "05:25"},
		{millis: nil, expect: ""},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, formatElapsed(test.millis))
	}
}

func TestFormatPace(t *testing.T) {
	cases := []struct {
		millis *int64
		meters *float64
		expect string
	}{
		// 25 minutes over 5K is about 8.045 min/mile
		{millis: i64(1_500_000), meters: f64(5000), expect: "8:02"},
		{millis: i64(1_500_000), meters: nil, expect: ""},
		{millis: nil, meters: f64(5000), expect: ""},
		{millis: i64(1_500_000), meters: f64(0), expect: ""},
		{millis: i64(1_500_000), meters: f64(-10), expect: ""},
	}

	for _, test := range cases {
		require.Equal(t, test.expect, formatPace(test.millis, test.meters))
	}
}

func sampleBlocks() []CourseBlock {
	return []CourseBlock{
		{
			Race: &RaceInfo{Name: "5K"},
			Intervals: []Interval{
				{
					Distance: &Distance{Meters: f64(5000)},
					Results: []RawResult{
						{
							DisplayName:      "Jane Doe",
							Gender:           "F",
							Age:              iptr(31),
							Bib:              "102",
							Location:         &Location{Locality: "Branford", Region: "CT", Country: "USA"},
							ChipTimeInMillis: i64(1_500_000),
							Rankings:         &Rankings{Overall: iptr(4), Gender: iptr(1), Primary: iptr(1)},
							Status:           "CONF",
						},
						{
							DisplayName: "John Roe",
							Gender:      "M",
							Status:      "DNF",
						},
					},
				},
			},
		},
	}
}

func sampleMetadata() EventMetadata {
	return EventMetadata{
		ID:   i64(994637),
		Name: "Branford Turkey Trot",
		// 2023-11-23 12:00:00 UTC
		Start: &EpochTime{Epoch: i64(1_700_740_800_000)},
	}
}

func TestFlatten(t *testing.T) {
	rows := Flatten(sampleBlocks(), sampleMetadata())
	require.Len(t, rows, 2)

	require.Equal(t, Row{
		EventID:      "994637",
		EventName:    "Branford Turkey Trot",
		EventDate:    "2023-11-23",
		RaceType:     "5K",
		Name:         "Jane Doe",
		Gender:       "F",
		Age:          "31",
		Bib:          "102",
		City:         "Branford",
		State:        "CT",
		Country:      "USA",
		Time:         "25:00",
		Pace:         "8:02",
		OverallRank:  "4",
		GenderRank:   "1",
		DivisionRank: "1",
		Status:       "CONF",
	}, rows[0])

	// the DNF runner has no chip time, so both derived fields stay empty
	require.Equal(t, "John Roe", rows[1].Name)
	require.Equal(t, "", rows[1].Time)
	require.Equal(t, "", rows[1].Pace)
	require.Equal(t, "", rows[1].Age)
}

func TestFlattenDegenerateInputs(t *testing.T) {
	// course without intervals
	rows := Flatten([]CourseBlock{{Race: &RaceInfo{Name: "10K"}}}, sampleMetadata())
	require.Empty(t, rows)

	// interval without results
	rows = Flatten([]CourseBlock{
		{Intervals: []Interval{{Distance: &Distance{Meters: f64(10000)}}}},
	}, sampleMetadata())
	require.Empty(t, rows)

	require.Empty(t, Flatten(nil, sampleMetadata()))
}

func TestFlattenWithoutMetadata(t *testing.T) {
	rows := Flatten(sampleBlocks(), EventMetadata{})
	require.Len(t, rows, 2)
	for _, row := range rows {
		require.Equal(t, "", row.EventID)
		require.Equal(t, "", row.EventName)
		require.Equal(t, "", row.EventDate)
	}
	// participant fields are untouched by missing metadata
	require.Equal(t, "8:02", rows[0].Pace)
}

func TestFlattenIdempotent(t *testing.T) {
	blocks := sampleBlocks()
	meta := sampleMetadata()

	first := Flatten(blocks, meta)
	second := Flatten(blocks, meta)
	diff := cmp.Diff(first, second)
	if diff != "" {
		t.Fatalf("flatten output changed between runs:\n%s", diff)
	}
}
