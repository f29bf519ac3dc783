package analytics

import (
	"context"
	"database/sql"
	"sort"
	"strconv"
	"strings"

	"athlinks-backend/lib/scrapers/athlinks"

	"github.com/antzucaro/matchr"
	"go.opentelemetry.io/otel"
	"go.opentelemetry.io/otel/attribute"
	"go.opentelemetry.io/otel/codes"
)

var tracer = otel.Tracer("services/analytics")

// Service stores scraped result tables and answers the aggregate queries the
// dashboard renders.
type Service struct {
	db *sql.DB
}

func NewService(database *sql.DB) Service {
	return Service{db: database}
}

const insertResult = `
INSERT INTO results (
	master_id, event_id, event_name, event_date, event_year, race_type,
	name, gender, age, bib, city, state, country,
	time, time_seconds, pace, pace_seconds,
	overall_rank, gender_rank, division_rank, status
) VALUES (?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?, ?)
`

// Ingest bulk-inserts every record of a scraped table in one transaction.
// masterID is used for rows whose table doesn't already carry a master id
// column. pace_seconds and event_year are derived at ingest so the queries
// never re-parse display strings.
func (s Service) Ingest(ctx context.Context, t athlinks.Table, masterID string) (int, error) {
	ctx, span := tracer.Start(ctx, "Ingest")
	defer span.End()
	span.SetAttributes(attribute.Int("records", len(t.Records)))

	col := map[string]int{}
	for i, name := range t.Columns {
		col[name] = i
	}
	field := func(record []string, name string) string {
		idx, ok := col[name]
		if !ok || idx >= len(record) {
			return ""
		}
		return record[idx]
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	defer tx.Rollback()

	stmt, err := tx.PrepareContext(ctx, insertResult)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	defer stmt.Close()

	inserted := 0
	for _, record := range t.Records {
		rowMaster := field(record, athlinks.MasterIDColumn)
		if rowMaster == "" {
			rowMaster = masterID
		}

		var paceSeconds any
		if secs, ok := ParsePaceSeconds(field(record, "Pace")); ok {
			paceSeconds = secs
		}
		// elapsed time strings share the pace shape, MM:SS or H:MM:SS
		var timeSeconds any
		if secs, ok := ParsePaceSeconds(field(record, "Time")); ok {
			timeSeconds = secs
		}
		var eventYear any
		if year, ok := yearOf(field(record, "Event Date")); ok {
			eventYear = year
		}

		_, err = stmt.ExecContext(ctx,
			rowMaster,
			field(record, "Event ID"),
			field(record, "Event Name"),
			field(record, "Event Date"),
			eventYear,
			field(record, "Race Type"),
			field(record, "Name"),
			field(record, "Gender"),
			field(record, "Age"),
			field(record, "Bib"),
			field(record, "City"),
			field(record, "State"),
			field(record, "Country"),
			field(record, "Time"),
			timeSeconds,
			field(record, "Pace"),
			paceSeconds,
			field(record, "Overall Rank"),
			field(record, "Gender Rank"),
			field(record, "Division Rank"),
			field(record, "Status"),
		)
		if err != nil {
			span.RecordError(err)
			span.SetStatus(codes.Error, err.Error())
			return 0, err
		}
		inserted++
	}

	err = tx.Commit()
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return 0, err
	}
	return inserted, nil
}

func yearOf(date string) (int, bool) {
	if len(date) < 4 {
		return 0, false
	}
	year, err := strconv.Atoi(date[:4])
	if err != nil {
		return 0, false
	}
	return year, true
}

type Overview struct {
	TotalRunners   int64   `json:"total_runners"`
	AvgPaceSeconds float64 `json:"avg_pace_seconds"`
	FastestTime    string  `json:"fastest_time"`
	SlowestTime    string  `json:"slowest_time"`
}

// Overview aggregates over every stored row with a computable pace.
// Fastest/slowest order over the stored second counts, the display strings
// mix MM:SS and H:MM:SS and don't sort lexicographically.
func (s Service) Overview(ctx context.Context) (Overview, error) {
	ctx, span := tracer.Start(ctx, "Overview")
	defer span.End()

	row := s.db.QueryRowContext(ctx, `
		SELECT COUNT(*),
		       COALESCE(AVG(pace_seconds), 0),
		       COALESCE((SELECT time FROM results WHERE time_seconds IS NOT NULL
		                 ORDER BY time_seconds ASC LIMIT 1), ''),
		       COALESCE((SELECT time FROM results WHERE time_seconds IS NOT NULL
		                 ORDER BY time_seconds DESC LIMIT 1), '')
		FROM results
		WHERE pace_seconds IS NOT NULL
	`)

	var out Overview
	err := row.Scan(&out.TotalRunners, &out.AvgPaceSeconds, &out.FastestTime, &out.SlowestTime)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return Overview{}, err
	}
	return out, nil
}

type YearTrend struct {
	Year          int     `json:"year"`
	RunnerCount   int     `json:"runner_count"`
	MinPaceMin    float64 `json:"min_pace_min"`
	MaxPaceMin    float64 `json:"max_pace_min"`
	MedianPaceMin float64 `json:"median_pace_min"`
}

// Trends aggregates pace stats per year. The median is folded in Go since
// sqlite has no MEDIAN aggregate.
func (s Service) Trends(ctx context.Context) ([]YearTrend, error) {
	ctx, span := tracer.Start(ctx, "Trends")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT event_year, pace_seconds
		FROM results
		WHERE pace_seconds IS NOT NULL AND event_year IS NOT NULL
		ORDER BY event_year ASC, pace_seconds ASC
	`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	byYear := map[int][]int{}
	var years []int
	for rows.Next() {
		var year, pace int
		err = rows.Scan(&year, &pace)
		if err != nil {
			return nil, err
		}
		if _, seen := byYear[year]; !seen {
			years = append(years, year)
		}
		byYear[year] = append(byYear[year], pace)
	}
	err = rows.Err()
	if err != nil {
		return nil, err
	}
	sort.Ints(years)

	trends := make([]YearTrend, 0, len(years))
	for _, year := range years {
		paces := byYear[year]
		trends = append(trends, YearTrend{
			Year:          year,
			RunnerCount:   len(paces),
			MinPaceMin:    float64(paces[0]) / 60,
			MaxPaceMin:    float64(paces[len(paces)-1]) / 60,
			MedianPaceMin: median(paces) / 60,
		})
	}
	return trends, nil
}

// median of an already sorted slice
func median(sorted []int) float64 {
	n := len(sorted)
	if n == 0 {
		return 0
	}
	if n%2 == 1 {
		return float64(sorted[n/2])
	}
	return float64(sorted[n/2-1]+sorted[n/2]) / 2
}

// PaceDistribution returns every computable pace in minutes, histogram
// binning is the dashboard's job.
func (s Service) PaceDistribution(ctx context.Context) ([]float64, error) {
	ctx, span := tracer.Start(ctx, "PaceDistribution")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT pace_seconds / 60.0
		FROM results
		WHERE pace_seconds IS NOT NULL
	`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var out []float64
	for rows.Next() {
		var pace float64
		err = rows.Scan(&pace)
		if err != nil {
			return nil, err
		}
		out = append(out, pace)
	}
	return out, rows.Err()
}

type Partner struct {
	Name      string `json:"name"`
	Pace      string `json:"pace"`
	Time      string `json:"time"`
	EventDate string `json:"event_date"`
	RaceType  string `json:"race_type"`
}

// PacePartners finds runners finishing within toleranceSeconds of the target
// pace, restricted to the two most recent years on record, closest first.
func (s Service) PacePartners(ctx context.Context, targetPace string, toleranceSeconds int) ([]Partner, error) {
	ctx, span := tracer.Start(ctx, "PacePartners")
	defer span.End()
	span.SetAttributes(attribute.String("target_pace", targetPace))

	target, ok := ParseTargetPace(targetPace)
	if !ok {
		return nil, ErrBadPace
	}

	var maxYear sql.NullInt64
	err := s.db.QueryRowContext(ctx, `SELECT MAX(event_year) FROM results`).Scan(&maxYear)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}

	query := `
		SELECT name, pace, time, event_date, race_type
		FROM results
		WHERE pace_seconds BETWEEN ? AND ?
	`
	args := []any{target - toleranceSeconds, target + toleranceSeconds}
	if maxYear.Valid {
		query += ` AND event_year >= ?`
		args = append(args, maxYear.Int64-1)
	}
	query += ` ORDER BY ABS(pace_seconds - ?) ASC LIMIT 20`
	args = append(args, target)

	rows, err := s.db.QueryContext(ctx, query, args...)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var out []Partner
	for rows.Next() {
		var p Partner
		err = rows.Scan(&p.Name, &p.Pace, &p.Time, &p.EventDate, &p.RaceType)
		if err != nil {
			return nil, err
		}
		out = append(out, p)
	}
	return out, rows.Err()
}

type HistoryEntry struct {
	EventDate   string `json:"event_date"`
	EventName   string `json:"event_name"`
	RaceType    string `json:"race_type"`
	Time        string `json:"time"`
	Pace        string `json:"pace"`
	OverallRank string `json:"overall_rank"`
}

// jaro-winkler scores above this count as the same runner
const nameSimilarityThreshold = 0.85

// RunnerHistory looks up every stored race of a runner, newest first.
// A plain case-insensitive substring match runs first; when it comes up
// empty the search falls back to fuzzy-matching the query against the
// distinct stored names, so "jon smith" still finds "John Smith".
func (s Service) RunnerHistory(ctx context.Context, name string) ([]HistoryEntry, error) {
	ctx, span := tracer.Start(ctx, "RunnerHistory")
	defer span.End()
	span.SetAttributes(attribute.String("name", name))

	entries, err := s.historyByPattern(ctx, "%"+name+"%")
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	if len(entries) > 0 {
		return entries, nil
	}

	fuzzy, err := s.fuzzyNameMatches(ctx, name)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	for _, match := range fuzzy {
		matched, err := s.historyByPattern(ctx, match)
		if err != nil {
			return nil, err
		}
		entries = append(entries, matched...)
	}
	return entries, nil
}

func (s Service) historyByPattern(ctx context.Context, pattern string) ([]HistoryEntry, error) {
	rows, err := s.db.QueryContext(ctx, `
		SELECT event_date, event_name, race_type, time, pace, overall_rank
		FROM results
		WHERE name LIKE ? COLLATE NOCASE
		ORDER BY event_date DESC
	`, pattern)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var out []HistoryEntry
	for rows.Next() {
		var e HistoryEntry
		err = rows.Scan(&e.EventDate, &e.EventName, &e.RaceType, &e.Time, &e.Pace, &e.OverallRank)
		if err != nil {
			return nil, err
		}
		out = append(out, e)
	}
	return out, rows.Err()
}

func (s Service) fuzzyNameMatches(ctx context.Context, query string) ([]string, error) {
	rows, err := s.db.QueryContext(ctx, `SELECT DISTINCT name FROM results`)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var matches []string
	for rows.Next() {
		var stored string
		err = rows.Scan(&stored)
		if err != nil {
			return nil, err
		}
		similarity := matchr.JaroWinkler(
			strings.ToLower(query),
			strings.ToLower(stored),
			false,
		)
		if similarity >= nameSimilarityThreshold {
			matches = append(matches, stored)
		}
	}
	return matches, rows.Err()
}

type FrequentRunner struct {
	Name      string `json:"name"`
	RaceCount int    `json:"race_count"`
	BestPace  string `json:"best_pace"`
}

// HallOfFame lists runners who show up in more than one race.
func (s Service) HallOfFame(ctx context.Context) ([]FrequentRunner, error) {
	ctx, span := tracer.Start(ctx, "HallOfFame")
	defer span.End()

	rows, err := s.db.QueryContext(ctx, `
		SELECT name, COUNT(*) AS race_count, MIN(pace) AS best_pace
		FROM results
		WHERE pace != ''
		GROUP BY name
		HAVING COUNT(*) > 1
		ORDER BY race_count DESC, best_pace ASC
		LIMIT 10
	`)
	if err != nil {
		span.RecordError(err)
		span.SetStatus(codes.Error, err.Error())
		return nil, err
	}
	defer rows.Close()

	var out []FrequentRunner
	for rows.Next() {
		var r FrequentRunner
		err = rows.Scan(&r.Name, &r.RaceCount, &r.BestPace)
		if err != nil {
			return nil, err
		}
		out = append(out, r)
	}
	return out, rows.Err()
}
