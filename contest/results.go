package contest

import (
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"sort"
	"strconv"
	"strings"

	"github.com/uptrace/bun"

	"github.com/padraicbc/pick36/models"
)

// ResultRow is one driver's finishing data as supplied by the caller.
// Points are whatever the caller's scoring policy produced; nothing here
// recomputes them.
type ResultRow struct {
	DriverName     string `json:"driverName" validate:"required"`
	FinishPosition int    `json:"finishPosition" validate:"required,min=1"`
	Points         int    `json:"points" validate:"min=0"`
}

// MissingColumnsError names the required CSV columns absent from an upload.
// It is returned before any mutation happens.
type MissingColumnsError struct {
	Columns []string
}

func (e *MissingColumnsError) Error() string {
	return "results file missing required columns: " + strings.Join(e.Columns, ", ")
}

// EnterResults replaces the stored results for a race, back-fills points
// onto matching picks and marks the race completed, all in one
// transaction. Picks whose driver is absent from the rows keep their
// current points. Re-running with identical rows is a no-op state-wise.
func EnterResults(ctx context.Context, db *bun.DB, raceID int, rows []ResultRow) error {
	if len(rows) == 0 {
		return fmt.Errorf("no result rows supplied")
	}

	exists, err := db.NewSelect().Model((*models.Race)(nil)).
		Where("id = ?", raceID).
		Exists(ctx)
	if err != nil {
		return fmt.Errorf("looking up race: %w", err)
	}
	if !exists {
		return ErrRaceNotFound
	}

	tx, err := db.BeginTx(ctx, nil)
	if err != nil {
		return fmt.Errorf("starting transaction: %w", err)
	}
	defer tx.Rollback()

	_, err = tx.NewDelete().Model((*models.Result)(nil)).
		Where("race_id = ?", raceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("clearing old results: %w", err)
	}

	results := make([]models.Result, len(rows))
	for i, row := range rows {
		results[i] = models.Result{
			RaceID:         raceID,
			DriverName:     strings.TrimSpace(row.DriverName),
			FinishPosition: row.FinishPosition,
			Points:         row.Points,
		}
	}
	if _, err := tx.NewInsert().Model(&results).Exec(ctx); err != nil {
		return fmt.Errorf("inserting results: %w", err)
	}

	for _, res := range results {
		_, err = tx.NewUpdate().Model((*models.Pick)(nil)).
			Set("points = ?", res.Points).
			Where("race_id = ?", raceID).
			Where("driver_name = ?", res.DriverName).
			Exec(ctx)
		if err != nil {
			return fmt.Errorf("scoring picks: %w", err)
		}
	}

	_, err = tx.NewUpdate().Model((*models.Race)(nil)).
		Set("is_completed = ?", true).
		Where("id = ?", raceID).
		Exec(ctx)
	if err != nil {
		return fmt.Errorf("completing race: %w", err)
	}

	if err := tx.Commit(); err != nil {
		return fmt.Errorf("committing results: %w", err)
	}
	return nil
}

// ResultsForRace returns stored results ordered by finish position.
func ResultsForRace(ctx context.Context, db bun.IDB, raceID int) ([]models.Result, error) {
	var results []models.Result
	err := db.NewSelect().Model(&results).
		Where("race_id = ?", raceID).
		Order("finish_position ASC").
		Scan(ctx)
	if err != nil {
		return nil, fmt.Errorf("listing results: %w", err)
	}
	return results, nil
}

// ParseResultsCSV reads a results upload with required columns driver_name
// and total_points. Rows are ranked by total_points descending to derive
// finish positions; ties keep their input order.
func ParseResultsCSV(r io.Reader) ([]ResultRow, error) {
	cr := csv.NewReader(r)
	cr.TrimLeadingSpace = true

	header, err := cr.Read()
	if err != nil {
		return nil, fmt.Errorf("reading csv header: %w", err)
	}

	driverCol, pointsCol := -1, -1
	for i, name := range header {
		switch strings.ToLower(strings.TrimSpace(name)) {
		case "driver_name":
			driverCol = i
		case "total_points":
			pointsCol = i
		}
	}

	var missing []string
	if driverCol < 0 {
		missing = append(missing, "driver_name")
	}
	if pointsCol < 0 {
		missing = append(missing, "total_points")
	}
	if len(missing) > 0 {
		return nil, &MissingColumnsError{Columns: missing}
	}

	var rows []ResultRow
	for line := 2; ; line++ {
		record, err := cr.Read()
		if err == io.EOF {
			break
		}
		if err != nil {
			return nil, fmt.Errorf("reading csv line %d: %w", line, err)
		}

		driver := strings.TrimSpace(record[driverCol])
		if driver == "" {
			continue
		}
		points, err := strconv.Atoi(strings.TrimSpace(record[pointsCol]))
		if err != nil {
			return nil, fmt.Errorf("csv line %d: bad total_points %q", line, record[pointsCol])
		}
		rows = append(rows, ResultRow{DriverName: driver, Points: points})
	}

	sort.SliceStable(rows, func(i, j int) bool { return rows[i].Points > rows[j].Points })
	for i := range rows {
		rows[i].FinishPosition = i + 1
	}
	return rows, nil
}
