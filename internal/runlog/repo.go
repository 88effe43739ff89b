package runlog

import (
	"context"
	"encoding/csv"
	"fmt"
	"os"
	"strconv"
	"sync"

	"healthdash/internal/telemetry/tracing"
	"healthdash/pkg"
)

// column order is fixed for compatibility with existing data files
var csvHeader = []string{"date", "distance_km", "time_min", "pace_min_per_km"}

// Repo persists runs in a single CSV file, rewritten as a whole on
// every change.
type Repo struct {
	filePath string
	mu       sync.Mutex
}

func NewRepo(filePath string) *Repo {
	return &Repo{
		filePath: filePath,
	}
}

func (r *Repo) List(ctx context.Context) (_ []Run, err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.runlog.list")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()
	return r.loadLocked()
}

func (r *Repo) Add(ctx context.Context, run Run) (err error) {
	_, span := tracing.GlobalTracer.Start(ctx, "repo.runlog.add")
	defer func() {
		tracing.EndSpanWithErrCheck(span, err)
	}()

	r.mu.Lock()
	defer r.mu.Unlock()

	existing, err := r.loadLocked()
	if err != nil {
		return err
	}

	return r.writeLocked(append(existing, run))
}

func (r *Repo) loadLocked() ([]Run, error) {
	file, err := os.Open(r.filePath)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, nil
		}
		return nil, fmt.Errorf("open runs file: %w", err)
	}
	defer file.Close()

	records, err := csv.NewReader(file).ReadAll()
	if err != nil {
		return nil, fmt.Errorf("read runs file: %w", err)
	}

	var runs []Run
	for i, record := range records {
		if i == 0 && len(record) > 0 && record[0] == csvHeader[0] {
			continue
		}
		if len(record) != len(csvHeader) {
			return nil, fmt.Errorf("runs record %d has %d fields, want %d", i, len(record), len(csvHeader))
		}

		date, err := pkg.ParseDay(record[0])
		if err != nil {
			return nil, fmt.Errorf("runs record %d: %w", i, err)
		}
		distanceKm, err := strconv.ParseFloat(record[1], 64)
		if err != nil {
			return nil, fmt.Errorf("runs record %d, distance_km: %w", i, err)
		}
		timeMin, err := strconv.ParseFloat(record[2], 64)
		if err != nil {
			return nil, fmt.Errorf("runs record %d, time_min: %w", i, err)
		}
		paceMinPerKm, err := strconv.ParseFloat(record[3], 64)
		if err != nil {
			return nil, fmt.Errorf("runs record %d, pace_min_per_km: %w", i, err)
		}

		runs = append(runs, Run{
			Date:         date,
			DistanceKm:   distanceKm,
			TimeMin:      timeMin,
			PaceMinPerKm: paceMinPerKm,
		})
	}

	return runs, nil
}

func (r *Repo) writeLocked(runs []Run) error {
	file, err := os.Create(r.filePath)
	if err != nil {
		return fmt.Errorf("create runs file: %w", err)
	}
	defer file.Close()

	writer := csv.NewWriter(file)
	if err := writer.Write(csvHeader); err != nil {
		return fmt.Errorf("write runs header: %w", err)
	}
	for _, run := range runs {
		record := []string{
			run.Date.String(),
			strconv.FormatFloat(run.DistanceKm, 'f', -1, 64),
			strconv.FormatFloat(run.TimeMin, 'f', -1, 64),
			strconv.FormatFloat(run.PaceMinPerKm, 'f', -1, 64),
		}
		if err := writer.Write(record); err != nil {
			return fmt.Errorf("write runs record: %w", err)
		}
	}

	writer.Flush()
	if err := writer.Error(); err != nil {
		return fmt.Errorf("flush runs file: %w", err)
	}
	return nil
}
