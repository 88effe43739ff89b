package runlog

import (
	"context"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"healthdash/pkg"
)

func TestRepo_missingFileIsEmptyLog(t *testing.T) {
	repo := NewRepo(filepath.Join(t.TempDir(), "runs.csv"))

	runs, err := repo.List(context.Background())
	require.NoError(t, err)
	assert.Empty(t, runs)
}

func TestRepo_addAndList(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "runs.csv")
	repo := NewRepo(filePath)
	ctx := context.Background()

	first := mustRun(t, pkg.NewDay(2024, time.May, 3), 10, 52.5)
	second := mustRun(t, pkg.NewDay(2024, time.May, 5), 5, 25)
	require.NoError(t, repo.Add(ctx, first))
	require.NoError(t, repo.Add(ctx, second))

	runs, err := repo.List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, first, runs[0])
	assert.Equal(t, second, runs[1])

	// reopen through a fresh repo, data must survive
	runs, err = NewRepo(filePath).List(ctx)
	require.NoError(t, err)
	require.Len(t, runs, 2)
	assert.Equal(t, 5.25, runs[0].PaceMinPerKm)
}

func TestRepo_fileFormat(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "runs.csv")
	repo := NewRepo(filePath)

	require.NoError(t, repo.Add(context.Background(), mustRun(t, pkg.NewDay(2024, time.May, 3), 10, 52.5)))

	content, err := os.ReadFile(filePath)
	require.NoError(t, err)
	assert.Equal(t,
		"date,distance_km,time_min,pace_min_per_km\n03/05/2024,10,52.5,5.25\n",
		string(content),
	)
}

func TestRepo_loadFileWithoutHeader(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, os.WriteFile(
		filePath,
		[]byte("15/06/2023,5,26.5,5.3\n"),
		0o600,
	))

	runs, err := NewRepo(filePath).List(context.Background())
	require.NoError(t, err)
	require.Len(t, runs, 1)
	assert.Equal(t, pkg.NewDay(2023, time.June, 15), runs[0].Date)
	assert.Equal(t, 5.3, runs[0].PaceMinPerKm)
}

func TestRepo_loadMalformedRecord(t *testing.T) {
	filePath := filepath.Join(t.TempDir(), "runs.csv")
	require.NoError(t, os.WriteFile(
		filePath,
		[]byte("date,distance_km,time_min,pace_min_per_km\n01/01/2024,ten,60,6\n"),
		0o600,
	))

	_, err := NewRepo(filePath).List(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "distance_km")
}
