package runs

import (
	"os"
	"testing"
	"time"

	json "github.com/goccy/go-json"

	"exportgen/internal/domain"
)

func TestSQLiteRunsCRUD(t *testing.T) {
	f, err := os.CreateTemp("", "exportgen_runs_*.db")
	if err != nil {
		t.Fatal(err)
	}
	defer os.Remove(f.Name())
	_ = f.Close()

	repo := NewSQLiteRepository(f.Name())
	if err := repo.Init(); err != nil {
		t.Fatal(err)
	}

	run := &domain.Run{
		BlueprintID:   "bp1",
		BlueprintName: "fixtures",
		OutDir:        "/tmp/out",
		DataSizeBytes: 2048,
		NumberOfFiles: 2,
		Status:        domain.RunStatusRunning,
		StartedAt:     time.Now().UTC().Truncate(time.Second),
	}
	if err := repo.Create(run); err != nil {
		t.Fatal(err)
	}
	if run.ID == "" {
		t.Fatal("expected generated run id")
	}

	stats, err := json.Marshal(domain.RunStats{FilesWritten: 2, FileSizeBytes: 1024, TablesPerFile: 1, DurationSeconds: 0.5})
	if err != nil {
		t.Fatal(err)
	}
	completed := time.Now().UTC().Truncate(time.Second)
	run.Status = domain.RunStatusSuccess
	run.CompletedAt = &completed
	run.Stats = stats
	if err := repo.Update(run); err != nil {
		t.Fatal(err)
	}

	got, err := repo.Get(run.ID)
	if err != nil {
		t.Fatal(err)
	}
	if got.Status != domain.RunStatusSuccess || got.BlueprintName != "fixtures" {
		t.Fatalf("unexpected run: %#v", got)
	}
	if got.CompletedAt == nil {
		t.Fatal("expected completed_at")
	}

	var gotStats domain.RunStats
	if err := json.Unmarshal(got.Stats, &gotStats); err != nil {
		t.Fatal(err)
	}
	if gotStats.FilesWritten != 2 {
		t.Fatalf("unexpected stats: %#v", gotStats)
	}

	list, err := repo.List(10, "")
	if err != nil {
		t.Fatal(err)
	}
	if len(list) != 1 {
		t.Fatalf("expected 1 run, got %d", len(list))
	}

	failed, err := repo.List(10, string(domain.RunStatusFailed))
	if err != nil {
		t.Fatal(err)
	}
	if len(failed) != 0 {
		t.Fatalf("expected no failed runs, got %d", len(failed))
	}
}

func TestNewRepositoryPicksBackend(t *testing.T) {
	if _, ok := NewRepository("postgres://u:p@localhost/db").(*PostgresRepository); !ok {
		t.Fatal("expected postgres repository for postgres DSN")
	}
	if _, ok := NewRepository("./runs.sqlite").(*SQLiteRepository); !ok {
		t.Fatal("expected sqlite repository for file path")
	}
}
