package catalog

import (
	"context"
	"path/filepath"
	"testing"
)

// testStore creates a temporary catalog database and registers cleanup.
func testStore(t *testing.T) *Store {
	t.Helper()
	dbPath := filepath.Join(t.TempDir(), "test.catalog.db")
	s, err := Open(context.Background(), dbPath)
	if err != nil {
		t.Fatalf("Open(%q): %v", dbPath, err)
	}
	t.Cleanup(func() { s.Close() })
	return s
}

func TestOpen(t *testing.T) {
	t.Parallel()

	t.Run("creates database and tables", func(t *testing.T) {
		t.Parallel()
		s := testStore(t)

		var mode string
		if err := s.db.QueryRow("PRAGMA journal_mode").Scan(&mode); err != nil {
			t.Fatalf("query journal_mode: %v", err)
		}
		if mode != "wal" {
			t.Errorf("journal_mode = %q, want %q", mode, "wal")
		}

		tables := map[string]bool{"projects": false, "kind_counts": false}
		rows, err := s.db.Query("SELECT name FROM sqlite_master WHERE type='table'")
		if err != nil {
			t.Fatalf("query sqlite_master: %v", err)
		}
		defer rows.Close()
		for rows.Next() {
			var name string
			if err := rows.Scan(&name); err != nil {
				t.Fatalf("scan table name: %v", err)
			}
			tables[name] = true
		}
		for name, found := range tables {
			if !found {
				t.Errorf("table %q not created", name)
			}
		}
	})

	t.Run("idempotent schema creation", func(t *testing.T) {
		t.Parallel()
		dbPath := filepath.Join(t.TempDir(), "idempotent.catalog.db")

		s1, err := Open(context.Background(), dbPath)
		if err != nil {
			t.Fatalf("first open: %v", err)
		}
		s1.Close()

		s2, err := Open(context.Background(), dbPath)
		if err != nil {
			t.Fatalf("second open: %v", err)
		}
		s2.Close()
	})
}

func TestPut(t *testing.T) {
	t.Parallel()
	ctx := context.Background()

	t.Run("insert and read back", func(t *testing.T) {
		t.Parallel()
		s := testStore(t)

		rec := Record{
			Path:          "ws/App.xcodeproj/project.pbxproj",
			Status:        StatusOK,
			ObjectVersion: "56",
			ObjectCount:   12,
			TargetCount:   2,
		}
		kinds := map[string]int{"PBXGroup": 3, "PBXFileReference": 5}
		if err := s.Put(ctx, rec, kinds); err != nil {
			t.Fatalf("Put: %v", err)
		}

		got, err := s.Projects(ctx)
		if err != nil {
			t.Fatalf("Projects: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Projects: got %d rows, want 1", len(got))
		}
		if got[0].Path != rec.Path || got[0].Status != StatusOK {
			t.Errorf("row = %+v, want path %q status %q", got[0], rec.Path, StatusOK)
		}
		if got[0].ObjectCount != 12 || got[0].TargetCount != 2 {
			t.Errorf("counts = %d/%d, want 12/2", got[0].ObjectCount, got[0].TargetCount)
		}
		if got[0].ScannedAt.IsZero() {
			t.Error("ScannedAt is zero, want a timestamp")
		}
	})

	t.Run("upsert replaces previous scan", func(t *testing.T) {
		t.Parallel()
		s := testStore(t)

		path := "ws/App.xcodeproj/project.pbxproj"
		ok := Record{Path: path, Status: StatusOK, ObjectVersion: "56", ObjectCount: 12}
		if err := s.Put(ctx, ok, map[string]int{"PBXGroup": 3}); err != nil {
			t.Fatalf("first Put: %v", err)
		}

		failed := Record{Path: path, Status: StatusFailed, Diagnostic: "missing field: objects.A.isa"}
		if err := s.Put(ctx, failed, nil); err != nil {
			t.Fatalf("second Put: %v", err)
		}

		got, err := s.Projects(ctx)
		if err != nil {
			t.Fatalf("Projects: %v", err)
		}
		if len(got) != 1 {
			t.Fatalf("Projects: got %d rows, want 1", len(got))
		}
		if got[0].Status != StatusFailed {
			t.Errorf("status = %q, want %q", got[0].Status, StatusFailed)
		}
		if got[0].Diagnostic == "" {
			t.Error("diagnostic lost on upsert")
		}

		// The failed re-scan wiped the kind counts.
		totals, err := s.KindTotals(ctx)
		if err != nil {
			t.Fatalf("KindTotals: %v", err)
		}
		if len(totals) != 0 {
			t.Errorf("KindTotals: got %v, want none", totals)
		}
	})
}

func TestKindTotals(t *testing.T) {
	t.Parallel()
	ctx := context.Background()
	s := testStore(t)

	a := Record{Path: "a/project.pbxproj", Status: StatusOK}
	if err := s.Put(ctx, a, map[string]int{"PBXGroup": 2, "PBXFileReference": 4}); err != nil {
		t.Fatalf("Put a: %v", err)
	}
	b := Record{Path: "b/project.pbxproj", Status: StatusOK}
	if err := s.Put(ctx, b, map[string]int{"PBXGroup": 1, "PBXNativeTarget": 3}); err != nil {
		t.Fatalf("Put b: %v", err)
	}

	totals, err := s.KindTotals(ctx)
	if err != nil {
		t.Fatalf("KindTotals: %v", err)
	}

	want := map[string]int{"PBXFileReference": 4, "PBXGroup": 3, "PBXNativeTarget": 3}
	if len(totals) != len(want) {
		t.Fatalf("KindTotals: got %d entries, want %d", len(totals), len(want))
	}
	for i := 1; i < len(totals); i++ {
		if totals[i-1].Isa >= totals[i].Isa {
			t.Errorf("totals not sorted: %q before %q", totals[i-1].Isa, totals[i].Isa)
		}
	}
	for _, kt := range totals {
		if kt.Count != want[kt.Isa] {
			t.Errorf("%s: got %d, want %d", kt.Isa, kt.Count, want[kt.Isa])
		}
	}
}
