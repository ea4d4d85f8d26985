package calibration

import (
	"path/filepath"
	"testing"
)

func openTestStore(t *testing.T) *Store {
	t.Helper()
	path := filepath.Join(t.TempDir(), "calibration.db")
	store, err := NewStore(path)
	if err != nil {
		t.Fatalf("NewStore: %v", err)
	}
	t.Cleanup(func() { store.Close() })
	return store
}

func TestStoreInsertAndLoadSamples(t *testing.T) {
	store := openTestStore(t)

	if err := store.InsertSample("clarity", 42, "2024-01-01", 5.5, 1.2); err != nil {
		t.Fatalf("InsertSample: %v", err)
	}
	if err := store.InsertSample("clarity", 43, "2024-01-02", 6.1, -0.4); err != nil {
		t.Fatalf("InsertSample: %v", err)
	}

	dti, hqs, err := store.SampleSeries("clarity")
	if err != nil {
		t.Fatalf("SampleSeries: %v", err)
	}
	if len(dti) != 2 || len(hqs) != 2 {
		t.Fatalf("expected 2 samples each, got dti=%d hqs=%d", len(dti), len(hqs))
	}
}

func TestStoreReplacePercentilesRoundTrip(t *testing.T) {
	store := openTestStore(t)

	values := []float64{5, 1, 3, 2, 4}
	if err := store.ReplacePercentiles("focus", "dti", values); err != nil {
		t.Fatalf("ReplacePercentiles: %v", err)
	}

	loaded, err := store.LoadPercentiles("focus", "dti")
	if err != nil {
		t.Fatalf("LoadPercentiles: %v", err)
	}
	want := []float64{1, 2, 3, 4, 5}
	if len(loaded) != len(want) {
		t.Fatalf("expected %d values, got %d", len(want), len(loaded))
	}
	for i := range want {
		if loaded[i] != want[i] {
			t.Fatalf("percentile table not sorted ascending: got %v", loaded)
		}
	}
}

func TestStoreReplacePercentilesOverwrites(t *testing.T) {
	store := openTestStore(t)

	if err := store.ReplacePercentiles("focus", "hqs", []float64{1, 2, 3}); err != nil {
		t.Fatalf("ReplacePercentiles: %v", err)
	}
	if err := store.ReplacePercentiles("focus", "hqs", []float64{9, 8}); err != nil {
		t.Fatalf("ReplacePercentiles: %v", err)
	}

	loaded, err := store.LoadPercentiles("focus", "hqs")
	if err != nil {
		t.Fatalf("LoadPercentiles: %v", err)
	}
	if len(loaded) != 2 || loaded[0] != 8 || loaded[1] != 9 {
		t.Fatalf("expected replacement to discard the old table, got %v", loaded)
	}
}

func TestStoreLoadPercentilesEmptyForUnknownMeter(t *testing.T) {
	store := openTestStore(t)
	loaded, err := store.LoadPercentiles("nonexistent", "dti")
	if err != nil {
		t.Fatalf("LoadPercentiles: %v", err)
	}
	if len(loaded) != 0 {
		t.Fatalf("expected empty table for an unknown meter, got %v", loaded)
	}
}

func TestStorePairedHQSKeysByChartAndDate(t *testing.T) {
	store := openTestStore(t)
	if err := store.InsertSample("clarity", 42, "2024-01-01", 5.5, 1.2); err != nil {
		t.Fatalf("InsertSample: %v", err)
	}
	paired, err := store.PairedHQS("clarity")
	if err != nil {
		t.Fatalf("PairedHQS: %v", err)
	}
	if got, ok := paired["42|2024-01-01"]; !ok || got != 1.2 {
		t.Fatalf("expected keyed hqs value 1.2, got %v (ok=%v)", got, ok)
	}
}
