package storage

import (
	"context"
	"path/filepath"
	"testing"
)

func openTestDB(t *testing.T) *DB {
	t.Helper()
	db, err := Open(filepath.Join(t.TempDir(), "journal.sqlite"))
	if err != nil {
		t.Fatalf("Open failed: %v", err)
	}
	t.Cleanup(func() { db.Close() })
	return db
}

func TestAppendAndRecent(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	entries := []Record{
		{Texto: "primera noticia", Resultado: "verificado", ConsultaID: 1},
		{Texto: "segunda noticia", Resultado: "probablemente_falso", ConsultaID: 2},
		{Texto: "", URL: "https://example.com/nota", Resultado: "mixto", ConsultaID: 3},
	}
	for _, rec := range entries {
		if err := db.Append(ctx, rec); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	got, err := db.Recent(ctx, 2)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 2 {
		t.Fatalf("expected 2 records, got %d", len(got))
	}
	// Newest first.
	if got[0].URL != "https://example.com/nota" {
		t.Fatalf("expected newest record first, got %+v", got[0])
	}
	if got[1].Texto != "segunda noticia" {
		t.Fatalf("unexpected second record: %+v", got[1])
	}
}

func TestRecent_Empty(t *testing.T) {
	db := openTestDB(t)

	got, err := db.Recent(context.Background(), 5)
	if err != nil {
		t.Fatalf("Recent failed: %v", err)
	}
	if len(got) != 0 {
		t.Fatalf("expected no records, got %d", len(got))
	}
}

func TestStats(t *testing.T) {
	db := openTestDB(t)
	ctx := context.Background()

	for _, resultado := range []string{"verificado", "verificado", "probablemente_falso"} {
		if err := db.Append(ctx, Record{Texto: "x", Resultado: resultado}); err != nil {
			t.Fatalf("Append failed: %v", err)
		}
	}

	stats, err := db.Stats(ctx)
	if err != nil {
		t.Fatalf("Stats failed: %v", err)
	}
	if stats.Total != 3 {
		t.Fatalf("expected total 3, got %d", stats.Total)
	}
	if stats.PorResultado["verificado"] != 2 || stats.PorResultado["probablemente_falso"] != 1 {
		t.Fatalf("unexpected breakdown: %v", stats.PorResultado)
	}
}
