package main

import (
	"reflect"
	"testing"
	"time"

	"nexus/internal/pendency"
)

func TestDisplayTime(t *testing.T) {
	stamp := pendency.Timestamp(time.Date(2025, 5, 20, 14, 30, 0, 0, time.Local))
	if got := displayTime(stamp); got != "20/05/2025 14:30" {
		t.Fatalf("displayTime = %q", got)
	}
	if got := displayTime("not-a-date"); got != "not-a-date" {
		t.Fatalf("unparseable input must pass through, got %q", got)
	}
}

func TestTruncate(t *testing.T) {
	if got := truncate("curto", 10); got != "curto" {
		t.Fatalf("truncate = %q", got)
	}
	if got := truncate("Equipamento industrial", 10); got != "Equipam..." {
		t.Fatalf("truncate = %q", got)
	}
	// Multi-byte text must be cut on rune boundaries.
	if got := truncate("negociação em andamento", 12); got != "negociaçã..." {
		t.Fatalf("truncate = %q", got)
	}
}

func TestParseDateFlag(t *testing.T) {
	got, err := parseDateFlag("2025-05-20")
	if err != nil {
		t.Fatalf("parseDateFlag failed: %v", err)
	}
	want := time.Date(2025, 5, 20, 0, 0, 0, 0, time.Local)
	if !got.Equal(want) {
		t.Fatalf("parsed = %v", got)
	}

	if got, err := parseDateFlag(""); err != nil || !got.IsZero() {
		t.Fatalf("empty flag should yield zero time, got %v %v", got, err)
	}
	if _, err := parseDateFlag("20/05/2025"); err == nil {
		t.Fatal("expected error for wrong layout")
	}
}

func TestSortedCountRows(t *testing.T) {
	rows := sortedCountRows(map[string]int{
		"Ativa":     3,
		"Arquivada": 1,
		"Cancelada": 3,
	})
	want := [][]string{
		{"Ativa", "3"},
		{"Cancelada", "3"},
		{"Arquivada", "1"},
	}
	if !reflect.DeepEqual(rows, want) {
		t.Fatalf("rows = %v", rows)
	}
}

func TestRenderPlain(t *testing.T) {
	out := renderPlain([]string{"A", "B"}, [][]string{{"1", "2"}, {"3", "4"}})
	if out != "A\tB\n1\t2\n3\t4" {
		t.Fatalf("renderPlain = %q", out)
	}
}
