package catalog

import (
	"context"
	"errors"
	"os"
	"path/filepath"
	"reflect"
	"strings"
	"testing"

	"recommend-backend/internal/recommend"
	"recommend-backend/internal/shared/storage/object/local"
)

const campusJSON = `[
  {"id":"c1","name":"Mess Thali","category":"meal","price":60,"time_minutes":20,"comfort_score":0.9,"exploration_score":0.1,"tags":["veg"],"description":"daily"},
  {"id":"c2","name":"Food Truck Tacos","category":"meal","price":150,"time_minutes":25,"comfort_score":0.5,"exploration_score":0.7,"tags":[]}
]`

func writeCatalog(t *testing.T, dir, name, body string) {
	t.Helper()
	if err := os.WriteFile(filepath.Join(dir, name), []byte(body), 0o644); err != nil {
		t.Fatalf("write %s: %v", name, err)
	}
}

func TestObjectRepoLoad(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "campus.json", campusJSON)
	repo := NewObjectRepo(local.New(dir))

	items, err := repo.Load(context.Background(), " Campus ")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(items) != 2 || items[0].ID != "c1" || items[1].TimeCost != 25 {
		t.Fatalf("unexpected items: %+v", items)
	}
	if items[0].ComfortAffinity != 0.9 || !reflect.DeepEqual(items[0].Tags, []string{"veg"}) {
		t.Fatalf("fields not decoded: %+v", items[0])
	}
}

func TestObjectRepoUnknownDomain(t *testing.T) {
	repo := NewObjectRepo(local.New(t.TempDir()))
	for _, domain := range []string{"mars", "../etc/passwd", ""} {
		if _, err := repo.Load(context.Background(), domain); !errors.Is(err, ErrUnknownDomain) {
			t.Fatalf("Load(%q): expected ErrUnknownDomain, got %v", domain, err)
		}
	}
}

func TestObjectRepoRejectsInvalidCatalog(t *testing.T) {
	tests := map[string]string{
		"malformed":     `[{"id":`,
		"unknown field": `[{"id":"a","name":"A","price":1,"time_minutes":1,"comfort":0.5}]`,
		"duplicate id":  `[{"id":"a","name":"A","price":1,"time_minutes":1},{"id":"a","name":"B","price":1,"time_minutes":1}]`,
		"out of range":  `[{"id":"a","name":"A","price":1,"time_minutes":1,"comfort_score":2}]`,
	}
	for name, body := range tests {
		t.Run(name, func(t *testing.T) {
			dir := t.TempDir()
			writeCatalog(t, dir, "bad.json", body)
			_, err := NewObjectRepo(local.New(dir)).Load(context.Background(), "bad")
			if !errors.Is(err, ErrInvalidCatalog) {
				t.Fatalf("expected ErrInvalidCatalog, got %v", err)
			}
		})
	}
}

func TestObjectRepoDomains(t *testing.T) {
	dir := t.TempDir()
	writeCatalog(t, dir, "travel.json", "[]")
	writeCatalog(t, dir, "campus.json", "[]")
	writeCatalog(t, dir, "Bad Name.json", "[]")
	writeCatalog(t, dir, "readme.md", "")

	domains, err := NewObjectRepo(local.New(dir)).Domains(context.Background())
	if err != nil {
		t.Fatalf("Domains: %v", err)
	}
	if want := []string{"campus", "travel"}; !reflect.DeepEqual(domains, want) {
		t.Fatalf("Domains = %v, want %v", domains, want)
	}
}

func TestObjectRepoSaveRoundTrip(t *testing.T) {
	repo := NewObjectRepo(local.New(t.TempDir()))
	items := []recommend.Item{{ID: "x", Name: "X", Price: 5, TimeCost: 5, ComfortAffinity: 0.5, ExplorationAffinity: 0.5}}

	if err := repo.Save(context.Background(), "retail", items); err != nil {
		t.Fatalf("Save: %v", err)
	}
	got, err := repo.Load(context.Background(), "retail")
	if err != nil {
		t.Fatalf("Load: %v", err)
	}
	if len(got) != 1 || got[0].ID != "x" || got[0].Price != 5 {
		t.Fatalf("unexpected round trip: %+v", got)
	}

	bad := []recommend.Item{{ID: "", Name: "no id"}}
	if err := repo.Save(context.Background(), "retail", bad); !errors.Is(err, recommend.ErrInvalidItem) {
		t.Fatalf("expected validation error, got %v", err)
	}
}

func TestDecodeRejectsNonArray(t *testing.T) {
	if _, err := Decode(strings.NewReader(`{"id":"a"}`)); err == nil {
		t.Fatalf("expected error for object document")
	}
}
