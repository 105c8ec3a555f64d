package gazetteer

import (
	"errors"
	"testing"

	"github.com/FleetlyAI/fleetly-mvp/engine/domain"
)

func TestTag_LongestMatchFirst(t *testing.T) {
	tbl := Default()
	tags := tbl.Tag("find vehicle number V001", domain.LangEnglish)

	var cats []domain.Category
	for _, tg := range tags {
		cats = append(cats, tg.Category)
	}
	// "vehicle number" must win over the bare "vehicle" type keyword.
	foundPhrase := false
	for _, tg := range tags {
		if tg.Keyword == "vehicle number" {
			foundPhrase = true
		}
		if tg.Keyword == "vehicle" {
			t.Errorf("bare %q tagged despite longer phrase, tags=%v", tg.Keyword, cats)
		}
	}
	if !foundPhrase {
		t.Fatalf("expected \"vehicle number\" tag, got %v", tags)
	}
}

func TestTag_Hebrew(t *testing.T) {
	tbl := Default()
	tags := tbl.Tag("חיפוש רכב 56-722-64", domain.LangHebrew)
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", tags)
	}
	if tags[0].Category != domain.CatVehicleSearch || tags[0].Canonical != "search" {
		t.Errorf("expected search tag first, got %+v", tags[0])
	}
	if tags[1].Category != domain.CatVehicleTypes {
		t.Errorf("expected vehicle type tag, got %+v", tags[1])
	}
}

func TestTag_HebrewCompoundPhrase(t *testing.T) {
	tbl := Default()
	tags := tbl.Tag("דוח תחזוקה 5672264", domain.LangHebrew)
	if len(tags) != 1 {
		t.Fatalf("expected single compound tag, got %v", tags)
	}
	if tags[0].Canonical != "maintenance_report" {
		t.Errorf("expected maintenance_report, got %+v", tags[0])
	}
}

func TestTag_WholeWordOnly(t *testing.T) {
	tbl := Default()
	// "vintage" must not produce a "vin" tag, "research" no "search" tag.
	if tags := tbl.Tag("vintage research findings", domain.LangEnglish); len(tags) != 0 {
		t.Errorf("expected no tags inside larger words, got %v", tags)
	}
}

func TestTag_CaseInsensitive(t *testing.T) {
	tbl := Default()
	tags := tbl.Tag("FIND Truck", domain.LangEnglish)
	if len(tags) != 2 {
		t.Fatalf("expected 2 tags, got %v", tags)
	}
	if tags[0].Canonical != "search" || tags[1].Canonical != "truck" {
		t.Errorf("unexpected tags %v", tags)
	}
}

func TestTag_UnknownLanguage(t *testing.T) {
	tbl := Default()
	if tags := tbl.Tag("find truck", domain.Language("fr")); tags != nil {
		t.Errorf("expected nil for unknown language, got %v", tags)
	}
}

func TestTag_QueryOrder(t *testing.T) {
	tbl := Default()
	tags := tbl.Tag("status of truck at depot", domain.LangEnglish)
	if len(tags) != 3 {
		t.Fatalf("expected 3 tags, got %v", tags)
	}
	for i := 1; i < len(tags); i++ {
		if tags[i].Start < tags[i-1].Start {
			t.Errorf("tags out of query order: %v", tags)
		}
	}
}

func TestNew_ConflictingKeyword(t *testing.T) {
	_, err := New([]domain.GazetteerEntry{
		{Keyword: "truck", Language: domain.LangEnglish, Category: domain.CatVehicleTypes},
		{Keyword: "truck", Language: domain.LangEnglish, Category: domain.CatStatus},
	})
	if !errors.Is(err, domain.ErrConflictingKeyword) {
		t.Errorf("expected ErrConflictingKeyword, got %v", err)
	}
}

func TestNew_DuplicateCollapsed(t *testing.T) {
	tbl, err := New([]domain.GazetteerEntry{
		{Keyword: "truck", Language: domain.LangEnglish, Category: domain.CatVehicleTypes},
		{Keyword: "Truck", Language: domain.LangEnglish, Category: domain.CatVehicleTypes},
	})
	if err != nil {
		t.Fatalf("duplicate identical entries should collapse: %v", err)
	}
	if tags := tbl.Tag("truck truck", domain.LangEnglish); len(tags) != 2 {
		t.Errorf("expected both occurrences tagged once each, got %v", tags)
	}
}

func TestNew_InvalidEntry(t *testing.T) {
	_, err := New([]domain.GazetteerEntry{{Keyword: "", Language: domain.LangEnglish, Category: domain.CatStatus}})
	if !errors.Is(err, domain.ErrEmptyKeyword) {
		t.Errorf("expected ErrEmptyKeyword, got %v", err)
	}
}

func TestCategories(t *testing.T) {
	tbl := Default()
	tags := tbl.Tag("find truck find van", domain.LangEnglish)
	cats := Categories(tags)
	if len(cats) != 2 {
		t.Fatalf("expected 2 distinct categories, got %v", cats)
	}
	if cats[0] != domain.CatVehicleSearch || cats[1] != domain.CatVehicleTypes {
		t.Errorf("unexpected category order %v", cats)
	}
	if !HasCategory(tags, domain.CatVehicleTypes) {
		t.Error("HasCategory miss")
	}
	if HasCategory(tags, domain.CatHelpCommands) {
		t.Error("HasCategory false positive")
	}
}
