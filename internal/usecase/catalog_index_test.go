package usecase

import (
	"reflect"
	"testing"

	"github.com/kassaklap/backend/internal/domain"
)

func testCatalog() []domain.CatalogEntry {
	return []domain.CatalogEntry{
		{
			Code: "ah",
			Products: []domain.Product{
				{Name: "Melk", Price: 1.09, SizeText: "1 liter", LinkSuffix: "123"},
				{Name: "Halfvolle Melk", Price: 1.19, SizeText: "1,5 liter", LinkSuffix: "124"},
				{Name: "Chocoladereep", Price: 2.49, SizeText: "200 gram", LinkSuffix: "125"},
				{Name: "Melk", Price: 2.09, SizeText: "2 liter", LinkSuffix: "126"},
			},
		},
		{
			Code: "jumbo",
			Products: []domain.Product{
				{Name: "Melk", Price: 0.99, SizeText: "1 liter", LinkSuffix: "999"},
				{Name: "Pindakaas", Price: 3.49, SizeText: "600 gram", LinkSuffix: "998"},
			},
		},
	}
}

func TestIndexSearch(t *testing.T) {
	idx := NewIndex(testCatalog(), SearchConfig{})

	t.Run("exact word matches across establishments", func(t *testing.T) {
		matches := idx.Search("melk")
		if len(matches) < 2 {
			t.Fatalf("len(matches) = %d, want at least 2", len(matches))
		}

		codes := make(map[string]bool)
		for _, m := range matches {
			codes[m.EstablishmentCode] = true
		}
		if !codes["ah"] || !codes["jumbo"] {
			t.Errorf("establishments matched = %v, want both ah and jumbo", codes)
		}
	})

	t.Run("match carries every product sharing the name", func(t *testing.T) {
		matches := idx.Search("melk")

		var ahMelk *domain.Match
		for i := range matches {
			if matches[i].EstablishmentCode == "ah" && matches[i].Value == "Melk" {
				ahMelk = &matches[i]
				break
			}
		}
		if ahMelk == nil {
			t.Fatal("no match for ah/Melk")
		}
		if len(ahMelk.Products) != 2 {
			t.Fatalf("len(Products) = %d, want 2 (both Melk rows)", len(ahMelk.Products))
		}
		// catalog order preserved within the group
		if ahMelk.Products[0].LinkSuffix != "123" || ahMelk.Products[1].LinkSuffix != "126" {
			t.Errorf("products out of catalog order: %+v", ahMelk.Products)
		}
	})

	t.Run("tolerates a transposition typo", func(t *testing.T) {
		matches := idx.Search("mekl")
		if len(matches) == 0 {
			t.Fatal("expected typo query to still match")
		}
		if matches[0].Value != "Melk" {
			t.Errorf("best match = %q, want Melk", matches[0].Value)
		}
	})

	t.Run("tolerates a single substitution", func(t *testing.T) {
		matches := idx.Search("pindekaas")
		if len(matches) == 0 {
			t.Fatal("expected typo query to still match")
		}
		if matches[0].Value != "Pindakaas" {
			t.Errorf("best match = %q, want Pindakaas", matches[0].Value)
		}
	})

	t.Run("substring fragment is a perfect match", func(t *testing.T) {
		matches := idx.Search("chocolade")
		if len(matches) == 0 {
			t.Fatal("expected fragment to match Chocoladereep")
		}
		if matches[0].Score != 1 {
			t.Errorf("Score = %v, want 1 for containment", matches[0].Score)
		}
	})

	t.Run("best match first, ties in catalog order", func(t *testing.T) {
		matches := idx.Search("melk")
		for i := 1; i < len(matches); i++ {
			if matches[i].Score > matches[i-1].Score {
				t.Fatalf("matches not sorted by score: %v then %v", matches[i-1].Score, matches[i].Score)
			}
		}
	})

	t.Run("repeated searches return identical order", func(t *testing.T) {
		first := idx.Search("melk")
		for i := 0; i < 10; i++ {
			if again := idx.Search("melk"); !reflect.DeepEqual(first, again) {
				t.Fatalf("search order changed between calls")
			}
		}
	})

	t.Run("single character query is discarded", func(t *testing.T) {
		if matches := idx.Search("m"); len(matches) != 0 {
			t.Errorf("len = %d, want 0 for one-rune query", len(matches))
		}
	})

	t.Run("empty query returns nothing", func(t *testing.T) {
		if matches := idx.Search(""); len(matches) != 0 {
			t.Errorf("len = %d, want 0", len(matches))
		}
	})

	t.Run("no match for unrelated query", func(t *testing.T) {
		if matches := idx.Search("stofzuiger"); len(matches) != 0 {
			t.Errorf("len = %d, want 0", len(matches))
		}
	})
}

func TestIndexSearchNeverPanics(t *testing.T) {
	idx := NewIndex(testCatalog(), SearchConfig{})

	queries := []string{
		"", " ", "  \t ", "42", "melk (", ".*+?[](){}|\\^$",
		"ştrüdel", "日本語クエリ", "melk melk melk melk melk",
		"\x00\x01", "%20%20", "a]b[c",
	}
	for _, q := range queries {
		func() {
			defer func() {
				if r := recover(); r != nil {
					t.Errorf("Search(%q) panicked: %v", q, r)
				}
			}()
			_ = idx.Search(q)
		}()
	}
}

func TestIndexConfig(t *testing.T) {
	t.Run("max results caps output", func(t *testing.T) {
		idx := NewIndex(testCatalog(), SearchConfig{MaxResults: 1})
		matches := idx.Search("melk")
		if len(matches) != 1 {
			t.Errorf("len = %d, want 1 with MaxResults 1", len(matches))
		}
	})

	t.Run("min match length is configurable", func(t *testing.T) {
		idx := NewIndex(testCatalog(), SearchConfig{MinMatchLength: 5})
		if matches := idx.Search("melk"); len(matches) != 0 {
			t.Errorf("len = %d, want 0 below the min match length", len(matches))
		}
	})

	t.Run("stricter similarity rejects typos", func(t *testing.T) {
		idx := NewIndex(testCatalog(), SearchConfig{MinSimilarity: 0.99})
		if matches := idx.Search("mekl"); len(matches) != 0 {
			t.Errorf("len = %d, want 0 at 0.99 similarity", len(matches))
		}
	})

	t.Run("accents fold away", func(t *testing.T) {
		idx := NewIndex([]domain.CatalogEntry{
			{Code: "ah", Products: []domain.Product{
				{Name: "Crème Fraîche", Price: 1.79, SizeText: "125 ml", LinkSuffix: "7"},
			}},
		}, SearchConfig{})

		matches := idx.Search("creme fraiche")
		if len(matches) != 1 {
			t.Fatalf("len = %d, want 1", len(matches))
		}
		if matches[0].Value != "Crème Fraîche" {
			t.Errorf("Value = %q, want original spelling", matches[0].Value)
		}
	})
}
