package semanticscholar

import (
	"context"
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/citenav/backend/pkg/papers"
)

func TestSearch_ParsesResponse(t *testing.T) {
	var gotQuery, gotYear string
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/paper/search" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		gotQuery = r.URL.Query().Get("query")
		gotYear = r.URL.Query().Get("year")
		w.Write([]byte(`{"data":[
			{"paperId":"p1","title":"Attention Is All You Need","year":2017,"citationCount":90000,
			 "abstract":"We propose the Transformer.",
			 "embedding":{"model":"specter_v2","vector":[0.1,0.2]}},
			{"paperId":"p2","title":"BERT","year":2019,"citationCount":70000}
		]}`))
	}))
	defer server.Close()

	client := NewClient(NewClientParams{BaseURL: server.URL})
	result, err := client.Search(context.Background(), papers.SearchParams{
		Query:     "transformers",
		YearStart: 2020,
	})
	if err != nil {
		t.Fatalf("Search() error = %v", err)
	}

	if gotQuery != "transformers" {
		t.Fatalf("query param = %q, want transformers", gotQuery)
	}
	if gotYear != "2020-" {
		t.Fatalf("year param = %q, want 2020-", gotYear)
	}
	if len(result) != 2 {
		t.Fatalf("got %d papers, want 2", len(result))
	}
	if result[0].PaperID != "p1" || result[0].CitationCount != 90000 {
		t.Fatalf("result[0] = %+v", result[0])
	}
	if result[0].Embedding == nil || len(result[0].Embedding.Vector) != 2 {
		t.Fatalf("expected embedding on result[0], got %+v", result[0].Embedding)
	}
	if result[1].Embedding != nil {
		t.Fatalf("expected no embedding on result[1], got %+v", result[1].Embedding)
	}
}

func TestCitationsOf_UnwrapsCitingPaper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/paper/p1/citations" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[
			{"citingPaper":{"paperId":"c1","title":"Follow-up","year":2021,"citationCount":10}},
			{"citingPaper":{"paperId":"c2","title":"Survey","year":2022,"citationCount":5}}
		]}`))
	}))
	defer server.Close()

	client := NewClient(NewClientParams{BaseURL: server.URL})
	result, err := client.CitationsOf(context.Background(), "p1")
	if err != nil {
		t.Fatalf("CitationsOf() error = %v", err)
	}
	if len(result) != 2 || result[0].PaperID != "c1" || result[1].PaperID != "c2" {
		t.Fatalf("CitationsOf() = %+v", result)
	}
}

func TestReferencesOf_UnwrapsCitedPaper(t *testing.T) {
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if r.URL.Path != "/paper/p1/references" {
			t.Errorf("unexpected path %s", r.URL.Path)
		}
		w.Write([]byte(`{"data":[{"citedPaper":{"paperId":"r1","title":"Foundations","year":2014,"citationCount":999}}]}`))
	}))
	defer server.Close()

	client := NewClient(NewClientParams{BaseURL: server.URL})
	result, err := client.ReferencesOf(context.Background(), "p1")
	if err != nil {
		t.Fatalf("ReferencesOf() error = %v", err)
	}
	if len(result) != 1 || result[0].PaperID != "r1" {
		t.Fatalf("ReferencesOf() = %+v", result)
	}
}

func TestSearch_RetriesThenFails(t *testing.T) {
	calls := 0
	server := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		calls++
		w.WriteHeader(http.StatusTooManyRequests)
	}))
	defer server.Close()

	client := NewClient(NewClientParams{BaseURL: server.URL, MaxRetries: 2})
	_, err := client.Search(context.Background(), papers.SearchParams{Query: "x"})
	if err == nil {
		t.Fatal("expected error after persistent 429s")
	}
	if calls != 2 {
		t.Fatalf("expected 2 attempts, got %d", calls)
	}
}

func TestFormatYearRange(t *testing.T) {
	tests := []struct {
		start, end int
		want       string
	}{
		{0, 0, ""},
		{2020, 0, "2020-"},
		{0, 2024, "-2024"},
		{2020, 2024, "2020-2024"},
	}
	for _, tc := range tests {
		if got := formatYearRange(tc.start, tc.end); got != tc.want {
			t.Errorf("formatYearRange(%d, %d) = %q, want %q", tc.start, tc.end, got, tc.want)
		}
	}
}
