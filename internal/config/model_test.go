// internal/config/model_test.go
//
// Unit-tests for the Settings model: defaults and derived URL
// computation.
//
// Run: go test ./internal/config -v

package config

import "testing"

func TestDefaultsAreComplete(t *testing.T) {
	s := defaults()

	if s.AppName == "" || s.Version == "" || s.DomainName == "" {
		t.Fatalf("identity defaults incomplete: %+v", s)
	}
	if s.APIPort != 8000 {
		t.Fatalf("api port default = %d, want 8000", s.APIPort)
	}
	if s.DatabaseURL == "" {
		t.Fatal("database url default must be a constructed local value")
	}
	if s.Env != EnvDevelopment {
		t.Fatalf("env default = %q, want %q", s.Env, EnvDevelopment)
	}
	if len(s.AllowedOrigins) != 1 || s.AllowedOrigins[0] != "*" {
		t.Fatalf("development origins = %#v, want permissive wildcard", s.AllowedOrigins)
	}
	if len(s.AllowedOriginsProduction) == 0 {
		t.Fatal("production origins must be an explicit allow-list")
	}
}

func TestDeriveAPIURLs(t *testing.T) {
	tests := []struct {
		name        string
		domain      string
		scraper     string
		suggestions string
		trends      string
	}{
		{
			name:        "default domain",
			domain:      "api.seokar.click",
			scraper:     "https://api.seokar.click/keyword-scraper",
			suggestions: "https://api.seokar.click/keyword-suggestions",
			trends:      "https://api.seokar.click/keyword-trends",
		},
		{
			name:        "other domain",
			domain:      "api.example.com",
			scraper:     "https://api.example.com/keyword-scraper",
			suggestions: "https://api.example.com/keyword-suggestions",
			trends:      "https://api.example.com/keyword-trends",
		},
		{
			name:   "empty domain leaves urls unset",
			domain: "",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := defaults()
			s.APIDomain = tt.domain
			s.deriveAPIURLs()

			if s.KeywordScraperURL != tt.scraper {
				t.Fatalf("scraper url = %q, want %q", s.KeywordScraperURL, tt.scraper)
			}
			if s.KeywordSuggestionsURL != tt.suggestions {
				t.Fatalf("suggestions url = %q, want %q", s.KeywordSuggestionsURL, tt.suggestions)
			}
			if s.TrendsURL != tt.trends {
				t.Fatalf("trends url = %q, want %q", s.TrendsURL, tt.trends)
			}
		})
	}
}

// Derived URLs must track the domain, never a stale cached value.
func TestDeriveAPIURLsRecomputed(t *testing.T) {
	s := defaults()
	s.APIDomain = "first.example.com"
	s.deriveAPIURLs()

	s.APIDomain = "second.example.com"
	s.deriveAPIURLs()

	want := "https://second.example.com/keyword-scraper"
	if s.KeywordScraperURL != want {
		t.Fatalf("scraper url = %q, want %q", s.KeywordScraperURL, want)
	}

	s.APIDomain = ""
	s.deriveAPIURLs()
	if s.KeywordScraperURL != "" || s.KeywordSuggestionsURL != "" || s.TrendsURL != "" {
		t.Fatal("clearing the domain must clear the derived urls")
	}
}
