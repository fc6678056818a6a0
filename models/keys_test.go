package models

import "testing"

func TestMovieKey(t *testing.T) {
	tests := []struct {
		title, dimension, language string
		want                       string
	}{
		{"Inception", "IMAX", "English", "Inception [IMAX | English]"},
		{"Inception", "", "English", "Inception [English]"},
		{"Inception", "IMAX", "", "Inception [IMAX]"},
		{"Inception", "", "", "Inception"},
		{"  Jawan  ", " 2D ", " Hindi ", "Jawan [2D | Hindi]"},
		{"Spider Man:   Far From Home", "3D", "Tamil", "Spider Man: Far From Home [3D | Tamil]"},
	}

	for _, tt := range tests {
		got := MovieKey(tt.title, tt.dimension, tt.language)
		if got != tt.want {
			t.Errorf("MovieKey(%q, %q, %q) = %q; want %q",
				tt.title, tt.dimension, tt.language, got, tt.want)
		}
	}
}

func TestSplitMovieKey(t *testing.T) {
	tests := []struct {
		key       string
		wantTitle string
		wantLang  string
	}{
		{"Inception [IMAX | English]", "Inception", "English"},
		{"Dune [2D | Hindi]", "Dune", "Hindi"},
		{"Inception", "Inception", "Unknown"},
		{"Inception [IMAX]", "Inception [IMAX]", "Unknown"},
		{"RRR [2D | Telugu]", "RRR", "Telugu"},
	}

	for _, tt := range tests {
		title, lang := SplitMovieKey(tt.key)
		if title != tt.wantTitle || lang != tt.wantLang {
			t.Errorf("SplitMovieKey(%q) = (%q, %q); want (%q, %q)",
				tt.key, title, lang, tt.wantTitle, tt.wantLang)
		}
	}
}

func TestBaseTitle(t *testing.T) {
	tests := []struct {
		key  string
		want string
	}{
		{"Inception [IMAX | English]", "Inception"},
		{"Inception [IMAX]", "Inception"},
		{"Inception", "Inception"},
	}

	for _, tt := range tests {
		if got := BaseTitle(tt.key); got != tt.want {
			t.Errorf("BaseTitle(%q) = %q; want %q", tt.key, got, tt.want)
		}
	}
}
