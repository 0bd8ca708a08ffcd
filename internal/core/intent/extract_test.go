package intent

import (
	"testing"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

func TestExtractBusinessName(t *testing.T) {
	cases := []struct {
		message string
		want    string
	}{
		{"apa itu Sembako Mukhlas", "Sembako Mukhlas"},
		{"apa itu Sembako Mukhlas?", "Sembako Mukhlas"},
		// Leading noise word is stripped even when it is part of the name.
		{"jelaskan tentang Warung HELL MIE!", "HELL MIE"},
		{"jelaskan usaha Sembako Mukhlas", "Sembako Mukhlas"},
		{"deskripsikan toko MEGA JAYA", "MEGA JAYA"},
		{"info tentang PT MAHAMERU ENERGI SEMESTA", "PT MAHAMERU ENERGI SEMESTA"},
		{"ceritakan warung bakso pak joyo.", "bakso pak joyo"},
		{"cari info Sembako Mukhlas", "Sembako Mukhlas"},
	}
	for _, tc := range cases {
		got, ok := ExtractBusinessName(tc.message)
		if !ok {
			t.Fatalf("ExtractBusinessName(%q) failed, want %q", tc.message, tc.want)
		}
		if got != tc.want {
			t.Fatalf("ExtractBusinessName(%q) = %q, want %q", tc.message, got, tc.want)
		}
	}
}

func TestExtractBusinessNameTooShort(t *testing.T) {
	// Remainder of two characters or fewer is an extraction failure.
	for _, msg := range []string{"apa itu ab", "jelaskan x?", "apa itu usaha it"} {
		if name, ok := ExtractBusinessName(msg); ok {
			t.Fatalf("ExtractBusinessName(%q) = %q, want failure", msg, name)
		}
	}
}

func TestExtractBusinessNameNoPattern(t *testing.T) {
	if name, ok := ExtractBusinessName("halo apa kabar"); ok {
		t.Fatalf("ExtractBusinessName() = %q, want failure without trigger pattern", name)
	}
}

func TestExtractCountFilterDistrictAndStatus(t *testing.T) {
	got := ExtractCountFilter("Ada berapa usaha aktif di Balikpapan Timur?")
	want := domain.CountFilter{District: "Balikpapan Timur", Status: "aktif"}
	if got != want {
		t.Fatalf("ExtractCountFilter() = %+v, want %+v", got, want)
	}
}

func TestExtractCountFilterDistrictWinsOverRegency(t *testing.T) {
	got := ExtractCountFilter("berapa usaha di balikpapan selatan")
	if got.District != "Balikpapan Selatan" {
		t.Fatalf("district = %q, want Balikpapan Selatan", got.District)
	}
	if got.Regency != "" {
		t.Fatalf("regency = %q, want empty when district matched", got.Regency)
	}
}

func TestExtractCountFilterRegencyOnly(t *testing.T) {
	got := ExtractCountFilter("berapa usaha di Balikpapan?")
	want := domain.CountFilter{Regency: "Balikpapan"}
	if got != want {
		t.Fatalf("ExtractCountFilter() = %+v, want %+v", got, want)
	}
}

func TestExtractCountFilterStatusNonaktif(t *testing.T) {
	for _, msg := range []string{
		"berapa usaha nonaktif di balikpapan",
		"berapa usaha tidak aktif",
	} {
		got := ExtractCountFilter(msg)
		if got.Status != "nonaktif" {
			t.Fatalf("ExtractCountFilter(%q).Status = %q, want nonaktif", msg, got.Status)
		}
	}
}

func TestExtractCountFilterEmpty(t *testing.T) {
	got := ExtractCountFilter("berapa total usaha di database?")
	if !got.IsZero() {
		t.Fatalf("ExtractCountFilter() = %+v, want zero filter", got)
	}
}
