package usecase

import (
	"context"
	"errors"
	"strings"
	"testing"
	"time"

	"github.com/datakota/usaha-assistant/internal/core/domain"
)

type geocoderFake struct {
	addr  *domain.Address
	err   error
	calls int
}

func (f *geocoderFake) Reverse(context.Context, float64, float64) (*domain.Address, error) {
	f.calls++
	if f.err != nil {
		return nil, f.err
	}
	return f.addr, nil
}

type cacheFake struct {
	entries map[string]*domain.Address
	getErr  error
	setErr  error
	sets    int
}

func newCacheFake() *cacheFake {
	return &cacheFake{entries: map[string]*domain.Address{}}
}

func (f *cacheFake) Get(_ context.Context, key string) (*domain.Address, bool, error) {
	if f.getErr != nil {
		return nil, false, f.getErr
	}
	addr, ok := f.entries[key]
	return addr, ok, nil
}

func (f *cacheFake) Set(_ context.Context, key string, addr *domain.Address) error {
	f.sets++
	if f.setErr != nil {
		return f.setErr
	}
	f.entries[key] = addr
	return nil
}

func rapakAddress() *domain.Address {
	return &domain.Address{
		Road:          "Jalan Batu Butok",
		Neighbourhood: "Muara Rapak",
		CityDistrict:  "Balikpapan Utara",
		County:        "Balikpapan",
		State:         "Kalimantan Timur",
		DisplayName:   "Jalan Batu Butok, Muara Rapak, Balikpapan, Indonesia",
	}
}

func newDescribeUC(geocoder *geocoderFake, cache *cacheFake, generator *generatorFake) *DescribeUseCase {
	// A typed nil would make the cache interface non-nil inside the use case.
	if cache == nil {
		return NewDescribeUseCase(geocoder, nil, generator, nil, time.Second, time.Second)
	}
	return NewDescribeUseCase(geocoder, cache, generator, nil, time.Second, time.Second)
}

func TestDescribeHappyPath(t *testing.T) {
	geocoder := &geocoderFake{addr: rapakAddress()}
	generator := &generatorFake{chatText: "WARUNG BAKSO adalah restoran di Jalan Batu Butok."}
	uc := newDescribeUC(geocoder, nil, generator)

	desc, err := uc.Describe(context.Background(), "WARUNG BAKSO", "Restoran", -1.1853, 116.8614)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	wantNarrative := "Jalan Batu Butok, Muara Rapak, Balikpapan Utara, Balikpapan, Kalimantan Timur"
	if desc.Narrative != wantNarrative {
		t.Fatalf("narrative = %q, want %q", desc.Narrative, wantNarrative)
	}
	if desc.Degraded || desc.GeocodeFail {
		t.Fatalf("unexpected degradation flags: %+v", desc)
	}
	if desc.Text != "WARUNG BAKSO adalah restoran di Jalan Batu Butok." {
		t.Fatalf("text = %q", desc.Text)
	}
	if generator.lastOptions != defaultGenerateOptions {
		t.Fatalf("options = %+v", generator.lastOptions)
	}
}

func TestDescribeGeneratorAlwaysFailsStillReturnsDescription(t *testing.T) {
	geocoder := &geocoderFake{addr: rapakAddress()}
	generator := &generatorFake{chatErr: errors.New("timeout")}
	uc := newDescribeUC(geocoder, nil, generator)

	desc, err := uc.Describe(context.Background(), "TOKO MEGA JAYA", "Toko Furnitur", -1.1853, 116.8614)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	want := "TOKO MEGA JAYA adalah toko furnitur yang berlokasi di Jalan Batu Butok, Muara Rapak, Balikpapan Utara, Balikpapan, Kalimantan Timur."
	if desc.Text != want {
		t.Fatalf("fallback = %q, want %q", desc.Text, want)
	}
	if !desc.Degraded {
		t.Fatalf("expected degraded flag")
	}
}

func TestDescribeGeocodeAndGeneratorBothFail(t *testing.T) {
	geocoder := &geocoderFake{err: errors.New("nominatim 503")}
	generator := &generatorFake{chatErr: errors.New("timeout")}
	uc := newDescribeUC(geocoder, nil, generator)

	desc, err := uc.Describe(context.Background(), "WARUNG A", "Restoran", -1.1853, 116.8614)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if desc.Narrative != "sekitar koordinat -1.185300, 116.861400" {
		t.Fatalf("narrative = %q", desc.Narrative)
	}
	want := "WARUNG A adalah restoran di sekitar koordinat -1.185300, 116.861400."
	if desc.Text != want {
		t.Fatalf("fallback = %q, want %q", desc.Text, want)
	}
	if !desc.GeocodeFail {
		t.Fatalf("expected geocode failure flag")
	}
}

func TestDescribeFallbackIsDeterministic(t *testing.T) {
	geocoder := &geocoderFake{addr: rapakAddress()}
	generator := &generatorFake{chatErr: errors.New("down")}
	uc := newDescribeUC(geocoder, nil, generator)

	first, _ := uc.Describe(context.Background(), "A", "Restoran", -1.1853, 116.8614)
	second, _ := uc.Describe(context.Background(), "A", "Restoran", -1.1853, 116.8614)
	if first.Text != second.Text {
		t.Fatalf("fallback not deterministic: %q vs %q", first.Text, second.Text)
	}
}

func TestDescribeReadsThroughCache(t *testing.T) {
	geocoder := &geocoderFake{addr: rapakAddress()}
	cache := newCacheFake()
	generator := &generatorFake{chatText: "ok"}
	uc := newDescribeUC(geocoder, cache, generator)

	if _, err := uc.Describe(context.Background(), "A", "Restoran", -1.1853, 116.8614); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if _, err := uc.Describe(context.Background(), "A", "Restoran", -1.1853, 116.8614); err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if geocoder.calls != 1 {
		t.Fatalf("geocoder calls = %d, want 1 (second request served from cache)", geocoder.calls)
	}
	if cache.sets != 1 {
		t.Fatalf("cache sets = %d, want 1", cache.sets)
	}
}

func TestDescribeCacheErrorsAreNotFatal(t *testing.T) {
	geocoder := &geocoderFake{addr: rapakAddress()}
	cache := newCacheFake()
	cache.getErr = errors.New("redis down")
	cache.setErr = errors.New("redis down")
	generator := &generatorFake{chatText: "ok"}
	uc := newDescribeUC(geocoder, cache, generator)

	desc, err := uc.Describe(context.Background(), "A", "Restoran", -1.1853, 116.8614)
	if err != nil {
		t.Fatalf("Describe() error = %v", err)
	}
	if desc.Text != "ok" {
		t.Fatalf("text = %q", desc.Text)
	}
}

func TestDescribePromptEmbedsDeterministicUserLine(t *testing.T) {
	line := describeUserLine("WARUNG BAKSO", "Restoran", "Jalan Mawar, Malang")
	if line != "nama=WARUNG BAKSO | kategori=Restoran | lokasi=Jalan Mawar, Malang" {
		t.Fatalf("user line = %q", line)
	}

	messages := describeMessages("WARUNG BAKSO", "Restoran", "Jalan Mawar, Malang")
	if messages[0].Role != "system" {
		t.Fatalf("first message role = %q", messages[0].Role)
	}
	if !strings.Contains(messages[0].Content, "JANGAN sebut koordinat") {
		t.Fatalf("system message missing constraints: %q", messages[0].Content)
	}
	if len(messages) != len(describeFewShots)+2 {
		t.Fatalf("message count = %d", len(messages))
	}
	if messages[len(messages)-1].Content != line {
		t.Fatalf("last message = %q", messages[len(messages)-1].Content)
	}
}
