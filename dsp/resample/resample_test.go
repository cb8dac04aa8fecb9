package resample

import (
	"errors"
	"math"
	"testing"

	"github.com/cwbudde/algo-featureviz/internal/testutil"
)

func TestNewRationalValidation(t *testing.T) {
	if _, err := NewRational(0, 1); err == nil {
		t.Fatal("expected error for up=0")
	}
	if _, err := NewRational(1, 0); err == nil {
		t.Fatal("expected error for down=0")
	}
	if _, err := Resample([]float64{1}, 0, 22050); !errors.Is(err, ErrInvalidRate) {
		t.Fatalf("Resample() error = %v, want ErrInvalidRate", err)
	}
}

func TestRatioReduction(t *testing.T) {
	r, err := NewRational(320, 294)
	if err != nil {
		t.Fatalf("NewRational() error = %v", err)
	}
	up, down := r.Ratio()
	if up != 160 || down != 147 {
		t.Fatalf("ratio = %d/%d, want 160/147", up, down)
	}
}

func TestOutputLength(t *testing.T) {
	tests := []struct {
		inRate, outRate int
		n, want         int
	}{
		{inRate: 44100, outRate: 22050, n: 44100, want: 22050},
		{inRate: 48000, outRate: 22050, n: 1000, want: 460},
		{inRate: 16000, outRate: 22050, n: 16000, want: 22050},
		{inRate: 22050, outRate: 22050, n: 123, want: 123},
	}

	for _, tc := range tests {
		out, err := Resample(make([]float64, tc.n), tc.inRate, tc.outRate)
		if err != nil {
			t.Fatalf("%d->%d: Resample() error = %v", tc.inRate, tc.outRate, err)
		}
		if len(out) != tc.want {
			t.Fatalf("%d->%d: len=%d, want %d", tc.inRate, tc.outRate, len(out), tc.want)
		}
	}
}

func TestIdentityCopies(t *testing.T) {
	in := []float64{0.1, -0.2, 0.3}
	out, err := Resample(in, 22050, 22050)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}
	testutil.RequireSliceNearlyEqual(t, out, in, 0)
	out[0] = 9
	if in[0] != 0.1 {
		t.Fatal("identity conversion must not alias its input")
	}
}

func TestTimeAlignment(t *testing.T) {
	in := testutil.DeterministicSine(200, 44100, 0.5, 44100)
	want := testutil.DeterministicSine(200, 22050, 0.5, 22050)

	out, err := Resample(in, 44100, 22050)
	if err != nil {
		t.Fatalf("Resample() error = %v", err)
	}

	d, err := testutil.MaxAbsDiff(out[100:len(out)-100], want[100:len(want)-100])
	if err != nil {
		t.Fatalf("MaxAbsDiff() error = %v", err)
	}
	if d > 2e-2 {
		t.Fatalf("max deviation from ideal sine = %v", d)
	}
}

func TestDeterministic(t *testing.T) {
	in := testutil.DeterministicNoise(11, 1, 4000)
	a, _ := Resample(in, 48000, 22050)
	b, _ := Resample(in, 48000, 22050)
	testutil.RequireSliceNearlyEqual(t, a, b, 0)
}

func TestQualityModes_PassbandAndStopband(t *testing.T) {
	tests := []struct {
		name          string
		quality       Quality
		maxPassbandDB float64
		minStopbandDB float64
	}{
		{name: "fast", quality: QualityFast, maxPassbandDB: 0.7, minStopbandDB: 20},
		{name: "balanced", quality: QualityBalanced, maxPassbandDB: 0.35, minStopbandDB: 35},
		{name: "best", quality: QualityBest, maxPassbandDB: 0.2, minStopbandDB: 50},
	}

	for _, tc := range tests {
		r, err := NewRational(1, 2, WithQuality(tc.quality))
		if err != nil {
			t.Fatalf("%s: NewRational error = %v", tc.name, err)
		}

		inPass := testutil.DeterministicSine(2000, 48000, 1, 32768)
		inStop := testutil.DeterministicSine(17000, 48000, 1, 32768)

		outPass := r.Process(inPass)
		outStop := r.Process(inStop)

		passbandDB := math.Abs(dbRatio(rms(outPass[512:len(outPass)-512]), rms(inPass[1024:len(inPass)-1024])))
		if passbandDB > tc.maxPassbandDB {
			t.Fatalf("%s: passband droop %.2f dB > %.2f dB", tc.name, passbandDB, tc.maxPassbandDB)
		}

		stopAttenDB := -dbRatio(rms(outStop[512:len(outStop)-512]), rms(inStop[1024:len(inStop)-1024]))
		if stopAttenDB < tc.minStopbandDB {
			t.Fatalf("%s: stopband attenuation %.2f dB < %.2f dB", tc.name, stopAttenDB, tc.minStopbandDB)
		}
	}
}

func TestParseQuality(t *testing.T) {
	for in, want := range map[string]Quality{"fast": QualityFast, "": QualityBalanced, "BEST": QualityBest} {
		got, err := ParseQuality(in)
		if err != nil || got != want {
			t.Fatalf("ParseQuality(%q) = %v, %v; want %v", in, got, err, want)
		}
	}
	if _, err := ParseQuality("ultra"); err == nil {
		t.Fatal("expected error for unknown quality")
	}
}

func rms(x []float64) float64 {
	if len(x) == 0 {
		return 0
	}
	var s float64
	for _, v := range x {
		s += v * v
	}
	return math.Sqrt(s / float64(len(x)))
}

func dbRatio(out, in float64) float64 {
	if in == 0 || out == 0 {
		return -300
	}
	return 20 * math.Log10(out/in)
}
