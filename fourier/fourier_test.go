package fourier

import (
	"errors"
	"math"
	"math/cmplx"
	"math/rand"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/google/go-cmp/cmp/cmpopts"
	"github.com/mjibson/go-dsp/fft"
)

func approx(tolerance float64) cmp.Option {
	return cmp.Comparer(func(a, b complex128) bool {
		return cmplx.Abs(a-b) <= tolerance
	})
}

func randomSignal(rng *rand.Rand, n int) []float64 {
	signal := make([]float64, n)
	for i := range signal {
		signal[i] = float64(rng.Intn(256) - 128)
	}
	return signal
}

func TestForwardMatchesReferenceFFT(t *testing.T) {
	rng := rand.New(rand.NewSource(7))

	for _, size := range []int{1, 2, 4, 8, 16, 32, 64, 128, 256, 1024} {
		signal := randomSignal(rng, size)

		got, err := Forward(FromReal(signal))
		if err != nil {
			t.Fatalf("size %d: unexpected error: %v", size, err)
		}
		want := fft.FFTReal(signal)

		if diff := cmp.Diff(want, got, approx(1e-6*float64(size))); diff != "" {
			t.Errorf("size %d: Forward mismatch (-want +got):\n%s", size, diff)
		}
	}
}

func TestForwardDCSignal(t *testing.T) {
	signal := []int8{5, 5, 5, 5, 5, 5, 5, 5}

	got, err := Forward(FromReal(signal))
	if err != nil {
		t.Fatal(err)
	}

	if math.Abs(real(got[0])-40) > 1e-9 || math.Abs(imag(got[0])) > 1e-9 {
		t.Errorf("expected DC bin 40, got %v", got[0])
	}
	for k := 1; k < len(got); k++ {
		if cmplx.Abs(got[k]) > 1e-9 {
			t.Errorf("expected empty bin %d, got %v", k, got[k])
		}
	}
}

func TestForwardDoesNotModifyInput(t *testing.T) {
	in := FromReal([]float64{1, 2, 3, 4})
	orig := append([]complex128(nil), in...)

	if _, err := Forward(in); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig, in); diff != "" {
		t.Errorf("input was modified:\n%s", diff)
	}
}

func TestInvalidSegmentLength(t *testing.T) {
	for _, size := range []int{0, 3, 6, 12, 100} {
		x := make([]complex128, size)

		if _, err := Forward(x); !errors.Is(err, ErrInvalidSegmentLength) {
			t.Errorf("Forward(len %d): expected ErrInvalidSegmentLength, got %v", size, err)
		}
		if _, err := Inverse(x); !errors.Is(err, ErrInvalidSegmentLength) {
			t.Errorf("Inverse(len %d): expected ErrInvalidSegmentLength, got %v", size, err)
		}
	}
}

func TestInverseRoundTrip(t *testing.T) {
	rng := rand.New(rand.NewSource(42))

	for _, size := range []int{1, 2, 4, 8, 16, 32, 64, 128, 256, 512} {
		signal := randomSignal(rng, size)

		spectrum, err := Forward(FromReal(signal))
		if err != nil {
			t.Fatal(err)
		}
		back, err := Inverse(spectrum)
		if err != nil {
			t.Fatal(err)
		}

		got := make([]float64, size)
		for i, v := range back {
			got[i] = real(v)
			if math.Abs(imag(v)) > 1e-6 {
				t.Errorf("size %d: sample %d has imaginary residue %g", size, i, imag(v))
			}
		}
		if diff := cmp.Diff(signal, got, cmpopts.EquateApprox(0, 1e-6)); diff != "" {
			t.Errorf("size %d: round trip mismatch (-want +got):\n%s", size, diff)
		}
	}
}

// Reordering the spectrum is a true inverse, not only for spectra of real signals.
func TestInverseMatchesReferenceIFFT(t *testing.T) {
	rng := rand.New(rand.NewSource(3))

	for _, size := range []int{2, 4, 16, 64, 256} {
		spectrum := make([]complex128, size)
		for i := range spectrum {
			spectrum[i] = complex(rng.NormFloat64()*100, rng.NormFloat64()*100)
		}

		got, err := Inverse(spectrum)
		if err != nil {
			t.Fatal(err)
		}
		want := fft.IFFT(spectrum)

		if diff := cmp.Diff(want, got, approx(1e-6)); diff != "" {
			t.Errorf("size %d: Inverse mismatch (-want +got):\n%s", size, diff)
		}
	}
}

func TestInverseDoesNotModifyInput(t *testing.T) {
	in := []complex128{1, 2i, 3, 4i}
	orig := append([]complex128(nil), in...)

	if _, err := Inverse(in); err != nil {
		t.Fatal(err)
	}
	if diff := cmp.Diff(orig, in); diff != "" {
		t.Errorf("input was modified:\n%s", diff)
	}
}

func TestTrigSnapping(t *testing.T) {
	if got := Cos(math.Pi / 2); got != 0 {
		t.Errorf("Cos(pi/2) = %g, want 0", got)
	}
	if got := Sin(math.Pi); got != 0 {
		t.Errorf("Sin(pi) = %g, want 0", got)
	}
	if got := Sin(-math.Pi / 2); got != -1 {
		t.Errorf("Sin(-pi/2) = %g, want -1", got)
	}
	if got := Cos(0.5); got != math.Cos(0.5) {
		t.Errorf("Cos(0.5) = %g, want %g", got, math.Cos(0.5))
	}
}

// The quarter-turn twiddle must come out exactly on the imaginary axis.
func TestForwardQuarterTurnIsExact(t *testing.T) {
	got, err := Forward(FromReal([]float64{0, 1, 0, 0}))
	if err != nil {
		t.Fatal(err)
	}
	want := []complex128{1, -1i, -1, 1i}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("Forward mismatch (-want +got):\n%s", diff)
	}
}

func TestIsPowerOfTwo(t *testing.T) {
	cases := map[int]bool{0: false, 1: true, 2: true, 3: false, 64: true, 96: false, -4: false}
	for n, want := range cases {
		if got := IsPowerOfTwo(n); got != want {
			t.Errorf("IsPowerOfTwo(%d) = %v, want %v", n, got, want)
		}
	}
}
