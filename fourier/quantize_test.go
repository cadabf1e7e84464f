package fourier

import "testing"

func TestQuantize(t *testing.T) {
	tests := []struct {
		name string
		in   float64
		want int8
	}{
		{"exact", 12, 12},
		{"truncate small positive fraction", 12.4, 12},
		{"round up past threshold", 12.4445, 13},
		{"round up large fraction", 12.9999999, 13},
		{"round half up", 0.5, 1},
		{"tiny positive residue", 7.0000000001, 7},
		{"truncate negative toward zero", -9.5, -9},
		{"negative near threshold", -9.99, -9},
		{"round down past threshold", -9.996, -10},
		{"round down just above integer", -9.9999999, -10},
		{"tiny negative residue", -10.0000001, -10},
		{"negative fraction below one", -0.3, 0},
		{"saturate high", 300.2, 127},
		{"saturate low", -129, -128},
		{"upper bound", 126.9999999, 127},
		{"lower bound", -127.9999999, -128},
	}

	for _, tc := range tests {
		t.Run(tc.name, func(t *testing.T) {
			if got := Quantize(tc.in); got != tc.want {
				t.Errorf("Quantize(%v) = %d, want %d", tc.in, got, tc.want)
			}
		})
	}
}

func TestQuantizeAllUsesRealPart(t *testing.T) {
	got := QuantizeAll([]complex128{complex(3.9, 5), complex(-2.2, -7), 0})
	want := []int8{4, -2, 0}

	for i := range want {
		if got[i] != want[i] {
			t.Errorf("sample %d: got %d, want %d", i, got[i], want[i])
		}
	}
}
