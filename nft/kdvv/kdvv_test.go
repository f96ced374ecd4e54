package kdvv

import (
	"testing"

	"github.com/stretchr/testify/require"

	"github.com/marbre/FNFT/internal/cvec"
	"github.com/marbre/FNFT/internal/testutil"
	"github.com/marbre/FNFT/nft/scatter"
)

func TestTransformInvalidInput(t *testing.T) {
	good := make([]complex128, 16)
	T := [2]float64{-1, 1}
	xi := [2]float64{-2, 2}

	cases := []struct {
		name string
		run  func() ([]complex128, error)
	}{
		{"length not a power of two", func() ([]complex128, error) {
			return Transform(make([]complex128, 12), T, xi, 4)
		}},
		{"reversed time interval", func() ([]complex128, error) {
			return Transform(good, [2]float64{1, -1}, xi, 4)
		}},
		{"empty grid", func() ([]complex128, error) {
			return Transform(good, T, xi, 0)
		}},
		{"reversed spectral interval", func() ([]complex128, error) {
			return Transform(good, T, [2]float64{2, -2}, 4)
		}},
		{"reversed spectral interval with one point", func() ([]complex128, error) {
			return Transform(good, T, [2]float64{2, -2}, 1)
		}},
		{"unknown discretization", func() ([]complex128, error) {
			return Transform(good, T, xi, 4, WithDiscretization(scatter.Discretization(9)))
		}},
	}
	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			out, err := tc.run()
			require.ErrorIs(t, err, ErrInvalidInput)
			require.Nil(t, out)
		})
	}
}

func TestTransformZeroPotentialCoefficientA(t *testing.T) {
	q := make([]complex128, 128)

	out, err := Transform(q, [2]float64{-8, 8}, [2]float64{-2, 2}, 8, WithAB())
	require.NoError(t, err)
	require.Len(t, out, 16)

	// The scattering pair (0, -1) is lower triangular, so a is exactly 1.
	for i := 0; i < 8; i++ {
		testutil.RequireComplexNear(t, out[i], 1, 1e-10)
	}
}

func TestTransformRefinementConsistency(t *testing.T) {
	T := [2]float64{-12, 12}
	xi := [2]float64{0.5, 2}
	const m = 7

	at := func(d int) []complex128 {
		q := testutil.SechProfile(1, T[0], T[1], d)
		out, err := Transform(q, T, xi, m)
		require.NoError(t, err)
		return out
	}

	coarse := at(256)
	mid := at(512)
	fine := at(1024)

	// Doubling the resolution must move the result less and less; the
	// finest pair serves as the reference for both distances.
	errCoarse := cvec.RelErr(coarse, fine)
	errMid := cvec.RelErr(mid, fine)
	require.Less(t, errMid, errCoarse)
	require.Greater(t, errCoarse/errMid, 2.0)
}

func TestTransformSchemesAgree(t *testing.T) {
	T := [2]float64{-12, 12}
	xi := [2]float64{0.5, 2}
	const d, m = 1024, 7

	q := testutil.SechProfile(1, T[0], T[1], d)

	a, err := Transform(q, T, xi, m, WithDiscretization(scatter.Split4A))
	require.NoError(t, err)
	b, err := Transform(q, T, xi, m, WithDiscretization(scatter.Split4B))
	require.NoError(t, err)

	require.Less(t, cvec.RelErr(a, b), 1e-3)
}
