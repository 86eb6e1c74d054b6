package ranking

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/agentstation/humansort/pkg/constants"
	"github.com/agentstation/humansort/pkg/errors"
)

// fixedSource returns the same value on every draw.
type fixedSource float64

func (f fixedSource) Float64() float64 { return float64(f) }

// seqSource replays values in order, then repeats the last one.
type seqSource struct {
	values []float64
	i      int
}

func (s *seqSource) Float64() float64 {
	v := s.values[min(s.i, len(s.values)-1)]
	s.i++
	return v
}

func letters(n int) []string {
	out := make([]string, n)
	for i := range out {
		out[i] = string(rune('A' + i))
	}
	return out
}

func TestNew(t *testing.T) {
	tests := []struct {
		name  string
		input []string
		want  []string
	}{
		{"empty", nil, []string{}},
		{"distinct", []string{"b", "a", "c"}, []string{"b", "a", "c"}},
		{"duplicates dropped", []string{"a", "b", "a", "c", "b"}, []string{"a", "b", "c"}},
		{"single", []string{"x"}, []string{"x"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New(tt.input)
			assert.Equal(t, tt.want, s.Values())
			assert.Equal(t, constants.DefaultBatchSize, s.BatchSize())
			assert.Equal(t, 0, s.Cursor())
			for _, item := range s.Items() {
				assert.Zero(t, item.Rating)
			}
		})
	}
}

func TestItemsIsCopy(t *testing.T) {
	s := New([]string{"a", "b"})
	items := s.Items()
	items[0].Value = "changed"
	assert.Equal(t, []string{"a", "b"}, s.Values())
}

func TestWarpIndex(t *testing.T) {
	assert.Equal(t, 0, warpIndex(0, 10))
	assert.Equal(t, 2, warpIndex(0.5, 10))
	assert.Equal(t, 9, warpIndex(0.999, 10))
	assert.Equal(t, 9, warpIndex(1, 10), "clamped to n-1")
}

func TestSelectBatch(t *testing.T) {
	t.Run("insufficient items", func(t *testing.T) {
		s := New(letters(4))
		batch, err := s.SelectBatch(fixedSource(0))
		require.Error(t, err)
		assert.Nil(t, batch)
		assert.True(t, errors.Is(err, errors.ErrInsufficientItems))

		var insufficient *errors.InsufficientItemsError
		require.True(t, errors.As(err, &insufficient))
		assert.Equal(t, 4, insufficient.Have)
		assert.Equal(t, 5, insufficient.Need)
	})

	t.Run("exact size returns every item", func(t *testing.T) {
		s := New(letters(5))
		batch, err := s.SelectBatch(fixedSource(0.7))
		require.NoError(t, err)
		assert.Equal(t, letters(5), batch)
	})

	t.Run("exhausted redraws fill from the top", func(t *testing.T) {
		s := New(letters(10))
		batch, err := s.SelectBatch(fixedSource(0))
		require.NoError(t, err)
		assert.Equal(t, []string{"A", "B", "C", "D", "E"}, batch)
	})

	t.Run("draws follow the warped index", func(t *testing.T) {
		s := New(letters(10))
		// 0.5² * 10 = 2.5 -> C, 0.9² * 10 = 8.1 -> I, 0 -> A, 0.3² * 10 = 0.9 -> A (collision), 0.7² * 10 = 4.9 -> E, 0.6² * 10 = 3.6 -> D
		src := &seqSource{values: []float64{0.5, 0.9, 0, 0.3, 0.7, 0.6}}
		batch, err := s.SelectBatch(src)
		require.NoError(t, err)
		assert.Equal(t, []string{"C", "I", "A", "E", "D"}, batch)
	})

	t.Run("nil source uses default", func(t *testing.T) {
		s := New(letters(8))
		batch, err := s.SelectBatch(nil)
		require.NoError(t, err)
		assert.Len(t, batch, 5)
	})
}

func TestSelectBatchDistinctMembers(t *testing.T) {
	for seed := uint64(0); seed < 200; seed++ {
		rng := rand.New(rand.NewPCG(seed, seed*31+7))
		n := 2 + int(seed%30)
		s := New(letters(n))
		size := constants.MinBatchSize + int(seed%uint64(constants.MaxBatchSize-constants.MinBatchSize+1))
		if size > n {
			size = n
		}
		require.NoError(t, s.SetBatchSize(size))

		batch, err := s.SelectBatch(rng)
		require.NoError(t, err)
		require.Len(t, batch, size)

		seen := make(map[string]bool, len(batch))
		for _, v := range batch {
			assert.True(t, s.Contains(v), "seed %d: %q not in state", seed, v)
			assert.False(t, seen[v], "seed %d: %q repeated", seed, v)
			seen[v] = true
		}
	}
}

func TestSelectBatchFavoursTopItems(t *testing.T) {
	rng := rand.New(rand.NewPCG(42, 1024))
	s := New(letters(20))
	counts := make(map[string]int)
	for range 2000 {
		batch, err := s.SelectBatch(rng)
		require.NoError(t, err)
		for _, v := range batch {
			counts[v]++
		}
	}
	assert.Greater(t, counts["A"], counts["T"])
}

func TestJudge(t *testing.T) {
	t.Run("three way example", func(t *testing.T) {
		s := New([]string{"A", "B", "C"})
		require.NoError(t, s.Judge([]string{"B", "A", "C"}))

		assert.Equal(t, []string{"B", "A", "C"}, s.Values())
		items := s.Items()
		assert.InDelta(t, 1.0, items[0].Rating, 1e-12)
		assert.InDelta(t, -0.5, items[1].Rating, 1e-12)
		assert.InDelta(t, -0.5, items[2].Rating, 1e-12)
	})

	t.Run("pairwise", func(t *testing.T) {
		s := New([]string{"x", "y"})
		require.NoError(t, s.Judge([]string{"y", "x"}))
		assert.Equal(t, []string{"y", "x"}, s.Values())
		r, ok := s.Rating("y")
		require.True(t, ok)
		assert.InDelta(t, 0.5, r, 1e-12)
	})

	t.Run("uses pre-update winner rating", func(t *testing.T) {
		s := New([]string{"w", "a", "b"})
		require.NoError(t, s.Judge([]string{"a", "w"}))
		// a = 0.5, w = -0.5, b = 0
		before := map[string]float64{}
		for _, item := range s.Items() {
			before[item.Value] = item.Rating
		}
		require.NoError(t, s.Judge([]string{"w", "a", "b"}))

		ea := ExpectedScore(before["a"], before["w"])
		eb := ExpectedScore(before["b"], before["w"])
		got := map[string]float64{}
		for _, item := range s.Items() {
			got[item.Value] = item.Rating
		}
		assert.InDelta(t, before["w"]+ea+eb, got["w"], 1e-12)
		assert.InDelta(t, before["a"]-ea, got["a"], 1e-12)
		assert.InDelta(t, before["b"]-eb, got["b"], 1e-12)
	})

	t.Run("rating total is conserved", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(7, 11))
		s := New(letters(12))
		for range 100 {
			batch, err := s.SelectBatch(rng)
			require.NoError(t, err)
			rng.Shuffle(len(batch), func(i, j int) { batch[i], batch[j] = batch[j], batch[i] })
			require.NoError(t, s.Judge(batch))
		}
		var sum float64
		for _, item := range s.Items() {
			sum += item.Rating
		}
		assert.InDelta(t, 0, sum, 1e-9)
	})

	t.Run("stays sorted", func(t *testing.T) {
		rng := rand.New(rand.NewPCG(3, 5))
		s := New(letters(15))
		for range 50 {
			batch, err := s.SelectBatch(rng)
			require.NoError(t, err)
			require.NoError(t, s.Judge(batch))
			items := s.Items()
			for i := 1; i < len(items); i++ {
				assert.GreaterOrEqual(t, items[i-1].Rating, items[i].Rating)
			}
		}
	})
}

func TestJudgeErrors(t *testing.T) {
	tests := []struct {
		name    string
		ordered []string
		target  error
	}{
		{"empty", nil, errors.ErrTooFewItems},
		{"single", []string{"A"}, errors.ErrTooFewItems},
		{"unknown winner", []string{"Z", "A"}, errors.ErrUnknownItem},
		{"unknown loser", []string{"A", "B", "Z"}, errors.ErrUnknownItem},
		{"repeated value", []string{"A", "B", "A"}, errors.ErrDuplicateItem},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := New([]string{"A", "B", "C"})
			before := s.Clone()
			err := s.Judge(tt.ordered)
			require.Error(t, err)
			assert.True(t, errors.Is(err, tt.target), "got %v", err)
			assert.True(t, s.Equal(before), "state must be unchanged")
		})
	}
}

func TestMerge(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	require.NoError(t, s.Judge([]string{"c", "a"}))

	s.Merge([]string{"a", "c", "d", "d"})
	assert.Equal(t, []string{"c", "d", "a"}, s.Values())
	assert.False(t, s.Contains("b"))

	rc, _ := s.Rating("c")
	ra, _ := s.Rating("a")
	rd, _ := s.Rating("d")
	assert.InDelta(t, 0.5, rc, 1e-12)
	assert.InDelta(t, -0.5, ra, 1e-12)
	assert.Zero(t, rd)

	once := s.Clone()
	s.Merge([]string{"a", "c", "d", "d"})
	assert.True(t, s.Equal(once), "merge is idempotent")
}

func TestMergeClampsCursor(t *testing.T) {
	s := New(letters(6))
	s.Drain()
	require.Equal(t, 6, s.Cursor())
	s.Merge([]string{"A", "B"})
	assert.Equal(t, 2, s.Cursor())
}

func TestAdd(t *testing.T) {
	s := New([]string{"a", "b"})
	require.NoError(t, s.Judge([]string{"b", "a"}))

	require.NoError(t, s.Add("c"))
	assert.Equal(t, []string{"b", "c", "a"}, s.Values())

	err := s.Add("a")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrDuplicateItem))
	assert.Equal(t, 3, s.Len())
}

func TestRemoveThenAddResetsRating(t *testing.T) {
	s := New([]string{"a", "b", "c"})
	require.NoError(t, s.Judge([]string{"a", "b", "c"}))
	require.Equal(t, 1, s.Rank("a"))

	require.NoError(t, s.Remove("a"))
	assert.False(t, s.Contains("a"))
	require.NoError(t, s.Add("a"))

	r, ok := s.Rating("a")
	require.True(t, ok)
	assert.Zero(t, r)
	assert.Equal(t, []string{"a", "b", "c"}, s.Values(), "zero rating sorts above negative losers")
}

func TestRemove(t *testing.T) {
	s := New([]string{"a", "b", "c", "d"})
	require.NoError(t, s.Remove("b"))
	assert.Equal(t, []string{"a", "c", "d"}, s.Values())

	err := s.Remove("zzz")
	require.Error(t, err)
	assert.True(t, errors.Is(err, errors.ErrUnknownItem))
}

func TestRename(t *testing.T) {
	t.Run("keeps rating", func(t *testing.T) {
		s := New([]string{"a", "b"})
		require.NoError(t, s.Judge([]string{"a", "b"}))
		require.NoError(t, s.Rename("a", "z"))
		r, ok := s.Rating("z")
		require.True(t, ok)
		assert.InDelta(t, 0.5, r, 1e-12)
		assert.False(t, s.Contains("a"))
	})

	t.Run("tie order follows new value", func(t *testing.T) {
		s := New([]string{"a", "b", "c"})
		require.NoError(t, s.Rename("a", "d"))
		assert.Equal(t, []string{"b", "c", "d"}, s.Values())
	})

	t.Run("self rename is a no-op", func(t *testing.T) {
		s := New([]string{"a", "b"})
		before := s.Clone()
		require.NoError(t, s.Rename("a", "a"))
		assert.True(t, s.Equal(before))
	})

	t.Run("unknown", func(t *testing.T) {
		s := New([]string{"a"})
		err := s.Rename("x", "y")
		assert.True(t, errors.Is(err, errors.ErrUnknownItem))
	})

	t.Run("collision", func(t *testing.T) {
		s := New([]string{"a", "b"})
		err := s.Rename("a", "b")
		assert.True(t, errors.Is(err, errors.ErrDuplicateItem))
		assert.Equal(t, []string{"a", "b"}, s.Values())
	})
}

func TestSetBatchSize(t *testing.T) {
	tests := []struct {
		n       int
		wantErr bool
	}{
		{0, true},
		{1, true},
		{2, false},
		{5, false},
		{9, false},
		{10, true},
		{-3, true},
	}

	for _, tt := range tests {
		s := New(nil)
		err := s.SetBatchSize(tt.n)
		if tt.wantErr {
			require.Error(t, err, "n=%d", tt.n)
			assert.True(t, errors.Is(err, errors.ErrInvalidBatchSize))
			assert.Equal(t, constants.DefaultBatchSize, s.BatchSize())
			continue
		}
		require.NoError(t, err, "n=%d", tt.n)
		assert.Equal(t, tt.n, s.BatchSize())
	}
}

func TestExpectedScore(t *testing.T) {
	assert.InDelta(t, 0.5, ExpectedScore(0, 0), 1e-12)
	assert.InDelta(t, 1/(1+10.0), ExpectedScore(1, 0), 1e-12)
	assert.InDelta(t, 1/(1+0.1), ExpectedScore(0, 1), 1e-12)
}
