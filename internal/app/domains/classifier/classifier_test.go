package classifier

import (
	"math"
	"math/rand/v2"
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// permutations 返回 items 的全排列
func permutations(items []string) [][]string {
	if len(items) <= 1 {
		return [][]string{append([]string(nil), items...)}
	}
	var out [][]string
	for i := range items {
		rest := make([]string, 0, len(items)-1)
		rest = append(rest, items[:i]...)
		rest = append(rest, items[i+1:]...)
		for _, p := range permutations(rest) {
			out = append(out, append([]string{items[i]}, p...))
		}
	}
	return out
}

func assertConfidenceInRange(t *testing.T, o Outcome) {
	t.Helper()
	require.NotNil(t, o.Confidence)
	c := *o.Confidence
	assert.GreaterOrEqual(t, c, MinConfidence)
	assert.LessOrEqual(t, c, MaxConfidence)
	assert.InDelta(t, c, math.Round(c*100)/100, 1e-9, "confidence %v has more than two decimals", c)
}

func TestNormalize(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"Left", "left"},
		{"  RIGHT  ", "right"},
		{"sag-n", "sagn"},
		{"SAG_I", "sagi"},
		{"s a g - _ n 1", "sagn1"},
		{"left.v2", "left.v2"},
		{"\tTop\n", "top"},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Normalize(tt.in))
		})
	}
}

func TestNormalize_Idempotent(t *testing.T) {
	for _, in := range []string{"Left", "sag-n", "SAG_I", " r i g h t 1 ", "foo.bar", "α-β"} {
		once := Normalize(in)
		assert.Equal(t, once, Normalize(once), "input %q", in)
	}
}

func TestStem(t *testing.T) {
	tests := []struct {
		in   string
		want string
	}{
		{"left.png", "left"},
		{"/uploads/p-1/Left.PNG", "Left"},
		{"uploads/sag-n.tar.gz", "sag-n.tar"},
		{"sag_i", "sag_i"},
		{".hidden", ".hidden"},
		{"trailing.", "trailing."},
		{"", ""},
	}

	for _, tt := range tests {
		t.Run(tt.in, func(t *testing.T) {
			assert.Equal(t, tt.want, Stem(tt.in))
		})
	}
}

func TestMatch_AllPermutations(t *testing.T) {
	for _, p := range permutations([]string{"left", "right", "sagn", "sagi"}) {
		assert.Equal(t, KindTumor, Match(p), "%v", p)
	}
	for _, p := range permutations([]string{"left1", "right1", "sagn1", "sagi1"}) {
		assert.Equal(t, KindNoTumor, Match(p), "%v", p)
	}
}

func TestMatch_Unrecognized(t *testing.T) {
	tests := []struct {
		name  string
		stems []string
	}{
		{"empty", nil},
		{"three views", []string{"left", "right", "sagn"}},
		{"extra view", []string{"left", "right", "sagn", "sagi", "extra"}},
		{"unrelated", []string{"foo", "bar", "baz", "qux"}},
		{"duplicate", []string{"left", "left", "sagn", "sagi"}},
		{"mixed sets", []string{"left", "right1", "sagn", "sagi1"}},
		{"tumor set twice", []string{"left", "right", "sagn", "sagi", "left", "right", "sagn", "sagi"}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, KindUnrecognized, Match(tt.stems))
		})
	}
}

func TestMatch_DoesNotMutateInput(t *testing.T) {
	in := []string{"SAG_I", "Right", "left", "sag-n"}
	Match(in)
	assert.Equal(t, []string{"SAG_I", "Right", "left", "sag-n"}, in)
}

func TestClassify_Example(t *testing.T) {
	c := New()

	o := c.Classify([]string{"Left", "RIGHT", "sag-n", "SAG_I"})

	assert.Equal(t, KindTumor, o.Kind)
	assert.Equal(t, LabelTumor, o.Label)
	assert.True(t, o.Detected())
	assert.True(t, o.Recognized())
	assertConfidenceInRange(t, o)
}

func TestClassify_FilePaths(t *testing.T) {
	c := New()

	tumor := c.Classify([]string{"uploads/x/sag_n.png", "uploads/x/Left.jpg", "uploads/x/RIGHT.png", "uploads/x/sag-i.jpeg"})
	assert.Equal(t, KindTumor, tumor.Kind)
	assertConfidenceInRange(t, tumor)

	noTumor := c.Classify([]string{"/tmp/Right 1.png", "/tmp/left_1.png", "/tmp/SAG-N-1.png", "/tmp/sagi1.png"})
	assert.Equal(t, KindNoTumor, noTumor.Kind)
	assert.Equal(t, LabelNoTumor, noTumor.Label)
	assert.False(t, noTumor.Detected())
	assert.True(t, noTumor.Recognized())
	assertConfidenceInRange(t, noTumor)
}

func TestClassify_Unrecognized(t *testing.T) {
	c := New()

	for _, in := range [][]string{
		nil,
		{},
		{"foo.png", "bar.png", "baz.png", "qux.png"},
		{"left.png", "right.png", "sagn.png", "sagi.png", "extra.png"},
	} {
		o := c.Classify(in)
		assert.Equal(t, KindUnrecognized, o.Kind)
		assert.Equal(t, UnrecognizedMessage, o.Label)
		assert.Nil(t, o.Confidence)
		assert.False(t, o.Recognized())
	}
}

func TestClassify_ConfidenceRangeProperty(t *testing.T) {
	c := New(WithSeed(42))
	views := []string{"left", "right", "sagn", "sagi"}

	for i := 0; i < 2000; i++ {
		assertConfidenceInRange(t, c.Classify(views))
	}
}

func TestClassify_Bounds(t *testing.T) {
	// Float64 返回 0 时取到下限
	low := New(WithSource(constSource(0)))
	o := low.Classify([]string{"left", "right", "sagn", "sagi"})
	require.NotNil(t, o.Confidence)
	assert.Equal(t, MinConfidence, *o.Confidence)

	// Float64 最大值经两位小数舍入后取到上限
	high := New(WithSource(constSource(math.MaxUint64)))
	o = high.Classify([]string{"left1", "right1", "sagn1", "sagi1"})
	require.NotNil(t, o.Confidence)
	assert.Equal(t, MaxConfidence, *o.Confidence)
}

func TestClassify_SeededIsDeterministic(t *testing.T) {
	views := []string{"left", "right", "sagn", "sagi"}
	a := New(WithSeed(7))
	b := New(WithSeed(7))

	for i := 0; i < 10; i++ {
		oa, ob := a.Classify(views), b.Classify(views)
		require.NotNil(t, oa.Confidence)
		require.NotNil(t, ob.Confidence)
		assert.Equal(t, *oa.Confidence, *ob.Confidence)
	}
}

func TestClassify_Concurrent(t *testing.T) {
	c := New(WithSeed(1))
	views := []string{"left", "right", "sagn", "sagi"}

	var wg sync.WaitGroup
	for i := 0; i < 16; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				o := c.Classify(views)
				if o.Confidence == nil || *o.Confidence < MinConfidence || *o.Confidence > MaxConfidence {
					t.Errorf("unexpected outcome %+v", o)
					return
				}
			}
		}()
	}
	wg.Wait()
}

// constSource 固定输出的随机源
type constSource uint64

func (s constSource) Uint64() uint64 { return uint64(s) }

var _ rand.Source = constSource(0)
