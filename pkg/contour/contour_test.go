package contour

import (
	"errors"
	"slices"
	"testing"

	gerr "github.com/matzehuels/gridraw/pkg/errors"
)

func TestNew(t *testing.T) {
	c := New(1, 3, 2, 3)
	if got := c.Vertices(); !slices.Equal(got, []int{1, 3, 2}) {
		t.Errorf("Vertices() = %v, want [1 3 2]", got)
	}
	if c.First() != 1 || c.Last() != 2 {
		t.Errorf("First(), Last() = %d, %d, want 1, 2", c.First(), c.Last())
	}
	if New().First() != 0 {
		t.Error("empty First() should be 0")
	}
}

func TestSplice(t *testing.T) {
	c := New(1, 3, 2)

	steps := []struct {
		vk   int
		run  []int
		want []int
	}{
		{4, []int{1, 3}, []int{1, 4, 3, 2}},
		{5, []int{1, 4}, []int{1, 5, 4, 3, 2}},
		{7, []int{3, 2}, []int{1, 5, 4, 3, 7, 2}},
		{10, []int{4, 3, 7}, []int{1, 5, 4, 10, 7, 2}},
		{11, []int{1, 5, 4, 10, 7, 2}, []int{1, 11, 2}},
	}
	for _, s := range steps {
		if err := c.Splice(s.run, s.vk); err != nil {
			t.Fatalf("Splice(%v, %d) error = %v", s.run, s.vk, err)
		}
		if got := c.Vertices(); !slices.Equal(got, s.want) {
			t.Fatalf("after Splice(%v, %d): Vertices() = %v, want %v", s.run, s.vk, got, s.want)
		}
	}
	if c.Contains(5) {
		t.Error("covered vertex 5 still on contour")
	}
}

func TestSpliceErrors(t *testing.T) {
	tests := []struct {
		name string
		run  []int
		vk   int
		want error
	}{
		{"short", []int{1}, 9, ErrShortRun},
		{"present", []int{1, 3}, 2, ErrAlreadyOnContour},
		{"missing end", []int{1, 8}, 9, ErrNotOnContour},
		{"skips vertex", []int{1, 2}, 9, ErrNotContiguous},
		{"reversed", []int{2, 3, 1}, 9, ErrNotContiguous},
		{"wrong interior", []int{1, 4, 2}, 9, ErrNotContiguous},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			c := New(1, 3, 2)
			err := c.Splice(tt.run, tt.vk)
			if !errors.Is(err, tt.want) {
				t.Errorf("Splice() error = %v, want %v", err, tt.want)
			}
			if !gerr.Is(err, gerr.ErrCodeInvalidOrdering) {
				t.Errorf("code = %q, want INVALID_ORDERING", gerr.GetCode(err))
			}
			if got := c.Vertices(); !slices.Equal(got, []int{1, 3, 2}) {
				t.Errorf("contour changed on error: %v", got)
			}
		})
	}
}

func TestNavigation(t *testing.T) {
	c := New(1, 6, 14, 13, 2)
	if i := c.Index(13); i != 3 {
		t.Errorf("Index(13) = %d, want 3", i)
	}
	if i := c.Index(99); i != -1 {
		t.Errorf("Index(99) = %d, want -1", i)
	}
	if v, ok := c.Next(6); !ok || v != 14 {
		t.Errorf("Next(6) = %d, %v", v, ok)
	}
	if _, ok := c.Next(2); ok {
		t.Error("Next(last) should report false")
	}
	if v, ok := c.Prev(6); !ok || v != 1 {
		t.Errorf("Prev(6) = %d, %v", v, ok)
	}
	if !c.Less(6, 13) || c.Less(13, 6) {
		t.Error("Less() disagrees with contour order")
	}
	if got := c.Between(6, 13); !slices.Equal(got, []int{6, 14, 13}) {
		t.Errorf("Between(6, 13) = %v", got)
	}
	if got := c.Between(13, 6); got != nil {
		t.Errorf("Between(13, 6) = %v, want nil", got)
	}
	if got := c.From(14); !slices.Equal(got, []int{14, 13, 2}) {
		t.Errorf("From(14) = %v", got)
	}
	want := [][2]int{{1, 6}, {6, 14}, {14, 13}, {13, 2}}
	if got := c.Segments(); !slices.Equal(got, want) {
		t.Errorf("Segments() = %v, want %v", got, want)
	}
}

func TestSpliceRelabels(t *testing.T) {
	// Repeatedly inserting next to the left end halves the same gap until
	// it is exhausted and the labels are spread again.
	c := New(1, 2)
	want := []int{1, 2}
	prev := 2
	for v := 3; v < 80; v++ {
		if err := c.Splice([]int{1, prev}, v); err != nil {
			t.Fatalf("Splice(%d) error = %v", v, err)
		}
		want = slices.Insert(want, 1, v)
		prev = v
	}
	if got := c.Vertices(); !slices.Equal(got, want) {
		t.Errorf("Vertices() = %v, want %v", got, want)
	}
	if !c.Less(79, 78) {
		t.Error("Less(79, 78) = false after relabel")
	}
}

func TestClone(t *testing.T) {
	c := New(1, 3, 2)
	d := c.Clone()
	_ = d.Splice([]int{1, 3}, 4)
	if c.Contains(4) {
		t.Error("Clone() shares state with original")
	}
}
