// Package skip normalizes the many accepted shapes of a "rows to skip"
// argument into one sorted index set.
package skip

import (
	"errors"
	"fmt"
	"sort"
)

// ErrInvalid is wrapped by every error returned from this package.
var ErrInvalid = errors.New("invalid skiprows")

// Count skips the first N rows.
type Count int

// List skips the listed rows. Order and duplicates do not matter.
type List []int

// Set skips the rows present in the map.
type Set map[int]struct{}

// Range is a half-open, optionally stepped interval of rows. A zero Step
// means 1. With a negative Step the range walks down from Start and stops
// before Stop.
type Range struct {
	Start, Stop, Step int
}

// Indices is the canonical form. Counts and ranges stay arithmetic as an
// ascending progression of n rows from lo; lists and sets are kept sorted
// and de-duplicated.
type Indices struct {
	rows []int
	set  map[int]struct{}

	lo, step, n int
}

// Of is shorthand for Normalize(List(rows)) for callers that already know
// the rows are valid.
func Of(rows ...int) Indices {
	ix, err := Normalize(List(rows))
	if err != nil {
		panic(err)
	}
	return ix
}

// Normalize converts any supported skip specification into Indices.
// Supported: nil, Indices, Count, int, List, []int, Set, map[int]struct{},
// map[int]bool, Range and *Range.
func Normalize(v any) (Indices, error) {
	switch s := v.(type) {
	case nil:
		return Indices{}, nil
	case Indices:
		return s, nil
	case *Indices:
		if s == nil {
			return Indices{}, nil
		}
		return *s, nil
	case Count:
		return fromCount(int(s))
	case int:
		return fromCount(s)
	case List:
		return fromList(s)
	case []int:
		return fromList(s)
	case Set:
		return fromSet(s)
	case map[int]struct{}:
		return fromSet(s)
	case map[int]bool:
		rows := make([]int, 0, len(s))
		for r, on := range s {
			if on {
				rows = append(rows, r)
			}
		}
		return fromList(rows)
	case Range:
		return fromRange(s)
	case *Range:
		if s == nil {
			return Indices{}, nil
		}
		return fromRange(*s)
	}
	return Indices{}, fmt.Errorf("%w: %T is not a valid type for skipping rows", ErrInvalid, v)
}

func negative(n int) error {
	return fmt.Errorf("%w: cannot skip rows starting from the end of the data (you passed a negative value): %d", ErrInvalid, n)
}

func fromCount(n int) (Indices, error) {
	if n < 0 {
		return Indices{}, negative(n)
	}
	return Indices{step: 1, n: n}, nil
}

func fromList(rows []int) (Indices, error) {
	for _, r := range rows {
		if r < 0 {
			return Indices{}, negative(r)
		}
	}
	cp := append([]int(nil), rows...)
	return build(cp), nil
}

func fromSet(m map[int]struct{}) (Indices, error) {
	rows := make([]int, 0, len(m))
	for r := range m {
		rows = append(rows, r)
	}
	return fromList(rows)
}

func fromRange(r Range) (Indices, error) {
	if r.Start < 0 {
		return Indices{}, negative(r.Start)
	}
	if r.Stop < 0 {
		return Indices{}, negative(r.Stop)
	}
	step := r.Step
	if step == 0 {
		step = 1
	}
	if step > 0 {
		if r.Stop <= r.Start {
			return Indices{}, nil
		}
		return Indices{lo: r.Start, step: step, n: (r.Stop-r.Start-1)/step + 1}, nil
	}
	step = -step
	if r.Start <= r.Stop {
		return Indices{}, nil
	}
	n := (r.Start-r.Stop-1)/step + 1
	return Indices{lo: r.Start - (n-1)*step, step: step, n: n}, nil
}

func build(rows []int) Indices {
	sort.Ints(rows)
	out := Indices{set: make(map[int]struct{}, len(rows))}
	for _, r := range rows {
		if _, dup := out.set[r]; dup {
			continue
		}
		out.set[r] = struct{}{}
		out.rows = append(out.rows, r)
	}
	return out
}

// Contains reports whether row i is skipped.
func (ix Indices) Contains(i int) bool {
	if ix.n > 0 {
		return i >= ix.lo && (i-ix.lo)%ix.step == 0 && (i-ix.lo)/ix.step < ix.n
	}
	_, ok := ix.set[i]
	return ok
}

// Len is the number of skipped rows.
func (ix Indices) Len() int {
	if ix.n > 0 {
		return ix.n
	}
	return len(ix.rows)
}

// Rows returns the sorted skipped rows. A count or range is expanded, so
// callers should check Len first when the argument came from user input.
func (ix Indices) Rows() []int {
	if ix.n > 0 {
		out := make([]int, ix.n)
		for k := range out {
			out[k] = ix.lo + k*ix.step
		}
		return out
	}
	return append([]int(nil), ix.rows...)
}
