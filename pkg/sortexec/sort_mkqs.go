package sortexec

import (
	"context"
	"fmt"

	"github.com/vexdb/sortexec/pkg/util"
)

// Multi key quick sort. It blends quick sort and radix sort: like quick
// sort it partitions the items into sets less than and greater than a
// pivot, like radix sort it moves on to the next key once the current one
// is known to be equal.
//
// Based on Jon L. Bentley and Robert Sedgewick, "Fast Algorithms for
// Sorting and Searching Strings", 1997, with the equal zone handling kept
// consistent with the regular tuple sort path.

type mkqsState struct {
	_layout     *SortLayout
	_accessor   KeyAccessor
	_dupHandler DupHandler
	_ctx        context.Context
}

func mkqsSwap(a, b int, x []SortItem) {
	if a == b {
		return
	}
	x[a], x[b] = x[b], x[a]
}

// mkqsVecSwap swaps two blocks of the given size, preserving the order
// inside each block.
func mkqsVecSwap(a, b, size int, x []SortItem) {
	for ; size > 0; size-- {
		mkqsSwap(a, b, x)
		a++
		b++
	}
}

// medianOfThree returns the index among a, b, c whose item is the median at
// the given depth.
func (st *mkqsState) medianOfThree(a, b, c int, x []SortItem, depth int) (int, error) {
	ab, err := st.compareDatum(&x[a], &x[b], depth)
	if err != nil {
		return 0, err
	}
	bc, err := st.compareDatum(&x[b], &x[c], depth)
	if err != nil {
		return 0, err
	}
	if ab < 0 {
		if bc < 0 {
			return b, nil
		}
		ac, err := st.compareDatum(&x[a], &x[c], depth)
		if err != nil {
			return 0, err
		}
		if ac < 0 {
			return c, nil
		}
		return a, nil
	}
	if bc > 0 {
		return b, nil
	}
	ac, err := st.compareDatum(&x[a], &x[c], depth)
	if err != nil {
		return 0, err
	}
	if ac < 0 {
		return a, nil
	}
	return c, nil
}

// selectPivot picks the pivot index for a partition of size n: the middle
// for tiny partitions, median of three for small ones, ninther above that.
func (st *mkqsState) selectPivot(x []SortItem, depth int) (int, error) {
	n := len(x)
	if n <= middle_pivot_threshold {
		return n / 2, nil
	}
	var err error
	m := n / 2
	l := 0
	r := n - 1
	if n > ninther_threshold {
		d := n / 8
		l, err = st.medianOfThree(l, l+d, l+2*d, x, depth)
		if err != nil {
			return 0, err
		}
		m, err = st.medianOfThree(m-d, m, m+d, x, depth)
		if err != nil {
			return 0, err
		}
		r, err = st.medianOfThree(r-2*d, r-d, r, x, depth)
		if err != nil {
			return 0, err
		}
	}
	return st.medianOfThree(l, m, r, x, depth)
}

// mkqsSort orders x at the given key depth. seenNull accumulates whether
// any enclosing equal zone held a null at an already resolved depth.
//
// During one partitioning pass the items form five zones: left equal,
// lesser, not processed, greater, right equal. lessStart is the first
// position of the lesser zone, lessEnd the position after it, greaterStart
// the position before the greater zone, greaterEnd its last position. The
// range [lessEnd, greaterStart] is not processed yet. The equal zones are
// swapped into the middle once the scan finishes.
//
// The larger of the lesser and greater zones is handled by looping instead
// of recursing, so the stack depth stays logarithmic even on adversarial
// input.
func (st *mkqsState) mkqsSort(x []SortItem, depth int, seenNull bool) error {
	util.AssertFunc(depth <= st._layout._columnCount)

	for {
		n := len(x)
		if n <= 1 {
			return nil
		}
		if depth == st._layout._columnCount {
			return nil
		}
		if err := st._ctx.Err(); err != nil {
			return err
		}

		if st._layout._compFuncTyp != CF_GENERIC {
			//With a specialized comparator the classic pre-ordered check
			//compares entire tuples. Only valid at the first depth since it
			//compares tuples, not datums.
			if depth == 0 {
				preOrdered := true
				for i := 0; i < n-1; i++ {
					if err := st._ctx.Err(); err != nil {
						return err
					}
					r, err := st.compareTupleRange(&x[i], &x[i+1], 0)
					if err != nil {
						return err
					}
					if r > 0 {
						preOrdered = false
						break
					}
				}
				if preOrdered {
					return nil
				}
			}
		} else {
			//Without a specialized comparator, check datums at the current
			//depth. The run must be strictly ordered: equal datums force the
			//descent to lower depths, so they cannot end the pass early.
			strictOrdered := true
			for i := 0; i < n-1; i++ {
				if err := st._ctx.Err(); err != nil {
					return err
				}
				r, err := st.compareDatum(&x[i], &x[i+1], depth)
				if err != nil {
					return err
				}
				if r >= 0 {
					strictOrdered = false
					break
				}
			}
			if strictOrdered {
				return nil
			}
		}

		//Small partitions use insertion sort on the full remaining key
		//range. Skipped when duplicates need handling because tracking null
		//sightings cheaply is not possible here. No cancellation polls, the
		//partition is tiny.
		if n < insertion_sort_threshold && st._dupHandler == nil {
			for m := 1; m < n; m++ {
				for l := m; l > 0; l-- {
					r, err := st.compareTupleRange(&x[l-1], &x[l], depth)
					if err != nil {
						return err
					}
					if r <= 0 {
						break
					}
					mkqsSwap(l, l-1, x)
				}
			}
			return nil
		}

		pivotIdx, err := st.selectPivot(x, depth)
		if err != nil {
			return err
		}
		mkqsSwap(0, pivotIdx, x)
		pivot := &x[0]

		lessStart := 1
		lessEnd := 1
		greaterStart := n - 1
		greaterEnd := n - 1

		for {
			if err := st._ctx.Err(); err != nil {
				return err
			}

			//scan from the left, moving equals into the left equal zone
			for lessEnd <= greaterStart {
				r, err := st.compareDatum(&x[lessEnd], pivot, depth)
				if err != nil {
					return err
				}
				if r > 0 {
					break
				}
				if r == 0 {
					mkqsSwap(lessEnd, lessStart, x)
					lessStart++
				}
				lessEnd++
			}

			//scan from the right, moving equals into the right equal zone
			for lessEnd <= greaterStart {
				r, err := st.compareDatum(&x[greaterStart], pivot, depth)
				if err != nil {
					return err
				}
				if r < 0 {
					break
				}
				if r == 0 {
					mkqsSwap(greaterStart, greaterEnd, x)
					greaterEnd--
				}
				greaterStart--
			}

			if lessEnd > greaterStart {
				break
			}
			mkqsSwap(lessEnd, greaterStart, x)
			lessEnd++
			greaterStart--
		}

		//four zones now: left equal, lesser, greater, right equal; swap the
		//equal blocks into the middle
		dist := min(lessStart, lessEnd-lessStart)
		mkqsVecSwap(0, lessEnd-dist, dist, x)
		dist = min(greaterEnd-greaterStart, n-greaterEnd-1)
		mkqsVecSwap(lessEnd, n-dist, dist, x)

		lessSize := lessEnd - lessStart
		equalCount := lessStart + n - greaterEnd - 1
		greaterSize := greaterEnd - greaterStart
		util.AssertFunc(equalCount >= 1)
		util.AssertFunc(lessSize+equalCount+greaterSize == n)

		equal := x[lessSize : lessSize+equalCount]

		//all items of the equal zone tie at this depth, checking one of
		//them settles whether a null was seen here
		isDatumNull, err := st.checkDatumNull(&equal[0], depth)
		if err != nil {
			return err
		}

		if depth < st._layout._columnCount-1 {
			err = st.mkqsSort(equal, depth+1, seenNull || isDatumNull)
			if err != nil {
				return err
			}
		} else if st._dupHandler != nil && equalCount > 1 {
			//deepest key reached, the equal zone ties on every key
			err = st._dupHandler.HandleDup(equal, seenNull || isDatumNull)
			if err != nil {
				return err
			}
		}

		lesser := x[:lessSize]
		greater := x[n-greaterSize:]
		if lessSize < greaterSize {
			if err = st.mkqsSort(lesser, depth, seenNull); err != nil {
				return err
			}
			x = greater
		} else {
			if err = st.mkqsSort(greater, depth, seenNull); err != nil {
				return err
			}
			x = lesser
		}
	}
}

// verifyOrdered walks adjacent pairs at the given depth and reports the
// first misordered pair.
func (st *mkqsState) verifyOrdered(x []SortItem, depth int) error {
	for i := 0; i < len(x)-1; i++ {
		if err := st._ctx.Err(); err != nil {
			return err
		}
		r, err := st.compareTupleRange(&x[i], &x[i+1], depth)
		if err != nil {
			return err
		}
		if r > 0 {
			return fmt.Errorf("items %d and %d out of order", x[i].RowID, x[i+1].RowID)
		}
	}
	return nil
}
