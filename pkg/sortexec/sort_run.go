package sortexec

import (
	"context"
	"errors"
	"time"

	"go.uber.org/zap"

	"github.com/vexdb/sortexec/pkg/util"
)

// Sorter runs the multi key quick sort over an item array. The layout and
// the accessor are shared and read only for the duration of one sort, the
// item array is owned exclusively by the call until Sort returns.
type Sorter struct {
	_layout     *SortLayout
	_accessor   KeyAccessor
	_dupHandler DupHandler
}

func NewSorter(layout *SortLayout, accessor KeyAccessor, dupHandler DupHandler) *Sorter {
	util.AssertFunc(layout != nil)
	util.AssertFunc(accessor != nil)
	return &Sorter{
		_layout:     layout,
		_accessor:   accessor,
		_dupHandler: dupHandler,
	}
}

// Sort reorders items in place into the non decreasing lexicographic order
// of the layout keys. On error the items are a valid permutation of the
// input but only partially ordered. Cancellation surfaces as the context
// error, anything else came from the accessor or a comparator.
func (srt *Sorter) Sort(ctx context.Context, items []SortItem) error {
	if len(items) <= 1 {
		return nil
	}
	st := &mkqsState{
		_layout:     srt._layout,
		_accessor:   srt._accessor,
		_dupHandler: srt._dupHandler,
		_ctx:        ctx,
	}
	start := time.Now()
	err := st.mkqsSort(items, 0, false)
	if err != nil {
		if errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded) {
			util.Info("sort canceled",
				zap.Int("rows", len(items)))
		} else {
			util.Error("sort failed",
				zap.Int("rows", len(items)),
				zap.Error(err))
		}
		return err
	}
	util.Debug("sort done",
		zap.Int("rows", len(items)),
		zap.Int("keys", srt._layout._columnCount),
		zap.Duration("elapsed", time.Since(start)))
	return nil
}

// VerifyOrdered checks that items are non decreasing under the full key
// order. Meant for tests and tooling, it costs one full comparison per
// adjacent pair.
func (srt *Sorter) VerifyOrdered(ctx context.Context, items []SortItem) error {
	st := &mkqsState{
		_layout:   srt._layout,
		_accessor: srt._accessor,
		_ctx:      ctx,
	}
	return st.verifyOrdered(items, 0)
}
