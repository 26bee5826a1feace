package sortexec

import (
	"github.com/vexdb/sortexec/pkg/common"
)

type OrderType int

const (
	OT_INVALID OrderType = iota
	OT_DEFAULT
	OT_ASC
	OT_DESC
)

type OrderByNullType int

const (
	OBNT_INVALID OrderByNullType = iota
	OBNT_DEFAULT
	OBNT_NULLS_FIRST
	OBNT_NULLS_LAST
)

// CompFuncType selects the fast comparator for the leading key. The
// classification happens once per layout, so the hot path dispatches on a
// small tag instead of an indirect call.
type CompFuncType int

const (
	CF_GENERIC CompFuncType = iota
	CF_UNSIGNED
	CF_SIGNED
	CF_INT32
)

const (
	//size < this and no duplicate handling, insert sort on the full key range
	insertion_sort_threshold = 16

	//size <= this, middle element as pivot
	middle_pivot_threshold = 7

	//size > this, ninther as pivot
	ninther_threshold = 40
)

// SortItem is the handle of one row in the sort. Datum0 and Null0 cache the
// leading key, possibly in abbreviated form. All other keys are fetched
// through the KeyAccessor.
type SortItem struct {
	RowID  int
	Datum0 common.Datum
	Null0  bool
}

// KeyAccessor retrieves key values at a given depth. b may be nil when only
// one side is needed.
type KeyAccessor interface {
	GetDatum(a, b *SortItem, depth int) (common.Datum, bool, common.Datum, bool, error)
}

// DupHandler receives maximal runs of items that tie on every sort key.
// seenNull is true when any item of the run, or any enclosing equal zone,
// held a null at some key depth.
type DupHandler interface {
	HandleDup(items []SortItem, seenNull bool) error
}
