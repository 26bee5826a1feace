package sortexec

import (
	"github.com/vexdb/sortexec/pkg/common"
	"github.com/vexdb/sortexec/pkg/util"
)

// CmpFunc is the raw three way comparison of two datums of one key. It does
// not see nulls or the sort direction, those are applied around it.
type CmpFunc func(lhs, rhs common.Datum) (int, error)

type SortKey struct {
	_orderTyp OrderType
	_nullTyp  OrderByNullType
	_phyTyp   common.PhyType
	//the cached leading datum is an abbreviation, equal compares need the
	//full value tiebreak
	_abbrev  bool
	_cmp     CmpFunc
	_fullCmp CmpFunc
}

func NewSortKey(
	orderTyp OrderType,
	nullTyp OrderByNullType,
	phyTyp common.PhyType,
	abbrev bool,
	cmp CmpFunc,
	fullCmp CmpFunc,
) SortKey {
	util.AssertFunc(orderTyp == OT_ASC || orderTyp == OT_DESC)
	util.AssertFunc(nullTyp == OBNT_NULLS_FIRST || nullTyp == OBNT_NULLS_LAST)
	util.AssertFunc(cmp != nil)
	util.AssertFunc(!abbrev || fullCmp != nil)
	return SortKey{
		_orderTyp: orderTyp,
		_nullTyp:  nullTyp,
		_phyTyp:   phyTyp,
		_abbrev:   abbrev,
		_cmp:      cmp,
		_fullCmp:  fullCmp,
	}
}

type SortLayout struct {
	_columnCount int
	_keys        []SortKey
	_compFuncTyp CompFuncType
}

// NewSortLayout builds the layout of a multi key sort. Multi key quick sort
// only pays off with at least two keys, single key sorts take another path
// in the executor, so fewer than two keys is a caller bug.
func NewSortLayout(keys []SortKey) *SortLayout {
	util.AssertFunc(len(keys) >= 2)
	for i := range keys {
		//only the leading key may carry an abbreviation
		util.AssertFunc(i == 0 || !keys[i]._abbrev)
	}
	return &SortLayout{
		_columnCount: len(keys),
		_keys:        keys,
		_compFuncTyp: classifyCompFunc(&keys[0]),
	}
}

func (layout *SortLayout) ColumnCount() int {
	return layout._columnCount
}

func (layout *SortLayout) CompFuncTyp() CompFuncType {
	return layout._compFuncTyp
}

const hostWordBits = 32 << (^uint(0) >> 63)

// classifyCompFunc picks the fast comparator for the leading key.
// Abbreviations are order preserving unsigned bit patterns regardless of
// the key type. The signed shortcut needs a 64 bit host word, otherwise it
// degrades to the generic comparator with no behavioral difference.
func classifyCompFunc(key *SortKey) CompFuncType {
	if key._abbrev {
		return CF_UNSIGNED
	}
	switch key._phyTyp {
	case common.UINT64:
		return CF_UNSIGNED
	case common.INT64:
		if hostWordBits >= 64 {
			return CF_SIGNED
		}
		return CF_GENERIC
	case common.INT32:
		return CF_INT32
	default:
		return CF_GENERIC
	}
}
