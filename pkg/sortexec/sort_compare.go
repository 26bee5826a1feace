package sortexec

import (
	"github.com/vexdb/sortexec/pkg/common"
	"github.com/vexdb/sortexec/pkg/util"
)

// nullCmp resolves the ordering when at least one side is null. The null
// position follows the null order flag alone, the direction flag is applied
// by the caller on non null compares only. The layout builder pairs the two
// flags the way the planner does for DESC orderings.
func nullCmp(n1, n2 bool, key *SortKey) (int, bool) {
	if n1 {
		if n2 {
			return 0, true
		}
		if key._nullTyp == OBNT_NULLS_FIRST {
			return -1, true
		}
		return 1, true
	}
	if n2 {
		if key._nullTyp == OBNT_NULLS_FIRST {
			return 1, true
		}
		return -1, true
	}
	return 0, false
}

func applyDirection(r int, key *SortKey) int {
	if key._orderTyp == OT_DESC {
		return -r
	}
	return r
}

// applySortCmp is the generic directional null aware comparator. cmp picks
// the raw comparison, the regular one or the full value tiebreak.
func applySortCmp(
	d1 common.Datum, n1 bool,
	d2 common.Datum, n2 bool,
	key *SortKey,
	cmp CmpFunc,
) (int, error) {
	if r, handled := nullCmp(n1, n2, key); handled {
		return r, nil
	}
	r, err := cmp(d1, d2)
	if err != nil {
		return 0, err
	}
	return applyDirection(r, key), nil
}

func applyUnsignedCmp(
	d1 common.Datum, n1 bool,
	d2 common.Datum, n2 bool,
	key *SortKey,
) int {
	if r, handled := nullCmp(n1, n2, key); handled {
		return r
	}
	var r int
	if d1 < d2 {
		r = -1
	} else if d1 > d2 {
		r = 1
	}
	return applyDirection(r, key)
}

func applySignedCmp(
	d1 common.Datum, n1 bool,
	d2 common.Datum, n2 bool,
	key *SortKey,
) int {
	if r, handled := nullCmp(n1, n2, key); handled {
		return r
	}
	l, rr := common.DatumGetInt64(d1), common.DatumGetInt64(d2)
	var r int
	if l < rr {
		r = -1
	} else if l > rr {
		r = 1
	}
	return applyDirection(r, key)
}

func applyInt32Cmp(
	d1 common.Datum, n1 bool,
	d2 common.Datum, n2 bool,
	key *SortKey,
) int {
	if r, handled := nullCmp(n1, n2, key); handled {
		return r
	}
	l, rr := common.DatumGetInt32(d1), common.DatumGetInt32(d2)
	var r int
	if l < rr {
		r = -1
	} else if l > rr {
		r = 1
	}
	return applyDirection(r, key)
}

// compareDatumShortcut compares two items on the leading key using the
// cached datums only. The tag dispatch avoids an indirect call for the
// specialized types.
func (st *mkqsState) compareDatumShortcut(t1, t2 *SortItem) (int, error) {
	key := &st._layout._keys[0]
	switch st._layout._compFuncTyp {
	case CF_UNSIGNED:
		return applyUnsignedCmp(t1.Datum0, t1.Null0, t2.Datum0, t2.Null0, key), nil
	case CF_SIGNED:
		return applySignedCmp(t1.Datum0, t1.Null0, t2.Datum0, t2.Null0, key), nil
	case CF_INT32:
		return applyInt32Cmp(t1.Datum0, t1.Null0, t2.Datum0, t2.Null0, key), nil
	default:
		return applySortCmp(t1.Datum0, t1.Null0, t2.Datum0, t2.Null0, key, key._cmp)
	}
}

// compareDatumTiebreak compares two items at the given depth through the
// accessor. At depth 0 with an abbreviated key only the abbreviations were
// compared so far, equal abbreviations require the full value comparator.
func (st *mkqsState) compareDatumTiebreak(t1, t2 *SortItem, depth int) (int, error) {
	util.AssertFunc(depth < st._layout._columnCount)
	key := &st._layout._keys[depth]
	d1, n1, d2, n2, err := st._accessor.GetDatum(t1, t2, depth)
	if err != nil {
		return 0, err
	}
	if key._abbrev && depth == 0 {
		return applySortCmp(d1, n1, d2, n2, key, key._fullCmp)
	}
	return applySortCmp(d1, n1, d2, n2, key, key._cmp)
}

// compareDatum compares two items at the given depth. At depth 0 the
// shortcut runs first; a non zero result is final, and so is a tie unless
// the leading key is abbreviated.
func (st *mkqsState) compareDatum(t1, t2 *SortItem, depth int) (int, error) {
	if depth == 0 {
		r, err := st.compareDatumShortcut(t1, t2)
		if err != nil || r != 0 {
			return r, err
		}
		if !st._layout._keys[0]._abbrev {
			return 0, nil
		}
	}
	return st.compareDatumTiebreak(t1, t2, depth)
}

// compareTupleRangeTiebreak walks the keys from depth on until a non zero
// result, assuming all keys before depth already compared equal. At depth 0
// an abbreviated leading key still owes the full value tiebreak.
func (st *mkqsState) compareTupleRangeTiebreak(t1, t2 *SortItem, depth int) (int, error) {
	util.AssertFunc(depth < st._layout._columnCount)
	if depth == 0 {
		key := &st._layout._keys[0]
		if key._abbrev {
			d1, n1, d2, n2, err := st._accessor.GetDatum(t1, t2, 0)
			if err != nil {
				return 0, err
			}
			r, err := applySortCmp(d1, n1, d2, n2, key, key._fullCmp)
			if err != nil || r != 0 {
				return r, err
			}
		}
		depth = 1
	}

	for ; depth < st._layout._columnCount; depth++ {
		key := &st._layout._keys[depth]
		d1, n1, d2, n2, err := st._accessor.GetDatum(t1, t2, depth)
		if err != nil {
			return 0, err
		}
		r, err := applySortCmp(d1, n1, d2, n2, key, key._cmp)
		if err != nil || r != 0 {
			return r, err
		}
	}
	return 0, nil
}

// compareTupleRange resolves the full ordering of two items starting at the
// given depth. The layout always has at least two keys, so a leading key tie
// must fall into the tiebreak walk anyway.
func (st *mkqsState) compareTupleRange(t1, t2 *SortItem, depth int) (int, error) {
	if depth == 0 {
		r, err := st.compareDatumShortcut(t1, t2)
		if err != nil || r != 0 {
			return r, err
		}
	}
	return st.compareTupleRangeTiebreak(t1, t2, depth)
}

// checkDatumNull reports whether the item holds a null at the given depth.
func (st *mkqsState) checkDatumNull(t *SortItem, depth int) (bool, error) {
	util.AssertFunc(depth < st._layout._columnCount)
	if depth == 0 {
		return t.Null0, nil
	}
	_, n1, _, _, err := st._accessor.GetDatum(t, nil, depth)
	return n1, err
}
