package sortexec

import (
	"fmt"
	"strings"

	"github.com/vexdb/sortexec/pkg/chunk"
	"github.com/vexdb/sortexec/pkg/common"
	"github.com/vexdb/sortexec/pkg/util"
)

// ColumnAccessor fetches key datums from columnar storage, one column per
// sort key. Wide types hand out row index datums, the matching comparator
// closes over the column.
type ColumnAccessor struct {
	_cols []*chunk.Column
}

func NewColumnAccessor(cols []*chunk.Column) *ColumnAccessor {
	util.AssertFunc(len(cols) >= 2)
	for _, col := range cols {
		util.AssertFunc(col != nil)
		util.AssertFunc(col.Card() == cols[0].Card())
	}
	return &ColumnAccessor{
		_cols: cols,
	}
}

func (acc *ColumnAccessor) GetDatum(a, b *SortItem, depth int) (common.Datum, bool, common.Datum, bool, error) {
	util.AssertFunc(depth >= 0 && depth < len(acc._cols))
	if act := util.Check(util.FAULTS_SCOPE_SORT, "getDatum"); act != nil {
		if err := act.Action(act.Args); err != nil {
			return 0, false, 0, false, err
		}
	}
	col := acc._cols[depth]
	d1, n1, err := colDatum(col, a.RowID)
	if err != nil || b == nil {
		return d1, n1, 0, false, err
	}
	d2, n2, err := colDatum(col, b.RowID)
	return d1, n1, d2, n2, err
}

func colDatum(col *chunk.Column, row int) (common.Datum, bool, error) {
	if col.IsNull(row) {
		return 0, true, nil
	}
	if !col.PhyTyp().IsConstant() {
		//wide values stay in the column, the datum is the row index
		return common.RowIdxToDatum(row), false, nil
	}
	switch col.PhyTyp() {
	case common.BOOL:
		return common.BoolToDatum(col.Bool(row)), false, nil
	case common.INT32:
		return common.Int32ToDatum(col.Int32(row)), false, nil
	case common.INT64:
		return common.Int64ToDatum(col.Int64(row)), false, nil
	case common.UINT64:
		return common.Uint64ToDatum(col.Uint64(row)), false, nil
	case common.DOUBLE:
		return common.Float64ToDatum(col.Float64(row)), false, nil
	default:
		return 0, false, fmt.Errorf("usp sort column type %s", col.PhyTyp())
	}
}

// cmpFuncForColumn builds the raw comparator of one column. For wide types
// the datums are row indexes and the closure reads the column.
func cmpFuncForColumn(col *chunk.Column) CmpFunc {
	switch col.PhyTyp() {
	case common.BOOL:
		return func(lhs, rhs common.Datum) (int, error) {
			return cmpBool(common.DatumGetBool(lhs), common.DatumGetBool(rhs)), nil
		}
	case common.INT32:
		return func(lhs, rhs common.Datum) (int, error) {
			l, r := common.DatumGetInt32(lhs), common.DatumGetInt32(rhs)
			if l < r {
				return -1, nil
			} else if l > r {
				return 1, nil
			}
			return 0, nil
		}
	case common.INT64:
		return func(lhs, rhs common.Datum) (int, error) {
			l, r := common.DatumGetInt64(lhs), common.DatumGetInt64(rhs)
			if l < r {
				return -1, nil
			} else if l > r {
				return 1, nil
			}
			return 0, nil
		}
	case common.UINT64:
		return func(lhs, rhs common.Datum) (int, error) {
			l, r := common.DatumGetUint64(lhs), common.DatumGetUint64(rhs)
			if l < r {
				return -1, nil
			} else if l > r {
				return 1, nil
			}
			return 0, nil
		}
	case common.DOUBLE:
		//NaN sorts after every other value, matching the float ordering of
		//the expression layer
		return func(lhs, rhs common.Datum) (int, error) {
			l, r := common.DatumGetFloat64(lhs), common.DatumGetFloat64(rhs)
			if util.GreaterFloat(l, r) {
				return 1, nil
			} else if util.GreaterFloat(r, l) {
				return -1, nil
			}
			return 0, nil
		}
	case common.VARCHAR:
		return func(lhs, rhs common.Datum) (int, error) {
			l := col.String(common.DatumGetRowIdx(lhs))
			r := col.String(common.DatumGetRowIdx(rhs))
			return strings.Compare(l, r), nil
		}
	case common.DECIMAL:
		return func(lhs, rhs common.Datum) (int, error) {
			l := col.Decimal(common.DatumGetRowIdx(lhs))
			r := col.Decimal(common.DatumGetRowIdx(rhs))
			return l.Cmp(r), nil
		}
	default:
		return func(lhs, rhs common.Datum) (int, error) {
			return 0, fmt.Errorf("usp sort column type %s", col.PhyTyp())
		}
	}
}

func cmpBool(l, r bool) int {
	if l == r {
		return 0
	}
	if !l {
		return -1
	}
	return 1
}

// NewColumnSortLayout builds the sort layout over the key columns. abbrev
// caches the leading VARCHAR key as an 8 byte prefix abbreviation, the full
// string comparator serves as its tiebreak.
func NewColumnSortLayout(
	cols []*chunk.Column,
	orderTypes []OrderType,
	nullTypes []OrderByNullType,
	abbrev bool,
) *SortLayout {
	util.AssertFunc(len(cols) >= 2)
	util.AssertFunc(len(orderTypes) == len(cols))
	util.AssertFunc(len(nullTypes) == len(cols))
	util.AssertFunc(!abbrev || cols[0].PhyTyp() == common.VARCHAR)

	keys := make([]SortKey, 0, len(cols))
	for i, col := range cols {
		cmp := cmpFuncForColumn(col)
		var fullCmp CmpFunc
		useAbbrev := abbrev && i == 0
		if useAbbrev {
			fullCmp = cmp
		}
		keys = append(keys, NewSortKey(
			orderTypes[i],
			nullTypes[i],
			col.PhyTyp(),
			useAbbrev,
			cmp,
			fullCmp,
		))
	}
	return NewSortLayout(keys)
}

// BuildSortItems creates the item array over the rows of the key columns,
// caching the leading key datum, abbreviated when the layout says so.
func BuildSortItems(layout *SortLayout, cols []*chunk.Column) ([]SortItem, error) {
	util.AssertFunc(len(cols) == layout._columnCount)
	col0 := cols[0]
	abbrev := layout._keys[0]._abbrev
	items := make([]SortItem, 0, col0.Card())
	for row := 0; row < col0.Card(); row++ {
		item := SortItem{
			RowID: row,
		}
		if col0.IsNull(row) {
			item.Null0 = true
		} else if abbrev {
			item.Datum0 = common.StringAbbrev(col0.String(row))
		} else {
			d, _, err := colDatum(col0, row)
			if err != nil {
				return nil, err
			}
			item.Datum0 = d
		}
		items = append(items, item)
	}
	return items, nil
}
