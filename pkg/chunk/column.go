package chunk

import (
	dec "github.com/govalues/decimal"

	"github.com/vexdb/sortexec/pkg/common"
	"github.com/vexdb/sortexec/pkg/util"
)

// Column is a typed value vector with a validity mask. Only one of the
// typed slices is populated, picked by the physical type.
type Column struct {
	_phyTyp   common.PhyType
	_card     int
	_bools    []bool
	_int32s   []int32
	_int64s   []int64
	_uint64s  []uint64
	_float64s []float64
	_strings  []string
	_decimals []dec.Decimal
	_nulls    util.Bitmap
}

func NewColumn(phyTyp common.PhyType, capacity int) *Column {
	col := &Column{
		_phyTyp: phyTyp,
	}
	col._nulls.Init(capacity)
	switch phyTyp {
	case common.BOOL:
		col._bools = make([]bool, 0, capacity)
	case common.INT32:
		col._int32s = make([]int32, 0, capacity)
	case common.INT64:
		col._int64s = make([]int64, 0, capacity)
	case common.UINT64:
		col._uint64s = make([]uint64, 0, capacity)
	case common.DOUBLE:
		col._float64s = make([]float64, 0, capacity)
	case common.VARCHAR:
		col._strings = make([]string, 0, capacity)
	case common.DECIMAL:
		col._decimals = make([]dec.Decimal, 0, capacity)
	default:
		panic("usp column type " + phyTyp.String())
	}
	return col
}

func (col *Column) PhyTyp() common.PhyType {
	return col._phyTyp
}

func (col *Column) Card() int {
	return col._card
}

func (col *Column) IsNull(row int) bool {
	util.AssertFunc(row >= 0 && row < col._card)
	return !col._nulls.RowIsValid(uint64(row))
}

func (col *Column) grow() int {
	row := col._card
	col._card++
	if util.EntryCount(col._card) > len(col._nulls.Bits) {
		oldBits := col._nulls.Bits
		col._nulls.Init(col._card * 2)
		copy(col._nulls.Bits, oldBits)
	}
	return row
}

// AppendNull appends a null row. The typed slice still grows by one so
// that row indexes stay aligned with the validity mask.
func (col *Column) AppendNull() int {
	row := col.grow()
	col._nulls.SetInvalid(uint64(row))
	switch col._phyTyp {
	case common.BOOL:
		col._bools = append(col._bools, false)
	case common.INT32:
		col._int32s = append(col._int32s, 0)
	case common.INT64:
		col._int64s = append(col._int64s, 0)
	case common.UINT64:
		col._uint64s = append(col._uint64s, 0)
	case common.DOUBLE:
		col._float64s = append(col._float64s, 0)
	case common.VARCHAR:
		col._strings = append(col._strings, "")
	case common.DECIMAL:
		col._decimals = append(col._decimals, dec.Zero)
	}
	return row
}

func (col *Column) AppendBool(v bool) int {
	util.AssertFunc(col._phyTyp == common.BOOL)
	row := col.grow()
	col._bools = append(col._bools, v)
	return row
}

func (col *Column) AppendInt32(v int32) int {
	util.AssertFunc(col._phyTyp == common.INT32)
	row := col.grow()
	col._int32s = append(col._int32s, v)
	return row
}

func (col *Column) AppendInt64(v int64) int {
	util.AssertFunc(col._phyTyp == common.INT64)
	row := col.grow()
	col._int64s = append(col._int64s, v)
	return row
}

func (col *Column) AppendUint64(v uint64) int {
	util.AssertFunc(col._phyTyp == common.UINT64)
	row := col.grow()
	col._uint64s = append(col._uint64s, v)
	return row
}

func (col *Column) AppendFloat64(v float64) int {
	util.AssertFunc(col._phyTyp == common.DOUBLE)
	row := col.grow()
	col._float64s = append(col._float64s, v)
	return row
}

func (col *Column) AppendString(v string) int {
	util.AssertFunc(col._phyTyp == common.VARCHAR)
	row := col.grow()
	col._strings = append(col._strings, v)
	return row
}

func (col *Column) AppendDecimal(v dec.Decimal) int {
	util.AssertFunc(col._phyTyp == common.DECIMAL)
	row := col.grow()
	col._decimals = append(col._decimals, v)
	return row
}

func (col *Column) Bool(row int) bool {
	util.AssertFunc(col._phyTyp == common.BOOL)
	return col._bools[row]
}

func (col *Column) Int32(row int) int32 {
	util.AssertFunc(col._phyTyp == common.INT32)
	return col._int32s[row]
}

func (col *Column) Int64(row int) int64 {
	util.AssertFunc(col._phyTyp == common.INT64)
	return col._int64s[row]
}

func (col *Column) Uint64(row int) uint64 {
	util.AssertFunc(col._phyTyp == common.UINT64)
	return col._uint64s[row]
}

func (col *Column) Float64(row int) float64 {
	util.AssertFunc(col._phyTyp == common.DOUBLE)
	return col._float64s[row]
}

func (col *Column) String(row int) string {
	util.AssertFunc(col._phyTyp == common.VARCHAR)
	return col._strings[row]
}

func (col *Column) Decimal(row int) dec.Decimal {
	util.AssertFunc(col._phyTyp == common.DECIMAL)
	return col._decimals[row]
}
