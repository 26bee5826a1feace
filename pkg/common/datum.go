package common

import "math"

// Datum is the untyped 64 bit payload of one key value. Fixed width scalars
// are stored as their raw bits. Wide values (VARCHAR, DECIMAL) store a row
// index into column storage, or an order preserving abbreviation when the
// sort caches an abbreviated leading key.
type Datum uint64

func Int64ToDatum(v int64) Datum {
	return Datum(uint64(v))
}

func DatumGetInt64(d Datum) int64 {
	return int64(d)
}

func Uint64ToDatum(v uint64) Datum {
	return Datum(v)
}

func DatumGetUint64(d Datum) uint64 {
	return uint64(d)
}

func Int32ToDatum(v int32) Datum {
	return Datum(uint64(uint32(v)))
}

func DatumGetInt32(d Datum) int32 {
	return int32(uint32(d))
}

func Float64ToDatum(v float64) Datum {
	return Datum(math.Float64bits(v))
}

func DatumGetFloat64(d Datum) float64 {
	return math.Float64frombits(uint64(d))
}

func BoolToDatum(v bool) Datum {
	if v {
		return 1
	}
	return 0
}

func DatumGetBool(d Datum) bool {
	return d != 0
}

func RowIdxToDatum(row int) Datum {
	return Datum(uint64(row))
}

func DatumGetRowIdx(d Datum) int {
	return int(d)
}

// StringAbbrev packs the first 8 bytes of s big endian so that unsigned
// comparison of two abbreviations matches memcmp order of the prefixes.
// Equal abbreviations do not imply equal strings.
func StringAbbrev(s string) Datum {
	var v uint64
	n := len(s)
	if n > 8 {
		n = 8
	}
	for i := 0; i < n; i++ {
		v |= uint64(s[i]) << (56 - 8*i)
	}
	return Datum(v)
}
