package common

import "fmt"

type PhyType int

const (
	NA      PhyType = 0
	BOOL    PhyType = 1
	INT32   PhyType = 7
	UINT64  PhyType = 8
	INT64   PhyType = 9
	DOUBLE  PhyType = 12
	VARCHAR PhyType = 200
	DECIMAL PhyType = 209

	INVALID PhyType = 255
)

var pTypeToStr = map[PhyType]string{
	NA:      "NA",
	BOOL:    "BOOL",
	INT32:   "INT32",
	UINT64:  "UINT64",
	INT64:   "INT64",
	DOUBLE:  "DOUBLE",
	VARCHAR: "VARCHAR",
	DECIMAL: "DECIMAL",
	INVALID: "INVALID",
}

func (pt PhyType) String() string {
	if s, has := pTypeToStr[pt]; has {
		return s
	}
	panic(fmt.Sprintf("usp %d", pt))
}

// IsConstant reports whether values of the type fit into a Datum directly.
// Non-constant types keep their values in column storage and the Datum
// holds a row index instead.
func (pt PhyType) IsConstant() bool {
	switch pt {
	case BOOL, INT32, UINT64, INT64, DOUBLE:
		return true
	default:
		return false
	}
}
