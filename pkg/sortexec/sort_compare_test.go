package sortexec

import (
	"math/rand"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/vexdb/sortexec/pkg/common"
)

func int64CmpFunc(lhs, rhs common.Datum) (int, error) {
	l, r := common.DatumGetInt64(lhs), common.DatumGetInt64(rhs)
	if l < r {
		return -1, nil
	} else if l > r {
		return 1, nil
	}
	return 0, nil
}

func Test_applySortCmpNullOrders(t *testing.T) {
	type args struct {
		orderTyp OrderType
		nullTyp  OrderByNullType
		lhs      int64
		lNull    bool
		rhs      int64
		rNull    bool
		wanted   int
	}
	tests := []args{
		{OT_ASC, OBNT_NULLS_LAST, 1, false, 2, false, -1},
		{OT_ASC, OBNT_NULLS_LAST, 2, false, 1, false, 1},
		{OT_ASC, OBNT_NULLS_LAST, 1, false, 1, false, 0},
		{OT_DESC, OBNT_NULLS_LAST, 1, false, 2, false, 1},
		{OT_DESC, OBNT_NULLS_LAST, 2, false, 1, false, -1},
		//null position follows the null order flag, not the direction
		{OT_ASC, OBNT_NULLS_LAST, 0, true, 5, false, 1},
		{OT_ASC, OBNT_NULLS_LAST, 5, false, 0, true, -1},
		{OT_ASC, OBNT_NULLS_FIRST, 0, true, 5, false, -1},
		{OT_ASC, OBNT_NULLS_FIRST, 5, false, 0, true, 1},
		{OT_DESC, OBNT_NULLS_FIRST, 0, true, 5, false, -1},
		{OT_DESC, OBNT_NULLS_LAST, 0, true, 5, false, 1},
		{OT_ASC, OBNT_NULLS_FIRST, 0, true, 0, true, 0},
	}
	for _, test := range tests {
		key := NewSortKey(test.orderTyp, test.nullTyp, common.INT64, false, int64CmpFunc, nil)
		r, err := applySortCmp(
			common.Int64ToDatum(test.lhs), test.lNull,
			common.Int64ToDatum(test.rhs), test.rNull,
			&key, key._cmp)
		require.NoError(t, err)
		assert.Equal(t, test.wanted, r, "%+v", test)
	}
}

func Test_fastCmpMatchesGeneric(t *testing.T) {
	r := rand.New(rand.NewSource(31))
	ascKey := NewSortKey(OT_ASC, OBNT_NULLS_LAST, common.INT64, false, int64CmpFunc, nil)
	descKey := NewSortKey(OT_DESC, OBNT_NULLS_FIRST, common.INT64, false, int64CmpFunc, nil)
	for i := 0; i < 2000; i++ {
		d1 := common.Int64ToDatum(r.Int63() - r.Int63())
		d2 := common.Int64ToDatum(r.Int63() - r.Int63())
		n1 := r.Intn(8) == 0
		n2 := r.Intn(8) == 0
		for _, key := range []*SortKey{&ascKey, &descKey} {
			wanted, err := applySortCmp(d1, n1, d2, n2, key, key._cmp)
			require.NoError(t, err)
			assert.Equal(t, wanted, applySignedCmp(d1, n1, d2, n2, key))
		}
	}
}

func Test_int32AndUnsignedCmp(t *testing.T) {
	key := NewSortKey(OT_ASC, OBNT_NULLS_LAST, common.INT32, false, int64CmpFunc, nil)
	d1 := common.Int32ToDatum(-5)
	d2 := common.Int32ToDatum(3)
	assert.Equal(t, -1, applyInt32Cmp(d1, false, d2, false, &key))
	assert.Equal(t, 1, applyInt32Cmp(d2, false, d1, false, &key))
	assert.Equal(t, 0, applyInt32Cmp(d1, false, d1, false, &key))

	ukey := NewSortKey(OT_ASC, OBNT_NULLS_LAST, common.UINT64, false, int64CmpFunc, nil)
	u1 := common.Uint64ToDatum(1)
	u2 := common.Uint64ToDatum(^uint64(0))
	assert.Equal(t, -1, applyUnsignedCmp(u1, false, u2, false, &ukey))
	assert.Equal(t, 1, applyUnsignedCmp(u2, false, u1, false, &ukey))
}

func Test_classifyCompFunc(t *testing.T) {
	mk := func(phyTyp common.PhyType, abbrev bool) SortKey {
		var fullCmp CmpFunc
		if abbrev {
			fullCmp = int64CmpFunc
		}
		return NewSortKey(OT_ASC, OBNT_NULLS_LAST, phyTyp, abbrev, int64CmpFunc, fullCmp)
	}
	key := mk(common.UINT64, false)
	assert.Equal(t, CF_UNSIGNED, classifyCompFunc(&key))
	key = mk(common.INT32, false)
	assert.Equal(t, CF_INT32, classifyCompFunc(&key))
	key = mk(common.DOUBLE, false)
	assert.Equal(t, CF_GENERIC, classifyCompFunc(&key))
	key = mk(common.VARCHAR, true)
	assert.Equal(t, CF_UNSIGNED, classifyCompFunc(&key))
	key = mk(common.VARCHAR, false)
	assert.Equal(t, CF_GENERIC, classifyCompFunc(&key))
	key = mk(common.INT64, false)
	if hostWordBits >= 64 {
		assert.Equal(t, CF_SIGNED, classifyCompFunc(&key))
	} else {
		assert.Equal(t, CF_GENERIC, classifyCompFunc(&key))
	}
}

func Test_stringAbbrevOrder(t *testing.T) {
	//an abbreviation order decides only when it differs; equal
	//abbreviations say nothing about the full strings
	r := rand.New(rand.NewSource(17))
	words := []string{"", "a", "aa", "prefix00", "prefix00a", "prefix00b", "zz"}
	for i := 0; i < 2000; i++ {
		var s1, s2 string
		if i < len(words)*len(words) {
			s1 = words[i%len(words)]
			s2 = words[i/len(words)]
		} else {
			s1 = randWord(r) + randWord(r) + randWord(r)
			s2 = randWord(r) + randWord(r) + randWord(r)
		}
		a1 := common.StringAbbrev(s1)
		a2 := common.StringAbbrev(s2)
		full := strings.Compare(s1, s2)
		if a1 < a2 {
			assert.Equal(t, -1, full, "%q %q", s1, s2)
		} else if a1 > a2 {
			assert.Equal(t, 1, full, "%q %q", s1, s2)
		}
	}
}

func Test_layoutContract(t *testing.T) {
	key := NewSortKey(OT_ASC, OBNT_NULLS_LAST, common.INT64, false, int64CmpFunc, nil)
	require.Panics(t, func() {
		NewSortLayout([]SortKey{key})
	})
	abbrevKey := NewSortKey(OT_ASC, OBNT_NULLS_LAST, common.VARCHAR, true, int64CmpFunc, int64CmpFunc)
	require.Panics(t, func() {
		//abbreviation is only allowed on the leading key
		NewSortLayout([]SortKey{key, abbrevKey})
	})
	require.Panics(t, func() {
		NewSortKey(OT_ASC, OBNT_NULLS_LAST, common.VARCHAR, true, int64CmpFunc, nil)
	})
}
