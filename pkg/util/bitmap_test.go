package util

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func Test_bitmap(t *testing.T) {
	bm := &Bitmap{}
	//empty mask means everything is valid
	assert.True(t, bm.RowIsValid(3))

	bm.Init(20)
	for i := uint64(0); i < 20; i++ {
		assert.True(t, bm.RowIsValid(i))
	}
	bm.SetInvalid(9)
	assert.False(t, bm.RowIsValid(9))
	assert.True(t, bm.RowIsValid(8))
	bm.Set(9, true)
	assert.True(t, bm.RowIsValid(9))
	bm.Set(0, false)
	assert.False(t, bm.RowIsValid(0))
}
