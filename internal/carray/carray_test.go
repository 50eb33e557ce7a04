package carray

import (
	"testing"
	"unsafe"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestToForeign_Empty(t *testing.T) {
	assert.Nil(t, ToForeign(nil))
	assert.Nil(t, ToForeign([]string{}))
}

func TestToForeign_Layout(t *testing.T) {
	tests := []struct {
		name string
		list []string
	}{
		{name: "single", list: []string{"foo"}},
		{name: "common prefix slot", list: []string{"", "apple", "apricot"}},
		{name: "utf-8", list: []string{"héllo", "日本"}},
		{name: "empty string entry", list: []string{""}},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			p := ToForeign(tt.list)
			require.NotNil(t, p)

			n := len(tt.list)
			entries := unsafe.Slice((*unsafe.Pointer)(p), n+1)
			assert.Nil(t, entries[n], "array must end with a NULL entry")

			for i, s := range tt.list {
				require.NotNil(t, entries[i])
				assert.Equal(t, s, string(GoBytes(entries[i])))
				terminator := *(*byte)(unsafe.Add(entries[i], len(s)))
				assert.Equal(t, byte(0), terminator, "entry %d must be NUL-terminated", i)
			}

			assert.Equal(t, n, Len(p))
		})
	}
}

func TestIterate(t *testing.T) {
	p := ToForeign([]string{"pre", "apple", "apricot"})

	it := Iterate(p)
	var got []string
	for {
		value, ok := it.Next()
		if !ok {
			break
		}
		got = append(got, string(value))
	}
	assert.Equal(t, []string{"pre", "apple", "apricot"}, got)

	// Exhausted iterators stay exhausted
	_, ok := it.Next()
	assert.False(t, ok)
}

func TestIterate_Nil(t *testing.T) {
	_, ok := Iterate(nil).Next()
	assert.False(t, ok)
	assert.Equal(t, 0, Len(nil))
}

func TestGoBytes(t *testing.T) {
	p := ToForeign([]string{"ap"})
	first := *(*unsafe.Pointer)(p)
	assert.Equal(t, []byte("ap"), GoBytes(first))

	goOwned := append([]byte("fo"), 0)
	assert.Equal(t, []byte("fo"), GoBytes(unsafe.Pointer(&goOwned[0])))
	assert.Nil(t, GoBytes(nil))
}
