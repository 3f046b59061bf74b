package cache

import "testing"

func TestIsEmpty(t *testing.T) {
	var nilPtr *profile
	var nilSlice []string

	empty := []any{nil, "", "0", 0, int8(0), uint(0), 0.0, false, []any{}, nilSlice, map[string]int{}, [0]int{}, nilPtr}
	for _, v := range empty {
		if !IsEmpty(v) {
			t.Fatalf("%#v should be empty", v)
		}
	}

	filled := []any{"0.0", " 0", "00", " ", 1, -1, 0.5, true, []any{nil}, map[string]int{"a": 0}, [1]int{}, &profile{}, profile{}, struct{}{}}
	for _, v := range filled {
		if IsEmpty(v) {
			t.Fatalf("%#v should not be empty", v)
		}
	}
}
