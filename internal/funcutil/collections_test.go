// Copyright Amazon.com, Inc. or its affiliates. All Rights Reserved.
//
// Licensed under the Apache License, Version 2.0 (the "License");
// you may not use this file except in compliance with the License.
// You may obtain a copy of the License at
//
//      http://www.apache.org/licenses/LICENSE-2.0
//
// Unless required by applicable law or agreed to in writing, software
// distributed under the License is distributed on an "AS IS" BASIS,
// WITHOUT WARRANTIES OR CONDITIONS OF ANY KIND, either express or implied.
// See the License for the specific language governing permissions and
// limitations under the License.

package funcutil

import (
	"strconv"
	"testing"
)

func TestMap(t *testing.T) {
	got := Map([]int{1, 2, 3}, strconv.Itoa)
	want := []string{"1", "2", "3"}
	if len(got) != len(want) {
		t.Fatalf("Map returned %v, want %v", got, want)
	}
	for i := range want {
		if got[i] != want[i] {
			t.Errorf("Map returned %v, want %v", got, want)
			break
		}
	}
	if r := Map(nil, strconv.Itoa); len(r) != 0 {
		t.Errorf("Map(nil) = %v, want empty", r)
	}
}

func TestContains(t *testing.T) {
	a := []string{"x", "y"}
	if !Contains(a, "y") {
		t.Errorf("Contains(%v, y) = false", a)
	}
	if Contains(a, "z") {
		t.Errorf("Contains(%v, z) = true", a)
	}
}

func TestExists(t *testing.T) {
	even := func(n int) bool { return n%2 == 0 }
	if !Exists([]int{1, 2, 3}, even) {
		t.Errorf("Exists missed an even element")
	}
	if Exists([]int{1, 3}, even) {
		t.Errorf("Exists found an even element in %v", []int{1, 3})
	}
	if Exists(nil, even) {
		t.Errorf("Exists(nil) = true")
	}
}

func TestSortedKeys(t *testing.T) {
	m := map[uint32]string{3: "c", 1: "a", 2: "b"}
	keys := SortedKeys(m)
	if len(keys) != 3 || keys[0] != 1 || keys[1] != 2 || keys[2] != 3 {
		t.Errorf("SortedKeys = %v, want [1 2 3]", keys)
	}
}
