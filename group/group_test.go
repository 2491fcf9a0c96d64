package group

import (
	"testing"
)

// tree:
//
//	0 (root)
//	├── 1
//	│   ├── 3: w10 w11
//	│   └── 4: w12
//	└── 2
//	    └── 5: w13 w14
//
// node 9 lives outside of the root
var parents = map[int]int{
	1: 0, 2: 0,
	3: 1, 4: 1, 5: 2,
	10: 3, 11: 3, 12: 4, 13: 5, 14: 5,
	0: 9,
}

func parentOf(n int) (int, bool) {
	p, ok := parents[n]
	return p, ok
}

func TestResolve(t *testing.T) {
	tests := []struct {
		name     string
		carriers []Carrier[int]
		want     map[int]int
	}{
		{
			name:     "narrowest containers",
			carriers: []Carrier[int]{{10, 0}, {11, 0}, {12, 1}, {13, 2}, {14, 2}},
			want:     map[int]int{0: 3, 1: 4, 2: 5},
		},
		{
			name:     "group spanning siblings",
			carriers: []Carrier[int]{{10, 0}, {11, 0}, {12, 0}, {13, 1}, {14, 1}},
			want:     map[int]int{0: 1, 1: 5},
		},
		{
			name:     "root accepted",
			carriers: []Carrier[int]{{10, 0}, {11, 0}, {12, 0}, {13, 0}, {14, 0}},
			want:     map[int]int{0: 0},
		},
		{
			name:     "not contiguously containable",
			carriers: []Carrier[int]{{10, 0}, {11, 1}, {12, 1}, {13, 1}, {14, 1}},
			want:     map[int]int{},
		},
		{
			name:     "unmatched words are not counted",
			carriers: []Carrier[int]{{10, 0}, {13, 1}, {14, 1}},
			want:     map[int]int{0: 3, 1: 5},
		},
		{
			name: "no carriers",
			want: map[int]int{},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got := Resolve(tt.carriers, parentOf, 0)
			if len(got) != len(tt.want) {
				t.Fatalf("Resolve() = %v, want %v", got, tt.want)
			}
			for k, v := range tt.want {
				if got[k] != v {
					t.Errorf("Resolve()[%d] = %d, want %d", k, got[k], v)
				}
			}
		})
	}
}

func TestResolve_DoesNotLeaveRoot(t *testing.T) {
	// half of the group is outside of the subtree, container search must
	// stop at root
	carriers := []Carrier[int]{{10, 0}, {11, 0}}
	got := Resolve(carriers, parentOf, 1)
	if got[0] != 3 {
		t.Errorf("Resolve() = %v", got)
	}

	carriers = []Carrier[int]{{10, 0}, {13, 0}}
	got = Resolve(carriers, parentOf, 1)
	if _, ok := got[0]; ok {
		t.Errorf("container outside of root returned: %v", got)
	}
}
