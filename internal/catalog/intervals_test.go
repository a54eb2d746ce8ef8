package catalog

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestIntervalTreeOverlaps(t *testing.T) {
	tree := BuildIntervalTree(
		[]int{100, 200, 150, 500},
		[]int{180, 300, 400, 600},
		[]string{"A", "B", "C", "D"},
	)

	assert.ElementsMatch(t, []string{"A", "C"}, tree.FindOverlaps(160, 160))
	assert.ElementsMatch(t, []string{"A", "B", "C"}, tree.FindOverlaps(170, 210))
	assert.ElementsMatch(t, []string{"D"}, tree.FindOverlaps(450, 550))
	assert.Empty(t, tree.FindOverlaps(401, 499))
	assert.Empty(t, tree.FindOverlaps(1, 99))
}

func TestIntervalTreeBoundsInclusive(t *testing.T) {
	tree := BuildIntervalTree([]int{100}, []int{200}, []string{"A"})

	assert.Equal(t, []string{"A"}, tree.FindOverlaps(100, 100))
	assert.Equal(t, []string{"A"}, tree.FindOverlaps(200, 200))
	assert.Empty(t, tree.FindOverlaps(201, 201))
	assert.Empty(t, tree.FindOverlaps(99, 99))
}

func TestIntervalTreeEmpty(t *testing.T) {
	tree := BuildIntervalTree(nil, nil, nil)
	assert.Empty(t, tree.FindOverlaps(1, 10))
}

func TestIntervalTreeNestedIntervals(t *testing.T) {
	// A short interval hiding inside a long one must not stop the scan
	// early.
	tree := BuildIntervalTree(
		[]int{1, 50, 60},
		[]int{1000, 55, 70},
		[]string{"long", "short", "mid"},
	)

	assert.ElementsMatch(t, []string{"long", "mid"}, tree.FindOverlaps(65, 65))
	assert.ElementsMatch(t, []string{"long"}, tree.FindOverlaps(900, 950))
}
