package ranking_test

import (
	"fmt"

	"github.com/agentstation/humansort/pkg/ranking"
)

// Example shows one judgment over three equally rated items.
func Example() {
	state := ranking.New([]string{"A", "B", "C"})
	if err := state.Judge([]string{"B", "A", "C"}); err != nil {
		panic(err)
	}

	for rank, item := range state.Drain().All() {
		fmt.Printf("%d. %s %.1f\n", rank, item.Value, item.Rating)
	}
	// Output:
	// 1. B 1.0
	// 2. A -0.5
	// 3. C -0.5
}

// Example_merge shows ratings surviving a list update.
func Example_merge() {
	state := ranking.New([]string{"tea", "coffee", "juice"})
	_ = state.Judge([]string{"coffee", "tea"})

	state.Merge([]string{"coffee", "juice", "water"})
	fmt.Println(state.Values())
	// Output:
	// [coffee juice water]
}
