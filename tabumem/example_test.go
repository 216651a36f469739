package tabumem_test

import (
	"fmt"
	"math/rand"

	"github.com/hlidacpes/rcpsp/tabumem"
)

// Example demonstrates the Simple FIFO tabu memory: a recorded move is
// forbidden until enough later moves have overwritten its slot.
func Example() {
	mem := tabumem.NewSimple(4, 2, rand.New(rand.NewSource(1)))

	fmt.Println(mem.IsAllowed(1, 2, tabumem.Swap))
	mem.Record(1, 2, tabumem.Swap)
	fmt.Println(mem.IsAllowed(1, 2, tabumem.Swap))

	// Two more records overwrite the circular buffer's two slots,
	// evicting the (1,2) entry.
	mem.Record(0, 1, tabumem.Swap)
	mem.Record(2, 3, tabumem.Swap)
	fmt.Println(mem.IsAllowed(1, 2, tabumem.Swap))

	// Output:
	// true
	// false
	// true
}
