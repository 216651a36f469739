// Command rcpsp-tabu runs the parallel tabu-search scheduler over one
// or more instance files, printing a verbose single-instance schedule
// or a one-line multi-instance summary per spec 6.
package main

func main() {
	Execute()
}
