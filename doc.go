// Package ringpath computes all-pairs shortest paths on a ring of workers.
//
// A weighted directed graph is held as an N×N distance matrix. The
// transmitter rank splits it into row bands (A) and column bands (B) and
// scatters them around the ring. Each round every rank multiplies its fixed
// row band by the column band it currently holds, under the tropical (min, +)
// semiring, then passes that column band on to its next neighbour. After N
// rounds the row bands hold shortest distances and are gathered back.
//
// Layout:
//
//	topology/           ring positions: next, previous, distance
//	matrix/             Dense storage, semiring products, Floyd–Warshall oracle
//	ring/               broadcast, scatter, gather and shift over a Comm
//	apsp/               systolic rounds and the end-to-end pipeline
//	transport/local/    every rank as a goroutine in one process
//	transport/grpcnet/  one rank per process, connected over gRPC
//	matrixio/           matrix files, padding, display and test-data generation
//	config/, logging/, metrics/, selftest/ and cmd/ringpath/ make up the CLI
package ringpath
