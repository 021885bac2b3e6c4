// Package ring implements the collectives of a unidirectional ring of P ranks:
// Broadcast, Scatter, Gather and the neighbour Shift used to rotate blocks.
//
// Overview:
//
//   - Rank r only ever sends to Next = (r+1) mod P and receives from
//     Previous = (r−1+P) mod P. One rank, the transmitter, owns the input and
//     the result; every other rank learns its role from its ring distance to
//     the transmitter.
//   - Messages travel through a Comm, which the transports implement
//     (transport/local in one process, transport/grpcnet across processes).
//     Send transfers ownership of the payload to the receiver.
//
// Message order:
//
//   - Every message carries a Kind. Traffic is ordered per (source, kind), so
//     a broadcast can never be consumed by a pending gather and vice versa.
//   - Broadcast: the transmitter sends the value to Next and every other rank
//     forwards it. The transmitter returns once the value has come back.
//   - Scatter: the transmitter sends blocks P−1 … 1 and keeps block 0. The
//     rank at distance d probes the first block, relays P−1−d blocks and
//     keeps the next one.
//   - Gather: the rank at distance d sends its own block, then relays d−1
//     blocks from upstream. The transmitter places the block received at
//     step s in slot P−s.
//
// Deadlock rule:
//
//   - Send may block until the receiver takes the message. Shift therefore
//     splits by parity: even ranks send then receive, odd ranks receive then
//     send, so every blocking send meets a posted receive.
//   - Preconditions (divisibility, transmitter range) are checked on every
//     rank before the first message, so a rejected input fails everywhere
//     instead of leaving peers blocked.
//   - P = 1 never sends a message.
//
// Complexity:
//
//   - Broadcast: P messages of one cell.
//   - Scatter, Gather: P(P−1)/2 block messages of N²/P cells each.
//   - Shift: one message per rank.
//
// Errors:
//
//   - ErrIndivisible, ErrTransmitterOutOfRange, ErrLayoutMismatch,
//     ErrUnexpectedLength, ErrNilComm, ErrUnknownKind, plus any transport
//     or context error, wrapped with the collective's name.
package ring
