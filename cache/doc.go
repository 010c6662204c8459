// Package cache provides an in-memory TTL cache with coalesced,
// timeout-bounded population.
//
// Features:
//
//   - Value builds are locked per key, concurrent callers converge on one
//     build and share its outcome, success or failure.
//   - Every build runs under a wall-clock limit, slow upstreams fail the
//     call instead of hanging it.
//   - Expired entries are never served, a stale read triggers a rebuild.
//   - Failed builds store nothing, the next call retries.
//   - Invalidation marks in-flight builds stale, their results are
//     discarded instead of resurrecting a dead round.
//   - Allows logging and stats collection.
//   - Expiration jitter to avoid massive synchronized expiration.
package cache
