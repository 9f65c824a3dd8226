// Package dedup tracks payment references that have already produced a
// ticket email, so redelivered webhooks do not resend. Retention is bounded
// by a TTL; a reference older than the window is treated as new again.
package dedup

import "context"

type Store interface {
	// MarkSeen records ref and reports whether this was its first
	// appearance inside the retention window.
	MarkSeen(ctx context.Context, ref string) (first bool, err error)
	// Forget releases ref so a later delivery counts as first again.
	// Callers use it to roll back a MarkSeen whose send failed, keeping
	// the processor's redelivery as the recovery path.
	Forget(ctx context.Context, ref string) error
	Ping(ctx context.Context) error
}
