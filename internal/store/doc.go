// Package store defines persistence interfaces and shared store errors.
// Implementations live under internal/platform; services depend only on the
// interfaces here together with the RunInTransaction helper.
package store
