// Package locks provides statemachine.Locker implementations over common
// synchronization primitives. The engine itself never locks; hosts pick one of
// these, or supply their own.
package locks
