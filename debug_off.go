//go:build !linetrackdebug

package linetrack

// debugChecks enables invariant checks of the line tree after every
// modification. Build with tag 'linetrackdebug' to switch them on.
const debugChecks = false
