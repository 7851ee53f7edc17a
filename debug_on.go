//go:build linetrackdebug

package linetrack

const debugChecks = true
