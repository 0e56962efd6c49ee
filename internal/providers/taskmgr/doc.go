// Package taskmgr produces the Task Manager's performance counters and
// process table. The figures are drawn from uniform distributions; the
// only real data is the list of open windows.
package taskmgr
