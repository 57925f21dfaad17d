// Package views holds the text views of the job board: the all-jobs list,
// a single job's detail and the bookmarked-jobs list.
//
// A view owns its own copy of the jobs it shows. Copies are kept in step
// through the bookmark tracker: every successful toggle is broadcast and
// each open view patches (or, for the bookmarked list, drops) the job.
// A view's async section is always in exactly one state: loading, failed
// with a message and a retry, or ready. Closing a view unsubscribes it and
// discards the results of loads still in flight.
package views
