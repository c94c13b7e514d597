// Package tasktree holds the in-memory task tree and the operations that edit it.
//
// A tree is an ordered list of tasks where every task may carry its own ordered
// list of subtasks, to any depth. Tasks are addressed by positional ids: a
// dot-separated list of 1-based indexes such as "2", "1.3" or "2.1.4". Ids are
// recomputed from the current order, so any insert, removal or move renumbers
// the siblings that follow it.
//
// # Done roll-up
//
//   - Marking a task done marks every descendant done.
//   - Marking a task undone leaves its descendants alone.
//   - After a mark, each ancestor of a marked task is done exactly when all of
//     its direct children are done.
//   - Adding a subtask, appending to or editing a task reopens the affected
//     parent chain.
//
// # Persisted shape
//
// The package serializes to a JSON array of records:
//
//	[
//	  {"contents": "write report", "done": false, "children": [
//	    {"contents": "outline", "done": true, "children": []}
//	  ]}
//	]
//
// On-disk syntax beyond this shape belongs to package todo.
package tasktree
