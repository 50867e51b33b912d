// Package git derives Document dates from repository history: the committer
// time of the most recent commit that touched a file.
//
// Files outside a repository, or not yet committed, fall back to another
// date source (file modification time by default).
package git
