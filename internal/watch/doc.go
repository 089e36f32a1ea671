// Package watch keeps a writable store in sync with a script file.
//
// A [Watcher] loads the file once at construction and holds the parsed
// script in a [writable.Store]. While [Watcher.Start] runs, writes to the
// file are debounced and reloaded; each successful reload sets the store, so
// subscribers see every new version of the script. A file that fails to
// parse is logged and the previous script is kept.
package watch
