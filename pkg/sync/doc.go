/*
The sync package implements the push to the kraken web host.

A sync pass is a single invocation of the external mirror tool (rsync by
default): the local tree is copied in archive mode to the remote
destination, with dotfiles, uploads, and Python bytecode excluded. The
tool itself handles diffing and transfer; this package only assembles the
invocation and decides when passes happen.

In production mode exactly one pass runs. In dev mode passes are driven
by the fswatch package: the driver blocks until the local tree changes,
runs one pass to completion, and goes back to waiting. Passes never
overlap, and a failing pass aborts the whole run rather than being
retried.
*/
package sync
