/*
Package fstree implements a chunk storage subsystem that saves chunks as files
in FS tree.

Each chunk is stored as a single file. Given that handling many files in the
same directory is usually problematic for file systems chunks are being put
into subdirectories. Directory names are taken from the hex representation of
SHA-256 hash of the chunk key: [FSTree.Depth] components [FSTree.DirNameLen]
characters each. File name is the hex representation of the chunk ID itself.

For example, chunk 0x2a (key hash starting with 0b9c...) will be stored as

	<root>/0/b/9/c/000000000000002a

with the default depth of 4. Hashing spreads sequential chunk IDs uniformly
over the tree.

Files are written to a temporary "<name>#<n>" file opened exclusively and
then renamed, so readers never see partially written chunks. Temporary files
are ignored by iteration.
*/
package fstree
