// Package batchfile writes the generated render script.
//
// Script names carry the Windows FILETIME of the run so successive runs sort
// chronologically and never collide. The output directory is locked while a
// name is reserved, the reservation is created exclusively, and the content
// is written to a temp file that replaces the reservation only once it is
// complete.
package batchfile
