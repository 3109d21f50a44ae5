// Package storage provides the sinks downloaded assets are written to
//
// - Dir writes into a local directory through a ".part" temp file and a rename,
//   so an interrupted body never leaves a complete-looking image behind.
// - Bucket writes through gocloud.dev/blob; any driver registered below can be
//   opened by URL (file://, mem://, s3://, gs://).
package storage
