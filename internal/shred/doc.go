// Package shred overwrites files with random data before removing them.
//
// Each pass rewrites the whole file in place and syncs it to storage. This is best effort only:
// copy-on-write filesystems, journaling and wear-leveling storage may keep earlier copies of the data.
package shred
