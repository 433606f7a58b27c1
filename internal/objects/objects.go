// Package objects contains the wire and record objects shared by the db and
// biz layers. To avoid circular dependencies, we put them here.
// The json tags mirror the keys the deployed clients already consume; do not
// rename them.
package objects
