// Package types defines the library entity types, the Storage port, backend
// configuration, and the sentinel errors shared by the scriptbox packages.
package types
