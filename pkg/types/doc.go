// Package types defines the record kinds managed by keeper (Contact, Task),
// the Record constraint the generic store and query layers are written
// against, configuration, and the error taxonomy shared by every layer.
package types
