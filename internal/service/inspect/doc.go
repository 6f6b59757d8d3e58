// Package inspect prints a report previously saved with `ntver --save`.
package inspect
