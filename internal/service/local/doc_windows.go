// Package local reads the kernel version of the machine ntver runs on.
//
// It is the only package that imports ntversion, so it inherits that
// package's refusal to build outside Windows.
package local
