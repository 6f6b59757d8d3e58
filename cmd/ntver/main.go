// Command ntver prints the Windows NT kernel version reported by ntdll.dll.
package main

import "github.com/oshokin/nt-version/cmd/ntver/cmd"

func main() {
	cmd.Execute()
}
