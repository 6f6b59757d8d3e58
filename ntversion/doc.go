// Package ntversion reports the (major, minor, build) version of the running
// Windows NT kernel as returned by the undocumented ntdll.dll export
// RtlGetNtVersionNumbers.
//
// Two ways of reaching the export are compiled into every Windows build:
//   - static: the build-time generated binding from golang.org/x/sys/windows,
//     used by default;
//   - dynamic: GetModuleHandleEx + GetProcAddress on the already loaded
//     ntdll.dll, resolved once per process and cached. Selected with
//     `-tags fallback`.
//
// The package refuses to build for any GOOS other than windows.
package ntversion
