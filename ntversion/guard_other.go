//go:build !windows

package ntversion

// RtlGetNtVersionNumbers lives in ntdll.dll, which only Windows NT provides.
var _ = ntversionRequiresWindowsNT
