package ntversion

import (
	"errors"
	"fmt"
	"sync"
	"syscall"
	"unsafe"

	"golang.org/x/sys/windows"
)

const (
	// ntdllModule is always mapped into a Windows process, so no LoadLibrary is needed.
	ntdllModule = "ntdll.dll"
	// versionNumbersProc is the undocumented export queried by this package.
	versionNumbersProc = "RtlGetNtVersionNumbers"
	// buildNumberMask keeps the build number; the upper nibble of the native
	// build word carries build-type flags (0xF0000000 on free builds).
	buildNumberMask = 0xffff
)

// ErrUnresolved is wrapped by every failure to locate the export at runtime.
var ErrUnresolved = errors.New("ntdll export not resolved")

// versionNumbersAddr resolves the export on first use and caches the outcome,
// failures included, for the lifetime of the process.
//
//nolint:gochecknoglobals // One-time resolution cell shared by all callers.
var versionNumbersAddr = sync.OnceValues(func() (uintptr, error) {
	return resolveProc(ntdllModule, versionNumbersProc)
})

// resolveProc looks up procName inside an already loaded module without
// touching the module's reference count.
func resolveProc(moduleName, procName string) (uintptr, error) {
	name, err := windows.UTF16PtrFromString(moduleName)
	if err != nil {
		return 0, fmt.Errorf("%w: encode module name %q: %w", ErrUnresolved, moduleName, err)
	}

	var module windows.Handle

	err = windows.GetModuleHandleEx(windows.GET_MODULE_HANDLE_EX_FLAG_UNCHANGED_REFCOUNT, name, &module)
	if err != nil {
		return 0, fmt.Errorf("%w: module %s: %w", ErrUnresolved, moduleName, err)
	}

	addr, err := windows.GetProcAddress(module, procName)
	if err != nil {
		return 0, fmt.Errorf("%w: %s!%s: %w", ErrUnresolved, moduleName, procName, err)
	}

	if addr == 0 {
		return 0, fmt.Errorf("%w: %s!%s: null address", ErrUnresolved, moduleName, procName)
	}

	return addr, nil
}

// staticVersionNumbers calls the export through the x/sys/windows binding.
func staticVersionNumbers() (major, minor, build uint32, err error) {
	major, minor, build = windows.RtlGetNtVersionNumbers()

	return major, minor, build, nil
}

// dynamicVersionNumbers calls the export through the cached runtime address.
func dynamicVersionNumbers() (major, minor, build uint32, err error) {
	addr, err := versionNumbersAddr()
	if err != nil {
		return 0, 0, 0, err
	}

	callVersionNumbers(addr, &major, &minor, &build)

	return major, minor, build, nil
}

// callVersionNumbers invokes
//
//	VOID NTAPI RtlGetNtVersionNumbers(PULONG Major, PULONG Minor, PULONG Build);
//
// at addr. This is the only place the package calls through a raw address.
func callVersionNumbers(addr uintptr, major, minor, build *uint32) {
	// VOID return: r1, r2 and errno carry nothing.
	_, _, _ = syscall.SyscallN(
		addr,
		uintptr(unsafe.Pointer(major)),
		uintptr(unsafe.Pointer(minor)),
		uintptr(unsafe.Pointer(build)),
	)
}
