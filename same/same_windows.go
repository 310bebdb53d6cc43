// same_windows.go - identity via volume serial + file index
//
// (c) 2024- Sudhi Herle <sudhi@herle.net>
//
// Licensing Terms: GPLv2
//
// If you need a commercial license for this work, please contact
// the author.
//
// This software does not come with any express or implied
// warranty; it is provided "as is". No claim  is made to its
// suitability for any purpose.

//go:build windows

package same

import (
	"golang.org/x/sys/windows"
)

// SupportsDev is false on Windows: identity here is a volume serial /
// file index pair, not a (dev, ino) pair.
const SupportsDev = false

// same opens both a and b with FILE_FLAG_BACKUP_SEMANTICS (required to
// open a directory handle at all) and keeps both handles open while
// reading each side's BY_HANDLE_FILE_INFORMATION, only closing them once
// both reads are done. Reading one side, closing it, then opening and
// reading the other -- and comparing the two results afterward -- can
// miss a delete-and-recreate race that reuses a file index in the gap
// between the closes; keeping both handles live for the whole
// comparison is what rules that out.
func same(a, b string) (bool, error) {
	ha, err := openForIdentity(a)
	if err != nil {
		return false, err
	}
	defer windows.CloseHandle(ha)

	hb, err := openForIdentity(b)
	if err != nil {
		return false, err
	}
	defer windows.CloseHandle(hb)

	var fa, fb windows.ByHandleFileInformation
	if err := windows.GetFileInformationByHandle(ha, &fa); err != nil {
		return false, err
	}
	if err := windows.GetFileInformationByHandle(hb, &fb); err != nil {
		return false, err
	}

	return fa.VolumeSerialNumber == fb.VolumeSerialNumber &&
		fa.FileIndexHigh == fb.FileIndexHigh &&
		fa.FileIndexLow == fb.FileIndexLow, nil
}

func openForIdentity(path string) (windows.Handle, error) {
	p, err := windows.UTF16PtrFromString(path)
	if err != nil {
		return 0, err
	}

	return windows.CreateFile(
		p,
		0, // no access requested, just metadata
		windows.FILE_SHARE_READ|windows.FILE_SHARE_WRITE|windows.FILE_SHARE_DELETE,
		nil,
		windows.OPEN_EXISTING,
		windows.FILE_FLAG_BACKUP_SEMANTICS,
		0,
	)
}
