package install

import "errors"

var (
	ErrUnknownFont             = errors.New("unknown font")
	ErrUnknownGroup            = errors.New("unknown group")
	ErrUnresolvedDownload      = errors.New("installation references unknown download")
	ErrUnsupportedInstallation = errors.New("unsupported installation type")
	ErrCabextractMissing       = errors.New("cabextract not found (install it with your package manager)")
	ErrFileNotExtracted        = errors.New("file not found in archive")
	ErrUnsafeFileName          = errors.New("archive member name escapes extraction directory")
)
