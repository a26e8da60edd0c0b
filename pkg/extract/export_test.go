package extract

import "github.com/spf13/afero"

func OverloadFS(overload afero.Fs) func() {
	fsRef := fs
	fs = overload
	return func() { fs = fsRef }
}

func Percentage(n, total int) string {
	return percentage(n, total)
}
