package xorsplit

import (
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

const (
	// PadExt is the extension of the random part.
	PadExt = "xor1"
	// MaskedExt is the extension of the input XOR pad part.
	MaskedExt = "xor2"
)

// Stater reports file metadata. vfs.FS satisfies it.
type Stater interface {
	Stat(name string) (os.FileInfo, error)
}

// AppendExtension returns "<path>.<ext>".
func AppendExtension(path, ext string) string {
	return path + "." + ext
}

// StripXORExtension removes a trailing .xor1 or .xor2 from path.
func StripXORExtension(path string) (string, error) {
	switch filepath.Ext(path) {
	case "." + PadExt, "." + MaskedExt:
		return strings.TrimSuffix(path, filepath.Ext(path)), nil
	default:
		return "", fmt.Errorf("%w, got: %q", ErrInvalidExtension, path)
	}
}

// ResolveXORPair derives the pad and masked paths from either member of a pair.
// Both files must exist.
func ResolveXORPair(fsys Stater, input string) (pad, masked string, err error) {
	base, err := StripXORExtension(input)
	if err != nil {
		return "", "", fmt.Errorf("input file must have .xor1 or .xor2 extension: %w", err)
	}

	pad = AppendExtension(base, PadExt)
	masked = AppendExtension(base, MaskedExt)

	for _, path := range []string{pad, masked} {
		found, err := exists(fsys, path)
		if err != nil {
			return "", "", err
		}

		if !found {
			return "", "", fmt.Errorf("%w: %q", ErrPartnerNotFound, path)
		}
	}

	return pad, masked, nil
}

// ResolveOutputPath returns base if nothing exists there. Otherwise it inserts the
// first unused integer between stem and extension: "name.1.ext", "name.2.ext", ...
func ResolveOutputPath(fsys Stater, base string) (string, error) {
	taken, err := exists(fsys, base)
	if err != nil {
		return "", err
	}

	if !taken {
		return base, nil
	}

	dir, name := filepath.Split(base)

	ext := filepath.Ext(name)
	if ext == name {
		// Dotfiles such as ".env" have no extension, only a stem.
		ext = ""
	}

	stem := strings.TrimSuffix(name, ext)

	for n := 1; ; n++ {
		candidate := dir + stem + "." + strconv.Itoa(n) + ext

		taken, err := exists(fsys, candidate)
		if err != nil {
			return "", err
		}

		if !taken {
			return candidate, nil
		}
	}
}

func exists(fsys Stater, path string) (bool, error) {
	_, err := fsys.Stat(path)

	switch {
	case err == nil:
		return true, nil
	case errors.Is(err, fs.ErrNotExist):
		return false, nil
	default:
		return false, fmt.Errorf("stat %q: %w", path, err)
	}
}
