package lnp

import (
	"fmt"
	"hash/crc32"
	"io"
	"os"
	"path/filepath"
)

// crcFile returns the CRC-32 checksum of a single file, formatted the way
// it is stored in the mod database.
func crcFile(file string) (string, error) {
	f, err := os.Open(file)
	if err != nil {
		return "", err
	}
	defer f.Close()

	h := crc32.NewIEEE()
	if _, err := io.Copy(h, f); err != nil {
		return "", err
	}

	return fmt.Sprintf("%08X", h.Sum32()), nil
}

// crcDir returns a checksum covering every raw text file under dir. The
// relative path of each file is hashed along with its contents so that
// renames change the checksum; filepath.Walk's lexical order makes the
// result deterministic.
func crcDir(dir string) (string, error) {
	h := crc32.NewIEEE()

	err := filepath.Walk(dir, func(file string, info os.FileInfo, err error) error {
		if err != nil {
			return err
		}

		if info.Name()[0] == '.' {
			if info.Mode().IsDir() {
				return filepath.SkipDir
			}
			return nil
		}

		if !info.Mode().IsRegular() || filepath.Ext(file) != ".txt" {
			return nil
		}

		rel, err := filepath.Rel(dir, file)
		if err != nil {
			return err
		}
		io.WriteString(h, filepath.ToSlash(rel))

		f, err := os.Open(file)
		if err != nil {
			return err
		}
		defer f.Close()

		_, err = io.Copy(h, f)
		return err
	})
	if err != nil {
		return "", err
	}

	return fmt.Sprintf("%08X", h.Sum32()), nil
}
