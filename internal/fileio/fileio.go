// Package fileio is the concrete file-I/O collaborator the editor core
// delegates to for ':e', ':r', ':w' and friends. It owns encoding
// detection, line-ending normalization, atomic writes with optional
// backup, swap-file naming, and the autoread change watcher. The core
// itself only ever sees normalized in-memory text.
package fileio

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"
	"unicode/utf8"

	"golang.org/x/text/encoding/charmap"
)

// Encoding identifies how a file's bytes map to text.
type Encoding string

const (
	EncodingUTF8    Encoding = "utf-8"
	EncodingASCII   Encoding = "ascii"
	EncodingLatin1  Encoding = "latin-1"
	EncodingCP1252  Encoding = "cp1252"
)

// LineEnding identifies a file's on-disk line terminator.
type LineEnding string

const (
	LF   LineEnding = "\n"
	CRLF LineEnding = "\r\n"
	CR   LineEnding = "\r"
)

// File is one loaded file: its normalized content plus the facts needed
// to write it back the way it was found.
type File struct {
	Content    string
	Encoding   Encoding
	LineEnding LineEnding
}

// Load reads path, detects its encoding (utf-8, then ascii, then
// latin-1, then cp1252) and line-ending style, and returns the content
// with line endings normalized to \n.
func Load(path string) (File, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return File{}, fmt.Errorf("fileio: load %s: %w", path, err)
	}
	text, enc := decode(data)
	ending := detectLineEnding(text)
	return File{Content: normalize(text), Encoding: enc, LineEnding: ending}, nil
}

// decode tries each supported encoding in order. latin-1 maps every byte
// to a code point, so it always succeeds; cp1252 is only reported when
// the data contains bytes in the 0x80-0x9F range that cp1252 assigns
// printable characters and latin-1 assigns control codes.
func decode(data []byte) (string, Encoding) {
	if utf8.Valid(data) {
		if isASCII(data) {
			return string(data), EncodingASCII
		}
		return string(data), EncodingUTF8
	}
	if hasWindowsRange(data) {
		if s, err := charmap.Windows1252.NewDecoder().String(string(data)); err == nil {
			return s, EncodingCP1252
		}
	}
	s, err := charmap.ISO8859_1.NewDecoder().String(string(data))
	if err != nil {
		// Unreachable for latin-1, but fall back to a lossy UTF-8 read
		// rather than failing the load.
		return string(data), EncodingLatin1
	}
	return s, EncodingLatin1
}

func isASCII(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 {
			return false
		}
	}
	return true
}

func hasWindowsRange(data []byte) bool {
	for _, b := range data {
		if b >= 0x80 && b <= 0x9F {
			return true
		}
	}
	return false
}

// detectLineEnding inspects the first terminator found; a file with no
// terminator at all is reported as LF.
func detectLineEnding(text string) LineEnding {
	for i := 0; i < len(text); i++ {
		switch text[i] {
		case '\n':
			return LF
		case '\r':
			if i+1 < len(text) && text[i+1] == '\n' {
				return CRLF
			}
			return CR
		}
	}
	return LF
}

// normalize rewrites every line terminator to \n.
func normalize(text string) string {
	text = strings.ReplaceAll(text, "\r\n", "\n")
	return strings.ReplaceAll(text, "\r", "\n")
}

// SaveOptions controls how Save writes a file back out.
type SaveOptions struct {
	Encoding     Encoding
	LineEnding   LineEnding
	CreateBackup bool
}

// Save writes content to path atomically: the bytes land in a temp file
// in the target directory first and are renamed over path only once
// fully written. With CreateBackup, the previous file is copied to
// path.bak beforehand. The original file's permissions are preserved;
// a new file gets 0644.
func Save(path, content string, opts SaveOptions) error {
	if opts.LineEnding == "" {
		opts.LineEnding = LF
	}
	if opts.LineEnding != LF {
		content = strings.ReplaceAll(content, "\n", string(opts.LineEnding))
	}
	data, err := encode(content, opts.Encoding)
	if err != nil {
		return fmt.Errorf("fileio: encode %s: %w", path, err)
	}

	perm := os.FileMode(0644)
	if info, statErr := os.Stat(path); statErr == nil {
		perm = info.Mode().Perm()
		if opts.CreateBackup {
			if backupErr := copyFile(path, path+".bak", perm); backupErr != nil {
				return fmt.Errorf("fileio: backup %s: %w", path, backupErr)
			}
		}
	}

	dir := filepath.Dir(path)
	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".tmp*")
	if err != nil {
		return fmt.Errorf("fileio: temp file for %s: %w", path, err)
	}
	tmpName := tmp.Name()
	if _, err = tmp.Write(data); err != nil {
		_ = tmp.Close()
		_ = os.Remove(tmpName)
		return fmt.Errorf("fileio: write %s: %w", path, err)
	}
	if err = tmp.Close(); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("fileio: close %s: %w", path, err)
	}
	if err = os.Chmod(tmpName, perm); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("fileio: chmod %s: %w", path, err)
	}
	if err = os.Rename(tmpName, path); err != nil {
		_ = os.Remove(tmpName)
		return fmt.Errorf("fileio: rename %s: %w", path, err)
	}
	return nil
}

func encode(content string, enc Encoding) ([]byte, error) {
	switch enc {
	case EncodingLatin1:
		s, err := charmap.ISO8859_1.NewEncoder().String(content)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	case EncodingCP1252:
		s, err := charmap.Windows1252.NewEncoder().String(content)
		if err != nil {
			return nil, err
		}
		return []byte(s), nil
	default:
		// utf-8 and ascii both serialize as the Go string's bytes.
		return []byte(content), nil
	}
}

func copyFile(src, dst string, perm os.FileMode) error {
	data, err := os.ReadFile(src)
	if err != nil {
		return err
	}
	return os.WriteFile(dst, data, perm)
}
