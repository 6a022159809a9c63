// Package langdetect labels source files with their programming language
// using go-enry. Labels are informational and appear in reports only.
package langdetect

import (
	"path/filepath"

	"github.com/go-enry/go-enry/v2"
)

// Unknown is returned when no language can be determined.
const Unknown = "text"

// Language returns the go-enry language name for a file, e.g. "C" or "C++".
// The extension decides when it is unambiguous; otherwise content is used to
// break the tie (".h" may be C, C++ or Objective-C).
func Language(path string, content []byte) string {
	name := filepath.Base(path)

	if lang, safe := enry.GetLanguageByExtension(name); safe && lang != "" {
		return lang
	}

	if lang := enry.GetLanguage(name, content); lang != "" {
		return lang
	}

	return Unknown
}

// IsVendored reports whether path looks like third-party code that a
// formatter should usually leave alone.
func IsVendored(path string) bool {
	return enry.IsVendor(filepath.ToSlash(path))
}
