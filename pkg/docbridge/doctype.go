package docbridge

import (
	"path"
	"strings"
)

// Document families the editor distinguishes. They select which of the three
// editor frontends (text, spreadsheet, presentation) loads the document.
const (
	TypeWord  = "word"
	TypeCell  = "cell"
	TypeSlide = "slide"
)

// extensionTypes maps lowercase file extensions to document families.
// Unmapped extensions fall back to TypeWord.
var extensionTypes = map[string]string{
	"doc":  TypeWord,
	"docx": TypeWord,
	"docm": TypeWord,
	"dot":  TypeWord,
	"dotx": TypeWord,
	"odt":  TypeWord,
	"rtf":  TypeWord,
	"epub": TypeWord,
	"html": TypeWord,
	"mht":  TypeWord,

	"xls":  TypeCell,
	"xlsx": TypeCell,
	"xlsm": TypeCell,
	"xlt":  TypeCell,
	"xltx": TypeCell,
	"ods":  TypeCell,
	"csv":  TypeCell,

	"ppt":  TypeSlide,
	"pptx": TypeSlide,
	"pptm": TypeSlide,
	"pot":  TypeSlide,
	"potx": TypeSlide,
	"odp":  TypeSlide,
}

// FileExtension returns the lowercase extension of fileID without the dot.
func FileExtension(fileID string) string {
	return strings.ToLower(strings.TrimPrefix(path.Ext(fileID), "."))
}

// DocumentType returns the editor document family for fileID.
func DocumentType(fileID string) string {
	if t, ok := extensionTypes[FileExtension(fileID)]; ok {
		return t
	}
	return TypeWord
}
