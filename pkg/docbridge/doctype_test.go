package docbridge_test

import (
	"testing"

	"github.com/stretchr/testify/assert"

	"github.com/docbridge/docbridge/pkg/docbridge"
)

func TestDocumentType(t *testing.T) {
	tests := []struct {
		fileID string
		want   string
	}{
		{"report.xlsx", docbridge.TypeCell},
		{"folder/report.xlsx", docbridge.TypeCell},
		{"deck.pptx", docbridge.TypeSlide},
		{"letter.docx", docbridge.TypeWord},
		{"data.csv", docbridge.TypeCell},
		{"Letter.DOCX", docbridge.TypeWord},
		{"notes.txt", docbridge.TypeWord}, // unmapped extension falls back
		{"noextension", docbridge.TypeWord},
		{"", docbridge.TypeWord},
	}

	for _, tt := range tests {
		t.Run(tt.fileID, func(t *testing.T) {
			assert.Equal(t, tt.want, docbridge.DocumentType(tt.fileID))
		})
	}
}

func TestFileExtension(t *testing.T) {
	assert.Equal(t, "docx", docbridge.FileExtension("a/b/report.docx"))
	assert.Equal(t, "xlsx", docbridge.FileExtension("Report.XLSX"))
	assert.Equal(t, "", docbridge.FileExtension("noextension"))
}
