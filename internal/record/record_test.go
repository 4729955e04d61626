package record

import (
	"errors"
	"io"
	"strings"
	"testing"
)

func TestSourceRowValidate(t *testing.T) {
	tests := []struct {
		name     string
		row      SourceRow
		wantErr  error
		wantLang string
	}{
		{
			name:     "valid row keeps language",
			row:      SourceRow{PackID: "AR-ETHICS-2023", Language: "ar", Content: "نص"},
			wantLang: "ar",
		},
		{
			name:    "missing content",
			row:     SourceRow{PackID: "AR-ETHICS-2023", Language: "ar", Content: "   "},
			wantErr: ErrMissingContent,
		},
		{
			name:     "language inferred from pack prefix",
			row:      SourceRow{PackID: "AR-ETHICS-2023", Content: "نص"},
			wantLang: "ar",
		},
		{
			name:     "unknown tag replaced by inference",
			row:      SourceRow{PackID: "english_pack_04", Language: "xx", Content: "text"},
			wantLang: "en",
		},
		{
			name:     "negative page clamped",
			row:      SourceRow{PackID: "english_pack_04", Language: "en", Page: -3, Content: "text"},
			wantLang: "en",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			err := tt.row.Validate()
			if tt.wantErr != nil {
				if !errors.Is(err, tt.wantErr) {
					t.Fatalf("Validate() error = %v, want %v", err, tt.wantErr)
				}
				return
			}
			if err != nil {
				t.Fatalf("Validate() unexpected error: %v", err)
			}
			if tt.row.Language != tt.wantLang {
				t.Errorf("Language = %q, want %q", tt.row.Language, tt.wantLang)
			}
			if tt.row.Page < 0 {
				t.Errorf("Page = %d, want clamped to 0", tt.row.Page)
			}
		})
	}
}

func TestInferLanguage(t *testing.T) {
	tests := []struct {
		packID  string
		chunkID string
		want    string
	}{
		{"AR-ETHICS-2023", "", "ar"},
		{"AR_OLD_PACK", "", "ar"},
		{"", "AR-ETHICS-2023_12_0_ab12cd34", "ar"},
		{"english_pack_01", "", "en"},
		{"French_Pack_02", "", "fr"}, // lowercase prefix convention is case-insensitive for Latin packs
		{"", "english_pack_01_3_1_deadbeef", "en"},
		{"ar-lowercase", "", "unknown"}, // the Arabic prefix is case-sensitive
		{"somepack", "", "unknown"},
		{"", "", "unknown"},
	}

	for _, tt := range tests {
		if got := InferLanguage(tt.packID, tt.chunkID); got != tt.want {
			t.Errorf("InferLanguage(%q, %q) = %q, want %q", tt.packID, tt.chunkID, got, tt.want)
		}
	}
}

func TestReaderSkipsMalformed(t *testing.T) {
	input := strings.Join([]string{
		`{"pack_id":"english_pack_01","language":"en","page":1,"content":"first row"}`,
		``,
		`not json at all`,
		`{"pack_id":"english_pack_01","language":"en","page":2,"content":"second row"}`,
		`{"broken`,
	}, "\n")

	r := NewReader(strings.NewReader(input))

	var rows []*SourceRow
	for {
		row, err := r.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			t.Fatalf("Next() error = %v", err)
		}
		rows = append(rows, row)
	}

	if len(rows) != 2 {
		t.Fatalf("decoded %d rows, want 2", len(rows))
	}
	if rows[0].Content != "first row" || rows[1].Content != "second row" {
		t.Errorf("rows decoded out of order: %+v", rows)
	}
	if r.Read != 4 {
		t.Errorf("Read = %d, want 4 non-blank lines", r.Read)
	}
	if r.Skipped != 2 {
		t.Errorf("Skipped = %d, want 2", r.Skipped)
	}
}

func TestWriterRoundTrip(t *testing.T) {
	var sb strings.Builder
	w := NewWriter(&sb)

	rec := ChunkRecord{
		ChunkID:      "AR-ETHICS-2023_12_0_ab12cd34",
		PackID:       "AR-ETHICS-2023",
		SectionTitle: "الفصل الأول",
		Page:         12,
		Language:     "ar",
		Content:      "محتوى الفقرة",
	}
	if err := w.Write(rec); err != nil {
		t.Fatalf("Write() error = %v", err)
	}
	if err := w.Flush(); err != nil {
		t.Fatalf("Flush() error = %v", err)
	}

	out := sb.String()
	if strings.Count(out, "\n") != 1 {
		t.Errorf("output is not a single line: %q", out)
	}
	// Arabic must be written raw, not \u-escaped.
	if !strings.Contains(out, "محتوى الفقرة") {
		t.Errorf("output escaped non-ASCII content: %q", out)
	}
}
