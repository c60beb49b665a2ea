package record_test

import (
	"testing"

	"github.com/aretw0/hexfsm/pkg/domain"
	"github.com/aretw0/hexfsm/pkg/record"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParse(t *testing.T) {
	tests := []struct {
		name    string
		input   string
		want    record.Record
		wantErr bool
	}{
		{
			name:  "canonical layout",
			input: "0000 0001:0002 0003:0004",
			want:  record.New(record.TypeDFATransition, 1, 2, 3, 4),
		},
		{
			name:  "lowercase and no separators",
			input: "0003000aFFFF00ff0001",
			want:  record.New(record.TypeNFAMulti, 0x000A, record.Epsilon, 0x00FF, 1),
		},
		{
			name:  "extra separators",
			input: " 0002 : 0000 : 0003 0000:0000 ",
			want:  record.New(record.TypeStateDecl, 0, 3, 0, 0),
		},
		{name: "nineteen digits", input: "0000 0001:0002 0003:000", wantErr: true},
		{name: "twenty one digits", input: "0000 0001:0002 0003:00040", wantErr: true},
		{name: "non hex", input: "0000 0001:0002 0003:00G4", wantErr: true},
		{name: "signed field", input: "0000 0001:0002 0003:+004", wantErr: true},
		{name: "empty", input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := record.Parse(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.ErrorIs(t, err, domain.ErrFormat)
				var fe *domain.FormatError
				assert.ErrorAs(t, err, &fe)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestFormat(t *testing.T) {
	r := record.New(record.TypeMealyTransition, 0x00AB, record.Epsilon, 0x1234, 0)
	assert.Equal(t, "0001 00AB:FFFF 1234:0000", record.Format(r))
	assert.Equal(t, record.Format(r), r.String())

	parsed, err := record.Parse(record.Format(r))
	require.NoError(t, err)
	assert.Equal(t, r, parsed)
}

func TestScan(t *testing.T) {
	text := `# machine: toggle
0002 0000:0001 0000:0000   0000 0000:0000 0001:0000
   # indented comment 0000 0009:0009 0009:0009
0000 0001:0000
0000:0000

0003 0000:FFFF 0001:0001`

	records, err := record.Scan(text)
	require.NoError(t, err)
	require.Len(t, records, 4)

	assert.Equal(t, record.New(record.TypeStateDecl, 0, 1, 0, 0), records[0])
	assert.Equal(t, record.New(record.TypeDFATransition, 0, 0, 1, 0), records[1])
	assert.Equal(t, record.New(record.TypeDFATransition, 1, 0, 0, 0), records[2], "records may span lines")
	assert.Equal(t, record.New(record.TypeNFAMulti, 0, record.Epsilon, 1, 1), records[3])
}

func TestScan_Empty(t *testing.T) {
	records, err := record.Scan("# nothing here\n\n")
	require.NoError(t, err)
	assert.Empty(t, records)
}

func TestFormatText(t *testing.T) {
	records := make([]record.Record, 5)
	for i := range records {
		records[i] = record.New(record.TypeDFATransition, uint16(i), 0, 0, 0)
	}

	out := record.FormatText(records, 2)
	assert.Equal(t,
		"0000 0000:0000 0000:0000   0000 0001:0000 0000:0000\n"+
			"0000 0002:0000 0000:0000   0000 0003:0000 0000:0000\n"+
			"0000 0004:0000 0000:0000",
		out)

	back, err := record.Scan(out)
	require.NoError(t, err)
	assert.Equal(t, records, back)

	assert.Equal(t, 5, len(splitLines(record.FormatText(records, 0))))
	assert.Empty(t, record.FormatText(nil, record.DefaultPerLine))
}

func TestType_String(t *testing.T) {
	assert.Equal(t, "nfa_multi", record.TypeNFAMulti.String())
	assert.Equal(t, "unknown(0x00FF)", record.Type(0xFF).String())
}

func splitLines(s string) []string {
	var lines []string
	start := 0
	for i := 0; i < len(s); i++ {
		if s[i] == '\n' {
			lines = append(lines, s[start:i])
			start = i + 1
		}
	}
	return append(lines, s[start:])
}
