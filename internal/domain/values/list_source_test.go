package values

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestNewListSource(t *testing.T) {
	tests := []struct {
		name      string
		input     string
		wantValue string
		wantErr   bool
		errCode   string
	}{
		{
			name:      "valid ofac source",
			input:     "ofac",
			wantValue: "ofac",
			wantErr:   false,
		},
		{
			name:      "valid un source",
			input:     "un",
			wantValue: "un",
			wantErr:   false,
		},
		{
			name:      "uppercase input",
			input:     "OFAC",
			wantValue: "ofac",
			wantErr:   false,
		},
		{
			name:      "with spaces",
			input:     " un ",
			wantValue: "un",
			wantErr:   false,
		},
		{
			name:    "empty source",
			input:   "",
			wantErr: true,
			errCode: "EMPTY_LIST_SOURCE",
		},
		{
			name:    "invalid source",
			input:   "eu",
			wantErr: true,
			errCode: "UNSUPPORTED_LIST_SOURCE",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			ls, err := NewListSource(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.wantValue, ls.String())
			assert.True(t, ls.IsValid())
		})
	}
}

func TestListSource_Authority(t *testing.T) {
	assert.True(t, OFACListSource().AuthorityLevel() > UNListSource().AuthorityLevel())
	assert.True(t, OFACListSource().IsOFAC())
	assert.True(t, UNListSource().IsUN())
}

func TestListSource_JSON(t *testing.T) {
	ls := OFACListSource()

	data, err := json.Marshal(ls)
	require.NoError(t, err)
	assert.Equal(t, `"ofac"`, string(data))

	var decoded ListSource
	require.NoError(t, json.Unmarshal(data, &decoded))
	assert.True(t, ls.Equal(decoded))
}
