package media

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseProbeDuration(t *testing.T) {
	tests := []struct {
		name    string
		raw     string
		want    float64
		wantErr bool
	}{
		{
			name: "valid output",
			raw:  `{"format":{"duration":"123.456000","format_name":"mov,mp4"}}`,
			want: 123.456,
		},
		{
			name: "integer duration",
			raw:  `{"format":{"duration":"42"}}`,
			want: 42,
		},
		{
			name:    "missing duration",
			raw:     `{"format":{"format_name":"mov,mp4"}}`,
			wantErr: true,
		},
		{
			name:    "not json",
			raw:     `ffprobe: error`,
			wantErr: true,
		},
		{
			name:    "non-numeric duration",
			raw:     `{"format":{"duration":"N/A"}}`,
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := parseProbeDuration(tt.raw)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.InDelta(t, tt.want, got, 0.0001)
		})
	}
}
