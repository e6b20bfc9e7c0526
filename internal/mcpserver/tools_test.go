package mcpserver

import (
	"context"
	"strings"
	"testing"

	"github.com/modelcontextprotocol/go-sdk/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestConvertFootprint(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	tests := []struct {
		name           string
		input          InputConvertFootprint
		wantErr        bool
		errContains    string
		validateOutput func(t *testing.T, output OutputConvertFootprint)
	}{
		{
			name:        "empty document returns error",
			input:       InputConvertFootprint{},
			wantErr:     true,
			errContains: "document is required",
		},
		{
			name: "pads are converted",
			input: InputConvertFootprint{
				Document: `{"head":{"c_para":{"package":"0402"}},"shape":["PAD~RECT~-10~0~10~10~1~~1","PAD~RECT~10~0~10~10~1~~2"]}`,
			},
			validateOutput: func(t *testing.T, output OutputConvertFootprint) {
				assert.Equal(t, "0402", output.Name)
				assert.Equal(t, 2, output.Pads)
				assert.True(t, strings.HasPrefix(output.KicadMod, `(footprint "0402"`))
				assert.NotNil(t, output.Diagnostics)
				assert.Empty(t, output.Diagnostics)
			},
		},
		{
			name:  "malformed document yields diagnostics",
			input: InputConvertFootprint{Document: "{not json"},
			validateOutput: func(t *testing.T, output OutputConvertFootprint) {
				assert.Equal(t, 0, output.Pads)
				assert.Len(t, output.Diagnostics, 1)
				assert.Contains(t, output.KicadMod, "(attr smd)")
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			result, output, err := ConvertFootprint(ctx, req, tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), tt.errContains)
				return
			}
			require.NoError(t, err)
			assert.Nil(t, result)
			tt.validateOutput(t, output)
		})
	}
}

func TestConvertSymbol(t *testing.T) {
	ctx := context.Background()
	req := &mcp.CallToolRequest{}

	_, _, err := ConvertSymbol(ctx, req, InputConvertSymbol{})
	require.Error(t, err)

	_, output, err := ConvertSymbol(ctx, req, InputConvertSymbol{
		Document:  `{"head":{"c_para":{"name":"LED"}},"shape":["P~show~0~1~0~0~0~gge1~0^^0~0^^M 0 0 h -10~#880000^^1~0~0~0~1~start~~~#0000FF^^1~0~0~0~1~end~~~#0000FF","A~M 0 0 L 1 1"]}`,
		Footprint: "easyeda2kicad:LED_0603",
		LCSC:      "C2286",
	})
	require.NoError(t, err)

	assert.Equal(t, "LED", output.Name)
	assert.Equal(t, 1, output.Pins)
	assert.Empty(t, output.Diagnostics)
	assert.Contains(t, output.KicadSym, `"easyeda2kicad:LED_0603"`)
	assert.Contains(t, output.KicadSym, `"C2286"`)
}

func TestNew(t *testing.T) {
	require.NotNil(t, New())
}
