package shape

import "testing"

const samplePin = "P~show~0~1~360~300~180~gge5~0^^360~300^^M 360 300 h -20~#880000^^1~346~304~0~VCC~end~~~#0000FF^^1~352~299~0~1~end~~~#0000FF^^0~353~300^^0~M 350 303 L 347 300 L 350 297"

func TestPinPathLength(t *testing.T) {
	tests := []struct {
		name string
		raw  string
		want float64
	}{
		{
			name: "horizontal pin",
			raw:  samplePin,
			want: 20,
		},
		{
			name: "vertical pin without spaces",
			raw:  "P~show~0~2~400~300~90~gge6~0^^400~300^^M400,300v15~#880000",
			want: 15,
		},
		{
			name: "absolute command ignored",
			raw:  "P~show~0~3~0~0~0~gge7~0^^0~0^^M 0 0 H 30 h 5~#880000",
			want: 5,
		},
		{
			name: "no path segment",
			raw:  "P~show~0~4~0~0~0~gge8",
			want: DefaultPinLength,
		},
		{
			name: "no h or v command",
			raw:  "P~show~0~5~0~0~0~gge9~0^^0~0^^M 0 0 L 10 10~#880000",
			want: DefaultPinLength,
		},
		{
			name: "garbage path",
			raw:  "P~show~0~6~0~0~0~gge10~0^^0~0^^%%%~#880000",
			want: DefaultPinLength,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			if got := PinPathLength(tt.raw); got != tt.want {
				t.Errorf("PinPathLength() = %v, want %v", got, tt.want)
			}
		})
	}
}

func TestPinName(t *testing.T) {
	if got := PinName(samplePin); got != "VCC" {
		t.Errorf("PinName() = %q, want VCC", got)
	}
	if got := PinName("P~show~0~4~0~0~0~gge8"); got != "" {
		t.Errorf("PinName() = %q, want empty", got)
	}
}

func TestParsePath(t *testing.T) {
	path, err := ParsePath("M 360 300 h -20")
	if err != nil {
		t.Fatalf("ParsePath() error = %v", err)
	}
	if len(path.Commands) != 2 {
		t.Fatalf("ParsePath() commands = %d, want 2", len(path.Commands))
	}
	if path.Commands[0].Name != "M" || len(path.Commands[0].Args) != 2 {
		t.Errorf("first command = %+v, want M with 2 args", path.Commands[0])
	}
	if path.Commands[1].Name != "h" || path.Commands[1].Args[0] != -20 {
		t.Errorf("second command = %+v, want h -20", path.Commands[1])
	}
}
