package features

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlag(t *testing.T) {
	tests := []struct {
		input   string
		want    Flag
		wantErr bool
	}{
		{input: "router", want: FlagRouter},
		{input: " Firebase ", want: FlagFirebase},
		{input: "AI", want: FlagAI},
		{input: "pwa", want: FlagPWA},
		{input: "payment", want: FlagPayment},
		{input: "graphql", wantErr: true},
		{input: "", wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.input, func(t *testing.T) {
			got, err := ParseFlag(tt.input)
			if tt.wantErr {
				require.Error(t, err)
				assert.Contains(t, err.Error(), "valid:")
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestOptionSet_Enabled(t *testing.T) {
	opts := OptionSet{Router: true, Payment: true}

	assert.True(t, opts.Enabled(FlagRouter))
	assert.True(t, opts.Enabled(FlagPayment))
	assert.False(t, opts.Enabled(FlagFirebase))
	assert.False(t, opts.Enabled(FlagAI))
	assert.False(t, opts.Enabled(FlagPWA))
	assert.False(t, opts.Enabled(Flag("unknown")))
}

func TestOptionSet_With(t *testing.T) {
	var opts OptionSet
	for _, f := range AllFlags() {
		on := opts.With(f, true)
		assert.True(t, on.Enabled(f), "flag %s", f)
		assert.False(t, opts.Enabled(f), "original must not change")
		assert.False(t, on.With(f, false).Enabled(f))
	}
}

func TestOptionSet_TemplateName(t *testing.T) {
	assert.Equal(t, "App", OptionSet{}.TemplateName())
	assert.Equal(t, "Dashboard", OptionSet{Template: "Dashboard"}.TemplateName())
}

func TestOptionSet_String(t *testing.T) {
	assert.Equal(t, "template=App features=none", OptionSet{}.String())
	assert.Equal(t, "template=App features=firebase,router",
		OptionSet{Router: true, Firebase: true}.String())
}

func TestFlagNames(t *testing.T) {
	assert.Equal(t, []string{"router", "firebase", "ai", "pwa", "payment"}, FlagNames())
}
