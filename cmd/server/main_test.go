package main

import (
	"bytes"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseFlags(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		args    []string
		want    options
		wantErr bool
	}{
		{name: "no flags", args: nil, want: options{}},
		{name: "migrate up", args: []string{"-migrate", "up"}, want: options{migrate: "up"}},
		{name: "auto migrate", args: []string{"-auto-migrate"}, want: options{autoMigrate: true}},
		{name: "unknown flag", args: []string{"-verbose"}, wantErr: true},
		{name: "stray argument", args: []string{"serve"}, wantErr: true},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var out bytes.Buffer
			got, err := parseFlags(tt.args, &out)
			if tt.wantErr {
				assert.Error(t, err)
				return
			}
			require.NoError(t, err)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestRunHelpExitsCleanly(t *testing.T) {
	t.Parallel()

	var out bytes.Buffer
	require.NoError(t, run([]string{"-h"}, &out))
	assert.Contains(t, out.String(), "-migrate")
}
