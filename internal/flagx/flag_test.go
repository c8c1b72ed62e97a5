package flagx

import (
	"reflect"
	"testing"
)

func TestFilterArgs(t *testing.T) {
	tests := []struct {
		name         string
		args         []string
		allowedFlags []string
		want         []string
	}{
		{
			name:         "short flag with separate value",
			args:         []string{"-a", ":8080", "-d", "dsn"},
			allowedFlags: []string{"-a", "--address"},
			want:         []string{"-a", ":8080"},
		},
		{
			name:         "long flag with equals",
			args:         []string{"--address=:9090", "-d", "dsn"},
			allowedFlags: []string{"-a", "--address"},
			want:         []string{"--address=:9090"},
		},
		{
			name:         "both short and long present, preserve order",
			args:         []string{"--address=:1", "-a", ":2", "-x", "1"},
			allowedFlags: []string{"-a", "--address"},
			want:         []string{"--address=:1", "-a", ":2"},
		},
		{
			name:         "unknown flags ignored",
			args:         []string{"-x", "1", "--y=2", "positional"},
			allowedFlags: []string{"-a", "--address"},
			want:         []string{},
		},
		{
			name:         "flag without value at end is kept as-is",
			args:         []string{"-a"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a"},
		},
		{
			name:         "flag followed by another flag (no value)",
			args:         []string{"-a", "-notvalue"},
			allowedFlags: []string{"-a"},
			want:         []string{"-a"},
		},
		{
			name:         "multiple allowed flags kept",
			args:         []string{"-a", "localhost:8080", "-s", "secret", "--other", "x"},
			allowedFlags: []string{"-a", "-s"},
			want:         []string{"-a", "localhost:8080", "-s", "secret"},
		},
		{
			name:         "empty args",
			args:         []string{},
			allowedFlags: []string{"-a"},
			want:         []string{},
		},
		{
			name:         "repeated allowed flag is preserved in order",
			args:         []string{"-s", "one", "-s", "two"},
			allowedFlags: []string{"-s"},
			want:         []string{"-s", "one", "-s", "two"},
		},
	}

	for _, tt := range tests {
		tt := tt
		t.Run(tt.name, func(t *testing.T) {
			got := FilterArgs(tt.args, tt.allowedFlags)
			if !reflect.DeepEqual(got, tt.want) {
				t.Fatalf("FilterArgs() = %#v, want %#v", got, tt.want)
			}
		})
	}
}
