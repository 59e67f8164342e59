package probe

import (
	"errors"
	"path/filepath"
	"testing"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/OpenGG/jdksw/internal/jdksw/domain"
)

func TestParseVersion(t *testing.T) {
	tests := []struct {
		name   string
		output string
		want   string
		wantOK bool
	}{
		{
			name:   "openjdk",
			output: "openjdk version \"17.0.2\" 2022-01-18\nOpenJDK Runtime Environment (build 17.0.2+8-86)\n",
			want:   "17.0.2",
			wantOK: true,
		},
		{
			name:   "oracle_8",
			output: "java version \"1.8.0_392\"\r\nJava(TM) SE Runtime Environment\r\n",
			want:   "1.8.0_392",
			wantOK: true,
		},
		{
			name:   "tool_options_notice",
			output: "Picked up JAVA_TOOL_OPTIONS: -Dfile.encoding=UTF-8\nopenjdk version \"21\" 2023-09-19\n",
			want:   "21",
			wantOK: true,
		},
		{
			name:   "quote_only_on_second_line",
			output: "unexpected banner\nopenjdk version \"17\"\n",
			wantOK: false,
		},
		{name: "no_quotes", output: "Error: could not find java.dll\n", wantOK: false},
		{name: "empty_quotes", output: "version \"\"\n", wantOK: false},
		{name: "empty", output: "", wantOK: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, ok := ParseVersion([]byte(tt.output))
			assert.Equal(t, tt.wantOK, ok)
			assert.Equal(t, tt.want, got)
		})
	}
}

func TestProbe_RunsLauncherUnderBin(t *testing.T) {
	var gotName string
	var gotArgs []string
	run := func(name string, args ...string) (Output, error) {
		gotName, gotArgs = name, args
		return Output{Stderr: []byte("openjdk version \"11.0.21\" 2023-10-17\n")}, nil
	}
	prober := New(run, zerolog.Nop())

	version, err := prober.Probe(filepath.Join("opt", "jdk-11"))

	require.NoError(t, err)
	assert.Equal(t, "11.0.21", version)
	assert.Equal(t, filepath.Join("opt", "jdk-11", "bin", "java"), gotName)
	assert.Equal(t, []string{"-version"}, gotArgs)
}

func TestProbe_FallsBackToStdout(t *testing.T) {
	run := func(string, ...string) (Output, error) {
		return Output{Stdout: []byte("java version \"22\"\n")}, nil
	}

	version, err := New(run, zerolog.Nop()).Probe("/jdk")
	require.NoError(t, err)
	assert.Equal(t, "22", version)
}

func TestProbe_LauncherMissing(t *testing.T) {
	run := func(string, ...string) (Output, error) {
		return Output{}, errors.New("executable file not found")
	}

	_, err := New(run, zerolog.Nop()).Probe("/nowhere")
	assert.ErrorIs(t, err, domain.ErrLauncherProbe)
}

func TestProbe_NoQuotedToken(t *testing.T) {
	run := func(string, ...string) (Output, error) {
		return Output{Stderr: []byte("garbage\n")}, nil
	}

	_, err := New(run, zerolog.Nop()).Probe("/jdk")
	assert.ErrorIs(t, err, domain.ErrLauncherProbe)
}
