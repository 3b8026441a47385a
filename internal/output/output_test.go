package output

import (
	"bytes"
	"encoding/json"
	"os"
	"path/filepath"
	"runtime"
	"strings"
	"testing"

	"github.com/resend/resend-cli/internal/config"
	"github.com/resend/resend-cli/pkg/types"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func str(s string) *string { return &s }

func TestRender_EmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []types.Email{}, config.FormatTable))
	assert.Equal(t, NoResults+"\n", buf.String())
}

func TestRender_EmailTable(t *testing.T) {
	emails := []types.Email{
		{ID: "e_1", To: []string{"a@example.com", "b@example.com"}, Subject: str("Hello"), LastEvent: str("delivered"), CreatedAt: str("2024-01-01")},
		{ID: "e_2"},
	}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, emails, config.FormatTable))

	lines := strings.Split(strings.TrimRight(buf.String(), "\n"), "\n")
	require.Len(t, lines, 4)
	assert.Equal(t, []string{"ID", "TO", "SUBJECT", "STATUS", "CREATED"}, strings.Fields(lines[0]))
	assert.True(t, strings.HasPrefix(lines[1], "--"))
	assert.Contains(t, lines[2], "a@example.com, b@example.com")
	assert.Contains(t, lines[2], "delivered")
	assert.True(t, strings.HasPrefix(lines[3], "e_2"))
}

func TestRender_Single(t *testing.T) {
	domain := &types.Domain{ID: "d_1", Name: "example.com", Status: str("verified")}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, domain, config.FormatTable))
	assert.Equal(t, "ID: d_1\nNAME: example.com\nSTATUS: verified\nREGION: \n", buf.String())
}

func TestRender_AllKinds(t *testing.T) {
	tests := []struct {
		name   string
		value  interface{}
		header string
	}{
		{"domains", []types.Domain{{ID: "d"}}, "REGION"},
		{"api keys", []types.APIKey{{ID: "k", Name: "prod"}}, "CREATED"},
		{"api key", &types.APIKey{ID: "k", Name: "prod"}, "NAME: prod"},
		{"templates", []types.Template{{ID: "t", Name: "welcome"}}, "SUBJECT"},
		{"template", &types.Template{ID: "t", Name: "welcome"}, "NAME: welcome"},
		{"email", &types.Email{ID: "e"}, "STATUS: "},
		{"profiles", []types.ProfileSummary{{Name: "default", Active: true, MaskedKey: "re_12345********"}}, "FINGERPRINT"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			var buf bytes.Buffer
			require.NoError(t, Render(&buf, tt.value, config.FormatTable))
			assert.Contains(t, buf.String(), tt.header)
		})
	}
}

func TestRender_UnsupportedType(t *testing.T) {
	var buf bytes.Buffer
	err := Render(&buf, map[string]string{}, config.FormatTable)
	assert.Error(t, err)
}

func TestRender_JSON(t *testing.T) {
	emails := []types.Email{{ID: "e_1", From: str("from@example.com")}}

	var buf bytes.Buffer
	require.NoError(t, Render(&buf, emails, config.FormatJSON))

	var decoded []map[string]interface{}
	require.NoError(t, json.Unmarshal(buf.Bytes(), &decoded))
	require.Len(t, decoded, 1)
	assert.Equal(t, "e_1", decoded[0]["id"])
	assert.Equal(t, "from@example.com", decoded[0]["from"])
	assert.NotContains(t, decoded[0], "subject")
	assert.True(t, strings.HasPrefix(buf.String(), "[\n  {"))
}

func TestRender_JSONEmptyList(t *testing.T) {
	var buf bytes.Buffer
	require.NoError(t, Render(&buf, []types.Template{}, config.FormatJSON))
	assert.Equal(t, "[]\n", buf.String())
}

func TestEmit_ToFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "out.json")
	cfg := config.EffectiveConfig{Format: config.FormatJSON, Output: path}

	var stdout bytes.Buffer
	require.NoError(t, Emit(cfg, &stdout, &types.Template{ID: "t_1", Name: "welcome"}))
	assert.Empty(t, stdout.String())

	data, err := os.ReadFile(path)
	require.NoError(t, err)
	assert.Contains(t, string(data), `"id": "t_1"`)
}

func TestEmit_FileIsOwnerOnly(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("POSIX permissions only")
	}

	path := filepath.Join(t.TempDir(), "key.json")
	require.NoError(t, os.WriteFile(path, []byte("old"), 0644))
	cfg := config.EffectiveConfig{Format: config.FormatJSON, Output: path}

	token := "re_new_token"
	var stdout bytes.Buffer
	require.NoError(t, Emit(cfg, &stdout, &types.APIKey{ID: "key_1", Name: "ci", Token: &token}))

	info, err := os.Stat(path)
	require.NoError(t, err)
	assert.Equal(t, os.FileMode(0600), info.Mode().Perm())
}

func TestEmit_ToStdout(t *testing.T) {
	var stdout bytes.Buffer
	require.NoError(t, Emit(config.EffectiveConfig{}, &stdout, []types.APIKey{}))
	assert.Equal(t, NoResults+"\n", stdout.String())
}

func TestWriteError(t *testing.T) {
	var buf bytes.Buffer
	WriteError(&buf, "not_found", `Resource not found: "email" missing`)

	var obj ErrorObject
	require.NoError(t, json.Unmarshal(buf.Bytes(), &obj))
	assert.Equal(t, "not_found", obj.Error)
	assert.Equal(t, `Resource not found: "email" missing`, obj.Message)
	assert.Equal(t, 1, strings.Count(buf.String(), "\n"))
}

func TestPrinter_PlainWhenNotTerminal(t *testing.T) {
	var buf bytes.Buffer
	p := NewPrinter(&buf)

	p.Success("Email sent successfully!")
	p.Field("ID", "e_1")
	p.Warning("Save this token - it won't be shown again!")
	p.Line("done")

	assert.Equal(t, "Email sent successfully!\nID: e_1\nSave this token - it won't be shown again!\ndone\n", buf.String())
}
