package unitfile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadRequiresServiceSection(t *testing.T) {
	tests := []struct {
		name    string
		content string
		wantErr bool
	}{
		{
			name:    "valid unit",
			content: "[Unit]\nDescription=demo\n\n[Service]\nExecStart=/bin/demo\n",
			wantErr: false,
		},
		{
			name:    "missing service section",
			content: "[Unit]\nDescription=demo\n\n[Install]\nWantedBy=multi-user.target\n",
			wantErr: true,
		},
		{
			name:    "empty file",
			content: "",
			wantErr: true,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			doc, err := Load([]byte(tt.content), "demo.service")
			if tt.wantErr {
				require.Error(t, err)
				assert.True(t, IsParseError(err))
				assert.Nil(t, doc)
			} else {
				require.NoError(t, err)
				assert.Equal(t, "demo", doc.Name())
			}
		})
	}
}

func TestLoadMergesDuplicateKeys(t *testing.T) {
	content := `[Service]
ExecStart=/bin/demo
Environment=A=1
Environment=B=2
`
	doc, err := Load([]byte(content), "demo.service")
	require.NoError(t, err)

	assert.Equal(t, "A=1 B=2", doc.Get("Service", "Environment"))
	assert.Equal(t, []string{"A=1", "B=2"}, doc.Environment())
}

func TestLoadMergePreservesFirstOccurrenceOrder(t *testing.T) {
	content := `[Service]
ExecStartPre=/bin/first
ExecStart=/bin/demo
ExecStartPre=/bin/second
`
	doc, err := Load([]byte(content), "demo.service")
	require.NoError(t, err)

	assert.Equal(t, "/bin/first /bin/second", doc.Get("Service", "ExecStartPre"))
	assert.Equal(t, "/bin/demo", doc.Get("Service", "ExecStart"))
}

func TestLoadKeysAreCaseInsensitive(t *testing.T) {
	content := "[Service]\nEXECSTART=/bin/demo\n"
	doc, err := Load([]byte(content), "demo.service")
	require.NoError(t, err)

	assert.Equal(t, "/bin/demo", doc.Get("Service", "ExecStart"))
	assert.Equal(t, "/bin/demo", doc.Get("Service", "execstart"))
}

func TestLoadSectionNamesAreCaseSensitive(t *testing.T) {
	content := "[service]\nExecStart=/bin/demo\n"
	_, err := Load([]byte(content), "demo.service")
	require.Error(t, err)
	assert.True(t, IsParseError(err))
}

func TestLoadKeepsCommandSeparatorsInValues(t *testing.T) {
	content := "[Service]\nType=oneshot\nExecStart=/bin/a ; /bin/b\n"
	doc, err := Load([]byte(content), "demo.service")
	require.NoError(t, err)

	assert.Equal(t, "/bin/a ; /bin/b", doc.Get("Service", "ExecStart"))
}

func TestLoadTemplateUnit(t *testing.T) {
	content := `[Unit]
Description=instance %i of %p

[Service]
ExecStart=/usr/bin/worker --id %I --home %f --unit %u
`
	doc, err := Load([]byte(content), "foo@bar.service")
	require.NoError(t, err)

	tc := doc.Template()
	assert.True(t, tc.IsTemplate)
	assert.Equal(t, "foo", tc.Prefix)
	assert.Equal(t, "bar", tc.Instance)

	assert.Equal(t, "instance bar of foo", doc.Get("Unit", "Description"))
	assert.Equal(t, "/usr/bin/worker --id bar --home /bar --unit foo@bar", doc.Get("Service", "ExecStart"))
}

func TestLoadTemplateWithoutInstanceFails(t *testing.T) {
	_, err := Load([]byte("[Service]\nExecStart=/bin/demo\n"), "foo@.service")
	require.Error(t, err)
	assert.True(t, IsTemplateError(err))
	assert.False(t, IsParseError(err))
}

func TestLoadNonTemplateLeavesSpecifiersAlone(t *testing.T) {
	content := "[Service]\nExecStart=/bin/demo --fmt %i\n"
	doc, err := Load([]byte(content), "demo.service")
	require.NoError(t, err)

	assert.Equal(t, "/bin/demo --fmt %i", doc.Get("Service", "ExecStart"))
}

func TestExpandSpecifiersSinglePass(t *testing.T) {
	// An instance value containing a specifier-shaped substring must
	// not be substituted again.
	tc := TemplateContext{IsTemplate: true, Prefix: "job", Instance: "a%pb"}

	got := expandSpecifiers("run %i now", "job@a%pb", tc)
	assert.Equal(t, "run a%pb now", got)
}

func TestExpandSpecifiersUnknownPassThrough(t *testing.T) {
	tc := TemplateContext{IsTemplate: true, Prefix: "job", Instance: "one"}

	assert.Equal(t, "100%% done", expandSpecifiers("100%% done", "job@one", tc))
	assert.Equal(t, "%x stays", expandSpecifiers("%x stays", "job@one", tc))
	assert.Equal(t, "trailing %", expandSpecifiers("trailing %", "job@one", tc))
}
