package manifest

import (
	"context"
	"io/fs"
	"os"
	"path/filepath"
	"testing"

	"github.com/google/go-cmp/cmp"
	"github.com/stretchr/testify/require"
)

func writeManifest(t *testing.T, name, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), name)
	require.NoError(t, os.WriteFile(path, []byte(content), 0644))
	return path
}

func testVars() Variables {
	return Variables{
		LauncherDir: "/opt/launcher",
		GraphDir:    "/repo/graph",
		Classpath:   []string{"/repo/graph/.graph-validator", "/shared/rules"},
		PathListSep: ":",
		Env:         map[string]string{"RULESET": "strict"},
	}
}

func TestLoad_HCLCommandExport(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeManifest(t, "action.hcl", `
		module "action" {
			description = "Validates the graph."

			export "main" {
				command = ["nbb-logseq", "--classpath", classpath, "${launcher_dir}/action.cljs"]
				dir     = graph_dir
				env = {
					RULESET = upper(env.RULESET)
					FIRST   = classpath_dirs[0]
				}
			}
		}
	`)

	// --- Act ---
	m, err := Load(context.Background(), path, testVars())

	// --- Assert ---
	require.NoError(t, err)
	want := &Module{
		Name:        "action",
		Description: "Validates the graph.",
		SourcePath:  path,
		Exports: []*Export{{
			Name:    "main",
			Command: []string{"nbb-logseq", "--classpath", "/repo/graph/.graph-validator:/shared/rules", "/opt/launcher/action.cljs"},
			Dir:     "/repo/graph",
			Env: map[string]string{
				"RULESET": "STRICT",
				"FIRST":   "/repo/graph/.graph-validator",
			},
		}},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
	require.True(t, m.Exports[0].IsCommand())
}

func TestLoad_HCLHandlerExports(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "action.hcl", `
		module "action" {
			export "main" {
				handler = "print"
			}
			export "list" {
				handler = "namespaces"
			}
		}
	`)

	m, err := Load(context.Background(), path, Variables{})

	require.NoError(t, err)
	require.Equal(t, []string{"list", "main"}, m.ExportNames())

	main, ok := m.Export("main")
	require.True(t, ok)
	require.Equal(t, "print", main.Handler)
	require.False(t, main.IsCommand())

	_, ok = m.Export("missing")
	require.False(t, ok)
}

func TestLoad_YAML(t *testing.T) {
	t.Parallel()

	// --- Arrange ---
	path := writeManifest(t, "action.yaml", `
module:
  name: action
  description: YAML flavoured manifest
  exports:
    main:
      command: ["sh", "-c", "echo $0 ${graph_dir}", "${launcher_dir}/run.sh"]
      env:
        RULESET: "${env.RULESET}"
        CP: "${classpath}"
    list:
      handler: namespaces
`)

	// --- Act ---
	m, err := Load(context.Background(), path, testVars())

	// --- Assert ---
	require.NoError(t, err)
	want := &Module{
		Name:        "action",
		Description: "YAML flavoured manifest",
		SourcePath:  path,
		Exports: []*Export{
			{Name: "list", Handler: "namespaces"},
			{
				Name:    "main",
				Command: []string{"sh", "-c", "echo $0 /repo/graph", "/opt/launcher/run.sh"},
				Env: map[string]string{
					"RULESET": "strict",
					"CP":      "/repo/graph/.graph-validator:/shared/rules",
				},
			},
		},
	}
	if diff := cmp.Diff(want, m); diff != "" {
		t.Errorf("Load() mismatch (-want +got):\n%s", diff)
	}
}

func TestLoad_Errors(t *testing.T) {
	t.Parallel()

	testCases := []struct {
		name     string
		file     string
		content  string
		wantErr  error
		contains string
	}{
		{
			name:     "unsupported extension",
			file:     "action.cljs",
			content:  "(ns action)",
			wantErr:  ErrUnsupportedFormat,
			contains: ".cljs",
		},
		{
			name:     "HCL syntax error",
			file:     "action.hcl",
			content:  `module "action" {`,
			wantErr:  ErrMalformed,
			contains: "failed to parse HCL file",
		},
		{
			name:     "HCL unknown attribute",
			file:     "action.hcl",
			content:  `module "action" { bogus = 1 }`,
			wantErr:  ErrMalformed,
			contains: "failed to decode HCL file",
		},
		{
			name:     "HCL unknown variable",
			file:     "action.hcl",
			content: `module "action" {
				export "main" {
					command = [nope]
				}
			}`,
			wantErr:  ErrMalformed,
			contains: "nope",
		},
		{
			name:     "no module block",
			file:     "action.hcl",
			content:  ``,
			wantErr:  ErrInvalid,
			contains: "found 0",
		},
		{
			name: "two module blocks",
			file: "action.hcl",
			content: `
				module "a" {}
				module "b" {}
			`,
			wantErr:  ErrInvalid,
			contains: "found 2",
		},
		{
			name:     "export without handler or command",
			file:     "action.hcl",
			content: `module "action" {
				export "main" {}
			}`,
			wantErr:  ErrInvalid,
			contains: "one of 'handler' or 'command' is required",
		},
		{
			name:     "export with handler and command",
			file:     "action.hcl",
			content: `module "action" {
				export "main" {
					handler = "print"
					command = ["x"]
				}
			}`,
			wantErr:  ErrInvalid,
			contains: "mutually exclusive",
		},
		{
			name:     "handler export with env",
			file:     "action.hcl",
			content: `module "action" {
				export "main" {
					handler = "print"
					env     = { A = "b" }
				}
			}`,
			wantErr:  ErrInvalid,
			contains: "only apply to commands",
		},
		{
			name: "duplicate export",
			file: "action.hcl",
			content: `module "action" {
				export "main" { handler = "print" }
				export "main" { handler = "print" }
			}`,
			wantErr:  ErrInvalid,
			contains: "declared more than once",
		},
		{
			name:     "empty command program",
			file:     "action.hcl",
			content: `module "action" {
				export "main" {
					command = [" "]
				}
			}`,
			wantErr:  ErrInvalid,
			contains: "command program must not be empty",
		},
		{
			name:     "YAML empty file",
			file:     "action.yaml",
			content:  ``,
			wantErr:  ErrMalformed,
			contains: "file is empty",
		},
		{
			name:     "YAML unknown field",
			file:     "action.yml",
			content:  "module:\n  name: action\n  bogus: true\n",
			wantErr:  ErrMalformed,
			contains: "bogus",
		},
		{
			name:     "YAML missing module key",
			file:     "action.yaml",
			content:  "other: 1\n",
			wantErr:  ErrMalformed,
			contains: "other",
		},
		{
			name:     "YAML unknown placeholder",
			file:     "action.yaml",
			content:  "module:\n  name: action\n  exports:\n    main:\n      command: [\"${nope}\"]\n",
			wantErr:  ErrInvalid,
			contains: "unknown variables nope",
		},
		{
			name:     "YAML missing name",
			file:     "action.yaml",
			content:  "module:\n  exports:\n    main:\n      handler: print\n",
			wantErr:  ErrInvalid,
			contains: "module name must not be empty",
		},
	}

	for _, tc := range testCases {

		tc := tc
		t.Run(tc.name, func(t *testing.T) {
			t.Parallel()

			path := writeManifest(t, tc.file, tc.content)
			_, err := Load(context.Background(), path, testVars())

			require.Error(t, err)
			require.ErrorIs(t, err, tc.wantErr)
			require.Contains(t, err.Error(), tc.contains)
		})
	}
}

func TestLoad_MissingFile(t *testing.T) {
	t.Parallel()

	_, err := Load(context.Background(), filepath.Join(t.TempDir(), "action.hcl"), Variables{})

	require.Error(t, err)
	require.ErrorIs(t, err, fs.ErrNotExist)
}

func TestLoad_CancelledContext(t *testing.T) {
	t.Parallel()

	path := writeManifest(t, "action.hcl", `
		module "action" {
			export "main" {
				handler = "print"
			}
		}
	`)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := Load(ctx, path, Variables{})

	require.ErrorIs(t, err, context.Canceled)
}
