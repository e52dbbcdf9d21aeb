// Package core declares the workspace operations the CLI dispatches to.
//
// The CLI never inspects how an operation is carried out. It builds a
// request from the parsed command line, calls the matching Service method
// and renders the returned result.
package core

import (
	"context"

	"baseline/internal/result"
)

type AddRequest struct {
	GitURL string
	Name   string
	Branch string
}

type GraphRequest struct {
	Format string // text, dot, json, html or pdf
	Output string // empty means stdout
}

type BranchRequest struct {
	Name   string
	Create bool
}

type PRRequest struct {
	Repo, Title, Body string
	Draft             bool
}

type EditorConfigRequest struct {
	Force      bool
	AutoDetect bool
}

type ProjectInitRequest struct {
	Force bool
}

type WorkspaceUpdateRequest struct {
	SkipSync    bool
	SkipInstall bool
	Parallel    bool
}

type WorkspaceSyncRequest struct {
	Force bool
}

// ScriptRequest runs a well-known package script across repositories.
type ScriptRequest struct {
	Script   string // test, lint, start or watch
	Filter   string
	Parallel bool
	FailFast bool
}

type ExecRequest struct {
	Command  string
	Filter   string
	Parallel bool
}

type ComposeRequest struct {
	Subcommand string // up, down, start, stop, ps or logs
	File       string
	Detach     bool
	Build      bool
	Services   []string
}

type ReleaseRequest struct {
	Stage string // plan, version or publish
}

type DepsListRequest struct {
	Package string
	Filter  string
}

type DepsOutdatedRequest struct {
	Package string
}

type DepsUpdateRequest struct {
	Package      string
	Dependencies []string // empty means all
	Strategy     string   // latest, major, minor or patch
}

type DepsSyncRequest struct {
	Package        string
	Strategy       string // highest, lowest or exact
	UpdateLockfile bool
}

type DepsInstallRequest struct {
	Package        string
	Parallel       bool
	FrozenLockfile bool
	UpdateLockfile bool
}

type CacheRequest struct {
	Action         string // info, clear or list
	PackageManager string
	DryRun         bool
}

type PluginInstallRequest struct {
	ID      string
	Version string
	Source  string // npm, git or local
	URL     string
	Path    string
	Save    bool // record the plugin in baseline.json
}

type PluginSearchRequest struct {
	Query    string
	Registry bool
}

// Service is implemented by whatever performs workspace operations.
// A returned error means the operation could not run at all; an
// operation that ran and failed reports that through the result.
type Service interface {
	Init(ctx context.Context) (*result.Result, error)
	Add(ctx context.Context, req AddRequest) (*result.Result, error)
	Clone(ctx context.Context) (*result.Result, error)
	Status(ctx context.Context) (*result.Result, error)
	Doctor(ctx context.Context) (*result.Result, error)
	Graph(ctx context.Context, req GraphRequest) (*result.Result, error)

	GitSync(ctx context.Context) (*result.Result, error)
	GitBranch(ctx context.Context, req BranchRequest) (*result.Result, error)
	CreatePR(ctx context.Context, req PRRequest) (*result.Result, error)

	ConfigureEditors(ctx context.Context, req EditorConfigRequest) (*result.Result, error)
	InitProjects(ctx context.Context, req ProjectInitRequest) (*result.Result, error)
	Link(ctx context.Context) (*result.Result, error)
	UpdateWorkspace(ctx context.Context, req WorkspaceUpdateRequest) (*result.Result, error)
	SyncWorkspace(ctx context.Context, req WorkspaceSyncRequest) (*result.Result, error)

	RunScript(ctx context.Context, req ScriptRequest) (*result.Result, error)
	Exec(ctx context.Context, req ExecRequest) (*result.Result, error)
	DockerCompose(ctx context.Context, req ComposeRequest) (*result.Result, error)

	Release(ctx context.Context, req ReleaseRequest) (*result.Result, error)

	ListDeps(ctx context.Context, req DepsListRequest) (*result.Result, error)
	OutdatedDeps(ctx context.Context, req DepsOutdatedRequest) (*result.Result, error)
	UpdateDeps(ctx context.Context, req DepsUpdateRequest) (*result.Result, error)
	SyncDeps(ctx context.Context, req DepsSyncRequest) (*result.Result, error)
	InstallDeps(ctx context.Context, req DepsInstallRequest) (*result.Result, error)
	Cache(ctx context.Context, req CacheRequest) (*result.Result, error)

	InstallPlugin(ctx context.Context, req PluginInstallRequest) (*result.Result, error)
	ListPlugins(ctx context.Context) (*result.Result, error)
	RemovePlugin(ctx context.Context, id string) (*result.Result, error)
	InstallAllPlugins(ctx context.Context) (*result.Result, error)
	SearchPlugins(ctx context.Context, req PluginSearchRequest) (*result.Result, error)
}
