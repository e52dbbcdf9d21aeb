package core

import (
	"context"
	"fmt"

	"baseline/internal/result"
)

// Unavailable is the Service of a build without a workspace engine. Every
// operation runs and fails with a hint, so the command tree stays fully
// usable for help, completion and dispatch checks.
type Unavailable struct {
	Name string // root command name, used in hints
	Root string // workspace root, empty when none was found
}

var _ Service = (*Unavailable)(nil)

func (u *Unavailable) hint(cmd string) string {
	name := u.Name
	if name == "" {
		name = "baseline"
	}
	return fmt.Sprintf("Run '%s %s'", name, cmd)
}

// report fails op. Operations that need a workspace fail earlier when
// there is none.
func (u *Unavailable) report(op string, needsWorkspace bool) (*result.Result, error) {
	if needsWorkspace && u.Root == "" {
		return result.Failed(result.Error(
			"No baseline.json found in this directory or any parent",
			u.hint("init")+" to create a workspace",
		)), nil
	}
	return result.Failed(result.Error(
		fmt.Sprintf("%s: not available in this build", op),
		u.hint("self info")+" to see which build is installed",
	)), nil
}

func (u *Unavailable) Init(context.Context) (*result.Result, error) {
	return u.report("init", false)
}

func (u *Unavailable) Add(_ context.Context, req AddRequest) (*result.Result, error) {
	return u.report("add "+req.GitURL, true)
}

func (u *Unavailable) Clone(context.Context) (*result.Result, error) {
	return u.report("clone", true)
}

func (u *Unavailable) Status(context.Context) (*result.Result, error) {
	return u.report("status", true)
}

func (u *Unavailable) Doctor(context.Context) (*result.Result, error) {
	return u.report("doctor", true)
}

func (u *Unavailable) Graph(context.Context, GraphRequest) (*result.Result, error) {
	return u.report("graph", true)
}

func (u *Unavailable) GitSync(context.Context) (*result.Result, error) {
	return u.report("git sync", true)
}

func (u *Unavailable) GitBranch(_ context.Context, req BranchRequest) (*result.Result, error) {
	return u.report("git branch "+req.Name, true)
}

func (u *Unavailable) CreatePR(context.Context, PRRequest) (*result.Result, error) {
	return u.report("git pr create", true)
}

func (u *Unavailable) ConfigureEditors(context.Context, EditorConfigRequest) (*result.Result, error) {
	return u.report("workspace config", true)
}

func (u *Unavailable) InitProjects(context.Context, ProjectInitRequest) (*result.Result, error) {
	return u.report("project init", true)
}

func (u *Unavailable) Link(context.Context) (*result.Result, error) {
	return u.report("workspace link", true)
}

func (u *Unavailable) UpdateWorkspace(context.Context, WorkspaceUpdateRequest) (*result.Result, error) {
	return u.report("workspace update", true)
}

func (u *Unavailable) SyncWorkspace(context.Context, WorkspaceSyncRequest) (*result.Result, error) {
	return u.report("workspace sync", true)
}

func (u *Unavailable) RunScript(_ context.Context, req ScriptRequest) (*result.Result, error) {
	return u.report("run "+req.Script, true)
}

func (u *Unavailable) Exec(_ context.Context, req ExecRequest) (*result.Result, error) {
	return u.report("run exec "+req.Command, true)
}

func (u *Unavailable) DockerCompose(_ context.Context, req ComposeRequest) (*result.Result, error) {
	return u.report("run docker-compose "+req.Subcommand, true)
}

func (u *Unavailable) Release(_ context.Context, req ReleaseRequest) (*result.Result, error) {
	return u.report("dev release "+req.Stage, true)
}

func (u *Unavailable) ListDeps(context.Context, DepsListRequest) (*result.Result, error) {
	return u.report("deps list", true)
}

func (u *Unavailable) OutdatedDeps(context.Context, DepsOutdatedRequest) (*result.Result, error) {
	return u.report("deps outdated", true)
}

func (u *Unavailable) UpdateDeps(context.Context, DepsUpdateRequest) (*result.Result, error) {
	return u.report("deps update", true)
}

func (u *Unavailable) SyncDeps(context.Context, DepsSyncRequest) (*result.Result, error) {
	return u.report("deps sync", true)
}

func (u *Unavailable) InstallDeps(context.Context, DepsInstallRequest) (*result.Result, error) {
	return u.report("deps install", true)
}

func (u *Unavailable) Cache(_ context.Context, req CacheRequest) (*result.Result, error) {
	return u.report("deps cache "+req.Action, false)
}

func (u *Unavailable) InstallPlugin(_ context.Context, req PluginInstallRequest) (*result.Result, error) {
	return u.report("plugin install "+req.ID, true)
}

func (u *Unavailable) ListPlugins(context.Context) (*result.Result, error) {
	return u.report("plugin list", true)
}

func (u *Unavailable) RemovePlugin(_ context.Context, id string) (*result.Result, error) {
	return u.report("plugin remove "+id, true)
}

func (u *Unavailable) InstallAllPlugins(context.Context) (*result.Result, error) {
	return u.report("plugin install-all", true)
}

func (u *Unavailable) SearchPlugins(_ context.Context, req PluginSearchRequest) (*result.Result, error) {
	return u.report("plugin search "+req.Query, false)
}
