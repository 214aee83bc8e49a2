package build

import (
	"strings"

	"github.com/appbuild/appbuildctl/internal/env"
)

// InvocationKind tells the executor how to treat a failure.
type InvocationKind string

const (
	// KindScript runs a project script; failures are fatal immediately.
	KindScript InvocationKind = "script"
	// KindPackage runs the packager; failures are retried.
	KindPackage InvocationKind = "package"
)

// Invocation is one planned subprocess. It is not modified after planning.
type Invocation struct {
	Kind InvocationKind `yaml:"kind"`
	// Prefix is the package manager command prefix, e.g. "npx --no-install".
	Prefix string `yaml:"prefix"`
	// Args are the tokens following the prefix; none of them is blank.
	Args []string `yaml:"args"`
	// Dir is the working directory.
	Dir string `yaml:"dir"`
	// Arch is the architecture this packaging invocation targets, if any.
	Arch string `yaml:"arch,omitempty"`
	// Env holds overrides applied to the child environment only.
	Env env.Vars `yaml:"-"`
}

// Line renders the command line as a single space-joined string.
func (i Invocation) Line() string {
	var cl commandLine
	cl.add(i.Prefix)
	cl.add(i.Args...)
	return cl.String()
}

// commandLine accumulates non-blank tokens in order.
type commandLine struct {
	tokens []string
}

func (c *commandLine) add(tokens ...string) {
	for _, t := range tokens {
		t = strings.TrimSpace(t)
		if t == "" {
			continue
		}
		c.tokens = append(c.tokens, t)
	}
}

func (c *commandLine) addFlag(name, value string) {
	if strings.TrimSpace(value) == "" {
		return
	}
	c.add("--" + name + " " + strings.TrimSpace(value))
}

func (c *commandLine) String() string {
	return strings.Join(c.tokens, " ")
}

// Plan expands a request into the ordered invocation list: the optional
// pre-build script followed by one packaging invocation per active
// architecture, or a single one when no architecture was requested.
func Plan(req Request) ([]Invocation, error) {
	cmds, err := LookupCommands(req.PackageManager)
	if err != nil {
		return nil, err
	}

	var plan []Invocation
	if strings.TrimSpace(req.ScriptBeforeBuild) != "" {
		var cl commandLine
		cl.add(req.ScriptBeforeBuild)
		plan = append(plan, Invocation{
			Kind:   KindScript,
			Prefix: cmds.RunScript,
			Args:   cl.tokens,
			Dir:    req.PackageRoot,
			Env:    env.Merge(req.ExtraEnv),
		})
	}

	packageEnv := env.Merge(req.ExtraEnv, CredentialEnvironment(req.Credentials, req.Platform))

	archs := req.ActiveArchitectures()
	if len(archs) == 0 {
		plan = append(plan, packageInvocation(req, cmds, "", packageEnv))
		return plan, nil
	}
	for _, arch := range archs {
		plan = append(plan, packageInvocation(req, cmds, arch, packageEnv))
	}
	return plan, nil
}

func packageInvocation(req Request, cmds Commands, arch string, vars env.Vars) Invocation {
	var cl commandLine
	cl.add(PackagerBinary, "--"+string(req.Platform))
	if strings.TrimSpace(arch) != "" {
		cl.add("--" + strings.TrimSpace(arch))
	}
	cl.addFlag("publish", req.Publish.String())
	cl.addFlag("config", req.ConfigPath)
	cl.add(req.ExtraArgs)

	return Invocation{
		Kind:   KindPackage,
		Prefix: cmds.RunPackager,
		Args:   cl.tokens,
		Dir:    req.PackageRoot,
		Arch:   strings.TrimSpace(arch),
		Env:    env.Merge(vars),
	}
}
