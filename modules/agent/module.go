// Package agent drives the in-guest automation agent from scenarios:
// connecting a session, opening URLs in a guest browser, and disconnecting.
package agent

import (
	"context"
	"fmt"
	"time"

	"github.com/caseforge/caseforge/agent"
	"github.com/caseforge/caseforge/internal/ctxlog"
	"github.com/caseforge/caseforge/internal/engine"
	"github.com/caseforge/caseforge/internal/registry"
	"github.com/caseforge/caseforge/internal/state"
)

// Path is the dotted library path scenarios import this package under.
const Path = "caseforge.modules.agent"

// State keys this package owns.
const (
	// KeySession holds the live *agent.Client during execution.
	KeySession = "agent.session"

	// KeyVar holds the session variable name in generated programs.
	KeyVar = "agent.session_var"
)

const generatedVar = "session"

const agentImport = "github.com/caseforge/caseforge/agent"

// Package returns this package's module catalog entry.
func Package() *registry.Package {
	return &registry.Package{
		Path: Path,
		Modules: []registry.Module{
			&Connect{},
			&OpenURL{},
			&Disconnect{},
		},
	}
}

func liveSession(bag *state.Bag) (*agent.Client, error) {
	c, ok := state.Value[*agent.Client](bag, KeySession)
	if !ok {
		return nil, fmt.Errorf("no agent session in state under %q, run an AgentConnect action first", KeySession)
	}
	return c, nil
}

func generatedSession(bag *state.Bag) (string, error) {
	name, ok := state.Value[string](bag, KeyVar)
	if !ok {
		return "", fmt.Errorf("no agent session variable in state under %q, run an AgentConnect action first", KeyVar)
	}
	return name, nil
}

// Connect establishes a session with the agent inside the guest.
type Connect struct{}

// ConnectArgs locate the agent.
type ConnectArgs struct {
	URL            string `cf:"url"`
	Namespace      string `cf:"namespace,optional"`
	TimeoutSeconds int64  `cf:"timeout_seconds,optional"`
}

func (m *Connect) Name() string           { return "AgentConnect" }
func (m *Connect) Aliases() []string      { return []string{"agent_connect"} }
func (m *Connect) NewConfig() any         { return new(struct{}) }
func (m *Connect) Dependencies() []string { return []string{agentImport} }

func (m *Connect) NewArgs() any {
	return &ConnectArgs{TimeoutSeconds: int64(agent.DefaultTimeout / time.Second)}
}

func (m *Connect) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*ConnectArgs)
	logger := ctxlog.FromContext(ctx)

	if _, exists := state.Value[*agent.Client](bag, KeySession); exists {
		logger.Warn("Replacing existing agent session.", "url", a.URL)
	}

	logger.Info("Connecting to agent.", "url", a.URL, "namespace", a.Namespace)
	client, err := agent.Dial(a.URL, agent.Options{
		Namespace: a.Namespace,
		Timeout:   time.Duration(a.TimeoutSeconds) * time.Second,
	})
	if err != nil {
		return err
	}

	bag.Set(KeySession, client)
	bag.Set(KeyVar, generatedVar)
	return nil
}

func (m *Connect) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*ConnectArgs)

	if _, exists := state.Value[string](bag, KeyVar); exists {
		return "", fmt.Errorf("agent session variable %q already emitted, one session per scenario", generatedVar)
	}
	bag.Set(KeyVar, generatedVar)

	fragment := fmt.Sprintf(`
		%s, err := agent.Dial(%q, agent.Options{Namespace: %q})
		if err != nil {
			slog.Error("failed to connect to agent", "error", err)
			os.Exit(1)
		}
	`, generatedVar, a.URL, a.Namespace)
	return engine.AutoFormat(fragment, bag), nil
}

// OpenURL opens a page in a guest browser through the agent.
type OpenURL struct{}

// OpenURLArgs name the browser and the page.
type OpenURLArgs struct {
	Browser string `cf:"browser"`
	URL     string `cf:"url"`
}

func (m *OpenURL) Name() string           { return "AgentOpenURL" }
func (m *OpenURL) Aliases() []string      { return []string{"agent_open_url"} }
func (m *OpenURL) NewArgs() any           { return new(OpenURLArgs) }
func (m *OpenURL) NewConfig() any         { return new(struct{}) }
func (m *OpenURL) Dependencies() []string { return []string{agentImport} }

func (m *OpenURL) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	a := args.(*OpenURLArgs)
	client, err := liveSession(bag)
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("Opening URL in guest browser.",
		"browser", a.Browser, "url", a.URL)
	return client.OpenURL(a.Browser, a.URL)
}

func (m *OpenURL) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	a := args.(*OpenURLArgs)
	name, err := generatedSession(bag)
	if err != nil {
		return "", err
	}

	fragment := fmt.Sprintf(`
		if err := %s.OpenURL(%q, %q); err != nil {
			slog.Error("failed to open URL in guest browser", "error", err)
			os.Exit(1)
		}
	`, name, a.Browser, a.URL)
	return engine.AutoFormat(fragment, bag), nil
}

// Disconnect tears down the agent session.
type Disconnect struct{}

func (m *Disconnect) Name() string           { return "AgentDisconnect" }
func (m *Disconnect) Aliases() []string      { return []string{"agent_disconnect"} }
func (m *Disconnect) NewArgs() any           { return new(struct{}) }
func (m *Disconnect) NewConfig() any         { return new(struct{}) }
func (m *Disconnect) Dependencies() []string { return []string{agentImport} }

func (m *Disconnect) Execute(ctx context.Context, args, config any, bag *state.Bag) error {
	client, err := liveSession(bag)
	if err != nil {
		return err
	}

	ctxlog.FromContext(ctx).Info("Disconnecting from agent.")
	client.Close()
	bag.Delete(KeySession)
	return nil
}

func (m *Disconnect) GenerateCode(args, config any, bag *state.Bag) (string, error) {
	name, err := generatedSession(bag)
	if err != nil {
		return "", err
	}
	bag.Delete(KeyVar)

	fragment := fmt.Sprintf(`
		%s.Close()
	`, name)
	return engine.AutoFormat(fragment, bag), nil
}
