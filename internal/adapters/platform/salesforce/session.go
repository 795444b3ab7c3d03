package salesforce

import (
	"context"
	"fmt"
	"os/exec"
	"strings"
	"sync"

	"github.com/tidwall/gjson"

	"github.com/olusolaa/picklist-drift-detector/internal/errors"
)

const defaultCLI = "sf"

// Session is an authenticated connection to one org.
type Session struct {
	InstanceURL string
	AccessToken string
	APIVersion  string
}

type SessionSource interface {
	Session(ctx context.Context) (Session, error)
}

// CommandRunner executes an external command and returns its stdout. Stdout
// must be returned even when the command exits non-zero.
type CommandRunner func(ctx context.Context, name string, args ...string) ([]byte, error)

func execRunner(ctx context.Context, name string, args ...string) ([]byte, error) {
	return exec.CommandContext(ctx, name, args...).Output()
}

// CLISession resolves a session from an org alias already authorized in the
// Salesforce CLI. The result is cached after the first successful call.
type CLISession struct {
	alias string
	run   CommandRunner

	mu      sync.Mutex
	session *Session
}

func NewCLISession(alias string, run CommandRunner) *CLISession {
	if run == nil {
		run = execRunner
	}
	return &CLISession{alias: alias, run: run}
}

func (s *CLISession) Session(ctx context.Context) (Session, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	if s.session != nil {
		return *s.session, nil
	}

	out, runErr := s.run(ctx, defaultCLI, "org", "display", "--target-org", s.alias, "--json")
	if ctx.Err() != nil {
		return Session{}, errors.Wrap(ctx.Err(), errors.CodeSessionError, fmt.Sprintf("resolving session for '%s' was cancelled", s.alias))
	}

	doc := strings.TrimSpace(string(out))
	if doc == "" || !gjson.Valid(doc) {
		if runErr != nil {
			return Session{}, errors.WrapUserFacing(runErr, errors.CodeSessionError,
				fmt.Sprintf("failed to run '%s org display' for alias '%s'", defaultCLI, s.alias),
				"Install the Salesforce CLI and make sure 'sf' is on your PATH.")
		}
		return Session{}, errors.New(errors.CodeSessionError,
			fmt.Sprintf("'%s org display' returned no JSON for alias '%s'", defaultCLI, s.alias))
	}

	parsed := gjson.Parse(doc)
	if status := parsed.Get("status").Int(); status != 0 || runErr != nil {
		msg := parsed.Get("message").String()
		if msg == "" {
			msg = fmt.Sprintf("exit status %d", status)
		}
		return Session{}, errors.NewUserFacing(errors.CodeSessionError,
			fmt.Sprintf("could not resolve org '%s': %s", s.alias, msg),
			fmt.Sprintf("Authorize it first: sf org login web --alias %s", s.alias))
	}

	session := Session{
		InstanceURL: strings.TrimRight(parsed.Get("result.instanceUrl").String(), "/"),
		AccessToken: parsed.Get("result.accessToken").String(),
		APIVersion:  parsed.Get("result.apiVersion").String(),
	}
	if session.InstanceURL == "" || session.AccessToken == "" {
		return Session{}, errors.New(errors.CodeSessionError,
			fmt.Sprintf("org '%s' is missing an instance URL or access token", s.alias))
	}

	s.session = &session
	return session, nil
}

// StaticSession serves a session given directly in configuration.
type StaticSession struct {
	session Session
}

func NewStaticSession(instanceURL, accessToken string) *StaticSession {
	return &StaticSession{session: Session{
		InstanceURL: strings.TrimRight(instanceURL, "/"),
		AccessToken: accessToken,
	}}
}

func (s *StaticSession) Session(ctx context.Context) (Session, error) {
	if s.session.InstanceURL == "" || s.session.AccessToken == "" {
		return Session{}, errors.New(errors.CodeSessionError, "instance URL and access token are required")
	}
	return s.session, nil
}
