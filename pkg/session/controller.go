package session

import (
	"context"
	"fmt"

	"github.com/icdeck/icdeck/config"
	"github.com/icdeck/icdeck/errors"
	"github.com/icdeck/icdeck/logging"
	"github.com/icdeck/icdeck/pkg/catalog"
	"github.com/icdeck/icdeck/pkg/workspace"
	"github.com/sirupsen/logrus"
)

// Catalog resolves menu selections.
type Catalog interface {
	Resolve(key string) (catalog.Descriptor, error)
	ResolveName(name string) (catalog.Descriptor, error)
}

// Workspace checks for and installs working copies.
type Workspace interface {
	Check(d catalog.Descriptor) workspace.Status
	Clone(ctx context.Context, d catalog.Descriptor) (string, error)
}

// Result describes a successful selection.
type Result struct {
	Project catalog.Descriptor
	Path    string
	Cloned  bool
}

// Controller runs the select-and-enter flow and its reverse. It is the
// only layer that turns failures into user-facing text (see Describe).
type Controller struct {
	catalog   Catalog
	workspace Workspace
	env       *Environment
	confirm   Confirmer
	contact   string
	logger    *logrus.Entry
}

// NewController wires the session collaborators together.
func NewController(cat Catalog, ws Workspace, env *Environment, confirm Confirmer) *Controller {
	return &Controller{
		catalog:   cat,
		workspace: ws,
		env:       env,
		confirm:   confirm,
		contact:   config.DefaultContact,
		logger:    logging.NewLogger("controller"),
	}
}

// WithContact sets who users are told to ask for access to unavailable
// projects.
func (c *Controller) WithContact(contact string) *Controller {
	if contact != "" {
		c.contact = contact
	}
	return c
}

// WithLogger replaces the component logger.
func (c *Controller) WithLogger(logger *logrus.Entry) *Controller {
	c.logger = logger
	return c
}

// Environment returns the session environment the controller commits to.
func (c *Controller) Environment() *Environment {
	return c.env
}

// SelectAndEnter resolves a menu choice and enters it, installing the
// project first when it is missing and the user agrees. No session is
// left active after a failure.
func (c *Controller) SelectAndEnter(ctx context.Context, choice string) (Result, error) {
	if catalog.IsQuit(choice) {
		return Result{}, errors.Aborted()
	}
	d, err := c.catalog.Resolve(choice)
	if err != nil {
		return Result{}, err
	}
	return c.enter(ctx, d)
}

// SelectByName is SelectAndEnter keyed by project name.
func (c *Controller) SelectByName(ctx context.Context, name string) (Result, error) {
	d, err := c.catalog.ResolveName(name)
	if err != nil {
		return Result{}, err
	}
	return c.enter(ctx, d)
}

func (c *Controller) enter(ctx context.Context, d catalog.Descriptor) (Result, error) {
	log := c.logger.WithField("project", d.Name)

	if !d.Available {
		return Result{}, errors.ProjectUnavailable(d.Name).WithDetail("contact", c.contact)
	}
	if st := c.env.State(); st.Active {
		return Result{}, errors.SessionAlreadyActive(st.Project)
	}

	status := c.workspace.Check(d)
	if status.Present {
		if err := c.env.Enter(d, status.Path); err != nil {
			return Result{}, err
		}
		return Result{Project: d, Path: status.Path}, nil
	}

	log.WithField("path", status.Path).Debug("Project directory is missing")
	if !d.HasRemote() {
		return Result{}, errors.NoRemoteConfigured(d.Name)
	}

	question := fmt.Sprintf("Project '%s' is not installed at %s. Clone it from %s?", d.Name, d.LocalPath, d.RemoteURL)
	ok, err := c.confirm.Confirm(question)
	if err != nil {
		return Result{}, errors.Wrap(err, errors.ErrCodeInternal, "failed to read the answer")
	}
	if !ok {
		log.Info("Installation declined")
		return Result{}, errors.InstallationDeclined(d.Name)
	}

	path, err := c.workspace.Clone(ctx, d)
	if err != nil {
		return Result{}, err
	}

	if err := c.env.Enter(d, path); err != nil {
		return Result{}, err
	}
	return Result{Project: d, Path: path, Cloned: true}, nil
}

// ExitSession leaves the active session, if any. It always succeeds; a
// failure to reach the project root is only logged.
func (c *Controller) ExitSession() error {
	if err := c.env.Exit(); err != nil {
		c.logger.WithError(err).Warn("Session environment restored with errors")
	}
	return nil
}

// Describe returns the message shown to the user for err.
func (c *Controller) Describe(err error) string {
	return Describe(err, c.contact)
}

// Describe returns the message for err. Unavailable projects name the
// contact carried by the error, then contact, then the default contact.
func Describe(err error, contact string) string {
	e, ok := errors.As(err)
	if !ok {
		return err.Error()
	}
	if c := e.Detail("contact"); c != "" {
		contact = c
	}
	if contact == "" {
		contact = config.DefaultContact
	}

	switch e.Code {
	case errors.ErrCodeAborted:
		return "No project selected."
	case errors.ErrCodeInvalidSelection:
		return "Invalid selection"
	case errors.ErrCodeUnknownProject:
		return fmt.Sprintf("Unknown project '%s'.", e.Detail("key"))
	case errors.ErrCodeProjectUnavailable:
		return fmt.Sprintf("Project %s is not available yet. Please contact %s for access.", e.Detail("project"), contact)
	case errors.ErrCodeInstallationDeclined:
		return fmt.Sprintf("Project %s was not installed.", e.Detail("project"))
	case errors.ErrCodeNoRemoteConfigured:
		return fmt.Sprintf("Project %s is not installed and has no git_url to install it from.", e.Detail("project"))
	case errors.ErrCodeCloneFailed:
		if e.Cause != nil {
			return fmt.Sprintf("Cloning %s failed: %v", e.Detail("url"), e.Cause)
		}
		return fmt.Sprintf("Cloning %s failed.", e.Detail("url"))
	case errors.ErrCodeDirectoryUnavailable:
		return fmt.Sprintf("Cannot change directory to %s.", e.Detail("path"))
	case errors.ErrCodeSessionAlreadyActive:
		return fmt.Sprintf("Project %s is already active. Run 'icdeck exit' first.", e.Detail("project"))
	default:
		return e.Message
	}
}
