// Package cli implements the userhubctl commands on top of the client
// session store and repositories.
package cli

import (
	"bufio"
	"context"
	"errors"
	"flag"
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"

	"userhub/internal/client/domain"
	"userhub/internal/client/repository"
	"userhub/internal/client/session"

	"go.uber.org/zap"
)

const usage = `usage: userhubctl <command> [flags]

commands:
  register -name NAME -email EMAIL [-password PW]
  login -email EMAIL [-password PW]
  me
  logout
  users list
  users get ID
  users create -name NAME -email EMAIL [-password PW]
  users update ID [-name NAME] [-email EMAIL] [-password PW]
  users delete ID
`

// ErrUsage is returned for an unknown command or bad arguments.
var ErrUsage = errors.New("usage")

// UsageDetail returns the text a usage error carries beyond ErrUsage
// itself, or "" for the bare sentinel and for other errors.
func UsageDetail(err error) string {
	if !errors.Is(err, ErrUsage) || err.Error() == ErrUsage.Error() {
		return ""
	}
	return err.Error()
}

type App struct {
	Auth    *repository.Auth
	Users   domain.UserRepository
	Session *session.Store
	Log     *zap.Logger

	in  *bufio.Reader
	out io.Writer
}

func NewApp(auth *repository.Auth, users domain.UserRepository, log *zap.Logger, in io.Reader, out io.Writer) *App {
	if log == nil {
		log = zap.NewNop()
	}
	return &App{
		Auth:    auth,
		Users:   users,
		Session: session.New(auth, log),
		Log:     log,
		in:      bufio.NewReader(in),
		out:     out,
	}
}

func (a *App) Run(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	cmd, rest := args[0], args[1:]
	switch cmd {
	case "register":
		return a.register(ctx, rest)
	case "login":
		return a.login(ctx, rest)
	case "me":
		return a.me(ctx)
	case "logout":
		return a.logout(ctx)
	case "users":
		a.Auth.Restore()
		return a.users(ctx, rest)
	case "help", "-h", "--help":
		fmt.Fprint(a.out, usage)
		return nil
	default:
		fmt.Fprintf(a.out, "unknown command %q\n\n%s", cmd, usage)
		return ErrUsage
	}
}

func (a *App) register(ctx context.Context, args []string) error {
	fs := newFlagSet("register", a.out)
	name := fs.String("name", "", "display name")
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	if err := a.fill(email, "Email"); err != nil {
		return err
	}
	if err := a.fill(name, "Name"); err != nil {
		return err
	}
	if err := a.fillPassword(password); err != nil {
		return err
	}

	u, err := a.Session.Register(ctx, domain.RegisterInput{Name: *name, Email: *email, Password: *password})
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Registered and signed in as %s <%s>\n", u.DisplayName(), u.Email)
	return nil
}

func (a *App) login(ctx context.Context, args []string) error {
	fs := newFlagSet("login", a.out)
	email := fs.String("email", "", "email address")
	password := fs.String("password", "", "password (prompted when empty)")
	if err := fs.Parse(args); err != nil {
		return ErrUsage
	}

	if err := a.fill(email, "Email"); err != nil {
		return err
	}
	if err := a.fillPassword(password); err != nil {
		return err
	}

	u, err := a.Session.Login(ctx, *email, *password)
	if err != nil {
		return err
	}
	fmt.Fprintf(a.out, "Signed in as %s <%s>\n", u.DisplayName(), u.Email)
	return nil
}

func (a *App) me(ctx context.Context) error {
	if !a.Session.CheckAuth(ctx) {
		return domain.NewError("Not signed in")
	}
	st := a.Session.Snapshot()
	fmt.Fprintf(a.out, "%s <%s> (id %d)\n", st.UserName(), st.UserEmail(), st.User.ID)
	return nil
}

func (a *App) logout(ctx context.Context) error {
	a.Auth.Restore()
	a.Session.Logout(ctx)
	if msg := a.Session.Snapshot().Error; msg != "" {
		return domain.NewError(msg)
	}
	fmt.Fprintln(a.out, "Signed out")
	return nil
}

func (a *App) users(ctx context.Context, args []string) error {
	if len(args) == 0 {
		fmt.Fprint(a.out, usage)
		return ErrUsage
	}

	switch sub, rest := args[0], args[1:]; sub {
	case "list":
		list, err := a.Users.List(ctx)
		if err != nil {
			return err
		}
		a.printUsers(list)
		return nil

	case "get":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		u, err := a.Users.Get(ctx, id)
		if err != nil {
			return err
		}
		a.printUsers([]domain.User{u})
		return nil

	case "create":
		fs := newFlagSet("users create", a.out)
		in := userFlags(fs)
		if err := fs.Parse(rest); err != nil {
			return ErrUsage
		}
		u, err := a.Users.Create(ctx, *in)
		if err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Created user %d\n", u.ID)
		return nil

	case "update":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		fs := newFlagSet("users update", a.out)
		in := userFlags(fs)
		if err := fs.Parse(rest[1:]); err != nil {
			return ErrUsage
		}
		u, err := a.Users.Update(ctx, id, *in)
		if err != nil {
			return err
		}
		a.printUsers([]domain.User{u})
		return nil

	case "delete":
		id, err := parseID(rest)
		if err != nil {
			return err
		}
		if err := a.Users.Delete(ctx, id); err != nil {
			return err
		}
		fmt.Fprintf(a.out, "Deleted user %d\n", id)
		return nil

	default:
		fmt.Fprintf(a.out, "unknown users command %q\n\n%s", sub, usage)
		return ErrUsage
	}
}

func (a *App) printUsers(users []domain.User) {
	tw := tabwriter.NewWriter(a.out, 0, 4, 2, ' ', 0)
	fmt.Fprintln(tw, "ID\tNAME\tEMAIL")
	for _, u := range users {
		fmt.Fprintf(tw, "%d\t%s\t%s\n", u.ID, u.Name, u.Email)
	}
	_ = tw.Flush()
}

func (a *App) fill(v *string, label string) error {
	if *v != "" {
		return nil
	}
	s, err := prompt(a.in, a.out, label)
	if err != nil {
		return fmt.Errorf("read %s: %w", label, err)
	}
	*v = s
	return nil
}

func (a *App) fillPassword(v *string) error {
	if *v != "" {
		return nil
	}
	s, err := promptPassword(a.in, a.out)
	if err != nil {
		return fmt.Errorf("read password: %w", err)
	}
	*v = s
	return nil
}

func newFlagSet(name string, out io.Writer) *flag.FlagSet {
	fs := flag.NewFlagSet(name, flag.ContinueOnError)
	fs.SetOutput(out)
	return fs
}

func userFlags(fs *flag.FlagSet) *domain.UserInput {
	in := &domain.UserInput{}
	fs.StringVar(&in.Name, "name", "", "display name")
	fs.StringVar(&in.Email, "email", "", "email address")
	fs.StringVar(&in.Password, "password", "", "password")
	return in
}

func parseID(args []string) (uint64, error) {
	if len(args) == 0 {
		return 0, fmt.Errorf("%w: missing user id", ErrUsage)
	}
	id, err := strconv.ParseUint(args[0], 10, 64)
	if err != nil || id == 0 {
		return 0, fmt.Errorf("%w: bad user id %q", ErrUsage, args[0])
	}
	return id, nil
}
